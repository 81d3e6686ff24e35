package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// requestIDMaxLen 外部传入 Request-ID 的最大长度，超长的丢弃重新生成
const requestIDMaxLen = 64

// RequestID 请求追踪中间件
// 优先沿用请求头 X-Request-ID，缺失或超长时生成新的 UUID，
// 写入 gin.Context 并回写到响应头
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" || len(rid) > requestIDMaxLen {
			rid = uuid.New().String()
		}

		c.Set(requestIDKey, rid)
		c.Header("X-Request-ID", rid)

		c.Next()
	}
}
