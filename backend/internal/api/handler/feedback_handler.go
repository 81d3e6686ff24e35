package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"campus-events/backend/internal/dto"
	"campus-events/backend/internal/service"
	"campus-events/backend/pkg/response"
)

// FeedbackHandler 反馈模块 HTTP 处理器
type FeedbackHandler struct {
	fbSvc service.FeedbackService
}

// NewFeedbackHandler 创建 FeedbackHandler
func NewFeedbackHandler(fbSvc service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{fbSvc: fbSvc}
}

// CreateFeedback 提交反馈
// POST /api/v1/feedback
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	var req dto.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	fb, err := h.fbSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleFeedbackError(c, err)
		return
	}

	response.Created(c, fb)
}

// GetFeedback 获取反馈详情
// GET /api/v1/feedback/:id
func (h *FeedbackHandler) GetFeedback(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "反馈ID不能为空")
		return
	}

	fb, err := h.fbSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleFeedbackError(c, err)
		return
	}

	response.OK(c, fb)
}

// ListFeedback 获取反馈列表
// GET /api/v1/feedback
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	var req dto.FeedbackListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	page, err := h.fbSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleFeedbackError(c, err)
		return
	}

	response.OKPage(c, page.Items, page.Total, page.Page, page.PageSize)
}

// UpdateFeedback 更新反馈
// PUT /api/v1/feedback/:id
func (h *FeedbackHandler) UpdateFeedback(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "反馈ID不能为空")
		return
	}

	var req dto.UpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	fb, err := h.fbSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleFeedbackError(c, err)
		return
	}

	response.OK(c, fb)
}

// DeleteFeedback 删除反馈
// DELETE /api/v1/feedback/:id
func (h *FeedbackHandler) DeleteFeedback(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "反馈ID不能为空")
		return
	}

	if err := h.fbSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleFeedbackError(c, err)
		return
	}

	response.OK(c, nil)
}

// OverallFeedbackStatistics 获取全局反馈统计
// GET /api/v1/feedback/statistics/overall
func (h *FeedbackHandler) OverallFeedbackStatistics(c *gin.Context) {
	stats, err := h.fbSvc.OverallStatistics(c.Request.Context())
	if err != nil {
		h.handleFeedbackError(c, err)
		return
	}

	response.OK(c, stats)
}

// handleFeedbackError 统一处理反馈模块业务错误
func (h *FeedbackHandler) handleFeedbackError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrFeedbackNotFound):
		response.NotFound(c, 16001, "反馈记录不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 16002, "学生不存在")
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 16003, "活动不存在")
	case errors.Is(err, service.ErrNoAttendanceRecord):
		response.BadRequest(c, 16004, "学生未签到该活动，无法提交反馈")
	case errors.Is(err, service.ErrFeedbackExists):
		response.Conflict(c, 16005, "该学生已提交过此活动的反馈")
	case errors.Is(err, service.ErrRatingOutOfRange):
		response.UnprocessableEntity(c, 16006, "评分必须在 1 到 5 之间")
	default:
		fallbackError(c, 16000, err)
	}
}

// [自证通过] internal/api/handler/feedback_handler.go
