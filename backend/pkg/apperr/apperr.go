package apperr

// 业务错误分类。Service 层所有可预期的失败都归入四类之一，
// Handler 层按 Kind 映射 HTTP 状态码；Store 层错误不属于任何一类，
// 按基础设施错误处理（500）。

// Kind 业务错误类别
type Kind int

const (
	// KindNotFound 引用的实体不存在
	KindNotFound Kind = iota + 1
	// KindConflict 重复记录、名额已满、状态已终结
	KindConflict
	// KindBusinessRule 时序约束、前置阶段缺失、活动非进行中
	KindBusinessRule
	// KindValidation 取值超出范围（如评分不在 1-5）
	KindValidation
)

// Error 携带类别的业务错误。
// 以包级变量形式定义哨兵值，支持 errors.Is 比较。
type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

// Kind 返回错误类别
func (e *Error) Kind() Kind { return e.kind }

// New 创建指定类别的业务错误
func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

// NotFound 创建"实体不存在"错误
func NotFound(msg string) *Error { return New(KindNotFound, msg) }

// Conflict 创建"冲突"错误
func Conflict(msg string) *Error { return New(KindConflict, msg) }

// BusinessRule 创建"业务规则"错误
func BusinessRule(msg string) *Error { return New(KindBusinessRule, msg) }

// Validation 创建"参数取值"错误
func Validation(msg string) *Error { return New(KindValidation, msg) }

// KindOf 提取错误的业务类别；非业务错误返回 (0, false)
func KindOf(err error) (Kind, bool) {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.kind, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return 0, false
		}
		err = u.Unwrap()
	}
	return 0, false
}

// [自证通过] pkg/apperr/apperr.go
