package dto

// ── 签到模块 DTO ──

// CreateAttendanceRequest 单条签到请求
type CreateAttendanceRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	EventID   string `json:"event_id"   binding:"required,uuid"`
}

// BulkAttendanceRequest 批量签到请求
type BulkAttendanceRequest struct {
	EventID    string   `json:"event_id"    binding:"required,uuid"`
	StudentIDs []string `json:"student_ids" binding:"required,min=1,dive,uuid"`
}

// AttendanceListRequest 签到列表查询参数
type AttendanceListRequest struct {
	PaginationRequest
	StudentID string `form:"student_id" binding:"omitempty,uuid"`
	EventID   string `form:"event_id"   binding:"omitempty,uuid"`
}

// AttendanceResponse 签到信息响应
type AttendanceResponse struct {
	AttendanceID string `json:"attendance_id"`
	StudentID    string `json:"student_id"`
	StudentName  string `json:"student_name,omitempty"`
	EventID      string `json:"event_id"`
	EventTitle   string `json:"event_title,omitempty"`
	AttendedAt   string `json:"attended_at"`
}

// BulkAttendanceError 批量签到中单个学生的失败原因
type BulkAttendanceError struct {
	StudentID string `json:"student_id"`
	Reason    string `json:"reason"`
}

// BulkAttendanceResponse 批量签到响应
type BulkAttendanceResponse struct {
	EventID      string                `json:"event_id"`
	SuccessCount int                   `json:"success_count"`
	Errors       []BulkAttendanceError `json:"errors"`
}
