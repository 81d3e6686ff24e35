package dto

// ── 报名模块 DTO ──

// CreateRegistrationRequest 报名请求
type CreateRegistrationRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	EventID   string `json:"event_id"   binding:"required,uuid"`
}

// RegistrationListRequest 报名列表查询参数
type RegistrationListRequest struct {
	PaginationRequest
	StudentID string `form:"student_id" binding:"omitempty,uuid"`
	EventID   string `form:"event_id"   binding:"omitempty,uuid"`
	Status    string `form:"status"     binding:"omitempty,oneof=confirmed cancelled"`
}

// RegistrationResponse 报名信息响应
type RegistrationResponse struct {
	RegistrationID string `json:"registration_id"`
	StudentID      string `json:"student_id"`
	StudentName    string `json:"student_name,omitempty"`
	EventID        string `json:"event_id"`
	EventTitle     string `json:"event_title,omitempty"`
	Status         string `json:"status"`
	RegisteredAt   string `json:"registered_at"`
	UpdatedAt      string `json:"updated_at"`
}
