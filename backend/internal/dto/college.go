package dto

// ── 学院模块 DTO ──

// CreateCollegeRequest 创建学院请求
type CreateCollegeRequest struct {
	Name         string `json:"name"          binding:"required,min=2,max=100"`
	Location     string `json:"location"      binding:"omitempty,max=100"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email,max=100"`
}

// UpdateCollegeRequest 更新学院请求
type UpdateCollegeRequest struct {
	Name         *string `json:"name"          binding:"omitempty,min=2,max=100"`
	Location     *string `json:"location"      binding:"omitempty,max=100"`
	ContactEmail *string `json:"contact_email" binding:"omitempty,email,max=100"`
}

// CollegeListRequest 学院列表查询参数
type CollegeListRequest struct {
	PaginationRequest
	Search string `form:"search" binding:"omitempty,max=100"`
}

// CollegeResponse 学院信息响应
type CollegeResponse struct {
	CollegeID    string `json:"college_id"`
	Name         string `json:"name"`
	Location     string `json:"location,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// CollegeDetailResponse 学院详细信息响应（含统计）
type CollegeDetailResponse struct {
	CollegeResponse
	StudentCount int64 `json:"student_count"`
	EventCount   int64 `json:"event_count"`
}
