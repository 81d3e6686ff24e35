package dto

// ── 活动模块 DTO ──

// CreateEventRequest 创建活动请求
type CreateEventRequest struct {
	Title       string `json:"title"        binding:"required,min=2,max=200"`
	Description string `json:"description"  binding:"omitempty,max=2000"`
	EventType   string `json:"event_type"   binding:"required"`
	EventDate   string `json:"event_date"   binding:"required,datetime=2006-01-02"`
	StartTime   string `json:"start_time"   binding:"omitempty,datetime=15:04"`
	EndTime     string `json:"end_time"     binding:"omitempty,datetime=15:04"`
	Venue       string `json:"venue"        binding:"omitempty,max=100"`
	CollegeID   string `json:"college_id"   binding:"required,uuid"`
	MaxCapacity *int   `json:"max_capacity" binding:"omitempty,min=1"`
}

// UpdateEventRequest 更新活动请求
type UpdateEventRequest struct {
	Title       *string `json:"title"        binding:"omitempty,min=2,max=200"`
	Description *string `json:"description"  binding:"omitempty,max=2000"`
	EventType   *string `json:"event_type"`
	EventDate   *string `json:"event_date"   binding:"omitempty,datetime=2006-01-02"`
	StartTime   *string `json:"start_time"   binding:"omitempty,datetime=15:04"`
	EndTime     *string `json:"end_time"     binding:"omitempty,datetime=15:04"`
	Venue       *string `json:"venue"        binding:"omitempty,max=100"`
	MaxCapacity *int    `json:"max_capacity" binding:"omitempty,min=1"`
	Status      *string `json:"status"       binding:"omitempty,oneof=active cancelled completed"`
}

// EventListRequest 活动列表查询参数
type EventListRequest struct {
	PaginationRequest
	CollegeID string `form:"college_id" binding:"omitempty,uuid"`
	EventType string `form:"event_type"`
	Status    string `form:"status"     binding:"omitempty,oneof=active cancelled completed"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   binding:"omitempty,datetime=2006-01-02"`
	Search    string `form:"search"     binding:"omitempty,max=100"`
}

// EventResponse 活动信息响应
type EventResponse struct {
	EventID     string `json:"event_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	EventType   string `json:"event_type"`
	EventDate   string `json:"event_date"`
	StartTime   string `json:"start_time,omitempty"`
	EndTime     string `json:"end_time,omitempty"`
	Venue       string `json:"venue,omitempty"`
	CollegeID   string `json:"college_id"`
	CollegeName string `json:"college_name,omitempty"`
	MaxCapacity int    `json:"max_capacity"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// EventDetailResponse 活动详细信息响应（含实时名额）
type EventDetailResponse struct {
	EventResponse
	ConfirmedCount int64 `json:"confirmed_count"`
	AvailableSlots int64 `json:"available_slots"`
	IsAvailable    bool  `json:"is_available"`
}
