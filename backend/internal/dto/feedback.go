package dto

// ── 反馈模块 DTO ──

// CreateFeedbackRequest 提交反馈请求
type CreateFeedbackRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	EventID   string `json:"event_id"   binding:"required,uuid"`
	Rating    int    `json:"rating"     binding:"required,min=1,max=5"`
	Comments  string `json:"comments"   binding:"omitempty,max=2000"`
}

// UpdateFeedbackRequest 更新反馈请求（仅允许修改评分与评论）
type UpdateFeedbackRequest struct {
	Rating   *int    `json:"rating"   binding:"omitempty,min=1,max=5"`
	Comments *string `json:"comments" binding:"omitempty,max=2000"`
}

// FeedbackListRequest 反馈列表查询参数
type FeedbackListRequest struct {
	PaginationRequest
	StudentID string `form:"student_id" binding:"omitempty,uuid"`
	EventID   string `form:"event_id"   binding:"omitempty,uuid"`
	MinRating *int   `form:"min_rating" binding:"omitempty,min=1,max=5"`
	MaxRating *int   `form:"max_rating" binding:"omitempty,min=1,max=5"`
}

// FeedbackOverallStats 全局反馈统计响应
type FeedbackOverallStats struct {
	TotalFeedback      int64            `json:"total_feedback"`
	AverageRating      float64          `json:"average_rating"`
	RatingDistribution map[string]int64 `json:"rating_distribution"`
	EventsWithFeedback int64            `json:"events_with_feedback"`
}

// FeedbackResponse 反馈信息响应
type FeedbackResponse struct {
	FeedbackID  string `json:"feedback_id"`
	StudentID   string `json:"student_id"`
	StudentName string `json:"student_name,omitempty"`
	EventID     string `json:"event_id"`
	EventTitle  string `json:"event_title,omitempty"`
	Rating      int    `json:"rating"`
	Comments    string `json:"comments,omitempty"`
	SubmittedAt string `json:"submitted_at"`
	UpdatedAt   string `json:"updated_at"`
}
