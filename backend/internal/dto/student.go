package dto

// ── 学生模块 DTO ──

// CreateStudentRequest 创建学生请求
type CreateStudentRequest struct {
	Name        string `json:"name"          binding:"required,min=2,max=100"`
	Email       string `json:"email"         binding:"required,email,max=100"`
	CollegeID   string `json:"college_id"    binding:"required,uuid"`
	Phone       string `json:"phone"         binding:"omitempty,max=15"`
	YearOfStudy *int   `json:"year_of_study" binding:"omitempty,min=1,max=4"`
}

// UpdateStudentRequest 更新学生请求
type UpdateStudentRequest struct {
	Name        *string `json:"name"          binding:"omitempty,min=2,max=100"`
	Email       *string `json:"email"         binding:"omitempty,email,max=100"`
	CollegeID   *string `json:"college_id"    binding:"omitempty,uuid"`
	Phone       *string `json:"phone"         binding:"omitempty,max=15"`
	YearOfStudy *int    `json:"year_of_study" binding:"omitempty,min=1,max=4"`
}

// StudentListRequest 学生列表查询参数
type StudentListRequest struct {
	PaginationRequest
	Search      string `form:"search"        binding:"omitempty,max=100"`
	CollegeID   string `form:"college_id"    binding:"omitempty,uuid"`
	YearOfStudy *int   `form:"year_of_study" binding:"omitempty,min=1,max=4"`
}

// StudentEventItem 学生参与的活动条目
type StudentEventItem struct {
	EventID   string `json:"event_id"`
	Title     string `json:"title"`
	EventType string `json:"event_type"`
	EventDate string `json:"event_date"`
	Venue     string `json:"venue,omitempty"`
	Status    string `json:"status"`
}

// StudentEventsResponse 学生参与活动汇总
type StudentEventsResponse struct {
	StudentID        string             `json:"student_id"`
	StudentName      string             `json:"student_name"`
	RegisteredEvents []StudentEventItem `json:"registered_events"`
	AttendedEvents   []StudentEventItem `json:"attended_events"`
}

// StudentResponse 学生信息响应
type StudentResponse struct {
	StudentID   string `json:"student_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	CollegeID   string `json:"college_id"`
	CollegeName string `json:"college_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	YearOfStudy *int   `json:"year_of_study,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
