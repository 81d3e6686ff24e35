package dto

// ── 报表模块 DTO ──

// EventRegistrationsRequest 活动报名统计查询参数
type EventRegistrationsRequest struct {
	EventID   string `form:"event_id"   binding:"omitempty,uuid"`
	CollegeID string `form:"college_id" binding:"omitempty,uuid"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   binding:"omitempty,datetime=2006-01-02"`
}

// EventRegistrationItem 活动报名统计条目
type EventRegistrationItem struct {
	EventID                string `json:"event_id"`
	EventTitle             string `json:"event_title"`
	EventDate              string `json:"event_date"`
	TotalRegistrations     int64  `json:"total_registrations"`
	ConfirmedRegistrations int64  `json:"confirmed_registrations"`
	CancelledRegistrations int64  `json:"cancelled_registrations"`
	AvailableSpots         int64  `json:"available_spots"`
}

// AttendanceReportRequest 出勤率报表查询参数
type AttendanceReportRequest struct {
	EventID           string   `form:"event_id"            binding:"omitempty,uuid"`
	CollegeID         string   `form:"college_id"          binding:"omitempty,uuid"`
	StartDate         string   `form:"start_date"          binding:"omitempty,datetime=2006-01-02"`
	EndDate           string   `form:"end_date"            binding:"omitempty,datetime=2006-01-02"`
	MinAttendanceRate *float64 `form:"min_attendance_rate" binding:"omitempty,min=0,max=100"`
}

// AttendanceReportItem 出勤率条目
type AttendanceReportItem struct {
	EventID              string  `json:"event_id"`
	EventTitle           string  `json:"event_title"`
	EventDate            string  `json:"event_date"`
	TotalRegistered      int64   `json:"total_registered"`
	TotalAttended        int64   `json:"total_attended"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

// FeedbackReportRequest 反馈报表查询参数
type FeedbackReportRequest struct {
	EventID   string   `form:"event_id"   binding:"omitempty,uuid"`
	CollegeID string   `form:"college_id" binding:"omitempty,uuid"`
	StartDate string   `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string   `form:"end_date"   binding:"omitempty,datetime=2006-01-02"`
	MinRating *float64 `form:"min_rating" binding:"omitempty,min=1,max=5"`
}

// FeedbackReportItem 反馈报表条目。评分分布的键为 "1"–"5"，含空档
type FeedbackReportItem struct {
	EventID            string           `json:"event_id"`
	EventTitle         string           `json:"event_title"`
	EventDate          string           `json:"event_date"`
	TotalFeedback      int64            `json:"total_feedback"`
	AverageRating      float64          `json:"average_rating"`
	RatingDistribution map[string]int64 `json:"rating_distribution"`
}

// StudentParticipationRequest 学生参与明细查询参数
type StudentParticipationRequest struct {
	StudentID         string `form:"student_id"          binding:"omitempty,uuid"`
	CollegeID         string `form:"college_id"          binding:"omitempty,uuid"`
	MinEventsAttended *int   `form:"min_events_attended" binding:"omitempty,min=0"`
}

// StudentParticipationItem 学生参与明细条目
type StudentParticipationItem struct {
	StudentID          string   `json:"student_id"`
	StudentName        string   `json:"student_name"`
	StudentEmail       string   `json:"student_email"`
	CollegeName        string   `json:"college_name,omitempty"`
	TotalRegistrations int64    `json:"total_registrations"`
	TotalAttendances   int64    `json:"total_attendances"`
	AttendanceRate     float64  `json:"attendance_rate"`
	EventsAttended     []string `json:"events_attended"`
}

// EventPopularityRequest 活动热度报表查询参数
type EventPopularityRequest struct {
	CollegeID string `form:"college_id" binding:"omitempty,uuid"`
	EventType string `form:"event_type"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   binding:"omitempty,datetime=2006-01-02"`
	Limit     int    `form:"limit"      binding:"omitempty,min=1,max=100"`
}

// EventPopularityItem 活动热度条目
type EventPopularityItem struct {
	EventID         string   `json:"event_id"`
	EventTitle      string   `json:"event_title"`
	EventType       string   `json:"event_type"`
	EventDate       string   `json:"event_date"`
	CollegeName     string   `json:"college_name,omitempty"`
	Registrations   int64    `json:"registrations"`
	Attendance      int64    `json:"attendance"`
	AverageRating   *float64 `json:"average_rating"`
	PopularityScore float64  `json:"popularity_score"`
}

// TopActiveStudentsRequest 活跃学生榜单查询参数
type TopActiveStudentsRequest struct {
	CollegeID string `form:"college_id" binding:"omitempty,uuid"`
	EventType string `form:"event_type"`
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

// TopActiveStudentItem 活跃学生条目
type TopActiveStudentItem struct {
	StudentID       string   `json:"student_id"`
	StudentName     string   `json:"student_name"`
	StudentEmail    string   `json:"student_email"`
	CollegeName     string   `json:"college_name,omitempty"`
	AttendanceCount int64    `json:"attendance_count"`
	EventsAttended  []string `json:"events_attended"`
}

// TopActiveStudentsResponse 活跃学生榜单响应
type TopActiveStudentsResponse struct {
	TopActiveStudents []TopActiveStudentItem `json:"top_active_students"`
	TotalCount        int                    `json:"total_count"`
}

// DashboardOverview 平台总量统计
type DashboardOverview struct {
	TotalColleges      int64 `json:"total_colleges"`
	TotalStudents      int64 `json:"total_students"`
	TotalEvents        int64 `json:"total_events"`
	TotalRegistrations int64 `json:"total_registrations"`
	TotalAttendances   int64 `json:"total_attendances"`
	TotalFeedback      int64 `json:"total_feedback"`
}

// DashboardRates 平台比率统计
type DashboardRates struct {
	OverallAttendanceRate float64 `json:"overall_attendance_rate"`
	FeedbackRate          float64 `json:"feedback_rate"`
	AverageRating         float64 `json:"average_rating"`
}

// DashboardRecentActivity 近 30 天活跃统计
type DashboardRecentActivity struct {
	RecentEvents        int64 `json:"recent_events"`
	RecentRegistrations int64 `json:"recent_registrations"`
}

// DashboardResponse 平台总览
type DashboardResponse struct {
	Overview              DashboardOverview       `json:"overview"`
	Rates                 DashboardRates          `json:"rates"`
	RecentActivity        DashboardRecentActivity `json:"recent_activity"`
	EventTypeDistribution map[string]int64        `json:"event_type_distribution"`
}
