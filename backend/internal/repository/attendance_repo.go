package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-events/backend/internal/model"
)

// AttendanceListFilters 签到列表查询条件
type AttendanceListFilters struct {
	StudentID string
	EventID   string
}

// StudentAttendanceCount 学生签到次数统计项（活跃学生榜单用）
type StudentAttendanceCount struct {
	StudentID string `json:"student_id"`
	Count     int64  `json:"count"`
}

// AttendanceRepository 签到数据访问接口
type AttendanceRepository interface {
	Create(ctx context.Context, att *model.Attendance) error
	// BatchCreate 在单个事务中写入一批签到记录，任一失败则整体回滚
	BatchCreate(ctx context.Context, atts []*model.Attendance) error
	GetByID(ctx context.Context, id string) (*model.Attendance, error)
	GetByPair(ctx context.Context, studentID, eventID string) (*model.Attendance, error)
	List(ctx context.Context, filters *AttendanceListFilters, offset, limit int) ([]model.Attendance, int64, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Attendance, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.Attendance, error)
	Delete(ctx context.Context, id string) error
	CountByEvent(ctx context.Context, eventID string) (int64, error)
	CountByStudent(ctx context.Context, studentID string) (int64, error)
	Count(ctx context.Context) (int64, error)
	// ListStudentAttendanceCounts 按签到次数降序返回学生统计，
	// eventIDs 非空时仅统计这些活动，limit <= 0 表示不限制
	ListStudentAttendanceCounts(ctx context.Context, eventIDs []string, limit int) ([]StudentAttendanceCount, error)
}

// attendanceRepo AttendanceRepository 的 GORM 实现
type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

func (r *attendanceRepo) Create(ctx context.Context, att *model.Attendance) error {
	return r.db.WithContext(ctx).Create(att).Error
}

func (r *attendanceRepo) BatchCreate(ctx context.Context, atts []*model.Attendance) error {
	if len(atts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, att := range atts {
			if err := tx.Create(att).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *attendanceRepo) GetByID(ctx context.Context, id string) (*model.Attendance, error) {
	var att model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Event").
		Where("attendance_id = ?", id).
		First(&att).Error
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *attendanceRepo) GetByPair(ctx context.Context, studentID, eventID string) (*model.Attendance, error) {
	var att model.Attendance
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND event_id = ?", studentID, eventID).
		First(&att).Error
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *attendanceRepo) List(ctx context.Context, filters *AttendanceListFilters, offset, limit int) ([]model.Attendance, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Attendance{})
	if filters != nil {
		if filters.StudentID != "" {
			query = query.Where("student_id = ?", filters.StudentID)
		}
		if filters.EventID != "" {
			query = query.Where("event_id = ?", filters.EventID)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var atts []model.Attendance
	err := query.
		Preload("Student").
		Preload("Event").
		Order("attended_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&atts).Error
	return atts, total, err
}

func (r *attendanceRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Attendance, error) {
	var atts []model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Event").
		Where("student_id = ?", studentID).
		Order("attended_at DESC").
		Find(&atts).Error
	return atts, err
}

func (r *attendanceRepo) ListByEvent(ctx context.Context, eventID string) ([]model.Attendance, error) {
	var atts []model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("event_id = ?", eventID).
		Order("attended_at ASC").
		Find(&atts).Error
	return atts, err
}

func (r *attendanceRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("attendance_id = ?", id).
		Delete(&model.Attendance{}).Error
}

func (r *attendanceRepo) CountByEvent(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Attendance{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

func (r *attendanceRepo) CountByStudent(ctx context.Context, studentID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Attendance{}).
		Where("student_id = ?", studentID).
		Count(&count).Error
	return count, err
}

func (r *attendanceRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Attendance{}).Count(&count).Error
	return count, err
}

func (r *attendanceRepo) ListStudentAttendanceCounts(ctx context.Context, eventIDs []string, limit int) ([]StudentAttendanceCount, error) {
	query := r.db.WithContext(ctx).
		Model(&model.Attendance{}).
		Select("student_id, COUNT(*) AS count").
		Group("student_id").
		Order("count DESC")
	if len(eventIDs) > 0 {
		query = query.Where("event_id IN ?", eventIDs)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var counts []StudentAttendanceCount
	err := query.Scan(&counts).Error
	return counts, err
}

// [自证通过] internal/repository/attendance_repo.go
