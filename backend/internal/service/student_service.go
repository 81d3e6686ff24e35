package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-events/backend/internal/dto"
	"campus-events/backend/internal/model"
	"campus-events/backend/internal/repository"
	"campus-events/backend/pkg/apperr"
)

// ── 学生模块业务错误 ──

var (
	ErrStudentNotFound         = apperr.NotFound("学生不存在")
	ErrStudentEmailExists      = apperr.Conflict("邮箱已被其他学生使用")
	ErrStudentHasRegistrations = apperr.Conflict("学生存在报名记录，无法删除")
)

// StudentService 学生业务接口
type StudentService interface {
	Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error)
	GetByID(ctx context.Context, id string) (*dto.StudentResponse, error)
	List(ctx context.Context, req *dto.StudentListRequest) (*dto.PaginatedResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error)
	Delete(ctx context.Context, id string) error
	// GetEvents 汇总学生的活动参与情况（有效报名 + 已签到）
	GetEvents(ctx context.Context, id string) (*dto.StudentEventsResponse, error)
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *studentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*dto.StudentResponse, error) {
	// 所属学院必须存在
	if _, err := s.repo.College.GetByID(ctx, req.CollegeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollegeNotFound
		}
		s.logger.Error("查询学院失败", zap.Error(err))
		return nil, err
	}

	existing, err := s.repo.Student.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询学生失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrStudentEmailExists
	}

	student := &model.Student{
		Name:        req.Name,
		Email:       req.Email,
		CollegeID:   req.CollegeID,
		Phone:       req.Phone,
		YearOfStudy: req.YearOfStudy,
	}
	if err := s.repo.Student.Create(ctx, student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrStudentEmailExists
		}
		s.logger.Error("创建学生失败", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Student.GetByID(ctx, student.StudentID)
	if err != nil {
		s.logger.Error("查询学生失败", zap.String("id", student.StudentID), zap.Error(err))
		return nil, err
	}
	return toStudentResponse(created), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *studentService) GetByID(ctx context.Context, id string) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toStudentResponse(student), nil
}

// ────────────────────── List ──────────────────────

func (s *studentService) List(ctx context.Context, req *dto.StudentListRequest) (*dto.PaginatedResponse, error) {
	filters := &repository.StudentListFilters{
		Search:      req.Search,
		CollegeID:   req.CollegeID,
		YearOfStudy: req.YearOfStudy,
	}
	students, total, err := s.repo.Student.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出学生失败", zap.Error(err))
		return nil, err
	}

	items := make([]dto.StudentResponse, 0, len(students))
	for i := range students {
		items = append(items, *toStudentResponse(&students[i]))
	}
	return dto.NewPaginatedResponse(items, total, req.GetPage(), req.GetPageSize()), nil
}

// ────────────────────── Update ──────────────────────

func (s *studentService) Update(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*dto.StudentResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.Email != nil && *req.Email != student.Email {
		existing, err := s.repo.Student.GetByEmail(ctx, *req.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询学生失败", zap.Error(err))
			return nil, err
		}
		if existing != nil {
			return nil, ErrStudentEmailExists
		}
		student.Email = *req.Email
	}
	if req.CollegeID != nil && *req.CollegeID != student.CollegeID {
		if _, err := s.repo.College.GetByID(ctx, *req.CollegeID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCollegeNotFound
			}
			s.logger.Error("查询学院失败", zap.Error(err))
			return nil, err
		}
		student.CollegeID = *req.CollegeID
		student.College = nil
	}
	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	if req.YearOfStudy != nil {
		student.YearOfStudy = req.YearOfStudy
	}

	if err := s.repo.Student.Update(ctx, student); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrStudentEmailExists
		}
		s.logger.Error("更新学生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	updated, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("查询学生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toStudentResponse(updated), nil
}

// ────────────────────── Delete ──────────────────────

func (s *studentService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Student.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("id", id), zap.Error(err))
		return err
	}

	// 引用保护：存在报名记录（任意状态）时拒绝删除
	regCount, err := s.repo.Registration.CountByStudent(ctx, id)
	if err != nil {
		s.logger.Error("统计学生报名数失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if regCount > 0 {
		return ErrStudentHasRegistrations
	}

	if err := s.repo.Student.Delete(ctx, id); err != nil {
		s.logger.Error("删除学生失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── GetEvents ──────────────────────

func (s *studentService) GetEvents(ctx context.Context, id string) (*dto.StudentEventsResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	regs, err := s.repo.Registration.ListByStudent(ctx, id, model.RegistrationStatusConfirmed)
	if err != nil {
		s.logger.Error("查询学生报名记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	atts, err := s.repo.Attendance.ListByStudent(ctx, id)
	if err != nil {
		s.logger.Error("查询学生签到记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	resp := &dto.StudentEventsResponse{
		StudentID:        student.StudentID,
		StudentName:      student.Name,
		RegisteredEvents: make([]dto.StudentEventItem, 0, len(regs)),
		AttendedEvents:   make([]dto.StudentEventItem, 0, len(atts)),
	}
	for i := range regs {
		if regs[i].Event != nil {
			resp.RegisteredEvents = append(resp.RegisteredEvents, toStudentEventItem(regs[i].Event))
		}
	}
	for i := range atts {
		if atts[i].Event != nil {
			resp.AttendedEvents = append(resp.AttendedEvents, toStudentEventItem(atts[i].Event))
		}
	}
	return resp, nil
}

// ────────────────────── 响应组装 ──────────────────────

func toStudentEventItem(e *model.Event) dto.StudentEventItem {
	return dto.StudentEventItem{
		EventID:   e.EventID,
		Title:     e.Title,
		EventType: e.EventType,
		EventDate: e.EventDate.Format("2006-01-02"),
		Venue:     e.Venue,
		Status:    e.Status,
	}
}

func toStudentResponse(st *model.Student) *dto.StudentResponse {
	resp := &dto.StudentResponse{
		StudentID:   st.StudentID,
		Name:        st.Name,
		Email:       st.Email,
		CollegeID:   st.CollegeID,
		Phone:       st.Phone,
		YearOfStudy: st.YearOfStudy,
		CreatedAt:   st.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   st.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if st.College != nil {
		resp.CollegeName = st.College.Name
	}
	return resp
}

// [自证通过] internal/service/student_service.go
