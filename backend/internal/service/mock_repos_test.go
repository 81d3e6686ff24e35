package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"campus-events/backend/internal/model"
	"campus-events/backend/internal/repository"
)

// ── 共享内存存储 ──
//
// 各 Mock Repo 共用一份 store，以便模拟跨表关联（Preload 语义）
// 与唯一索引约束。遍历顺序使用插入顺序，保证测试可复现。

type mockStore struct {
	colleges      map[string]*model.College
	students      map[string]*model.Student
	events        map[string]*model.Event
	registrations map[string]*model.Registration
	attendances   map[string]*model.Attendance
	feedback      map[string]*model.Feedback

	studentOrder      []string
	eventOrder        []string
	registrationOrder []string
	attendanceOrder   []string
	feedbackOrder     []string

	seq int
}

func newMockStore() *mockStore {
	return &mockStore{
		colleges:      make(map[string]*model.College),
		students:      make(map[string]*model.Student),
		events:        make(map[string]*model.Event),
		registrations: make(map[string]*model.Registration),
		attendances:   make(map[string]*model.Attendance),
		feedback:      make(map[string]*model.Feedback),
	}
}

func (s *mockStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%03d", prefix, s.seq)
}

// ── Mock CollegeRepository ──

type mockCollegeRepo struct {
	store *mockStore
}

func (m *mockCollegeRepo) Create(_ context.Context, college *model.College) error {
	if college.CollegeID == "" {
		college.CollegeID = m.store.nextID("col")
	}
	college.CreatedAt = time.Now()
	college.UpdatedAt = time.Now()
	m.store.colleges[college.CollegeID] = college
	return nil
}

func (m *mockCollegeRepo) GetByID(_ context.Context, id string) (*model.College, error) {
	if c, ok := m.store.colleges[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCollegeRepo) GetByName(_ context.Context, name string) (*model.College, error) {
	for _, c := range m.store.colleges {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCollegeRepo) List(_ context.Context, search string, offset, limit int) ([]model.College, int64, error) {
	var all []model.College
	for _, c := range m.store.colleges {
		if search != "" && !strings.Contains(c.Name, search) {
			continue
		}
		all = append(all, *c)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockCollegeRepo) Update(_ context.Context, college *model.College) error {
	college.UpdatedAt = time.Now()
	m.store.colleges[college.CollegeID] = college
	return nil
}

func (m *mockCollegeRepo) Delete(_ context.Context, id string) error {
	delete(m.store.colleges, id)
	return nil
}

func (m *mockCollegeRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.store.colleges)), nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	store *mockStore
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	for _, st := range m.store.students {
		if st.Email == student.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if student.StudentID == "" {
		student.StudentID = m.store.nextID("stu")
	}
	student.CreatedAt = time.Now()
	student.UpdatedAt = time.Now()
	m.store.students[student.StudentID] = student
	m.store.studentOrder = append(m.store.studentOrder, student.StudentID)
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	st, ok := m.store.students[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *st
	if c, ok := m.store.colleges[st.CollegeID]; ok {
		out.College = c
	}
	return &out, nil
}

func (m *mockStudentRepo) GetByEmail(_ context.Context, email string) (*model.Student, error) {
	for _, st := range m.store.students {
		if st.Email == email {
			return st, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) matches(st *model.Student, filters *repository.StudentListFilters) bool {
	if filters == nil {
		return true
	}
	if filters.CollegeID != "" && st.CollegeID != filters.CollegeID {
		return false
	}
	if filters.YearOfStudy != nil && (st.YearOfStudy == nil || *st.YearOfStudy != *filters.YearOfStudy) {
		return false
	}
	if filters.Search != "" && !strings.Contains(st.Name, filters.Search) && !strings.Contains(st.Email, filters.Search) {
		return false
	}
	return true
}

func (m *mockStudentRepo) List(ctx context.Context, filters *repository.StudentListFilters, offset, limit int) ([]model.Student, int64, error) {
	all, err := m.ListWithFilters(ctx, filters)
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockStudentRepo) ListWithFilters(_ context.Context, filters *repository.StudentListFilters) ([]model.Student, error) {
	var result []model.Student
	for _, id := range m.store.studentOrder {
		st, ok := m.store.students[id]
		if !ok || !m.matches(st, filters) {
			continue
		}
		out := *st
		if c, ok := m.store.colleges[st.CollegeID]; ok {
			out.College = c
		}
		result = append(result, out)
	}
	return result, nil
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	student.UpdatedAt = time.Now()
	m.store.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) Delete(_ context.Context, id string) error {
	delete(m.store.students, id)
	return nil
}

func (m *mockStudentRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.store.students)), nil
}

func (m *mockStudentRepo) CountByCollege(_ context.Context, collegeID string) (int64, error) {
	var count int64
	for _, st := range m.store.students {
		if st.CollegeID == collegeID {
			count++
		}
	}
	return count, nil
}

// ── Mock EventRepository ──

type mockEventRepo struct {
	store *mockStore
}

func (m *mockEventRepo) Create(_ context.Context, event *model.Event) error {
	if event.EventID == "" {
		event.EventID = m.store.nextID("evt")
	}
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	m.store.events[event.EventID] = event
	m.store.eventOrder = append(m.store.eventOrder, event.EventID)
	return nil
}

func (m *mockEventRepo) GetByID(_ context.Context, id string) (*model.Event, error) {
	event, ok := m.store.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *event
	if c, ok := m.store.colleges[event.CollegeID]; ok {
		out.College = c
	}
	return &out, nil
}

func (m *mockEventRepo) matches(event *model.Event, filters *repository.EventListFilters) bool {
	if filters == nil {
		return true
	}
	if filters.EventID != "" && event.EventID != filters.EventID {
		return false
	}
	if filters.CollegeID != "" && event.CollegeID != filters.CollegeID {
		return false
	}
	if filters.EventType != "" && event.EventType != filters.EventType {
		return false
	}
	if filters.Status != "" && event.Status != filters.Status {
		return false
	}
	if filters.StartDate != nil && event.EventDate.Before(*filters.StartDate) {
		return false
	}
	if filters.EndDate != nil && event.EventDate.After(*filters.EndDate) {
		return false
	}
	if filters.Search != "" && !strings.Contains(event.Title, filters.Search) && !strings.Contains(event.Description, filters.Search) {
		return false
	}
	return true
}

func (m *mockEventRepo) List(ctx context.Context, filters *repository.EventListFilters, offset, limit int) ([]model.Event, int64, error) {
	all, err := m.ListWithFilters(ctx, filters)
	if err != nil {
		return nil, 0, err
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockEventRepo) ListWithFilters(_ context.Context, filters *repository.EventListFilters) ([]model.Event, error) {
	var result []model.Event
	for _, id := range m.store.eventOrder {
		event, ok := m.store.events[id]
		if !ok || !m.matches(event, filters) {
			continue
		}
		out := *event
		if c, ok := m.store.colleges[event.CollegeID]; ok {
			out.College = c
		}
		result = append(result, out)
	}
	return result, nil
}

func (m *mockEventRepo) ListIDsByType(_ context.Context, eventType string) ([]string, error) {
	var ids []string
	for _, id := range m.store.eventOrder {
		if event, ok := m.store.events[id]; ok && event.EventType == eventType {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (m *mockEventRepo) Update(_ context.Context, event *model.Event) error {
	event.UpdatedAt = time.Now()
	m.store.events[event.EventID] = event
	return nil
}

func (m *mockEventRepo) Delete(_ context.Context, id string) error {
	delete(m.store.events, id)
	return nil
}

func (m *mockEventRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.store.events)), nil
}

func (m *mockEventRepo) CountByCollege(_ context.Context, collegeID string) (int64, error) {
	var count int64
	for _, event := range m.store.events {
		if event.CollegeID == collegeID {
			count++
		}
	}
	return count, nil
}

func (m *mockEventRepo) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	var count int64
	for _, event := range m.store.events {
		if !event.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (m *mockEventRepo) ListTypeCounts(_ context.Context) ([]repository.EventTypeCount, error) {
	counts := make(map[string]int64)
	for _, event := range m.store.events {
		counts[event.EventType]++
	}
	var result []repository.EventTypeCount
	for _, id := range m.store.eventOrder {
		event, ok := m.store.events[id]
		if !ok {
			continue
		}
		if c, seen := counts[event.EventType]; seen {
			result = append(result, repository.EventTypeCount{EventType: event.EventType, Count: c})
			delete(counts, event.EventType)
		}
	}
	return result, nil
}

// ── Mock RegistrationRepository ──

type mockRegistrationRepo struct {
	store *mockStore
}

func (m *mockRegistrationRepo) CreateConfirmed(_ context.Context, reg *model.Registration, maxCapacity int) error {
	if _, ok := m.store.events[reg.EventID]; !ok {
		return gorm.ErrRecordNotFound
	}
	var confirmed int
	for _, r := range m.store.registrations {
		if r.EventID == reg.EventID && r.Status == model.RegistrationStatusConfirmed {
			confirmed++
		}
	}
	if confirmed >= maxCapacity {
		return repository.ErrCapacityExceeded
	}
	for _, r := range m.store.registrations {
		if r.StudentID == reg.StudentID && r.EventID == reg.EventID {
			return gorm.ErrDuplicatedKey
		}
	}
	if reg.RegistrationID == "" {
		reg.RegistrationID = m.store.nextID("reg")
	}
	reg.CreatedAt = time.Now()
	reg.UpdatedAt = time.Now()
	m.store.registrations[reg.RegistrationID] = reg
	m.store.registrationOrder = append(m.store.registrationOrder, reg.RegistrationID)
	return nil
}

func (m *mockRegistrationRepo) GetByID(_ context.Context, id string) (*model.Registration, error) {
	reg, ok := m.store.registrations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *reg
	if st, ok := m.store.students[reg.StudentID]; ok {
		out.Student = st
	}
	if event, ok := m.store.events[reg.EventID]; ok {
		out.Event = event
	}
	return &out, nil
}

func (m *mockRegistrationRepo) GetByPair(_ context.Context, studentID, eventID string) (*model.Registration, error) {
	for _, reg := range m.store.registrations {
		if reg.StudentID == studentID && reg.EventID == eventID {
			return reg, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRegistrationRepo) List(_ context.Context, filters *repository.RegistrationListFilters, offset, limit int) ([]model.Registration, int64, error) {
	var all []model.Registration
	for _, id := range m.store.registrationOrder {
		reg, ok := m.store.registrations[id]
		if !ok {
			continue
		}
		if filters != nil {
			if filters.StudentID != "" && reg.StudentID != filters.StudentID {
				continue
			}
			if filters.EventID != "" && reg.EventID != filters.EventID {
				continue
			}
			if filters.Status != "" && reg.Status != filters.Status {
				continue
			}
		}
		out := *reg
		if st, ok := m.store.students[reg.StudentID]; ok {
			out.Student = st
		}
		if event, ok := m.store.events[reg.EventID]; ok {
			out.Event = event
		}
		all = append(all, out)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockRegistrationRepo) ListByStudent(_ context.Context, studentID, status string) ([]model.Registration, error) {
	var result []model.Registration
	for _, id := range m.store.registrationOrder {
		reg, ok := m.store.registrations[id]
		if !ok || reg.StudentID != studentID {
			continue
		}
		if status != "" && reg.Status != status {
			continue
		}
		out := *reg
		if event, ok := m.store.events[reg.EventID]; ok {
			out.Event = event
		}
		result = append(result, out)
	}
	return result, nil
}

func (m *mockRegistrationRepo) ListByEvent(_ context.Context, eventID, status string) ([]model.Registration, error) {
	var result []model.Registration
	for _, id := range m.store.registrationOrder {
		reg, ok := m.store.registrations[id]
		if !ok || reg.EventID != eventID {
			continue
		}
		if status != "" && reg.Status != status {
			continue
		}
		result = append(result, *reg)
	}
	return result, nil
}

func (m *mockRegistrationRepo) Update(_ context.Context, reg *model.Registration) error {
	reg.UpdatedAt = time.Now()
	stored := *reg
	stored.Student = nil
	stored.Event = nil
	m.store.registrations[reg.RegistrationID] = &stored
	return nil
}

func (m *mockRegistrationRepo) Delete(_ context.Context, id string) error {
	delete(m.store.registrations, id)
	return nil
}

func (m *mockRegistrationRepo) CountByEvent(_ context.Context, eventID, status string) (int64, error) {
	var count int64
	for _, reg := range m.store.registrations {
		if reg.EventID != eventID {
			continue
		}
		if status != "" && reg.Status != status {
			continue
		}
		count++
	}
	return count, nil
}

func (m *mockRegistrationRepo) CountByStudent(_ context.Context, studentID string) (int64, error) {
	var count int64
	for _, reg := range m.store.registrations {
		if reg.StudentID == studentID {
			count++
		}
	}
	return count, nil
}

func (m *mockRegistrationRepo) CountConfirmed(_ context.Context) (int64, error) {
	var count int64
	for _, reg := range m.store.registrations {
		if reg.Status == model.RegistrationStatusConfirmed {
			count++
		}
	}
	return count, nil
}

func (m *mockRegistrationRepo) CountCreatedSince(_ context.Context, since time.Time) (int64, error) {
	var count int64
	for _, reg := range m.store.registrations {
		if !reg.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	store *mockStore
}

func (m *mockAttendanceRepo) Create(_ context.Context, att *model.Attendance) error {
	for _, a := range m.store.attendances {
		if a.StudentID == att.StudentID && a.EventID == att.EventID {
			return gorm.ErrDuplicatedKey
		}
	}
	if att.AttendanceID == "" {
		att.AttendanceID = m.store.nextID("att")
	}
	m.store.attendances[att.AttendanceID] = att
	m.store.attendanceOrder = append(m.store.attendanceOrder, att.AttendanceID)
	return nil
}

func (m *mockAttendanceRepo) BatchCreate(ctx context.Context, atts []*model.Attendance) error {
	for _, att := range atts {
		if err := m.Create(ctx, att); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockAttendanceRepo) GetByID(_ context.Context, id string) (*model.Attendance, error) {
	att, ok := m.store.attendances[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *att
	if st, ok := m.store.students[att.StudentID]; ok {
		out.Student = st
	}
	if event, ok := m.store.events[att.EventID]; ok {
		out.Event = event
	}
	return &out, nil
}

func (m *mockAttendanceRepo) GetByPair(_ context.Context, studentID, eventID string) (*model.Attendance, error) {
	for _, att := range m.store.attendances {
		if att.StudentID == studentID && att.EventID == eventID {
			return att, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) List(_ context.Context, filters *repository.AttendanceListFilters, offset, limit int) ([]model.Attendance, int64, error) {
	var all []model.Attendance
	for _, id := range m.store.attendanceOrder {
		att, ok := m.store.attendances[id]
		if !ok {
			continue
		}
		if filters != nil {
			if filters.StudentID != "" && att.StudentID != filters.StudentID {
				continue
			}
			if filters.EventID != "" && att.EventID != filters.EventID {
				continue
			}
		}
		all = append(all, *att)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockAttendanceRepo) ListByStudent(_ context.Context, studentID string) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, id := range m.store.attendanceOrder {
		att, ok := m.store.attendances[id]
		if !ok || att.StudentID != studentID {
			continue
		}
		out := *att
		if event, ok := m.store.events[att.EventID]; ok {
			out.Event = event
		}
		result = append(result, out)
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListByEvent(_ context.Context, eventID string) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, id := range m.store.attendanceOrder {
		att, ok := m.store.attendances[id]
		if !ok || att.EventID != eventID {
			continue
		}
		out := *att
		if st, ok := m.store.students[att.StudentID]; ok {
			out.Student = st
		}
		result = append(result, out)
	}
	return result, nil
}

func (m *mockAttendanceRepo) Delete(_ context.Context, id string) error {
	delete(m.store.attendances, id)
	return nil
}

func (m *mockAttendanceRepo) CountByEvent(_ context.Context, eventID string) (int64, error) {
	var count int64
	for _, att := range m.store.attendances {
		if att.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func (m *mockAttendanceRepo) CountByStudent(_ context.Context, studentID string) (int64, error) {
	var count int64
	for _, att := range m.store.attendances {
		if att.StudentID == studentID {
			count++
		}
	}
	return count, nil
}

func (m *mockAttendanceRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.store.attendances)), nil
}

func (m *mockAttendanceRepo) ListStudentAttendanceCounts(_ context.Context, eventIDs []string, limit int) ([]repository.StudentAttendanceCount, error) {
	idSet := make(map[string]bool, len(eventIDs))
	for _, id := range eventIDs {
		idSet[id] = true
	}

	counts := make(map[string]int64)
	var studentOrder []string
	for _, id := range m.store.attendanceOrder {
		att, ok := m.store.attendances[id]
		if !ok {
			continue
		}
		if len(eventIDs) > 0 && !idSet[att.EventID] {
			continue
		}
		if _, seen := counts[att.StudentID]; !seen {
			studentOrder = append(studentOrder, att.StudentID)
		}
		counts[att.StudentID]++
	}

	result := make([]repository.StudentAttendanceCount, 0, len(counts))
	for _, sid := range studentOrder {
		result = append(result, repository.StudentAttendanceCount{StudentID: sid, Count: counts[sid]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// ── Mock FeedbackRepository ──

type mockFeedbackRepo struct {
	store *mockStore
}

func (m *mockFeedbackRepo) Create(_ context.Context, fb *model.Feedback) error {
	for _, f := range m.store.feedback {
		if f.StudentID == fb.StudentID && f.EventID == fb.EventID {
			return gorm.ErrDuplicatedKey
		}
	}
	if fb.FeedbackID == "" {
		fb.FeedbackID = m.store.nextID("fbk")
	}
	m.store.feedback[fb.FeedbackID] = fb
	m.store.feedbackOrder = append(m.store.feedbackOrder, fb.FeedbackID)
	return nil
}

func (m *mockFeedbackRepo) GetByID(_ context.Context, id string) (*model.Feedback, error) {
	fb, ok := m.store.feedback[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *fb
	if st, ok := m.store.students[fb.StudentID]; ok {
		out.Student = st
	}
	if event, ok := m.store.events[fb.EventID]; ok {
		out.Event = event
	}
	return &out, nil
}

func (m *mockFeedbackRepo) GetByPair(_ context.Context, studentID, eventID string) (*model.Feedback, error) {
	for _, fb := range m.store.feedback {
		if fb.StudentID == studentID && fb.EventID == eventID {
			return fb, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockFeedbackRepo) List(_ context.Context, filters *repository.FeedbackListFilters, offset, limit int) ([]model.Feedback, int64, error) {
	var all []model.Feedback
	for _, id := range m.store.feedbackOrder {
		fb, ok := m.store.feedback[id]
		if !ok {
			continue
		}
		if filters != nil {
			if filters.StudentID != "" && fb.StudentID != filters.StudentID {
				continue
			}
			if filters.EventID != "" && fb.EventID != filters.EventID {
				continue
			}
			if filters.MinRating != nil && fb.Rating < *filters.MinRating {
				continue
			}
			if filters.MaxRating != nil && fb.Rating > *filters.MaxRating {
				continue
			}
		}
		all = append(all, *fb)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockFeedbackRepo) ListByEvent(_ context.Context, eventID string) ([]model.Feedback, error) {
	var result []model.Feedback
	for _, id := range m.store.feedbackOrder {
		fb, ok := m.store.feedback[id]
		if !ok || fb.EventID != eventID {
			continue
		}
		result = append(result, *fb)
	}
	return result, nil
}

func (m *mockFeedbackRepo) ListByStudent(_ context.Context, studentID string) ([]model.Feedback, error) {
	var result []model.Feedback
	for _, id := range m.store.feedbackOrder {
		fb, ok := m.store.feedback[id]
		if !ok || fb.StudentID != studentID {
			continue
		}
		result = append(result, *fb)
	}
	return result, nil
}

func (m *mockFeedbackRepo) Update(_ context.Context, fb *model.Feedback) error {
	stored := *fb
	stored.Student = nil
	stored.Event = nil
	m.store.feedback[fb.FeedbackID] = &stored
	return nil
}

func (m *mockFeedbackRepo) Delete(_ context.Context, id string) error {
	delete(m.store.feedback, id)
	return nil
}

func (m *mockFeedbackRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.store.feedback)), nil
}

func (m *mockFeedbackRepo) CountByStudent(_ context.Context, studentID string) (int64, error) {
	var count int64
	for _, fb := range m.store.feedback {
		if fb.StudentID == studentID {
			count++
		}
	}
	return count, nil
}

func (m *mockFeedbackRepo) AverageRating(_ context.Context) (*float64, error) {
	var sum, count int64
	for _, fb := range m.store.feedback {
		sum += int64(fb.Rating)
		count++
	}
	if count == 0 {
		return nil, nil
	}
	avg := float64(sum) / float64(count)
	return &avg, nil
}

func (m *mockFeedbackRepo) AverageRatingByEvent(_ context.Context, eventID string) (*float64, error) {
	var sum, count int64
	for _, fb := range m.store.feedback {
		if fb.EventID != eventID {
			continue
		}
		sum += int64(fb.Rating)
		count++
	}
	if count == 0 {
		return nil, nil
	}
	avg := float64(sum) / float64(count)
	return &avg, nil
}

func (m *mockFeedbackRepo) ListRatingCounts(_ context.Context, eventID string) ([]repository.RatingCount, error) {
	counts := make(map[int]int64)
	for _, fb := range m.store.feedback {
		if fb.EventID == eventID {
			counts[fb.Rating]++
		}
	}
	var result []repository.RatingCount
	for rating := 1; rating <= 5; rating++ {
		if c, ok := counts[rating]; ok {
			result = append(result, repository.RatingCount{Rating: rating, Count: c})
		}
	}
	return result, nil
}

func (m *mockFeedbackRepo) ListAllRatingCounts(_ context.Context) ([]repository.RatingCount, error) {
	counts := make(map[int]int64)
	for _, fb := range m.store.feedback {
		counts[fb.Rating]++
	}
	var result []repository.RatingCount
	for rating := 1; rating <= 5; rating++ {
		if c, ok := counts[rating]; ok {
			result = append(result, repository.RatingCount{Rating: rating, Count: c})
		}
	}
	return result, nil
}

func (m *mockFeedbackRepo) CountEventsWithFeedback(_ context.Context) (int64, error) {
	events := make(map[string]struct{})
	for _, fb := range m.store.feedback {
		events[fb.EventID] = struct{}{}
	}
	return int64(len(events)), nil
}

// ── 测试装配 ──

func newMockRepository() (*repository.Repository, *mockStore) {
	store := newMockStore()
	repo := &repository.Repository{
		College:      &mockCollegeRepo{store: store},
		Student:      &mockStudentRepo{store: store},
		Event:        &mockEventRepo{store: store},
		Registration: &mockRegistrationRepo{store: store},
		Attendance:   &mockAttendanceRepo{store: store},
		Feedback:     &mockFeedbackRepo{store: store},
	}
	return repo, store
}

// seedCollege 预置学院
func seedCollege(store *mockStore, name string) *model.College {
	college := &model.College{
		CollegeID: store.nextID("col"),
		Name:      name,
	}
	store.colleges[college.CollegeID] = college
	return college
}

// seedStudent 预置学生
func seedStudent(store *mockStore, name, email, collegeID string) *model.Student {
	student := &model.Student{
		StudentID: store.nextID("stu"),
		Name:      name,
		Email:     email,
		CollegeID: collegeID,
	}
	store.students[student.StudentID] = student
	store.studentOrder = append(store.studentOrder, student.StudentID)
	return student
}

// seedEvent 预置活动
func seedEvent(store *mockStore, title, collegeID string, eventDate time.Time, maxCapacity int) *model.Event {
	event := &model.Event{
		EventID:     store.nextID("evt"),
		Title:       title,
		EventType:   model.EventTypeWorkshop,
		EventDate:   eventDate,
		CollegeID:   collegeID,
		MaxCapacity: maxCapacity,
		Status:      model.EventStatusActive,
	}
	event.CreatedAt = time.Now()
	store.events[event.EventID] = event
	store.eventOrder = append(store.eventOrder, event.EventID)
	return event
}

// seedRegistration 预置报名
func seedRegistration(store *mockStore, studentID, eventID, status string) *model.Registration {
	reg := &model.Registration{
		RegistrationID: store.nextID("reg"),
		StudentID:      studentID,
		EventID:        eventID,
		Status:         status,
	}
	reg.CreatedAt = time.Now()
	store.registrations[reg.RegistrationID] = reg
	store.registrationOrder = append(store.registrationOrder, reg.RegistrationID)
	return reg
}

// seedAttendance 预置签到
func seedAttendance(store *mockStore, studentID, eventID string) *model.Attendance {
	att := &model.Attendance{
		AttendanceID: store.nextID("att"),
		StudentID:    studentID,
		EventID:      eventID,
		AttendedAt:   time.Now(),
	}
	store.attendances[att.AttendanceID] = att
	store.attendanceOrder = append(store.attendanceOrder, att.AttendanceID)
	return att
}

// seedFeedback 预置反馈
func seedFeedback(store *mockStore, studentID, eventID string, rating int) *model.Feedback {
	fb := &model.Feedback{
		FeedbackID:  store.nextID("fbk"),
		StudentID:   studentID,
		EventID:     eventID,
		Rating:      rating,
		SubmittedAt: time.Now(),
	}
	store.feedback[fb.FeedbackID] = fb
	store.feedbackOrder = append(store.feedbackOrder, fb.FeedbackID)
	return fb
}

// pastDate / futureDate 相对当天的日期（UTC 零点）
func pastDate(days int) time.Time {
	n := time.Now().AddDate(0, 0, -days)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

func futureDate(days int) time.Time {
	n := time.Now().AddDate(0, 0, days)
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, time.UTC)
}

// [自证通过] internal/service/mock_repos_test.go
