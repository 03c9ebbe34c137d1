package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Daniyal-Wajid/ClassTrack/internal/model"
)

func setupTestExportService() (ExportService, *testRepos) {
	repo, mocks := newTestRepos()
	svc := NewExportService(testConfig(), repo, zap.NewNop())
	return svc, mocks
}

func TestExportSectionAttendance_SectionNotFound(t *testing.T) {
	svc, _ := setupTestExportService()

	_, _, err := svc.ExportSectionAttendance(context.Background(), "nonexistent")
	if !errors.Is(err, ErrSectionNotFound) {
		t.Errorf("期望 ErrSectionNotFound，实际: %v", err)
	}
}

func TestExportSectionAttendance_NoSessions(t *testing.T) {
	svc, mocks := setupTestExportService()
	instID := "inst-1"
	seedSection(mocks, "section-1", &instID, false)

	_, _, err := svc.ExportSectionAttendance(context.Background(), "section-1")
	if !errors.Is(err, ErrExportNoSessions) {
		t.Errorf("期望 ErrExportNoSessions，实际: %v", err)
	}
}

func TestExportSectionAttendance_Success(t *testing.T) {
	svc, mocks := setupTestExportService()
	instID := "inst-1"
	seedSection(mocks, "section-1", &instID, false)
	mocks.section.enrolled["section-1"] = []model.User{
		{UserID: "stu-1", Name: "学生一", StudentID: "2024001", Email: "s1@test.com"},
		{UserID: "stu-2", Name: "学生二", StudentID: "2024002", Email: "s2@test.com"},
	}

	now := time.Now()
	mocks.session.sessions["sess-1"] = &model.Session{
		SessionID: "sess-1",
		CourseID:  "course-1",
		SectionID: "section-1",
		Status:    model.SessionEnded,
		StartTime: now.Add(-time.Hour),
		EndTime:   &now,
	}
	_ = mocks.attendance.Upsert(context.Background(), &model.Attendance{
		SectionID:   "section-1",
		SessionID:   "sess-1",
		StudentID:   "stu-1",
		Status:      model.AttendancePresent,
		CheckInTime: &now,
	})
	_ = mocks.attendance.Upsert(context.Background(), &model.Attendance{
		SectionID: "section-1",
		SessionID: "sess-1",
		StudentID: "stu-2",
		Status:    model.AttendanceAbsent,
	})

	buf, filename, err := svc.ExportSectionAttendance(context.Background(), "section-1")
	if err != nil {
		t.Fatalf("ExportSectionAttendance 应成功: %v", err)
	}
	if buf == nil || buf.Len() == 0 {
		t.Fatal("Excel 内容不应为空")
	}
	// xlsx 本质是 zip，校验魔数
	head := buf.Bytes()[:2]
	if head[0] != 'P' || head[1] != 'K' {
		t.Error("Excel 输出应为合法的 zip 容器")
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("文件名应以 .xlsx 结尾，实际=%s", filename)
	}
	if !strings.Contains(filename, "A 班") {
		t.Errorf("文件名应包含教学班名称，实际=%s", filename)
	}
}

func TestExportSectionAttendance_IncludesRfidStudents(t *testing.T) {
	// 有记录但不在选课名单的映射表学生也进入导出行集合
	svc, mocks := setupTestExportService()
	instID := "inst-1"
	seedSection(mocks, "section-1", &instID, false)

	now := time.Now()
	mocks.session.sessions["sess-1"] = &model.Session{
		SessionID: "sess-1",
		CourseID:  "course-1",
		SectionID: "section-1",
		Status:    model.SessionEnded,
		StartTime: now,
	}
	_ = mocks.attendance.Upsert(context.Background(), &model.Attendance{
		SectionID:   "section-1",
		SessionID:   "sess-1",
		StudentID:   knownTagUserID,
		Status:      model.AttendancePresent,
		CheckInTime: &now,
	})

	buf, _, err := svc.ExportSectionAttendance(context.Background(), "section-1")
	if err != nil {
		t.Fatalf("ExportSectionAttendance 应成功: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("Excel 内容不应为空")
	}
}
