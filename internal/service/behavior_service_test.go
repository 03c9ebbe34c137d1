package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/Daniyal-Wajid/ClassTrack/internal/dto"
	"github.com/Daniyal-Wajid/ClassTrack/internal/model"
)

func setupTestBehaviorService() (BehaviorService, *testRepos) {
	repo, mocks := newTestRepos()
	svc := NewBehaviorService(repo, zap.NewNop())
	return svc, mocks
}

func TestLogBehavior_SnapshotsStudent(t *testing.T) {
	svc, mocks := setupTestBehaviorService()
	mocks.user.users["stu-1"] = &model.User{
		UserID: "stu-1", Name: "学生一", Email: "s1@test.com", Role: model.RoleStudent,
	}

	result, err := svc.Log(context.Background(), &dto.BehaviorLogRequest{
		StudentID: "stu-1",
		SessionID: "sess-1",
		Status:    model.BehaviorSuspicious,
		Details:   "低头看手机",
	})
	if err != nil {
		t.Fatalf("Log 应成功: %v", err)
	}
	if result.Status != model.BehaviorSuspicious {
		t.Errorf("期望 status=suspicious，实际=%s", result.Status)
	}

	stored := mocks.behavior.behaviors[0]
	if stored.SnapshotName == nil || *stored.SnapshotName != "学生一" {
		t.Error("库内学生应冗余快照姓名")
	}
	if stored.SessionID == nil || *stored.SessionID != "sess-1" {
		t.Error("session_id 应已写入")
	}
}

func TestLogBehavior_UnknownStudentNoSnapshot(t *testing.T) {
	// 映射表学生不在库内，日志照常落库但无快照
	svc, mocks := setupTestBehaviorService()

	_, err := svc.Log(context.Background(), &dto.BehaviorLogRequest{
		StudentID: knownTagUserID,
		Status:    model.BehaviorPresent,
	})
	if err != nil {
		t.Fatalf("Log 应成功: %v", err)
	}
	stored := mocks.behavior.behaviors[0]
	if stored.SnapshotName != nil {
		t.Error("库外学生不应有快照姓名")
	}
	if stored.SessionID != nil {
		t.Error("未传 session_id 时应为空")
	}
}

func TestListBehaviorBySession(t *testing.T) {
	svc, _ := setupTestBehaviorService()

	for _, sid := range []string{"sess-1", "sess-1", "sess-2"} {
		if _, err := svc.Log(context.Background(), &dto.BehaviorLogRequest{
			StudentID: "stu-1",
			SessionID: sid,
			Status:    model.BehaviorPresent,
		}); err != nil {
			t.Fatalf("Log 应成功: %v", err)
		}
	}

	rows, err := svc.ListBySession(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("ListBySession 应成功: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("期望 sess-1 有 2 条日志，实际=%d", len(rows))
	}
	for _, r := range rows {
		if r.SessionID != "sess-1" {
			t.Errorf("期望 session_id=sess-1，实际=%s", r.SessionID)
		}
	}
}

func TestListBehaviorByStudent(t *testing.T) {
	svc, _ := setupTestBehaviorService()

	for _, sid := range []string{"stu-1", "stu-2", "stu-1"} {
		if _, err := svc.Log(context.Background(), &dto.BehaviorLogRequest{
			StudentID: sid,
			Status:    model.BehaviorAbsent,
		}); err != nil {
			t.Fatalf("Log 应成功: %v", err)
		}
	}

	rows, err := svc.ListByStudent(context.Background(), "stu-1")
	if err != nil {
		t.Fatalf("ListByStudent 应成功: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("期望 stu-1 有 2 条日志，实际=%d", len(rows))
	}
}
