package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Daniyal-Wajid/ClassTrack/internal/model"
)

// CameraLogRepository 摄像头日志数据访问接口（仅追加）
type CameraLogRepository interface {
	Create(ctx context.Context, log *model.CameraLog) error
	ListBySession(ctx context.Context, sessionID string) ([]model.CameraLog, error)
}

// cameraLogRepo CameraLogRepository 的 GORM 实现
type cameraLogRepo struct {
	db *gorm.DB
}

// NewCameraLogRepo 创建 CameraLogRepository 实例
func NewCameraLogRepo(db *gorm.DB) CameraLogRepository {
	return &cameraLogRepo{db: db}
}

func (r *cameraLogRepo) Create(ctx context.Context, log *model.CameraLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *cameraLogRepo) ListBySession(ctx context.Context, sessionID string) ([]model.CameraLog, error) {
	var logs []model.CameraLog
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
