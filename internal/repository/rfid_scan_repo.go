package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Daniyal-Wajid/ClassTrack/internal/model"
)

// RfidScanRepository 刷卡记录数据访问接口（仅追加）
type RfidScanRepository interface {
	Create(ctx context.Context, scan *model.RfidScan) error
	ListBySession(ctx context.Context, sessionID string) ([]model.RfidScan, error)
}

// rfidScanRepo RfidScanRepository 的 GORM 实现
type rfidScanRepo struct {
	db *gorm.DB
}

// NewRfidScanRepo 创建 RfidScanRepository 实例
func NewRfidScanRepo(db *gorm.DB) RfidScanRepository {
	return &rfidScanRepo{db: db}
}

func (r *rfidScanRepo) Create(ctx context.Context, scan *model.RfidScan) error {
	return r.db.WithContext(ctx).Create(scan).Error
}

func (r *rfidScanRepo) ListBySession(ctx context.Context, sessionID string) ([]model.RfidScan, error) {
	var scans []model.RfidScan
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("session_id = ?", sessionID).
		Order("scanned_at DESC").
		Find(&scans).Error
	if err != nil {
		return nil, err
	}
	return scans, nil
}
