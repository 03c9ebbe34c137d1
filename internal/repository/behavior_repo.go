package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Daniyal-Wajid/ClassTrack/internal/model"
)

// BehaviorRepository 行为日志数据访问接口（仅追加）
type BehaviorRepository interface {
	Create(ctx context.Context, behavior *model.Behavior) error
	List(ctx context.Context, offset, limit int) ([]model.Behavior, int64, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Behavior, error)
	ListBySession(ctx context.Context, sessionID string) ([]model.Behavior, error)
}

// behaviorRepo BehaviorRepository 的 GORM 实现
type behaviorRepo struct {
	db *gorm.DB
}

// NewBehaviorRepo 创建 BehaviorRepository 实例
func NewBehaviorRepo(db *gorm.DB) BehaviorRepository {
	return &behaviorRepo{db: db}
}

func (r *behaviorRepo) Create(ctx context.Context, behavior *model.Behavior) error {
	return r.db.WithContext(ctx).Create(behavior).Error
}

func (r *behaviorRepo) List(ctx context.Context, offset, limit int) ([]model.Behavior, int64, error) {
	var behaviors []model.Behavior
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Behavior{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.
		Preload("Student").
		Offset(offset).Limit(limit).
		Order("occurred_at DESC").
		Find(&behaviors).Error; err != nil {
		return nil, 0, err
	}

	return behaviors, total, nil
}

func (r *behaviorRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Behavior, error) {
	var behaviors []model.Behavior
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("occurred_at DESC").
		Find(&behaviors).Error
	if err != nil {
		return nil, err
	}
	return behaviors, nil
}

func (r *behaviorRepo) ListBySession(ctx context.Context, sessionID string) ([]model.Behavior, error) {
	var behaviors []model.Behavior
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("session_id = ?", sessionID).
		Order("occurred_at DESC").
		Find(&behaviors).Error
	if err != nil {
		return nil, err
	}
	return behaviors, nil
}
