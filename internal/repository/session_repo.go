package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Daniyal-Wajid/ClassTrack/internal/model"
)

// SessionRepository 点名会话数据访问接口
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByID(ctx context.Context, id string) (*model.Session, error)
	GetOngoingByInstructor(ctx context.Context, instructorID string) (*model.Session, error)
	GetOngoingByHardInstructor(ctx context.Context) (*model.Session, error)
	GetOngoingBySection(ctx context.Context, sectionID string) (*model.Session, error)
	GetOngoingByCourse(ctx context.Context, courseID string) (*model.Session, error)
	End(ctx context.Context, id string, endTime time.Time) error
	List(ctx context.Context) ([]model.Session, error)
	ListBySection(ctx context.Context, sectionID string) ([]model.Session, error)
	ListOngoing(ctx context.Context) ([]model.Session, error)
}

// sessionRepo SessionRepository 的 GORM 实现
type sessionRepo struct {
	db *gorm.DB
}

// NewSessionRepo 创建 SessionRepository 实例
func NewSessionRepo(db *gorm.DB) SessionRepository {
	return &sessionRepo{db: db}
}

// Create 写入新会话；同讲师重复进行中会话由部分唯一索引拦截，
// 冲突被翻译为 gorm.ErrDuplicatedKey
func (r *sessionRepo) Create(ctx context.Context, session *model.Session) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Section").
		Preload("Instructor").
		Where("session_id = ?", id).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) GetOngoingByInstructor(ctx context.Context, instructorID string) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Section").
		Preload("Instructor").
		Where("instructor_id = ? AND status = ?", instructorID, model.SessionOngoing).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) GetOngoingByHardInstructor(ctx context.Context) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Section").
		Where("hard_instructor = ? AND status = ?", true, model.SessionOngoing).
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) GetOngoingBySection(ctx context.Context, sectionID string) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Section").
		Preload("Instructor").
		Where("section_id = ? AND status = ?", sectionID, model.SessionOngoing).
		Order("start_time DESC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepo) GetOngoingByCourse(ctx context.Context, courseID string) (*model.Session, error) {
	var session model.Session
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Section").
		Preload("Instructor").
		Where("course_id = ? AND status = ?", courseID, model.SessionOngoing).
		Order("start_time DESC").
		First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// End 仅对仍在进行中的会话生效，重复结束返回 ErrRecordNotFound
func (r *sessionRepo) End(ctx context.Context, id string, endTime time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&model.Session{}).
		Where("session_id = ? AND status = ?", id, model.SessionOngoing).
		Updates(map[string]interface{}{
			"status":   model.SessionEnded,
			"end_time": endTime,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *sessionRepo) List(ctx context.Context) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Section").
		Preload("Instructor").
		Order("start_time DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepo) ListBySection(ctx context.Context, sectionID string) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Where("section_id = ?", sectionID).
		Order("start_time DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepo) ListOngoing(ctx context.Context) ([]model.Session, error) {
	var sessions []model.Session
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Section").
		Preload("Instructor").
		Where("status = ?", model.SessionOngoing).
		Order("start_time DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
