package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Daniyal-Wajid/ClassTrack/internal/model"
)

// AttendanceRepository 考勤数据访问接口
type AttendanceRepository interface {
	Upsert(ctx context.Context, att *model.Attendance) error
	BatchCreate(ctx context.Context, atts []model.Attendance) error
	GetBySessionStudent(ctx context.Context, sessionID, studentID string) (*model.Attendance, error)
	ListBySession(ctx context.Context, sessionID string) ([]model.Attendance, error)
	ListBySection(ctx context.Context, sectionID string) ([]model.Attendance, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Attendance, error)
	ListAll(ctx context.Context, offset, limit int) ([]model.Attendance, int64, error)
}

// attendanceRepo AttendanceRepository 的 GORM 实现
type attendanceRepo struct {
	db *gorm.DB
}

// NewAttendanceRepo 创建 AttendanceRepository 实例
func NewAttendanceRepo(db *gorm.DB) AttendanceRepository {
	return &attendanceRepo{db: db}
}

// Upsert 以 (session_id, student_id) 为冲突键写入考勤，后写覆盖先写
func (r *attendanceRepo) Upsert(ctx context.Context, att *model.Attendance) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}, {Name: "student_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"section_id", "status", "check_in_time", "updated_at",
			}),
		}).
		Create(att).Error
}

// BatchCreate 批量写入缺勤补录；已有记录的学生保持原状态不被覆盖
func (r *attendanceRepo) BatchCreate(ctx context.Context, atts []model.Attendance) error {
	if len(atts) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "student_id"}},
			DoNothing: true,
		}).
		Create(&atts).Error
}

func (r *attendanceRepo) GetBySessionStudent(ctx context.Context, sessionID, studentID string) (*model.Attendance, error) {
	var att model.Attendance
	err := r.db.WithContext(ctx).
		Where("session_id = ? AND student_id = ?", sessionID, studentID).
		First(&att).Error
	if err != nil {
		return nil, err
	}
	return &att, nil
}

func (r *attendanceRepo) ListBySession(ctx context.Context, sessionID string) ([]model.Attendance, error) {
	var atts []model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&atts).Error
	if err != nil {
		return nil, err
	}
	return atts, nil
}

func (r *attendanceRepo) ListBySection(ctx context.Context, sectionID string) ([]model.Attendance, error) {
	var atts []model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Student").
		Preload("Session").
		Where("section_id = ?", sectionID).
		Order("created_at ASC").
		Find(&atts).Error
	if err != nil {
		return nil, err
	}
	return atts, nil
}

func (r *attendanceRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Attendance, error) {
	var atts []model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Session").
		Preload("Session.Course").
		Preload("Session.Section").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&atts).Error
	if err != nil {
		return nil, err
	}
	return atts, nil
}

func (r *attendanceRepo) ListAll(ctx context.Context, offset, limit int) ([]model.Attendance, int64, error) {
	var atts []model.Attendance
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Attendance{})

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.
		Preload("Student").
		Preload("Session").
		Preload("Session.Course").
		Preload("Session.Section").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&atts).Error; err != nil {
		return nil, 0, err
	}

	return atts, total, nil
}
