package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Daniyal-Wajid/ClassTrack/internal/model"
)

// SectionRepository 教学班数据访问接口
type SectionRepository interface {
	Create(ctx context.Context, section *model.Section) error
	GetByID(ctx context.Context, id string) (*model.Section, error)
	GetWithStudents(ctx context.Context, id string) (*model.Section, error)
	Update(ctx context.Context, section *model.Section) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Section, error)
	ListByCourse(ctx context.Context, courseID string) ([]model.Section, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]model.Section, error)
	ListByHardInstructor(ctx context.Context) ([]model.Section, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Section, error)
	AddStudents(ctx context.Context, section *model.Section, students []model.User) error
	IsEnrolled(ctx context.Context, sectionID, studentID string) (bool, error)
}

// sectionRepo SectionRepository 的 GORM 实现
type sectionRepo struct {
	db *gorm.DB
}

// NewSectionRepo 创建 SectionRepository 实例
func NewSectionRepo(db *gorm.DB) SectionRepository {
	return &sectionRepo{db: db}
}

func (r *sectionRepo) Create(ctx context.Context, section *model.Section) error {
	return r.db.WithContext(ctx).Create(section).Error
}

func (r *sectionRepo) GetByID(ctx context.Context, id string) (*model.Section, error) {
	var section model.Section
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Instructor").
		Where("section_id = ?", id).
		First(&section).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}

func (r *sectionRepo) GetWithStudents(ctx context.Context, id string) (*model.Section, error) {
	var section model.Section
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Instructor").
		Preload("EnrolledStudents").
		Where("section_id = ?", id).
		First(&section).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}

// Update 保存讲师绑定等标量字段；选课名单走 AddStudents
func (r *sectionRepo) Update(ctx context.Context, section *model.Section) error {
	return r.db.WithContext(ctx).
		Model(&model.Section{}).
		Where("section_id = ?", section.SectionID).
		Select("name", "instructor_id", "hard_instructor", "updated_at").
		Updates(map[string]interface{}{
			"name":            section.Name,
			"instructor_id":   section.InstructorID,
			"hard_instructor": section.HardInstructor,
			"updated_at":      section.UpdatedAt,
		}).Error
}

func (r *sectionRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("section_id = ?", id).Delete(&model.Section{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *sectionRepo) List(ctx context.Context) ([]model.Section, error) {
	var sections []model.Section
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Instructor").
		Preload("EnrolledStudents").
		Order("created_at DESC").
		Find(&sections).Error
	if err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *sectionRepo) ListByCourse(ctx context.Context, courseID string) ([]model.Section, error) {
	var sections []model.Section
	err := r.db.WithContext(ctx).
		Preload("Instructor").
		Preload("EnrolledStudents").
		Where("course_id = ?", courseID).
		Order("name ASC").
		Find(&sections).Error
	if err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *sectionRepo) ListByInstructor(ctx context.Context, instructorID string) ([]model.Section, error) {
	var sections []model.Section
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("EnrolledStudents").
		Where("instructor_id = ?", instructorID).
		Order("created_at DESC").
		Find(&sections).Error
	if err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *sectionRepo) ListByHardInstructor(ctx context.Context) ([]model.Section, error) {
	var sections []model.Section
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("EnrolledStudents").
		Where("hard_instructor = ?", true).
		Order("created_at DESC").
		Find(&sections).Error
	if err != nil {
		return nil, err
	}
	return sections, nil
}

func (r *sectionRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Section, error) {
	var sections []model.Section
	err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Instructor").
		Joins("JOIN section_students ss ON ss.section_id = sections.section_id").
		Where("ss.user_id = ?", studentID).
		Order("sections.created_at DESC").
		Find(&sections).Error
	if err != nil {
		return nil, err
	}
	return sections, nil
}

// AddStudents 选课并集追加：已选学生由联结表主键天然去重
func (r *sectionRepo) AddStudents(ctx context.Context, section *model.Section, students []model.User) error {
	return r.db.WithContext(ctx).
		Model(section).
		Association("EnrolledStudents").
		Append(students)
}

func (r *sectionRepo) IsEnrolled(ctx context.Context, sectionID, studentID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("section_students").
		Where("section_id = ? AND user_id = ?", sectionID, studentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
