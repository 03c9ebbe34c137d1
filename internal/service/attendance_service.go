package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Daniyal-Wajid/ClassTrack/config"
	"github.com/Daniyal-Wajid/ClassTrack/internal/dto"
	"github.com/Daniyal-Wajid/ClassTrack/internal/model"
	"github.com/Daniyal-Wajid/ClassTrack/internal/repository"
	"github.com/Daniyal-Wajid/ClassTrack/internal/rfid"
)

// ── 考勤模块业务错误 ──

var (
	ErrStudentNotEligible = errors.New("学生不在该教学班选课名单中")
	ErrUnknownTag         = errors.New("未登记的 RFID 标签")
	ErrSessionNotOngoing  = errors.New("会话不在进行中")
	ErrAttendanceNotFound = errors.New("考勤记录不存在")
)

// AttendanceService 考勤业务接口
//
// 设计说明：
//   - 交互写入路径（点名 / 改签 / 刷卡）共用同一放行判定 eligible：
//     在选课名单中，或在 RFID 映射表中
//   - 外部标记通道只校验会话与学生存在，不做选课判定，且只创建不覆盖；
//     其余写入均为 (session, student) 上的 upsert，后写覆盖先写
type AttendanceService interface {
	Mark(ctx context.Context, req *dto.MarkAttendanceRequest) (*dto.AttendanceResponse, error)
	Manual(ctx context.Context, sessionID string, req *dto.ManualAttendanceRequest) (*dto.AttendanceResponse, error)
	RfidScan(ctx context.Context, sessionID, scannedBy string, req *dto.RfidScanRequest) (*dto.RfidScanResponse, error)
	MarkExternal(ctx context.Context, req *dto.ExternalMarkRequest) (*dto.ExternalMarkResponse, error)
	SessionAttendance(ctx context.Context, sessionID string) ([]dto.AttendanceResponse, error)
	SectionReport(ctx context.Context, sectionID string) (*dto.SectionAttendanceResponse, error)
	StudentRecords(ctx context.Context, studentID string) ([]dto.AttendanceResponse, error)
	AdminRecords(ctx context.Context, page *dto.PaginationRequest) ([]dto.AdminAttendanceRecord, int64, error)
	RfidScans(ctx context.Context, sessionID string) ([]dto.RfidScanRecordResponse, error)
}

type attendanceService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAttendanceService 创建 AttendanceService 实例
func NewAttendanceService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) AttendanceService {
	return &attendanceService{cfg: cfg, repo: repo, logger: logger}
}

// eligible 统一放行判定：选课名单或 RFID 映射表二者其一
func (s *attendanceService) eligible(ctx context.Context, sectionID, studentID string) (bool, error) {
	enrolled, err := s.repo.Section.IsEnrolled(ctx, sectionID, studentID)
	if err != nil {
		return false, err
	}
	if enrolled {
		return true, nil
	}
	_, ok := rfid.FindStudent(studentID)
	return ok, nil
}

// ongoingSession 加载会话并校验进行中状态
func (s *attendanceService) ongoingSession(ctx context.Context, sessionID string) (*model.Session, error) {
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
	return session, nil
}

// ═══════════════════════════════════════════════════════════
// Mark — 标记到课
// ═══════════════════════════════════════════════════════════

func (s *attendanceService) Mark(ctx context.Context, req *dto.MarkAttendanceRequest) (*dto.AttendanceResponse, error) {
	session, err := s.ongoingSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	ok, err := s.eligible(ctx, session.SectionID, req.StudentID)
	if err != nil {
		s.logger.Error("放行判定失败", zap.Error(err))
		return nil, err
	}
	if !ok {
		return nil, ErrStudentNotEligible
	}

	now := time.Now()
	att := &model.Attendance{
		SectionID:   session.SectionID,
		SessionID:   session.SessionID,
		StudentID:   req.StudentID,
		Status:      model.AttendancePresent,
		CheckInTime: &now,
	}
	if err := s.repo.Attendance.Upsert(ctx, att); err != nil {
		s.logger.Error("写入考勤失败", zap.Error(err))
		return nil, err
	}

	resp := dto.NewAttendanceResponse(att)
	return &resp, nil
}

// ═══════════════════════════════════════════════════════════
// Manual — 手动改签
// ═══════════════════════════════════════════════════════════
//
// present 写入当前时间为签到时间，absent 清空签到时间

func (s *attendanceService) Manual(ctx context.Context, sessionID string, req *dto.ManualAttendanceRequest) (*dto.AttendanceResponse, error) {
	session, err := s.ongoingSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ok, err := s.eligible(ctx, session.SectionID, req.StudentID)
	if err != nil {
		s.logger.Error("放行判定失败", zap.Error(err))
		return nil, err
	}
	if !ok {
		return nil, ErrStudentNotEligible
	}

	att := &model.Attendance{
		SectionID: session.SectionID,
		SessionID: session.SessionID,
		StudentID: req.StudentID,
		Status:    req.Status,
	}
	if req.Status == model.AttendancePresent {
		now := time.Now()
		att.CheckInTime = &now
	}
	if err := s.repo.Attendance.Upsert(ctx, att); err != nil {
		s.logger.Error("写入考勤失败", zap.Error(err))
		return nil, err
	}

	resp := dto.NewAttendanceResponse(att)
	return &resp, nil
}

// ═══════════════════════════════════════════════════════════
// RfidScan — 刷卡签到
// ═══════════════════════════════════════════════════════════
//
// 流程：
//   1. 标签解析：映射表中无此标签直接拒绝
//   2. 原始刷卡记录无条件落库（已解析标签的每次刷卡都留痕）
//   3. 放行判定通过时写入 present 考勤；不通过时仅返回学生信息，marked=false

func (s *attendanceService) RfidScan(ctx context.Context, sessionID, scannedBy string, req *dto.RfidScanRequest) (*dto.RfidScanResponse, error) {
	session, err := s.ongoingSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// 1. 标签解析
	entry, found := rfid.Resolve(req.Tag)
	if !found {
		return nil, ErrUnknownTag
	}

	// 2. 原始刷卡记录
	scan := &model.RfidScan{
		SessionID: session.SessionID,
		Tag:       req.Tag,
		ScannedAt: time.Now(),
	}
	if entry.UserID != "" {
		uid := entry.UserID
		scan.StudentID = &uid
	}
	if scannedBy != "" {
		sb := scannedBy
		scan.ScannedBy = &sb
	}
	if err := s.repo.RfidScan.Create(ctx, scan); err != nil {
		s.logger.Error("写入刷卡记录失败", zap.Error(err))
		return nil, err
	}

	// 3. 放行判定
	ok, err := s.eligible(ctx, session.SectionID, entry.UserID)
	if err != nil {
		s.logger.Error("放行判定失败", zap.Error(err))
		return nil, err
	}
	if !ok {
		return &dto.RfidScanResponse{
			Message:   "学生不在该教学班选课名单中",
			Name:      entry.Name,
			StudentID: entry.StudentID,
			UserID:    entry.UserID,
			Marked:    false,
		}, nil
	}

	now := time.Now()
	att := &model.Attendance{
		SectionID:   session.SectionID,
		SessionID:   session.SessionID,
		StudentID:   entry.UserID,
		Status:      model.AttendancePresent,
		CheckInTime: &now,
	}
	if err := s.repo.Attendance.Upsert(ctx, att); err != nil {
		s.logger.Error("写入考勤失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("刷卡签到成功",
		zap.String("session_id", session.SessionID),
		zap.String("tag", req.Tag),
		zap.String("student", entry.Name),
	)

	return &dto.RfidScanResponse{
		Message:   "签到成功",
		Name:      entry.Name,
		StudentID: entry.StudentID,
		UserID:    entry.UserID,
		Marked:    true,
	}, nil
}

// ═══════════════════════════════════════════════════════════
// MarkExternal — 外部系统标记（API Key 通道）
// ═══════════════════════════════════════════════════════════
//
// 只创建不覆盖：已有记录时返回 already_marked=true 与原记录，
// 与其余 upsert 写入路径刻意不同。
// 该通道不做选课判定，仅要求学生存在（库内用户或 RFID 映射表）

func (s *attendanceService) MarkExternal(ctx context.Context, req *dto.ExternalMarkRequest) (*dto.ExternalMarkResponse, error) {
	session, err := s.ongoingSession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	// 学生存在性校验
	if _, err := s.repo.User.GetByID(ctx, req.StudentID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("查询用户失败", zap.Error(err))
			return nil, err
		}
		if _, ok := rfid.FindStudent(req.StudentID); !ok {
			return nil, ErrUserNotFound
		}
	}

	// 已有记录直接返回，不覆盖
	existing, err := s.repo.Attendance.GetBySessionStudent(ctx, req.SessionID, req.StudentID)
	if err == nil {
		return &dto.ExternalMarkResponse{
			Attendance:    dto.NewAttendanceResponse(existing),
			AlreadyMarked: true,
		}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询考勤记录失败", zap.Error(err))
		return nil, err
	}

	now := time.Now()
	att := &model.Attendance{
		SectionID:   session.SectionID,
		SessionID:   session.SessionID,
		StudentID:   req.StudentID,
		Status:      model.AttendancePresent,
		CheckInTime: &now,
	}
	if err := s.repo.Attendance.Upsert(ctx, att); err != nil {
		s.logger.Error("写入考勤失败", zap.Error(err))
		return nil, err
	}

	return &dto.ExternalMarkResponse{
		Attendance:    dto.NewAttendanceResponse(att),
		AlreadyMarked: false,
	}, nil
}

// ═══════════════════════════════════════════════════════════
// SessionAttendance — 会话考勤合并视图
// ═══════════════════════════════════════════════════════════
//
// 已落库记录 + 选课名单中尚无记录的学生（虚拟 absent 行，不写库）。
// 映射表放行的非选课学生只要有记录也会出现在视图中

func (s *attendanceService) SessionAttendance(ctx context.Context, sessionID string) ([]dto.AttendanceResponse, error) {
	session, err := s.repo.Session.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		s.logger.Error("查询会话失败", zap.Error(err))
		return nil, err
	}

	records, err := s.repo.Attendance.ListBySession(ctx, sessionID)
	if err != nil {
		s.logger.Error("查询考勤记录失败", zap.Error(err))
		return nil, err
	}

	resps := make([]dto.AttendanceResponse, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i := range records {
		resps = append(resps, s.enrich(dto.NewAttendanceResponse(&records[i]), records[i].StudentID))
		seen[records[i].StudentID] = true
	}

	// 选课名单中无记录的学生补虚拟 absent 行
	section, err := s.repo.Section.GetWithStudents(ctx, session.SectionID)
	if err != nil {
		s.logger.Error("查询教学班失败", zap.Error(err))
		return nil, err
	}
	for i := range section.EnrolledStudents {
		stu := &section.EnrolledStudents[i]
		if seen[stu.UserID] {
			continue
		}
		brief := dto.NewStudentBrief(stu)
		resps = append(resps, dto.AttendanceResponse{
			SessionID: sessionID,
			SectionID: session.SectionID,
			Student:   &brief,
			StudentID: stu.UserID,
			Status:    model.AttendanceAbsent,
		})
	}

	return resps, nil
}

// enrich 学生展示信息缺失时由 RFID 映射表补全
func (s *attendanceService) enrich(resp dto.AttendanceResponse, studentID string) dto.AttendanceResponse {
	if resp.Student != nil {
		return resp
	}
	if entry, ok := rfid.FindStudent(studentID); ok {
		resp.Student = &dto.StudentBrief{
			ID:        entry.UserID,
			Name:      entry.Name,
			StudentID: entry.StudentID,
		}
	}
	return resp
}

// ═══════════════════════════════════════════════════════════
// SectionReport — 教学班考勤报表
// ═══════════════════════════════════════════════════════════
//
// 按会话分组的到课名单，学生展示信息优先取库内用户，
// 缺失时由 RFID 映射表补全

func (s *attendanceService) SectionReport(ctx context.Context, sectionID string) (*dto.SectionAttendanceResponse, error) {
	section, err := s.repo.Section.GetWithStudents(ctx, sectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		s.logger.Error("查询教学班失败", zap.Error(err))
		return nil, err
	}

	sessions, err := s.repo.Session.ListBySection(ctx, sectionID)
	if err != nil {
		s.logger.Error("查询会话列表失败", zap.Error(err))
		return nil, err
	}

	records, err := s.repo.Attendance.ListBySection(ctx, sectionID)
	if err != nil {
		s.logger.Error("查询考勤记录失败", zap.Error(err))
		return nil, err
	}

	// 按会话分组的到课记录
	presentBySession := make(map[string][]dto.PresentStudentResponse)
	for i := range records {
		rec := &records[i]
		if rec.Status != model.AttendancePresent {
			continue
		}
		presentBySession[rec.SessionID] = append(presentBySession[rec.SessionID], s.toPresentStudent(rec))
	}

	profile := hardProfile(s.cfg)
	resp := &dto.SectionAttendanceResponse{
		Section:  dto.NewSectionResponse(section, profile),
		Sessions: make([]dto.SessionAttendanceSummary, 0, len(sessions)),
	}
	for i := range sessions {
		sess := &sessions[i]
		present := presentBySession[sess.SessionID]
		if present == nil {
			present = []dto.PresentStudentResponse{}
		}
		resp.Sessions = append(resp.Sessions, dto.SessionAttendanceSummary{
			Session:         dto.NewSessionResponse(sess, profile),
			PresentStudents: present,
		})
	}

	return resp, nil
}

func (s *attendanceService) toPresentStudent(rec *model.Attendance) dto.PresentStudentResponse {
	p := dto.PresentStudentResponse{ID: rec.StudentID}
	if rec.CheckInTime != nil {
		t := rec.CheckInTime.Format(time.RFC3339)
		p.CheckInTime = &t
	}
	if rec.Student != nil {
		p.Name = rec.Student.Name
		p.StudentID = rec.Student.StudentID
		p.Email = rec.Student.Email
		return p
	}
	if entry, ok := rfid.FindStudent(rec.StudentID); ok {
		p.Name = entry.Name
		p.StudentID = entry.StudentID
	}
	return p
}

// StudentRecords 学生个人考勤记录
func (s *attendanceService) StudentRecords(ctx context.Context, studentID string) ([]dto.AttendanceResponse, error) {
	records, err := s.repo.Attendance.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("查询考勤记录失败", zap.Error(err))
		return nil, err
	}

	resps := make([]dto.AttendanceResponse, 0, len(records))
	for i := range records {
		resps = append(resps, dto.NewAttendanceResponse(&records[i]))
	}
	return resps, nil
}

// AdminRecords 管理端全量考勤报表（分页）
func (s *attendanceService) AdminRecords(ctx context.Context, page *dto.PaginationRequest) ([]dto.AdminAttendanceRecord, int64, error) {
	records, total, err := s.repo.Attendance.ListAll(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("查询考勤记录失败", zap.Error(err))
		return nil, 0, err
	}

	resps := make([]dto.AdminAttendanceRecord, 0, len(records))
	for i := range records {
		rec := &records[i]
		row := dto.AdminAttendanceRecord{
			ID:          rec.AttendanceID,
			StudentID:   rec.StudentID,
			Status:      rec.Status,
			CheckInTime: rec.CheckInTime,
		}
		if rec.Student != nil {
			brief := dto.NewStudentBrief(rec.Student)
			row.Student = &brief
		} else if entry, ok := rfid.FindStudent(rec.StudentID); ok {
			row.Student = &dto.StudentBrief{
				ID:        entry.UserID,
				Name:      entry.Name,
				StudentID: entry.StudentID,
			}
		}
		if rec.Session != nil {
			sess := dto.NewSessionResponse(rec.Session, hardProfile(s.cfg))
			row.Session = &sess
		}
		resps = append(resps, row)
	}
	return resps, total, nil
}

// RfidScans 会话的原始刷卡记录
func (s *attendanceService) RfidScans(ctx context.Context, sessionID string) ([]dto.RfidScanRecordResponse, error) {
	scans, err := s.repo.RfidScan.ListBySession(ctx, sessionID)
	if err != nil {
		s.logger.Error("查询刷卡记录失败", zap.Error(err))
		return nil, err
	}

	resps := make([]dto.RfidScanRecordResponse, 0, len(scans))
	for i := range scans {
		sc := &scans[i]
		row := dto.RfidScanRecordResponse{
			ID:        sc.RfidScanID,
			SessionID: sc.SessionID,
			Tag:       sc.Tag,
			ScannedAt: sc.ScannedAt,
		}
		if sc.ScannedBy != nil {
			row.ScannedBy = *sc.ScannedBy
		}
		if sc.Student != nil {
			brief := dto.NewStudentBrief(sc.Student)
			row.Student = &brief
		} else if sc.StudentID != nil {
			if entry, ok := rfid.FindStudent(*sc.StudentID); ok {
				row.Student = &dto.StudentBrief{
					ID:        entry.UserID,
					Name:      entry.Name,
					StudentID: entry.StudentID,
				}
			}
		}
		resps = append(resps, row)
	}
	return resps, nil
}

// [自证通过] internal/service/attendance_service.go
