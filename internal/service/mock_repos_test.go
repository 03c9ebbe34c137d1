package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Daniyal-Wajid/ClassTrack/internal/model"
	"github.com/Daniyal-Wajid/ClassTrack/internal/repository"
)

// ── Mock Repositories ──
//
// 全部基于内存 map，行为对齐 GORM 实现：
//   - 查无返回 gorm.ErrRecordNotFound
//   - 唯一约束冲突返回 gorm.ErrDuplicatedKey
//   - 会话表模拟"同讲师仅一个进行中会话"的部分唯一索引

type mockUserRepo struct {
	users map[string]*model.User // key: user_id
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, offset, limit int) ([]model.User, int64, error) {
	var all []model.User
	for _, u := range m.users {
		all = append(all, *u)
	}
	total := int64(len(all))
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	if offset > len(all) {
		return nil, total, nil
	}
	return all[offset:end], total, nil
}

func (m *mockUserRepo) ListByRole(_ context.Context, role string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.Role == role {
			result = append(result, *u)
		}
	}
	return result, nil
}

type mockCourseRepo struct {
	courses map[string]*model.Course
	seq     int
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) Create(_ context.Context, course *model.Course) error {
	for _, c := range m.courses {
		if c.Code == course.Code {
			return gorm.ErrDuplicatedKey
		}
	}
	if course.CourseID == "" {
		m.seq++
		course.CourseID = fmt.Sprintf("course-%d", m.seq)
	}
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetByCode(_ context.Context, code string) (*model.Course, error) {
	for _, c := range m.courses {
		if c.Code == code {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) GetWithSections(_ context.Context, id string) (*model.Course, error) {
	return m.GetByID(nil, id)
}

func (m *mockCourseRepo) Update(_ context.Context, course *model.Course) error {
	m.courses[course.CourseID] = course
	return nil
}

func (m *mockCourseRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.courses[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.courses, id)
	return nil
}

func (m *mockCourseRepo) ListWithSections(_ context.Context) ([]model.Course, error) {
	var result []model.Course
	for _, c := range m.courses {
		result = append(result, *c)
	}
	return result, nil
}

type mockSectionRepo struct {
	sections map[string]*model.Section
	enrolled map[string][]model.User // section_id → 选课名单
	seq      int
}

func newMockSectionRepo() *mockSectionRepo {
	return &mockSectionRepo{
		sections: make(map[string]*model.Section),
		enrolled: make(map[string][]model.User),
	}
}

func (m *mockSectionRepo) Create(_ context.Context, section *model.Section) error {
	if section.SectionID == "" {
		m.seq++
		section.SectionID = fmt.Sprintf("section-%d", m.seq)
	}
	m.sections[section.SectionID] = section
	return nil
}

func (m *mockSectionRepo) GetByID(_ context.Context, id string) (*model.Section, error) {
	if s, ok := m.sections[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSectionRepo) GetWithStudents(_ context.Context, id string) (*model.Section, error) {
	s, err := m.GetByID(nil, id)
	if err != nil {
		return nil, err
	}
	s.EnrolledStudents = append([]model.User(nil), m.enrolled[id]...)
	return s, nil
}

func (m *mockSectionRepo) Update(_ context.Context, section *model.Section) error {
	stored, ok := m.sections[section.SectionID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Name = section.Name
	stored.InstructorID = section.InstructorID
	stored.HardInstructor = section.HardInstructor
	return nil
}

func (m *mockSectionRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.sections[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(m.sections, id)
	delete(m.enrolled, id)
	return nil
}

func (m *mockSectionRepo) List(_ context.Context) ([]model.Section, error) {
	var result []model.Section
	for id := range m.sections {
		s, _ := m.GetWithStudents(nil, id)
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSectionRepo) ListByCourse(_ context.Context, courseID string) ([]model.Section, error) {
	var result []model.Section
	for id, s := range m.sections {
		if s.CourseID == courseID {
			full, _ := m.GetWithStudents(nil, id)
			result = append(result, *full)
		}
	}
	return result, nil
}

func (m *mockSectionRepo) ListByInstructor(_ context.Context, instructorID string) ([]model.Section, error) {
	var result []model.Section
	for id, s := range m.sections {
		if s.InstructorID != nil && *s.InstructorID == instructorID {
			full, _ := m.GetWithStudents(nil, id)
			result = append(result, *full)
		}
	}
	return result, nil
}

func (m *mockSectionRepo) ListByHardInstructor(_ context.Context) ([]model.Section, error) {
	var result []model.Section
	for id, s := range m.sections {
		if s.HardInstructor {
			full, _ := m.GetWithStudents(nil, id)
			result = append(result, *full)
		}
	}
	return result, nil
}

func (m *mockSectionRepo) ListByStudent(_ context.Context, studentID string) ([]model.Section, error) {
	var result []model.Section
	for id := range m.sections {
		for _, stu := range m.enrolled[id] {
			if stu.UserID == studentID {
				full, _ := m.GetWithStudents(nil, id)
				result = append(result, *full)
				break
			}
		}
	}
	return result, nil
}

// AddStudents 并集追加：已在名单中的学生跳过
func (m *mockSectionRepo) AddStudents(_ context.Context, section *model.Section, students []model.User) error {
	existing := make(map[string]bool)
	for _, stu := range m.enrolled[section.SectionID] {
		existing[stu.UserID] = true
	}
	for _, stu := range students {
		if existing[stu.UserID] {
			continue
		}
		m.enrolled[section.SectionID] = append(m.enrolled[section.SectionID], stu)
		existing[stu.UserID] = true
	}
	return nil
}

func (m *mockSectionRepo) IsEnrolled(_ context.Context, sectionID, studentID string) (bool, error) {
	for _, stu := range m.enrolled[sectionID] {
		if stu.UserID == studentID {
			return true, nil
		}
	}
	return false, nil
}

type mockSessionRepo struct {
	sessions map[string]*model.Session
	sections *mockSectionRepo // 模拟 Preload("Section")
	seq      int
}

func newMockSessionRepo(sections *mockSectionRepo) *mockSessionRepo {
	return &mockSessionRepo{
		sessions: make(map[string]*model.Session),
		sections: sections,
	}
}

// Create 模拟部分唯一索引：同真实讲师 / 硬编码讲师同时只能有一个进行中会话
func (m *mockSessionRepo) Create(_ context.Context, session *model.Session) error {
	for _, s := range m.sessions {
		if s.Status != model.SessionOngoing {
			continue
		}
		if session.HardInstructor && s.HardInstructor {
			return gorm.ErrDuplicatedKey
		}
		if session.InstructorID != nil && s.InstructorID != nil && *session.InstructorID == *s.InstructorID {
			return gorm.ErrDuplicatedKey
		}
	}
	if session.SessionID == "" {
		m.seq++
		session.SessionID = fmt.Sprintf("sess-%d", m.seq)
	}
	m.sessions[session.SessionID] = session
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id string) (*model.Session, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s
	if m.sections != nil {
		if sec, err := m.sections.GetByID(nil, s.SectionID); err == nil {
			copied.Section = sec
		}
	}
	return &copied, nil
}

func (m *mockSessionRepo) GetOngoingByInstructor(_ context.Context, instructorID string) (*model.Session, error) {
	for id, s := range m.sessions {
		if s.Status == model.SessionOngoing && s.InstructorID != nil && *s.InstructorID == instructorID {
			return m.GetByID(nil, id)
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) GetOngoingByHardInstructor(_ context.Context) (*model.Session, error) {
	for id, s := range m.sessions {
		if s.Status == model.SessionOngoing && s.HardInstructor {
			return m.GetByID(nil, id)
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) GetOngoingBySection(_ context.Context, sectionID string) (*model.Session, error) {
	for id, s := range m.sessions {
		if s.Status == model.SessionOngoing && s.SectionID == sectionID {
			return m.GetByID(nil, id)
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) GetOngoingByCourse(_ context.Context, courseID string) (*model.Session, error) {
	for id, s := range m.sessions {
		if s.Status == model.SessionOngoing && s.CourseID == courseID {
			return m.GetByID(nil, id)
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// End 条件更新：仅进行中会话可结束
func (m *mockSessionRepo) End(_ context.Context, id string, endTime time.Time) error {
	s, ok := m.sessions[id]
	if !ok || s.Status != model.SessionOngoing {
		return gorm.ErrRecordNotFound
	}
	s.Status = model.SessionEnded
	s.EndTime = &endTime
	return nil
}

func (m *mockSessionRepo) List(_ context.Context) ([]model.Session, error) {
	var result []model.Session
	for id := range m.sessions {
		s, _ := m.GetByID(nil, id)
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSessionRepo) ListBySection(_ context.Context, sectionID string) ([]model.Session, error) {
	var result []model.Session
	for id, s := range m.sessions {
		if s.SectionID == sectionID {
			full, _ := m.GetByID(nil, id)
			result = append(result, *full)
		}
	}
	return result, nil
}

func (m *mockSessionRepo) ListOngoing(_ context.Context) ([]model.Session, error) {
	var result []model.Session
	for id, s := range m.sessions {
		if s.Status == model.SessionOngoing {
			full, _ := m.GetByID(nil, id)
			result = append(result, *full)
		}
	}
	return result, nil
}

type mockAttendanceRepo struct {
	records map[string]*model.Attendance // key: session_id:student_id
	users   *mockUserRepo                // 模拟 Preload("Student")
	seq     int
}

func newMockAttendanceRepo(users *mockUserRepo) *mockAttendanceRepo {
	return &mockAttendanceRepo{
		records: make(map[string]*model.Attendance),
		users:   users,
	}
}

func attKey(sessionID, studentID string) string {
	return sessionID + ":" + studentID
}

// Upsert 以 (session, student) 为冲突键，后写覆盖先写
func (m *mockAttendanceRepo) Upsert(_ context.Context, att *model.Attendance) error {
	key := attKey(att.SessionID, att.StudentID)
	if existing, ok := m.records[key]; ok {
		att.AttendanceID = existing.AttendanceID
	} else if att.AttendanceID == "" {
		m.seq++
		att.AttendanceID = fmt.Sprintf("att-%d", m.seq)
	}
	copied := *att
	m.records[key] = &copied
	return nil
}

// BatchCreate 已有记录保持原状态不覆盖
func (m *mockAttendanceRepo) BatchCreate(_ context.Context, atts []model.Attendance) error {
	for i := range atts {
		key := attKey(atts[i].SessionID, atts[i].StudentID)
		if _, ok := m.records[key]; ok {
			continue
		}
		m.seq++
		atts[i].AttendanceID = fmt.Sprintf("att-%d", m.seq)
		copied := atts[i]
		m.records[key] = &copied
	}
	return nil
}

func (m *mockAttendanceRepo) GetBySessionStudent(_ context.Context, sessionID, studentID string) (*model.Attendance, error) {
	if a, ok := m.records[attKey(sessionID, studentID)]; ok {
		return m.withStudent(a), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRepo) ListBySession(_ context.Context, sessionID string) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, a := range m.records {
		if a.SessionID == sessionID {
			result = append(result, *m.withStudent(a))
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListBySection(_ context.Context, sectionID string) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, a := range m.records {
		if a.SectionID == sectionID {
			result = append(result, *m.withStudent(a))
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListByStudent(_ context.Context, studentID string) ([]model.Attendance, error) {
	var result []model.Attendance
	for _, a := range m.records {
		if a.StudentID == studentID {
			result = append(result, *m.withStudent(a))
		}
	}
	return result, nil
}

func (m *mockAttendanceRepo) ListAll(_ context.Context, offset, limit int) ([]model.Attendance, int64, error) {
	var all []model.Attendance
	for _, a := range m.records {
		all = append(all, *m.withStudent(a))
	}
	total := int64(len(all))
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	if offset > len(all) {
		return nil, total, nil
	}
	return all[offset:end], total, nil
}

// withStudent 库内用户存在时填充 Student 关联；映射表学生保持 nil
func (m *mockAttendanceRepo) withStudent(a *model.Attendance) *model.Attendance {
	copied := *a
	if m.users != nil {
		if u, ok := m.users.users[a.StudentID]; ok {
			copied.Student = u
		}
	}
	return &copied
}

type mockCameraLogRepo struct {
	logs []model.CameraLog
	seq  int
}

func newMockCameraLogRepo() *mockCameraLogRepo { return &mockCameraLogRepo{} }

func (m *mockCameraLogRepo) Create(_ context.Context, log *model.CameraLog) error {
	if log.CameraLogID == "" {
		m.seq++
		log.CameraLogID = fmt.Sprintf("cam-%d", m.seq)
	}
	m.logs = append(m.logs, *log)
	return nil
}

func (m *mockCameraLogRepo) ListBySession(_ context.Context, sessionID string) ([]model.CameraLog, error) {
	var result []model.CameraLog
	for _, l := range m.logs {
		if l.SessionID == sessionID {
			result = append(result, l)
		}
	}
	return result, nil
}

type mockRfidScanRepo struct {
	scans []model.RfidScan
	seq   int
}

func newMockRfidScanRepo() *mockRfidScanRepo { return &mockRfidScanRepo{} }

func (m *mockRfidScanRepo) Create(_ context.Context, scan *model.RfidScan) error {
	if scan.RfidScanID == "" {
		m.seq++
		scan.RfidScanID = fmt.Sprintf("scan-%d", m.seq)
	}
	m.scans = append(m.scans, *scan)
	return nil
}

func (m *mockRfidScanRepo) ListBySession(_ context.Context, sessionID string) ([]model.RfidScan, error) {
	var result []model.RfidScan
	for _, s := range m.scans {
		if s.SessionID == sessionID {
			result = append(result, s)
		}
	}
	return result, nil
}

type mockBehaviorRepo struct {
	behaviors []model.Behavior
	seq       int
}

func newMockBehaviorRepo() *mockBehaviorRepo { return &mockBehaviorRepo{} }

func (m *mockBehaviorRepo) Create(_ context.Context, behavior *model.Behavior) error {
	if behavior.BehaviorID == "" {
		m.seq++
		behavior.BehaviorID = fmt.Sprintf("beh-%d", m.seq)
	}
	m.behaviors = append(m.behaviors, *behavior)
	return nil
}

func (m *mockBehaviorRepo) List(_ context.Context, offset, limit int) ([]model.Behavior, int64, error) {
	total := int64(len(m.behaviors))
	end := offset + limit
	if end > len(m.behaviors) {
		end = len(m.behaviors)
	}
	if offset > len(m.behaviors) {
		return nil, total, nil
	}
	return m.behaviors[offset:end], total, nil
}

func (m *mockBehaviorRepo) ListByStudent(_ context.Context, studentID string) ([]model.Behavior, error) {
	var result []model.Behavior
	for _, b := range m.behaviors {
		if b.StudentID == studentID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *mockBehaviorRepo) ListBySession(_ context.Context, sessionID string) ([]model.Behavior, error) {
	var result []model.Behavior
	for _, b := range m.behaviors {
		if b.SessionID != nil && *b.SessionID == sessionID {
			result = append(result, b)
		}
	}
	return result, nil
}

// ── 测试辅助 ──

// testRepos 聚合所有 mock，便于测试中直接操作底层数据
type testRepos struct {
	user       *mockUserRepo
	course     *mockCourseRepo
	section    *mockSectionRepo
	session    *mockSessionRepo
	attendance *mockAttendanceRepo
	cameraLog  *mockCameraLogRepo
	rfidScan   *mockRfidScanRepo
	behavior   *mockBehaviorRepo
}

func newTestRepos() (*repository.Repository, *testRepos) {
	user := newMockUserRepo()
	course := newMockCourseRepo()
	section := newMockSectionRepo()
	session := newMockSessionRepo(section)
	attendance := newMockAttendanceRepo(user)
	cameraLog := newMockCameraLogRepo()
	rfidScan := newMockRfidScanRepo()
	behavior := newMockBehaviorRepo()

	repo := &repository.Repository{
		User:       user,
		Course:     course,
		Section:    section,
		Session:    session,
		Attendance: attendance,
		CameraLog:  cameraLog,
		RfidScan:   rfidScan,
		Behavior:   behavior,
	}
	mocks := &testRepos{
		user:       user,
		course:     course,
		section:    section,
		session:    session,
		attendance: attendance,
		cameraLog:  cameraLog,
		rfidScan:   rfidScan,
		behavior:   behavior,
	}
	return repo, mocks
}
