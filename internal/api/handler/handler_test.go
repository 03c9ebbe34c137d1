package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/Daniyal-Wajid/ClassTrack/internal/api/middleware"
	"github.com/Daniyal-Wajid/ClassTrack/internal/dto"
	"github.com/Daniyal-Wajid/ClassTrack/internal/identity"
	"github.com/Daniyal-Wajid/ClassTrack/internal/service"
	"github.com/Daniyal-Wajid/ClassTrack/pkg/jwt"
	"github.com/Daniyal-Wajid/ClassTrack/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginResult    *dto.TokenResponse
	loginErr       error
	registerResult *dto.TokenResponse
	registerErr    error
	logoutErr      error
	meResult       *dto.UserResponse
	meErr          error
}

func (m *mockAuthService) Login(_ context.Context, _ *dto.LoginRequest) (*dto.TokenResponse, error) {
	return m.loginResult, m.loginErr
}
func (m *mockAuthService) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.TokenResponse, error) {
	return m.registerResult, m.registerErr
}
func (m *mockAuthService) Logout(_ context.Context, _ *jwt.Claims) error {
	return m.logoutErr
}
func (m *mockAuthService) Me(_ context.Context, _ identity.Identity) (*dto.UserResponse, error) {
	return m.meResult, m.meErr
}

// ── Mock AttendanceService ──

type mockAttendanceService struct {
	markResult     *dto.AttendanceResponse
	markErr        error
	manualResult   *dto.AttendanceResponse
	manualErr      error
	rfidResult     *dto.RfidScanResponse
	rfidErr        error
	externalResult *dto.ExternalMarkResponse
	externalErr    error
	studentRecords []dto.AttendanceResponse
	studentErr     error
	studentCalled  bool
}

func (m *mockAttendanceService) Mark(_ context.Context, _ *dto.MarkAttendanceRequest) (*dto.AttendanceResponse, error) {
	return m.markResult, m.markErr
}
func (m *mockAttendanceService) Manual(_ context.Context, _ string, _ *dto.ManualAttendanceRequest) (*dto.AttendanceResponse, error) {
	return m.manualResult, m.manualErr
}
func (m *mockAttendanceService) RfidScan(_ context.Context, _, _ string, _ *dto.RfidScanRequest) (*dto.RfidScanResponse, error) {
	return m.rfidResult, m.rfidErr
}
func (m *mockAttendanceService) MarkExternal(_ context.Context, _ *dto.ExternalMarkRequest) (*dto.ExternalMarkResponse, error) {
	return m.externalResult, m.externalErr
}
func (m *mockAttendanceService) SessionAttendance(_ context.Context, _ string) ([]dto.AttendanceResponse, error) {
	return nil, nil
}
func (m *mockAttendanceService) SectionReport(_ context.Context, _ string) (*dto.SectionAttendanceResponse, error) {
	return nil, nil
}
func (m *mockAttendanceService) StudentRecords(_ context.Context, _ string) ([]dto.AttendanceResponse, error) {
	m.studentCalled = true
	return m.studentRecords, m.studentErr
}
func (m *mockAttendanceService) AdminRecords(_ context.Context, _ *dto.PaginationRequest) ([]dto.AdminAttendanceRecord, int64, error) {
	return nil, 0, nil
}
func (m *mockAttendanceService) RfidScans(_ context.Context, _ string) ([]dto.RfidScanRecordResponse, error) {
	return nil, nil
}

// ── Mock SessionService ──

type mockSessionService struct {
	ongoingResult *dto.SessionResponse
	ongoingErr    error
	endErr        error
}

func (m *mockSessionService) Start(_ context.Context, _ identity.Identity, _ *dto.StartSessionRequest) (*dto.SessionResponse, error) {
	return nil, nil
}
func (m *mockSessionService) End(_ context.Context, _ identity.Identity, _ *dto.EndSessionRequest) (*dto.EndSessionResponse, error) {
	if m.endErr != nil {
		return nil, m.endErr
	}
	return &dto.EndSessionResponse{}, nil
}
func (m *mockSessionService) Current(_ context.Context, _ identity.Identity) (*dto.SessionResponse, error) {
	return nil, nil
}
func (m *mockSessionService) GetByID(_ context.Context, _ string) (*dto.SessionResponse, error) {
	return nil, nil
}
func (m *mockSessionService) ListOngoing(_ context.Context) ([]dto.SessionResponse, error) {
	return nil, nil
}
func (m *mockSessionService) OngoingByCourse(_ context.Context, _ string) (*dto.SessionResponse, error) {
	return m.ongoingResult, m.ongoingErr
}

// ── 测试辅助 ──

func performJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	return resp
}

// withIdentity 模拟 JWT 中间件注入身份
func withIdentity(ident identity.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.IdentityKey, ident)
		c.Next()
	}
}

// ── 认证 Handler 测试 ──

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &mockAuthService{
		loginResult: &dto.TokenResponse{
			Token:     "test-token",
			ExpiresIn: 7200,
			User:      dto.UserResponse{ID: "user-1", Role: "student"},
		},
	}
	h := NewAuthHandler(svc)

	r := gin.New()
	r.POST("/auth/login", h.Login)

	w := performJSON(r, http.MethodPost, "/auth/login", dto.LoginRequest{
		Email:    "alice@test.com",
		Password: "password123",
	})
	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际=%d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Code != 0 {
		t.Errorf("期望业务码 0，实际=%d", resp.Code)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	svc := &mockAuthService{loginErr: service.ErrInvalidCredentials}
	h := NewAuthHandler(svc)

	r := gin.New()
	r.POST("/auth/login", h.Login)

	w := performJSON(r, http.MethodPost, "/auth/login", dto.LoginRequest{
		Email:    "alice@test.com",
		Password: "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("期望 401，实际=%d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Code != 11001 {
		t.Errorf("期望业务码 11001，实际=%d", resp.Code)
	}
}

func TestAuthHandler_Login_InvalidBody(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})

	r := gin.New()
	r.POST("/auth/login", h.Login)

	// email 缺失不通过参数校验
	w := performJSON(r, http.MethodPost, "/auth/login", map[string]string{"password": "x"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际=%d", w.Code)
	}
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	svc := &mockAuthService{registerErr: service.ErrEmailTaken}
	h := NewAuthHandler(svc)

	r := gin.New()
	r.POST("/auth/register", h.Register)

	w := performJSON(r, http.MethodPost, "/auth/register", dto.RegisterRequest{
		Name:     "重复用户",
		Email:    "taken@test.com",
		Password: "password123",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("期望 409，实际=%d", w.Code)
	}
}

func TestAuthHandler_Register_AdminRoleForbidden(t *testing.T) {
	svc := &mockAuthService{registerErr: service.ErrAdminRegistration}
	h := NewAuthHandler(svc)

	r := gin.New()
	r.POST("/auth/register", h.Register)

	w := performJSON(r, http.MethodPost, "/auth/register", dto.RegisterRequest{
		Name:     "越权用户",
		Email:    "sneaky@test.com",
		Password: "password123",
		Role:     "admin",
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("期望 403，实际=%d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Code != 11004 {
		t.Errorf("期望业务码 11004，实际=%d", resp.Code)
	}
}

// ── 考勤 Handler 测试 ──

func TestAttendanceHandler_Rfid_UnknownTag(t *testing.T) {
	svc := &mockAttendanceService{rfidErr: service.ErrUnknownTag}
	h := NewAttendanceHandler(svc)

	r := gin.New()
	r.POST("/sessions/:id/rfid",
		withIdentity(identity.Identity{Kind: identity.KindHardInstructor, ID: identity.HardInstructorID, Role: "instructor"}),
		h.Rfid)

	w := performJSON(r, http.MethodPost, "/sessions/sess-1/rfid", dto.RfidScanRequest{Tag: "9999999999"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("期望 400，实际=%d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Code != 16003 {
		t.Errorf("期望业务码 16003，实际=%d", resp.Code)
	}
}

func TestAttendanceHandler_Rfid_MissingIdentity(t *testing.T) {
	h := NewAttendanceHandler(&mockAttendanceService{})

	r := gin.New()
	r.POST("/sessions/:id/rfid", h.Rfid) // 未注入身份

	w := performJSON(r, http.MethodPost, "/sessions/sess-1/rfid", dto.RfidScanRequest{Tag: "0000000001"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("期望 401，实际=%d", w.Code)
	}
}

func TestAttendanceHandler_My_BuiltinAccountEmpty(t *testing.T) {
	// 内置账号没有个人考勤：直接返回空列表，不触达服务层
	svc := &mockAttendanceService{}
	h := NewAttendanceHandler(svc)

	r := gin.New()
	r.GET("/attendance/my",
		withIdentity(identity.Identity{Kind: identity.KindSuperAdmin, ID: identity.SuperAdminID, Role: "admin"}),
		h.My)

	w := performJSON(r, http.MethodGet, "/attendance/my", nil)
	if w.Code != http.StatusOK {
		t.Errorf("期望 200，实际=%d", w.Code)
	}
	if svc.studentCalled {
		t.Error("内置账号不应触达 StudentRecords")
	}
}

func TestAttendanceHandler_Mark_NotEligible(t *testing.T) {
	svc := &mockAttendanceService{markErr: service.ErrStudentNotEligible}
	h := NewAttendanceHandler(svc)

	r := gin.New()
	r.POST("/attendance/mark", h.Mark)

	w := performJSON(r, http.MethodPost, "/attendance/mark", dto.MarkAttendanceRequest{
		SessionID: "b3f1c6de-0000-4000-8000-000000000001",
		StudentID: "b3f1c6de-0000-4000-8000-000000000002",
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("期望 403，实际=%d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Code != 16002 {
		t.Errorf("期望业务码 16002，实际=%d", resp.Code)
	}
}

// ── 外部集成 Handler 测试 ──

func TestExternalHandler_Mark_CreatedVsAlreadyMarked(t *testing.T) {
	attSvc := &mockAttendanceService{
		externalResult: &dto.ExternalMarkResponse{AlreadyMarked: false},
	}
	h := NewExternalHandler(&mockSessionService{}, attSvc)

	r := gin.New()
	r.POST("/external/attendance", h.Mark)

	body := dto.ExternalMarkRequest{
		SessionID: "b3f1c6de-0000-4000-8000-000000000001",
		StudentID: "b3f1c6de-0000-4000-8000-000000000002",
	}

	// 新建记录 → 201
	w := performJSON(r, http.MethodPost, "/external/attendance", body)
	if w.Code != http.StatusCreated {
		t.Errorf("新建记录期望 201，实际=%d", w.Code)
	}

	// 重复标记 → 200
	attSvc.externalResult = &dto.ExternalMarkResponse{AlreadyMarked: true}
	w = performJSON(r, http.MethodPost, "/external/attendance", body)
	if w.Code != http.StatusOK {
		t.Errorf("重复标记期望 200，实际=%d", w.Code)
	}
}

func TestExternalHandler_ActiveSession_MissingCourseID(t *testing.T) {
	h := NewExternalHandler(&mockSessionService{}, &mockAttendanceService{})

	r := gin.New()
	r.GET("/external/sessions/active", h.ActiveSession)

	w := performJSON(r, http.MethodGet, "/external/sessions/active", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("缺少 course_id 期望 400，实际=%d", w.Code)
	}
}

func TestExternalHandler_ActiveSession_NoOngoing(t *testing.T) {
	h := NewExternalHandler(&mockSessionService{ongoingErr: service.ErrNoOngoingSession}, &mockAttendanceService{})

	r := gin.New()
	r.GET("/external/sessions/active", h.ActiveSession)

	w := performJSON(r, http.MethodGet, "/external/sessions/active?course_id=course-1", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("无进行中会话期望 404，实际=%d", w.Code)
	}
}

// ── 会话 Handler 测试 ──

func TestSessionHandler_End_AlreadyEnded(t *testing.T) {
	h := NewSessionHandler(&mockSessionService{endErr: service.ErrSessionAlreadyEnded}, &mockAttendanceService{})

	r := gin.New()
	r.POST("/sessions/end",
		withIdentity(identity.Identity{Kind: identity.KindSuperAdmin, ID: identity.SuperAdminID, Role: "admin"}),
		h.End)

	w := performJSON(r, http.MethodPost, "/sessions/end", dto.EndSessionRequest{
		SessionID: "6c2f0d8e-41a7-4f3b-9c55-2e8a1b7d3001",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("重复结束期望 400，实际=%d", w.Code)
	}
	resp := decodeResponse(t, w)
	if resp.Code != 15004 {
		t.Errorf("期望业务码 15004，实际=%d", resp.Code)
	}
}
