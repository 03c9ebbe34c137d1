package dto

import "github.com/Daniyal-Wajid/ClassTrack/internal/model"

// ── 用户模块 DTO ──

// CreateUserRequest 管理员创建用户
type CreateUserRequest struct {
	Name      string `json:"name"       binding:"required,min=2,max=100"`
	Email     string `json:"email"      binding:"required,email"`
	Password  string `json:"password"   binding:"required,min=6,max=64"`
	Role      string `json:"role"       binding:"required,oneof=student instructor admin"`
	StudentID string `json:"student_id" binding:"omitempty,max=20"`
}

// UpdateUserRequest 管理员编辑用户
// password 为空时保持原密码
type UpdateUserRequest struct {
	Name      string `json:"name"       binding:"required,min=2,max=100"`
	Email     string `json:"email"      binding:"required,email"`
	Role      string `json:"role"       binding:"required,oneof=student instructor admin"`
	Password  string `json:"password"   binding:"omitempty,min=6,max=64"`
	StudentID string `json:"student_id" binding:"omitempty,max=20"`
}

// UserResponse 用户信息响应（脱敏）
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	StudentID string `json:"student_id,omitempty"`
	Role      string `json:"role"`
}

// NewUserResponse 由模型构造用户响应
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		StudentID: u.StudentID,
		Role:      u.Role,
	}
}

// StudentBrief 学生简要信息
type StudentBrief struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	StudentID string `json:"student_id,omitempty"`
}

// NewStudentBrief 由模型构造学生简要信息
func NewStudentBrief(u *model.User) StudentBrief {
	return StudentBrief{
		ID:        u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		StudentID: u.StudentID,
	}
}
