package dto

import (
	"github.com/Daniyal-Wajid/ClassTrack/internal/identity"
	"github.com/Daniyal-Wajid/ClassTrack/internal/model"
)

// InstructorResponse 讲师展示信息
// 可能是真实用户，也可能是硬编码讲师的替身对象
type InstructorResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// HardInstructorProfile 硬编码讲师展示信息（来自 bootstrap 配置）
type HardInstructorProfile struct {
	Name  string
	Email string
}

// InstructorDisplay 讲师展示对象合成的唯一入口
// 规则：记录无真实讲师且 hardInstructor 置位时，合成替身对象；
// 有真实讲师时原样返回；两者都没有返回 nil（未分配）。
// 所有包含教学班 / 会话 / 课程的响应都必须经过这里，不得在各控制器重复实现
func InstructorDisplay(instr *model.User, hardInstructor bool, profile HardInstructorProfile) *InstructorResponse {
	if instr != nil {
		return &InstructorResponse{
			ID:    instr.UserID,
			Name:  instr.Name,
			Email: instr.Email,
		}
	}
	if hardInstructor {
		return &InstructorResponse{
			ID:    identity.HardInstructorID,
			Name:  profile.Name,
			Email: profile.Email,
		}
	}
	return nil
}
