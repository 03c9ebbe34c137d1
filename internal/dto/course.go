package dto

import "github.com/Daniyal-Wajid/ClassTrack/internal/model"

// ── 课程模块 DTO ──

// CreateCourseRequest 创建课程
type CreateCourseRequest struct {
	Code string `json:"code" binding:"required,max=20"`
	Name string `json:"name" binding:"required,max=100"`
}

// UpdateCourseRequest 更新课程
type UpdateCourseRequest struct {
	Code string `json:"code" binding:"required,max=20"`
	Name string `json:"name" binding:"required,max=100"`
}

// CreateCourseWithSectionRequest 一步创建课程和教学班
type CreateCourseWithSectionRequest struct {
	Code         string `json:"code"          binding:"required,max=20"`
	Name         string `json:"name"          binding:"required,max=100"`
	SectionName  string `json:"section_name"  binding:"required,max=100"`
	InstructorID string `json:"instructor_id" binding:"required"` // UUID 或字面量 hardinstructor
}

// CourseBrief 课程简要信息
type CourseBrief struct {
	ID   string `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// NewCourseBrief 由模型构造课程简要信息
func NewCourseBrief(c *model.Course) *CourseBrief {
	if c == nil {
		return nil
	}
	return &CourseBrief{ID: c.CourseID, Code: c.Code, Name: c.Name}
}

// CourseResponse 课程响应（含教学班）
type CourseResponse struct {
	ID       string            `json:"id"`
	Code     string            `json:"code"`
	Name     string            `json:"name"`
	Sections []SectionResponse `json:"sections,omitempty"`
}
