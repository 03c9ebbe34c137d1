package dto

import (
	"time"

	"github.com/Daniyal-Wajid/ClassTrack/internal/model"
)

// ── 会话模块 DTO ──

// StartSessionRequest 开始点名会话
// course_id 可省略，缺省取教学班所属课程
type StartSessionRequest struct {
	CourseID  string `json:"course_id"  binding:"omitempty,uuid"`
	SectionID string `json:"section_id" binding:"required,uuid"`
}

// EndSessionRequest 结束点名会话
type EndSessionRequest struct {
	SessionID string `json:"session_id" binding:"required,uuid"`
}

// SectionBrief 教学班简要信息
type SectionBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SessionResponse 会话响应
type SessionResponse struct {
	ID             string              `json:"id"`
	Course         *CourseBrief        `json:"course,omitempty"`
	Section        *SectionBrief       `json:"section,omitempty"`
	Instructor     *InstructorResponse `json:"instructor,omitempty"`
	HardInstructor bool                `json:"hard_instructor"`
	StartedBy      string              `json:"started_by"`
	Status         string              `json:"status"`
	StartTime      time.Time           `json:"start_time"`
	EndTime        *time.Time          `json:"end_time,omitempty"`
	CameraLogs     []CameraLogResponse `json:"camera_logs,omitempty"`
}

// NewSessionResponse 由模型构造会话响应，讲师展示统一走 InstructorDisplay
func NewSessionResponse(s *model.Session, profile HardInstructorProfile) SessionResponse {
	resp := SessionResponse{
		ID:             s.SessionID,
		Course:         NewCourseBrief(s.Course),
		Instructor:     InstructorDisplay(s.Instructor, s.HardInstructor, profile),
		HardInstructor: s.HardInstructor,
		StartedBy:      s.StartedBy,
		Status:         s.Status,
		StartTime:      s.StartTime,
		EndTime:        s.EndTime,
	}
	if s.Section != nil {
		resp.Section = &SectionBrief{ID: s.Section.SectionID, Name: s.Section.Name}
	}
	for i := range s.CameraLogs {
		resp.CameraLogs = append(resp.CameraLogs, NewCameraLogResponse(&s.CameraLogs[i]))
	}
	return resp
}

// EndSessionResponse 结束会话响应
type EndSessionResponse struct {
	Session      SessionResponse `json:"session"`
	MarkedAbsent int             `json:"marked_absent"` // 本次补记缺勤人数
}
