package dto

import (
	"time"

	"github.com/Daniyal-Wajid/ClassTrack/internal/model"
)

// ── 摄像头 / 行为模块 DTO ──

// CaptureFrameRequest 上传监控帧（base64）
type CaptureFrameRequest struct {
	Image string `json:"image" binding:"required"`
}

// CameraEventRequest 直接上报检测事件（不经人脸服务）
type CameraEventRequest struct {
	SessionID     string   `json:"session_id" binding:"required,uuid"`
	FacesDetected int      `json:"faces_detected" binding:"omitempty,min=0"`
	Flags         []string `json:"flags"`
	Message       string   `json:"message"`
	Suspicious    bool     `json:"suspicious"`
}

// CameraLogResponse 摄像头日志响应
type CameraLogResponse struct {
	ID            string                  `json:"id"`
	SessionID     string                  `json:"session_id"`
	FacesDetected int                     `json:"faces_detected"`
	Suspicious    bool                    `json:"suspicious"`
	Message       string                  `json:"message"`
	Image         string                  `json:"image,omitempty"`
	Students      model.StudentStatusList `json:"students,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
}

// NewCameraLogResponse 由模型构造摄像头日志响应
func NewCameraLogResponse(l *model.CameraLog) CameraLogResponse {
	return CameraLogResponse{
		ID:            l.CameraLogID,
		SessionID:     l.SessionID,
		FacesDetected: l.FacesDetected,
		Suspicious:    l.Suspicious,
		Message:       l.Message,
		Image:         l.Image,
		Students:      l.Students,
		CreatedAt:     l.CreatedAt,
	}
}

// BehaviorLogRequest 行为日志上报
type BehaviorLogRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	SessionID string `json:"session_id" binding:"omitempty,uuid"`
	Status    string `json:"status"     binding:"required,oneof=present absent suspicious"`
	Details   string `json:"details"`
}

// BehaviorResponse 行为日志响应
type BehaviorResponse struct {
	ID         string        `json:"id"`
	Student    *StudentBrief `json:"student,omitempty"`
	StudentID  string        `json:"student_id"`
	SessionID  string        `json:"session_id,omitempty"`
	Status     string        `json:"status"`
	Details    string        `json:"details,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}

// NewBehaviorResponse 由模型构造行为日志响应
func NewBehaviorResponse(b *model.Behavior) BehaviorResponse {
	resp := BehaviorResponse{
		ID:         b.BehaviorID,
		StudentID:  b.StudentID,
		Status:     b.Status,
		Details:    b.Details,
		OccurredAt: b.OccurredAt,
	}
	if b.SessionID != nil {
		resp.SessionID = *b.SessionID
	}
	if b.Student != nil {
		brief := NewStudentBrief(b.Student)
		resp.Student = &brief
	}
	return resp
}
