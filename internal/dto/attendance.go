package dto

import (
	"time"

	"github.com/Daniyal-Wajid/ClassTrack/internal/model"
)

// ── 考勤模块 DTO ──

// MarkAttendanceRequest 手动点名
type MarkAttendanceRequest struct {
	SessionID string `json:"session_id" binding:"required,uuid"`
	StudentID string `json:"student_id" binding:"required,uuid"`
}

// ManualAttendanceRequest 手动改签
type ManualAttendanceRequest struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	Status    string `json:"status"     binding:"required,oneof=present absent"`
}

// RfidScanRequest 刷卡上报
type RfidScanRequest struct {
	Tag string `json:"tag" binding:"required"`
}

// ExternalMarkRequest 外部系统（API Key）标记到课
type ExternalMarkRequest struct {
	SessionID string `json:"session_id" binding:"required,uuid"`
	StudentID string `json:"student_id" binding:"required,uuid"`
}

// AttendanceResponse 考勤记录响应
type AttendanceResponse struct {
	ID          string        `json:"id,omitempty"`
	SessionID   string        `json:"session_id"`
	SectionID   string        `json:"section_id,omitempty"`
	Student     *StudentBrief `json:"student,omitempty"`
	StudentID   string        `json:"student_id,omitempty"`
	Status      string        `json:"status"`
	CheckInTime *time.Time    `json:"check_in_time,omitempty"`
}

// NewAttendanceResponse 由模型构造考勤记录响应
func NewAttendanceResponse(a *model.Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:          a.AttendanceID,
		SessionID:   a.SessionID,
		SectionID:   a.SectionID,
		StudentID:   a.StudentID,
		Status:      a.Status,
		CheckInTime: a.CheckInTime,
	}
	if a.Student != nil {
		brief := NewStudentBrief(a.Student)
		resp.Student = &brief
	}
	return resp
}

// ExternalMarkResponse 外部标记响应
// already_marked 为 true 时返回已存在记录，从不覆盖
type ExternalMarkResponse struct {
	Attendance    AttendanceResponse `json:"attendance"`
	AlreadyMarked bool               `json:"already_marked"`
}

// RfidScanResponse 刷卡结果响应
type RfidScanResponse struct {
	Message   string `json:"message"`
	Name      string `json:"name"`
	StudentID string `json:"student_id"`
	UserID    string `json:"user_id"`
	Marked    bool   `json:"marked"` // 是否同时写入了考勤
}

// RfidScanRecordResponse 原始刷卡记录响应
type RfidScanRecordResponse struct {
	ID        string        `json:"id"`
	SessionID string        `json:"session_id"`
	Tag       string        `json:"tag"`
	Student   *StudentBrief `json:"student,omitempty"`
	ScannedBy string        `json:"scanned_by,omitempty"`
	ScannedAt time.Time     `json:"scanned_at"`
}

// AdminAttendanceRecord 管理端考勤报表行
type AdminAttendanceRecord struct {
	ID          string           `json:"id"`
	Student     *StudentBrief    `json:"student,omitempty"`
	StudentID   string           `json:"student_id"`
	Session     *SessionResponse `json:"session,omitempty"`
	Status      string           `json:"status"`
	CheckInTime *time.Time       `json:"check_in_time,omitempty"`
}
