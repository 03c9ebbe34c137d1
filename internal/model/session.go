package model

import "time"

// 会话状态
const (
	SessionOngoing = "ongoing"
	SessionEnded   = "ended"
)

// Session 点名会话表 — 对应 sessions
// StartedBy 记录发起者标识：真实用户 UUID 或保留字面量 hardinstructor / superadmin
type Session struct {
	SessionID      string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"session_id"`
	CourseID       string     `gorm:"type:uuid;not null"                             json:"course_id"`
	SectionID      string     `gorm:"type:uuid;not null"                             json:"section_id"`
	InstructorID   *string    `gorm:"type:uuid"                                      json:"instructor_id,omitempty"`
	HardInstructor bool       `gorm:"not null;default:false"                         json:"hard_instructor"`
	StartedBy      string     `gorm:"type:varchar(64);not null;default:''"           json:"started_by"`
	Status         string     `gorm:"type:varchar(20);not null;default:'ongoing'"    json:"status"` // ongoing | ended
	StartTime      time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"start_time"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	BaseModel

	// 关联
	Course     *Course     `gorm:"foreignKey:CourseID;references:CourseID"   json:"course,omitempty"`
	Section    *Section    `gorm:"foreignKey:SectionID;references:SectionID" json:"section,omitempty"`
	Instructor *User       `gorm:"foreignKey:InstructorID;references:UserID" json:"instructor,omitempty"`
	CameraLogs []CameraLog `gorm:"foreignKey:SessionID;references:SessionID" json:"camera_logs,omitempty"`
}

// TableName 指定表名
func (Session) TableName() string { return "sessions" }
