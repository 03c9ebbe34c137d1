package model

import "time"

// 考勤状态
const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
)

// Attendance 考勤记录表 — 对应 attendances
// 每个 (session, student) 至多一条，所有写入路径都走 upsert，后写覆盖先写
type Attendance struct {
	AttendanceID string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"        json:"attendance_id"`
	SectionID    string     `gorm:"type:uuid;not null"                                    json:"section_id"`
	SessionID    string     `gorm:"type:uuid;not null;uniqueIndex:uniq_session_student"   json:"session_id"`
	StudentID    string     `gorm:"type:uuid;not null;uniqueIndex:uniq_session_student"   json:"student_id"`
	Status       string     `gorm:"type:varchar(10);not null;default:'absent'"            json:"status"` // present | absent
	CheckInTime  *time.Time `json:"check_in_time,omitempty"`
	BaseModel

	// 关联
	Student *User    `gorm:"foreignKey:StudentID;references:UserID"    json:"student,omitempty"`
	Session *Session `gorm:"foreignKey:SessionID;references:SessionID" json:"session,omitempty"`
}

// TableName 指定表名
func (Attendance) TableName() string { return "attendances" }
