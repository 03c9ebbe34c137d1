package model

import "time"

// 行为状态
const (
	BehaviorPresent    = "present"
	BehaviorAbsent     = "absent"
	BehaviorSuspicious = "suspicious"
)

// Behavior 行为日志表 — 对应 behaviors
// AI 侧上报的行为判定结果，快照字段为冗余展示信息
type Behavior struct {
	BehaviorID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"behavior_id"`
	StudentID     string    `gorm:"type:uuid;not null"                             json:"student_id"`
	SessionID     *string   `gorm:"type:uuid"                                      json:"session_id,omitempty"`
	Status        string    `gorm:"type:varchar(20);not null"                      json:"status"` // present | absent | suspicious
	Details       string    `gorm:"type:text;not null;default:''"                  json:"details"`
	SnapshotName  *string   `gorm:"type:varchar(100)"                              json:"snapshot_name,omitempty"`
	SnapshotEmail *string   `gorm:"type:varchar(255)"                              json:"snapshot_email,omitempty"`
	OccurredAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"occurred_at"`
	BaseModel

	// 关联
	Student *User `gorm:"foreignKey:StudentID;references:UserID" json:"student,omitempty"`
}

// TableName 指定表名
func (Behavior) TableName() string { return "behaviors" }
