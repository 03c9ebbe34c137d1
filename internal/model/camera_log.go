package model

// CameraLog 摄像头检测日志表 — 对应 camera_logs
// 仅追加，仅用于展示，不参与任何考勤判定
type CameraLog struct {
	CameraLogID   string            `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"camera_log_id"`
	SessionID     string            `gorm:"type:uuid;not null"                             json:"session_id"`
	StudentID     *string           `gorm:"type:uuid"                                      json:"student_id,omitempty"`
	FacesDetected int               `gorm:"not null;default:0"                             json:"faces_detected"`
	Suspicious    bool              `gorm:"not null;default:false"                         json:"suspicious"`
	Message       string            `gorm:"type:text;not null;default:''"                  json:"message"`
	Image         string            `gorm:"type:text;not null;default:''"                  json:"image,omitempty"` // 带标注框的 base64 快照
	Students      StudentStatusList `gorm:"type:jsonb"                                     json:"students,omitempty"`
	BaseModel
}

// TableName 指定表名
func (CameraLog) TableName() string { return "camera_logs" }
