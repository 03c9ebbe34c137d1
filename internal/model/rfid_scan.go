package model

import "time"

// RfidScan 原始刷卡记录表 — 对应 rfid_scans
// 仅追加、不去重：无论选课校验结果如何，已解析标签的每次刷卡都会落一条
type RfidScan struct {
	RfidScanID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"rfid_scan_id"`
	SessionID  string    `gorm:"type:uuid;not null"                             json:"session_id"`
	Tag        string    `gorm:"type:varchar(64);not null"                      json:"tag"`
	StudentID  *string   `gorm:"type:uuid"                                      json:"student_id,omitempty"`
	ScannedBy  *string   `gorm:"type:varchar(64)"                               json:"scanned_by,omitempty"`
	ScannedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"scanned_at"`
	BaseModel

	// 关联
	Student *User `gorm:"foreignKey:StudentID;references:UserID" json:"student,omitempty"`
}

// TableName 指定表名
func (RfidScan) TableName() string { return "rfid_scans" }
