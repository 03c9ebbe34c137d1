package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// BaseModel 通用审计字段（所有业务模型嵌入）
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ── PostgreSQL JSONB 自定义类型 ──

// StudentStatus 摄像头帧中单个人员的检测结果
type StudentStatus struct {
	Index      int       `json:"id"`   // 帧内序号
	BBox       []float64 `json:"bbox"` // [x, y, w, h]
	Flags      []string  `json:"flags,omitempty"`
	Suspicious bool      `json:"suspicious"`
}

// StudentStatusList 对应 camera_logs.students JSONB 列，实现 GORM Scanner/Valuer 接口
type StudentStatusList []StudentStatus

// Scan 将 JSONB 文本解析为 []StudentStatus
func (l *StudentStatusList) Scan(src interface{}) error {
	if src == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("StudentStatusList.Scan: unsupported type %T", src)
	}
	if len(data) == 0 {
		*l = StudentStatusList{}
		return nil
	}
	return json.Unmarshal(data, l)
}

// Value 序列化为 JSONB 文本
func (l StudentStatusList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}
