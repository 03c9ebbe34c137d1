package model

// Course 课程表 — 对应 courses
type Course struct {
	CourseID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Code     string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"code"` // 如 CS101
	Name     string `gorm:"type:varchar(100);not null"                     json:"name"`
	BaseModel

	// 关联
	Sections []Section `gorm:"foreignKey:CourseID;references:CourseID" json:"sections,omitempty"`
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }
