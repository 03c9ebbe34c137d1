package model

// Section 教学班表 — 对应 sections
// 讲师绑定三态：真实讲师（InstructorID 非空）、硬编码讲师（HardInstructor=true）、未分配
type Section struct {
	SectionID      string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"section_id"`
	Name           string  `gorm:"type:varchar(100);not null"                     json:"name"`
	CourseID       string  `gorm:"type:uuid;not null"                             json:"course_id"`
	InstructorID   *string `gorm:"type:uuid"                                      json:"instructor_id,omitempty"`
	HardInstructor bool    `gorm:"not null;default:false"                         json:"hard_instructor"`
	BaseModel

	// 关联
	Course           *Course `gorm:"foreignKey:CourseID;references:CourseID"         json:"course,omitempty"`
	Instructor       *User   `gorm:"foreignKey:InstructorID;references:UserID"       json:"instructor,omitempty"`
	EnrolledStudents []User  `gorm:"many2many:section_students;foreignKey:SectionID;joinForeignKey:SectionID;references:UserID;joinReferences:UserID" json:"enrolled_students,omitempty"`
}

// TableName 指定表名
func (Section) TableName() string { return "sections" }
