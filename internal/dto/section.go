package dto

import "github.com/Daniyal-Wajid/ClassTrack/internal/model"

// ── 教学班模块 DTO ──

// CreateSectionRequest 创建教学班
// instructor_id 可为空（未分配）、真实讲师 UUID 或字面量 hardinstructor
type CreateSectionRequest struct {
	CourseID     string `json:"course_id"     binding:"required,uuid"`
	Name         string `json:"name"          binding:"required,max=100"`
	InstructorID string `json:"instructor_id" binding:"omitempty"`
}

// UpdateSectionRequest 更新教学班名称
type UpdateSectionRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// AssignInstructorRequest 分配 / 移除讲师
// instructor_id 为空表示解除绑定
type AssignInstructorRequest struct {
	InstructorID string `json:"instructor_id"`
}

// EnrollStudentsRequest 批量选课
type EnrollStudentsRequest struct {
	StudentIDs []string `json:"student_ids" binding:"required,min=1,dive,uuid"`
}

// SectionResponse 教学班响应
type SectionResponse struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	Course           *CourseBrief        `json:"course,omitempty"`
	Instructor       *InstructorResponse `json:"instructor,omitempty"`
	HardInstructor   bool                `json:"hard_instructor"`
	EnrolledStudents []StudentBrief      `json:"enrolled_students,omitempty"`
}

// NewSectionResponse 由模型构造教学班响应，讲师展示统一走 InstructorDisplay
func NewSectionResponse(s *model.Section, profile HardInstructorProfile) SectionResponse {
	resp := SectionResponse{
		ID:             s.SectionID,
		Name:           s.Name,
		Course:         NewCourseBrief(s.Course),
		Instructor:     InstructorDisplay(s.Instructor, s.HardInstructor, profile),
		HardInstructor: s.HardInstructor,
	}
	for i := range s.EnrolledStudents {
		resp.EnrolledStudents = append(resp.EnrolledStudents, NewStudentBrief(&s.EnrolledStudents[i]))
	}
	return resp
}

// SectionAttendanceResponse 教学班考勤报表（按会话分组的到课名单）
type SectionAttendanceResponse struct {
	Section  SectionResponse            `json:"section"`
	Sessions []SessionAttendanceSummary `json:"sessions"`
}

// SessionAttendanceSummary 单次会话的到课汇总
type SessionAttendanceSummary struct {
	Session         SessionResponse          `json:"session"`
	PresentStudents []PresentStudentResponse `json:"present_students"`
}

// PresentStudentResponse 到课学生（展示信息可由 RFID 映射表补全）
type PresentStudentResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	StudentID   string  `json:"student_id"`
	Email       string  `json:"email"`
	CheckInTime *string `json:"check_in_time,omitempty"`
}
