package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User       UserRepository
	Course     CourseRepository
	Section    SectionRepository
	Session    SessionRepository
	Attendance AttendanceRepository
	CameraLog  CameraLogRepository
	RfidScan   RfidScanRepository
	Behavior   BehaviorRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:       NewUserRepo(db),
		Course:     NewCourseRepo(db),
		Section:    NewSectionRepo(db),
		Session:    NewSessionRepo(db),
		Attendance: NewAttendanceRepo(db),
		CameraLog:  NewCameraLogRepo(db),
		RfidScan:   NewRfidScanRepo(db),
		Behavior:   NewBehaviorRepo(db),
	}
}
