package rfid

// Entry RFID 标签映射项
// 模拟环境的静态映射：真实部署时由读卡器后台下发
type Entry struct {
	Tag       string
	Name      string
	StudentID string
	// UserID 学生在数据库中的主键（UUID）
	UserID string
}

// tagMap 标签 → 学生 静态映射表
var tagMap = map[string]Entry{
	"0000000001": {Tag: "0000000001", Name: "Ali Alblooshi", StudentID: "202102812", UserID: "8f14c9a2-3c51-4b6e-9a44-0d2f5e8a1001"},
	"0000000002": {Tag: "0000000002", Name: "Hamad Alketbi", StudentID: "202021767", UserID: "8f14c9a2-3c51-4b6e-9a44-0d2f5e8a1002"},
	"0000000003": {Tag: "0000000003", Name: "Saif Alketbi", StudentID: "202022212", UserID: "8f14c9a2-3c51-4b6e-9a44-0d2f5e8a1003"},
	"0000000004": {Tag: "0000000004", Name: "Saif Alkaabi", StudentID: "201915236", UserID: "8f14c9a2-3c51-4b6e-9a44-0d2f5e8a1004"},
	"0000000005": {Tag: "0000000005", Name: "Ali Almerri", StudentID: "202100588", UserID: "8f14c9a2-3c51-4b6e-9a44-0d2f5e8a1005"},
}

// Resolve 按标签查找学生，未知标签返回 ok=false
func Resolve(tag string) (Entry, bool) {
	e, ok := tagMap[tag]
	return e, ok
}

// FindStudent 按数据库用户 ID 反查映射项
// 用于"不在选课名单但在映射表中"的放行判定与展示信息补全
func FindStudent(userID string) (Entry, bool) {
	for _, e := range tagMap {
		if e.UserID == userID {
			return e, true
		}
	}
	return Entry{}, false
}
