package identity

import "github.com/Daniyal-Wajid/ClassTrack/pkg/jwt"

// 保留用户标识：内置账号不落库，Token 中的 id 使用固定字面量
const (
	SuperAdminID     = "superadmin"
	HardInstructorID = "hardinstructor"
)

// Kind 身份变体标签
type Kind int

const (
	// KindUser 数据库中的普通用户（学生 / 讲师 / 管理员）
	KindUser Kind = iota
	// KindSuperAdmin 环境内置超级管理员
	KindSuperAdmin
	// KindHardInstructor 环境内置硬编码讲师
	KindHardInstructor
)

// Identity 请求身份
// 用带标签的变体替代散落在各处理器里的魔法字符串比较：
// 所有"是不是内置账号"的判断都走这里的方法
type Identity struct {
	Kind  Kind
	ID    string
	Name  string
	Email string
	Role  string
}

// FromClaims 根据 JWT 声明重建身份
// 保留标识不查库，直接从声明载荷还原
func FromClaims(claims *jwt.Claims) Identity {
	switch claims.UserID {
	case SuperAdminID:
		return Identity{
			Kind:  KindSuperAdmin,
			ID:    SuperAdminID,
			Name:  claims.Name,
			Email: claims.Email,
			Role:  "admin",
		}
	case HardInstructorID:
		return Identity{
			Kind:  KindHardInstructor,
			ID:    HardInstructorID,
			Name:  claims.Name,
			Email: claims.Email,
			Role:  "instructor",
		}
	default:
		return Identity{
			Kind:  KindUser,
			ID:    claims.UserID,
			Name:  claims.Name,
			Email: claims.Email,
			Role:  claims.Role,
		}
	}
}

// IsSuperAdmin 是否为内置超级管理员
func (i Identity) IsSuperAdmin() bool { return i.Kind == KindSuperAdmin }

// IsHardInstructor 是否为内置硬编码讲师
func (i Identity) IsHardInstructor() bool { return i.Kind == KindHardInstructor }

// IsAdmin 管理员（内置超管视同管理员）
func (i Identity) IsAdmin() bool {
	return i.Kind == KindSuperAdmin || i.Role == "admin"
}

// HasRole 是否具有指定角色之一
// 超级管理员放行所有角色；硬编码讲师按 instructor 角色匹配
func (i Identity) HasRole(roles ...string) bool {
	if i.Kind == KindSuperAdmin {
		return true
	}
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}
