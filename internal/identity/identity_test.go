package identity

import (
	"testing"

	"github.com/Daniyal-Wajid/ClassTrack/pkg/jwt"
)

func claimsFor(userID, role string) *jwt.Claims {
	return &jwt.Claims{
		UserID: userID,
		Role:   role,
		Name:   "测试用户",
		Email:  "test@test.com",
	}
}

func TestFromClaims_SuperAdmin(t *testing.T) {
	ident := FromClaims(claimsFor(SuperAdminID, ""))

	if ident.Kind != KindSuperAdmin {
		t.Errorf("期望 KindSuperAdmin，实际=%v", ident.Kind)
	}
	if !ident.IsSuperAdmin() || !ident.IsAdmin() {
		t.Error("保留标识 superadmin 应还原为超级管理员")
	}
	// 角色由保留标识强制为 admin，不信任声明中的 role 字段
	if ident.Role != "admin" {
		t.Errorf("期望 role=admin，实际=%s", ident.Role)
	}
}

func TestFromClaims_HardInstructor(t *testing.T) {
	ident := FromClaims(claimsFor(HardInstructorID, ""))

	if ident.Kind != KindHardInstructor {
		t.Errorf("期望 KindHardInstructor，实际=%v", ident.Kind)
	}
	if !ident.IsHardInstructor() {
		t.Error("保留标识 hardinstructor 应还原为硬编码讲师")
	}
	if ident.Role != "instructor" {
		t.Errorf("期望 role=instructor，实际=%s", ident.Role)
	}
	if ident.IsAdmin() {
		t.Error("硬编码讲师不应视同管理员")
	}
}

func TestFromClaims_RegularUser(t *testing.T) {
	ident := FromClaims(claimsFor("8f14c9a2-3c51-4b6e-9a44-0d2f5e8a1001", "student"))

	if ident.Kind != KindUser {
		t.Errorf("期望 KindUser，实际=%v", ident.Kind)
	}
	if ident.Role != "student" {
		t.Errorf("期望 role=student，实际=%s", ident.Role)
	}
	if ident.IsSuperAdmin() || ident.IsHardInstructor() {
		t.Error("普通用户不应命中任何保留身份")
	}
}

func TestHasRole(t *testing.T) {
	superAdmin := FromClaims(claimsFor(SuperAdminID, ""))
	hard := FromClaims(claimsFor(HardInstructorID, ""))
	student := FromClaims(claimsFor("user-1", "student"))
	admin := FromClaims(claimsFor("user-2", "admin"))

	// 超级管理员放行所有角色
	if !superAdmin.HasRole("student") || !superAdmin.HasRole("instructor") || !superAdmin.HasRole("admin") {
		t.Error("超级管理员应放行所有角色")
	}

	// 硬编码讲师按 instructor 匹配
	if !hard.HasRole("instructor") {
		t.Error("硬编码讲师应匹配 instructor 角色")
	}
	if hard.HasRole("admin") {
		t.Error("硬编码讲师不应匹配 admin 角色")
	}
	if !hard.HasRole("admin", "instructor") {
		t.Error("多角色列表中任一匹配即放行")
	}

	// 普通用户严格按自身角色匹配
	if student.HasRole("instructor") {
		t.Error("学生不应匹配 instructor 角色")
	}
	if !student.HasRole("student") {
		t.Error("学生应匹配 student 角色")
	}

	// 数据库 admin 用户
	if !admin.IsAdmin() {
		t.Error("数据库 admin 用户应视同管理员")
	}
	if !admin.HasRole("admin") {
		t.Error("admin 用户应匹配 admin 角色")
	}
}
