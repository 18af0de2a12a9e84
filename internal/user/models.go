package user

import (
	"time"

	"gorm.io/datatypes"
)

// UserRole 用户角色
type UserRole string

const (
	RoleAdmin    UserRole = "ADMIN"    // 管理员
	RoleEmployee UserRole = "EMPLOYEE" // 普通员工
)

// User 用户
type User struct {
	ID           string                      `json:"id" gorm:"primaryKey;size:36"`
	JobNumber    string                      `json:"job_number" gorm:"size:50;uniqueIndex;not null"`
	Name         string                      `json:"name" gorm:"size:100;not null"`
	PasswordHash string                      `json:"-" gorm:"size:255;not null"`
	Username     string                      `json:"username" gorm:"size:150;not null"` // 展示名：姓名(工号)
	Role         UserRole                    `json:"role" gorm:"size:20;not null;default:EMPLOYEE"`
	Avatar       string                      `json:"avatar" gorm:"size:500"`
	Skills       datatypes.JSONSlice[string] `json:"skills"` // 技能标签
	CreatedAt    time.Time                   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time                   `json:"updated_at" gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}
