package user

import (
	"time"
)

// 用户角色
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User 定义了账号在SQLite数据库中的持久化模型。
// 收藏和评分不在这里冗余存储，它们分别是website包的
// Bookmark 和 Rating 表中以用户UUID为键的行。
type User struct {
	// UUID 是用户的主键，服务端生成的UUID v7
	UUID string `gorm:"primarykey;type:varchar(36)"`

	// Name 是展示用的昵称
	Name string `gorm:"not null"`

	// Email 是登录标识，全局唯一
	Email string `gorm:"uniqueIndex;not null"`

	// PasswordHash 是密码的bcrypt哈希，永远不出现在任何API响应中
	PasswordHash string `gorm:"not null"`

	// Role 是 user 或 admin
	Role string `gorm:"type:varchar(8);not null;default:user"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
