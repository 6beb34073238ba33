package submission

import (
	"time"
)

// 提交的审核状态。状态是单向的：一旦离开 pending 就不再回退，
// 也不允许从 approved / rejected 再次审核。
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Submission 定义了等待审核的社区提交的持久化模型。
// 审核通过时会复制字段创建一个Website，提交记录本身保留并更新状态。
type Submission struct {
	// UUID 是提交的主键，服务端生成的UUID v7
	UUID string `gorm:"primarykey;type:varchar(36)"`

	Name        string `gorm:"not null"`
	URL         string `gorm:"not null"`
	Description string `gorm:"not null"`
	Category    string `gorm:"type:varchar(32);not null"`

	// SubmittedBy 是提交者的用户UUID
	SubmittedBy string `gorm:"type:varchar(36);not null"`

	Status string `gorm:"type:varchar(8);not null;default:pending;index"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
