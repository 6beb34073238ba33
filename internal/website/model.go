package website

import (
	"time"
)

// DefaultThumbnail 是没有提供缩略图时使用的占位符
const DefaultThumbnail = "🌐"

// Website 定义了目录中一个网站条目的持久化模型。
// AverageRating 和 RatingsCount 是派生字段，
// 必须与 ratings 表中的行在同一个事务内保持一致。
type Website struct {
	// UUID 是网站的主键，服务端生成的UUID v7
	UUID string `gorm:"primarykey;type:varchar(36)"`

	Name        string `gorm:"not null"`
	URL         string `gorm:"not null"`
	Description string `gorm:"not null"`

	// Category 必须是 category.go 中枚举的类别之一
	Category string `gorm:"type:varchar(32);not null;index"`

	// Thumbnail 是展示用的emoji图标
	Thumbnail string

	// Featured 由管理员手工设置，用于首页的精选区
	Featured bool

	// Approved 为false的网站不会出现在公开列表中
	Approved bool `gorm:"index"`

	// SubmittedBy 是提交者的用户UUID，管理员直接创建时是管理员自己
	SubmittedBy string `gorm:"type:varchar(36)"`

	// AverageRating 是 ratings 表中该网站所有评分的算术平均值，无评分时为0
	AverageRating float64

	// RatingsCount 是该网站的评分总数
	RatingsCount int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Rating 定义了单个用户对单个网站的评分。
// (UserUUID, WebsiteUUID) 上的唯一索引保证了重复评分是替换而非追加，
// 因此网站的评分序列和用户的评分映射读取的是同一份数据，不会互相漂移。
type Rating struct {
	ID uint `gorm:"primarykey"`

	WebsiteUUID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_rating_user_website"`
	UserUUID    string `gorm:"type:varchar(36);not null;uniqueIndex:idx_rating_user_website"`

	// Value 的合法范围是1到5（含）
	Value int `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Bookmark 定义了用户对网站的收藏关系。
// 唯一索引保证同一个用户对同一个网站最多只有一条收藏记录。
type Bookmark struct {
	ID uint `gorm:"primarykey"`

	UserUUID    string `gorm:"type:varchar(36);not null;uniqueIndex:idx_bookmark_user_website"`
	WebsiteUUID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_bookmark_user_website"`

	CreatedAt time.Time
}
