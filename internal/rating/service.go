package rating

import (
	"errors"
	"fmt"
	"time"

	"github.com/SlpAus/netnuggets-backend/internal/platform/database"
	"github.com/SlpAus/netnuggets-backend/internal/website"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrInvalidRating 表示评分缺失或超出1到5的范围
var ErrInvalidRating = errors.New("评分必须在1到5之间")

// Rate 记录一个用户对网站的评分。
// 同一个用户重复评分是替换语义：评分行被更新而不是追加，
// 网站的平均分在同一个事务内重新计算，两者不会不一致。
func Rate(websiteUUID, userUUID string, value int) (*website.Website, error) {
	if value < 1 || value > 5 {
		return nil, ErrInvalidRating
	}

	var updated website.Website
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// 锁定网站行，防止并发评分互相覆盖统计字段
		var w website.Website
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("uuid = ?", websiteUUID).First(&w).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return website.ErrNotFound
			}
			return fmt.Errorf("无法查询网站 %s: %w", websiteUUID, err)
		}

		// 唯一索引 (user_uuid, website_uuid) 上的upsert实现替换语义
		r := website.Rating{
			WebsiteUUID: websiteUUID,
			UserUUID:    userUUID,
			Value:       value,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_uuid"}, {Name: "website_uuid"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"value":      value,
				"updated_at": time.Now(),
			}),
		}).Create(&r).Error
		if err != nil {
			return fmt.Errorf("无法写入评分: %w", err)
		}

		avg, count, err := website.RecomputeStats(tx, websiteUUID)
		if err != nil {
			return err
		}

		w.AverageRating = avg
		w.RatingsCount = int(count)
		updated = w
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 事务提交后尽力刷新缓存，失败只影响缓存读取的新鲜度
	if updated.Approved {
		if err := website.RefreshCacheEntry(&updated); err != nil {
			fmt.Printf("警告: %v\n", err)
		}
	}
	return &updated, nil
}
