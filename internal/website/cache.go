package website

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SlpAus/netnuggets-backend/internal/platform/database"
	"github.com/redis/go-redis/v9"
)

// 网站相关的Redis键名。两个键只缓存已审核的网站，
// 都是SQLite数据的派生缓存：评分排序的读取路径优先走这里，
// Redis不可用时回退到数据库。
const (
	// InfoKey 是一个Hash，field是网站UUID，value是websiteInfo的JSON
	InfoKey = "website:info"
	// RankingKey 是一个Sorted Set，score是平均分，member是网站UUID
	RankingKey = "website:ranking"
)

// websiteInfo 定义了在Redis website:info Hash中存储的网站条目数据。
// 只有已审核的网站会进入缓存，所以不存Approved字段。
type websiteInfo struct {
	Name          string    `json:"name"`
	URL           string    `json:"url"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Thumbnail     string    `json:"thumbnail"`
	Featured      bool      `json:"featured"`
	SubmittedBy   string    `json:"submittedBy"`
	AverageRating float64   `json:"averageRating"`
	RatingsCount  int       `json:"ratingsCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toInfo(w Website) websiteInfo {
	return websiteInfo{
		Name:          w.Name,
		URL:           w.URL,
		Description:   w.Description,
		Category:      w.Category,
		Thumbnail:     w.Thumbnail,
		Featured:      w.Featured,
		SubmittedBy:   w.SubmittedBy,
		AverageRating: w.AverageRating,
		RatingsCount:  w.RatingsCount,
		CreatedAt:     w.CreatedAt,
	}
}

func fromInfo(uuid string, info websiteInfo) Website {
	return Website{
		UUID:          uuid,
		Name:          info.Name,
		URL:           info.URL,
		Description:   info.Description,
		Category:      info.Category,
		Thumbnail:     info.Thumbnail,
		Featured:      info.Featured,
		Approved:      true,
		SubmittedBy:   info.SubmittedBy,
		AverageRating: info.AverageRating,
		RatingsCount:  info.RatingsCount,
		CreatedAt:     info.CreatedAt,
	}
}

// cacheAvailable 判断当前是否应该尝试访问缓存。
// 测试环境不配置Redis，此时所有缓存操作都静默跳过。
func cacheAvailable() bool {
	return database.RDB != nil
}

// WarmupCache 从SQLite全量重建网站信息和评分排行缓存。
// 调用方需要保证调用时机是安全的（启动流程或健康检查的重建路径）。
func WarmupCache() error {
	if !cacheAvailable() {
		return nil
	}

	var websites []Website
	if err := database.DB.Where("approved = ?", true).Find(&websites).Error; err != nil {
		return fmt.Errorf("无法从SQLite读取网站数据: %w", err)
	}

	pipe := database.RDB.Pipeline()
	pipe.Del(database.Ctx, InfoKey, RankingKey)
	for _, w := range websites {
		infoJSON, err := json.Marshal(toInfo(w))
		if err != nil {
			return fmt.Errorf("无法序列化网站 %s: %w", w.UUID, err)
		}
		pipe.HSet(database.Ctx, InfoKey, w.UUID, infoJSON)
		pipe.ZAdd(database.Ctx, RankingKey, redis.Z{
			Score:  w.AverageRating,
			Member: w.UUID,
		})
	}
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("预热网站缓存失败: %w", err)
	}

	fmt.Printf("成功预热 %d 个网站的信息和评分排行缓存。\n", len(websites))
	return nil
}

// RefreshCacheEntry 更新单个网站的缓存条目（信息和排行分数）。
// 缓存更新是尽力而为的：失败只影响缓存读取的新鲜度，不影响数据正确性。
func RefreshCacheEntry(w *Website) error {
	if !cacheAvailable() {
		return nil
	}

	infoJSON, err := json.Marshal(toInfo(*w))
	if err != nil {
		return fmt.Errorf("无法序列化网站 %s: %w", w.UUID, err)
	}

	pipe := database.RDB.Pipeline()
	pipe.HSet(database.Ctx, InfoKey, w.UUID, infoJSON)
	pipe.ZAdd(database.Ctx, RankingKey, redis.Z{
		Score:  w.AverageRating,
		Member: w.UUID,
	})
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("无法更新网站 %s 的缓存: %w", w.UUID, err)
	}
	return nil
}

// RemoveCacheEntry 从缓存中移除一个网站（删除或撤销审核时）
func RemoveCacheEntry(uuid string) error {
	if !cacheAvailable() {
		return nil
	}

	pipe := database.RDB.Pipeline()
	pipe.HDel(database.Ctx, InfoKey, uuid)
	pipe.ZRem(database.Ctx, RankingKey, uuid)
	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("无法从缓存移除网站 %s: %w", uuid, err)
	}
	return nil
}

// rankedWebsitesFromCache 从缓存返回按平均分从高到低排列的网站。
// 任何一个排行成员缺少信息条目都视为缓存不完整，返回错误让调用方回退。
func rankedWebsitesFromCache() ([]Website, error) {
	uuids, err := database.RDB.ZRevRange(database.Ctx, RankingKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("无法从Redis读取评分排行: %w", err)
	}
	if len(uuids) == 0 {
		return []Website{}, nil
	}

	infoJSONs, err := database.RDB.HMGet(database.Ctx, InfoKey, uuids...).Result()
	if err != nil {
		return nil, fmt.Errorf("无法从Redis读取网站信息: %w", err)
	}

	sites := make([]Website, 0, len(uuids))
	for i, id := range uuids {
		if infoJSONs[i] == nil {
			return nil, fmt.Errorf("网站 %s 在排行中但缺少信息条目", id)
		}
		var info websiteInfo
		if err := json.Unmarshal([]byte(infoJSONs[i].(string)), &info); err != nil {
			return nil, fmt.Errorf("无法解析网站 %s 的缓存数据: %w", id, err)
		}
		sites = append(sites, fromInfo(id, info))
	}
	return sites, nil
}
