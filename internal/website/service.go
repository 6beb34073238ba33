package website

import (
	"errors"
	"fmt"

	"github.com/SlpAus/netnuggets-backend/internal/platform/database"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidCategory 表示提交的类别不在枚举集合内
var ErrInvalidCategory = errors.New("无效的网站类别")

// ListApprovedWebsites 返回经过搜索、类别过滤和排序的已审核网站列表。
// viewerUUID 是可选的调用者身份，只在收藏优先排序时使用。
// 评分排序优先使用Redis排行缓存，缓存不可用时回退到数据库排序。
func ListApprovedWebsites(search, category, sortMode, viewerUUID string) ([]Website, error) {
	if sortMode == SortRating && cacheAvailable() && database.IsRedisHealthy() {
		if sites, err := listByRatingFromCache(search, category); err == nil {
			return sites, nil
		} else {
			// 缓存读取失败不致命，降级为数据库排序
			fmt.Printf("警告: 评分排行缓存读取失败，回退到数据库排序: %v\n", err)
		}
	}

	sites, err := ListApproved()
	if err != nil {
		return nil, err
	}
	filtered := FilterWebsites(sites, search, category)

	var bookmarked map[string]bool
	if sortMode == SortBookmarked && viewerUUID != "" {
		if bookmarked, err = BookmarkSet(viewerUUID); err != nil {
			return nil, err
		}
	}
	SortWebsites(filtered, sortMode, bookmarked)
	return filtered, nil
}

// listByRatingFromCache 走缓存路径生成评分降序的列表，不触碰SQLite
func listByRatingFromCache(search, category string) ([]Website, error) {
	sites, err := rankedWebsitesFromCache()
	if err != nil {
		return nil, err
	}
	return FilterWebsites(sites, search, category), nil
}

// CreateInput 是管理员直接创建网站时的输入
type CreateInput struct {
	Name        string
	URL         string
	Description string
	Category    string
	Thumbnail   string
	Featured    bool
	// Approved 为nil时默认为true（管理员创建的条目默认直接上架）
	Approved    *bool
	SubmittedBy string
}

// CreateWebsite 持久化一个新的网站条目并更新排行缓存
func CreateWebsite(input CreateInput) (*Website, error) {
	if !IsValidCategory(input.Category) {
		return nil, ErrInvalidCategory
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("无法生成网站UUID: %w", err)
	}

	w := Website{
		UUID:        id.String(),
		Name:        input.Name,
		URL:         input.URL,
		Description: input.Description,
		Category:    input.Category,
		Thumbnail:   input.Thumbnail,
		Featured:    input.Featured,
		Approved:    true,
		SubmittedBy: input.SubmittedBy,
	}
	if w.Thumbnail == "" {
		w.Thumbnail = DefaultThumbnail
	}
	if input.Approved != nil {
		w.Approved = *input.Approved
	}

	if err := database.DB.Create(&w).Error; err != nil {
		return nil, fmt.Errorf("无法创建网站: %w", err)
	}

	if w.Approved {
		if err := RefreshCacheEntry(&w); err != nil {
			fmt.Printf("警告: %v\n", err)
		}
	}
	return &w, nil
}

// CreateApproved 在事务内创建一个已上架的网站，由审核通过流程调用。
// 不负责缓存更新，调用方在事务提交后自行刷新。
func CreateApproved(tx *gorm.DB, name, url, description, category, submittedBy string) (*Website, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("无法生成网站UUID: %w", err)
	}

	w := Website{
		UUID:        id.String(),
		Name:        name,
		URL:         url,
		Description: description,
		Category:    category,
		Thumbnail:   DefaultThumbnail,
		Featured:    false,
		Approved:    true,
		SubmittedBy: submittedBy,
	}
	if err := tx.Create(&w).Error; err != nil {
		return nil, fmt.Errorf("无法创建网站: %w", err)
	}
	return &w, nil
}

// UpdateInput 是部分更新的输入，nil字段表示不修改
type UpdateInput struct {
	Name        *string
	URL         *string
	Description *string
	Category    *string
	Thumbnail   *string
	Featured    *bool
	Approved    *bool
}

// UpdateWebsite 对网站做部分更新并同步排行缓存
func UpdateWebsite(uuid string, input UpdateInput) (*Website, error) {
	w, err := GetByUUID(uuid)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		w.Name = *input.Name
	}
	if input.URL != nil {
		w.URL = *input.URL
	}
	if input.Description != nil {
		w.Description = *input.Description
	}
	if input.Category != nil {
		if !IsValidCategory(*input.Category) {
			return nil, ErrInvalidCategory
		}
		w.Category = *input.Category
	}
	if input.Thumbnail != nil {
		w.Thumbnail = *input.Thumbnail
	}
	if input.Featured != nil {
		w.Featured = *input.Featured
	}
	if input.Approved != nil {
		w.Approved = *input.Approved
	}

	if err := database.DB.Save(w).Error; err != nil {
		return nil, fmt.Errorf("无法更新网站: %w", err)
	}

	var cacheErr error
	if w.Approved {
		cacheErr = RefreshCacheEntry(w)
	} else {
		cacheErr = RemoveCacheEntry(w.UUID)
	}
	if cacheErr != nil {
		fmt.Printf("警告: %v\n", cacheErr)
	}
	return w, nil
}

// DeleteWebsite 删除一个网站及其全部评分和收藏记录
func DeleteWebsite(uuid string) error {
	if _, err := GetByUUID(uuid); err != nil {
		return err
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("website_uuid = ?", uuid).Delete(&Rating{}).Error; err != nil {
			return fmt.Errorf("无法删除网站评分: %w", err)
		}
		if err := tx.Where("website_uuid = ?", uuid).Delete(&Bookmark{}).Error; err != nil {
			return fmt.Errorf("无法删除网站收藏: %w", err)
		}
		if err := tx.Where("uuid = ?", uuid).Delete(&Website{}).Error; err != nil {
			return fmt.Errorf("无法删除网站: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := RemoveCacheEntry(uuid); err != nil {
		fmt.Printf("警告: %v\n", err)
	}
	return nil
}

// ToggleBookmark 翻转用户对网站的收藏状态。
// 网站不存在时返回 ErrNotFound；连续调用两次会回到原始状态。
func ToggleBookmark(userUUID, websiteUUID string) error {
	if _, err := GetByUUID(websiteUUID); err != nil {
		return err
	}

	var existing Bookmark
	err := database.DB.Where("user_uuid = ? AND website_uuid = ?", userUUID, websiteUUID).First(&existing).Error
	if err == nil {
		if err := database.DB.Delete(&existing).Error; err != nil {
			return fmt.Errorf("无法取消收藏: %w", err)
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("无法查询收藏状态: %w", err)
	}

	b := Bookmark{UserUUID: userUUID, WebsiteUUID: websiteUUID}
	if err := database.DB.Create(&b).Error; err != nil {
		return fmt.Errorf("无法添加收藏: %w", err)
	}
	return nil
}
