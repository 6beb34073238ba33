package website

import (
	"errors"
	"fmt"

	"github.com/SlpAus/netnuggets-backend/internal/platform/database"
	"gorm.io/gorm"
)

// ErrNotFound 表示目标网站不存在
var ErrNotFound = errors.New("网站不存在")

// GetByUUID 按主键查询单个网站
func GetByUUID(uuid string) (*Website, error) {
	var w Website
	if err := database.DB.Where("uuid = ?", uuid).First(&w).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("无法查询网站 %s: %w", uuid, err)
	}
	return &w, nil
}

// ListApproved 返回所有已通过审核的网站，按创建时间从新到旧排列
func ListApproved() ([]Website, error) {
	var websites []Website
	if err := database.DB.Where("approved = ?", true).Order("created_at DESC").Find(&websites).Error; err != nil {
		return nil, fmt.Errorf("无法查询网站列表: %w", err)
	}
	return websites, nil
}

// ListByUUIDs 按给定的UUID顺序返回网站，缺失的UUID会被跳过
func ListByUUIDs(uuids []string) ([]Website, error) {
	if len(uuids) == 0 {
		return []Website{}, nil
	}

	var rows []Website
	if err := database.DB.Where("uuid IN ?", uuids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("无法按UUID查询网站: %w", err)
	}

	byUUID := make(map[string]Website, len(rows))
	for _, w := range rows {
		byUUID[w.UUID] = w
	}

	ordered := make([]Website, 0, len(rows))
	for _, id := range uuids {
		if w, ok := byUUID[id]; ok {
			ordered = append(ordered, w)
		}
	}
	return ordered, nil
}

// RatingValues 返回一批网站的评分序列，按评分写入顺序排列。
// 返回值以网站UUID为键。
func RatingValues(uuids []string) (map[string][]int, error) {
	result := make(map[string][]int, len(uuids))
	if len(uuids) == 0 {
		return result, nil
	}

	var rows []Rating
	if err := database.DB.Where("website_uuid IN ?", uuids).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("无法查询评分序列: %w", err)
	}
	for _, r := range rows {
		result[r.WebsiteUUID] = append(result[r.WebsiteUUID], r.Value)
	}
	return result, nil
}

// RatingsByUser 返回某个用户的全部评分，以网站UUID为键。
// 它就是前端“我给这个网站打过几分”的数据来源。
func RatingsByUser(userUUID string) (map[string]int, error) {
	var rows []Rating
	if err := database.DB.Where("user_uuid = ?", userUUID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("无法查询用户评分: %w", err)
	}
	result := make(map[string]int, len(rows))
	for _, r := range rows {
		result[r.WebsiteUUID] = r.Value
	}
	return result, nil
}

// BookmarkUUIDs 返回某个用户收藏的网站UUID，按收藏时间排列
func BookmarkUUIDs(userUUID string) ([]string, error) {
	var rows []Bookmark
	if err := database.DB.Where("user_uuid = ?", userUUID).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("无法查询用户收藏: %w", err)
	}
	uuids := make([]string, 0, len(rows))
	for _, b := range rows {
		uuids = append(uuids, b.WebsiteUUID)
	}
	return uuids, nil
}

// BookmarkSet 返回某个用户收藏的网站UUID集合，用于列表排序
func BookmarkSet(userUUID string) (map[string]bool, error) {
	uuids, err := BookmarkUUIDs(userUUID)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(uuids))
	for _, id := range uuids {
		set[id] = true
	}
	return set, nil
}

// RecomputeStats 在事务内重新计算一个网站的平均分和评分数，并写回网站行。
// 必须在修改 ratings 表的同一个事务中调用，以维持派生字段的不变量。
func RecomputeStats(tx *gorm.DB, websiteUUID string) (avg float64, count int64, err error) {
	if err = tx.Model(&Rating{}).Where("website_uuid = ?", websiteUUID).Count(&count).Error; err != nil {
		return 0, 0, fmt.Errorf("无法统计评分数: %w", err)
	}

	if count > 0 {
		var sum int64
		row := tx.Model(&Rating{}).Select("SUM(value)").Where("website_uuid = ?", websiteUUID).Row()
		if err = row.Scan(&sum); err != nil {
			return 0, 0, fmt.Errorf("无法汇总评分: %w", err)
		}
		avg = float64(sum) / float64(count)
	}

	err = tx.Model(&Website{}).Where("uuid = ?", websiteUUID).
		Updates(map[string]interface{}{"average_rating": avg, "ratings_count": count}).Error
	if err != nil {
		return 0, 0, fmt.Errorf("无法更新网站评分统计: %w", err)
	}
	return avg, count, nil
}

// CleanupUserData 在事务内删除某个用户的全部收藏和评分，
// 并重新计算所有受影响网站的统计字段。返回受影响的网站UUID。
func CleanupUserData(tx *gorm.DB, userUUID string) ([]string, error) {
	var rated []Rating
	if err := tx.Where("user_uuid = ?", userUUID).Find(&rated).Error; err != nil {
		return nil, fmt.Errorf("无法查询用户评分: %w", err)
	}

	if err := tx.Where("user_uuid = ?", userUUID).Delete(&Rating{}).Error; err != nil {
		return nil, fmt.Errorf("无法删除用户评分: %w", err)
	}
	if err := tx.Where("user_uuid = ?", userUUID).Delete(&Bookmark{}).Error; err != nil {
		return nil, fmt.Errorf("无法删除用户收藏: %w", err)
	}

	affected := make([]string, 0, len(rated))
	for _, r := range rated {
		if _, _, err := RecomputeStats(tx, r.WebsiteUUID); err != nil {
			return nil, err
		}
		affected = append(affected, r.WebsiteUUID)
	}
	return affected, nil
}
