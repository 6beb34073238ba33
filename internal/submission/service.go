package submission

import (
	"errors"
	"fmt"

	"github.com/SlpAus/netnuggets-backend/internal/platform/database"
	"github.com/SlpAus/netnuggets-backend/internal/website"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrNotFound 表示目标提交不存在
	ErrNotFound = errors.New("提交不存在")
	// ErrAlreadyReviewed 表示提交已经被审核过，不能重复审核。
	// 这防止了重复通过同一个提交产生重复的网站条目。
	ErrAlreadyReviewed = errors.New("提交已被审核")
)

// CreateSubmission 记录一条新的社区提交，初始状态为 pending
func CreateSubmission(name, url, description, category, submittedBy string) (*Submission, error) {
	if !website.IsValidCategory(category) {
		return nil, website.ErrInvalidCategory
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("无法生成提交UUID: %w", err)
	}

	s := Submission{
		UUID:        id.String(),
		Name:        name,
		URL:         url,
		Description: description,
		Category:    category,
		SubmittedBy: submittedBy,
		Status:      StatusPending,
	}
	if err := database.DB.Create(&s).Error; err != nil {
		return nil, fmt.Errorf("无法创建提交: %w", err)
	}
	return &s, nil
}

// ListAll 返回全部提交，按提交时间从新到旧排列
func ListAll() ([]Submission, error) {
	var submissions []Submission
	if err := database.DB.Order("created_at DESC").Find(&submissions).Error; err != nil {
		return nil, fmt.Errorf("无法查询提交列表: %w", err)
	}
	return submissions, nil
}

// lockPending 在事务内锁定一条提交并校验它仍处于 pending 状态
func lockPending(tx *gorm.DB, submissionUUID string) (*Submission, error) {
	var s Submission
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("uuid = ?", submissionUUID).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("无法查询提交 %s: %w", submissionUUID, err)
	}
	if s.Status != StatusPending {
		return nil, ErrAlreadyReviewed
	}
	return &s, nil
}

// Approve 将一条 pending 提交转化为已上架的网站。
// 创建网站和更新提交状态在同一个事务内完成，不会出现
// 网站已创建而提交仍然 pending 的中间状态。
func Approve(submissionUUID string) (*website.Website, error) {
	var created *website.Website
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		s, err := lockPending(tx, submissionUUID)
		if err != nil {
			return err
		}

		created, err = website.CreateApproved(tx, s.Name, s.URL, s.Description, s.Category, s.SubmittedBy)
		if err != nil {
			return err
		}

		if err := tx.Model(&Submission{}).Where("uuid = ?", s.UUID).
			Update("status", StatusApproved).Error; err != nil {
			return fmt.Errorf("无法更新提交状态: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 新网站还没有评分，以0分进入缓存
	if err := website.RefreshCacheEntry(created); err != nil {
		fmt.Printf("警告: %v\n", err)
	}
	return created, nil
}

// Reject 将一条 pending 提交标记为 rejected，没有其他副作用
func Reject(submissionUUID string) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		s, err := lockPending(tx, submissionUUID)
		if err != nil {
			return err
		}
		if err := tx.Model(&Submission{}).Where("uuid = ?", s.UUID).
			Update("status", StatusRejected).Error; err != nil {
			return fmt.Errorf("无法更新提交状态: %w", err)
		}
		return nil
	})
}
