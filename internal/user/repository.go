package user

import (
	"errors"
	"fmt"

	"github.com/SlpAus/netnuggets-backend/internal/platform/database"
	"gorm.io/gorm"
)

// ErrNotFound 表示目标用户不存在
var ErrNotFound = errors.New("用户不存在")

// GetByUUID 按主键查询单个用户
func GetByUUID(uuid string) (*User, error) {
	var u User
	if err := database.DB.Where("uuid = ?", uuid).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("无法查询用户 %s: %w", uuid, err)
	}
	return &u, nil
}

// GetByEmail 按登录邮箱查询单个用户
func GetByEmail(email string) (*User, error) {
	var u User
	if err := database.DB.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("无法按邮箱查询用户: %w", err)
	}
	return &u, nil
}

// GetByUUIDs 批量查询用户，返回以UUID为键的映射，缺失的UUID被跳过
func GetByUUIDs(uuids []string) (map[string]User, error) {
	result := make(map[string]User, len(uuids))
	if len(uuids) == 0 {
		return result, nil
	}

	var users []User
	if err := database.DB.Where("uuid IN ?", uuids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("无法批量查询用户: %w", err)
	}
	for _, u := range users {
		result[u.UUID] = u
	}
	return result, nil
}

// ListAll 返回全部用户，按注册时间从新到旧排列
func ListAll() ([]User, error) {
	var users []User
	if err := database.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("无法查询用户列表: %w", err)
	}
	return users, nil
}
