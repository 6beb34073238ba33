package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/SlpAus/netnuggets-backend/internal/platform/config"
	"github.com/SlpAus/netnuggets-backend/internal/platform/database"
	"github.com/SlpAus/netnuggets-backend/internal/website"
	"github.com/SlpAus/netnuggets-backend/pkg/token"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	// ErrEmailTaken 表示注册邮箱已被占用
	ErrEmailTaken = errors.New("邮箱已被注册")
	// ErrInvalidCredentials 表示登录邮箱、密码或角色不匹配
	ErrInvalidCredentials = errors.New("登录凭证无效")
	// ErrBadAdminCode 表示注册管理员时提供的邀请码不正确
	ErrBadAdminCode = errors.New("管理员邀请码不正确")
	// ErrSelfDelete 表示管理员试图删除自己的账号
	ErrSelfDelete = errors.New("不能删除自己的账号")
)

// Register 创建一个新账号并签发登录令牌。
// 注册管理员账号需要提供与配置一致的邀请码。
func Register(name, email, password, role, adminCode string) (*User, string, error) {
	if role == "" {
		role = RoleUser
	}
	if role != RoleUser && role != RoleAdmin {
		role = RoleUser
	}
	if role == RoleAdmin {
		code := config.Cfg.Auth.AdminCode
		// 未配置邀请码时不开放管理员注册
		if code == "" || adminCode != code {
			return nil, "", ErrBadAdminCode
		}
	}

	// 先查重，给出比唯一索引冲突更友好的错误
	if _, err := GetByEmail(email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("无法哈希密码: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, "", fmt.Errorf("无法生成用户UUID: %w", err)
	}

	u := User{
		UUID:         id.String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("无法创建用户: %w", err)
	}

	t, err := issueToken(&u)
	if err != nil {
		return nil, "", err
	}
	return &u, t, nil
}

// Login 校验登录凭证并签发令牌。
// 角色不匹配与密码错误返回同一个错误，避免泄露账号信息。
func Login(email, password, role string) (*User, string, error) {
	u, err := GetByEmail(email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if role != "" && u.Role != role {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	t, err := issueToken(u)
	if err != nil {
		return nil, "", err
	}
	return u, t, nil
}

func issueToken(u *User) (string, error) {
	ttl := time.Duration(config.Cfg.Auth.TokenTTLHours) * time.Hour
	return token.GenerateToken(u.UUID, u.Role, ttl)
}

// Profile 是账号的API表示，包含客户端缓存所需的收藏和评分数据。
// 字段名与原有客户端的约定保持一致。
type Profile struct {
	ID        string         `json:"_id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Role      string         `json:"role"`
	Bookmarks []string       `json:"bookmarks"`
	Ratings   map[string]int `json:"ratings"`
	CreatedAt time.Time      `json:"createdAt"`
}

// BuildProfile 组装一个用户的完整API表示
func BuildProfile(u *User) (*Profile, error) {
	bookmarks, err := website.BookmarkUUIDs(u.UUID)
	if err != nil {
		return nil, err
	}
	ratings, err := website.RatingsByUser(u.UUID)
	if err != nil {
		return nil, err
	}
	return &Profile{
		ID:        u.UUID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Bookmarks: bookmarks,
		Ratings:   ratings,
		CreatedAt: u.CreatedAt,
	}, nil
}

// ToggleBookmark 翻转收藏状态并返回更新后的用户表示
func ToggleBookmark(userUUID, websiteUUID string) (*Profile, error) {
	u, err := GetByUUID(userUUID)
	if err != nil {
		return nil, err
	}
	if err := website.ToggleBookmark(userUUID, websiteUUID); err != nil {
		return nil, err
	}
	return BuildProfile(u)
}

// DeleteUser 由管理员删除一个账号，连带清理其收藏和评分，
// 并修正受影响网站的平均分。管理员不能删除自己。
func DeleteUser(actorUUID, targetUUID string) error {
	if actorUUID == targetUUID {
		return ErrSelfDelete
	}
	if _, err := GetByUUID(targetUUID); err != nil {
		return err
	}

	var affected []string
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		affected, txErr = website.CleanupUserData(tx, targetUUID)
		if txErr != nil {
			return txErr
		}
		if txErr = tx.Where("uuid = ?", targetUUID).Delete(&User{}).Error; txErr != nil {
			return fmt.Errorf("无法删除用户: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return err
	}

	// 事务提交后刷新受影响网站的缓存
	for _, id := range affected {
		w, err := website.GetByUUID(id)
		if err != nil {
			continue
		}
		if err := website.RefreshCacheEntry(w); err != nil {
			fmt.Printf("警告: %v\n", err)
		}
	}
	return nil
}
