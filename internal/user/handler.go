package user

import (
	"errors"
	"net/http"

	"github.com/SlpAus/netnuggets-backend/internal/website"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Role      string `json:"role"`
	AdminCode string `json:"adminCode"`
}

// RegisterHandler 处理注册请求，成功时直接签发登录令牌
func RegisterHandler(c *gin.Context) {
	var body registerRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide all required fields"})
		return
	}

	u, t, err := Register(body.Name, body.Email, body.Password, body.Role, body.AdminCode)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already registered"})
		case errors.Is(err, ErrBadAdminCode):
			c.JSON(http.StatusForbidden, gin.H{"message": "Invalid admin code"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}

	profile, err := BuildProfile(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "token": t, "user": profile})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// LoginHandler 处理登录请求
func LoginHandler(c *gin.Context) {
	var body loginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide email and password"})
		return
	}

	u, t, err := Login(body.Email, body.Password, body.Role)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	profile, err := BuildProfile(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "token": t, "user": profile})
}

type bookmarkRequest struct {
	WebsiteID string `json:"websiteId" binding:"required"`
}

// ToggleBookmarkHandler 翻转当前用户对一个网站的收藏状态，返回更新后的用户
func ToggleBookmarkHandler(c *gin.Context) {
	var body bookmarkRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide websiteId"})
		return
	}

	profile, err := ToggleBookmark(c.GetString(UserIDKey), body.WebsiteID)
	if err != nil {
		if errors.Is(err, website.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Website not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetBookmarksHandler 返回当前用户收藏的网站列表（已解析为完整条目）
func GetBookmarksHandler(c *gin.Context) {
	uuids, err := website.BookmarkUUIDs(c.GetString(UserIDKey))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	// 已被删除的网站在这里自然被跳过
	sites, err := website.ListByUUIDs(uuids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	responses, err := website.FormatWebsiteList(sites)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, responses)
}

// --- 管理员接口 ---

// ListUsersHandler 返回全部用户，按注册时间从新到旧排列
func ListUsersHandler(c *gin.Context) {
	users, err := ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	profiles := make([]*Profile, 0, len(users))
	for i := range users {
		p, err := BuildProfile(&users[i])
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}
		profiles = append(profiles, p)
	}
	c.JSON(http.StatusOK, profiles)
}

// DeleteUserHandler 删除一个用户账号，管理员不能删除自己
func DeleteUserHandler(c *gin.Context) {
	err := DeleteUser(c.GetString(UserIDKey), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfDelete):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Cannot delete your own account"})
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
