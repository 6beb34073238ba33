package website

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// viewerIDKey 与user包的认证中间件写入gin上下文的键保持一致。
// 公开列表接口不要求登录，键不存在时视为匿名访问。
const viewerIDKey = "userID"

// Response 是网站条目的API表示。
// 字段名与原有客户端的约定保持一致（_id、averageRating等）。
type Response struct {
	ID            string    `json:"_id"`
	Name          string    `json:"name"`
	URL           string    `json:"url"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Thumbnail     string    `json:"thumbnail"`
	Featured      bool      `json:"featured"`
	Approved      bool      `json:"approved"`
	SubmittedBy   string    `json:"submittedBy,omitempty"`
	Ratings       []int     `json:"ratings"`
	AverageRating float64   `json:"averageRating"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FormatWebsite 将持久化模型格式化为API响应
func FormatWebsite(w Website, ratings []int) Response {
	if ratings == nil {
		ratings = []int{}
	}
	return Response{
		ID:            w.UUID,
		Name:          w.Name,
		URL:           w.URL,
		Description:   w.Description,
		Category:      w.Category,
		Thumbnail:     w.Thumbnail,
		Featured:      w.Featured,
		Approved:      w.Approved,
		SubmittedBy:   w.SubmittedBy,
		Ratings:       ratings,
		AverageRating: w.AverageRating,
		CreatedAt:     w.CreatedAt,
	}
}

// FormatWebsiteList 批量格式化，评分序列一次性查出避免逐条查询
func FormatWebsiteList(sites []Website) ([]Response, error) {
	uuids := make([]string, len(sites))
	for i, w := range sites {
		uuids[i] = w.UUID
	}
	ratings, err := RatingValues(uuids)
	if err != nil {
		return nil, err
	}

	responses := make([]Response, 0, len(sites))
	for _, w := range sites {
		responses = append(responses, FormatWebsite(w, ratings[w.UUID]))
	}
	return responses, nil
}

// --- 控制器函数 ---

// GetWebsites 返回已审核的网站列表（公开接口）。
// 可选查询参数: search(名称/描述子串), category(类别或All), sort(featured/rating/bookmarked)
func GetWebsites(c *gin.Context) {
	search := c.Query("search")
	category := c.Query("category")
	sortMode := c.Query("sort")
	viewer := c.GetString(viewerIDKey)

	sites, err := ListApprovedWebsites(search, category, sortMode, viewer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	responses, err := FormatWebsiteList(sites)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, responses)
}

// GetWebsiteByID 返回单个网站（公开接口）
func GetWebsiteByID(c *gin.Context) {
	w, err := GetByUUID(c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Website not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ratings, err := RatingValues([]string{w.UUID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, FormatWebsite(*w, ratings[w.UUID]))
}

type createWebsiteRequest struct {
	Name        string `json:"name" binding:"required"`
	URL         string `json:"url" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Thumbnail   string `json:"thumbnail"`
	Featured    bool   `json:"featured"`
	Approved    *bool  `json:"approved"`
}

// CreateWebsiteHandler 由管理员直接创建网站条目
func CreateWebsiteHandler(c *gin.Context) {
	var body createWebsiteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide all required fields"})
		return
	}

	w, err := CreateWebsite(CreateInput{
		Name:        body.Name,
		URL:         body.URL,
		Description: body.Description,
		Category:    body.Category,
		Thumbnail:   body.Thumbnail,
		Featured:    body.Featured,
		Approved:    body.Approved,
		SubmittedBy: c.GetString(viewerIDKey),
	})
	if err != nil {
		if errors.Is(err, ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, FormatWebsite(*w, nil))
}

type updateWebsiteRequest struct {
	Name        *string `json:"name"`
	URL         *string `json:"url"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Thumbnail   *string `json:"thumbnail"`
	Featured    *bool   `json:"featured"`
	Approved    *bool   `json:"approved"`
}

// UpdateWebsiteHandler 由管理员部分更新网站条目
func UpdateWebsiteHandler(c *gin.Context) {
	var body updateWebsiteRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	w, err := UpdateWebsite(c.Param("id"), UpdateInput{
		Name:        body.Name,
		URL:         body.URL,
		Description: body.Description,
		Category:    body.Category,
		Thumbnail:   body.Thumbnail,
		Featured:    body.Featured,
		Approved:    body.Approved,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Website not found"})
		case errors.Is(err, ErrInvalidCategory):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}

	ratings, err := RatingValues([]string{w.UUID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, FormatWebsite(*w, ratings[w.UUID]))
}

// DeleteWebsiteHandler 由管理员删除网站条目
func DeleteWebsiteHandler(c *gin.Context) {
	if err := DeleteWebsite(c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Website not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Website deleted successfully"})
}
