package submission

import (
	"errors"
	"net/http"
	"time"

	"github.com/SlpAus/netnuggets-backend/internal/user"
	"github.com/SlpAus/netnuggets-backend/internal/website"
	"github.com/gin-gonic/gin"
)

// Response 是提交记录的API表示，submittedBy 保持为用户UUID
type Response struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	URL         string    `json:"url"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	SubmittedBy string    `json:"submittedBy"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// submitterInfo 是管理员列表中内嵌的提交者信息
type submitterInfo struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// adminResponse 在 Response 的基础上把提交者解析为完整对象，
// 供管理面板直接展示姓名和邮箱。
type adminResponse struct {
	ID          string         `json:"_id"`
	Name        string         `json:"name"`
	URL         string         `json:"url"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	SubmittedBy *submitterInfo `json:"submittedBy"`
	Status      string         `json:"status"`
	CreatedAt   time.Time      `json:"createdAt"`
}

func formatSubmission(s Submission) Response {
	return Response{
		ID:          s.UUID,
		Name:        s.Name,
		URL:         s.URL,
		Description: s.Description,
		Category:    s.Category,
		SubmittedBy: s.SubmittedBy,
		Status:      s.Status,
		CreatedAt:   s.CreatedAt,
	}
}

type submitRequest struct {
	Name        string `json:"name" binding:"required"`
	URL         string `json:"url" binding:"required"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
}

// SubmitHandler 处理普通用户的网站提交
func SubmitHandler(c *gin.Context) {
	var body submitRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide all required fields"})
		return
	}

	s, err := CreateSubmission(body.Name, body.URL, body.Description, body.Category, c.GetString(user.UserIDKey))
	if err != nil {
		if errors.Is(err, website.ErrInvalidCategory) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid category"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusCreated, formatSubmission(*s))
}

// --- 管理员接口 ---

// ListSubmissionsHandler 返回全部提交，提交者解析为姓名和邮箱
func ListSubmissionsHandler(c *gin.Context) {
	submissions, err := ListAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	// 一次性查出所有涉及的提交者，避免逐条查询
	uuids := make([]string, 0, len(submissions))
	for _, s := range submissions {
		uuids = append(uuids, s.SubmittedBy)
	}
	submitters, err := user.GetByUUIDs(uuids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	responses := make([]adminResponse, 0, len(submissions))
	for _, s := range submissions {
		resp := adminResponse{
			ID:          s.UUID,
			Name:        s.Name,
			URL:         s.URL,
			Description: s.Description,
			Category:    s.Category,
			Status:      s.Status,
			CreatedAt:   s.CreatedAt,
		}
		// 提交者可能已被删除，此时保持为null
		if u, ok := submitters[s.SubmittedBy]; ok {
			resp.SubmittedBy = &submitterInfo{ID: u.UUID, Name: u.Name, Email: u.Email}
		}
		responses = append(responses, resp)
	}
	c.JSON(http.StatusOK, responses)
}

// ApproveHandler 审核通过一条提交并返回新创建的网站
func ApproveHandler(c *gin.Context) {
	w, err := Approve(c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Submission not found"})
		case errors.Is(err, ErrAlreadyReviewed):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Submission has already been reviewed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}
	c.JSON(http.StatusOK, website.FormatWebsite(*w, nil))
}

// RejectHandler 驳回一条提交
func RejectHandler(c *gin.Context) {
	if err := Reject(c.Param("id")); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Submission not found"})
		case errors.Is(err, ErrAlreadyReviewed):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Submission has already been reviewed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Submission rejected"})
}
