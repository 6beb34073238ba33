package rating

import (
	"errors"
	"net/http"

	"github.com/SlpAus/netnuggets-backend/internal/user"
	"github.com/SlpAus/netnuggets-backend/internal/website"
	"github.com/gin-gonic/gin"
)

// rateRequest 用指针区分“没有提供评分”和“评分为0”
type rateRequest struct {
	Rating *int `json:"rating"`
}

// RateWebsiteHandler 处理 POST /api/websites/:id/rate，返回更新后的网站
func RateWebsiteHandler(c *gin.Context) {
	var body rateRequest
	if err := c.ShouldBindJSON(&body); err != nil || body.Rating == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Rating must be between 1 and 5"})
		return
	}

	w, err := Rate(c.Param("id"), c.GetString(user.UserIDKey), *body.Rating)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Rating must be between 1 and 5"})
		case errors.Is(err, website.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "Website not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		}
		return
	}

	ratings, err := website.RatingValues([]string{w.UUID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, website.FormatWebsite(*w, ratings[w.UUID]))
}
