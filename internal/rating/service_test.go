package rating

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/SlpAus/netnuggets-backend/internal/platform/config"
	"github.com/SlpAus/netnuggets-backend/internal/platform/database"
	"github.com/SlpAus/netnuggets-backend/internal/website"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	database.InitDB(config.SqliteConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	if err := website.PrimeCachedDB(); err != nil {
		t.Fatalf("failed to prime website tables: %v", err)
	}
}

func createTestSite(t *testing.T) *website.Website {
	t.Helper()
	w, err := website.CreateWebsite(website.CreateInput{
		Name:        "GitHub",
		URL:         "https://github.com",
		Description: "Code hosting platform",
		Category:    "Developer Tools",
		SubmittedBy: "admin-uuid",
	})
	if err != nil {
		t.Fatalf("failed to create website: %v", err)
	}
	return w
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRateComputesAverage(t *testing.T) {
	setupTestDB(t)
	w := createTestSite(t)

	users := []string{"u1", "u2", "u3", "u4", "u5"}
	values := []int{5, 5, 4, 5, 5}

	var updated *website.Website
	var err error
	for i, u := range users {
		updated, err = Rate(w.UUID, u, values[i])
		if err != nil {
			t.Fatalf("Rate(%s, %d) failed: %v", u, values[i], err)
		}
	}

	if updated.RatingsCount != 5 {
		t.Errorf("RatingsCount = %d, want 5", updated.RatingsCount)
	}
	if !almostEqual(updated.AverageRating, 4.8) {
		t.Errorf("AverageRating = %f, want 4.8", updated.AverageRating)
	}

	// 第六个评分拉低平均分
	updated, err = Rate(w.UUID, "u6", 3)
	if err != nil {
		t.Fatalf("Rate failed: %v", err)
	}
	if updated.RatingsCount != 6 {
		t.Errorf("RatingsCount = %d, want 6", updated.RatingsCount)
	}
	if !almostEqual(updated.AverageRating, 4.5) {
		t.Errorf("AverageRating = %f, want 4.5", updated.AverageRating)
	}

	// 统计字段必须已经落库
	persisted, err := website.GetByUUID(w.UUID)
	if err != nil {
		t.Fatalf("GetByUUID failed: %v", err)
	}
	if !almostEqual(persisted.AverageRating, 4.5) || persisted.RatingsCount != 6 {
		t.Errorf("persisted stats = (%f, %d), want (4.5, 6)", persisted.AverageRating, persisted.RatingsCount)
	}
}

func TestRateReplacesPreviousRating(t *testing.T) {
	setupTestDB(t)
	w := createTestSite(t)

	if _, err := Rate(w.UUID, "u1", 5); err != nil {
		t.Fatalf("first Rate failed: %v", err)
	}
	updated, err := Rate(w.UUID, "u1", 1)
	if err != nil {
		t.Fatalf("second Rate failed: %v", err)
	}

	// 重复评分是替换：评分数不增长，平均分取新值
	if updated.RatingsCount != 1 {
		t.Errorf("RatingsCount = %d, want 1", updated.RatingsCount)
	}
	if !almostEqual(updated.AverageRating, 1.0) {
		t.Errorf("AverageRating = %f, want 1.0", updated.AverageRating)
	}

	ratings, err := website.RatingsByUser("u1")
	if err != nil {
		t.Fatalf("RatingsByUser failed: %v", err)
	}
	if ratings[w.UUID] != 1 {
		t.Errorf("user rating = %d, want 1", ratings[w.UUID])
	}
}

func TestRateRejectsOutOfRange(t *testing.T) {
	setupTestDB(t)
	w := createTestSite(t)

	for _, v := range []int{0, 6, -1} {
		if _, err := Rate(w.UUID, "u1", v); !errors.Is(err, ErrInvalidRating) {
			t.Errorf("Rate(%d): expected ErrInvalidRating, got %v", v, err)
		}
	}

	// 非法评分不留下任何痕迹
	persisted, err := website.GetByUUID(w.UUID)
	if err != nil {
		t.Fatalf("GetByUUID failed: %v", err)
	}
	if persisted.RatingsCount != 0 {
		t.Errorf("RatingsCount = %d, want 0", persisted.RatingsCount)
	}
}

func TestRateUnknownWebsite(t *testing.T) {
	setupTestDB(t)

	if _, err := Rate("missing-uuid", "u1", 4); !errors.Is(err, website.ErrNotFound) {
		t.Errorf("expected website.ErrNotFound, got %v", err)
	}
}
