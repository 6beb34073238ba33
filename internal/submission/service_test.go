package submission

import (
	"errors"
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
	if err := PrimeDB(); err != nil {
		t.Fatalf("failed to prime submission table: %v", err)
	}
}

func createPending(t *testing.T) *Submission {
	t.Helper()
	s, err := CreateSubmission("Figma", "https://figma.com", "Collaborative design tool", "Design", "user-uuid")
	if err != nil {
		t.Fatalf("CreateSubmission failed: %v", err)
	}
	if s.Status != StatusPending {
		t.Fatalf("new submission status = %q, want %q", s.Status, StatusPending)
	}
	return s
}

func TestCreateSubmissionInvalidCategory(t *testing.T) {
	setupTestDB(t)

	_, err := CreateSubmission("Figma", "https://figma.com", "Design tool", "Cooking", "user-uuid")
	if !errors.Is(err, website.ErrInvalidCategory) {
		t.Errorf("expected ErrInvalidCategory, got %v", err)
	}
}

func TestApproveCreatesWebsite(t *testing.T) {
	setupTestDB(t)
	s := createPending(t)

	w, err := Approve(s.UUID)
	if err != nil {
		t.Fatalf("Approve failed: %v", err)
	}

	// 字段从提交原样拷贝，新网站直接上架
	if w.Name != s.Name || w.URL != s.URL || w.Description != s.Description || w.Category != s.Category {
		t.Errorf("website fields do not match submission: %+v", w)
	}
	if w.SubmittedBy != "user-uuid" {
		t.Errorf("SubmittedBy = %q, want user-uuid", w.SubmittedBy)
	}
	if !w.Approved {
		t.Error("approved submission should produce an approved website")
	}
	if w.Featured {
		t.Error("new website should not be featured")
	}

	persisted, err := website.GetByUUID(w.UUID)
	if err != nil {
		t.Fatalf("approved website not persisted: %v", err)
	}
	if persisted.RatingsCount != 0 || persisted.AverageRating != 0 {
		t.Errorf("new website should start unrated, got (%f, %d)", persisted.AverageRating, persisted.RatingsCount)
	}

	var reloaded Submission
	if err := database.DB.Where("uuid = ?", s.UUID).First(&reloaded).Error; err != nil {
		t.Fatalf("failed to reload submission: %v", err)
	}
	if reloaded.Status != StatusApproved {
		t.Errorf("submission status = %q, want %q", reloaded.Status, StatusApproved)
	}
}

func TestApproveTwice(t *testing.T) {
	setupTestDB(t)
	s := createPending(t)

	if _, err := Approve(s.UUID); err != nil {
		t.Fatalf("first Approve failed: %v", err)
	}
	if _, err := Approve(s.UUID); !errors.Is(err, ErrAlreadyReviewed) {
		t.Errorf("expected ErrAlreadyReviewed, got %v", err)
	}

	// 重复审核不会产生第二个网站
	sites, err := website.ListApproved()
	if err != nil {
		t.Fatalf("ListApproved failed: %v", err)
	}
	if len(sites) != 1 {
		t.Errorf("expected exactly 1 website, got %d", len(sites))
	}
}

func TestRejectLeavesNoWebsite(t *testing.T) {
	setupTestDB(t)
	s := createPending(t)

	if err := Reject(s.UUID); err != nil {
		t.Fatalf("Reject failed: %v", err)
	}

	var reloaded Submission
	if err := database.DB.Where("uuid = ?", s.UUID).First(&reloaded).Error; err != nil {
		t.Fatalf("failed to reload submission: %v", err)
	}
	if reloaded.Status != StatusRejected {
		t.Errorf("submission status = %q, want %q", reloaded.Status, StatusRejected)
	}

	sites, err := website.ListApproved()
	if err != nil {
		t.Fatalf("ListApproved failed: %v", err)
	}
	if len(sites) != 0 {
		t.Errorf("rejected submission should not create a website, got %d", len(sites))
	}

	// 驳回后不能再审核通过
	if _, err := Approve(s.UUID); !errors.Is(err, ErrAlreadyReviewed) {
		t.Errorf("expected ErrAlreadyReviewed after reject, got %v", err)
	}
}

func TestReviewUnknownSubmission(t *testing.T) {
	setupTestDB(t)

	if _, err := Approve("missing-uuid"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Approve: expected ErrNotFound, got %v", err)
	}
	if err := Reject("missing-uuid"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Reject: expected ErrNotFound, got %v", err)
	}
}
