package startup

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/SlpAus/netnuggets-backend/internal/platform/config"
	"github.com/SlpAus/netnuggets-backend/internal/platform/database"
	"github.com/SlpAus/netnuggets-backend/internal/user"
	"github.com/SlpAus/netnuggets-backend/internal/website"
)

func setupTestDB(t *testing.T, seedEnabled bool) {
	t.Helper()
	config.Cfg = &config.Config{
		Seed: config.SeedConfig{
			Enabled:       seedEnabled,
			AdminName:     "Admin",
			AdminEmail:    "admin@netnuggets.dev",
			AdminPassword: "admin123456",
			DemoName:      "Demo User",
			DemoEmail:     "user@example.com",
			DemoPassword:  "demo123456",
		},
	}
	database.InitDB(config.SqliteConfig{Path: filepath.Join(t.TempDir(), "test.db")})
	if err := user.PrimeDB(); err != nil {
		t.Fatalf("failed to prime user table: %v", err)
	}
	if err := website.PrimeCachedDB(); err != nil {
		t.Fatalf("failed to prime website tables: %v", err)
	}
}

func TestSeedIfEmpty(t *testing.T) {
	setupTestDB(t, true)

	if err := seedIfEmpty(); err != nil {
		t.Fatalf("seedIfEmpty failed: %v", err)
	}

	admin, err := user.GetByEmail("admin@netnuggets.dev")
	if err != nil {
		t.Fatalf("admin account missing: %v", err)
	}
	if admin.Role != user.RoleAdmin {
		t.Errorf("admin role = %q, want %q", admin.Role, user.RoleAdmin)
	}

	demo, err := user.GetByEmail("user@example.com")
	if err != nil {
		t.Fatalf("demo account missing: %v", err)
	}
	if demo.Role != user.RoleUser {
		t.Errorf("demo role = %q, want %q", demo.Role, user.RoleUser)
	}

	sites, err := website.ListApproved()
	if err != nil {
		t.Fatalf("ListApproved failed: %v", err)
	}
	if len(sites) != len(sampleWebsites) {
		t.Fatalf("seeded %d websites, want %d", len(sites), len(sampleWebsites))
	}

	// 每个示例网站的统计字段与初始评分一致，Notion是[5,5,4,5,5]→4.8
	byName := make(map[string]website.Website, len(sites))
	for _, w := range sites {
		byName[w.Name] = w
	}
	for _, s := range sampleWebsites {
		w, ok := byName[s.name]
		if !ok {
			t.Errorf("website %q not seeded", s.name)
			continue
		}
		if w.RatingsCount != len(s.ratings) {
			t.Errorf("%s: RatingsCount = %d, want %d", s.name, w.RatingsCount, len(s.ratings))
		}
	}
	notion := byName["Notion"]
	if math.Abs(notion.AverageRating-4.8) > 1e-9 {
		t.Errorf("Notion AverageRating = %f, want 4.8", notion.AverageRating)
	}
}

func TestSeedRunsOnlyOnce(t *testing.T) {
	setupTestDB(t, true)

	if err := seedIfEmpty(); err != nil {
		t.Fatalf("first seedIfEmpty failed: %v", err)
	}
	if err := seedIfEmpty(); err != nil {
		t.Fatalf("second seedIfEmpty failed: %v", err)
	}

	sites, err := website.ListApproved()
	if err != nil {
		t.Fatalf("ListApproved failed: %v", err)
	}
	if len(sites) != len(sampleWebsites) {
		t.Errorf("re-running the seed duplicated websites: %d", len(sites))
	}
}

func TestSeedDisabled(t *testing.T) {
	setupTestDB(t, false)

	if err := seedIfEmpty(); err != nil {
		t.Fatalf("seedIfEmpty failed: %v", err)
	}
	if _, err := user.GetByEmail("admin@netnuggets.dev"); !errors.Is(err, user.ErrNotFound) {
		t.Errorf("seed disabled but admin exists: %v", err)
	}
}
