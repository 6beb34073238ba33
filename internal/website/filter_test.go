package website

import "testing"

func sampleSites() []Website {
	return []Website{
		{UUID: "w-notion", Name: "Notion", Description: "All-in-one workspace", Category: "Productivity", Featured: true, AverageRating: 4.5},
		{UUID: "w-github", Name: "GitHub", Description: "Code hosting platform", Category: "Developer Tools", Featured: false, AverageRating: 4.8},
		{UUID: "w-dribbble", Name: "Dribbble", Description: "Design inspiration for digital creatives", Category: "Design", Featured: true, AverageRating: 4.2},
		{UUID: "w-fcc", Name: "freeCodeCamp", Description: "Learn to code for free", Category: "Learning", Featured: false, AverageRating: 4.8},
	}
}

func TestMatchesQuery(t *testing.T) {
	sites := sampleSites()
	github := sites[1]

	tests := []struct {
		name     string
		site     Website
		search   string
		category string
		want     bool
	}{
		{name: "empty query matches everything", site: github, search: "", category: "", want: true},
		{name: "name substring", site: github, search: "git", category: "", want: true},
		{name: "search is case-insensitive", site: github, search: "GITHUB", category: "", want: true},
		{name: "description substring", site: github, search: "hosting", category: "", want: true},
		{name: "no match", site: github, search: "cooking", category: "", want: false},
		{name: "matching category", site: github, search: "", category: "Developer Tools", want: true},
		{name: "wrong category", site: github, search: "", category: "Design", want: false},
		{name: "All category passes", site: github, search: "", category: CategoryAll, want: true},
		{name: "search and category must both match", site: github, search: "git", category: "Design", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesQuery(tt.site, tt.search, tt.category); got != tt.want {
				t.Errorf("MatchesQuery(%q, %q, %q) = %v, want %v", tt.site.Name, tt.search, tt.category, got, tt.want)
			}
		})
	}
}

func TestFilterWebsitesKeepsOrder(t *testing.T) {
	filtered := FilterWebsites(sampleSites(), "", "")
	if len(filtered) != 4 {
		t.Fatalf("expected 4 sites, got %d", len(filtered))
	}

	// "code" 命中 GitHub(描述) 和 freeCodeCamp(名称)，相对顺序不变
	filtered = FilterWebsites(sampleSites(), "code", "")
	if len(filtered) != 2 {
		t.Fatalf("expected 2 sites, got %d", len(filtered))
	}
	if filtered[0].UUID != "w-github" || filtered[1].UUID != "w-fcc" {
		t.Errorf("unexpected order: %s, %s", filtered[0].UUID, filtered[1].UUID)
	}
}

func TestSortWebsitesByRating(t *testing.T) {
	sites := sampleSites()
	SortWebsites(sites, SortRating, nil)

	for i := 1; i < len(sites); i++ {
		if sites[i-1].AverageRating < sites[i].AverageRating {
			t.Fatalf("not sorted by rating at %d: %f < %f", i, sites[i-1].AverageRating, sites[i].AverageRating)
		}
	}
	// GitHub 和 freeCodeCamp 同为4.8，稳定排序保持原有相对顺序
	if sites[0].UUID != "w-github" || sites[1].UUID != "w-fcc" {
		t.Errorf("tie not stable: %s, %s", sites[0].UUID, sites[1].UUID)
	}
}

func TestSortWebsitesFeaturedFirst(t *testing.T) {
	sites := sampleSites()
	SortWebsites(sites, SortFeatured, nil)

	if !sites[0].Featured || !sites[1].Featured {
		t.Fatalf("featured sites should come first: %+v", sites)
	}
	if sites[0].UUID != "w-notion" || sites[1].UUID != "w-dribbble" {
		t.Errorf("featured tie not stable: %s, %s", sites[0].UUID, sites[1].UUID)
	}
}

func TestSortWebsitesBookmarkedFirst(t *testing.T) {
	sites := sampleSites()
	bookmarked := map[string]bool{"w-fcc": true, "w-dribbble": true}
	SortWebsites(sites, SortBookmarked, bookmarked)

	if !bookmarked[sites[0].UUID] || !bookmarked[sites[1].UUID] {
		t.Fatalf("bookmarked sites should come first: %s, %s", sites[0].UUID, sites[1].UUID)
	}
	// 收藏的两个保持原有相对顺序
	if sites[0].UUID != "w-dribbble" || sites[1].UUID != "w-fcc" {
		t.Errorf("bookmarked tie not stable: %s, %s", sites[0].UUID, sites[1].UUID)
	}
}

func TestSortWebsitesDefaultUnchanged(t *testing.T) {
	sites := sampleSites()
	SortWebsites(sites, SortNewest, nil)
	want := []string{"w-notion", "w-github", "w-dribbble", "w-fcc"}
	for i, id := range want {
		if sites[i].UUID != id {
			t.Errorf("position %d: got %s, want %s", i, sites[i].UUID, id)
		}
	}
}
