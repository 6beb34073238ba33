package website

import (
	"encoding/json"
	"testing"
	"time"
)

func TestWebsiteInfoRoundTrip(t *testing.T) {
	original := Website{
		UUID:          "w-github",
		Name:          "GitHub",
		URL:           "https://github.com",
		Description:   "Code hosting platform",
		Category:      "Developer Tools",
		Thumbnail:     "💻",
		Featured:      true,
		Approved:      true,
		SubmittedBy:   "admin-uuid",
		AverageRating: 4.8,
		RatingsCount:  5,
		CreatedAt:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	// 信息条目经过JSON序列化进出Hash后，列表所需的字段必须完整保留
	data, err := json.Marshal(toInfo(original))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var info websiteInfo
	if err := json.Unmarshal(data, &info); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	restored := fromInfo(original.UUID, info)
	if restored != original {
		t.Errorf("round trip changed the entry:\n got %+v\nwant %+v", restored, original)
	}
}

func TestFromInfoMarksApproved(t *testing.T) {
	// 缓存只收录已审核的网站，重建出的条目必须带上这个标记
	restored := fromInfo("w-1", websiteInfo{Name: "Notion"})
	if !restored.Approved {
		t.Error("cached entries must come back approved")
	}
}
