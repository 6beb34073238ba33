package website

import (
	"sort"
	"strings"
)

// 列表接口支持的排序模式
const (
	SortNewest     = ""           // 默认：按创建时间从新到旧
	SortFeatured   = "featured"   // 精选优先
	SortRating     = "rating"     // 平均分从高到低
	SortBookmarked = "bookmarked" // 调用者收藏的优先
)

// MatchesQuery 判断一个网站是否命中搜索词和类别过滤。
// 搜索词对名称和描述做大小写不敏感的子串匹配；
// 类别为空或为 "All" 时不过滤。
func MatchesQuery(w Website, search, category string) bool {
	if category != "" && category != CategoryAll && w.Category != category {
		return false
	}
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(w.Name), needle) ||
		strings.Contains(strings.ToLower(w.Description), needle)
}

// FilterWebsites 返回命中过滤条件的子序列，保持原有相对顺序
func FilterWebsites(sites []Website, search, category string) []Website {
	filtered := make([]Website, 0, len(sites))
	for _, w := range sites {
		if MatchesQuery(w, search, category) {
			filtered = append(filtered, w)
		}
	}
	return filtered
}

// SortWebsites 按指定模式对列表做稳定排序，平局保持原有相对顺序。
// bookmarked 是调用者收藏的网站UUID集合，只在收藏优先模式下使用。
func SortWebsites(sites []Website, mode string, bookmarked map[string]bool) {
	switch mode {
	case SortFeatured:
		sort.SliceStable(sites, func(i, j int) bool {
			return sites[i].Featured && !sites[j].Featured
		})
	case SortRating:
		sort.SliceStable(sites, func(i, j int) bool {
			return sites[i].AverageRating > sites[j].AverageRating
		})
	case SortBookmarked:
		sort.SliceStable(sites, func(i, j int) bool {
			return bookmarked[sites[i].UUID] && !bookmarked[sites[j].UUID]
		})
	}
}
