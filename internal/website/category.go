package website

// Categories 是目录支持的全部类别。
// 这个集合与前端的类别筛选器保持一致，新增类别需要两端同步。
var Categories = []string{
	"Productivity",
	"Design",
	"Developer Tools",
	"Entertainment",
	"Learning",
	"Inspiration",
	"AI Tools",
}

// CategoryAll 是列表接口中表示“不过滤类别”的特殊取值
const CategoryAll = "All"

// IsValidCategory 判断给定字符串是否是合法的网站类别
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
