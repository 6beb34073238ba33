package startup

import (
	"fmt"

	"github.com/SlpAus/netnuggets-backend/internal/platform/config"
	"github.com/SlpAus/netnuggets-backend/internal/platform/database"
	"github.com/SlpAus/netnuggets-backend/internal/user"
	"github.com/SlpAus/netnuggets-backend/internal/website"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// seedWebsite 描述一条内置的示例目录条目
type seedWebsite struct {
	name        string
	url         string
	description string
	category    string
	thumbnail   string
	featured    bool
	// ratings 是初始评分，每个分值来自一个独立的虚拟评分者
	ratings []int
}

var sampleWebsites = []seedWebsite{
	{"Notion", "https://notion.so", "All-in-one workspace for notes, tasks, wikis, and databases", "Productivity", "📝", true, []int{5, 5, 4, 5, 5}},
	{"Dribbble", "https://dribbble.com", "Platform for designers to showcase and discover creative work", "Design", "🎨", true, []int{4, 5, 5, 4}},
	{"GitHub", "https://github.com", "Code hosting platform for version control and collaboration", "Developer Tools", "💻", true, []int{5, 5, 5, 4, 5}},
	{"Poolside.fm", "https://poolsuite.net", "Summer-themed internet radio with retro vibes", "Entertainment", "🏖️", false, []int{4, 3, 5}},
	{"freeCodeCamp", "https://freecodecamp.org", "Learn to code for free with interactive lessons and projects", "Learning", "🎓", false, []int{5, 4, 5, 5}},
	{"Awwwards", "https://awwwards.com", "Awards for design, creativity and innovation on the internet", "Inspiration", "🏆", false, []int{4, 4, 5}},
}

// seedIfEmpty 在用户表为空时写入初始管理员、演示账号和示例目录。
// 已有任何用户时什么都不做，保证种子数据只出现一次。
func seedIfEmpty() error {
	cfg := config.Cfg.Seed
	if !cfg.Enabled {
		return nil
	}

	var count int64
	if err := database.DB.Model(&user.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("无法统计用户数: %w", err)
	}
	if count > 0 {
		return nil
	}

	admin, err := createSeedUser(cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword, user.RoleAdmin)
	if err != nil {
		return err
	}
	fmt.Printf("已创建初始管理员账号: %s\n", admin.Email)

	demo, err := createSeedUser(cfg.DemoName, cfg.DemoEmail, cfg.DemoPassword, user.RoleUser)
	if err != nil {
		return err
	}
	fmt.Printf("已创建演示账号: %s\n", demo.Email)

	for _, s := range sampleWebsites {
		w, err := website.CreateWebsite(website.CreateInput{
			Name:        s.name,
			URL:         s.url,
			Description: s.description,
			Category:    s.category,
			Thumbnail:   s.thumbnail,
			Featured:    s.featured,
			SubmittedBy: admin.UUID,
		})
		if err != nil {
			return fmt.Errorf("无法创建示例网站 %s: %w", s.name, err)
		}
		if err := seedRatings(w, s.ratings); err != nil {
			return err
		}
	}
	fmt.Printf("已创建 %d 个示例网站。\n", len(sampleWebsites))
	return nil
}

// seedRatings 为一个示例网站写入初始评分。
// 每个分值挂在一个独立的虚拟评分者UUID下，
// 与 (user, website) 唯一索引的替换语义保持一致。
func seedRatings(w *website.Website, values []int) error {
	if len(values) == 0 {
		return nil
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for _, v := range values {
			raterID, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("无法生成评分者UUID: %w", err)
			}
			r := website.Rating{
				WebsiteUUID: w.UUID,
				UserUUID:    raterID.String(),
				Value:       v,
			}
			if err := tx.Create(&r).Error; err != nil {
				return fmt.Errorf("无法写入初始评分: %w", err)
			}
		}
		avg, count, err := website.RecomputeStats(tx, w.UUID)
		if err != nil {
			return err
		}
		w.AverageRating = avg
		w.RatingsCount = int(count)
		return nil
	})
	if err != nil {
		return err
	}

	if err := website.RefreshCacheEntry(w); err != nil {
		fmt.Printf("警告: %v\n", err)
	}
	return nil
}

func createSeedUser(name, email, password, role string) (*user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("无法哈希种子用户密码: %w", err)
	}
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("无法生成种子用户UUID: %w", err)
	}

	u := user.User{
		UUID:         id.String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := database.DB.Create(&u).Error; err != nil {
		return nil, fmt.Errorf("无法创建种子用户: %w", err)
	}
	return &u, nil
}
