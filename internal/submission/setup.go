package submission

import (
	"fmt"

	"github.com/SlpAus/netnuggets-backend/internal/platform/database"
)

// migrateDB 负责自动迁移提交表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&Submission{}); err != nil {
		return fmt.Errorf("无法迁移submission表: %w", err)
	}
	fmt.Println("Submission数据库表迁移成功。")
	return nil
}

// PrimeDB 是submission模块的初始化总入口
func PrimeDB() error {
	return migrateDB()
}
