package website

import (
	"fmt"

	"github.com/SlpAus/netnuggets-backend/internal/platform/database"
)

// migrateDB 负责自动迁移网站相关的表结构
func migrateDB() error {
	if err := database.DB.AutoMigrate(&Website{}, &Rating{}, &Bookmark{}); err != nil {
		return fmt.Errorf("无法迁移website相关表: %w", err)
	}
	fmt.Println("Website数据库表迁移成功。")
	return nil
}

// PrimeCachedDB 是website模块的初始化总入口
func PrimeCachedDB() error {
	if err := migrateDB(); err != nil {
		return err
	}
	if err := WarmupCache(); err != nil {
		return err
	}
	return nil
}
