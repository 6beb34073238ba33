package startup

import (
	"fmt"

	"github.com/SlpAus/netnuggets-backend/internal/submission"
	"github.com/SlpAus/netnuggets-backend/internal/user"
	"github.com/SlpAus/netnuggets-backend/internal/website"
)

// InitializeApplication 是应用首次启动时执行的总入口
func InitializeApplication() error {
	fmt.Println("开始应用首次初始化...")

	if err := user.PrimeDB(); err != nil {
		return err
	}
	if err := website.PrimeCachedDB(); err != nil {
		return err
	}
	if err := submission.PrimeDB(); err != nil {
		return err
	}
	// 种子数据在所有表迁移完成之后写入
	if err := seedIfEmpty(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}

// RebuildCache 是一个专门用于在运行时热重建Redis缓存的函数。
// 健康检查器在检测到Redis重启后调用它。
func RebuildCache() error {
	fmt.Println("开始缓存热重建...")
	if err := website.WarmupCache(); err != nil {
		return err
	}
	fmt.Println("缓存热重建完成。")
	return nil
}
