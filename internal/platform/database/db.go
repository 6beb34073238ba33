package database

import (
	"fmt"
	"log"
	"os"

	"github.com/SlpAus/netnuggets-backend/internal/platform/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB 初始化数据库连接
func InitDB(cfg config.SqliteConfig) {
	var err error

	// GORM日志配置
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: 0,
			LogLevel:      logger.Silent,
			Colorful:      true,
		},
	)

	path := cfg.Path
	if path == "" {
		path = "netnuggets.db"
	}

	// 连接到SQLite数据库。
	// TranslateError 把驱动的唯一约束冲突翻译成 gorm.ErrDuplicatedKey，
	// 业务层依赖它来识别邮箱查重的竞态。
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		fmt.Println("连接数据库失败", err)
		panic(err)
	}

	fmt.Println("数据库连接成功！")
}
