// Package db はGORMによるデータベース接続の初期化を提供します。
package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "timetrack_backend/internal/feature/auth/domain/entity"
	taskentity "timetrack_backend/internal/feature/tasks/domain/entity"
)

// Config はPostgreSQL接続に必要な設定値を保持します。
type Config struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
}

// ConfigFromEnv は環境変数から接続設定を読み込みます。
func ConfigFromEnv() Config {
	return Config{
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
	}
}

// BuildDSN は設定値からPostgreSQL接続用のDSN文字列を生成します。
func BuildDSN(cfg Config) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port)
}

// OpenDB はPostgreSQLへの接続を確立し、必要に応じてマイグレーションを実行します。
// コンテナ起動直後などDBが未起動の場合に備え、60秒間リトライします。
func OpenDB(cfg Config) *gorm.DB {
	dsn := BuildDSN(cfg)

	var (
		db  *gorm.DB
		err error
	)

	deadline := time.Now().Add(60 * time.Second)
	for {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			log.Fatalf("DB connect failed after 60s: %v", err)
		}
		log.Printf("DB connect failed, retrying...: %v", err)
		time.Sleep(3 * time.Second)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（User, Task, TaskEntry）
		if err := db.AutoMigrate(
			&authentity.User{},
			&taskentity.Task{},
			&taskentity.TaskEntry{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
