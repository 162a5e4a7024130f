// 创建初始管理员账号脚本
//
// 首次部署后执行一次，之后的管理员由已有管理员在管理端创建。
//
// 用法: go run scripts/create_admin.go -email admin@example.com -password <密码>
package main

import (
	"errors"
	"flag"
	"log"

	"reading_learning_backend/internal/config"
	"reading_learning_backend/internal/model"
	"reading_learning_backend/internal/repository"
	"reading_learning_backend/pkg/database"
	"reading_learning_backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	name := flag.String("name", "Administrator", "管理员显示名")
	email := flag.String("email", "", "管理员邮箱")
	password := flag.String("password", "", "管理员密码")
	flag.Parse()

	if *email == "" || *password == "" {
		log.Fatal("用法: go run scripts/create_admin.go -email <邮箱> -password <密码>")
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	users := repository.NewUserRepository(db)
	if _, err := users.FindByEmail(*email); err == nil {
		log.Fatalf("邮箱已被占用: %s", *email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("查询用户失败: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("密码哈希失败: %v", err)
	}

	admin := &model.User{
		Name:        *name,
		Email:       *email,
		Password:    string(hashed),
		Role:        model.Admin,
		MaxAttempts: model.DefaultMaxAttempts,
	}
	if err := users.Create(admin); err != nil {
		log.Fatalf("创建管理员失败: %v", err)
	}

	log.Printf("管理员创建成功: id=%d email=%s", admin.ID, admin.Email)
}
