package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/ignatzorin/portfolio-backend/internal/config"
	"github.com/ignatzorin/portfolio-backend/internal/db"
	"github.com/ignatzorin/portfolio-backend/internal/logger"
	"github.com/ignatzorin/portfolio-backend/internal/repository"
	"github.com/ignatzorin/portfolio-backend/internal/service"
)

// Создаёт администратора из ADMIN_EMAIL/ADMIN_PASSWORD и, с флагом -demo, заполняет его портфолио.
func main() {
	demo := flag.Bool("demo", false, "заполнить портфолио демонстрационными данными")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("seed: ошибка загрузки конфигурации: %v", err)
	}
	logger.Init("info")
	logger.SetTextFormatter()

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Fatalf("seed: ADMIN_EMAIL и ADMIN_PASSWORD обязательны")
	}

	conn, err := db.Open(ctx, cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("seed: ошибка подключения к базе: %v", err)
	}
	defer conn.Close()

	if err := db.RunMigrations(ctx, conn); err != nil {
		log.Fatalf("seed: ошибка миграций: %v", err)
	}

	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	auth := service.NewAuthService(repository.NewUserRepository(conn), tokens)
	portfolio := service.NewPortfolioService(
		service.NewPersonalInfoService(repository.NewPersonalInfoRepository(conn)),
		service.NewSkillService(repository.NewSkillRepository(conn)),
		service.NewProjectService(repository.NewProjectRepository(conn)),
		service.NewExperienceService(repository.NewExperienceRepository(conn)),
		service.NewSocialLinkService(repository.NewSocialLinkRepository(conn)),
		uuid.Nil,
	)
	content := service.NewSiteContentService(repository.NewSiteContentRepository(conn))

	result, err := service.NewSeedService(auth, portfolio, content).Seed(ctx, service.CreateAccountInput{
		Email:    cfg.AdminEmail,
		Password: cfg.AdminPassword,
		Name:     cfg.AdminName,
	}, *demo)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}

	state := "уже существует"
	if result.Created {
		state = "создан"
	}
	fmt.Printf("администратор %s %s, id %s\n", result.User.Email, state, result.User.ID)
	if result.Demo {
		fmt.Println("демонстрационные данные записаны")
	}
	fmt.Printf("для публичного сайта: DEFAULT_USER_ID=%s\n", result.User.ID)
}
