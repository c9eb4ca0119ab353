package main

import (
	"context"
	"database/sql"
	"flag"
	"os"

	_ "github.com/lib/pq"

	"github.com/learnhub/learnhub/application/port/inbound"
	"github.com/learnhub/learnhub/application/usecase/user_management"
	"github.com/learnhub/learnhub/domain/valueobject"
	"github.com/learnhub/learnhub/infrastructure/adapter/postgres"
	"github.com/learnhub/learnhub/infrastructure/config"
	"github.com/learnhub/learnhub/infrastructure/service/logger"
	"github.com/learnhub/learnhub/infrastructure/service/password"
)

func main() {
	email := flag.String("email", "admin@learnhub.local", "admin email")
	name := flag.String("name", "Administrator", "admin display name")
	pwd := flag.String("password", "", "admin password (defaults to $ADMIN_PASSWORD)")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.NewStructuredLogger(logger.LoggerConfig{Format: "text"}).Error(ctx, "Failed to load configuration", err, nil)
		os.Exit(1)
	}
	log := logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       cfg.LogLevel,
		Format:      "text",
		ServiceName: "learnhub-create-admin",
	})

	if *pwd == "" {
		*pwd = os.Getenv("ADMIN_PASSWORD")
	}
	if *pwd == "" {
		log.Error(ctx, "An admin password is required (-password or ADMIN_PASSWORD)", nil, nil)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Error(ctx, "Failed to connect to database", err, nil)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Error(ctx, "Failed to ping database", err, nil)
		os.Exit(1)
	}

	users := user_management.NewUserManagementUseCase(
		postgres.NewUserRepositoryAdapter(db),
		postgres.NewCourseRepositoryAdapter(db),
		password.NewBcryptPasswordService(password.DefaultCost),
	)

	err = users.CreateUser(ctx, inbound.CreateUserRequest{
		Name:            *name,
		Email:           *email,
		Password:        *pwd,
		ConfirmPassword: *pwd,
		Role:            valueobject.RoleAdmin.String(),
	})
	if err != nil {
		log.Error(ctx, "Failed to create admin user", err, map[string]interface{}{"email": *email})
		os.Exit(1)
	}

	log.Info(ctx, "Admin user created", map[string]interface{}{"email": *email, "name": *name})
}
