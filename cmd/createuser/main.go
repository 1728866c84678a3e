// Command createuser creates a credential record out of band:
//
//	createuser <username> <password>
//
// It connects to the same store as the API and goes through the same account
// creation path, so existing users are reported rather than overwritten.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/spec-kit/todo-service/internal/config"
	"github.com/spec-kit/todo-service/internal/persistence"
	"github.com/spec-kit/todo-service/internal/repository"
	"github.com/spec-kit/todo-service/internal/service"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Fprintln(os.Stderr, "usage: createuser <username> <password>")
		os.Exit(1)
	}
	username, password := os.Args[1], os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := zap.NewNop()
	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	authService := service.NewAuthService(cfg.Auth, repository.NewUserRepository(redis.Client), logger)

	user, created, err := authService.CreateUser(context.Background(), username, password)
	if err != nil {
		log.Fatalf("error creating user: %v", err)
	}
	if !created {
		fmt.Printf("User %q already exists.\n", username)
		return
	}

	fmt.Printf("User %q created successfully!\n", username)
	fmt.Printf("  Username: %s\n", user.Username)
	fmt.Printf("  User ID:  %s\n", user.ID)
}
