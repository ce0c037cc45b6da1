package main

import (
	"fmt"
	"log"

	"hrdesk/internal/config"
	"hrdesk/internal/handler"
	"hrdesk/internal/port"
	"hrdesk/internal/remote"
	"hrdesk/internal/router"
	"hrdesk/internal/screen"
	"hrdesk/internal/service"
	"hrdesk/internal/storage/memstore"
	"hrdesk/internal/storage/redisstore"
	"hrdesk/internal/visibility"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Durable key-value provider
	var store port.KeyValue
	switch cfg.Storage.Provider {
	case "redis":
		redisStore, err := redisstore.New(&cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to initialize redis store: %w", err)
		}
		defer redisStore.Close()
		store = redisStore
	default:
		store = memstore.New()
	}

	// Remote HR backend
	client, err := remote.NewClient(&cfg.Remote)
	if err != nil {
		return fmt.Errorf("failed to initialize remote client: %w", err)
	}

	// Visibility rule table
	table := visibility.Table{}
	if cfg.Visibility.TablePath != "" {
		table, err = visibility.LoadTable(cfg.Visibility.TablePath)
		if err != nil {
			return fmt.Errorf("failed to load visibility table: %w", err)
		}
	}
	vis := visibility.New(table, cfg.Visibility.OwnerField, cfg.Visibility.EmployeeField)

	// Services
	authSvc := service.NewAuthService(client, store, cfg.JWT)
	mgr := screen.NewManager(client, vis, store)

	// Handlers
	loginH := handler.NewLoginHandler(authSvc)
	screenH := handler.NewScreenHandler(mgr)
	healthH := handler.NewHealthHandler()

	r := router.Setup(cfg, authSvc, loginH, screenH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
