package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"go.uber.org/zap"

	"tennis-space/backend/internal/config"
	"tennis-space/backend/internal/domain/club"
	"tennis-space/backend/internal/firebase"
	"tennis-space/backend/internal/logger"
)

// seed writes the demonstration club catalog into Firestore. Every run adds a
// fresh copy; it does not look for clubs that already exist.
func main() {
	dryRun := flag.Bool("dry-run", false, "list the catalog without writing")
	flag.Parse()

	if *dryRun {
		for _, c := range club.Catalog() {
			fmt.Printf("%-40s %d courts  %s\n", c.Name, len(c.Courts), c.Address)
		}
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.Backend != config.BackendFirebase {
		log.Fatalf("seed needs BACKEND=firebase (got %s)", cfg.Backend)
	}
	lg, err := logger.InitLogger(logger.LogConfig{Level: cfg.LogLevel, Environment: cfg.Environment, ServiceName: "tennis-space-seed"})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	ctx := logger.WithContext(context.Background(), lg)
	clients, err := firebase.NewClients(ctx, cfg)
	if err != nil {
		lg.Fatal("firebase init failed", zap.Error(err))
	}
	defer clients.Close()

	ids, err := club.NewService(club.NewRepo(clients.Firestore)).Seed(ctx)
	if err != nil {
		lg.Fatal("seed failed", zap.Error(err))
	}
	fmt.Printf("ok: %d clubs created\n", len(ids))
}
