package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"tennis-space/backend/internal/config"
	"tennis-space/backend/internal/domain/booking"
	"tennis-space/backend/internal/domain/club"
	"tennis-space/backend/internal/domain/membership"
	"tennis-space/backend/internal/domain/user"
	"tennis-space/backend/internal/firebase"
	apihttp "tennis-space/backend/internal/http"
	"tennis-space/backend/internal/identity"
	"tennis-space/backend/internal/logger"
	"tennis-space/backend/internal/uploads"
)

type backend struct {
	users       user.Repository
	clubs       club.Repository
	memberships membership.Repository
	bookings    booking.Repository
	provider    identity.Provider
	uploads     *uploads.Signer
	close       func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logger.InitLogger(logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		ServiceName: "tennis-space-api",
	})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	ctx := context.Background()
	be, err := newBackend(ctx, cfg)
	if err != nil {
		lg.Fatal("backend init failed", zap.String("backend", cfg.Backend), zap.Error(err))
	}
	defer be.close()

	// Services
	clubSvc := club.NewService(be.clubs)
	membershipSvc := membership.NewService(be.memberships, clubSvc)
	bookingSvc := booking.NewService(be.bookings, clubSvc)
	bookingSvc.SetPolicy(booking.Policy{Enforce: cfg.EnforceBookingPolicy})
	identitySvc := identity.NewService(be.provider, be.users, clubSvc)

	router := apihttp.NewRouter(apihttp.RouterDeps{
		Cfg:         cfg,
		Log:         lg,
		Identity:    identitySvc,
		Clubs:       clubSvc,
		Memberships: membershipSvc,
		Bookings:    bookingSvc,
		Uploads:     be.uploads,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 20 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	go func() {
		lg.Info("API listening",
			zap.String("port", cfg.Port),
			zap.String("backend", cfg.Backend),
			zap.String("project", cfg.ProjectID),
			zap.Bool("enforceBookingPolicy", cfg.EnforceBookingPolicy),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("listen failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	lg.Info("shutting down...")
	_ = srv.Shutdown(ctxShutdown)
}

func newBackend(ctx context.Context, cfg config.Config) (*backend, error) {
	if cfg.Backend == config.BackendMemory {
		clubs := club.NewMemRepo()
		if _, err := club.NewService(clubs).Seed(ctx); err != nil {
			return nil, err
		}
		return &backend{
			users:       user.NewMemRepo(),
			clubs:       clubs,
			memberships: membership.NewMemRepo(),
			bookings:    booking.NewMemRepo(),
			provider:    identity.NewMemoryProvider(cfg.SessionSecret, cfg.SessionTTL),
			close:       func() {},
		}, nil
	}

	clients, err := firebase.NewClients(ctx, cfg)
	if err != nil {
		return nil, err
	}
	provider, err := identity.NewFirebaseProvider(ctx, clients.Auth, cfg.APIKey)
	if err != nil {
		clients.Close()
		return nil, err
	}
	return &backend{
		users:       user.NewRepo(clients.Firestore),
		clubs:       club.NewRepo(clients.Firestore),
		memberships: membership.NewRepo(clients.Firestore),
		bookings:    booking.NewRepo(clients.Firestore),
		provider:    provider,
		uploads:     uploads.NewSigner(clients.Bucket, cfg.SignedURLServiceAccountEmail, uploads.IAMSignFunc(clients.IAM)),
		close:       clients.Close,
	}, nil
}
