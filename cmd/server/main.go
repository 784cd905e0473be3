package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/fluxyapp/fluxy/internal/api"
	"github.com/fluxyapp/fluxy/internal/auth"
	"github.com/fluxyapp/fluxy/internal/config"
	"github.com/fluxyapp/fluxy/internal/notify"
	"github.com/fluxyapp/fluxy/internal/providers"
	"github.com/fluxyapp/fluxy/internal/scheduler"
	"github.com/fluxyapp/fluxy/internal/service"
	"github.com/fluxyapp/fluxy/internal/storage/sqlite"
	"github.com/fluxyapp/fluxy/pkg/logging"
)

func main() {
	logging.Setup()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	gin.SetMode(cfg.Mode)

	store, err := sqlite.New(cfg.SQLiteDBPath)
	if err != nil {
		slog.Error("failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "database", cfg.SQLiteDBPath)

	catalog, err := providers.Load(cfg.ProvidersPath)
	if err != nil {
		slog.Error("failed to load provider catalog", "error", err)
		os.Exit(1)
	}
	slog.Info("provider catalog loaded", "providers", len(catalog.All()))

	// Event publishing is optional; an empty URL runs without a broker.
	var publisher *notify.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = notify.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			slog.Error("failed to connect to broker", "error", err)
			os.Exit(1)
		}
		defer publisher.Close()
		slog.Info("broker connected", "exchange", cfg.AMQPExchange)
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)
	messages := service.NewMessageService(store)

	server := api.NewServer(
		service.NewAuthService(authenticator, jwtManager),
		service.NewSubscriptionService(store),
		service.NewMemberService(store),
		service.NewBudgetService(store),
		service.NewReportService(store),
		messages,
		service.NewFriendService(store),
		service.NewInvitationService(store, messages),
		catalog,
	)

	sched := scheduler.New(store, publisher)
	if err := sched.Register(cfg.ReminderCron); err != nil {
		slog.Error("failed to register reminder job", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: server.Router(jwtManager),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("server starting", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		sched.Start()
		<-ctx.Done()
		sched.Stop()
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
