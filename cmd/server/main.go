package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/AjayKumar-j-s/Cloth-Management/internal/api"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/api/metrics"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/domain"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/ports"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/core/service"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/infrastructure/config"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/infrastructure/db/memory"
	mongodb "github.com/AjayKumar-j-s/Cloth-Management/internal/infrastructure/db/mongo"
	redisdb "github.com/AjayKumar-j-s/Cloth-Management/internal/infrastructure/db/redis"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/infrastructure/http/handlers"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/infrastructure/mailer"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/infrastructure/queue"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/infrastructure/scheduler"
	"github.com/AjayKumar-j-s/Cloth-Management/internal/infrastructure/storage"
	"github.com/AjayKumar-j-s/Cloth-Management/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

//	@title			Client Payment Tracker API
//	@version		1.0.0
//	@description	Client records, documents and overdue-payment reminders.

//	@BasePath	/
//	@schemes	http https

// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
// @description				Type "Bearer" followed by a space and JWT token.
func main() {
	bootLog := zerolog.New(os.Stderr).With().Timestamp().Logger()
	cfg := config.Load(bootLog)

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "clients-api",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}

	// --- MongoDB ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "clients-api",
	})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	clientRepo := mongodb.NewClientRepository(db)
	authRepo := mongodb.NewAuthRepository(db)
	if err := clientRepo.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := authRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	checks := []handlers.Check{handlers.MongoCheck(db)}

	// --- Document storage ---
	docs, err := storage.NewMinioStore(ctx, storage.Config{
		Endpoint:        cfg.Storage.Endpoint,
		AccessKeyID:     cfg.Storage.AccessKeyID,
		SecretAccessKey: cfg.Storage.SecretAccessKey,
		Bucket:          cfg.Storage.Bucket,
		Region:          cfg.Storage.Region,
		UseSSL:          cfg.Storage.UseSSL,
	})
	if err != nil {
		return err
	}
	if err := docs.EnsureBucket(ctx, cfg.Storage.Region); err != nil {
		return err
	}
	checks = append(checks, handlers.Check{Name: "storage", Ping: docs.Ping})

	// --- Notification ledger ---
	var ledger ports.NotificationLedger
	switch cfg.Reminder.Ledger {
	case "redis":
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		ledger = redisdb.NewNotificationLedger(rdb, loc)
		checks = append(checks, handlers.RedisCheck(rdb))
	default:
		ledger = memory.NewNotificationLedger()
	}
	log.Info().Str("ledger", cfg.Reminder.Ledger).Msg("notification ledger ready")

	// --- Mailer ---
	smtp, err := mailer.NewSMTPNotifier(mailer.Config{
		Host:        cfg.SMTP.Host,
		Port:        cfg.SMTP.Port,
		Username:    cfg.SMTP.Username,
		Password:    cfg.SMTP.Password,
		FromName:    cfg.SMTP.FromName,
		FromAddress: cfg.SMTP.FromAddress,
		Timeout:     cfg.SMTP.Timeout,
	}, log)
	if err != nil {
		return err
	}

	// --- Services ---
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, cfg.TokenTTL)
	clientService := service.NewClientService(clientRepo, docs, log)
	reminderService := service.NewReminderService(
		clientRepo,
		metrics.InstrumentNotifier(smtp),
		ledger,
		queue.NewDispatcher(cfg.Reminder.Workers, log),
		log,
		service.ReminderOptions{SendTimeout: cfg.Reminder.SendTimeout, Location: loc},
	)

	if err := bootstrapAdmin(ctx, authService, cfg); err != nil {
		return err
	}

	// --- Scheduler ---
	sched, err := scheduler.NewReminderScheduler(reminderService, scheduler.Config{
		Cron:       cfg.Reminder.Cron,
		RunOnStart: cfg.Reminder.RunOnStart,
		Timeout:    cfg.Reminder.ScanTimeout,
		Location:   loc,
	}, log)
	if err != nil {
		return err
	}
	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		if err := sched.Stop(); err != nil {
			log.Error().Err(err).Msg("failed to stop reminder scheduler")
		}
	}()

	// --- HTTP ---
	e := api.NewRouter(api.RouterConfig{
		JWTSecret:      cfg.JWTSecret,
		AllowOrigins:   cfg.CORSOrigins,
		DocumentURLTTL: cfg.Reminder.DocumentURLTTL,
		BodyLimit:      cfg.BodyLimit,
	}, api.Services{
		Auth:      authService,
		Clients:   clientService,
		Reminders: reminderService,
		Readiness: handlers.NewReadinessHandler(checks...),
	}, log)

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func bootstrapAdmin(ctx context.Context, auth ports.AuthService, cfg *config.Config) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil
	}
	_, err := auth.Register(ctx, cfg.AdminUsername, cfg.AdminPassword, "", domain.RoleAdmin)
	if err != nil && !errors.Is(err, domain.ErrUserExists) {
		return err
	}
	return nil
}
