package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aaauuugggghhhh/unihub-event-management/config"
	"github.com/aaauuugggghhhh/unihub-event-management/handlers"
	"github.com/aaauuugggghhhh/unihub-event-management/initializers"
	"github.com/aaauuugggghhhh/unihub-event-management/middleware"
	"github.com/aaauuugggghhhh/unihub-event-management/pkg/notify"
	"github.com/aaauuugggghhhh/unihub-event-management/repository"
	"github.com/aaauuugggghhhh/unihub-event-management/service"
	"github.com/aaauuugggghhhh/unihub-event-management/websocket"
	"github.com/aaauuugggghhhh/unihub-event-management/worker"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Config error: ", err)
	}

	var db *sql.DB
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err == nil {
			err = db.Ping()
			if err == nil {
				break
			}
		}
		log.Printf("DB connection failed: %v, retrying in 2s...", err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatal("Could not connect to database:", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		log.Fatal("Migration driver error:", err)
	}
	m, err := migrate.NewWithDatabaseInstance(cfg.MigrationsPath, "postgres", driver)
	if err != nil {
		log.Fatal("Migration init error:", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		log.Fatal("Migration failed:", err)
	}

	if err := initializers.InitMinio(); err != nil {
		log.Fatal("Failed to initialize Minio:", err)
	}

	usersRepo := repository.NewUsersRepository(db)
	eventsRepo := repository.NewEventsRepository(db)
	registrationsRepo := repository.NewRegistrationsRepository(db)
	notificationsRepo := repository.NewNotificationsRepository(db)
	remindersRepo := repository.NewRemindersRepository(db)

	hub := websocket.NewHub()
	notifier := &notify.WSNotifier{Hub: hub}
	emitter := service.NewNotificationEmitter(notificationsRepo, notifier)
	coordinator := service.NewCoordinator(eventsRepo, registrationsRepo, remindersRepo, emitter)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reminderWorker := worker.NewReminderWorker(worker.ReminderWorkerConfig{
		PollInterval: cfg.ReminderPollInterval,
		BatchSize:    cfg.ReminderBatchSize,
	}, remindersRepo, eventsRepo, registrationsRepo, emitter)
	go reminderWorker.Start(ctx)

	if strings.ToLower(cfg.AppEnv) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(gin.Recovery())

	if len(cfg.TrustedProxies) > 0 {
		if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			log.Fatalf("Invalid TRUSTED_PROXIES: %v", err)
		}
	} else {
		// Default to loopback only; override via TRUSTED_PROXIES in production
		_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})
	}

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RateLimitMiddleware())

	authHandler := handlers.NewAuthHandler(usersRepo, cfg)
	eventsHandler := handlers.NewEventsHandler(eventsRepo, coordinator)
	registrationsHandler := handlers.NewRegistrationsHandler(coordinator, registrationsRepo)
	notificationsHandler := handlers.NewNotificationsHandler(notificationsRepo, notifier)
	postersHandler := handlers.NewPostersHandler(eventsRepo)

	r.GET("/health", handlers.HealthCheck)

	// Public endpoints with stricter auth rate limit
	authPublic := r.Group("/", middleware.RateLimitAuthMiddleware())
	authPublic.POST("/register", authHandler.Signup)
	authPublic.POST("/login", authHandler.Login)

	auth := r.Group("/", handlers.AuthMiddleware(cfg.JWTSecret))
	{
		auth.GET("/ws", handlers.ServeFeed(hub, notificationsRepo))

		auth.GET("/me", authHandler.GetMe)

		auth.GET("/events", eventsHandler.GetEvents)
		auth.GET("/events/:id", eventsHandler.GetEvent)
		auth.POST("/events/:id/register", registrationsHandler.Register)
		auth.DELETE("/events/:id/register", registrationsHandler.Unregister)
		auth.GET("/me/events", registrationsHandler.GetMyEvents)

		auth.GET("/notifications", notificationsHandler.List)
		auth.PATCH("/notifications/:id/read", notificationsHandler.MarkRead)
		auth.POST("/notifications/mark-all-read", notificationsHandler.MarkAllRead)
		auth.DELETE("/notifications/:id", notificationsHandler.Delete)

		auth.GET("/images/:id", postersHandler.Serve)
	}

	admin := r.Group("/", handlers.AuthMiddleware(cfg.JWTSecret), handlers.AdminMiddleware(cfg))
	{
		admin.POST("/events", eventsHandler.CreateEvent)
		admin.PATCH("/events/:id", eventsHandler.UpdateEvent)
		admin.DELETE("/events/:id", eventsHandler.DeleteEvent)
		admin.GET("/events/:id/registrations", registrationsHandler.GetEventRegistrations)
		admin.POST("/events/:id/poster", postersHandler.Upload)
	}

	srv := &http.Server{
		Addr:    cfg.ServerAddr,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error: ", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
}
