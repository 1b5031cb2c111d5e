package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/frahmantamala/cash-pro/internal"
	"github.com/frahmantamala/cash-pro/internal/admin"
	adminPostgres "github.com/frahmantamala/cash-pro/internal/admin/postgres"
	"github.com/frahmantamala/cash-pro/internal/auth"
	authPostgres "github.com/frahmantamala/cash-pro/internal/auth/postgres"
	"github.com/frahmantamala/cash-pro/internal/company"
	companyPostgres "github.com/frahmantamala/cash-pro/internal/company/postgres"
	"github.com/frahmantamala/cash-pro/internal/core/events"
	"github.com/frahmantamala/cash-pro/internal/navigation"
	"github.com/frahmantamala/cash-pro/internal/rbac"
	rbacPostgres "github.com/frahmantamala/cash-pro/internal/rbac/postgres"
	"github.com/frahmantamala/cash-pro/internal/session"
	"github.com/frahmantamala/cash-pro/internal/subscription"
	subscriptionPostgres "github.com/frahmantamala/cash-pro/internal/subscription/postgres"
	"github.com/frahmantamala/cash-pro/internal/transport/rest"
	"github.com/frahmantamala/cash-pro/pkg/logger"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Redis    *redis.Client
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Redis, deps.Handlers, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if deps.Redis != nil {
			if err := deps.Redis.Close(); err != nil {
				slog.Error("Redis close error", "error", err)
			}
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	redisClient := session.NewRedisClient(config.Session.RedisAddr, config.Session.RedisPassword, config.Session.RedisDB)

	bus := events.NewEventBus(lg)

	// Repositories
	authRepo := authPostgres.NewRepository(gormDB)
	companyRepo := companyPostgres.NewRepository(gormDB)
	subscriptionRepo := subscriptionPostgres.NewRepository(gormDB)
	rbacRepo := rbacPostgres.NewRepository(gormDB)
	adminRepo := adminPostgres.NewRepository(gormDB)

	// Services
	tokenGen := auth.NewJWTTokenGenerator(config.Security.SessionTokenSecret, config.Security.SessionTokenDuration)
	authService := auth.NewService(authRepo, tokenGen, bus, config.Security.BCryptCost)
	companyService := company.NewService(companyRepo)
	subscriptionService := subscription.NewService(subscriptionRepo)
	rbacService := rbac.NewService(rbacRepo)
	adminService := admin.NewService(adminRepo, config.Security.BCryptCost)

	userCtx := auth.NewContextService(authService, subscriptionService, rbacService, lg)
	guard := navigation.NewGuard(navigation.DefaultRoutes(), lg)

	handlers := rest.Handlers{
		Auth:         auth.NewHandler(authService, userCtx, config.Security.SessionTokenDuration),
		Company:      company.NewHandler(companyService),
		Subscription: subscription.NewHandler(subscriptionService, authService),
		RBAC:         rbac.NewHandler(rbacService, authService),
		Admin:        admin.NewHandler(adminService),
		Navigation:   navigation.NewHandler(userCtx, guard),
	}

	return &Dependencies{
		Config:   config,
		Logger:   lg,
		DB:       db,
		Redis:    redisClient,
		Router:   chi.NewRouter(),
		Handlers: handlers,
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	// verify connection; close underlying *sql.DB on failure
	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
