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

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpg "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/avelasqz/library-management/internal"
	"github.com/avelasqz/library-management/internal/auth"
	authpg "github.com/avelasqz/library-management/internal/auth/postgres"
	"github.com/avelasqz/library-management/internal/author"
	authorpg "github.com/avelasqz/library-management/internal/author/postgres"
	"github.com/avelasqz/library-management/internal/core/events"
	"github.com/avelasqz/library-management/internal/inventory"
	inventorypg "github.com/avelasqz/library-management/internal/inventory/postgres"
	"github.com/avelasqz/library-management/internal/library"
	librarypg "github.com/avelasqz/library-management/internal/library/postgres"
	"github.com/avelasqz/library-management/internal/material"
	materialpg "github.com/avelasqz/library-management/internal/material/postgres"
	"github.com/avelasqz/library-management/internal/role"
	rolepg "github.com/avelasqz/library-management/internal/role/postgres"
	"github.com/avelasqz/library-management/internal/section"
	sectionpg "github.com/avelasqz/library-management/internal/section/postgres"
	"github.com/avelasqz/library-management/internal/transport/rest"
	"github.com/avelasqz/library-management/internal/transport/swagger"
	"github.com/avelasqz/library-management/internal/user"
	userpg "github.com/avelasqz/library-management/internal/user/postgres"
	"github.com/avelasqz/library-management/pkg/logger"
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
	Config *internal.Config
	DB     *sqlx.DB
	Router *chi.Mux
	Logger *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

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

	logger.InitWithConfig(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.LoggerWrapper()

	if _, err := swagger.LoadSpec("./api/openapi.yml"); err != nil {
		return nil, err
	}

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpg.New(gormpg.Config{Conn: db.DB}), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm session: %w", err)
	}

	bus := events.NewEventBus(lg)
	registerAuditSubscribers(bus, lg)

	authRepo := authpg.NewRepository(gormDB)
	userRepo := userpg.NewUserRepository(gormDB)
	libraryRepo := librarypg.NewLibraryRepository(gormDB)
	roleRepo := rolepg.NewRoleRepository(gormDB)
	materialRepo := materialpg.NewMaterialRepository(gormDB)
	sectionRepo := sectionpg.NewSectionRepository(gormDB)
	authorRepo := authorpg.NewAuthorRepository(gormDB)
	inventoryRepo := inventorypg.NewInventoryRepository(gormDB)

	issuer := auth.NewTokenIssuer(config.Security)
	authService := auth.NewService(authRepo, issuer, config.Security.BCryptCost)
	resolver := auth.NewResolver(authRepo)
	gate := auth.NewGate(resolver, authRepo, lg)

	handlers := rest.Handlers{
		Auth:      auth.NewHandler(authService, resolver),
		User:      user.NewHandler(user.NewService(userRepo, authService, bus)),
		Library:   library.NewHandler(library.NewService(libraryRepo, gate, bus)),
		Role:      role.NewHandler(role.NewService(roleRepo)),
		Material:  material.NewHandler(material.NewService(materialRepo, gate)),
		Section:   section.NewHandler(section.NewService(sectionRepo)),
		Author:    author.NewHandler(author.NewService(authorRepo)),
		Inventory: inventory.NewHandler(inventory.NewService(inventoryRepo, gate)),
	}

	router := chi.NewRouter()
	rest.RegisterAllRoutes(router, db.DB, handlers, config.Server, lg)

	return &Dependencies{
		Config: config,
		Logger: lg,
		DB:     db,
		Router: router,
	}, nil
}

// registerAuditSubscribers logs domain events so membership grants leave a
// trace even without an external audit sink.
func registerAuditSubscribers(bus *events.EventBus, lg *slog.Logger) {
	audit := func(ctx context.Context, event events.Event) error {
		lg.Info("audit",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"payload", event.Payload())
		return nil
	}

	bus.SubscribeAll(audit)
}

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

	ctx, cancel := internal.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbConn.PingContext(ctx); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
