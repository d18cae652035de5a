// internal/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	router "coursehub/internal/api"
	"coursehub/internal/api/handler"
	"coursehub/internal/config"
	"coursehub/internal/email"
	"coursehub/internal/eventbus"
	"coursehub/internal/events"
	"coursehub/internal/repository"
	"coursehub/internal/repository/postgres"
	"coursehub/internal/service"
	"coursehub/internal/util"
	"coursehub/pkg/cache"
	"coursehub/pkg/db"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger *slog.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Bus    *eventbus.Bus

	// Repositories
	UserRepository        repository.UserRepository
	WalletRepository      repository.WalletRepository
	TransactionRepository repository.TransactionRepository
	CourseRepository      repository.CourseRepository
	EnrollmentRepository  repository.EnrollmentRepository
	PermissionRepository  repository.PermissionRepository
	PreferenceRepository  repository.PreferenceRepository
	ActivityRepository    repository.ActivityRepository

	// Services
	UserService       service.UserService
	WalletService     service.WalletService
	EnrollmentService service.EnrollmentService
	CourseService     service.CourseService
	PermissionService service.PermissionService
	PreferenceService service.PreferenceService
	ActivityService   service.ActivityService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance. The logger starts as
// slog's default so initialization failures are still reportable.
func NewApplication() *Application {
	return &Application{Logger: slog.Default()}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	// 2. Initialize Logger
	util.InitLogger()
	app.Logger = util.GetLogger()
	app.Logger.Info("Application configuration loaded successfully.")

	// 3. Connect to Database
	database, err := db.NewPostgresDB(app.Config.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info("Database connection established.")

	// 4. Optional Redis-backed balance cache
	var balanceCache *cache.Cache
	if app.Config.RedisAddr != "" {
		app.Redis = redis.NewClient(&redis.Options{
			Addr:     app.Config.RedisAddr,
			Password: app.Config.RedisPassword,
			DB:       app.Config.RedisDB,
		})
		if err := app.Redis.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		balanceCache = cache.New(app.Redis, app.Config.CacheTTL)
		app.Logger.Info("Redis connection established.")
	} else {
		app.Logger.Info("REDIS_ADDR not set, balance cache disabled.")
	}

	// 5. Initialize Repositories
	app.UserRepository = postgres.NewUserRepository(app.DB)
	app.WalletRepository = postgres.NewWalletRepository(app.DB)
	app.TransactionRepository = postgres.NewTransactionRepository(app.DB)
	app.CourseRepository = postgres.NewCourseRepository(app.DB)
	app.EnrollmentRepository = postgres.NewEnrollmentRepository(app.DB)
	app.PermissionRepository = postgres.NewPermissionRepository(app.DB)
	app.PreferenceRepository = postgres.NewPreferenceRepository(app.DB)
	app.ActivityRepository = postgres.NewActivityRepository(app.DB)
	app.Logger.Info("Repositories initialized.")

	// 6. Event bus and listeners
	app.Bus = eventbus.New(
		eventbus.LogReporter{Logger: app.Logger},
		eventbus.WithRequestTimeout(app.Config.BusRequestTimeout),
	)

	// 7. Initialize Services
	app.WalletService = service.NewWalletService(
		app.DB, // This is the DBTxBeginner
		app.DB, // This is the DBExecutor
		app.WalletRepository,
		app.TransactionRepository,
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		balanceCache,
		app.Logger,
	)
	app.CourseService = service.NewCourseService(app.DB, app.CourseRepository)
	app.EnrollmentService = service.NewEnrollmentService(
		app.Bus,
		app.WalletService,
		app.DB,
		app.EnrollmentRepository,
		app.Logger,
	)
	app.PermissionService = service.NewPermissionService(app.DB, app.PermissionRepository)
	app.PreferenceService = service.NewPreferenceService(app.DB, app.PreferenceRepository)
	app.ActivityService = service.NewActivityService(app.DB, app.ActivityRepository)
	app.UserService = service.NewUserService(
		app.DB,
		app.UserRepository,
		app.Bus,
		email.LogSender{Logger: app.Logger},
		app.Logger,
	)
	app.Logger.Info("Services initialized.")

	// 8. Register bus listeners now that their collaborators exist.
	events.NewUserListener(app.DB, app.UserRepository).Register(app.Bus)
	events.NewCourseListener(app.DB, app.CourseRepository).Register(app.Bus)
	events.NewPermissionListener(app.DB, app.PermissionRepository).Register(app.Bus)
	events.NewPreferenceListener(app.DB, app.PreferenceRepository).Register(app.Bus)
	events.NewWalletListener(app.WalletService).Register(app.Bus)
	events.NewActivityListener(app.DB, app.ActivityRepository).Register(app.Bus)
	app.Logger.Info("Event listeners registered.")

	// 9. Initialize HTTP Handlers and Router
	app.HTTPHandler = router.NewRouter(router.Handlers{
		User:       handler.NewUserHandler(app.UserService, app.Logger),
		Wallet:     handler.NewWalletHandler(app.WalletService, app.Logger),
		Enrollment: handler.NewEnrollmentHandler(app.EnrollmentService, app.Logger),
		Course:     handler.NewCourseHandler(app.CourseService, app.Bus, app.Logger),
		Preference: handler.NewPreferenceHandler(app.PreferenceService, app.Logger),
		Permission: handler.NewPermissionHandler(app.PermissionService, app.Logger),
		Activity:   handler.NewActivityHandler(app.ActivityService, app.Logger),
	}, app.Logger)
	app.Logger.Info("HTTP router and handlers initialized.")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info("Shutting down application...")
	if app.Redis != nil {
		if err := app.Redis.Close(); err != nil {
			app.Logger.Error("Failed to close redis connection", "error", err)
		}
	}
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error("Failed to close database connection", "error", err)
			return fmt.Errorf("failed to close database connection: %w", err)
		}
		app.Logger.Info("Database connection closed.")
	}
	app.Logger.Info("Application shut down gracefully.")
	return nil
}
