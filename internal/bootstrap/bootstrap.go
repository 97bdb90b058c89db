package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/yigit/coursehub/internal/app/controllers"
	appMigrations "github.com/yigit/coursehub/internal/app/migrations"
	appRepos "github.com/yigit/coursehub/internal/app/repositories"
	appRoutes "github.com/yigit/coursehub/internal/app/routes"
	appServices "github.com/yigit/coursehub/internal/app/services"
	"github.com/yigit/coursehub/internal/config"
	"github.com/yigit/coursehub/internal/db"
	appMiddleware "github.com/yigit/coursehub/internal/middleware"
	"github.com/yigit/coursehub/internal/pkg/logger"
	"github.com/yigit/coursehub/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	CourseService    appServices.CourseService
	CourseController *appControllers.CourseController
	HealthController *appControllers.HealthController
	Repos            *appRepos.Repositories
	Logger           zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := ConfigureLogger(cfg)
	lgr.Info().
		Str("logLevel", cfg.Logging.Level).
		Str("logFormat", cfg.Logging.Format).
		Str("driver", cfg.Database.Driver).
		Msg("Logger configured")
	return cfg, lgr, nil
}

// ConfigureLogger applies the logging section of cfg to the global logger
func ConfigureLogger(cfg *config.Config) zerolog.Logger {
	logger.Configure(logger.Config{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})
	return log.Logger
}

// SetupDatabase opens the configured store and brings its schema up to date.
// The returned closer releases the underlying connection.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*appRepos.Repositories, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		lgr.Info().Str("host", cfg.Database.Host).Msg("Establishing database connection...")
		database, err := db.NewPostgresDB(ctx, cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, nil, err
		}
		lgr.Info().Msg("Database connection successfully established.")

		lgr.Info().Msg("Running database migrations...")
		if err := appMigrations.NewMigrator(database.Pool).MigratePostgres(ctx); err != nil {
			lgr.Error().Err(err).Msg("Database migration error")
			database.Close()
			return nil, nil, fmt.Errorf("database migrations failed: %w", err)
		}
		lgr.Info().Msg("Database migrations successfully applied.")

		return appRepos.NewPostgresRepositories(database.Pool), database.Close, nil

	case config.DriverSQLite:
		lgr.Info().Str("path", cfg.Database.Path).Msg("Opening SQLite database...")
		database, err := db.OpenSQLite(cfg.Database.Path)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to open SQLite database")
			return nil, nil, err
		}
		closer := func() {
			if err := database.Close(); err != nil {
				lgr.Error().Err(err).Msg("Failed to close SQLite database")
			}
		}
		return appRepos.NewSQLiteRepositories(database.DB), closer, nil

	case config.DriverMemory:
		lgr.Warn().Msg("Using in-memory store; data is lost on exit")
		return appRepos.NewMemoryRepositories(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// RunMigrations applies pending schema changes without starting the server
func RunMigrations(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) error {
	_, closer, err := SetupDatabase(ctx, cfg, lgr)
	if err != nil {
		return err
	}
	closer()
	return nil
}

// BuildDependencies initializes services and controllers on top of repos.
func BuildDependencies(ctx context.Context, cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) (*Dependencies, error) {
	if repos == nil {
		return nil, fmt.Errorf("repositories are required")
	}

	deps := &Dependencies{Logger: lgr, Repos: repos}
	deps.CourseService = appServices.NewCourseService(repos.CourseRepository, lgr)
	deps.CourseController = appControllers.NewCourseController(deps.CourseService)
	deps.HealthController = appControllers.NewHealthController(deps.CourseService, repos.Driver)

	if err := seed.CreateDefaultData(ctx, deps.CourseService, cfg.Seed.Courses, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestID())
	router.Use(appMiddleware.RequestLogger(lgr))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.CourseController, deps.HealthController)

	return router
}
