package di

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sandeepkv93/identity-core/internal/app"
	"github.com/sandeepkv93/identity-core/internal/command"
	"github.com/sandeepkv93/identity-core/internal/config"
	"github.com/sandeepkv93/identity-core/internal/database"
	"github.com/sandeepkv93/identity-core/internal/health"
	"github.com/sandeepkv93/identity-core/internal/http/handler"
	"github.com/sandeepkv93/identity-core/internal/http/router"
	"github.com/sandeepkv93/identity-core/internal/observability"
	"github.com/sandeepkv93/identity-core/internal/repository"
	"github.com/sandeepkv93/identity-core/internal/security"
	"github.com/sandeepkv93/identity-core/internal/service"
)

var ConfigSet = wire.NewSet(config.Load)

var ObservabilitySet = wire.NewSet(
	provideObservabilityRuntime,
	provideAppLogger,
)

var RuntimeInfraSet = wire.NewSet(
	provideRuntimeDB,
	provideRedisClient,
	provideReadinessProbeRunner,
)

var RepositorySet = wire.NewSet(
	repository.NewUserRepository,
	repository.NewRoleRepository,
	repository.NewAccountRepository,
)

var SecuritySet = wire.NewSet(
	providePasswordHasher,
	provideTokenIssuer,
	wire.Bind(new(service.PasswordHasher), new(*security.Argon2Hasher)),
	wire.Bind(new(service.TokenSigner), new(*security.TokenIssuer)),
)

var ServiceSet = wire.NewSet(
	provideAuthConfig,
	service.NewCredentialStore,
	service.NewAccountRegistry,
	provideMailDispatcher,
	service.NewAuthService,
	wire.Bind(new(service.AuthFlows), new(*service.AuthService)),
)

var CommandSet = wire.NewSet(
	provideMessages,
	command.NewDispatcher,
)

var HTTPSet = wire.NewSet(
	provideCommandHandler,
	provideRouterDependencies,
	router.NewRouter,
	provideHTTPServer,
)

var AppSet = wire.NewSet(provideApp)

// MigrationRunner applies the schema and the role seed without starting the
// HTTP stack.
type MigrationRunner struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewMigrationRunner(db *gorm.DB, logger *slog.Logger) *MigrationRunner {
	return &MigrationRunner{db: db, logger: logger}
}

func (m *MigrationRunner) Run() (*database.SeedReport, error) {
	if err := database.Migrate(m.db); err != nil {
		return nil, err
	}
	report, err := database.SeedSync(m.db)
	if err != nil {
		return nil, err
	}
	m.logger.Info("migration complete", "created_roles", report.CreatedRoles, "noop", report.Noop)
	return report, nil
}

func (m *MigrationRunner) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func provideObservabilityRuntime(cfg *config.Config) (*observability.Runtime, error) {
	bootstrapLogger := observability.NewBootstrapLogger(cfg)
	return observability.InitRuntime(context.Background(), cfg, bootstrapLogger)
}

func provideAppLogger(cfg *config.Config, runtime *observability.Runtime) *slog.Logger {
	return observability.InitLogger(cfg, runtime.LoggerProvider)
}

func provideToolLogger(cfg *config.Config) *slog.Logger {
	return observability.NewBootstrapLogger(cfg)
}

func provideOpenDB(cfg *config.Config) (*gorm.DB, error) {
	return database.Open(cfg)
}

func provideRuntimeDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	if err := database.Seed(db); err != nil {
		return nil, err
	}
	return db, nil
}

func provideRedisClient(cfg *config.Config, logger *slog.Logger) redis.UniversalClient {
	if !cfg.UsesRedis() {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	observability.InstrumentRedisClient(client, logger)
	return client
}

func providePasswordHasher(cfg *config.Config) *security.Argon2Hasher {
	return security.NewArgon2Hasher(security.Argon2Params{
		MemoryKB:   cfg.AuthPasswordHashMemoryKB,
		Iterations: cfg.AuthPasswordHashIterations,
	})
}

func provideTokenIssuer(cfg *config.Config) *security.TokenIssuer {
	return security.NewTokenIssuer(cfg.JWTSecretKey, cfg.AuthSessionTokenTTL)
}

func provideAuthConfig(cfg *config.Config) service.AuthConfig {
	return service.AuthConfig{
		BackendURL:  cfg.BackendURL,
		FrontendURL: cfg.FrontendURL,
		LinkTTL:     cfg.AuthLinkTokenTTL,
	}
}

func provideMailDispatcher(cfg *config.Config, redisClient redis.UniversalClient, logger *slog.Logger) service.MailDispatcher {
	if cfg.MailDriver == "redis" && redisClient != nil {
		return service.NewRedisStreamMailDispatcher(redisClient, cfg.MailStreamKey, cfg.MailStreamMaxLen)
	}
	return service.NewLogMailDispatcher(logger)
}

func provideMessages(cfg *config.Config) (*command.Messages, error) {
	return command.NewMessages(cfg.Locale)
}

func provideCommandHandler(cfg *config.Config, dispatcher *command.Dispatcher, messages *command.Messages) *handler.CommandHandler {
	return handler.NewCommandHandler(dispatcher, messages, cfg.RequestTimeout)
}

func provideRouterDependencies(
	commandHandler *handler.CommandHandler,
	readiness *health.ProbeRunner,
	cfg *config.Config,
) router.Dependencies {
	return router.Dependencies{
		CommandHandler: commandHandler,
		CORSOrigins:    []string{cfg.FrontendURL},
		Readiness:      readiness,
		EnableOTelHTTP: cfg.OTELMetricsEnabled || cfg.OTELTracingEnabled,
	}
}

func provideHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           h,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func provideReadinessProbeRunner(cfg *config.Config, db *gorm.DB, redisClient redis.UniversalClient) *health.ProbeRunner {
	checkers := make([]health.Checker, 0, 2)
	if c := health.NewDBChecker(db); c != nil {
		checkers = append(checkers, c)
	}
	if cfg.UsesRedis() {
		if c := health.NewRedisChecker(redisClient, cfg.MailStreamKey); c != nil {
			checkers = append(checkers, c)
		}
	}
	return health.NewProbeRunner(cfg.ReadinessProbeTimeout, checkers...)
}

func provideApp(
	cfg *config.Config,
	logger *slog.Logger,
	server *http.Server,
	runtime *observability.Runtime,
	db *gorm.DB,
	redisClient redis.UniversalClient,
	readiness *health.ProbeRunner,
) *app.App {
	return app.New(cfg, logger, server, runtime, db, redisClient, readiness)
}
