// Package container provides dependency injection using Uber FX
// This implements the Dependency Inversion Principle from SOLID
package container

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nutriplan/v1/internal/application/menu"
	"github.com/nutriplan/v1/internal/application/nutrition"
	"github.com/nutriplan/v1/internal/application/plan"
	"github.com/nutriplan/v1/internal/application/recipe"
	"github.com/nutriplan/v1/internal/application/user"
	"github.com/nutriplan/v1/internal/infrastructure/cache"
	"github.com/nutriplan/v1/internal/infrastructure/config"
	"github.com/nutriplan/v1/internal/infrastructure/events"
	"github.com/nutriplan/v1/internal/infrastructure/http/handlers"
	"github.com/nutriplan/v1/internal/infrastructure/http/middleware"
	"github.com/nutriplan/v1/internal/infrastructure/http/server"
	"github.com/nutriplan/v1/internal/infrastructure/monitoring"
	"github.com/nutriplan/v1/internal/infrastructure/persistence/database"
	gormrepo "github.com/nutriplan/v1/internal/infrastructure/persistence/gorm"
	"github.com/nutriplan/v1/internal/infrastructure/persistence/memory"
	redisrepo "github.com/nutriplan/v1/internal/infrastructure/persistence/redis"
	"github.com/nutriplan/v1/internal/infrastructure/security"
	"github.com/nutriplan/v1/internal/ports/inbound"
	"github.com/nutriplan/v1/internal/ports/outbound"
	"github.com/nutriplan/v1/pkg/healthcheck"
	"github.com/nutriplan/v1/pkg/logger"
)

// ConfigPath is the optional configuration file handed to config.Load
type ConfigPath string

// New returns the full application graph reading configuration from path
func New(path string) fx.Option {
	return fx.Options(
		fx.Supply(ConfigPath(path)),
		Module,
	)
}

// Module provides all dependency injection modules
var Module = fx.Options(
	// Infrastructure modules
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	CacheModule,
	MonitoringModule,

	// Repository modules
	RepositoryModule,

	// Service modules
	ServiceModule,

	// HTTP modules
	HTTPModule,

	// Lifecycle hooks
	LifecycleModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func(path ConfigPath) (*config.Config, error) {
		return config.Load(string(path))
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// Persistence is the store behind every repository. Exactly one of DB and
// Store is set, depending on database.driver.
type Persistence struct {
	DB    *gorm.DB
	Store *memory.Store
}

// DatabaseModule provides the configured store
var DatabaseModule = fx.Provide(NewPersistence)

// NewPersistence opens the database, or an in-process store for the memory driver,
// and seeds the demo catalogue when asked to
func NewPersistence(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*Persistence, error) {
	ctx := context.Background()

	if cfg.Database.Driver == "memory" {
		store := memory.NewStore()
		if cfg.Database.SeedDemoData {
			n, err := database.SeedRecipes(ctx, memory.NewRecipeRepository(store))
			if err != nil {
				return nil, fmt.Errorf("failed to seed memory store: %w", err)
			}
			log.Info("Seeded demo recipes", zap.Int("count", n))
		}
		log.Info("Using in-memory store")
		return &Persistence{Store: store}, nil
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return database.Close(db)
		},
	})

	if cfg.Database.SeedDemoData {
		n, err := database.Seed(ctx, db)
		if err != nil {
			log.Warn("Failed to seed database", zap.Error(err))
		} else if n > 0 {
			log.Info("Seeded demo recipes", zap.Int("count", n))
		}
	}

	return &Persistence{DB: db}, nil
}

// Ping checks the store is reachable
func (p *Persistence) Ping(ctx context.Context) error {
	if p.DB == nil {
		return nil
	}
	return database.Ping(ctx, p.DB)
}

// CacheBackend bundles the cache and, when Redis is enabled, its client
type CacheBackend struct {
	Cache  outbound.CacheRepository
	Client *redisrepo.Client
}

// CacheModule provides caching
var CacheModule = fx.Provide(
	NewCacheBackend,
	func(b *CacheBackend) outbound.CacheRepository { return b.Cache },
)

// NewCacheBackend connects to Redis when enabled and falls back to an
// in-process cache otherwise
func NewCacheBackend(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*CacheBackend, error) {
	if !cfg.Redis.Enabled {
		mem := memory.NewCacheRepository(cfg.Planner.CacheSweepInterval)
		lc.Append(fx.Hook{OnStop: func(context.Context) error {
			mem.Close()
			return nil
		}})
		log.Info("Using in-memory cache")
		return &CacheBackend{Cache: mem}, nil
	}

	client, err := redisrepo.NewClient(cfg.Redis, cfg.RedisAddr(), log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	lc.Append(fx.Hook{OnStop: func(context.Context) error {
		return client.Close()
	}})
	return &CacheBackend{Cache: redisrepo.NewCacheRepository(client, log), Client: client}, nil
}

// MonitoringModule provides metrics, tracing, events and health checks
var MonitoringModule = fx.Provide(
	monitoring.NewMetrics,
	func(m *monitoring.Metrics) outbound.MetricsRecorder { return m },
	NewTracing,
	NewEventPublisher,
	NewHealthCheck,
)

// NewTracing installs the tracer provider and flushes it on shutdown
func NewTracing(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*monitoring.TracingProvider, error) {
	tp, err := monitoring.NewTracingProvider(monitoring.TracingConfig{
		ServiceName:    cfg.App.Name,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		SamplingRate:   cfg.Monitoring.SamplingRate,
		Enabled:        cfg.Monitoring.EnableTracing,
		Exporter:       cfg.Monitoring.TraceExporter,
		OTLPEndpoint:   cfg.Monitoring.OTLPEndpoint,
		OTLPInsecure:   cfg.Monitoring.OTLPInsecure,
		Output:         os.Stderr,
	}, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{OnStop: tp.Shutdown})
	return tp, nil
}

// NewEventPublisher logs every domain event and also broadcasts it on
// Redis pub/sub when Redis is enabled
func NewEventPublisher(cfg *config.Config, backend *CacheBackend, log *zap.Logger) outbound.EventPublisher {
	logPublisher := events.NewLogPublisher(log)
	if backend.Client == nil {
		return logPublisher
	}
	return events.FanoutPublisher{
		logPublisher,
		redisrepo.NewEventPublisher(backend.Client, cfg.Redis.EventChannel, log),
	}
}

// NewHealthCheck registers a check per backing service
func NewHealthCheck(cfg *config.Config, p *Persistence, backend *CacheBackend, log *zap.Logger) *healthcheck.HealthCheck {
	hc := healthcheck.New(cfg.App.Version, log)
	hc.Register("database", healthcheck.NewPingChecker(p.Ping, true))
	if backend.Client != nil {
		hc.Register("redis", healthcheck.NewPingChecker(backend.Client.Ping, false))
	}
	return hc
}

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	NewRepositories,
	func(r *Repositories) outbound.RecipeRepository { return r.Recipes },
	func(r *Repositories) outbound.UserProfileRepository { return r.Profiles },
	func(r *Repositories) outbound.NutritionGoalRepository { return r.Goals },
	func(r *Repositories) outbound.DailyMenuRepository { return r.Menus },
	func(r *Repositories) outbound.MealPlanRepository { return r.Plans },
	func(r *Repositories) outbound.UnitOfWork { return r.UnitOfWork },
)

// Repositories holds the outbound adapters the services depend on
type Repositories struct {
	Recipes    outbound.RecipeRepository
	Profiles   outbound.UserProfileRepository
	Goals      outbound.NutritionGoalRepository
	Menus      outbound.DailyMenuRepository
	Plans      outbound.MealPlanRepository
	UnitOfWork outbound.UnitOfWork
}

// NewRepositories builds the repositories for the configured store. Recipe
// candidate pools are served through the cache.
func NewRepositories(cfg *config.Config, p *Persistence, c outbound.CacheRepository, log *zap.Logger) (*Repositories, error) {
	var repos Repositories
	switch {
	case p.DB != nil:
		repos = Repositories{
			Recipes:    gormrepo.NewRecipeRepository(p.DB),
			Profiles:   gormrepo.NewProfileRepository(p.DB),
			Goals:      gormrepo.NewGoalRepository(p.DB),
			Menus:      gormrepo.NewDailyMenuRepository(p.DB),
			Plans:      gormrepo.NewMealPlanRepository(p.DB),
			UnitOfWork: gormrepo.NewUnitOfWork(p.DB),
		}
	case p.Store != nil:
		repos = Repositories{
			Recipes:    memory.NewRecipeRepository(p.Store),
			Profiles:   memory.NewProfileRepository(p.Store),
			Goals:      memory.NewGoalRepository(p.Store),
			Menus:      memory.NewDailyMenuRepository(p.Store),
			Plans:      memory.NewMealPlanRepository(p.Store),
			UnitOfWork: memory.NewUnitOfWork(p.Store),
		}
	default:
		return nil, errors.New("no persistence configured")
	}

	repos.Recipes = cache.NewCachedRecipeRepository(repos.Recipes, c, cfg.Planner.CandidateCacheTTL, log)
	return &repos, nil
}

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	func(cfg *config.Config, profiles outbound.UserProfileRepository, goals outbound.NutritionGoalRepository, log *zap.Logger) *nutrition.TargetResolver {
		return nutrition.NewTargetResolver(profiles, goals, cfg.Planner.NutritionDefaults(), log)
	},
	nutrition.NewAggregator,
	NewMenuService,
	func(s *menu.Service) inbound.MenuService { return s },
	NewPlanService,
	func(s *plan.Orchestrator) inbound.PlanService { return s },
	fx.Annotate(
		recipe.NewRecipeService,
		fx.As(new(inbound.RecipeService)),
	),
	fx.Annotate(
		func(profiles outbound.UserProfileRepository, goals outbound.NutritionGoalRepository, resolver *nutrition.TargetResolver, c outbound.CacheRepository, log *zap.Logger) *user.ProfileService {
			return user.NewProfileService(profiles, goals, resolver, c, log)
		},
		fx.As(new(inbound.ProfileService)),
	),
	func(cfg *config.Config, c outbound.CacheRepository, log *zap.Logger) *security.TokenService {
		return security.NewTokenService(cfg.Auth, c, log)
	},
)

// NewMenuService assembles the suggestion engine and editor behind the menu use cases
func NewMenuService(
	cfg *config.Config,
	resolver *nutrition.TargetResolver,
	aggregator *nutrition.Aggregator,
	recipes outbound.RecipeRepository,
	profiles outbound.UserProfileRepository,
	menus outbound.DailyMenuRepository,
	uow outbound.UnitOfWork,
	metrics outbound.MetricsRecorder,
	publisher outbound.EventPublisher,
	log *zap.Logger,
) *menu.Service {
	p := cfg.Planner
	selector := menu.NewCandidateSelector(recipes, menu.SelectorConfig{
		RecentPenalty:   p.RecentPenalty,
		FrequencyWeight: p.FrequencyWeight,
		NoiseMax:        p.NoiseMax,
	}, nil)
	engine := menu.NewSuggestionEngine(resolver, selector, aggregator, profiles, menus,
		menu.SlotWeights{Breakfast: p.BreakfastWeight, Lunch: p.LunchWeight, Dinner: p.DinnerWeight},
		metrics, publisher, log)
	editor := menu.NewEditor(menus, uow, aggregator,
		menu.EditorConfig{FreezeWindowDays: p.FreezeWindowDays}, nil, metrics, publisher, log)

	return menu.NewService(engine, editor, menus, recipes,
		menu.UsageConfig{WindowDays: p.UsageWindowDays, RecentDays: p.RecentDays}, log)
}

// NewPlanService builds the plan orchestrator on top of the menu service
func NewPlanService(
	menus *menu.Service,
	plans outbound.MealPlanRepository,
	uow outbound.UnitOfWork,
	metrics outbound.MetricsRecorder,
	publisher outbound.EventPublisher,
	log *zap.Logger,
) *plan.Orchestrator {
	return plan.NewOrchestrator(menus, plans, uow, metrics, publisher, log)
}

// HTTPModule provides HTTP server and handlers
var HTTPModule = fx.Provide(
	handlers.NewMenuHandlers,
	handlers.NewPlanHandlers,
	handlers.NewRecipeHandlers,
	handlers.NewProfileHandlers,
	func(m *handlers.MenuHandlers, p *handlers.PlanHandlers, r *handlers.RecipeHandlers, pr *handlers.ProfileHandlers) server.Handlers {
		return server.Handlers{Menus: m, Plans: p, Recipes: r, Profiles: pr}
	},
	func(t *security.TokenService) middleware.TokenValidator { return t },
	server.NewServer,
)

// LifecycleModule provides lifecycle hooks
var LifecycleModule = fx.Invoke(
	RegisterLifecycleHooks,
)

// RegisterLifecycleHooks registers application lifecycle hooks. The tracing
// provider is requested so it is installed before the server starts.
func RegisterLifecycleHooks(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	cfg *config.Config,
	log *zap.Logger,
	srv *server.Server,
	_ *monitoring.TracingProvider,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting NutriPlan",
				zap.String("version", cfg.App.Version),
				zap.String("environment", cfg.App.Environment),
				zap.String("database_driver", cfg.Database.Driver),
				zap.Bool("redis", cfg.Redis.Enabled),
			)

			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("HTTP server stopped unexpectedly", zap.Error(err))
					_ = shutdowner.Shutdown()
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down NutriPlan")

			if err := srv.Shutdown(ctx); err != nil {
				log.Error("Failed to shutdown HTTP server", zap.Error(err))
			}

			_ = log.Sync()
			return nil
		},
	})
}
