package cmd

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/adsc/report-system/internal/api"
	"github.com/adsc/report-system/internal/api/handler"
	"github.com/adsc/report-system/internal/api/metrics"
	"github.com/adsc/report-system/internal/core/ports"
	"github.com/adsc/report-system/internal/core/service"
	"github.com/adsc/report-system/internal/infrastructure/config"
	mongodb "github.com/adsc/report-system/internal/infrastructure/db/mongo"
	redisdb "github.com/adsc/report-system/internal/infrastructure/db/redis"
	"github.com/adsc/report-system/internal/infrastructure/queue"
	"github.com/adsc/report-system/pkg/logger"
)

const connectAttempts = 5

// backends are the connections shared by every command.
type backends struct {
	mongoClient *mongo.Client
	db          *mongo.Database
	redis       *goredis.Client
}

// connectBackends dials MongoDB and, when withRedis is set, Redis. Each dial
// is retried with exponential backoff so the service can start alongside its
// dependencies.
func connectBackends(ctx context.Context, cfg *config.Config, log zerolog.Logger, withRedis bool) (*backends, error) {
	b := &backends{}

	err := withRetry(ctx, log, "mongodb", func(ctx context.Context) error {
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Timeout:  cfg.Mongo.Timeout,
		})
		if err != nil {
			return err
		}
		b.mongoClient, b.db = client, db
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	if !withRedis {
		return b, nil
	}
	err = withRetry(ctx, log, "redis", func(ctx context.Context) error {
		client, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		b.redis = client
		return nil
	})
	if err != nil {
		b.close(log)
		return nil, err
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	return b, nil
}

func withRetry(ctx context.Context, log zerolog.Logger, name string, dial func(context.Context) error) error {
	backoff := retry.WithMaxRetries(connectAttempts-1, retry.NewExponential(500*time.Millisecond))
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		if err := dial(ctx); err != nil {
			log.Warn().Err(err).Str("backend", name).Int("attempt", attempt).Msg("connection failed")
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("connect %s: %w", name, err)
	}
	return nil
}

func (b *backends) close(log zerolog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if b.redis != nil {
		if err := b.redis.Close(); err != nil {
			log.Error().Err(err).Msg("redis close")
		}
	}
	if b.mongoClient != nil {
		if err := b.mongoClient.Disconnect(ctx); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect")
		}
	}
}

// repositories groups the Mongo stores.
type repositories struct {
	users    *mongodb.UserRepository
	reports  *mongodb.ReportRepository
	roles    *mongodb.RoleRepository
	activity *mongodb.ActivityRepository
	goals    *mongodb.GoalRepository
}

func newRepositories(db *mongo.Database) repositories {
	return repositories{
		users:    mongodb.NewUserRepository(db),
		reports:  mongodb.NewReportRepository(db),
		roles:    mongodb.NewRoleRepository(db),
		activity: mongodb.NewActivityRepository(db),
		goals:    mongodb.NewGoalRepository(db),
	}
}

func (r repositories) indexers() []mongodb.Indexer {
	return []mongodb.Indexer{r.users, r.reports, r.roles, r.activity, r.goals}
}

// application is the fully wired service graph.
type application struct {
	dispatcher *queue.Dispatcher
	auth       *service.AuthService
	router     api.Dependencies
}

func newApplication(cfg *config.Config, b *backends) *application {
	repos := newRepositories(b.db)

	activity := service.NewActivityService(repos.activity, logger.For("activity"))
	dispatcher := queue.NewDispatcher(cfg.Activity.Workers, activity, metrics.ActivityObserver{}, logger.For("dispatcher"))

	resolver := service.NewPermissionResolver(repos.roles, redisdb.NewPermissionCache(b.redis, cfg.Security.PermissionCacheTTL), logger.For("permissions"))
	lockout := redisdb.NewLockout(b.redis, redisdb.LockoutPolicy{
		MaxAttempts: cfg.Security.LockoutAttempts,
		Window:      cfg.Security.LockoutWindow,
		LockFor:     cfg.Security.LockoutDuration,
	})

	auth := service.NewAuthService(repos.users, lockout, dispatcher, cfg.JWTSecret, cfg.TokenTTL, logger.For("auth"))
	reports := service.NewReportService(repos.reports, repos.roles, dispatcher, logger.For("reports"))

	return &application{
		dispatcher: dispatcher,
		auth:       auth,
		router: api.Dependencies{
			Auth:      auth,
			Reports:   reports,
			Analytics: service.NewAnalyticsService(reports),
			Goals:     service.NewGoalService(repos.goals, reports),
			Users:     service.NewUserService(repos.users, repos.roles, dispatcher, logger.For("users")),
			Roles:     service.NewRoleService(repos.roles, repos.users, resolver, dispatcher, logger.For("roles")),
			Activity:  activity,
			Resolver:  resolver,
			UserStore: repos.users,
			Limiter:   redisdb.NewRateLimiter(b.redis),
			Health: map[string]handler.DependencyCheck{
				"mongodb": func(ctx context.Context) error { return b.mongoClient.Ping(ctx, nil) },
				"redis":   func(ctx context.Context) error { return b.redis.Ping(ctx).Err() },
			},
			JWTSecret: cfg.JWTSecret,
			Limits: api.RateLimits{
				LoginLimit:     cfg.Security.LoginRateLimit,
				LoginWindow:    cfg.Security.LoginRateWindow,
				RegisterLimit:  cfg.Security.RegisterRateLimit,
				RegisterWindow: cfg.Security.RegisterRateWindow,
			},
			Logger: logger.For("http"),
		},
	}
}

func adminSeed(cfg *config.Config) ports.AdminSeed {
	return ports.AdminSeed{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
		Email:    cfg.Admin.Email,
	}
}
