package http

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	feedbackUsecases "github.com/pulse-inc/pulse/internal/application/feedback/usecases"
	"github.com/pulse-inc/pulse/internal/application/integration/usecases"
	"github.com/pulse-inc/pulse/internal/domain/integration"
	"github.com/pulse-inc/pulse/internal/infrastructure/auth"
	"github.com/pulse-inc/pulse/internal/infrastructure/cache"
	"github.com/pulse-inc/pulse/internal/infrastructure/config"
	"github.com/pulse-inc/pulse/internal/infrastructure/crypto"
	"github.com/pulse-inc/pulse/internal/infrastructure/database"
	"github.com/pulse-inc/pulse/internal/infrastructure/metrics"
	"github.com/pulse-inc/pulse/internal/infrastructure/ratelimit"
	"github.com/pulse-inc/pulse/internal/infrastructure/repository"
	"github.com/pulse-inc/pulse/internal/interfaces/http/handlers"
	"github.com/pulse-inc/pulse/internal/interfaces/http/middleware"
	"github.com/pulse-inc/pulse/internal/shared/logger"
	"github.com/pulse-inc/pulse/internal/shared/services/markdown"
)

// Container holds all infrastructure components, use cases and handlers,
// wires them together and releases them in Shutdown.
type Container struct {
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	registry *prometheus.Registry
	recorder metrics.Recorder

	grantRepo  integration.GrantRepository
	stateStore usecases.StateStore
	limiter    ratelimit.Limiter

	ucs   *allUseCases
	hdlrs *allHandlers
}

type allUseCases struct {
	exchange     *usecases.ExchangeOAuthCodeUseCase
	status       *usecases.GetConnectionStatusUseCase
	connect      *usecases.InitiateOAuthConnectUseCase
	listGrants   *usecases.ListGrantsUseCase
	integrations *usecases.ListIntegrationsUseCase
	dashboard    *feedbackUsecases.GetDashboardUseCase
}

type allHandlers struct {
	healthHandler    *handlers.HealthHandler
	slackHandler     *handlers.SlackHandler
	dashboardHandler *handlers.DashboardHandler
	oauthRateLimiter *middleware.RateLimiter
}

// NewContainer wires every dependency. db may be nil when database.driver is memory.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	if err := c.initUseCases(); err != nil {
		return nil, err
	}
	c.initHandlers()

	return c, nil
}

func (c *Container) initInfrastructure() error {
	if c.cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     c.cfg.Redis.GetAddr(),
			Password: c.cfg.Redis.Password,
			DB:       c.cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		c.redis = client
		c.log.Infow("redis connection established", "addr", c.cfg.Redis.GetAddr())
	}

	if c.db == nil {
		c.log.Warnw("no database configured, grants are kept in memory and lost on restart")
		c.grantRepo = repository.NewMemoryGrantRepository()
	} else {
		cipher, err := crypto.NewTokenCipher(c.cfg.Security.TokenEncryptionKey)
		if err != nil {
			return fmt.Errorf("invalid token encryption key: %w", err)
		}
		c.grantRepo = repository.NewOAuthGrantRepository(c.db, cipher, logger.WithComponent("grant-repository"))
	}

	switch {
	case c.cfg.OAuth.State.Backend == "redis" && c.redis != nil:
		c.stateStore = cache.NewRedisStateStore(c.redis, cache.DefaultStatePrefix, c.cfg.OAuth.State.TTL())
	default:
		c.stateStore = auth.NewJWTStateStore(c.cfg.OAuth.State.Secret, c.cfg.OAuth.State.TTL())
	}

	if c.cfg.RateLimit.Enabled {
		limitCfg := ratelimit.Config{Requests: c.cfg.RateLimit.Requests, Window: c.cfg.RateLimit.Window()}
		if c.redis != nil {
			c.limiter = ratelimit.NewRedisLimiter(c.redis, limitCfg)
		} else {
			c.limiter = ratelimit.NewMemoryLimiter(limitCfg)
		}
	}

	if c.cfg.Metrics.Enabled {
		c.registry = prometheus.NewRegistry()
		c.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		c.recorder = metrics.New(c.registry)
	} else {
		c.recorder = metrics.NewNoop()
	}

	return nil
}

func (c *Container) initUseCases() error {
	slackCfg := c.cfg.OAuth.Slack

	identityScope, err := integration.ParseIdentityScope(slackCfg.IdentityScope)
	if err != nil {
		return err
	}

	slackClient := auth.NewSlackOAuthClient(auth.SlackOAuthConfig{
		ClientID:     slackCfg.ClientID,
		ClientSecret: slackCfg.ClientSecret,
		RedirectURL:  c.defaultRedirectURL(),
		Scopes:       slackCfg.Scopes,
		UserScopes:   slackCfg.UserScopes,
		Timeout:      slackCfg.HTTPTimeout(),
	}, nil)

	feedbackRepo, err := repository.NewSeedFeedbackRepository(c.cfg.Dashboard.SeedFile)
	if err != nil {
		return fmt.Errorf("failed to load feedback seed: %w", err)
	}

	status := usecases.NewGetConnectionStatusUseCase(c.grantRepo, c.recorder, logger.WithComponent("connection-status"))

	c.ucs = &allUseCases{
		exchange: usecases.NewExchangeOAuthCodeUseCase(
			slackClient, c.stateStore, c.grantRepo, identityScope, slackCfg.GrantTTL(), c.recorder,
			logger.WithComponent("oauth-exchange"),
		),
		status:       status,
		connect:      usecases.NewInitiateOAuthConnectUseCase(slackClient, c.stateStore, c.defaultRedirectURL(), logger.WithComponent("oauth-connect")),
		listGrants:   usecases.NewListGrantsUseCase(c.grantRepo, c.log),
		integrations: usecases.NewListIntegrationsUseCase(status, c.log),
		dashboard: feedbackUsecases.NewGetDashboardUseCase(
			feedbackRepo, markdown.NewMarkdownService(), c.cfg.Dashboard.DefaultDays, logger.WithComponent("dashboard"),
		),
	}
	return nil
}

func (c *Container) initHandlers() {
	var pinger handlers.DatabasePinger
	if c.db != nil {
		pinger = func(ctx context.Context) error { return database.Ping(ctx, c.db) }
	}

	var oauthLimiter *middleware.RateLimiter
	if c.limiter != nil {
		oauthLimiter = middleware.NewRateLimiter(c.limiter, "oauth", c.cfg.RateLimit.Window(), c.log)
	}

	c.hdlrs = &allHandlers{
		healthHandler: handlers.NewHealthHandler(pinger, c.ucs.status, c.log),
		slackHandler: handlers.NewSlackHandler(
			c.ucs.exchange, c.ucs.status, c.ucs.connect, c.ucs.listGrants,
			markdown.NewMarkdownService(), c.cfg.Server.GetAllowedOrigins(), logger.WithComponent("slack-handler"),
		),
		dashboardHandler: handlers.NewDashboardHandler(c.ucs.dashboard, c.ucs.integrations, c.log),
		oauthRateLimiter: oauthLimiter,
	}
}

// defaultRedirectURL falls back to the frontend settings page, where the
// original dashboard registered its Slack redirect.
func (c *Container) defaultRedirectURL() string {
	if c.cfg.OAuth.Slack.RedirectURL != "" {
		return c.cfg.OAuth.Slack.RedirectURL
	}
	return c.cfg.Server.FrontendURL + "/settings"
}

// Engine returns the Gin engine
func (c *Container) Engine() *gin.Engine {
	return c.engine
}

// Shutdown releases connections owned by the container. The database is
// owned by the caller.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
