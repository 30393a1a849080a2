// Package pck wires every concrete adapter into the ports the application
// and presentation layers depend on — the composition root, built once in
// main and threaded through instead of each package reaching for globals.
package pck

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	flashsaleservice "flashsale/internal/flashsale/domain/service"

	"flashsale/internal/flashsale/domain/ratelimit"
	"flashsale/internal/flashsale/application/usecase"
	flashsalehttp "flashsale/internal/flashsale/presentation/http"
	flashsalemessaging "flashsale/internal/flashsale/infra/messaging"
	"flashsale/internal/flashsale/infra/persistence"
	"flashsale/internal/flashsale/infra/queue"
	"flashsale/internal/flashsale/infra/statusstore"
	"flashsale/internal/flashsale/infra/worker"
	"flashsale/internal/flashsale/infra/wsstatus"

	productapp "flashsale/internal/product/application"
	productinfra "flashsale/internal/product/infra"
	producthttp "flashsale/internal/product/presentation/http"

	userapp "flashsale/internal/user/application"
	userinfra "flashsale/internal/user/infra"
	userhttp "flashsale/internal/user/presentation/http"
	"flashsale/internal/user/token"

	"flashsale/shared/config"
	"flashsale/shared/infra/cache"
	"flashsale/shared/infra/database"
	sharedmessaging "flashsale/shared/infra/messaging"
	"flashsale/shared/metrics"
)

// Container holds every wired component the process needs for the
// lifetime of a run: the database handle, the background worker, and the
// presentation-layer handlers mounted by main.
type Container struct {
	Config   *config.Config
	Log      *zap.Logger
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	DB database.Database

	Queue       *queue.Queue
	StatusStore *statusstore.Store
	Worker      *worker.Worker
	WSRegistry  *wsstatus.Registry

	FlashSaleHandler *flashsalehttp.Handler
	UserHandler      *userhttp.Handler
	ProductHandler   *producthttp.Handler

	redisClient *redis.Client
	rawDB       *sqlx.DB
}

// New builds the full dependency graph from configuration. The caller owns
// calling Start/Close on the returned Container.
func New(cfg *config.Config, log *zap.Logger) (*Container, error) {
	rawDB, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	rawDB.SetMaxOpenConns(cfg.DBPoolSize)

	db := database.NewSqlxDatabase(rawDB)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	var limiter ratelimit.Limiter
	var redisClient *redis.Client
	if cfg.RedisRateLimiter && cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		limiter = ratelimit.NewRedisLimiter(redisClient, cfg.RateLimitRPS)
	} else {
		limiter = ratelimit.NewInMemoryLimiter(cfg.RateLimitRPS)
	}

	var productCache cache.CacheHandler
	if cfg.RedisAddr != "" {
		if redisClient == nil {
			redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		}
		productCache = cache.NewRedisCacheHandler(redisClient)
	}

	q := queue.New(cfg.QueueCapacity)
	store := statusstore.New()

	flashSaleRepo := persistence.NewFlashSaleRepository()
	orderRepo := persistence.NewOrderRepository()
	fulfillment := flashsaleservice.NewFulfillmentService(flashSaleRepo, orderRepo)

	var publisher flashsalemessaging.EventPublisher = flashsalemessaging.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		mqCfg := sharedmessaging.NewMessageHandlerConfigFromEnv()
		mqCfg.URL = cfg.RabbitMQURL
		handler, err := sharedmessaging.NewRabbitMQMessageHandler(mqCfg)
		if err != nil {
			log.Warn("failed to connect to rabbitmq, falling back to noop publisher", zap.Error(err))
		} else {
			publisher = flashsalemessaging.NewRabbitMQPublisher(handler, cfg.RabbitMQExchange, log)
		}
	}

	workerCfg := worker.DefaultConfig()
	workerCfg.MaxRetries = uint64(cfg.FulfillmentMaxRetries)
	w := worker.New(workerCfg, q, db, fulfillment, store, publisher, m, log)

	admit := usecase.NewAdmitOrderUseCase(limiter, q, store, m)
	getStatus := usecase.NewGetOrderStatusUseCase(store)
	flashSaleHandler := flashsalehttp.NewHandler(admit, getStatus, log)

	wsRegistry := wsstatus.NewRegistry(store, log)

	userRepo := userinfra.NewRepository()
	tokens := token.NewService(cfg.JWTSecret, 0)
	registerUC := userapp.NewRegisterUserUseCase(userRepo, db)
	loginUC := userapp.NewLoginUseCase(userRepo, db)
	userHandler := userhttp.NewHandler(registerUC, loginUC, tokens)

	productRepo := productinfra.NewRepository()
	productUC := productapp.NewProductUseCase(productRepo, db, productCache)
	productHandler := producthttp.NewHandler(productUC)

	return &Container{
		Config:           cfg,
		Log:              log,
		Registry:         reg,
		Metrics:          m,
		DB:               db,
		Queue:            q,
		StatusStore:      store,
		Worker:           w,
		WSRegistry:       wsRegistry,
		FlashSaleHandler: flashSaleHandler,
		UserHandler:      userHandler,
		ProductHandler:   productHandler,
		redisClient:      redisClient,
		rawDB:            rawDB,
	}, nil
}

// Start launches the background worker. Call once, after New.
func (c *Container) Start(ctx context.Context) {
	c.Worker.Start(ctx)
}

// Close stops the worker and releases the database/redis connections. The
// queue is closed first so the worker's receive loop drains whatever is
// still buffered and returns as soon as it empties, instead of Stop()
// blocking on a channel that never closes.
func (c *Container) Close() error {
	c.Queue.Close()
	c.Worker.Stop()

	if c.redisClient != nil {
		_ = c.redisClient.Close()
	}
	return c.rawDB.Close()
}
