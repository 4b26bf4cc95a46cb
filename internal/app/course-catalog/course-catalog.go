package coursecatalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/course-catalog/internal/cache"
	"github.com/magabrotheeeer/course-catalog/internal/catalog"
	"github.com/magabrotheeeer/course-catalog/internal/config"
	"github.com/magabrotheeeer/course-catalog/internal/entitlement"
	"github.com/magabrotheeeer/course-catalog/internal/lib/jwt"
	"github.com/magabrotheeeer/course-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/course-catalog/internal/migrations"
	"github.com/magabrotheeeer/course-catalog/internal/rabbitmq"
	"github.com/magabrotheeeer/course-catalog/internal/services/access"
	"github.com/magabrotheeeer/course-catalog/internal/services/admin"
	"github.com/magabrotheeeer/course-catalog/internal/services/catalogsync"
	"github.com/magabrotheeeer/course-catalog/internal/services/grantsweep"
	"github.com/magabrotheeeer/course-catalog/internal/storage/repository"
)

// App HTTP-приложение каталога вместе с подпиской на изменения.
type App struct {
	server      *http.Server
	logger      *slog.Logger
	db          *repository.Storage
	cache       *cache.Cache
	amqpConn    *amqp.Connection
	unsubscribe func()
	stopRelay   context.CancelFunc
}

// New поднимает хранилище, брокер и кэш, открывает подписку на каталог
// и собирает HTTP-сервер. Redis и RabbitMQ необязательны.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "app.New"

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.DB.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	app := &App{
		logger: logger,
		db:     db,
	}

	var publisher admin.EventPublisher
	var amqpPublisher *rabbitmq.Publisher
	if cfg.RabbitMQURL != "" {
		conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.amqpConn = conn
		ch, err := rabbitmq.SetupChannel(conn, nil)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		amqpPublisher = rabbitmq.NewPublisher(ch)
		publisher = amqpPublisher
	}

	var feed catalogsync.Feed
	switch cfg.ChangeFeed {
	case config.ChangeFeedRabbitMQ:
		feed = rabbitmq.NewFeed(app.amqpConn, logger)
		if cfg.RelayNotify {
			// Записи в базу в обход сервиса доходят до ленты через NOTIFY
			relayCtx, stop := context.WithCancel(ctx)
			app.stopRelay = stop
			source := repository.NewListener(cfg.StorageConnectionString, logger)
			go func() {
				err := rabbitmq.Relay(relayCtx, source, amqpPublisher, cfg.RabbitMQRetryDelay, logger)
				if err != nil && !errors.Is(err, context.Canceled) {
					logger.Error("catalog change relay stopped", slog.String("op", op), sl.Err(err))
				}
			}()
		}
	default:
		feed = repository.NewListener(cfg.StorageConnectionString, logger)
	}

	var checker access.Checker = entitlement.NewClient(cfg.EntitlementURL, &http.Client{})
	if cfg.AddressRedis != "" {
		cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		app.cache = cacheRedis
		checker = entitlement.NewCachedChecker(checker, cacheRedis, cfg.CacheTTL, logger)
	}

	// Разрешения на удалённые курсы сбрасываются по событиям брокера
	if app.amqpConn != nil && app.cache != nil {
		ch, err := rabbitmq.SetupChannel(app.amqpConn, []rabbitmq.QueueConfig{
			{QueueName: grantsweep.QueueName, RoutingKey: grantsweep.RoutingKey},
		})
		if err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		sweeper := grantsweep.New(app.cache, logger)
		if err := rabbitmq.ConsumerMessage(ctx, ch, grantsweep.QueueName, logger, sweeper.Handle); err != nil {
			app.close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	store := catalog.NewStore()
	app.unsubscribe = catalogsync.NewService(db, feed, logger).Subscribe(
		store.Replace,
		func(err error) {
			logger.Error("catalog subscription stopped", slog.String("op", op), sl.Err(err))
			store.Fail(err)
		},
	)

	gate := access.NewGate(checker, cfg.CheckTimeout, cfg.FailClosed, logger)
	ops := admin.NewOps(store, db, publisher, logger)
	tokens := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	openLimiter := rate.NewLimiter(rate.Limit(cfg.OpenRateLimit), cfg.OpenRateBurst)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, store, gate, ops, tokens, openLimiter)

	app.server = &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return app, nil
}

// Run запускает HTTP-сервер и блокируется до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	if a.stopRelay != nil {
		a.stopRelay()
	}
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close redis", sl.Err(err))
		}
	}
	if a.amqpConn != nil {
		if err := a.amqpConn.Close(); err != nil {
			a.logger.Warn("failed to close rabbitmq connection", sl.Err(err))
		}
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn("failed to close database", sl.Err(err))
	}
}
