package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/config"
	"github.com/Ramsey-B/fern/internal/repositories/trainedstep"
	trainedstepsvc "github.com/Ramsey-B/fern/internal/services/trainedstep"
	"github.com/Ramsey-B/fern/pkg/cache"
	"github.com/Ramsey-B/fern/pkg/database"
	"github.com/Ramsey-B/fern/pkg/kafka"
	"github.com/Ramsey-B/fern/pkg/loader"
	"github.com/Ramsey-B/fern/pkg/logging"
	"github.com/Ramsey-B/fern/pkg/middleware"
	"github.com/Ramsey-B/fern/pkg/processor"
	"github.com/Ramsey-B/fern/pkg/routes/health"
	stepsroutes "github.com/Ramsey-B/fern/pkg/routes/steps"
	"github.com/Ramsey-B/fern/pkg/startup"
	"github.com/Ramsey-B/fern/pkg/tracing"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

const version = "0.1.0"

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	var envFiles []string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the Kafka bake consumer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(envFiles...)
			if err != nil {
				return err
			}

			logger, err := logging.NewZapLogger(cfg.LogLevel, cfg.PrettyLogs)
			if err != nil {
				return err
			}
			logging.SetLogger(logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return newServer(cfg, logger).run(ctx)
		},
	}

	cmd.Flags().StringSliceVar(&envFiles, "env-file", nil, "env files to load before reading the environment")

	return cmd
}

// server owns every long-lived dependency of the API process.
type server struct {
	cfg     config.Config
	logger  ectologger.Logger
	checker *health.Checker
	startup *startup.Startup

	db       database.DB
	rdb      *redis.Client
	docs     *cache.DocumentCache
	loader   *loader.Loader
	producer *kafka.Producer
	consumer *kafka.Consumer
	echo     *echo.Echo
}

func newServer(cfg config.Config, logger ectologger.Logger) *server {
	s := &server{
		cfg:     cfg,
		logger:  logger,
		checker: health.NewChecker(version),
		startup: startup.NewStartup(logger, cfg.StartupMaxAttempts),
	}

	storeDeps := []string{}
	if cfg.DatabaseEnabled() {
		s.startup.AddDependency(&startup.Dependency{Name: "database", StartFn: s.startDatabase, StopFn: s.stopDatabase})
		storeDeps = append(storeDeps, "database")
	}
	if cfg.RedisEnabled() {
		s.startup.AddDependency(&startup.Dependency{Name: "redis", StartFn: s.startRedis, StopFn: s.stopRedis})
		storeDeps = append(storeDeps, "redis")
	}
	s.startup.AddDependency(&startup.Dependency{Name: "loader", Requires: storeDeps, StartFn: s.startLoader})
	if cfg.KafkaConsumerEnabled {
		s.startup.AddDependency(&startup.Dependency{Name: "kafka", Requires: []string{"loader"}, StartFn: s.startKafka, StopFn: s.stopKafka})
	}
	s.startup.AddDependency(&startup.Dependency{Name: "http", Requires: []string{"loader"}, StartFn: s.startHTTP, StopFn: s.stopHTTP})

	return s
}

func (s *server) run(ctx context.Context) error {
	if s.cfg.TracingEnabled {
		shutdown := tracing.NewProvider(s.cfg.AppName, &tracing.LogExporter{Logger: s.logger})
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				s.logger.WithError(err).Warn("failed to shut down tracer provider")
			}
		}()
	}

	if err := s.startup.Start(ctx); err != nil {
		s.logger.WithError(err).Error("startup failed")
		s.shutdown()
		return err
	}

	s.checker.SetReady(true)
	s.logger.Infof("%s listening on :%d", s.cfg.AppName, s.cfg.Port)

	<-ctx.Done()
	s.logger.Info("shutting down")
	s.checker.SetReady(false)

	return s.shutdown()
}

func (s *server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.startup.Stop(ctx)
}

func (s *server) startDatabase(ctx context.Context) error {
	db, err := database.Open(ctx, database.Options{
		URL:             s.cfg.DatabaseURL(),
		MaxOpenConns:    s.cfg.DatabaseMaxOpenConns,
		MaxIdleConns:    s.cfg.DatabaseMaxIdleConns,
		ConnMaxLifetime: s.cfg.DatabaseConnMaxLifetime,
	}, s.logger)
	if err != nil {
		return err
	}

	migrations := database.NewMigrationService(s.logger, &database.MigrationConfig{
		MigrationFolderPath: s.cfg.DatabaseMigrationFolderPath,
		DatabaseName:        s.cfg.DatabaseName,
		Version:             uint(max(s.cfg.DatabaseMigrationVersion, 0)),
		Force:               s.cfg.DatabaseMigrationForce,
		AutoRollback:        s.cfg.DatabaseMigrationAutoRollback,
	})
	if err := migrations.Migrate(db.SQL()); err != nil {
		db.Close()
		return err
	}

	s.db = db
	s.checker.AddCheck("database", true, db.PingContext)
	return nil
}

func (s *server) stopDatabase(context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *server) startRedis(ctx context.Context) error {
	rdb, err := cache.NewClient(ctx, cache.Config{
		Host:     s.cfg.RedisHost,
		Port:     s.cfg.RedisPort,
		Password: s.cfg.RedisPassword,
		DB:       s.cfg.RedisDB,
	}, s.logger)
	if err != nil {
		return err
	}

	s.rdb = rdb
	s.docs = cache.NewDocumentCache(rdb, s.cfg.RedisCacheTTL, s.logger)
	// the loader falls back to the database when redis is down
	s.checker.AddCheck("redis", false, s.docs.Ping)
	return nil
}

func (s *server) stopRedis(context.Context) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}

func (s *server) startLoader(context.Context) error {
	var repo loader.Repository = loader.NewMemoryRepository()
	if s.db != nil {
		repo = trainedstep.NewRepository(s.db, s.logger)
	} else {
		s.logger.Warn("no database configured, trained steps are kept in memory")
	}

	var shared loader.SharedCache
	if s.docs != nil {
		shared = s.docs
	}

	s.loader = loader.NewLoader(repo, shared, loader.Config{
		MaxSize: s.cfg.StepCacheMaxSize,
		TTL:     time.Duration(s.cfg.StepCacheTTLSeconds) * time.Second,
	}, s.logger)
	return nil
}

func (s *server) startKafka(ctx context.Context) error {
	producerCfg := kafka.DefaultProducerConfig()
	producerCfg.Brokers = s.cfg.KafkaBrokers
	producerCfg.Topic = s.cfg.KafkaOutputTopic
	producerCfg.ErrorTopic = s.cfg.KafkaErrorTopic
	producerCfg.BatchSize = s.cfg.KafkaBatchSize
	producerCfg.BatchTimeout = time.Duration(s.cfg.KafkaBatchTimeout) * time.Millisecond
	producerCfg.RequiredAcks = s.cfg.KafkaRequiredAcks
	producerCfg.Compression = s.cfg.KafkaCompression

	producer, err := kafka.NewProducer(producerCfg, s.logger)
	if err != nil {
		return err
	}

	consumerCfg := kafka.DefaultConsumerConfig()
	consumerCfg.Brokers = s.cfg.KafkaBrokers
	consumerCfg.Topic = s.cfg.KafkaInputTopic
	consumerCfg.GroupID = s.cfg.KafkaConsumerGroup
	consumerCfg.Concurrency = s.cfg.ProcessorWorkerCount

	consumer, err := kafka.NewConsumer(consumerCfg, s.logger)
	if err != nil {
		producer.Close()
		return err
	}

	proc := processor.NewProcessor(processor.ProcessorConfig{
		ProcessTimeout: time.Duration(s.cfg.ProcessorTimeoutSeconds) * time.Second,
	}, trainedstepsvc.NewService(s.loader, s.logger), producer, s.logger)

	if err := consumer.Start(ctx, proc.MessageHandler()); err != nil {
		producer.Close()
		return err
	}

	s.producer = producer
	s.consumer = consumer
	return nil
}

func (s *server) stopKafka(context.Context) error {
	var firstErr error
	if s.consumer != nil {
		firstErr = s.consumer.Stop()
	}
	if s.producer != nil {
		if err := s.producer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *server) startHTTP(context.Context) error {
	s.echo = s.newEcho()

	errCh := make(chan error, 1)
	go func() {
		if err := s.echo.Start(fmt.Sprintf(":%d", s.cfg.Port)); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// surface bind failures to startup
	select {
	case err := <-errCh:
		return err
	case <-time.After(100 * time.Millisecond):
		return nil
	}
}

func (s *server) stopHTTP(ctx context.Context) error {
	if s.echo == nil {
		return nil
	}
	return s.echo.Shutdown(ctx)
}

func (s *server) newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.Error(s.logger)

	e.Server.ReadTimeout = time.Duration(s.cfg.HttpServerReadTimeoutSeconds) * time.Second
	e.Server.WriteTimeout = time.Duration(s.cfg.HttpServerWriteTimeoutSeconds) * time.Second
	e.Server.IdleTimeout = time.Duration(s.cfg.HttpServerIdleTimeoutSeconds) * time.Second

	e.Use(echomw.Recover())
	e.Use(otelecho.Middleware(s.cfg.AppName))
	e.Use(echomw.BodyLimit(s.cfg.MaxBodySize))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: s.cfg.AllowOrigins}))
	e.Use(middleware.Context())
	e.Use(middleware.Logger(s.logger))

	s.checker.RegisterRoutes(e)
	stepsroutes.NewHandler(trainedstepsvc.NewService(s.loader, s.logger)).RegisterRoutes(e)

	return e
}
