package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"interview-service/internal/config"
	feat "interview-service/internal/features"
	"interview-service/internal/handler"
	"interview-service/internal/repo"
	"interview-service/internal/verify"
	"interview-service/pkg/broker"
	"interview-service/pkg/database/client"
	logging "interview-service/pkg/logger/pkg"
	rabbit "interview-service/pkg/rabbit/pkg"
	redispkg "interview-service/pkg/redis/pkg"
	"interview-service/schema"
)

const shutdownTimeout = 10 * time.Second

func Execute() {
	if err := config.Load(os.Getenv("CONFIG_PATH")); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger, err := logging.InitLogger(logging.ReadConfig())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	repository, err := openRepository(ctx, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.Error(err))
	}
	defer repository.Close()

	bus, err := openBroker(ctx, logger)
	if err != nil {
		logger.Fatal("Failed to connect to message bus", zap.Error(err))
	}
	defer bus.Close()

	configs := feat.NewConfigService(repository.Configs, logger)
	services := handler.Services{
		Configs:    configs,
		Interviews: feat.NewInterviewService(repository.Interviews, configs, logger),
		Results:    feat.NewResultService(repository.Results, logger),
		Reports:    feat.NewReportService(repository.Reports, logger),
		Questions:  feat.NewQuestionService(repository.Questions, logger),
	}

	timeout := viper.GetDuration("bus.request_timeout")
	pool := feat.NewEmitterPool(bus,
		viper.GetInt("bus.emit_workers"),
		viper.GetInt("bus.emit_queue_size"),
		timeout,
		logger)
	pool.Start()

	h := handler.New(handler.Config{
		CORSOrigin:  viper.GetString("server.cors_origin"),
		Environment: viper.GetString("server.environment"),
	}, services, verify.New(bus, timeout, logger), pool, logger)
	h.RegisterBus(bus)

	go func() {
		if err := bus.Listen(ctx); err != nil {
			logger.Error("Message bus listener stopped", zap.Error(err))
		}
	}()

	grpcServer, err := startGRPC(ctx, logger, repository, bus)
	if err != nil {
		logger.Fatal("Failed to start gRPC server", zap.Error(err))
	}
	gateway, err := startGateway(logger, h)
	if err != nil {
		logger.Fatal("Failed to start HTTP gateway", zap.Error(err))
	}
	sse := startSSE(logger)

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("Shutting down", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := gateway.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP gateway shutdown error", zap.Error(err))
	}
	if err := sse.Shutdown(shutdownCtx); err != nil {
		logger.Error("SSE server shutdown error", zap.Error(err))
	}
	grpcServer.GracefulStop()
	pool.Stop()
	cancel()
	logger.Info("Shutdown complete", zap.Any("notifications", pool.GetMetrics()))
}

func openRepository(ctx context.Context, logger *zap.Logger) (*repo.Repository, error) {
	cfg := client.ReadConfig()
	if cfg.Driver == client.DriverMemory {
		logger.Warn("Using in-memory store, data is lost on restart")
		return repo.NewMemory(), nil
	}

	drv, err := client.Open(cfg.Driver+"_interviews", cfg)
	if err != nil {
		return nil, err
	}
	if err := drv.DB().PingContext(ctx); err != nil {
		drv.Close()
		return nil, err
	}

	if cfg.Migrate {
		if err := schema.Migrate(ctx, drv.DB(), drv.Dialect()); err != nil {
			drv.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		logger.Info("Database schema is up to date", zap.String("dialect", drv.Dialect()))
	}
	return repo.New(drv), nil
}

func openBroker(ctx context.Context, logger *zap.Logger) (broker.Broker, error) {
	transport := viper.GetString("bus.transport")
	logger.Info("Connecting to message bus", zap.String("transport", transport))

	switch transport {
	case "redis":
		cfg := redispkg.ReadConfig()
		var rdb *goredis.Client
		err := broker.Retry(ctx, viper.GetInt("bus.retry_attempts"), viper.GetDuration("bus.retry_delay"), func() error {
			c, err := redispkg.New(ctx, cfg)
			if err != nil {
				return err
			}
			rdb = c
			return nil
		})
		if err != nil {
			return nil, err
		}
		return redispkg.NewBus(rdb), nil
	case "rabbitmq":
		r, err := rabbit.New(ctx, rabbit.ReadConfig())
		if err != nil {
			return nil, err
		}
		return r, nil
	case "local":
		logger.Warn("Using in-process message bus, foreign references cannot be verified")
		return broker.NewLocal(), nil
	default:
		return nil, fmt.Errorf("unsupported bus transport %q", transport)
	}
}
