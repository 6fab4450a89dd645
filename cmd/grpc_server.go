package cmd

import (
	"context"
	"net"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const healthInterval = 15 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

// startGRPC serves the standard health service and reflection. The serving
// status follows the liveness of the store and the bus.
func startGRPC(ctx context.Context, logger *zap.Logger, deps ...pinger) (*grpc.Server, error) {
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	grpcListener, err := net.Listen("tcp", viper.GetString("server.host")+":"+viper.GetString("server.port"))
	if err != nil {
		return nil, err
	}

	go func() {
		logger.Info("Starting gRPC server", zap.String("port", viper.GetString("server.port")))
		if err := grpcServer.Serve(grpcListener); err != nil {
			logger.Error("gRPC server stopped", zap.Error(err))
		}
	}()

	go watchHealth(ctx, logger, healthServer, deps)
	return grpcServer, nil
}

func watchHealth(ctx context.Context, logger *zap.Logger, hs *health.Server, deps []pinger) {
	ticker := time.NewTicker(healthInterval)
	defer ticker.Stop()

	for {
		st := healthpb.HealthCheckResponse_SERVING
		for _, d := range deps {
			pingCtx, cancel := context.WithTimeout(ctx, healthInterval/3)
			err := d.Ping(pingCtx)
			cancel()
			if err != nil {
				logger.Warn("Dependency is not healthy", zap.Error(err))
				st = healthpb.HealthCheckResponse_NOT_SERVING
				break
			}
		}
		hs.SetServingStatus("", st)

		select {
		case <-ctx.Done():
			hs.Shutdown()
			return
		case <-ticker.C:
		}
	}
}
