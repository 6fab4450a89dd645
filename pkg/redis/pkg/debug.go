package redis

import (
	"context"

	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	logging "interview-service/pkg/logger/pkg"
)

// debugHook logs every command at debug level when enabled.
type debugHook struct {
	enabled bool
}

func (h *debugHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h *debugHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if h.enabled {
			logging.Logger(ctx).Debug("redis command", zap.String("cmd", cmd.Name()), zap.Any("args", cmd.Args()), zap.Error(err))
		}
		return err
	}
}

func (h *debugHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if h.enabled {
			for _, c := range cmds {
				logging.Logger(ctx).Debug("redis pipeline command", zap.String("cmd", c.Name()), zap.Any("args", c.Args()), zap.Error(c.Err()))
			}
		}
		return err
	}
}
