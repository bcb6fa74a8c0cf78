package workers

import (
  "context"
  "time"

  "github.com/hibiken/asynq"
  "go.uber.org/zap"
)

// Logging records the type, outcome and duration of every task.
func Logging(logger *zap.Logger) asynq.MiddlewareFunc {
  return func(next asynq.Handler) asynq.Handler {
    return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
      start := time.Now()
      err := next.ProcessTask(ctx, t)
      fields := []zap.Field{zap.String("task", t.Type()), zap.Duration("elapsed", time.Since(start))}
      if err != nil {
        logger.Warn("task failed", append(fields, zap.Error(err))...)
        return err
      }
      logger.Debug("task done", fields...)
      return nil
    })
  }
}
