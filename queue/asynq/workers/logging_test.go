package workers

import (
  "context"
  "errors"
  "testing"

  "github.com/hibiken/asynq"
  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
  "go.uber.org/zap"
  "go.uber.org/zap/zapcore"
  "go.uber.org/zap/zaptest/observer"

  "scraper.local/twitter-geo-scraper/config"
)

func TestLogging(t *testing.T) {
  core, logs := observer.New(zapcore.DebugLevel)
  middleware := Logging(zap.New(core))
  boom := errors.New("boom")

  ok := middleware(asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
    return nil
  }))
  failing := middleware(asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
    return boom
  }))

  task := asynq.NewTask(config.ASYNQ_JOBS_TRENDS_SNAPSHOT, []byte(`{"woeid":1}`))
  require.NoError(t, ok.ProcessTask(context.Background(), task))
  assert.ErrorIs(t, failing.ProcessTask(context.Background(), task), boom)

  entries := logs.AllUntimed()
  require.Len(t, entries, 2)
  assert.Equal(t, "task done", entries[0].Message)
  assert.Equal(t, "task failed", entries[1].Message)
  assert.Equal(t, config.ASYNQ_JOBS_TRENDS_SNAPSHOT, entries[1].ContextMap()["task"])
}
