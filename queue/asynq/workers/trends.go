package workers

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "time"

  "github.com/hibiken/asynq"
  "go.uber.org/zap"
  "gorm.io/gorm"

  "scraper.local/twitter-geo-scraper/common"
  "scraper.local/twitter-geo-scraper/config"
  "scraper.local/twitter-geo-scraper/queue/asynq/jobs"
  "scraper.local/twitter-geo-scraper/repositories/scrapers"
)

type Trends struct {
  AnsqContext *common.AnsqServerContext
  Repository  *scrapers.TrendsRepository
}

func NewTrends(ansqContext *common.AnsqServerContext) *Trends {
  h := &Trends{
    AnsqContext: ansqContext,
  }
  h.Repository = scrapers.NewTrendsRepository(h.AnsqContext.Creds)
  return h
}

func (h *Trends) Snapshot(ctx context.Context, t *asynq.Task) error {
  var payload jobs.TrendsPayload
  if err := json.Unmarshal(t.Payload(), &payload); err != nil {
    return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
  }

  mutex := common.NewMutex(
    h.AnsqContext.Rdb,
    ctx,
    fmt.Sprintf(config.LOCKS_TRENDS_SNAPSHOT, payload.Woeid),
  )
  if !mutex.Lock(5 * time.Minute) {
    h.AnsqContext.Logger.Info("trends snapshot already running", zap.Int64("woeid", payload.Woeid))
    return nil
  }
  defer mutex.Unlock()

  trends, err := h.Repository.Snapshot(ctx, payload.Woeid, h.store)
  if err != nil {
    h.AnsqContext.Logger.Error("trends snapshot failed", zap.Int64("woeid", payload.Woeid), zap.Error(err))
    if errors.Is(err, scrapers.ErrRateLimited) {
      return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
    }
    return err
  }
  h.AnsqContext.Logger.Info("trends snapshot stored", zap.Int64("woeid", payload.Woeid), zap.Int("trends", len(trends)))
  return nil
}

func (h *Trends) store(fn func(db *gorm.DB) error) error {
  return common.WithDB(h.AnsqContext.Creds, fn)
}

func (h *Trends) Register() error {
  h.AnsqContext.Mux.HandleFunc(config.ASYNQ_JOBS_TRENDS_SNAPSHOT, h.Snapshot)
  return nil
}
