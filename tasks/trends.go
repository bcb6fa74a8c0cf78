package tasks

import (
  "time"

  "github.com/hibiken/asynq"
  "go.uber.org/zap"

  "scraper.local/twitter-geo-scraper/common"
  "scraper.local/twitter-geo-scraper/config"
  "scraper.local/twitter-geo-scraper/queue/asynq/jobs"
)

type TrendsTask struct {
  Job         *jobs.Trends
  AnsqContext *common.AnsqClientContext
}

func NewTrendsTask(ansqContext *common.AnsqClientContext) *TrendsTask {
  return &TrendsTask{
    AnsqContext: ansqContext,
  }
}

// Snapshot enqueues one snapshot job per location.
func (t *TrendsTask) Snapshot(woeids []int64) (err error) {
  t.AnsqContext.Logger.Info("tasks trends snapshot", zap.Int64s("woeids", woeids))
  for _, woeid := range woeids {
    job, err := t.Job.Snapshot(woeid)
    if err != nil {
      return err
    }
    _, err = t.AnsqContext.Conn.Enqueue(
      job,
      asynq.Queue(config.ASYNQ_QUEUE_TRENDS),
      asynq.MaxRetry(0),
      asynq.Timeout(5*time.Minute),
    )
    if err != nil {
      t.AnsqContext.Logger.Error("enqueue trends snapshot", zap.Int64("woeid", woeid), zap.Error(err))
    }
  }
  return nil
}
