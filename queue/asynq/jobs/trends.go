package jobs

import (
  "encoding/json"

  "github.com/hibiken/asynq"

  "scraper.local/twitter-geo-scraper/config"
)

type TrendsPayload struct {
  Woeid int64 `json:"woeid"`
}

type Trends struct{}

func (h *Trends) Snapshot(woeid int64) (*asynq.Task, error) {
  payload, err := json.Marshal(&TrendsPayload{Woeid: woeid})
  if err != nil {
    return nil, err
  }
  return asynq.NewTask(config.ASYNQ_JOBS_TRENDS_SNAPSHOT, payload), nil
}
