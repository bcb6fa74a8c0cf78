package asynq

import (
  "scraper.local/twitter-geo-scraper/common"
  "scraper.local/twitter-geo-scraper/queue/asynq/workers"
)

type Workers struct {
  AnsqContext *common.AnsqServerContext
}

func NewWorkers(ansqContext *common.AnsqServerContext) *Workers {
  return &Workers{
    AnsqContext: ansqContext,
  }
}

// Register installs the task logger and every snapshot handler on the server mux.
func (h *Workers) Register() error {
  h.AnsqContext.Mux.Use(workers.Logging(h.AnsqContext.Logger))
  if err := workers.NewTrends(h.AnsqContext).Register(); err != nil {
    return err
  }
  return nil
}
