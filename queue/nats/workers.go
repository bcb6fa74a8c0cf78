package nats

import (
  "errors"

  "github.com/nats-io/nats.go"

  "scraper.local/twitter-geo-scraper/common"
  "scraper.local/twitter-geo-scraper/queue/nats/workers"
)

type Workers struct {
  NatsContext *common.NatsContext
  subs        []*nats.Subscription
}

func NewWorkers(natsContext *common.NatsContext) *Workers {
  return &Workers{
    NatsContext: natsContext,
  }
}

func (h *Workers) Subscribe() error {
  sub, err := workers.NewTweets(h.NatsContext).Subscribe()
  if err != nil {
    return err
  }
  h.subs = append(h.subs, sub)
  return nil
}

// Drain lets pending messages finish before the subscriptions close.
func (h *Workers) Drain() error {
  var errs []error
  for _, sub := range h.subs {
    if err := sub.Drain(); err != nil {
      errs = append(errs, err)
    }
  }
  h.subs = nil
  return errors.Join(errs...)
}
