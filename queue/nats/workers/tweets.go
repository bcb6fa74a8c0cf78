package workers

import (
  "encoding/json"
  "fmt"
  "time"

  "github.com/nats-io/nats.go"
  "go.uber.org/zap"

  "scraper.local/twitter-geo-scraper/common"
  "scraper.local/twitter-geo-scraper/config"
)

const countersTTL = 31 * 24 * time.Hour

type TweetsCreatePayload struct {
  TweetID  int64 `json:"tweet_id"`
  UserID   int64 `json:"user_id"`
  Location int64 `json:"location"`
}

// Tweets keeps per-location daily ingest counters in redis, one hash field per UTC day.
type Tweets struct {
  NatsContext *common.NatsContext
}

func NewTweets(natsContext *common.NatsContext) *Tweets {
  return &Tweets{
    NatsContext: natsContext,
  }
}

func (h *Tweets) Subscribe() (*nats.Subscription, error) {
  return h.NatsContext.Conn.Subscribe(config.NATS_TWEETS_CREATE, h.Apply)
}

func (h *Tweets) Apply(m *nats.Msg) {
  var payload TweetsCreatePayload
  if err := json.Unmarshal(m.Data, &payload); err != nil {
    h.NatsContext.Logger.Warn("bad tweets.create payload", zap.Error(err))
    return
  }

  key := fmt.Sprintf(config.COUNTERS_STREAMS_LOCATION, payload.Location)
  day := time.Now().UTC().Format("2006-01-02")
  pipe := h.NatsContext.Rdb.TxPipeline()
  pipe.HIncrBy(h.NatsContext.Ctx, key, day, 1)
  pipe.Expire(h.NatsContext.Ctx, key, countersTTL)
  if _, err := pipe.Exec(h.NatsContext.Ctx); err != nil {
    h.NatsContext.Logger.Error("count tweet", zap.Int64("tweet_id", payload.TweetID), zap.Error(err))
  }
}
