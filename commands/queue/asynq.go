package queue

import (
  "context"

  "github.com/go-redis/redis/v8"
  "github.com/hibiken/asynq"
  "github.com/urfave/cli/v2"
  "go.uber.org/zap"

  "scraper.local/twitter-geo-scraper/common"
  "scraper.local/twitter-geo-scraper/config"
  workers "scraper.local/twitter-geo-scraper/queue/asynq"
)

type AsynqHandler struct {
  Creds  *config.Credentials
  Logger *zap.Logger
  Rdb    *redis.Client
  Ctx    context.Context
}

func NewAsynqCommand() *cli.Command {
  var h AsynqHandler
  return &cli.Command{
    Name:  "asynq",
    Usage: "run the trends snapshot workers",
    Before: func(c *cli.Context) error {
      creds, logger, err := bootstrap(c)
      if err != nil {
        return cli.Exit(err.Error(), 1)
      }
      h = AsynqHandler{
        Creds:  creds,
        Logger: logger,
        Rdb:    common.NewRedis(creds),
        Ctx:    context.Background(),
      }
      return nil
    },
    Action: func(c *cli.Context) error {
      defer h.Rdb.Close()
      if err := h.run(); err != nil {
        return cli.Exit(err.Error(), 1)
      }
      return nil
    },
  }
}

func (h *AsynqHandler) run() error {
  h.Logger.Info("asynq queue running...", zap.Int("concurrency", h.Creds.Trends.Concurrency))

  mux := asynq.NewServeMux()
  worker := common.NewAsynqServer(h.Creds)

  ansqContext := &common.AnsqServerContext{
    Rdb:    h.Rdb,
    Ctx:    h.Ctx,
    Mux:    mux,
    Logger: h.Logger,
    Creds:  h.Creds,
  }

  if err := workers.NewWorkers(ansqContext).Register(); err != nil {
    return err
  }

  if err := worker.Run(mux); err != nil {
    return err
  }

  return nil
}
