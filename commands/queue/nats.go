package queue

import (
  "context"
  "errors"
  "os"
  "os/signal"

  "github.com/go-redis/redis/v8"
  "github.com/urfave/cli/v2"
  "go.uber.org/zap"
  "golang.org/x/sys/unix"

  "scraper.local/twitter-geo-scraper/common"
  "scraper.local/twitter-geo-scraper/config"
  "scraper.local/twitter-geo-scraper/queue/nats"
)

type NatsHandler struct {
  Creds  *config.Credentials
  Logger *zap.Logger
  Rdb    *redis.Client
}

func NewNatsCommand() *cli.Command {
  var h NatsHandler
  return &cli.Command{
    Name:  "nats",
    Usage: "keep per-location ingest counters from tweets.create",
    Before: func(c *cli.Context) error {
      creds, logger, err := bootstrap(c)
      if err != nil {
        return cli.Exit(err.Error(), 1)
      }
      h = NatsHandler{
        Creds:  creds,
        Logger: logger,
        Rdb:    common.NewRedis(creds),
      }
      return nil
    },
    Action: func(c *cli.Context) error {
      defer h.Rdb.Close()
      if err := h.Run(); err != nil {
        return cli.Exit(err.Error(), 1)
      }
      return nil
    },
  }
}

func (h *NatsHandler) Run() error {
  h.Logger.Info("nats running...")

  nc, err := common.NewNats(h.Creds)
  if err != nil {
    return err
  }
  if nc == nil {
    return errors.New("nats_url is not configured")
  }
  defer nc.Close()

  ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, unix.SIGTERM)
  defer cancel()

  natsContext := &common.NatsContext{
    Rdb:    h.Rdb,
    Ctx:    ctx,
    Conn:   nc,
    Logger: h.Logger,
  }
  workers := nats.NewWorkers(natsContext)
  if err := workers.Subscribe(); err != nil {
    return err
  }

  <-ctx.Done()

  return workers.Drain()
}
