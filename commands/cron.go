package commands

import (
  "github.com/hibiken/asynq"
  "github.com/robfig/cron/v3"
  "github.com/urfave/cli/v2"
  "go.uber.org/zap"

  "scraper.local/twitter-geo-scraper/common"
  "scraper.local/twitter-geo-scraper/config"
  "scraper.local/twitter-geo-scraper/tasks"
)

type CronHandler struct {
  Creds     *config.Credentials
  Logger    *zap.Logger
  Asynq     *asynq.Client
  Locations []int64
}

func NewCronCommand() *cli.Command {
  var h CronHandler
  return &cli.Command{
    Name:  "cron",
    Usage: "enqueue trends snapshots on the configured schedule",
    Flags: []cli.Flag{
      &cli.Int64SliceFlag{
        Name:     "location",
        Usage:    "location id (woeid), repeatable",
        Required: true,
      },
    },
    Before: func(c *cli.Context) error {
      creds, logger, err := bootstrap(c)
      if err != nil {
        return cli.Exit(err.Error(), 1)
      }
      h = CronHandler{
        Creds:     creds,
        Logger:    logger,
        Asynq:     common.NewAsynqClient(creds),
        Locations: c.Int64Slice("location"),
      }
      return nil
    },
    Action: func(c *cli.Context) error {
      defer h.Asynq.Close()
      if err := h.run(); err != nil {
        return cli.Exit(err.Error(), 1)
      }
      return nil
    },
  }
}

func (h *CronHandler) run() error {
  h.Logger.Info("cron running...", zap.String("schedule", h.Creds.Trends.Schedule), zap.Int64s("locations", h.Locations))

  ctx, cancel := signalContext()
  defer cancel()

  ansqContext := &common.AnsqClientContext{
    Ctx:    ctx,
    Conn:   h.Asynq,
    Logger: h.Logger,
  }
  trends := tasks.NewTrendsTask(ansqContext)

  c := cron.New()
  _, err := c.AddFunc(h.Creds.Trends.Schedule, func() {
    trends.Snapshot(h.Locations)
  })
  if err != nil {
    return err
  }
  c.Start()

  <-ctx.Done()
  <-c.Stop().Done()

  return nil
}
