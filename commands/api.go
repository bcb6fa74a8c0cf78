package commands

import (
  "context"
  "errors"
  "net/http"
  "time"

  "github.com/go-redis/redis/v8"
  "github.com/urfave/cli/v2"
  "go.uber.org/zap"
  "gorm.io/gorm"

  "scraper.local/twitter-geo-scraper/api/v1"
  "scraper.local/twitter-geo-scraper/common"
  "scraper.local/twitter-geo-scraper/config"
)

type ApiHandler struct {
  Creds  *config.Credentials
  Logger *zap.Logger
  Db     *gorm.DB
  Rdb    *redis.Client
  Addr   string
}

func NewApiCommand() *cli.Command {
  var h ApiHandler
  return &cli.Command{
    Name:  "api",
    Usage: "serve the read-only trends api",
    Flags: []cli.Flag{
      &cli.StringFlag{
        Name:    "addr",
        Value:   "127.0.0.1:8080",
        EnvVars: []string{"SCRAPER_API_ADDR"},
      },
    },
    Before: func(c *cli.Context) error {
      creds, logger, err := bootstrap(c)
      if err != nil {
        return cli.Exit(err.Error(), 1)
      }
      db, err := common.NewDB(creds)
      if err != nil {
        return cli.Exit(err.Error(), 1)
      }
      h = ApiHandler{
        Creds:  creds,
        Logger: logger,
        Db:     db,
        Rdb:    common.NewRedis(creds),
        Addr:   c.String("addr"),
      }
      return nil
    },
    Action: func(c *cli.Context) error {
      defer common.CloseDB(h.Db)
      defer h.Rdb.Close()
      if err := h.Run(); err != nil {
        return cli.Exit(err.Error(), 1)
      }
      return nil
    },
  }
}

func (h *ApiHandler) Run() error {
  h.Logger.Info("api running...", zap.String("addr", h.Addr))

  ctx, cancel := signalContext()
  defer cancel()

  apiContext := &common.ApiContext{
    Db:     h.Db,
    Rdb:    h.Rdb,
    Ctx:    ctx,
    Logger: h.Logger,
  }

  srv := &http.Server{
    Addr:    h.Addr,
    Handler: v1.NewRouter(apiContext, nil),
  }
  go func() {
    <-ctx.Done()
    shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
    defer done()
    srv.Shutdown(shutdownCtx)
  }()

  if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
    return err
  }

  return nil
}
