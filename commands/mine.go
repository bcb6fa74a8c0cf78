package commands

import (
  "context"
  "errors"
  "fmt"
  "net/http"
  "time"

  "github.com/urfave/cli/v2"
  "go.uber.org/zap"
  "gorm.io/gorm"

  "scraper.local/twitter-geo-scraper/api/v1"
  "scraper.local/twitter-geo-scraper/common"
  "scraper.local/twitter-geo-scraper/config"
  "scraper.local/twitter-geo-scraper/models"
  "scraper.local/twitter-geo-scraper/repositories"
  "scraper.local/twitter-geo-scraper/repositories/scrapers"
  "scraper.local/twitter-geo-scraper/streams"
)

// ErrLeaseLost stops a stream whose per-location lease was taken over or expired.
var ErrLeaseLost = errors.New("stream lease lost")

type MineHandler struct {
  Creds      *config.Credentials
  Logger     *zap.Logger
  Location   int64
  BBox       string
  StatusAddr string
}

func NewMineCommand() *cli.Command {
  var h MineHandler
  return &cli.Command{
    Name:  "mine",
    Usage: "stream geo-filtered statuses into the store, or take one trends snapshot",
    Flags: []cli.Flag{
      &cli.StringFlag{
        Name:     "request",
        Usage:    "stream | trends",
        Required: true,
      },
      &cli.Int64Flag{
        Name:     "location",
        Usage:    "location id (woeid)",
        Required: true,
      },
      &cli.StringFlag{
        Name:  "bbox",
        Usage: "minLon,minLat,maxLon,maxLat; skips the geocoder lookup",
      },
      &cli.StringFlag{
        Name:  "status-addr",
        Usage: "serve /v1/streams/status on this address",
      },
      &cli.BoolFlag{
        Name:  "commit-per-step",
        Usage: "commit each write step on its own instead of one transaction per status",
      },
    },
    Before: func(c *cli.Context) error {
      creds, logger, err := bootstrap(c)
      if err != nil {
        return cli.Exit(err.Error(), 1)
      }
      if c.Bool("commit-per-step") {
        creds.Stream.CommitPerStep = true
      }
      h = MineHandler{
        Creds:      creds,
        Logger:     logger.With(zap.Int64("location", c.Int64("location"))),
        Location:   c.Int64("location"),
        BBox:       c.String("bbox"),
        StatusAddr: c.String("status-addr"),
      }
      return nil
    },
    Action: func(c *cli.Context) error {
      defer h.Logger.Sync()
      var err error
      switch c.String("request") {
      case "stream":
        err = h.stream()
      case "trends":
        err = h.trends()
      default:
        err = fmt.Errorf("unknown request %q", c.String("request"))
      }
      if err != nil {
        h.Logger.Error("mine failed", zap.String("request", c.String("request")), zap.Error(err))
        return cli.Exit(err.Error(), 1)
      }
      return nil
    },
  }
}

func (h *MineHandler) stream() error {
  sigCtx, stop := signalContext()
  defer stop()
  ctx, cancel := context.WithCancelCause(sigCtx)
  defer cancel(nil)

  if h.Creds.RedisHost != "" {
    release, err := h.lease(ctx, cancel)
    if err != nil {
      return err
    }
    defer release()
  }

  bbox, err := h.boundingBox(ctx)
  if err != nil {
    return err
  }

  db, err := common.NewDB(h.Creds)
  if err != nil {
    return err
  }
  defer common.CloseDB(db)

  nc, err := common.NewNats(h.Creds)
  if err != nil {
    return err
  }
  if nc != nil {
    defer nc.Close()
  }

  writer := &repositories.RecordsRepository{
    Db:            db,
    Nats:          nc,
    Logger:        h.Logger,
    CommitPerStep: h.Creds.Stream.CommitPerStep,
  }
  manager := streams.NewManager(
    scrapers.NewStreamRepository(h.Creds, h.Logger),
    writer,
    h.Logger,
    streams.Config{
      LocationID:        h.Location,
      BBox:              bbox,
      Cooldown:          h.Creds.Stream.Cooldown,
      BackoffInitial:    h.Creds.Stream.BackoffInitial,
      BackoffMax:        h.Creds.Stream.BackoffMax,
      BackoffMaxElapsed: h.Creds.Stream.BackoffMaxElapsed,
      MaxReconnects:     h.Creds.Stream.MaxReconnects,
    },
  )

  if h.StatusAddr != "" {
    srv := &http.Server{
      Addr: h.StatusAddr,
      Handler: v1.NewRouter(&common.ApiContext{
        Db:     db,
        Ctx:    ctx,
        Logger: h.Logger,
      }, manager),
    }
    go func() {
      if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
        h.Logger.Error("status server", zap.Error(err))
      }
    }()
    defer func() {
      shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
      defer done()
      srv.Shutdown(shutdownCtx)
    }()
  }

  h.Logger.Info("stream starting", zap.String("locations", scrapers.FormatLocations(bbox)))
  if err := stopReason(ctx, manager.Run(ctx)); err != nil {
    return err
  }
  h.Logger.Info("stream stopped", zap.Any("status", manager.Status()))
  return nil
}

// stopReason tells an operator stop, which is nil, from a lost lease.
func stopReason(ctx context.Context, runErr error) error {
  if runErr != nil {
    return runErr
  }
  if cause := context.Cause(ctx); errors.Is(cause, ErrLeaseLost) {
    return cause
  }
  return nil
}

// lease holds the per-location redis lock for as long as the stream runs. Losing it
// cancels the stream.
func (h *MineHandler) lease(ctx context.Context, cancel context.CancelCauseFunc) (func(), error) {
  rdb := common.NewRedis(h.Creds)
  mutex := common.NewMutex(rdb, ctx, fmt.Sprintf(config.LOCKS_STREAMS_LOCATION, h.Location))
  if !mutex.Lock(config.STREAM_LEASE_TTL) {
    rdb.Close()
    return nil, fmt.Errorf("location %d is already being streamed", h.Location)
  }

  done := make(chan struct{})
  go func() {
    if err := keepLease(ctx, cancel, done, config.STREAM_LEASE_REFRESH, func() bool {
      return mutex.Refresh(config.STREAM_LEASE_TTL)
    }); err != nil {
      h.Logger.Error("stream lease lost", zap.Error(err))
    }
  }()

  return func() {
    close(done)
    mutex.Unlock()
    rdb.Close()
  }, nil
}

// keepLease refreshes the lease every interval until done is closed or ctx ends. A failed
// refresh cancels ctx with ErrLeaseLost.
func keepLease(
  ctx context.Context,
  cancel context.CancelCauseFunc,
  done <-chan struct{},
  every time.Duration,
  refresh func() bool,
) error {
  ticker := time.NewTicker(every)
  defer ticker.Stop()
  for {
    select {
    case <-done:
      return nil
    case <-ctx.Done():
      return nil
    case <-ticker.C:
      if !refresh() {
        cancel(ErrLeaseLost)
        return ErrLeaseLost
      }
    }
  }
}

func (h *MineHandler) boundingBox(ctx context.Context) (models.BoundingBox, error) {
  if h.BBox != "" {
    return scrapers.ParseLocations(h.BBox)
  }
  if h.Creds.FlickrKey == "" {
    return models.BoundingBox{}, fmt.Errorf("%w: flickr_key is required without --bbox", config.ErrConfig)
  }
  return scrapers.NewPlacesRepository(h.Creds).BoundingBox(ctx, h.Location)
}

func (h *MineHandler) trends() error {
  ctx, cancel := signalContext()
  defer cancel()

  store := func(fn func(db *gorm.DB) error) error {
    return common.WithDB(h.Creds, fn)
  }
  trends, err := scrapers.NewTrendsRepository(h.Creds).Snapshot(ctx, h.Location, store)
  if err != nil {
    return err
  }
  h.Logger.Info("trends snapshot stored", zap.Int("trends", len(trends)))
  return nil
}
