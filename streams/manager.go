package streams

import (
  "context"
  "errors"
  "fmt"
  "sync"
  "sync/atomic"
  "time"

  "github.com/cenkalti/backoff/v4"
  "go.uber.org/zap"

  "scraper.local/twitter-geo-scraper/models"
  "scraper.local/twitter-geo-scraper/records"
  "scraper.local/twitter-geo-scraper/repositories"
)

type Config struct {
  LocationID        int64
  BBox              models.BoundingBox
  Cooldown          time.Duration
  BackoffInitial    time.Duration
  BackoffMax        time.Duration
  BackoffMaxElapsed time.Duration
  // MaxReconnects of zero leaves only the elapsed-time ceiling.
  MaxReconnects uint64
}

type Status struct {
  State         string    `json:"state"`
  LocationID    int64     `json:"location_id"`
  Since         time.Time `json:"since"`
  Connects      uint64    `json:"connects"`
  Reconnects    uint64    `json:"reconnects"`
  RateLimits    uint64    `json:"rate_limits"`
  Events        uint64    `json:"events"`
  Written       uint64    `json:"written"`
  Malformed     uint64    `json:"malformed"`
  WriteFailures uint64    `json:"write_failures"`
  LastError     string    `json:"last_error,omitempty"`
}

// Manager keeps one filtered stream alive and writes every status it delivers. Events are
// handled one at a time on the goroutine calling Run.
type Manager struct {
  Source Source
  Writer RecordWriter
  Logger *zap.Logger
  Config Config

  state         atomic.Int32
  since         atomic.Int64
  connects      atomic.Uint64
  reconnects    atomic.Uint64
  rateLimits    atomic.Uint64
  events        atomic.Uint64
  written       atomic.Uint64
  malformed     atomic.Uint64
  writeFailures atomic.Uint64

  mu      sync.Mutex
  lastErr error
}

func NewManager(source Source, writer RecordWriter, logger *zap.Logger, cfg Config) *Manager {
  if logger == nil {
    logger = zap.NewNop()
  }
  m := &Manager{
    Source: source,
    Writer: writer,
    Logger: logger.With(zap.Int64("location", cfg.LocationID)),
    Config: cfg,
  }
  m.since.Store(time.Now().UnixNano())
  return m
}

func (m *Manager) State() State {
  return State(m.state.Load())
}

func (m *Manager) Status() Status {
  status := Status{
    State:         m.State().String(),
    LocationID:    m.Config.LocationID,
    Since:         time.Unix(0, m.since.Load()).UTC(),
    Connects:      m.connects.Load(),
    Reconnects:    m.reconnects.Load(),
    RateLimits:    m.rateLimits.Load(),
    Events:        m.events.Load(),
    Written:       m.written.Load(),
    Malformed:     m.malformed.Load(),
    WriteFailures: m.writeFailures.Load(),
  }
  m.mu.Lock()
  if m.lastErr != nil {
    status.LastError = m.lastErr.Error()
  }
  m.mu.Unlock()
  return status
}

// Run connects and consumes until ctx is cancelled, which returns nil. Transport faults
// reconnect with exponential backoff; once the ceiling is reached Run returns
// ErrReconnectExhausted. Time spent streaming or cooling down does not count toward the
// elapsed ceiling.
func (m *Manager) Run(ctx context.Context) error {
  defer m.setState(Disconnected)
  clock := &streakClock{}
  b := m.newBackOff(clock)

  for {
    if ctx.Err() != nil {
      return nil
    }

    m.setState(Connecting)
    m.Logger.Info("connecting", zap.Any("bbox", m.Config.BBox))
    conn, err := m.Source.Connect(ctx, m.Config.BBox)
    if err == nil {
      m.connects.Add(1)
      m.setState(Streaming)
      m.Logger.Info("streaming")
      var delivered bool
      clock.Pause()
      delivered, err = m.consume(ctx, conn)
      clock.Resume()
      conn.Close()
      if delivered {
        b.Reset()
      }
    }
    if ctx.Err() != nil {
      return nil
    }

    if errors.Is(err, ErrRateLimited) {
      m.rateLimits.Add(1)
      m.setState(RateLimited)
      m.Logger.Warn("rate limited on connect", zap.Duration("cooldown", m.Config.Cooldown), zap.Error(err))
      clock.Pause()
      cooled := wait(ctx, m.Config.Cooldown)
      clock.Resume()
      if cooled != nil {
        return nil
      }
      continue
    }

    m.setError(err)
    m.setState(Erroring)
    next := b.NextBackOff()
    if next == backoff.Stop {
      m.Logger.Error("reconnect ceiling reached", zap.Uint64("reconnects", m.reconnects.Load()), zap.Error(err))
      return fmt.Errorf("%w after %d reconnects: %v", ErrReconnectExhausted, m.reconnects.Load(), err)
    }
    m.Logger.Warn("stream fault, reconnecting", zap.Duration("backoff", next), zap.Error(err))
    if wait(ctx, next) != nil {
      return nil
    }
    m.reconnects.Add(1)
  }
}

// consume reads events until the connection fails. delivered reports whether any event
// arrived on this connection.
func (m *Manager) consume(ctx context.Context, conn Conn) (bool, error) {
  delivered := false
  stop := context.AfterFunc(ctx, func() {
    conn.Close()
  })
  defer stop()

  for {
    event, err := conn.Next()
    if err != nil {
      return delivered, err
    }
    delivered = true
    m.events.Add(1)

    switch event.Kind {
    case KindStatus:
      m.dispatch(ctx, event.Raw)
    case KindLimit:
      m.rateLimits.Add(1)
      m.setState(RateLimited)
      m.Logger.Warn("rate limit notice", zap.ByteString("notice", event.Raw), zap.Duration("cooldown", m.Config.Cooldown))
      if err := wait(ctx, m.Config.Cooldown); err != nil {
        return delivered, err
      }
      m.setState(Streaming)
    case KindDisconnect:
      return delivered, fmt.Errorf("%w: disconnect notice %s", ErrStreamFault, event.Raw)
    case KindWarning:
      m.Logger.Warn("stream warning", zap.ByteString("notice", event.Raw))
    default:
      m.Logger.Debug("ignored notice", zap.Stringer("kind", event.Kind))
    }
  }
}

// dispatch decomposes and writes one status. Failures stay local to the event.
func (m *Manager) dispatch(ctx context.Context, raw []byte) {
  entities, relations, err := records.Decompose(raw, m.Config.LocationID)
  if err != nil {
    m.malformed.Add(1)
    m.setError(err)
    m.Logger.Warn("malformed event dropped", zap.Error(err))
    return
  }
  if err := m.Writer.WriteIngestedRecord(ctx, entities, relations); err != nil {
    if ctx.Err() != nil {
      return
    }
    m.writeFailures.Add(1)
    m.setError(err)
    fields := []zap.Field{zap.Int64("tweet_id", entities.Tweet.TweetID), zap.Error(err)}
    var writeErr *repositories.WriteError
    if errors.As(err, &writeErr) {
      fields = append(fields, zap.String("step", writeErr.Step))
    }
    m.Logger.Error("record dropped", fields...)
    return
  }
  m.written.Add(1)
}

func (m *Manager) newBackOff(clock backoff.Clock) backoff.BackOff {
  exp := backoff.NewExponentialBackOff()
  exp.Clock = clock
  if m.Config.BackoffInitial > 0 {
    exp.InitialInterval = m.Config.BackoffInitial
  }
  if m.Config.BackoffMax > 0 {
    exp.MaxInterval = m.Config.BackoffMax
  }
  exp.MaxElapsedTime = m.Config.BackoffMaxElapsed
  exp.Multiplier = 2
  exp.Reset()
  if m.Config.MaxReconnects == 0 {
    return exp
  }
  return backoff.WithMaxRetries(exp, m.Config.MaxReconnects)
}

func (m *Manager) setState(s State) {
  if State(m.state.Swap(int32(s))) != s {
    m.since.Store(time.Now().UnixNano())
  }
}

func (m *Manager) setError(err error) {
  m.mu.Lock()
  m.lastErr = err
  m.mu.Unlock()
}

// streakClock feeds the backoff's elapsed ceiling. It stands still while a connection is
// up or a rate-limit cooldown runs, so only time spent failing to stream counts.
type streakClock struct {
  paused time.Duration
  since  time.Time
}

func (c *streakClock) Now() time.Time {
  now := time.Now()
  if !c.since.IsZero() {
    now = c.since
  }
  return now.Add(-c.paused)
}

func (c *streakClock) Pause() {
  if c.since.IsZero() {
    c.since = time.Now()
  }
}

func (c *streakClock) Resume() {
  if !c.since.IsZero() {
    c.paused += time.Since(c.since)
    c.since = time.Time{}
  }
}

func wait(ctx context.Context, d time.Duration) error {
  t := time.NewTimer(d)
  defer t.Stop()
  select {
  case <-ctx.Done():
    return ctx.Err()
  case <-t.C:
    return nil
  }
}
