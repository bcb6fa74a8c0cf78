package scrapers

import (
  "bufio"
  "bytes"
  "context"
  "errors"
  "fmt"
  "io"
  "net/http"
  "net/url"
  "strconv"
  "strings"
  "sync"
  "sync/atomic"
  "time"

  "github.com/dghubble/oauth1"
  "go.uber.org/zap"

  "scraper.local/twitter-geo-scraper/common"
  "scraper.local/twitter-geo-scraper/config"
  "scraper.local/twitter-geo-scraper/models"
  "scraper.local/twitter-geo-scraper/streams"
)

const maxEventSize = 4 << 20

var errStalled = errors.New("no data within stall timeout")

// StreamRepository opens the statuses filter stream for a bounding box.
type StreamRepository struct {
  HttpClient   *http.Client
  Url          string
  StallTimeout time.Duration
  Logger       *zap.Logger
}

// NewOAuthClient signs requests with the app and user credentials.
func NewOAuthClient(creds *config.Credentials, timeout time.Duration) *http.Client {
  base := common.NewHttpClient(creds.Proxy, timeout)
  ctx := context.WithValue(context.Background(), oauth1.HTTPClient, base)
  cfg := oauth1.NewConfig(creds.TwitterAppKey, creds.TwitterAppSecret)
  client := cfg.Client(ctx, oauth1.NewToken(creds.TwitterKey, creds.TwitterSecret))
  client.Timeout = timeout
  return client
}

func NewStreamRepository(creds *config.Credentials, logger *zap.Logger) *StreamRepository {
  return &StreamRepository{
    HttpClient:   NewOAuthClient(creds, 0),
    Url:          config.STREAM_FILTER_URL,
    StallTimeout: creds.Stream.StallTimeout,
    Logger:       logger,
  }
}

func (r *StreamRepository) Connect(ctx context.Context, bbox models.BoundingBox) (streams.Conn, error) {
  form := url.Values{}
  form.Set("locations", FormatLocations(bbox))

  streamCtx, cancel := context.WithCancel(ctx)
  req, err := http.NewRequestWithContext(streamCtx, http.MethodPost, r.Url, strings.NewReader(form.Encode()))
  if err != nil {
    cancel()
    return nil, err
  }
  req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

  resp, err := r.HttpClient.Do(req)
  if err != nil {
    cancel()
    return nil, fmt.Errorf("%w: %v", streams.ErrStreamFault, err)
  }
  if resp.StatusCode != http.StatusOK {
    defer cancel()
    defer resp.Body.Close()
    err := requestError(resp)
    if errors.Is(err, ErrRateLimited) {
      return nil, fmt.Errorf("%w: %v", streams.ErrRateLimited, err)
    }
    return nil, fmt.Errorf("%w: %v", streams.ErrStreamFault, err)
  }

  conn := &streamConn{
    body:    resp.Body,
    cancel:  cancel,
    scanner: bufio.NewScanner(resp.Body),
    timeout: r.StallTimeout,
  }
  conn.scanner.Buffer(make([]byte, 64*1024), maxEventSize)
  if conn.timeout > 0 {
    conn.stall = time.AfterFunc(conn.timeout, func() {
      conn.stalled.Store(true)
      cancel()
    })
  }
  return conn, nil
}

// FormatLocations renders a bounding box as the stream's locations parameter.
func FormatLocations(bbox models.BoundingBox) string {
  values := []float64{bbox.MinLon, bbox.MinLat, bbox.MaxLon, bbox.MaxLat}
  parts := make([]string, len(values))
  for i, v := range values {
    parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
  }
  return strings.Join(parts, ",")
}

// ParseLocations reads a "minLon,minLat,maxLon,maxLat" box back into a BoundingBox.
func ParseLocations(s string) (models.BoundingBox, error) {
  parts := strings.Split(s, ",")
  if len(parts) != 4 {
    return models.BoundingBox{}, fmt.Errorf("%w: bounding box %q needs four values", config.ErrConfig, s)
  }
  values := make([]float64, 4)
  for i, part := range parts {
    v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
    if err != nil {
      return models.BoundingBox{}, fmt.Errorf("%w: bounding box %q: %v", config.ErrConfig, s, err)
    }
    values[i] = v
  }
  bbox := models.BoundingBox{MinLon: values[0], MinLat: values[1], MaxLon: values[2], MaxLat: values[3]}
  if bbox.MinLon > bbox.MaxLon || bbox.MinLat > bbox.MaxLat {
    return models.BoundingBox{}, fmt.Errorf("%w: bounding box %q is inverted", config.ErrConfig, s)
  }
  return bbox, nil
}

type streamConn struct {
  body    io.ReadCloser
  cancel  context.CancelFunc
  scanner *bufio.Scanner
  timeout time.Duration
  stall   *time.Timer
  stalled atomic.Bool
  once    sync.Once
}

// Next skips keep-alive newlines. Any byte from upstream resets the stall timer.
func (c *streamConn) Next() (streams.Event, error) {
  for c.scanner.Scan() {
    if c.stall != nil {
      c.stall.Reset(c.timeout)
    }
    line := bytes.TrimSpace(c.scanner.Bytes())
    if len(line) == 0 {
      continue
    }
    raw := make([]byte, len(line))
    copy(raw, line)
    return streams.Event{Kind: streams.Classify(raw), Raw: raw}, nil
  }
  err := c.scanner.Err()
  if c.stalled.Load() {
    err = errStalled
  }
  if err == nil {
    err = io.EOF
  }
  return streams.Event{}, fmt.Errorf("%w: %v", streams.ErrStreamFault, err)
}

func (c *streamConn) Close() error {
  var err error
  c.once.Do(func() {
    if c.stall != nil {
      c.stall.Stop()
    }
    c.cancel()
    err = c.body.Close()
  })
  return err
}
