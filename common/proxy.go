package common

import (
  "context"
  "net"
  "net/http"
  "time"

  "h12.io/socks"
)

type ProxySession struct {
  Proxy string
}

func (s *ProxySession) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
  type dialed struct {
    conn net.Conn
    err  error
  }
  dial := socks.Dial(s.Proxy)
  ch := make(chan dialed, 1)
  go func() {
    conn, err := dial(network, addr)
    ch <- dialed{conn, err}
  }()
  select {
  case <-ctx.Done():
    go func() {
      if d := <-ch; d.conn != nil {
        d.conn.Close()
      }
    }()
    return nil, ctx.Err()
  case d := <-ch:
    return d.conn, d.err
  }
}

// NewHttpClient dials through the socks proxy when one is set. A zero timeout leaves
// the client unbounded, which long-lived streams need.
func NewHttpClient(proxy string, timeout time.Duration) *http.Client {
  tr := &http.Transport{
    Proxy: http.ProxyFromEnvironment,
  }
  if proxy != "" {
    tr.Proxy = nil
    tr.DialContext = (&ProxySession{Proxy: proxy}).DialContext
  } else {
    tr.DialContext = (&net.Dialer{Timeout: 30 * time.Second}).DialContext
  }
  return &http.Client{
    Transport: tr,
    Timeout:   timeout,
  }
}
