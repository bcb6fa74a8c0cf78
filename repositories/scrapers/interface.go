package scrapers

import (
  "errors"
  "fmt"
  "io"
  "net/http"
)

var (
  ErrUpstream    = errors.New("upstream error")
  ErrRateLimited = errors.New("upstream rate limited")
)

// Location is one entry of the trends location catalogue.
type Location struct {
  Name        string `json:"name"`
  Woeid       int64  `json:"woeid"`
  Country     string `json:"country"`
  CountryCode string `json:"countryCode"`
  PlaceType   string `json:"placeType"`
  ParentID    int64  `json:"parentid"`
}

func requestError(resp *http.Response) error {
  body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
  err := ErrUpstream
  if resp.StatusCode == 420 || resp.StatusCode == http.StatusTooManyRequests {
    err = ErrRateLimited
  }
  return fmt.Errorf(
    "%w: url[%s] status[%s] body[%s]",
    err,
    resp.Request.URL.Redacted(),
    resp.Status,
    body,
  )
}
