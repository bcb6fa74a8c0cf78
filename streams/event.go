package streams

import (
  "context"
  "errors"

  "github.com/tidwall/gjson"

  "scraper.local/twitter-geo-scraper/models"
)

var (
  // ErrRateLimited is the upstream asking for backpressure.
  ErrRateLimited = errors.New("rate limited")
  // ErrStreamFault covers transport errors and upstream terminate notices.
  ErrStreamFault = errors.New("stream fault")
  // ErrReconnectExhausted is fatal: the reconnect ceiling was reached.
  ErrReconnectExhausted = errors.New("reconnect attempts exhausted")
)

type Kind int

const (
  KindStatus Kind = iota
  KindLimit
  KindDisconnect
  KindWarning
  KindDelete
  KindScrubGeo
  KindWithheld
  KindUnknown
)

func (k Kind) String() string {
  switch k {
  case KindStatus:
    return "status"
  case KindLimit:
    return "limit"
  case KindDisconnect:
    return "disconnect"
  case KindWarning:
    return "warning"
  case KindDelete:
    return "delete"
  case KindScrubGeo:
    return "scrub_geo"
  case KindWithheld:
    return "withheld"
  }
  return "unknown"
}

type Event struct {
  Kind Kind
  Raw  []byte
}

// Classify tells control messages apart from statuses by their top-level key.
func Classify(raw []byte) Kind {
  doc := gjson.ParseBytes(raw)
  if !doc.IsObject() {
    return KindUnknown
  }
  switch {
  case doc.Get("limit").Exists():
    return KindLimit
  case doc.Get("disconnect").Exists():
    return KindDisconnect
  case doc.Get("warning").Exists():
    return KindWarning
  case doc.Get("delete").Exists():
    return KindDelete
  case doc.Get("scrub_geo").Exists():
    return KindScrubGeo
  case doc.Get("status_withheld").Exists(), doc.Get("user_withheld").Exists():
    return KindWithheld
  case doc.Get("id").Exists(), doc.Get("created_at").Exists():
    return KindStatus
  }
  return KindUnknown
}

// Source opens a filtered stream for a bounding box.
type Source interface {
  Connect(ctx context.Context, bbox models.BoundingBox) (Conn, error)
}

// Conn yields one event per call. Close may be called more than once.
type Conn interface {
  Next() (Event, error)
  Close() error
}

type RecordWriter interface {
  WriteIngestedRecord(ctx context.Context, entities *models.EntityBundle, relations *models.RelationBundle) error
}
