package records

import (
  "errors"
  "fmt"
)

var (
  ErrMalformedEvent = errors.New("malformed event")

  errMissing  = errors.New("missing")
  errType     = errors.New("unexpected type")
  errNegative = errors.New("negative counter")
)

// MalformedEventError is fatal for one event only.
type MalformedEventError struct {
  Field   string
  TweetID int64
  Err     error
}

func (e *MalformedEventError) Error() string {
  if e.TweetID != 0 {
    return fmt.Sprintf("malformed event %d: %s: %v", e.TweetID, e.Field, e.Err)
  }
  return fmt.Sprintf("malformed event: %s: %v", e.Field, e.Err)
}

func (e *MalformedEventError) Unwrap() error {
  return e.Err
}

func (e *MalformedEventError) Is(target error) bool {
  return target == ErrMalformedEvent
}

func malformed(field string, err error) error {
  return &MalformedEventError{Field: field, Err: err}
}
