package repositories

import (
  "errors"
  "fmt"
)

const (
  STEP_VALIDATE       = "validate"
  STEP_PLACE          = "place"
  STEP_USER           = "user"
  STEP_TWEET          = "tweet"
  STEP_MENTIONS       = "mentions"
  STEP_ENTITIES       = "entities"
  STEP_MEDIA          = "media"
  STEP_TWEET_MENTIONS = "tweet_mentions"
  STEP_TWEET_ENTITIES = "tweet_entities"
  STEP_TWEET_MEDIA    = "tweet_media"
  STEP_TREND_SNAPSHOT = "trend_snapshot"
)

var ErrWriteFailure = errors.New("write failure")

// WriteError names the write step that failed. Steps before it may already be committed
// when the gateway runs in per-step mode.
type WriteError struct {
  Step    string
  TweetID int64
  Err     error
}

func (e *WriteError) Error() string {
  if e.TweetID != 0 {
    return fmt.Sprintf("write %s for tweet %d: %v", e.Step, e.TweetID, e.Err)
  }
  return fmt.Sprintf("write %s: %v", e.Step, e.Err)
}

func (e *WriteError) Unwrap() error {
  return e.Err
}

func (e *WriteError) Is(target error) bool {
  return target == ErrWriteFailure
}
