package repositories

import (
  "context"
  "encoding/json"
  "errors"

  "github.com/nats-io/nats.go"
  "go.uber.org/zap"
  "gorm.io/gorm"

  "scraper.local/twitter-geo-scraper/config"
  "scraper.local/twitter-geo-scraper/models"
)

var (
  errEmptyBundle      = errors.New("bundle has no tweet")
  errRelationMismatch = errors.New("relation references another tweet")
)

// RecordsRepository persists one decomposed status across all tables.
type RecordsRepository struct {
  Db            *gorm.DB
  Nats          *nats.Conn
  Logger        *zap.Logger
  CommitPerStep bool
}

type writeStep struct {
  name string
  run  func(tx *gorm.DB) error
}

// WriteIngestedRecord writes place, user, tweet, references and then relations. By default
// every step shares one transaction and a failure rolls the whole record back. With
// CommitPerStep each step commits on its own and steps already done stay persisted.
func (r *RecordsRepository) WriteIngestedRecord(
  ctx context.Context,
  entities *models.EntityBundle,
  relations *models.RelationBundle,
) error {
  if entities == nil || entities.Tweet == nil {
    return &WriteError{Step: STEP_VALIDATE, Err: errEmptyBundle}
  }
  tweetID := entities.Tweet.TweetID
  if relations == nil {
    relations = &models.RelationBundle{}
  }
  if err := r.checkRelations(tweetID, relations); err != nil {
    return &WriteError{Step: STEP_VALIDATE, TweetID: tweetID, Err: err}
  }

  steps := []writeStep{
    {STEP_PLACE, func(tx *gorm.DB) error {
      if entities.Place == nil {
        return nil
      }
      return (&PlacesRepository{Db: tx}).Insert(entities.Place)
    }},
    {STEP_USER, func(tx *gorm.DB) error {
      if entities.User == nil {
        return nil
      }
      return (&UsersRepository{Db: tx}).Insert(entities.User)
    }},
    {STEP_TWEET, func(tx *gorm.DB) error {
      return (&TweetsRepository{Db: tx}).Upsert(entities.Tweet)
    }},
    {STEP_MENTIONS, func(tx *gorm.DB) error {
      return (&MentionsRepository{Db: tx}).Insert(entities.Mentions)
    }},
    {STEP_ENTITIES, func(tx *gorm.DB) error {
      return (&EntitiesRepository{Db: tx}).Insert(entities.Entities)
    }},
    {STEP_MEDIA, func(tx *gorm.DB) error {
      return (&MediaRepository{Db: tx}).Insert(entities.Media)
    }},
    {STEP_TWEET_MENTIONS, func(tx *gorm.DB) error {
      return (&RelationsRepository{Db: tx}).InsertMentions(relations.TweetMentions)
    }},
    {STEP_TWEET_ENTITIES, func(tx *gorm.DB) error {
      return (&RelationsRepository{Db: tx}).InsertEntities(relations.TweetEntities)
    }},
    {STEP_TWEET_MEDIA, func(tx *gorm.DB) error {
      return (&RelationsRepository{Db: tx}).InsertMedia(relations.TweetMedia)
    }},
  }

  db := r.Db.WithContext(ctx)
  if r.CommitPerStep {
    for _, step := range steps {
      if err := db.Transaction(step.run); err != nil {
        return &WriteError{Step: step.name, TweetID: tweetID, Err: err}
      }
    }
  } else {
    err := db.Transaction(func(tx *gorm.DB) error {
      for _, step := range steps {
        if err := step.run(tx); err != nil {
          return &WriteError{Step: step.name, TweetID: tweetID, Err: err}
        }
      }
      return nil
    })
    if err != nil {
      var writeErr *WriteError
      if errors.As(err, &writeErr) {
        return writeErr
      }
      return &WriteError{Step: STEP_TWEET, TweetID: tweetID, Err: err}
    }
  }

  r.publish(entities.Tweet)
  return nil
}

func (r *RecordsRepository) checkRelations(tweetID int64, relations *models.RelationBundle) error {
  for _, row := range relations.TweetMentions {
    if row.TweetID != tweetID {
      return errRelationMismatch
    }
  }
  for _, row := range relations.TweetEntities {
    if row.TweetID != tweetID {
      return errRelationMismatch
    }
  }
  for _, row := range relations.TweetMedia {
    if row.TweetID != tweetID {
      return errRelationMismatch
    }
  }
  return nil
}

func (r *RecordsRepository) publish(tweet *models.Tweet) {
  if r.Nats == nil {
    return
  }
  data, _ := json.Marshal(map[string]interface{}{
    "tweet_id": tweet.TweetID,
    "user_id":  tweet.UserID,
    "location": tweet.StreamLocation,
  })
  if err := r.Nats.Publish(config.NATS_TWEETS_CREATE, data); err != nil && r.Logger != nil {
    r.Logger.Warn("publish tweet", zap.Int64("tweet_id", tweet.TweetID), zap.Error(err))
  }
}
