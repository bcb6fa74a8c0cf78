package repositories

import (
  "context"
  "errors"
  "path/filepath"
  "testing"
  "time"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
  "gorm.io/datatypes"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  "gorm.io/gorm/logger"

  "scraper.local/twitter-geo-scraper/models"
)

func newTestDB(t *testing.T) *gorm.DB {
  t.Helper()
  db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "store.db")), &gorm.Config{
    Logger: logger.Discard,
  })
  require.NoError(t, err)
  require.NoError(t, models.AutoMigrate(db))
  t.Cleanup(func() {
    if pool, err := db.DB(); err == nil {
      pool.Close()
    }
  })
  return db
}

func newBundle(tweetID int64, userName string) (*models.EntityBundle, *models.RelationBundle) {
  placeID := "p1"
  created := time.Date(2018, 10, 10, 20, 19, 24, 0, time.UTC)
  entities := &models.EntityBundle{
    Tweet: &models.Tweet{
      TweetID:        tweetID,
      CreatedString:  "Wed Oct 10 20:19:24 +0000 2018",
      Created:        created,
      Content:        "tea 🍵 #ai",
      UserID:         42,
      PlaceID:        &placeID,
      RetweetCount:   1,
      StreamLocation: 3,
      Entities:       datatypes.JSON(`{}`),
      FullJSON:       datatypes.JSON(`{"id": 1}`),
    },
    User: &models.User{
      UserID:       42,
      Name:         userName,
      ScreenName:   "alice",
      JoinedString: "Mon Jan 02 15:04:05 +0000 2012",
      Joined:       time.Date(2012, 1, 2, 15, 4, 5, 0, time.UTC),
    },
    Place: &models.Place{
      PlaceID:    placeID,
      Name:       "London",
      Attributes: datatypes.JSON(`{}`),
    },
    Entities: []*models.EntityUsed{
      {Content: "ai", Type: models.EntityHashtag},
      {Content: "https://example.com", Type: models.EntityUrl},
    },
    Mentions: []*models.UserMention{
      {UserID: 7, ScreenName: "bob", Name: "Bob"},
    },
    Media: []*models.MediaIncluded{
      {MediaID: 900, DisplayUrl: "d", Url: "u", Type: "photo"},
    },
  }
  relations := &models.RelationBundle{
    TweetMentions: []*models.TweetUserMention{
      {TweetID: tweetID, MentionedUserID: 7},
    },
    TweetEntities: []*models.TweetEntity{
      {TweetID: tweetID, EntityContent: "ai", EntityType: models.EntityHashtag},
      {TweetID: tweetID, EntityContent: "https://example.com", EntityType: models.EntityUrl},
    },
    TweetMedia: []*models.TweetMedia{
      {TweetID: tweetID, MediaID: 900},
    },
  }
  return entities, relations
}

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
  t.Helper()
  var total int64
  require.NoError(t, db.Model(model).Count(&total).Error)
  return total
}

func TestWriteIngestedRecord(t *testing.T) {
  db := newTestDB(t)
  repo := &RecordsRepository{Db: db}

  entities, relations := newBundle(1, "Alice")
  require.NoError(t, repo.WriteIngestedRecord(context.Background(), entities, relations))

  assert.Equal(t, int64(1), count(t, db, &models.Tweet{}))
  assert.Equal(t, int64(1), count(t, db, &models.User{}))
  assert.Equal(t, int64(1), count(t, db, &models.Place{}))
  assert.Equal(t, int64(2), count(t, db, &models.EntityUsed{}))
  assert.Equal(t, int64(1), count(t, db, &models.UserMention{}))
  assert.Equal(t, int64(1), count(t, db, &models.MediaIncluded{}))
  assert.Equal(t, int64(2), count(t, db, &models.TweetEntity{}))
  assert.Equal(t, int64(1), count(t, db, &models.TweetUserMention{}))
  assert.Equal(t, int64(1), count(t, db, &models.TweetMedia{}))

  tweet, err := (&TweetsRepository{Db: db}).Get(1)
  require.NoError(t, err)
  assert.Equal(t, "tea 🍵 #ai", tweet.Content)
  require.NotNil(t, tweet.PlaceID)
  assert.Equal(t, "p1", *tweet.PlaceID)
}

func TestWriteIngestedRecordUpsertsTweet(t *testing.T) {
  db := newTestDB(t)
  repo := &RecordsRepository{Db: db}

  entities, relations := newBundle(1, "Alice")
  require.NoError(t, repo.WriteIngestedRecord(context.Background(), entities, relations))

  entities, relations = newBundle(1, "Alice")
  entities.Tweet.RetweetCount = 9
  require.NoError(t, repo.WriteIngestedRecord(context.Background(), entities, relations))

  assert.Equal(t, int64(1), count(t, db, &models.Tweet{}))
  assert.Equal(t, int64(2), count(t, db, &models.TweetEntity{}))
  tweet, err := (&TweetsRepository{Db: db}).Get(1)
  require.NoError(t, err)
  assert.Equal(t, 9, tweet.RetweetCount)
}

func TestWriteIngestedRecordFirstSeenWins(t *testing.T) {
  db := newTestDB(t)
  repo := &RecordsRepository{Db: db}

  entities, relations := newBundle(1, "Alice")
  require.NoError(t, repo.WriteIngestedRecord(context.Background(), entities, relations))

  entities, relations = newBundle(2, "Alice Renamed")
  entities.Place.Name = "Londinium"
  entities.Mentions[0].Name = "Robert"
  entities.Media[0].Url = "changed"
  require.NoError(t, repo.WriteIngestedRecord(context.Background(), entities, relations))

  user, err := (&UsersRepository{Db: db}).Get(42)
  require.NoError(t, err)
  assert.Equal(t, "Alice", user.Name)

  place, err := (&PlacesRepository{Db: db}).Get("p1")
  require.NoError(t, err)
  assert.Equal(t, "London", place.Name)

  media, err := (&MediaRepository{Db: db}).Get(900)
  require.NoError(t, err)
  assert.Equal(t, "u", media.Url)

  assert.Equal(t, int64(2), count(t, db, &models.Tweet{}))
  assert.Equal(t, int64(1), count(t, db, &models.User{}))
  // mention rows are keyed on the whole tuple, so a renamed mention is a new row
  assert.Equal(t, int64(2), count(t, db, &models.UserMention{}))
  assert.Equal(t, int64(4), count(t, db, &models.TweetEntity{}))
}

func TestWriteIngestedRecordReferentialCompleteness(t *testing.T) {
  db := newTestDB(t)
  repo := &RecordsRepository{Db: db}

  for _, id := range []int64{1, 2, 3} {
    entities, relations := newBundle(id, "Alice")
    require.NoError(t, repo.WriteIngestedRecord(context.Background(), entities, relations))
  }

  var orphans int64
  require.NoError(t, db.Table("tweet_entities").
    Joins("LEFT JOIN entities_used ON entities_used.entity_content = tweet_entities.entity_content AND entities_used.entity_type = tweet_entities.entity_type").
    Where("entities_used.entity_content IS NULL").
    Count(&orphans).Error)
  assert.Zero(t, orphans)

  require.NoError(t, db.Table("tweet_media").
    Joins("LEFT JOIN media_included ON media_included.media_id = tweet_media.media_id").
    Where("media_included.media_id IS NULL").
    Count(&orphans).Error)
  assert.Zero(t, orphans)

  require.NoError(t, db.Table("tweet_usermentions").
    Joins("LEFT JOIN usermentions ON usermentions.mentioneduser_id = tweet_usermentions.mentioneduser_id").
    Where("usermentions.mentioneduser_id IS NULL").
    Count(&orphans).Error)
  assert.Zero(t, orphans)

  require.NoError(t, db.Table("tweets").
    Joins("LEFT JOIN users ON users.user_id = tweets.tweet_user_id").
    Where("users.user_id IS NULL").
    Count(&orphans).Error)
  assert.Zero(t, orphans)
}

func TestWriteIngestedRecordEmptyBatches(t *testing.T) {
  db := newTestDB(t)
  repo := &RecordsRepository{Db: db}

  entities, relations := newBundle(1, "Alice")
  entities.Media = nil
  entities.Mentions = []*models.UserMention{}
  relations.TweetMedia = nil
  relations.TweetMentions = []*models.TweetUserMention{}
  require.NoError(t, repo.WriteIngestedRecord(context.Background(), entities, relations))

  assert.Equal(t, int64(1), count(t, db, &models.Tweet{}))
  assert.Zero(t, count(t, db, &models.TweetMedia{}))
  assert.Zero(t, count(t, db, &models.UserMention{}))
}

func TestWriteIngestedRecordRollsBack(t *testing.T) {
  db := newTestDB(t)
  require.NoError(t, db.Migrator().DropTable(&models.TweetMedia{}))
  repo := &RecordsRepository{Db: db}

  entities, relations := newBundle(1, "Alice")
  err := repo.WriteIngestedRecord(context.Background(), entities, relations)
  require.Error(t, err)
  assert.ErrorIs(t, err, ErrWriteFailure)

  var writeErr *WriteError
  require.True(t, errors.As(err, &writeErr))
  assert.Equal(t, STEP_TWEET_MEDIA, writeErr.Step)
  assert.Equal(t, int64(1), writeErr.TweetID)

  assert.Zero(t, count(t, db, &models.Tweet{}))
  assert.Zero(t, count(t, db, &models.User{}))
  assert.Zero(t, count(t, db, &models.TweetEntity{}))
}

func TestWriteIngestedRecordCommitPerStep(t *testing.T) {
  db := newTestDB(t)
  require.NoError(t, db.Migrator().DropTable(&models.TweetMedia{}))
  repo := &RecordsRepository{Db: db, CommitPerStep: true}

  entities, relations := newBundle(1, "Alice")
  err := repo.WriteIngestedRecord(context.Background(), entities, relations)

  var writeErr *WriteError
  require.True(t, errors.As(err, &writeErr))
  assert.Equal(t, STEP_TWEET_MEDIA, writeErr.Step)

  assert.Equal(t, int64(1), count(t, db, &models.Tweet{}))
  assert.Equal(t, int64(1), count(t, db, &models.User{}))
  assert.Equal(t, int64(2), count(t, db, &models.TweetEntity{}))
  assert.Equal(t, int64(1), count(t, db, &models.TweetUserMention{}))
}

func TestWriteIngestedRecordValidation(t *testing.T) {
  db := newTestDB(t)
  repo := &RecordsRepository{Db: db}

  err := repo.WriteIngestedRecord(context.Background(), &models.EntityBundle{}, nil)
  var writeErr *WriteError
  require.True(t, errors.As(err, &writeErr))
  assert.Equal(t, STEP_VALIDATE, writeErr.Step)

  entities, relations := newBundle(1, "Alice")
  relations.TweetEntities[1].TweetID = 2
  err = repo.WriteIngestedRecord(context.Background(), entities, relations)
  require.True(t, errors.As(err, &writeErr))
  assert.Equal(t, STEP_VALIDATE, writeErr.Step)
  assert.Zero(t, count(t, db, &models.Tweet{}))
}

func TestWriteTrendSnapshot(t *testing.T) {
  db := newTestDB(t)
  repo := &TrendsRepository{Db: db}
  older := time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC)
  newer := older.Add(15 * time.Minute)

  snapshot := func(asOf time.Time, names ...string) []*models.Trend {
    trends := make([]*models.Trend, 0, len(names))
    for i, name := range names {
      trends = append(trends, &models.Trend{
        Woeid:     44418,
        WoeidName: "London",
        AsOf:      asOf,
        Created:   asOf,
        Rank:      i + 1,
        Name:      name,
      })
    }
    return trends
  }

  require.NoError(t, repo.WriteTrendSnapshot(context.Background(), snapshot(older, "#old")))
  require.NoError(t, repo.WriteTrendSnapshot(context.Background(), snapshot(newer, "#one", "#two")))
  require.NoError(t, repo.WriteTrendSnapshot(context.Background(), nil))

  assert.Equal(t, int64(3), count(t, db, &models.Trend{}))
  latest, err := repo.Latest(44418)
  require.NoError(t, err)
  require.Len(t, latest, 2)
  assert.Equal(t, "#one", latest[0].Name)
  assert.Equal(t, 2, latest[1].Rank)
  latest, err = repo.Latest(1)
  require.NoError(t, err)
  assert.Empty(t, latest)
}

func TestReadsSurfaceStoreErrors(t *testing.T) {
  db := newTestDB(t)
  entities, relations := newBundle(100, "alice")
  require.NoError(t, (&RecordsRepository{Db: db}).WriteIngestedRecord(context.Background(), entities, relations))

  tweets := &TweetsRepository{Db: db}
  total, err := tweets.Count(map[string]interface{}{"location": int64(3)})
  require.NoError(t, err)
  assert.Equal(t, int64(1), total)
  total, err = tweets.Count(map[string]interface{}{"location": int64(4)})
  require.NoError(t, err)
  assert.Equal(t, int64(0), total)

  found, err := (&EntitiesRepository{Db: db}).Exists("ai", models.EntityHashtag)
  require.NoError(t, err)
  assert.True(t, found)

  pool, err := db.DB()
  require.NoError(t, err)
  require.NoError(t, pool.Close())

  _, err = tweets.Count(nil)
  assert.Error(t, err)
  _, err = (&TrendsRepository{Db: db}).Latest(44418)
  assert.Error(t, err)
  _, err = (&EntitiesRepository{Db: db}).Exists("ai", models.EntityHashtag)
  assert.Error(t, err)
}
