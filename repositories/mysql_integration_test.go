//go:build integration

package repositories

import (
  "context"
  "strconv"
  "testing"
  "time"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
  "github.com/testcontainers/testcontainers-go"
  "github.com/testcontainers/testcontainers-go/modules/mysql"
  "gorm.io/gorm"

  "scraper.local/twitter-geo-scraper/common"
  "scraper.local/twitter-geo-scraper/config"
  "scraper.local/twitter-geo-scraper/models"
)

func newMysqlDB(t *testing.T) *gorm.DB {
  t.Helper()
  if testing.Short() {
    t.Skip("skipping mysql container test in short mode")
  }

  ctx := context.Background()
  container, err := mysql.Run(ctx, "mysql:8.0.36",
    mysql.WithDatabase("twitter"),
    mysql.WithUsername("scraper"),
    mysql.WithPassword("scraper"),
  )
  testcontainers.CleanupContainer(t, container)
  require.NoError(t, err)

  host, err := container.Host(ctx)
  require.NoError(t, err)
  port, err := container.MappedPort(ctx, "3306/tcp")
  require.NoError(t, err)
  portNum, err := strconv.Atoi(port.Port())
  require.NoError(t, err)

  db, err := common.NewDB(&config.Credentials{
    Host:       host,
    Port:       portNum,
    DbUsername: "scraper",
    DbPassword: "scraper",
    Db:         "twitter",
    DbDriver:   "mysql",
  })
  require.NoError(t, err)
  t.Cleanup(func() { common.CloseDB(db) })
  require.NoError(t, models.AutoMigrate(db))
  return db
}

func TestMysqlKeepsFourByteText(t *testing.T) {
  db := newMysqlDB(t)
  repo := &EntitiesRepository{Db: db}

  require.NoError(t, repo.Insert([]*models.EntityUsed{
    {Content: "Go", Type: "hashtag"},
    {Content: "go", Type: "hashtag"},
    {Content: "☕🚀", Type: "hashtag"},
  }))

  var total int64
  require.NoError(t, db.Model(&models.EntityUsed{}).Count(&total).Error)
  assert.Equal(t, int64(3), total)
  for content, want := range map[string]bool{"☕🚀": true, "Go": true, "GO": false} {
    found, err := repo.Exists(content, "hashtag")
    require.NoError(t, err)
    assert.Equal(t, want, found, content)
  }

  var session string
  require.NoError(t, db.Raw("SELECT @@collation_connection").Scan(&session).Error)
  assert.Equal(t, "utf8mb4_bin", session)

  var table string
  require.NoError(t, db.Raw(
    "SELECT TABLE_COLLATION FROM information_schema.TABLES WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?",
    "entities_used",
  ).Scan(&table).Error)
  assert.Equal(t, "utf8mb4_bin", table)
}

func TestMysqlWriteIngestedRecord(t *testing.T) {
  db := newMysqlDB(t)
  entities, relations := newBundle(1050118621198921728, "Zoë ☀️")

  repo := &RecordsRepository{Db: db}
  require.NoError(t, repo.WriteIngestedRecord(context.Background(), entities, relations))
  require.NoError(t, repo.WriteIngestedRecord(context.Background(), entities, relations))

  var tweet models.Tweet
  require.NoError(t, db.First(&tweet, "tweet_id = ?", entities.Tweet.TweetID).Error)
  assert.Equal(t, "tea 🍵 #ai", tweet.Content)
  assert.WithinDuration(t, entities.Tweet.Created, tweet.Created, time.Second)

  var user models.User
  require.NoError(t, db.First(&user, "user_id = ?", entities.User.UserID).Error)
  assert.Equal(t, "Zoë ☀️", user.Name)
}
