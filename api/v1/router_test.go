package v1

import (
  "context"
  "encoding/json"
  "net/http"
  "net/http/httptest"
  "path/filepath"
  "testing"
  "time"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
  "gorm.io/driver/sqlite"
  "gorm.io/gorm"
  "gorm.io/gorm/logger"

  "scraper.local/twitter-geo-scraper/common"
  "scraper.local/twitter-geo-scraper/models"
  "scraper.local/twitter-geo-scraper/repositories"
  "scraper.local/twitter-geo-scraper/streams"
)

type staticStatus streams.Status

func (s staticStatus) Status() streams.Status {
  return streams.Status(s)
}

type envelope struct {
  Success bool            `json:"success"`
  Data    json.RawMessage `json:"data"`
  Error   *struct {
    Code    int    `json:"code"`
    Message string `json:"message"`
  } `json:"error"`
}

func newTestApiContext(t *testing.T) *common.ApiContext {
  t.Helper()
  db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "api.db")), &gorm.Config{
    Logger: logger.Discard,
  })
  require.NoError(t, err)
  require.NoError(t, models.AutoMigrate(db))
  t.Cleanup(func() { common.CloseDB(db) })
  return &common.ApiContext{Db: db, Ctx: context.Background()}
}

func get(t *testing.T, handler http.Handler, path string) (int, envelope) {
  t.Helper()
  rec := httptest.NewRecorder()
  handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
  var body envelope
  require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
  return rec.Code, body
}

func TestStreamsStatus(t *testing.T) {
  router := NewRouter(newTestApiContext(t), staticStatus{State: "streaming", LocationID: 3, Written: 7})

  code, body := get(t, router, "/v1/streams/status")
  require.Equal(t, http.StatusOK, code)
  assert.True(t, body.Success)

  var status streams.Status
  require.NoError(t, json.Unmarshal(body.Data, &status))
  assert.Equal(t, "streaming", status.State)
  assert.Equal(t, int64(3), status.LocationID)
  assert.Equal(t, uint64(7), status.Written)
}

func TestStreamsStatusWithoutManager(t *testing.T) {
  router := NewRouter(newTestApiContext(t), nil)

  code, body := get(t, router, "/v1/streams/status")
  assert.Equal(t, http.StatusNotFound, code)
  assert.False(t, body.Success)
}

func TestTrendsLatest(t *testing.T) {
  apiContext := newTestApiContext(t)
  asOf := time.Date(2020, 1, 1, 10, 0, 0, 0, time.UTC)
  repo := &repositories.TrendsRepository{Db: apiContext.Db}
  require.NoError(t, repo.WriteTrendSnapshot(context.Background(), []*models.Trend{
    {Woeid: 44418, WoeidName: "London", AsOf: asOf, Created: asOf, Rank: 1, Name: "#one"},
    {Woeid: 44418, WoeidName: "London", AsOf: asOf, Created: asOf, Rank: 2, Name: "#two"},
  }))
  router := NewRouter(apiContext, nil)

  code, body := get(t, router, "/v1/trends/44418")
  require.Equal(t, http.StatusOK, code)
  var trends []*TrendInfo
  require.NoError(t, json.Unmarshal(body.Data, &trends))
  require.Len(t, trends, 2)
  assert.Equal(t, "#one", trends[0].Name)
  assert.Equal(t, 2, trends[1].Rank)

  code, body = get(t, router, "/v1/trends/1")
  assert.Equal(t, http.StatusNotFound, code)
  require.NotNil(t, body.Error)
  assert.Equal(t, 1000, body.Error.Code)
}

func TestTrendsLatestStoreError(t *testing.T) {
  apiContext := newTestApiContext(t)
  router := NewRouter(apiContext, nil)
  common.CloseDB(apiContext.Db)

  code, body := get(t, router, "/v1/trends/44418")
  assert.Equal(t, http.StatusInternalServerError, code)
  require.NotNil(t, body.Error)
  assert.Equal(t, 1001, body.Error.Code)
}
