package scrapers

import (
  "context"
  "fmt"
  "io"
  "net/http"
  "net/url"
  "strconv"
  "time"

  "github.com/tidwall/gjson"
  "gorm.io/gorm"

  "scraper.local/twitter-geo-scraper/config"
  "scraper.local/twitter-geo-scraper/models"
  "scraper.local/twitter-geo-scraper/repositories"
)

// SnapshotStore hands fn a store connection that lives only for the call.
type SnapshotStore func(fn func(db *gorm.DB) error) error

type TrendsRepository struct {
  HttpClient   *http.Client
  Url          string
  AvailableUrl string
}

func NewTrendsRepository(creds *config.Credentials) *TrendsRepository {
  return &TrendsRepository{
    HttpClient:   NewOAuthClient(creds, 30*time.Second),
    Url:          config.TRENDS_PLACE_URL,
    AvailableUrl: config.TRENDS_AVAILABLE_URL,
  }
}

// Fetch returns the current ranked trends for a location. Rank is the 1-based list position.
func (r *TrendsRepository) Fetch(ctx context.Context, woeid int64) ([]*models.Trend, error) {
  q := url.Values{}
  q.Set("id", strconv.FormatInt(woeid, 10))
  body, err := r.get(ctx, r.Url+"?"+q.Encode())
  if err != nil {
    return nil, err
  }

  snapshot := gjson.GetBytes(body, "0")
  if !snapshot.IsObject() {
    return nil, fmt.Errorf("%w: unexpected trends payload for %d", ErrUpstream, woeid)
  }
  asOf, err := time.Parse(time.RFC3339, snapshot.Get("as_of").String())
  if err != nil {
    return nil, fmt.Errorf("%w: as_of: %v", ErrUpstream, err)
  }
  created, err := time.Parse(time.RFC3339, snapshot.Get("created_at").String())
  if err != nil {
    created = asOf
  }
  location := snapshot.Get("locations.0")
  if location.Get("woeid").Exists() {
    woeid = location.Get("woeid").Int()
  }

  var trends []*models.Trend
  snapshot.Get("trends").ForEach(func(_, item gjson.Result) bool {
    trend := &models.Trend{
      Woeid:     woeid,
      WoeidName: location.Get("name").String(),
      AsOf:      asOf.UTC(),
      Created:   created.UTC(),
      Rank:      len(trends) + 1,
      Name:      item.Get("name").String(),
      Url:       item.Get("url").String(),
      Query:     item.Get("query").String(),
    }
    if v := item.Get("promoted_content"); v.Exists() && v.Type != gjson.Null {
      promoted := v.String()
      trend.PromotedContent = &promoted
    }
    if v := item.Get("tweet_volume"); v.Exists() && v.Type != gjson.Null {
      volume := v.Int()
      trend.TweetVolume = &volume
    }
    trends = append(trends, trend)
    return true
  })
  return trends, nil
}

// Snapshot fetches the trends for a location and appends them to the store.
func (r *TrendsRepository) Snapshot(ctx context.Context, woeid int64, store SnapshotStore) ([]*models.Trend, error) {
  trends, err := r.Fetch(ctx, woeid)
  if err != nil {
    return nil, err
  }
  err = store(func(db *gorm.DB) error {
    return (&repositories.TrendsRepository{Db: db}).WriteTrendSnapshot(ctx, trends)
  })
  if err != nil {
    return nil, err
  }
  return trends, nil
}

// Available returns the raw location catalogue and its parsed entries.
func (r *TrendsRepository) Available(ctx context.Context) ([]byte, []*Location, error) {
  body, err := r.get(ctx, r.AvailableUrl)
  if err != nil {
    return nil, nil, err
  }
  if !gjson.ValidBytes(body) {
    return nil, nil, fmt.Errorf("%w: invalid catalogue payload", ErrUpstream)
  }
  var locations []*Location
  gjson.ParseBytes(body).ForEach(func(_, item gjson.Result) bool {
    locations = append(locations, &Location{
      Name:        item.Get("name").String(),
      Woeid:       item.Get("woeid").Int(),
      Country:     item.Get("country").String(),
      CountryCode: item.Get("countryCode").String(),
      PlaceType:   item.Get("placeType.name").String(),
      ParentID:    item.Get("parentid").Int(),
    })
    return true
  })
  return body, locations, nil
}

func (r *TrendsRepository) get(ctx context.Context, target string) ([]byte, error) {
  req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
  if err != nil {
    return nil, err
  }
  resp, err := r.HttpClient.Do(req)
  if err != nil {
    return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
  }
  defer resp.Body.Close()
  if resp.StatusCode != http.StatusOK {
    return nil, requestError(resp)
  }
  return io.ReadAll(resp.Body)
}
