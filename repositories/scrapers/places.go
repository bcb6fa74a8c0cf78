package scrapers

import (
  "context"
  "fmt"
  "io"
  "math"
  "net/http"
  "net/url"
  "strconv"
  "strings"
  "time"

  "github.com/tidwall/gjson"

  "scraper.local/twitter-geo-scraper/common"
  "scraper.local/twitter-geo-scraper/config"
  "scraper.local/twitter-geo-scraper/models"
)

// PlacesRepository resolves a location id to its bounding box through the flickr places API.
type PlacesRepository struct {
  HttpClient *http.Client
  Url        string
  ApiKey     string
}

func NewPlacesRepository(creds *config.Credentials) *PlacesRepository {
  return &PlacesRepository{
    HttpClient: common.NewHttpClient(creds.Proxy, 30*time.Second),
    Url:        config.FLICKR_PLACES_URL,
    ApiKey:     creds.FlickrKey,
  }
}

func (r *PlacesRepository) BoundingBox(ctx context.Context, woeid int64) (bbox models.BoundingBox, err error) {
  q := url.Values{}
  q.Set("method", "flickr.places.getInfo")
  q.Set("api_key", r.ApiKey)
  q.Set("woe_id", strconv.FormatInt(woeid, 10))
  q.Set("format", "json")
  q.Set("nojsoncallback", "1")

  req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.Url+"?"+q.Encode(), nil)
  if err != nil {
    return
  }
  resp, err := r.HttpClient.Do(req)
  if err != nil {
    err = fmt.Errorf("%w: %v", ErrUpstream, err)
    return
  }
  defer resp.Body.Close()
  if resp.StatusCode != http.StatusOK {
    err = requestError(resp)
    return
  }
  body, err := io.ReadAll(resp.Body)
  if err != nil {
    return
  }

  if stat := gjson.GetBytes(body, "stat").String(); stat != "ok" {
    err = fmt.Errorf("%w: places %d: %s", ErrUpstream, woeid, gjson.GetBytes(body, "message").String())
    return
  }
  polyline := gjson.GetBytes(body, "place.shapedata.polylines.polyline.0._content").String()
  return ParsePolyline(polyline)
}

// ParsePolyline reads space separated "lat,lon" pairs and returns their enclosing box.
func ParsePolyline(polyline string) (bbox models.BoundingBox, err error) {
  points := strings.Fields(polyline)
  if len(points) == 0 {
    err = fmt.Errorf("%w: empty polyline", ErrUpstream)
    return
  }
  bbox = models.BoundingBox{
    MinLon: math.Inf(1),
    MinLat: math.Inf(1),
    MaxLon: math.Inf(-1),
    MaxLat: math.Inf(-1),
  }
  for _, point := range points {
    pair := strings.Split(point, ",")
    if len(pair) != 2 {
      return models.BoundingBox{}, fmt.Errorf("%w: bad polyline point %q", ErrUpstream, point)
    }
    lat, e1 := strconv.ParseFloat(pair[0], 64)
    lon, e2 := strconv.ParseFloat(pair[1], 64)
    if e1 != nil || e2 != nil {
      return models.BoundingBox{}, fmt.Errorf("%w: bad polyline point %q", ErrUpstream, point)
    }
    bbox.MinLat = math.Min(bbox.MinLat, lat)
    bbox.MaxLat = math.Max(bbox.MaxLat, lat)
    bbox.MinLon = math.Min(bbox.MinLon, lon)
    bbox.MaxLon = math.Max(bbox.MaxLon, lon)
  }
  return bbox, nil
}
