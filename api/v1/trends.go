package v1

import (
  "net/http"
  "strconv"
  "time"

  "github.com/go-chi/chi/v5"

  "scraper.local/twitter-geo-scraper/api"
  "scraper.local/twitter-geo-scraper/common"
  "scraper.local/twitter-geo-scraper/repositories"
)

type TrendInfo struct {
  Rank        int       `json:"rank"`
  Name        string    `json:"name"`
  Url         string    `json:"url"`
  Query       string    `json:"query"`
  TweetVolume *int64    `json:"tweet_volume"`
  AsOf        time.Time `json:"as_of"`
}

type TrendsHandler struct {
  ApiContext *common.ApiContext
  Repository *repositories.TrendsRepository
}

func NewTrendsRouter(apiContext *common.ApiContext) http.Handler {
  h := TrendsHandler{
    ApiContext: apiContext,
  }
  h.Repository = &repositories.TrendsRepository{
    Db: h.ApiContext.Db,
  }

  r := chi.NewRouter()
  r.Get("/{woeid:[0-9]+}", h.Latest)

  return r
}

func (h *TrendsHandler) Latest(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }

  woeid, err := strconv.ParseInt(chi.URLParam(r, "woeid"), 10, 64)
  if err != nil || woeid < 1 {
    response.Error(http.StatusForbidden, 1004, "woeid not valid")
    return
  }

  trends, err := h.Repository.Latest(woeid)
  if err != nil {
    response.Error(http.StatusInternalServerError, 1001, "trends unavailable")
    return
  }
  if len(trends) == 0 {
    response.Error(http.StatusNotFound, 1000, "no snapshot for woeid")
    return
  }
  data := make([]*TrendInfo, len(trends))
  for i, trend := range trends {
    data[i] = &TrendInfo{
      Rank:        trend.Rank,
      Name:        trend.Name,
      Url:         trend.Url,
      Query:       trend.Query,
      TweetVolume: trend.TweetVolume,
      AsOf:        trend.AsOf,
    }
  }
  response.Json(data)
}
