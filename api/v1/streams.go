package v1

import (
  "net/http"

  "github.com/go-chi/chi/v5"

  "scraper.local/twitter-geo-scraper/api"
  "scraper.local/twitter-geo-scraper/common"
  "scraper.local/twitter-geo-scraper/streams"
)

type StatusProvider interface {
  Status() streams.Status
}

type StreamsHandler struct {
  ApiContext *common.ApiContext
  Manager    StatusProvider
}

func NewStreamsRouter(apiContext *common.ApiContext, manager StatusProvider) http.Handler {
  h := StreamsHandler{
    ApiContext: apiContext,
    Manager:    manager,
  }

  r := chi.NewRouter()
  r.Get("/status", h.Status)

  return r
}

func (h *StreamsHandler) Status(
  w http.ResponseWriter,
  r *http.Request,
) {
  response := &api.ResponseHandler{
    Writer: w,
  }
  if h.Manager == nil {
    response.Error(http.StatusNotFound, 1004, "no stream running")
    return
  }
  response.Json(h.Manager.Status())
}
