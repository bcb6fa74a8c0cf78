package v1

import (
  "net/http"

  "github.com/go-chi/chi/v5"
  "github.com/go-chi/chi/v5/middleware"

  "scraper.local/twitter-geo-scraper/common"
)

// NewRouter mounts the read-only endpoints. manager may be nil when no stream runs in
// this process.
func NewRouter(apiContext *common.ApiContext, manager StatusProvider) http.Handler {
  r := chi.NewRouter()
  r.Use(middleware.Recoverer)
  r.Route("/v1", func(r chi.Router) {
    r.Mount("/streams", NewStreamsRouter(apiContext, manager))
    r.Mount("/trends", NewTrendsRouter(apiContext))
  })
  return r
}
