package config

import "time"

const (
  NATS_TWEETS_CREATE = "tweets.create"
)

const (
  ASYNQ_QUEUE_TRENDS         = "trends"
  ASYNQ_JOBS_TRENDS_SNAPSHOT = "trends:snapshot"
)

const (
  COUNTERS_STREAMS_LOCATION = "counters:streams:location:%d"
)

const (
  LOCKS_STREAMS_LOCATION = "locks:streams:location:%d"
  LOCKS_TRENDS_SNAPSHOT  = "locks:trends:snapshot:%d"
)

const (
  STREAM_FILTER_URL    = "https://stream.twitter.com/1.1/statuses/filter.json"
  TRENDS_PLACE_URL     = "https://api.twitter.com/1.1/trends/place.json"
  TRENDS_AVAILABLE_URL = "https://api.twitter.com/1.1/trends/available.json"
  FLICKR_PLACES_URL    = "https://www.flickr.com/services/rest/"
)

const (
  STREAM_LEASE_TTL     = 60 * time.Second
  STREAM_LEASE_REFRESH = 20 * time.Second
)
