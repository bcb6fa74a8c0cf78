package config

import (
  "errors"
  "fmt"
  "strings"
  "time"

  "github.com/ilyakaznacheev/cleanenv"
)

// ErrConfig marks credentials that are unreadable or incomplete. It is fatal at startup.
var ErrConfig = errors.New("config error")

// Credentials is the structured credentials file, read once at startup. Key names follow
// the credentials.json the scraper has always used; environment variables override them.
type Credentials struct {
  Host       string `json:"host" env:"DB_HOST"`
  Port       int    `json:"dbPort" env:"DB_PORT"`
  DbUsername string `json:"dbUsername" env:"DB_USERNAME"`
  DbPassword string `json:"dbPassword" env:"DB_PASSWORD"`
  Db         string `json:"db" env:"DB_NAME"`
  DbDriver   string `json:"dbDriver" env:"DB_DRIVER" env-default:"mysql"`

  TwitterAppKey    string `json:"twitter_app_key" env:"TWITTER_APP_KEY"`
  TwitterAppSecret string `json:"twitter_app_secret" env:"TWITTER_APP_SECRET"`
  TwitterKey       string `json:"twitter_key" env:"TWITTER_KEY"`
  TwitterSecret    string `json:"twitter_secret" env:"TWITTER_SECRET"`

  FlickrKey    string `json:"flickr_key" env:"FLICKR_KEY"`
  FlickrSecret string `json:"flickr_secret" env:"FLICKR_SECRET"`

  RedisHost      string `json:"redis_host" env:"REDIS_HOST"`
  RedisPassword  string `json:"redis_password" env:"REDIS_PASSWORD"`
  RedisDb        int    `json:"redis_db" env:"REDIS_DB"`
  NatsUrl        string `json:"nats_url" env:"NATS_URL"`
  NatsToken      string `json:"nats_token" env:"NATS_TOKEN"`
  AsynqRedisAddr string `json:"asynq_redis_addr" env:"ASYNQ_REDIS_ADDR"`
  AsynqRedisDb   int    `json:"asynq_redis_db" env:"ASYNQ_REDIS_DB"`
  Proxy          string `json:"proxy" env:"SCRAPER_PROXY"`

  Stream StreamConfig `json:"-"`
  Trends TrendsConfig `json:"-"`
}

type StreamConfig struct {
  Cooldown          time.Duration `env:"STREAM_COOLDOWN" env-default:"15m"`
  BackoffInitial    time.Duration `env:"STREAM_BACKOFF_INITIAL" env-default:"5s"`
  BackoffMax        time.Duration `env:"STREAM_BACKOFF_MAX" env-default:"320s"`
  BackoffMaxElapsed time.Duration `env:"STREAM_BACKOFF_MAX_ELAPSED" env-default:"1h"`
  MaxReconnects     uint64        `env:"STREAM_MAX_RECONNECTS" env-default:"10"`
  StallTimeout      time.Duration `env:"STREAM_STALL_TIMEOUT" env-default:"90s"`
  CommitPerStep     bool          `env:"STORE_COMMIT_PER_STEP" env-default:"false"`
}

type TrendsConfig struct {
  Schedule    string `env:"TRENDS_SCHEDULE" env-default:"@every 15m"`
  Concurrency int    `env:"ASYNQ_CONCURRENCY" env-default:"2"`
}

// Load reads the credentials file with environment overrides and validates it.
func Load(path string) (*Credentials, error) {
  creds := &Credentials{}
  if err := cleanenv.ReadConfig(path, creds); err != nil {
    return nil, fmt.Errorf("%w: read %s: %v", ErrConfig, path, err)
  }
  if err := creds.Validate(); err != nil {
    return nil, err
  }
  return creds, nil
}

func (c *Credentials) Validate() error {
  var missing []string
  required := map[string]string{
    "host":               c.Host,
    "dbUsername":         c.DbUsername,
    "db":                 c.Db,
    "twitter_app_key":    c.TwitterAppKey,
    "twitter_app_secret": c.TwitterAppSecret,
    "twitter_key":        c.TwitterKey,
    "twitter_secret":     c.TwitterSecret,
  }
  for _, key := range []string{"host", "dbUsername", "db", "twitter_app_key", "twitter_app_secret", "twitter_key", "twitter_secret"} {
    if required[key] == "" {
      missing = append(missing, key)
    }
  }
  if len(missing) > 0 {
    return fmt.Errorf("%w: missing %s", ErrConfig, strings.Join(missing, ", "))
  }
  switch c.DbDriver {
  case "mysql", "postgres":
  default:
    return fmt.Errorf("%w: unsupported dbDriver %q", ErrConfig, c.DbDriver)
  }
  return nil
}
