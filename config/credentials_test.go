package config

import (
  "os"
  "path/filepath"
  "testing"
  "time"

  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"
)

func writeCredentials(t *testing.T, body string) string {
  t.Helper()
  path := filepath.Join(t.TempDir(), "credentials.json")
  require.NoError(t, os.WriteFile(path, []byte(body), 0600))
  return path
}

func TestLoad(t *testing.T) {
  path := writeCredentials(t, `{
    "host": "127.0.0.1",
    "dbUsername": "scraper",
    "dbPassword": "secret",
    "db": "tweets",
    "dbTable": "unused",
    "twitter_app_key": "ak",
    "twitter_app_secret": "as",
    "twitter_key": "k",
    "twitter_secret": "s",
    "flickr_key": "fk",
    "flickr_secret": "fs"
  }`)

  creds, err := Load(path)
  require.NoError(t, err)
  assert.Equal(t, "127.0.0.1", creds.Host)
  assert.Equal(t, "tweets", creds.Db)
  assert.Equal(t, "mysql", creds.DbDriver)
  assert.Equal(t, "fk", creds.FlickrKey)
  assert.Equal(t, 15*time.Minute, creds.Stream.Cooldown)
  assert.Equal(t, uint64(10), creds.Stream.MaxReconnects)
  assert.False(t, creds.Stream.CommitPerStep)
  assert.Equal(t, "@every 15m", creds.Trends.Schedule)
}

func TestLoadEnvOverride(t *testing.T) {
  path := writeCredentials(t, `{
    "host": "127.0.0.1",
    "dbUsername": "scraper",
    "db": "tweets",
    "twitter_app_key": "ak",
    "twitter_app_secret": "as",
    "twitter_key": "k",
    "twitter_secret": "s"
  }`)
  t.Setenv("DB_HOST", "db.internal")
  t.Setenv("STREAM_COOLDOWN", "1m")

  creds, err := Load(path)
  require.NoError(t, err)
  assert.Equal(t, "db.internal", creds.Host)
  assert.Equal(t, time.Minute, creds.Stream.Cooldown)
}

func TestLoadErrors(t *testing.T) {
  tests := []struct {
    name string
    path func(t *testing.T) string
  }{
    {
      name: "missing file",
      path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "absent.json") },
    },
    {
      name: "malformed json",
      path: func(t *testing.T) string { return writeCredentials(t, `{"host": `) },
    },
    {
      name: "missing twitter keys",
      path: func(t *testing.T) string {
        return writeCredentials(t, `{"host": "h", "dbUsername": "u", "db": "d"}`)
      },
    },
    {
      name: "unsupported driver",
      path: func(t *testing.T) string {
        return writeCredentials(t, `{"host": "h", "dbUsername": "u", "db": "d", "dbDriver": "oracle",
          "twitter_app_key": "a", "twitter_app_secret": "b", "twitter_key": "c", "twitter_secret": "d"}`)
      },
    },
  }

  for _, tt := range tests {
    t.Run(tt.name, func(t *testing.T) {
      _, err := Load(tt.path(t))
      require.Error(t, err)
      assert.ErrorIs(t, err, ErrConfig)
    })
  }
}
