package common

import (
  "testing"

  gomysql "github.com/go-sql-driver/mysql"
  "github.com/stretchr/testify/assert"
  "github.com/stretchr/testify/require"

  "scraper.local/twitter-geo-scraper/config"
)

func TestMysqlConfig(t *testing.T) {
  dsn := MysqlConfig(&config.Credentials{
    Host:       "db.internal",
    DbUsername: "scraper",
    DbPassword: "secret",
    Db:         "twitter",
  }).FormatDSN()

  assert.Contains(t, dsn, "tcp(db.internal:3306)/twitter")
  assert.Contains(t, dsn, "collation=utf8mb4_bin")
  assert.NotContains(t, dsn, "charset=")

  parsed, err := gomysql.ParseDSN(dsn)
  require.NoError(t, err)
  assert.Equal(t, "utf8mb4_bin", parsed.Collation)
  assert.True(t, parsed.ParseTime)
  assert.NotContains(t, parsed.Params, "charset")
}

func TestMysqlConfigPort(t *testing.T) {
  cfg := MysqlConfig(&config.Credentials{Host: "127.0.0.1", Port: 33060})
  assert.Equal(t, "127.0.0.1:33060", cfg.Addr)
}
