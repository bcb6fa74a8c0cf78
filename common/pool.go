package common

import (
  "context"
  "database/sql"
  "errors"
  "fmt"
  "time"

  gomysql "github.com/go-sql-driver/mysql"
  "github.com/go-redis/redis/v8"
  "github.com/hibiken/asynq"
  "github.com/nats-io/nats.go"
  "go.uber.org/zap"
  "gorm.io/driver/mysql"
  "gorm.io/driver/postgres"
  "gorm.io/gorm"
  "gorm.io/gorm/logger"

  "scraper.local/twitter-geo-scraper/config"
)

// ErrConnect marks a backing service that could not be reached.
var ErrConnect = errors.New("connect error")

type ApiContext struct {
  Db     *gorm.DB
  Rdb    *redis.Client
  Ctx    context.Context
  Logger *zap.Logger
}

type NatsContext struct {
  Rdb    *redis.Client
  Ctx    context.Context
  Conn   *nats.Conn
  Logger *zap.Logger
}

type AnsqServerContext struct {
  Rdb    *redis.Client
  Ctx    context.Context
  Mux    *asynq.ServeMux
  Logger *zap.Logger
  Creds  *config.Credentials
}

type AnsqClientContext struct {
  Rdb    *redis.Client
  Ctx    context.Context
  Conn   *asynq.Client
  Logger *zap.Logger
}

func NewRedis(creds *config.Credentials) *redis.Client {
  return redis.NewClient(&redis.Options{
    Addr:     creds.RedisHost,
    Password: creds.RedisPassword,
    DB:       creds.RedisDb,
  })
}

// NewDBPool opens the sql pool for the configured dialect. MySQL sessions are pinned to
// utf8mb4 with a binary collation so four-byte text survives a round trip and natural keys
// compare byte for byte.
func NewDBPool(creds *config.Credentials) (*sql.DB, error) {
  var (
    driver string
    dsn    string
  )
  switch creds.DbDriver {
  case "postgres":
    port := creds.Port
    if port == 0 {
      port = 5432
    }
    driver = "pgx"
    dsn = fmt.Sprintf(
      "host=%s port=%d user=%s password=%s dbname=%s sslmode=disable client_encoding=UTF8",
      creds.Host,
      port,
      creds.DbUsername,
      creds.DbPassword,
      creds.Db,
    )
  default:
    driver = "mysql"
    dsn = MysqlConfig(creds).FormatDSN()
  }

  pool, err := sql.Open(driver, dsn)
  if err != nil {
    return nil, fmt.Errorf("%w: open %s: %v", ErrConnect, driver, err)
  }
  ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
  defer cancel()
  if err := pool.PingContext(ctx); err != nil {
    pool.Close()
    return nil, fmt.Errorf("%w: ping %s@%s: %v", ErrConnect, creds.Db, creds.Host, err)
  }
  pool.SetMaxIdleConns(5)
  pool.SetMaxOpenConns(10)
  pool.SetConnMaxLifetime(5 * time.Minute)
  return pool, nil
}

// MysqlConfig selects utf8mb4_bin in the handshake. No charset param is set: the driver
// would answer it with a bare SET NAMES and fall back to the charset's default collation.
func MysqlConfig(creds *config.Credentials) *gomysql.Config {
  port := creds.Port
  if port == 0 {
    port = 3306
  }
  cfg := gomysql.NewConfig()
  cfg.Net = "tcp"
  cfg.Addr = fmt.Sprintf("%s:%d", creds.Host, port)
  cfg.User = creds.DbUsername
  cfg.Passwd = creds.DbPassword
  cfg.DBName = creds.Db
  cfg.Collation = "utf8mb4_bin"
  cfg.ParseTime = true
  cfg.Loc = time.UTC
  return cfg
}

func NewDB(creds *config.Credentials) (*gorm.DB, error) {
  pool, err := NewDBPool(creds)
  if err != nil {
    return nil, err
  }
  var dialector gorm.Dialector
  if creds.DbDriver == "postgres" {
    dialector = postgres.New(postgres.Config{Conn: pool})
  } else {
    dialector = mysql.New(mysql.Config{Conn: pool})
  }
  db, err := gorm.Open(dialector, &gorm.Config{
    Logger: logger.Default.LogMode(logger.Warn),
  })
  if err != nil {
    pool.Close()
    return nil, fmt.Errorf("%w: %v", ErrConnect, err)
  }
  return db, nil
}

// WithDB opens a connection for the duration of fn and always releases it.
func WithDB(creds *config.Credentials, fn func(db *gorm.DB) error) error {
  db, err := NewDB(creds)
  if err != nil {
    return err
  }
  defer CloseDB(db)
  return fn(db)
}

func CloseDB(db *gorm.DB) {
  if pool, err := db.DB(); err == nil {
    pool.Close()
  }
}

func NewAsynqServer(creds *config.Credentials) *asynq.Server {
  rdb := asynq.RedisClientOpt{
    Addr: creds.AsynqRedisAddr,
    DB:   creds.AsynqRedisDb,
  }
  return asynq.NewServer(rdb, asynq.Config{
    Concurrency: creds.Trends.Concurrency,
    Queues: map[string]int{
      config.ASYNQ_QUEUE_TRENDS: 1,
    },
  })
}

func NewAsynqClient(creds *config.Credentials) *asynq.Client {
  return asynq.NewClient(asynq.RedisClientOpt{
    Addr: creds.AsynqRedisAddr,
    DB:   creds.AsynqRedisDb,
  })
}

// NewNats returns nil without error when no server is configured.
func NewNats(creds *config.Credentials) (*nats.Conn, error) {
  if creds.NatsUrl == "" {
    return nil, nil
  }
  nc, err := nats.Connect(creds.NatsUrl, nats.Token(creds.NatsToken))
  if err != nil {
    return nil, fmt.Errorf("%w: nats %s: %v", ErrConnect, creds.NatsUrl, err)
  }
  return nc, nil
}
