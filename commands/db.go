package commands

import (
  "github.com/urfave/cli/v2"
  "go.uber.org/zap"

  "scraper.local/twitter-geo-scraper/common"
  "scraper.local/twitter-geo-scraper/config"
  "scraper.local/twitter-geo-scraper/models"
)

type DbHandler struct {
  Creds  *config.Credentials
  Logger *zap.Logger
}

func NewDbCommand() *cli.Command {
  var h DbHandler
  return &cli.Command{
    Name:  "db",
    Usage: "",
    Before: func(c *cli.Context) error {
      creds, logger, err := bootstrap(c)
      if err != nil {
        return cli.Exit(err.Error(), 1)
      }
      h = DbHandler{
        Creds:  creds,
        Logger: logger,
      }
      return nil
    },
    Subcommands: []*cli.Command{
      {
        Name:  "migrate",
        Usage: "create or update the store schema",
        Action: func(c *cli.Context) error {
          if err := h.migrate(); err != nil {
            return cli.Exit(err.Error(), 1)
          }
          return nil
        },
      },
    },
  }
}

func (h *DbHandler) migrate() error {
  h.Logger.Info("process migrator", zap.String("driver", h.Creds.DbDriver), zap.String("db", h.Creds.Db))
  db, err := common.NewDB(h.Creds)
  if err != nil {
    return err
  }
  defer common.CloseDB(db)
  return models.AutoMigrate(db)
}
