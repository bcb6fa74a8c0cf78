package queue

import (
  "github.com/urfave/cli/v2"
  "go.uber.org/zap"

  "scraper.local/twitter-geo-scraper/common"
  "scraper.local/twitter-geo-scraper/config"
)

func bootstrap(c *cli.Context) (*config.Credentials, *zap.Logger, error) {
  return common.Bootstrap(c.String("credentials"), c.String("log-level"), c.String("log-file"))
}
