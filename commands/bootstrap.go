package commands

import (
  "context"
  "os"
  "os/signal"

  "github.com/urfave/cli/v2"
  "go.uber.org/zap"
  "golang.org/x/sys/unix"

  "scraper.local/twitter-geo-scraper/common"
  "scraper.local/twitter-geo-scraper/config"
)

// Flags shared by every command, read through the context lineage.
func NewGlobalFlags() []cli.Flag {
  return []cli.Flag{
    &cli.StringFlag{
      Name:    "credentials",
      Usage:   "path to the credentials file",
      Value:   "credentials.json",
      EnvVars: []string{"SCRAPER_CREDENTIALS"},
    },
    &cli.StringFlag{
      Name:    "log-level",
      Value:   "info",
      EnvVars: []string{"SCRAPER_LOG_LEVEL"},
    },
    &cli.StringFlag{
      Name:    "log-file",
      Usage:   "also append logs to this file",
      EnvVars: []string{"SCRAPER_LOG_FILE"},
    },
  }
}

func bootstrap(c *cli.Context) (*config.Credentials, *zap.Logger, error) {
  return common.Bootstrap(c.String("credentials"), c.String("log-level"), c.String("log-file"))
}

// signalContext is cancelled on interrupt or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
  return signal.NotifyContext(context.Background(), os.Interrupt, unix.SIGTERM)
}
