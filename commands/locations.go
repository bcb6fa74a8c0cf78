package commands

import (
  "os"

  "github.com/urfave/cli/v2"
  "go.uber.org/zap"

  "scraper.local/twitter-geo-scraper/config"
  "scraper.local/twitter-geo-scraper/repositories/scrapers"
)

type LocationsHandler struct {
  Creds  *config.Credentials
  Logger *zap.Logger
}

func NewLocationsCommand() *cli.Command {
  var h LocationsHandler
  return &cli.Command{
    Name:  "locations",
    Usage: "download the catalogue of locations with trends",
    Flags: []cli.Flag{
      &cli.StringFlag{
        Name:  "output",
        Value: "woeidList.json",
      },
    },
    Before: func(c *cli.Context) error {
      creds, logger, err := bootstrap(c)
      if err != nil {
        return cli.Exit(err.Error(), 1)
      }
      h = LocationsHandler{
        Creds:  creds,
        Logger: logger,
      }
      return nil
    },
    Action: func(c *cli.Context) error {
      if err := h.available(c.String("output")); err != nil {
        return cli.Exit(err.Error(), 1)
      }
      return nil
    },
  }
}

func (h *LocationsHandler) available(output string) error {
  ctx, cancel := signalContext()
  defer cancel()

  body, locations, err := scrapers.NewTrendsRepository(h.Creds).Available(ctx)
  if err != nil {
    return err
  }
  if err := os.WriteFile(output, body, 0644); err != nil {
    return err
  }
  h.Logger.Info("locations saved", zap.String("output", output), zap.Int("locations", len(locations)))
  return nil
}
