package commands

import (
  "github.com/urfave/cli/v2"

  "scraper.local/twitter-geo-scraper/commands/queue"
)

func NewQueueCommand() *cli.Command {
  return &cli.Command{
    Name:  "queue",
    Usage: "run the snapshot workers or the ingest counters",
    Subcommands: []*cli.Command{
      queue.NewAsynqCommand(),
      queue.NewNatsCommand(),
    },
  }
}
