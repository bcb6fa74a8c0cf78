package common

import (
  "go.uber.org/zap"

  "scraper.local/twitter-geo-scraper/config"
)

// Bootstrap loads the credentials file and builds the process logger.
func Bootstrap(credentials string, level string, logFile string) (*config.Credentials, *zap.Logger, error) {
  creds, err := config.Load(credentials)
  if err != nil {
    return nil, nil, err
  }
  logger, err := NewLogger(level, logFile)
  if err != nil {
    return nil, nil, err
  }
  return creds, logger, nil
}
