package common

import (
  "go.uber.org/zap"
  "go.uber.org/zap/zapcore"
)

// NewLogger builds a JSON logger on stderr, also appending to logFile when one is given.
func NewLogger(level string, logFile string) (*zap.Logger, error) {
  cfg := zap.NewProductionConfig()
  if level != "" {
    lvl, err := zap.ParseAtomicLevel(level)
    if err != nil {
      return nil, err
    }
    cfg.Level = lvl
  }
  cfg.EncoderConfig.TimeKey = "time"
  cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
  cfg.OutputPaths = []string{"stderr"}
  if logFile != "" {
    cfg.OutputPaths = append(cfg.OutputPaths, logFile)
  }
  return cfg.Build()
}
