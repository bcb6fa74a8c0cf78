package repositories

import (
  "context"
  "time"

  "gorm.io/gorm"

  "scraper.local/twitter-geo-scraper/models"
)

type TrendsRepository struct {
  Db *gorm.DB
}

// WriteTrendSnapshot appends one snapshot in a single transaction.
func (r *TrendsRepository) WriteTrendSnapshot(ctx context.Context, trends []*models.Trend) error {
  if len(trends) == 0 {
    return nil
  }
  err := r.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return tx.Create(&trends).Error
  })
  if err != nil {
    return &WriteError{Step: STEP_TREND_SNAPSHOT, Err: err}
  }
  return nil
}

// Latest returns the most recent snapshot stored for a location, ordered by rank.
func (r *TrendsRepository) Latest(woeid int64) ([]*models.Trend, error) {
  var rows []*models.Trend
  err := r.Db.Where("trend_woeid", woeid).
    Order("trend_datetime_asof DESC").
    Order("trend_rank ASC").
    Limit(200).
    Find(&rows).Error
  if err != nil {
    return nil, err
  }
  if len(rows) == 0 {
    return nil, nil
  }
  var asOf time.Time
  trends := make([]*models.Trend, 0, len(rows))
  for i, trend := range rows {
    if i == 0 {
      asOf = trend.AsOf
    }
    if !trend.AsOf.Equal(asOf) {
      break
    }
    trends = append(trends, trend)
  }
  return trends, nil
}
