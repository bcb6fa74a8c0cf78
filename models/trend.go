package models

import (
  "time"
)

// Trend is one ranked row of a trends snapshot. Snapshots are append-only.
type Trend struct {
  Woeid           int64     `gorm:"column:trend_woeid;not null;index:idx_trends,priority:1"`
  WoeidName       string    `gorm:"column:trend_woeid_name;size:100;not null"`
  AsOf            time.Time `gorm:"column:trend_datetime_asof;not null;index:idx_trends,priority:2"`
  Created         time.Time `gorm:"column:trend_datetime_createdat;not null"`
  Rank            int       `gorm:"column:trend_rank;not null"`
  Name            string    `gorm:"column:trend_name;size:200;not null"`
  Url             string    `gorm:"column:trend_url;size:400;not null"`
  PromotedContent *string   `gorm:"column:trend_promotedcontent;size:200"`
  Query           string    `gorm:"column:trend_query;size:400;not null"`
  TweetVolume     *int64    `gorm:"column:trend_tweetvolume"`
}

func (m *Trend) TableName() string {
  return "trends"
}
