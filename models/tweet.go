package models

import (
  "time"

  "gorm.io/datatypes"
)

// Tweet is upserted on TweetID. Field order is the insert column order.
type Tweet struct {
  TweetID           int64          `gorm:"column:tweet_id;primaryKey;autoIncrement:false"`
  CreatedString     string         `gorm:"column:tweet_createdstring;size:40;not null"`
  Created           time.Time      `gorm:"column:tweet_created;not null;index"`
  Content           string         `gorm:"column:tweet_content;size:1120;not null"`
  Source            string         `gorm:"column:tweet_source;size:512;not null"`
  Truncated         int            `gorm:"column:tweet_truncated;not null"`
  ReplyToID         *int64         `gorm:"column:tweet_replyto_id"`
  ReplyToUserID     *int64         `gorm:"column:tweet_replyto_userid"`
  ReplyToScreenName *string        `gorm:"column:tweet_replyto_screenname;size:50"`
  UserID            int64          `gorm:"column:tweet_user_id;not null;index"`
  PlaceID           *string        `gorm:"column:tweet_place_id;size:40;index"`
  Geo               string         `gorm:"column:tweet_geo;size:100;not null"`
  Coordinates       string         `gorm:"column:tweet_coordinates;size:100;not null"`
  Contributors      *string        `gorm:"column:tweet_contributors;size:500"`
  IsQuoteStatus     int            `gorm:"column:tweet_isquotestatus;not null"`
  QuoteCount        int            `gorm:"column:tweet_quotecount;not null"`
  ReplyCount        int            `gorm:"column:tweet_replycount;not null"`
  RetweetCount      int            `gorm:"column:tweet_retweetcount;not null"`
  FavouriteCount    int            `gorm:"column:tweet_favouritecount;not null"`
  Favourited        int            `gorm:"column:tweet_favourited;not null"`
  Retweeted         int            `gorm:"column:tweet_retweeted;not null"`
  FilterLevel       string         `gorm:"column:tweet_filterlevel;size:10;not null"`
  Lang              *string        `gorm:"column:tweet_lang;size:10"`
  MsTimestamp       int64          `gorm:"column:tweet_mstimestamp;not null"`
  StreamLocation    int64          `gorm:"column:tweet_streamlocation;not null;index"`
  Entities          datatypes.JSON `gorm:"column:tweet_entities"`
  FullJSON          datatypes.JSON `gorm:"column:tweet_full_json"`
}

func (m *Tweet) TableName() string {
  return "tweets"
}
