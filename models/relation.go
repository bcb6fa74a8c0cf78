package models

type TweetEntity struct {
  TweetID       int64  `gorm:"column:tweet_id;primaryKey;autoIncrement:false"`
  EntityContent string `gorm:"column:entity_content;primaryKey;size:512"`
  EntityType    string `gorm:"column:entity_type;primaryKey;size:16"`
}

func (m *TweetEntity) TableName() string {
  return "tweet_entities"
}

type TweetUserMention struct {
  TweetID         int64 `gorm:"column:tweet_id;primaryKey;autoIncrement:false"`
  MentionedUserID int64 `gorm:"column:mentioneduser_id;primaryKey;autoIncrement:false"`
}

func (m *TweetUserMention) TableName() string {
  return "tweet_usermentions"
}

type TweetMedia struct {
  TweetID int64 `gorm:"column:tweet_id;primaryKey;autoIncrement:false"`
  MediaID int64 `gorm:"column:media_id;primaryKey;autoIncrement:false"`
}

func (m *TweetMedia) TableName() string {
  return "tweet_media"
}
