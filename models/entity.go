package models

const (
  EntityHashtag = "hashtag"
  EntityUrl     = "url"
  EntitySymbol  = "symbol"
)

// EntityUsed is a hashtag, url or symbol keyed on (content, type).
type EntityUsed struct {
  Content string `gorm:"column:entity_content;primaryKey;size:512"`
  Type    string `gorm:"column:entity_type;primaryKey;size:16"`
}

func (m *EntityUsed) TableName() string {
  return "entities_used"
}

// UserMention is keyed on the whole mention tuple, independent of the users table.
type UserMention struct {
  UserID     int64  `gorm:"column:mentioneduser_id;primaryKey;autoIncrement:false"`
  ScreenName string `gorm:"column:mentioneduser_screenname;primaryKey;size:50"`
  Name       string `gorm:"column:mentioneduser_name;primaryKey;size:100"`
}

func (m *UserMention) TableName() string {
  return "usermentions"
}

type MediaIncluded struct {
  MediaID      int64  `gorm:"column:media_id;primaryKey;autoIncrement:false"`
  DisplayUrl   string `gorm:"column:media_displayurl;size:400;not null"`
  Url          string `gorm:"column:media_url;size:400;not null"`
  SourceStatus *int64 `gorm:"column:media_sourcestatus"`
  Type         string `gorm:"column:media_type;size:20;not null"`
}

func (m *MediaIncluded) TableName() string {
  return "media_included"
}
