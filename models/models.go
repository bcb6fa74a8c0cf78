package models

import (
  "gorm.io/gorm"
)

// MysqlTableOptions makes every table compare text byte for byte, whatever the server
// default collation is.
const MysqlTableOptions = "DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_bin"

// AutoMigrate creates the stream and trends tables.
func AutoMigrate(db *gorm.DB) error {
  return migrator(db).AutoMigrate(
    &Place{},
    &User{},
    &Tweet{},
    &UserMention{},
    &EntityUsed{},
    &MediaIncluded{},
    &TweetEntity{},
    &TweetUserMention{},
    &TweetMedia{},
    &Trend{},
  )
}

func migrator(db *gorm.DB) *gorm.DB {
  if db.Dialector.Name() == "mysql" {
    return db.Set("gorm:table_options", MysqlTableOptions)
  }
  return db
}
