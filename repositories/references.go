package repositories

import (
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "scraper.local/twitter-geo-scraper/models"
)

type EntitiesRepository struct {
  Db *gorm.DB
}

func (r *EntitiesRepository) Insert(entities []*models.EntityUsed) error {
  return insertIgnore(r.Db, entities)
}

func (r *EntitiesRepository) Exists(content string, kind string) (bool, error) {
  var total int64
  err := r.Db.Model(&models.EntityUsed{}).Where("entity_content = ? AND entity_type = ?", content, kind).Count(&total).Error
  if err != nil {
    return false, err
  }
  return total > 0, nil
}

type MentionsRepository struct {
  Db *gorm.DB
}

func (r *MentionsRepository) Insert(mentions []*models.UserMention) error {
  return insertIgnore(r.Db, mentions)
}

type MediaRepository struct {
  Db *gorm.DB
}

func (r *MediaRepository) Insert(media []*models.MediaIncluded) error {
  return insertIgnore(r.Db, media)
}

func (r *MediaRepository) Get(mediaID int64) (entity *models.MediaIncluded, err error) {
  err = r.Db.Where("media_id", mediaID).Take(&entity).Error
  return
}

// RelationsRepository writes the join rows between a tweet and its references.
type RelationsRepository struct {
  Db *gorm.DB
}

func (r *RelationsRepository) InsertMentions(rows []*models.TweetUserMention) error {
  return insertIgnore(r.Db, rows)
}

func (r *RelationsRepository) InsertEntities(rows []*models.TweetEntity) error {
  return insertIgnore(r.Db, rows)
}

func (r *RelationsRepository) InsertMedia(rows []*models.TweetMedia) error {
  return insertIgnore(r.Db, rows)
}

// insertIgnore batches rows and leaves existing keys untouched. An empty batch is a no-op.
func insertIgnore[T any](db *gorm.DB, rows []T) error {
  if len(rows) == 0 {
    return nil
  }
  return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}
