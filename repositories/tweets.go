package repositories

import (
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "scraper.local/twitter-geo-scraper/models"
)

type TweetsRepository struct {
  Db *gorm.DB
}

func (r *TweetsRepository) Count(conditions map[string]interface{}) (int64, error) {
  var total int64
  query := r.Db.Model(&models.Tweet{})
  if location, ok := conditions["location"]; ok {
    query = query.Where("tweet_streamlocation", location.(int64))
  }
  if userID, ok := conditions["user_id"]; ok {
    query = query.Where("tweet_user_id", userID.(int64))
  }
  if err := query.Count(&total).Error; err != nil {
    return 0, err
  }
  return total, nil
}

func (r *TweetsRepository) Get(tweetID int64) (entity *models.Tweet, err error) {
  err = r.Db.Where("tweet_id", tweetID).Take(&entity).Error
  return
}

// Upsert replaces every column of an existing tweet with the latest capture.
func (r *TweetsRepository) Upsert(tweet *models.Tweet) error {
  return r.Db.Clauses(clause.OnConflict{
    Columns:   []clause.Column{{Name: "tweet_id"}},
    UpdateAll: true,
  }).Create(tweet).Error
}
