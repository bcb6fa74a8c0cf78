package repositories

import (
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "scraper.local/twitter-geo-scraper/models"
)

type UsersRepository struct {
  Db *gorm.DB
}

func (r *UsersRepository) Get(userID int64) (entity *models.User, err error) {
  err = r.Db.Where("user_id", userID).Take(&entity).Error
  return
}

// Insert keeps the first profile snapshot seen for a user id.
func (r *UsersRepository) Insert(user *models.User) error {
  return r.Db.Clauses(clause.OnConflict{DoNothing: true}).Create(user).Error
}
