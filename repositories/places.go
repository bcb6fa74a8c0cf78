package repositories

import (
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "scraper.local/twitter-geo-scraper/models"
)

type PlacesRepository struct {
  Db *gorm.DB
}

func (r *PlacesRepository) Get(placeID string) (entity *models.Place, err error) {
  err = r.Db.Where("place_id", placeID).Take(&entity).Error
  return
}

// Insert keeps the first row seen for a place id.
func (r *PlacesRepository) Insert(place *models.Place) error {
  return r.Db.Clauses(clause.OnConflict{DoNothing: true}).Create(place).Error
}
