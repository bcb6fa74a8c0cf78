package models

import (
  "gorm.io/datatypes"
)

type Place struct {
  PlaceID         string         `gorm:"column:place_id;primaryKey;size:40"`
  Url             string         `gorm:"column:place_url;size:200;not null"`
  Type            string         `gorm:"column:place_type;size:40;not null"`
  Name            string         `gorm:"column:place_name;size:200;not null"`
  FullName        string         `gorm:"column:place_fullname;size:400;not null"`
  CountryCode     string         `gorm:"column:place_countrycode;size:4;not null"`
  Country         string         `gorm:"column:place_country;size:100;not null"`
  BboxType        string         `gorm:"column:place_bbox_type;size:20;not null"`
  BboxCoordinates string         `gorm:"column:place_bbox_coordinates;size:2000;not null"`
  Attributes      datatypes.JSON `gorm:"column:place_attributes"`
}

func (m *Place) TableName() string {
  return "places"
}

// BoundingBox is the stream filter rectangle in the order the upstream expects.
type BoundingBox struct {
  MinLon float64
  MinLat float64
  MaxLon float64
  MaxLat float64
}
