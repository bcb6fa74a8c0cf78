package models

import (
  "time"
)

// User is a profile snapshot as first seen by the stream. Later sightings are ignored.
type User struct {
  UserID              int64     `gorm:"column:user_id;primaryKey;autoIncrement:false"`
  Name                string    `gorm:"column:user_name;size:100;not null"`
  ScreenName          string    `gorm:"column:user_screenname;size:50;not null"`
  Location            *string   `gorm:"column:user_location;size:200"`
  Url                 *string   `gorm:"column:user_url;size:400"`
  Description         *string   `gorm:"column:user_description;size:1000"`
  TranslatorType      string    `gorm:"column:user_translator;size:20;not null"`
  Protected           int       `gorm:"column:user_protected;not null"`
  Verified            int       `gorm:"column:user_verified;not null"`
  FollowersCount      int       `gorm:"column:user_numfollowers;not null"`
  FriendsCount        int       `gorm:"column:user_numfriends;not null"`
  ListedCount         int       `gorm:"column:user_numlisted;not null"`
  FavouritesCount     int       `gorm:"column:user_numfavourites;not null"`
  StatusesCount       int       `gorm:"column:user_numstatus;not null"`
  JoinedString        string    `gorm:"column:user_joinedstring;size:40;not null"`
  Joined              time.Time `gorm:"column:user_joined;not null"`
  UtcOffset           *int      `gorm:"column:user_utcoffset"`
  TimeZone            *string   `gorm:"column:user_timezone;size:100"`
  GeoEnabled          int       `gorm:"column:user_geoenabled;not null"`
  Lang                *string   `gorm:"column:user_lang;size:10"`
  ContributorsEnabled int       `gorm:"column:user_contributorsenabled;not null"`
  IsTranslator        int       `gorm:"column:user_istranslator;not null"`
  BackgroundColor     string    `gorm:"column:user_profile_bgcolour;size:10;not null"`
  BackgroundImageUrl  *string   `gorm:"column:user_profile_bgimageurl;size:400"`
  BackgroundTile      int       `gorm:"column:user_profile_bgtile;not null"`
  LinkColor           string    `gorm:"column:user_profile_linkcolour;size:10;not null"`
  SidebarBorderColor  string    `gorm:"column:user_profile_sidebordercolour;size:10;not null"`
  SidebarFillColor    string    `gorm:"column:user_profile_sidefillcolour;size:10;not null"`
  TextColor           string    `gorm:"column:user_profile_textcolour;size:10;not null"`
  UseBackgroundImage  int       `gorm:"column:user_profile_bgimage;not null"`
  ProfileImageUrl     string    `gorm:"column:user_profile_image;size:400;not null"`
  ProfileBannerUrl    string    `gorm:"column:user_profile_banner;size:400;not null"`
  DefaultProfile      int       `gorm:"column:user_default_profile;not null"`
  DefaultProfileImage int       `gorm:"column:user_default_profileimage;not null"`
  Following           *int      `gorm:"column:user_following"`
  FollowRequestSent   *int      `gorm:"column:user_followrequestsent"`
  Notifications       *int      `gorm:"column:user_notifications"`
}

func (m *User) TableName() string {
  return "users"
}
