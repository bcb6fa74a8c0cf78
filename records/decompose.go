package records

import (
  "time"

  "github.com/tidwall/gjson"
  "gorm.io/datatypes"

  "scraper.local/twitter-geo-scraper/models"
)

// Decompose turns one raw status into the rows it contributes, tagging the tweet with the
// stream location it arrived on. Entity rows follow hashtags, then urls, then symbols, and
// every relation list mirrors the order of its entity list.
func Decompose(raw []byte, locationID int64) (*models.EntityBundle, *models.RelationBundle, error) {
  status, err := Parse(raw)
  if err != nil {
    return nil, nil, err
  }

  user, err := userRow(status.User)
  if err != nil {
    err.(*MalformedEventError).TweetID = status.ID
    return nil, nil, err
  }
  place := placeRow(status.Place)
  tweet := tweetRow(status, user.UserID, place.PlaceID, locationID)

  entities := &models.EntityBundle{
    Tweet:    tweet,
    User:     user,
    Place:    place,
    Entities: make([]*models.EntityUsed, 0, len(status.Hashtags)+len(status.Urls)+len(status.Symbols)),
    Mentions: make([]*models.UserMention, 0, len(status.Mentions)),
    Media:    make([]*models.MediaIncluded, 0, len(status.Media)),
  }
  relations := &models.RelationBundle{
    TweetMentions: make([]*models.TweetUserMention, 0, len(status.Mentions)),
    TweetEntities: make([]*models.TweetEntity, 0, cap(entities.Entities)),
    TweetMedia:    make([]*models.TweetMedia, 0, len(status.Media)),
  }

  groups := []struct {
    kind   string
    values []string
  }{
    {models.EntityHashtag, status.Hashtags},
    {models.EntityUrl, status.Urls},
    {models.EntitySymbol, status.Symbols},
  }
  for _, group := range groups {
    for _, content := range group.values {
      entities.Entities = append(entities.Entities, &models.EntityUsed{
        Content: content,
        Type:    group.kind,
      })
      relations.TweetEntities = append(relations.TweetEntities, &models.TweetEntity{
        TweetID:       tweet.TweetID,
        EntityContent: content,
        EntityType:    group.kind,
      })
    }
  }

  for _, mention := range status.Mentions {
    entities.Mentions = append(entities.Mentions, &models.UserMention{
      UserID:     mention.UserID,
      ScreenName: mention.ScreenName,
      Name:       mention.Name,
    })
    relations.TweetMentions = append(relations.TweetMentions, &models.TweetUserMention{
      TweetID:         tweet.TweetID,
      MentionedUserID: mention.UserID,
    })
  }

  for _, media := range status.Media {
    entities.Media = append(entities.Media, &models.MediaIncluded{
      MediaID:      media.ID,
      DisplayUrl:   media.DisplayUrl,
      Url:          media.Url,
      SourceStatus: media.SourceStatus,
      Type:         media.Type,
    })
    relations.TweetMedia = append(relations.TweetMedia, &models.TweetMedia{
      TweetID: tweet.TweetID,
      MediaID: media.ID,
    })
  }

  return entities, relations, nil
}

func tweetRow(status *Status, userID int64, placeID string, locationID int64) *models.Tweet {
  full := make([]byte, len(status.Raw))
  copy(full, status.Raw)
  return &models.Tweet{
    TweetID:           status.ID,
    CreatedString:     status.CreatedAt,
    Created:           status.Created.UTC(),
    Content:           status.Text,
    Source:            status.Source,
    Truncated:         flag(status.Truncated),
    ReplyToID:         status.InReplyToStatusID,
    ReplyToUserID:     status.InReplyToUserID,
    ReplyToScreenName: status.InReplyToScreenName,
    UserID:            userID,
    PlaceID:           &placeID,
    Geo:               status.Geo,
    Coordinates:       status.Coordinates,
    Contributors:      status.Contributors,
    IsQuoteStatus:     flag(status.IsQuoteStatus),
    QuoteCount:        status.QuoteCount,
    ReplyCount:        status.ReplyCount,
    RetweetCount:      status.RetweetCount,
    FavouriteCount:    status.FavoriteCount,
    Favourited:        flag(status.Favorited),
    Retweeted:         flag(status.Retweeted),
    FilterLevel:       status.FilterLevel,
    Lang:              status.Lang,
    MsTimestamp:       status.TimestampMs,
    StreamLocation:    locationID,
    Entities:          datatypes.JSON(status.Entities.Raw),
    FullJSON:          datatypes.JSON(full),
  }
}

func userRow(u gjson.Result) (*models.User, error) {
  joinedString := u.Get("created_at").String()
  joined, err := time.Parse(CreatedLayout, joinedString)
  if err != nil {
    return nil, malformed("user.created_at", err)
  }
  var utcOffset *int
  if v := optInt(u.Get("utc_offset")); v != nil {
    n := int(*v)
    utcOffset = &n
  }
  return &models.User{
    UserID:              u.Get("id").Int(),
    Name:                u.Get("name").String(),
    ScreenName:          u.Get("screen_name").String(),
    Location:            optString(u.Get("location")),
    Url:                 optString(u.Get("url")),
    Description:         optString(u.Get("description")),
    TranslatorType:      u.Get("translator_type").String(),
    Protected:           flag(u.Get("protected").Bool()),
    Verified:            flag(u.Get("verified").Bool()),
    FollowersCount:      int(u.Get("followers_count").Int()),
    FriendsCount:        int(u.Get("friends_count").Int()),
    ListedCount:         int(u.Get("listed_count").Int()),
    FavouritesCount:     int(u.Get("favourites_count").Int()),
    StatusesCount:       int(u.Get("statuses_count").Int()),
    JoinedString:        joinedString,
    Joined:              joined.UTC(),
    UtcOffset:           utcOffset,
    TimeZone:            optString(u.Get("time_zone")),
    GeoEnabled:          flag(u.Get("geo_enabled").Bool()),
    Lang:                optString(u.Get("lang")),
    ContributorsEnabled: flag(u.Get("contributors_enabled").Bool()),
    IsTranslator:        flag(u.Get("is_translator").Bool()),
    BackgroundColor:     u.Get("profile_background_color").String(),
    BackgroundImageUrl:  optString(u.Get("profile_background_image_url")),
    BackgroundTile:      flag(u.Get("profile_background_tile").Bool()),
    LinkColor:           u.Get("profile_link_color").String(),
    SidebarBorderColor:  u.Get("profile_sidebar_border_color").String(),
    SidebarFillColor:    u.Get("profile_sidebar_fill_color").String(),
    TextColor:           u.Get("profile_text_color").String(),
    UseBackgroundImage:  flag(u.Get("profile_use_background_image").Bool()),
    ProfileImageUrl:     u.Get("profile_image_url").String(),
    ProfileBannerUrl:    u.Get("profile_banner_url").String(),
    DefaultProfile:      flag(u.Get("default_profile").Bool()),
    DefaultProfileImage: flag(u.Get("default_profile_image").Bool()),
    Following:           optFlag(u.Get("following")),
    FollowRequestSent:   optFlag(u.Get("follow_request_sent")),
    Notifications:       optFlag(u.Get("notifications")),
  }, nil
}

func placeRow(p gjson.Result) *models.Place {
  attributes := p.Get("attributes").Raw
  if attributes == "" || attributes == "null" {
    attributes = "{}"
  }
  return &models.Place{
    PlaceID:         p.Get("id").String(),
    Url:             p.Get("url").String(),
    Type:            p.Get("place_type").String(),
    Name:            p.Get("name").String(),
    FullName:        p.Get("full_name").String(),
    CountryCode:     p.Get("country_code").String(),
    Country:         p.Get("country").String(),
    BboxType:        p.Get("bounding_box.type").String(),
    BboxCoordinates: rawOrEmpty(p.Get("bounding_box.coordinates")),
    Attributes:      datatypes.JSON(attributes),
  }
}

func flag(v bool) int {
  if v {
    return 1
  }
  return 0
}

func optFlag(v gjson.Result) *int {
  if !v.Exists() || v.Type == gjson.Null {
    return nil
  }
  n := flag(v.Bool())
  return &n
}
