package models

// EntityBundle holds every row one stream event contributes to the reference tables
// plus the tweet itself.
type EntityBundle struct {
  Tweet    *Tweet
  User     *User
  Place    *Place
  Entities []*EntityUsed
  Mentions []*UserMention
  Media    []*MediaIncluded
}

// RelationBundle holds the join rows owned by the bundle's tweet. Each list follows the
// order of the matching EntityBundle list.
type RelationBundle struct {
  TweetMentions []*TweetUserMention
  TweetEntities []*TweetEntity
  TweetMedia    []*TweetMedia
}
