package records

import (
  "fmt"
  "time"

  "github.com/tidwall/gjson"
)

// CreatedLayout is the timestamp format of created_at on statuses and users.
const CreatedLayout = time.RubyDate

// Status is the validated form of one stream status payload.
type Status struct {
  ID                  int64
  CreatedAt           string
  Created             time.Time
  Text                string
  Source              string
  Truncated           bool
  InReplyToStatusID   *int64
  InReplyToUserID     *int64
  InReplyToScreenName *string
  Geo                 string
  Coordinates         string
  Contributors        *string
  IsQuoteStatus       bool
  QuoteCount          int
  ReplyCount          int
  RetweetCount        int
  FavoriteCount       int
  Favorited           bool
  Retweeted           bool
  FilterLevel         string
  Lang                *string
  TimestampMs         int64
  User                gjson.Result
  Place               gjson.Result
  Entities            gjson.Result
  Hashtags            []string
  Urls                []string
  Symbols             []string
  Mentions            []Mention
  Media               []Media
  Raw                 []byte
}

type Mention struct {
  UserID     int64
  ScreenName string
  Name       string
}

type Media struct {
  ID           int64
  DisplayUrl   string
  Url          string
  SourceStatus *int64
  Type         string
}

// Parse validates the fields a status must carry and extracts the rest leniently.
// Optional fields that are absent or null come back as zero values or nil.
func Parse(raw []byte) (status *Status, err error) {
  if !gjson.ValidBytes(raw) {
    return nil, malformed("payload", errType)
  }
  doc := gjson.ParseBytes(raw)
  if !doc.IsObject() {
    return nil, malformed("payload", errType)
  }

  status = &Status{Raw: raw}
  if status.ID, err = requireInt(doc, "id"); err != nil {
    return nil, err
  }
  id := status.ID
  defer func() {
    if err == nil {
      return
    }
    if e, ok := err.(*MalformedEventError); ok {
      e.TweetID = id
    }
    status = nil
  }()

  if status.CreatedAt, err = requireString(doc, "created_at"); err != nil {
    return
  }
  if status.Created, err = time.Parse(CreatedLayout, status.CreatedAt); err != nil {
    err = malformed("created_at", err)
    return
  }
  if status.Text, err = requireString(doc, "text"); err != nil {
    return
  }
  status.Source = doc.Get("source").String()
  status.Truncated = doc.Get("truncated").Bool()
  status.InReplyToStatusID = optInt(doc.Get("in_reply_to_status_id"))
  status.InReplyToUserID = optInt(doc.Get("in_reply_to_user_id"))
  status.InReplyToScreenName = optString(doc.Get("in_reply_to_screen_name"))
  status.Geo = rawOrEmpty(doc.Get("geo.coordinates"))
  status.Coordinates = rawOrEmpty(doc.Get("coordinates.coordinates"))
  status.Contributors = optRaw(doc.Get("contributors"))
  status.IsQuoteStatus = doc.Get("is_quote_status").Bool()
  status.Favorited = doc.Get("favorited").Bool()
  status.Retweeted = doc.Get("retweeted").Bool()
  status.FilterLevel = doc.Get("filter_level").String()
  status.Lang = optString(doc.Get("lang"))
  status.TimestampMs = doc.Get("timestamp_ms").Int()

  counters := map[string]*int{
    "quote_count":    &status.QuoteCount,
    "reply_count":    &status.ReplyCount,
    "retweet_count":  &status.RetweetCount,
    "favorite_count": &status.FavoriteCount,
  }
  for key, dst := range counters {
    if *dst, err = counter(doc, key); err != nil {
      return
    }
  }

  if status.User, err = requireObject(doc, "user"); err != nil {
    return
  }
  for _, key := range []string{"user.id", "user.created_at"} {
    if !doc.Get(key).Exists() || doc.Get(key).Type == gjson.Null {
      err = malformed(key, errMissing)
      return
    }
  }
  if _, err = requireString(doc, "user.screen_name"); err != nil {
    return
  }
  if status.Place, err = requireObject(doc, "place"); err != nil {
    return
  }
  if _, err = requireString(doc, "place.id"); err != nil {
    return
  }
  if status.Entities, err = requireObject(doc, "entities"); err != nil {
    return
  }

  status.Hashtags = texts(status.Entities.Get("hashtags"), "text")
  status.Urls = urls(status.Entities.Get("urls"))
  status.Symbols = texts(status.Entities.Get("symbols"), "text")

  status.Entities.Get("user_mentions").ForEach(func(_, m gjson.Result) bool {
    status.Mentions = append(status.Mentions, Mention{
      UserID:     m.Get("id").Int(),
      ScreenName: m.Get("screen_name").String(),
      Name:       m.Get("name").String(),
    })
    return true
  })

  doc.Get("extended_entities.media").ForEach(func(_, m gjson.Result) bool {
    status.Media = append(status.Media, Media{
      ID:           m.Get("id").Int(),
      DisplayUrl:   m.Get("expanded_url").String(),
      Url:          m.Get("media_url").String(),
      SourceStatus: optInt(m.Get("source_status_id")),
      Type:         m.Get("type").String(),
    })
    return true
  })

  return status, nil
}

func requireInt(doc gjson.Result, key string) (int64, error) {
  v := doc.Get(key)
  if !v.Exists() || v.Type == gjson.Null {
    return 0, malformed(key, errMissing)
  }
  if v.Type != gjson.Number {
    return 0, malformed(key, errType)
  }
  return v.Int(), nil
}

func requireString(doc gjson.Result, key string) (string, error) {
  v := doc.Get(key)
  if !v.Exists() || v.Type == gjson.Null {
    return "", malformed(key, errMissing)
  }
  if v.Type != gjson.String {
    return "", malformed(key, errType)
  }
  return v.String(), nil
}

func requireObject(doc gjson.Result, key string) (gjson.Result, error) {
  v := doc.Get(key)
  if !v.Exists() || v.Type == gjson.Null {
    return v, malformed(key, errMissing)
  }
  if !v.IsObject() {
    return v, malformed(key, errType)
  }
  return v, nil
}

func counter(doc gjson.Result, key string) (int, error) {
  v := doc.Get(key)
  if !v.Exists() || v.Type == gjson.Null {
    return 0, nil
  }
  if v.Type != gjson.Number {
    return 0, malformed(key, errType)
  }
  if v.Int() < 0 {
    return 0, malformed(key, fmt.Errorf("%w: %d", errNegative, v.Int()))
  }
  return int(v.Int()), nil
}

func optInt(v gjson.Result) *int64 {
  if !v.Exists() || v.Type == gjson.Null {
    return nil
  }
  n := v.Int()
  return &n
}

func optString(v gjson.Result) *string {
  if !v.Exists() || v.Type == gjson.Null {
    return nil
  }
  s := v.String()
  return &s
}

func optRaw(v gjson.Result) *string {
  if !v.Exists() || v.Type == gjson.Null {
    return nil
  }
  s := v.Raw
  return &s
}

func rawOrEmpty(v gjson.Result) string {
  if !v.Exists() || v.Type == gjson.Null {
    return ""
  }
  return v.Raw
}

func texts(list gjson.Result, key string) []string {
  var out []string
  list.ForEach(func(_, item gjson.Result) bool {
    out = append(out, item.Get(key).String())
    return true
  })
  return out
}

func urls(list gjson.Result) []string {
  var out []string
  list.ForEach(func(_, item gjson.Result) bool {
    u := item.Get("expanded_url")
    if !u.Exists() || u.Type == gjson.Null {
      u = item.Get("url")
    }
    out = append(out, u.String())
    return true
  })
  return out
}
