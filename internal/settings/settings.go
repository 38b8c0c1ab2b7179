package settings

import "time"

// Default display limits.
const (
	DefaultPinsToShow = 10
	DefaultTagsToShow = 10
)

// Settings is the persisted preference record. Every field is always set;
// Defaults fills the ones a stored record does not mention.
type Settings struct {
	AuthToken  string `yaml:"auth_token" toml:"auth_token" json:"auth_token"`
	PinsToShow int    `yaml:"pins_to_show" toml:"pins_to_show" json:"pins_to_show"`
	TagsToShow int    `yaml:"tags_to_show" toml:"tags_to_show" json:"tags_to_show"`

	PrivateNewPin    bool `yaml:"private_new_pin" toml:"private_new_pin" json:"private_new_pin"`
	ToReadNewPin     bool `yaml:"toread_new_pin" toml:"toread_new_pin" json:"toread_new_pin"`
	FuzzySearch      bool `yaml:"fuzzy_search" toml:"fuzzy_search" json:"fuzzy_search"`
	TagOnlySearch    bool `yaml:"tag_only_search" toml:"tag_only_search" json:"tag_only_search"`
	AutoUpdateCache  bool `yaml:"auto_update_cache" toml:"auto_update_cache" json:"auto_update_cache"`
	SuggestTags      bool `yaml:"suggest_tags" toml:"suggest_tags" json:"suggest_tags"`
	PageIsBookmarked bool `yaml:"page_is_bookmarked" toml:"page_is_bookmarked" json:"page_is_bookmarked"`
	ShowURLVsTags    bool `yaml:"show_url_vs_tags" toml:"show_url_vs_tags" json:"show_url_vs_tags"`

	// UpdateTime is when the bookmark cache was last refreshed. It is
	// displayed here but only the cache refresh writes it.
	UpdateTime time.Time `yaml:"update_time" toml:"update_time" json:"update_time"`
}

// Defaults returns a fresh record with built-in values and no auth token.
// now stamps UpdateTime.
func Defaults(now time.Time) Settings {
	return Settings{
		PinsToShow:       DefaultPinsToShow,
		TagsToShow:       DefaultTagsToShow,
		PrivateNewPin:    true,
		ToReadNewPin:     false,
		FuzzySearch:      false,
		TagOnlySearch:    false,
		AutoUpdateCache:  true,
		SuggestTags:      false,
		PageIsBookmarked: true,
		ShowURLVsTags:    true,
		UpdateTime:       now.UTC().Truncate(time.Second),
	}
}

// Equal reports whether two records hold the same values. UpdateTime is
// compared as an instant, ignoring location.
func (s Settings) Equal(o Settings) bool {
	a, b := s, o
	a.UpdateTime, b.UpdateTime = time.Time{}, time.Time{}
	return a == b && s.UpdateTime.Equal(o.UpdateTime)
}

// HasToken reports whether the record carries a usable auth token.
func (s Settings) HasToken() bool {
	if s.AuthToken == "" {
		return false
	}
	_, err := ValidateToken(&s.AuthToken)
	return err == nil
}
