package settings

import (
	"fmt"
	"strings"
)

// tokenSeparator splits the Pinboard user name from the API secret.
const tokenSeparator = ":"

// Update is a partial change to Settings. A nil field leaves the current
// value alone. There is no field for UpdateTime.
type Update struct {
	AuthToken  *string
	PinsToShow *int
	TagsToShow *int

	// Shared is the inverse of Settings.PrivateNewPin.
	Shared *bool

	ToReadNewPin     *bool
	FuzzySearch      *bool
	TagOnlySearch    *bool
	AutoUpdateCache  *bool
	SuggestTags      *bool
	PageIsBookmarked *bool
	ShowURLVsTags    *bool
}

// ValidateToken checks a user-supplied token. A nil token means no change
// and is returned as nil. A non-empty token must contain ':'.
func ValidateToken(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	if *raw != "" && !strings.Contains(*raw, tokenSeparator) {
		return nil, fmt.Errorf("%w: expected <user>%s<secret>", ErrInvalidTokenFormat, tokenSeparator)
	}
	return raw, nil
}

// ValidateLimit checks an optional display limit.
func ValidateLimit(name string, v *int) error {
	if v == nil || *v >= 1 {
		return nil
	}
	return fmt.Errorf("%w: %s = %d", ErrInvalidLimit, name, *v)
}

// Validate checks every present field that has constraints.
func (u Update) Validate() error {
	if _, err := ValidateToken(u.AuthToken); err != nil {
		return err
	}
	if err := ValidateLimit("pins_to_show", u.PinsToShow); err != nil {
		return err
	}
	return ValidateLimit("tags_to_show", u.TagsToShow)
}

// Merge returns current with every present field of u applied.
func Merge(current Settings, u Update) Settings {
	out := current
	set(&out.AuthToken, u.AuthToken)
	set(&out.PinsToShow, u.PinsToShow)
	set(&out.TagsToShow, u.TagsToShow)
	if u.Shared != nil {
		out.PrivateNewPin = !*u.Shared
	}
	set(&out.ToReadNewPin, u.ToReadNewPin)
	set(&out.FuzzySearch, u.FuzzySearch)
	set(&out.TagOnlySearch, u.TagOnlySearch)
	set(&out.AutoUpdateCache, u.AutoUpdateCache)
	set(&out.SuggestTags, u.SuggestTags)
	set(&out.PageIsBookmarked, u.PageIsBookmarked)
	set(&out.ShowURLVsTags, u.ShowURLVsTags)
	return out
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
