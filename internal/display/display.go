// Package display turns the settings record into the rows the workflow shows
// when the config command runs with --display. Each row's Arg is the keyword
// Alfred routes to when the row is actioned.
package display

import (
	"strconv"
	"time"

	"github.com/pinmark/alfred-pinboard/internal/alfred"
	"github.com/pinmark/alfred-pinboard/internal/settings"
)

// TimeLayout formats the last cache update.
const TimeLayout = "2006-01-02 15:04:05"

// Routing args.
const (
	ArgTagOnly         = "pset tagonly"
	ArgFuzzy           = "pset fuzzy"
	ArgAutoUpdate      = "pset auto"
	ArgSuggestTags     = "pset suggest_tags"
	ArgToRead          = "pset toread"
	ArgShared          = "pset shared"
	ArgCheckBookmarked = "pset check_bookmarked"
	ArgURLVsTags       = "pset url_tag"
	ArgTags            = "pset tags"
	ArgBookmarks       = "pset bookmarks"
	ArgCheckUpdates    = "pcheck"
	ArgRefreshCache    = "pupdate"
)

// neverRefreshed is shown when the bookmark cache has no recorded refresh.
const neverRefreshed = "Never"

// Items returns the twelve settings rows in display order. The last cache
// update is shown in loc; nil means local time.
func Items(s settings.Settings, loc *time.Location) []alfred.Item {
	if loc == nil {
		loc = time.Local
	}
	return []alfred.Item{
		toggle("Only search tags", s.TagOnlySearch, ArgTagOnly, "tagonly.png"),
		toggle("Use fuzzy search", s.FuzzySearch, ArgFuzzy, "fuzzy.png"),
		toggle("Automatically update cache", s.AutoUpdateCache, ArgAutoUpdate, "auto_update_cache.png"),
		toggle("Suggest popular tags for open browser tab", s.SuggestTags, ArgSuggestTags, "suggest.png"),
		toggle("Mark new bookmarks as toread", s.ToReadNewPin, ArgToRead, "toread.png"),
		toggle("Mark new bookmarks as private", s.PrivateNewPin, ArgShared, "private.png"),
		toggle("Check if page is bookmarked", s.PageIsBookmarked, ArgCheckBookmarked, "check_bookmarked_page.png"),
		toggle("Show TAGs vs URLs in search results", s.ShowURLVsTags, ArgURLVsTags, "url.png"),
		count("Number of tags to show", s.TagsToShow, ArgTags, "no_of_tags.png"),
		count("Number of bookmarks to show", s.PinsToShow, ArgBookmarks, "no_of_pins.png"),
		{
			Title: "Click to check for Workflow updates.",
			Arg:   ArgCheckUpdates,
			Icon:  alfred.IconPath("check_update.png"),
		},
		{
			Title:    lastRefresh(s.UpdateTime, loc),
			Subtitle: "Latest cache update",
			Arg:      ArgRefreshCache,
			Icon:     alfred.IconPath("auto_update.png"),
		},
	}
}

func toggle(title string, v bool, arg, icon string) alfred.Item {
	return alfred.Item{
		Title:    title,
		Subtitle: strconv.FormatBool(v),
		Arg:      arg,
		Icon:     alfred.IconPath(icon),
	}
}

func count(title string, n int, arg, icon string) alfred.Item {
	return alfred.Item{
		Title:    title,
		Subtitle: strconv.Itoa(n),
		Arg:      arg,
		Icon:     alfred.IconPath(icon),
	}
}

func lastRefresh(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return neverRefreshed
	}
	return t.In(loc).Format(TimeLayout)
}
