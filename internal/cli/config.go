package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/pinmark/alfred-pinboard/internal/alfred"
	"github.com/pinmark/alfred-pinboard/internal/config"
	"github.com/pinmark/alfred-pinboard/internal/display"
	"github.com/pinmark/alfred-pinboard/internal/settings"
	"github.com/pinmark/alfred-pinboard/internal/store"
	"github.com/spf13/cobra"
)

// Flag names, shared with the Alfred keyword scripts.
const (
	flagDisplay         = "display"
	flagAuthToken       = "auth-token"
	flagNumberPins      = "number-pins"
	flagNumberTags      = "number-tags"
	flagShared          = "shared"
	flagToRead          = "toread"
	flagFuzzy           = "fuzzy"
	flagTagsOnly        = "tags-only"
	flagAutoUpdate      = "auto-update"
	flagSuggestTags     = "suggest-tags"
	flagCheckBookmarked = "check-bookmarked-page"
	flagShowURLVsTags   = "show-url-vs-tags"
)

type configFlags struct {
	display         bool
	authToken       string
	numberPins      int
	numberTags      int
	shared          bool
	toread          bool
	fuzzy           bool
	tagsOnly        bool
	autoUpdate      bool
	suggestTags     bool
	checkBookmarked bool
	showURLVsTags   bool
}

var configOpts configFlags

func init() {
	f := configCmd.Flags()
	f.BoolVarP(&configOpts.display, flagDisplay, "d", false, "Show the settings after applying changes")
	f.StringVarP(&configOpts.authToken, flagAuthToken, "a", "", "Pinboard API token (<user>:<secret>)")
	f.IntVarP(&configOpts.numberPins, flagNumberPins, "p", 0, "Number of bookmarks to show")
	f.IntVarP(&configOpts.numberTags, flagNumberTags, "l", 0, "Number of tags to show")
	f.BoolVarP(&configOpts.shared, flagShared, "s", false, "Make new bookmarks public")
	f.BoolVarP(&configOpts.toread, flagToRead, "r", false, "Mark new bookmarks as toread")
	f.BoolVarP(&configOpts.fuzzy, flagFuzzy, "f", false, "Use fuzzy search")
	f.BoolVarP(&configOpts.tagsOnly, flagTagsOnly, "o", false, "Only search tags")
	f.BoolVarP(&configOpts.autoUpdate, flagAutoUpdate, "u", false, "Refresh the bookmark cache automatically")
	f.BoolVarP(&configOpts.suggestTags, flagSuggestTags, "g", false, "Suggest popular tags for the open browser tab")
	f.BoolVarP(&configOpts.checkBookmarked, flagCheckBookmarked, "b", false, "Check whether the open page is bookmarked")
	f.BoolVarP(&configOpts.showURLVsTags, flagShowURLVsTags, "w", false, "Show URLs instead of tags in search results")
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Change workflow settings",
	Long: `Apply changes to the settings stored in the workflow data directory.
Only flags that are given change anything. Boolean flags take explicit values:

  alfred-pinboard config --auth-token user:SECRET
  alfred-pinboard config --fuzzy=false --number-pins 25 --display`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newSettingsManager()
		if err != nil {
			return err
		}
		u := configOpts.update(cmd.Flags().Changed)
		return runConfig(cmd.OutOrStdout(), m, u, configOpts.display, useJSON())
	},
}

// update translates the flags into a partial update. Flags the user did not
// pass stay nil.
func (o *configFlags) update(changed func(name string) bool) settings.Update {
	var u settings.Update
	if changed(flagAuthToken) {
		u.AuthToken = &o.authToken
	}
	if changed(flagNumberPins) {
		u.PinsToShow = &o.numberPins
	}
	if changed(flagNumberTags) {
		u.TagsToShow = &o.numberTags
	}
	if changed(flagShared) {
		u.Shared = &o.shared
	}
	if changed(flagToRead) {
		u.ToReadNewPin = &o.toread
	}
	if changed(flagFuzzy) {
		u.FuzzySearch = &o.fuzzy
	}
	if changed(flagTagsOnly) {
		u.TagOnlySearch = &o.tagsOnly
	}
	if changed(flagAutoUpdate) {
		u.AutoUpdateCache = &o.autoUpdate
	}
	if changed(flagSuggestTags) {
		u.SuggestTags = &o.suggestTags
	}
	if changed(flagCheckBookmarked) {
		u.PageIsBookmarked = &o.checkBookmarked
	}
	if changed(flagShowURLVsTags) {
		u.ShowURLVsTags = &o.showURLVsTags
	}
	return u
}

func newSettingsManager() (*settings.Manager, error) {
	codec, err := settings.CodecFor(config.SettingsFormat())
	if err != nil {
		return nil, err
	}
	st := store.NewFile(config.SettingsPath())
	return settings.NewManager(st, settings.WithCodec(codec), settings.WithLogger(logger)), nil
}

// runConfig applies u and, when show is set, writes the resulting settings
// rows to w. A failed save has already been logged by the manager and does
// not stop the rows from being shown.
func runConfig(w io.Writer, m *settings.Manager, u settings.Update, show, jsonOut bool) error {
	res, err := m.Apply(u)
	if err != nil {
		return err
	}
	if res.Bootstrapped {
		logger.Info("created settings with defaults")
	}
	if !res.Settings.HasToken() {
		logger.Warn("no Pinboard API token configured")
	}
	if !show {
		return nil
	}
	if err := alfred.Write(w, display.Items(res.Settings, time.Local), jsonOut, nil); err != nil {
		return fmt.Errorf("showing settings: %w", err)
	}
	return nil
}
