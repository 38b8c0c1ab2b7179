package cli

import (
	"fmt"

	"github.com/pinmark/alfred-pinboard/internal/alfred"
	"github.com/pinmark/alfred-pinboard/internal/branding"
	"github.com/pinmark/alfred-pinboard/internal/config"
	"github.com/pinmark/alfred-pinboard/internal/updater"
	"github.com/spf13/cobra"
)

var checkForce bool

func init() {
	checkCmd.Flags().BoolVar(&checkForce, "force", false, "Ignore the cached result of the last check")
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check for a newer release of the workflow",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		u := updater.New(buildVersion, branding.GitHubRepo(),
			updater.WithAPIBase(config.Get(config.KeyMirror)),
			updater.WithLogger(logger))

		res, err := u.Check(cmd.Context(), config.Dir(), checkForce)
		if err != nil {
			return fmt.Errorf("checking for updates: %w", err)
		}
		logger.Debug("version check", "current", res.CurrentVersion, "latest", res.LatestVersion, "checked_at", res.CheckedAt)
		return alfred.Write(cmd.OutOrStdout(), []alfred.Item{checkItem(res)}, useJSON(), nil)
	},
}

func checkItem(res *updater.VersionCache) alfred.Item {
	if !res.UpdateAvailable {
		invalid := false
		return alfred.Item{
			Title:    "You have the latest version of the workflow!",
			Subtitle: "Installed: " + res.CurrentVersion,
			Valid:    &invalid,
			Icon:     alfred.IconPath("check_update.png"),
		}
	}

	arg := res.DownloadURL
	if arg == "" {
		arg = res.ReleaseURL
	}
	return alfred.Item{
		Title:    "Update available: " + res.LatestVersion,
		Subtitle: fmt.Sprintf("Installed: %s. Press Enter to download.", res.CurrentVersion),
		Arg:      arg,
		Icon:     alfred.IconPath("update.png"),
	}
}
