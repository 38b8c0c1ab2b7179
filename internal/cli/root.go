package cli

import (
	"os"

	"github.com/pinmark/alfred-pinboard/internal/alfred"
	"github.com/pinmark/alfred-pinboard/internal/branding"
	"github.com/pinmark/alfred-pinboard/internal/config"
	"github.com/pinmark/alfred-pinboard/internal/logging"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	logger = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` is the helper binary behind the Pinboard workflow for Alfred.
Commands print Script Filter items on stdout and diagnostics on stderr.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		logger = logging.New(os.Stderr, config.LogLevel(), config.DebugMode())
		logger.Debug("starting", "command", cmd.Name(), "version", buildVersion, "data_dir", config.Dir())
	},
}

// Execute runs the root command with build info injected via ldflags. A
// returned error has already been shown to the user as an Alfred item.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.Execute()
	if err != nil {
		reportError(err)
	}
	return err
}

// reportError sends a fatal error through Alfred's result list, the only
// place the user looks.
func reportError(err error) {
	logger.Error("command failed", "error", err)
	if werr := alfred.WriteError(rootCmd.OutOrStdout(), err, useJSON()); werr != nil {
		logger.Error("couldn't write error item", "error", werr)
	}
}

func useJSON() bool {
	return alfred.CanUseJSON(config.AlfredVersion())
}
