package cfg

import (
	"errors"
	"fmt"
	"os"

	"harvester/internal/command/runner"
	"harvester/internal/cookies"
	"harvester/internal/domain/consts"
	"harvester/internal/domain/keys"
	"harvester/internal/domain/paths"
	"harvester/internal/downloads"
	"harvester/internal/file"
	"harvester/internal/models"
	"harvester/internal/utils/logging"
	"harvester/internal/utils/print"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initRunCmd creates the command which drives yt-dlp through one or more lists.
func initRunCmd(d Deps) (*cobra.Command, error) {
	runCmd := &cobra.Command{
		Use:   "run [lists...]",
		Short: "Download every URL in the named lists (default: \"" + consts.DefaultListName + "\").",
		Long: "Walks each list in order, one yt-dlp invocation per URL. Successful URLs are removed from the list,\n" +
			"failed ones stay for the next run. Ctrl+C stops the current download and saves progress.",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return verifyDownloadSettings()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{consts.DefaultListName}
			}

			// Clear any interrupt left from an earlier run in this process
			d.Interrupt.Reset()

			var errs []error
			for _, name := range args {
				if d.Interrupt.IsSet() {
					logging.I("Interrupted, skipping remaining lists")
					break
				}
				if err := runList(cmd, d, name); err != nil {
					errs = append(errs, err)
				}
			}
			return errors.Join(errs...)
		},
	}

	if err := initDownloadFlags(runCmd); err != nil {
		return nil, err
	}
	return runCmd, nil
}

// runList runs the orchestrator over a single named list.
func runList(cmd *cobra.Command, d Deps, name string) error {
	listPath := file.ListPath(listsDir(), name)
	if _, err := os.Stat(listPath); err != nil {
		return fmt.Errorf("list %q not found (create it with 'harvester lists create %s'): %w", name, name, err)
	}

	settings := jobSettingsFromConfig()
	if viper.GetBool(keys.ExportCookies) && settings.CookieFile == "" {
		if err := exportListCookies(cmd, listPath, &settings); err != nil {
			logging.W("Cookie export for list %q failed, continuing without: %v", name, err)
		}
	}

	printer := print.NewProgressPrinter(cmd.OutOrStdout(), true)
	o := &downloads.Orchestrator{
		Runner:       runner.NewRunner(),
		Settings:     settings,
		IgnoreErrors: viper.GetBool(keys.IgnoreErrors),
		Interrupt:    d.Interrupt,
		RunLogPath:   paths.RunLogFilePath,
		OnEvent:      printer.Event,
	}
	if d.Store != nil {
		o.Store = d.Store.GetRunStore()
	}

	stats, err := o.RunList(cmd.Context(), name, listPath)
	printer.Finish()
	if stats != nil {
		fmt.Fprint(cmd.OutOrStdout(), print.RunSummary(stats))
		if stats.State == models.RunAborted && !d.Interrupt.IsSet() && stats.Failed > 0 {
			err = errors.Join(err, fmt.Errorf("list %q aborted after a failed download", name))
		}
	}
	return err
}

// exportListCookies writes browser cookies for the list's sites and points settings at the file.
func exportListCookies(cmd *cobra.Command, listPath string, settings *models.JobSettings) error {
	urls, err := file.ReadFileLines(listPath)
	if err != nil {
		return err
	}

	n, err := cookies.ExportForURLs(cmd.Context(), urls, paths.CookieFilePath)
	if err != nil {
		return err
	}
	if n == 0 {
		logging.I("No browser cookies found for this list's sites")
		return nil
	}

	logging.I("Exported %d browser cookies to %q", n, paths.CookieFilePath)
	settings.CookieFile = paths.CookieFilePath
	return nil
}
