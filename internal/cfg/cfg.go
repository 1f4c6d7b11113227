// Package cfg provides configuration and command-line interface setup for Harvester.
package cfg

import (
	"context"
	"strings"

	"harvester/internal/domain/consts"
	"harvester/internal/domain/keys"
	"harvester/internal/repo"
	"harvester/internal/state"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "HARVESTER"

// Deps are the long-lived handles the commands need.
type Deps struct {
	Store     *repo.Store
	Interrupt *state.Interrupt
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           consts.ProgramName,
		Short:         "Harvester drives yt-dlp through lists of URLs, resumably and interruptibly.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile := viper.GetString(keys.ConfigFile); configFile != "" {
				if err := loadConfigFile(configFile); err != nil {
					return err
				}
			}
			verify()
			return nil
		},
	}
}

// InitCommands initializes all commands and their flags.
func InitCommands(d Deps) error {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_")) // "fragment-retries" reads HARVESTER_FRAGMENT_RETRIES
	viper.AutomaticEnv()

	return addCommands(rootCmd, d)
}

// addCommands attaches flags and subcommands to root.
func addCommands(root *cobra.Command, d Deps) error {
	if err := initProgramFlags(root); err != nil {
		return err
	}

	runCmd, err := initRunCmd(d)
	if err != nil {
		return err
	}
	root.AddCommand(runCmd, initListsCmd(), initHistoryCmd(d), initToolsCmd())
	return nil
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
