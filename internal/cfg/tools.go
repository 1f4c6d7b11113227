package cfg

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"harvester/internal/command/runner"
	"harvester/internal/domain/command"
	"harvester/internal/domain/consts"
	"harvester/internal/domain/keys"
	"harvester/internal/utils/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initToolsCmd creates the command checking the child executables.
func initToolsCmd() *cobra.Command {
	toolsCmd := &cobra.Command{
		Use:   "tools",
		Short: "Check that yt-dlp and ffmpeg can be found and report their versions.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r := runner.NewRunner()
			out := cmd.OutOrStdout()

			ytdlp := flagOrConfig(cmd, keys.YtdlpPath)
			if ytdlp == "" {
				ytdlp = consts.YTDLP
			}
			ytVer, ytErr := r.Version(ytdlp, command.Version)
			reportTool(out, consts.YTDLP, ytVer, ytErr)

			ffVer, ffErr := r.Version(ffmpegProgram(flagOrConfig(cmd, keys.FFmpegLocation)), command.FFmpegVersion)
			reportTool(out, consts.FFMPEG, ffVer, ffErr)

			if ytErr != nil {
				return fmt.Errorf("%s unavailable: %w", consts.YTDLP, ytErr)
			}
			if ffErr != nil {
				logging.W("%s unavailable, merging and audio extraction will fail: %v", consts.FFMPEG, ffErr)
			}
			return nil
		},
	}

	toolsCmd.Flags().String(keys.YtdlpPath, "", "yt-dlp executable")
	toolsCmd.Flags().String(keys.FFmpegLocation, "", "ffmpeg binary or directory")
	return toolsCmd
}

// ffmpegProgram resolves the ffmpeg location setting to an executable path.
func ffmpegProgram(location string) string {
	if location == "" {
		return consts.FFMPEG
	}
	if info, err := os.Stat(location); err == nil && info.IsDir() {
		return filepath.Join(location, consts.FFMPEG)
	}
	return location
}

// flagOrConfig prefers a flag set on cmd, then the configured (env or file) value.
func flagOrConfig(cmd *cobra.Command, key string) string {
	if f := cmd.Flags().Lookup(key); f != nil && f.Changed {
		return f.Value.String()
	}
	return viper.GetString(key)
}

// reportTool prints one status line for a tool.
func reportTool(w io.Writer, name, version string, err error) {
	if err != nil {
		fmt.Fprintf(w, "%s%s: %v\n", consts.RedError, name, err)
		return
	}
	fmt.Fprintf(w, "%s%s: %s\n", consts.GreenSuccess, name, version)
}
