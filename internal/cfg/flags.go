package cfg

import (
	"fmt"

	"harvester/internal/domain/consts"
	"harvester/internal/domain/keys"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// initProgramFlags sets the persistent, program-wide flags.
func initProgramFlags(root *cobra.Command) error {
	pf := root.PersistentFlags()
	pf.String(keys.ConfigFile, "", "Path to a config file (yaml, toml, json) holding any of the flags below")
	pf.Int(keys.DebugLevel, 0, "Debug level (0-5)")
	pf.String(keys.ListsDir, "", "Directory holding list files (default ~/.harvester/lists)")

	return bindFlags(pf, keys.ConfigFile, keys.DebugLevel, keys.ListsDir)
}

// initDownloadFlags sets flags controlling how each URL is downloaded.
func initDownloadFlags(cmd *cobra.Command) error {
	f := cmd.Flags()

	// Format selection
	f.String(keys.Mode, "video", "Download mode: video or audio")
	f.String(keys.Quality, consts.DefaultQuality, "Quality: best, or a maximum height such as 720")
	f.String(keys.TargetFormat, consts.DefaultTargetFormat, "Target format: original, a container (mp4, mkv, webm...) or an audio codec (mp3, m4a, opus...)")
	f.StringP(keys.OutputTemplate, "o", consts.DefaultOutputTemplate, "yt-dlp output template")

	// Retries and pacing
	f.Int(keys.Retries, consts.DefaultRetries, "Retries yt-dlp makes per download")
	f.Int(keys.FragmentRetries, consts.DefaultRetries, "Retries yt-dlp makes per fragment")
	f.IntP(keys.ConcurrencyInput, "c", consts.DefaultConcurrency, fmt.Sprintf("Concurrent fragments per download (1-%d)", consts.MaxConcurrency))
	f.Int(keys.ThrottleSeconds, 0, "Seconds to sleep between playlist items")
	f.Bool(keys.IgnoreErrors, true, "Keep going after a failed URL (failed URLs stay in the list)")
	f.Bool(keys.RestrictFilenames, true, "Restrict output filenames to ASCII without spaces")

	// Archive
	f.String(keys.ArchiveFile, "", "yt-dlp download archive file (default ~/.harvester/archive.txt)")
	f.Bool(keys.NoArchive, false, "Do not pass a download archive to yt-dlp")

	// Tools
	f.String(keys.YtdlpPath, consts.YTDLP, "yt-dlp executable")
	f.String(keys.FFmpegLocation, "", "ffmpeg binary or directory passed to yt-dlp")

	// Cookies
	f.String(keys.CookiesFromBrowser, "", "Let yt-dlp read cookies from this browser (e.g. firefox)")
	f.String(keys.CookieFile, "", "Netscape cookie file passed to yt-dlp")
	f.Bool(keys.ExportCookies, false, "Export cookies for each list's sites from local browsers into a cookie file")

	return bindFlags(f,
		keys.Mode,
		keys.Quality,
		keys.TargetFormat,
		keys.OutputTemplate,
		keys.Retries,
		keys.FragmentRetries,
		keys.ConcurrencyInput,
		keys.ThrottleSeconds,
		keys.IgnoreErrors,
		keys.RestrictFilenames,
		keys.ArchiveFile,
		keys.NoArchive,
		keys.YtdlpPath,
		keys.FFmpegLocation,
		keys.CookiesFromBrowser,
		keys.CookieFile,
		keys.ExportCookies,
	)
}

// bindFlags binds each named flag to the Viper key of the same name.
func bindFlags(fs *pflag.FlagSet, names ...string) error {
	for _, name := range names {
		flag := fs.Lookup(name)
		if flag == nil {
			return fmt.Errorf("dev error: flag %q not defined", name)
		}
		if err := viper.BindPFlag(name, flag); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}
	return nil
}
