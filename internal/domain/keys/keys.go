// Package keys holds various keys for software operations, such as terminal input keys and internal Viper keys.
package keys

// Files and directories.
const (
	ConfigFile     string = "config-file"
	ListsDir       string = "lists-dir"
	OutputTemplate string = "output"
	ArchiveFile    string = "archive-file"
	NoArchive      string = "no-archive"
)

// Child tools.
const (
	YtdlpPath      string = "ytdlp-path"
	FFmpegLocation string = "ffmpeg-location"
)

// Download settings.
const (
	Mode              string = "mode"
	Quality           string = "quality"
	TargetFormat      string = "format"
	Retries           string = "retries"
	FragmentRetries   string = "fragment-retries"
	ConcurrencyInput  string = "concurrency"
	ThrottleSeconds   string = "throttle"
	IgnoreErrors      string = "ignore-errors"
	RestrictFilenames string = "restrict-filenames"
)

// Cookies.
const (
	CookiesFromBrowser string = "cookies-from-browser"
	CookieFile         string = "cookie-file"
	ExportCookies      string = "export-cookies"
)

// History.
const (
	HistorySince string = "since"
	HistoryLimit string = "limit"
)

// Logging.
const (
	DebugLevel string = "debug"
)
