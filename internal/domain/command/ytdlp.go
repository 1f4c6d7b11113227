// Package command holds the yt-dlp flag vocabulary the builder emits.
package command

// General
const (
	EndOfOptions      = "--"
	FFmpegLocation    = "--ffmpeg-location"
	Format            = "-f"
	MergeOutputFormat = "--merge-output-format"
	NoColor           = "--no-color"
	Newline           = "--newline"
	Output            = "-o"
	RestrictFilenames = "--restrict-filenames"
	Version           = "--version"
)

// Audio
const (
	ExtractAudio = "-x"
	AudioFormat  = "--audio-format"
)

// Format expressions
const (
	FormatBest         = "b/bv*+ba"
	FormatCappedPrefix = "b[height<="
	AudioFormatBest    = "best"
)

// Idempotence and retries
const (
	DownloadArchive     = "--download-archive"
	Retries             = "--retries"
	FragmentRetries     = "--fragment-retries"
	ConcurrentFragments = "--concurrent-fragments"
)

// Playlists
const (
	YesPlaylist   = "--yes-playlist"
	NoPlaylist    = "--no-playlist"
	SleepInterval = "--sleep-interval"
)

// Cookies
const (
	CookiesFromBrowser = "--cookies-from-browser"
	CookiePath         = "--cookies"
)

// FFmpeg
const (
	FFmpegVersion = "-version"
)
