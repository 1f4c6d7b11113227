package models

// Mode selects what the child extracts.
type Mode string

const (
	ModeVideo Mode = "video"
	ModeAudio Mode = "audio"
)

// JobSettings holds the per-run download configuration fed to the argument builder.
type JobSettings struct {
	Mode           Mode   `json:"mode"`
	Quality        string `json:"quality"`       // "best" or a numeric height ("720")
	TargetFormat   string `json:"target_format"` // "original", a container or an audio codec
	OutputTemplate string `json:"output_template"`

	Retries         int `json:"retries"`
	FragmentRetries int `json:"fragment_retries"`
	Concurrency     int `json:"concurrency"`
	ThrottleSeconds int `json:"throttle_seconds"`

	ArchivePath    string `json:"archive_path"`
	YtdlpPath      string `json:"ytdlp_path"`
	FFmpegLocation string `json:"ffmpeg_location"`

	CookiesFromBrowser string `json:"cookies_from_browser"`
	CookieFile         string `json:"cookie_file"`

	RestrictFilenames bool `json:"restrict_filenames"`
}
