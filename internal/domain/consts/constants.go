// Package consts holds various global, unchanging values.
package consts

// File prefix and suffix
const (
	TempTag     = "tmp_"
	ListFileExt = ".txt"
)

// List file syntax
const (
	CommentPrefix = "#"
)

// Run defaults
const (
	DefaultListName       = "list"
	DefaultOutputTemplate = "downloads/%(title)s.%(ext)s"
	DefaultQuality        = "best"
	DefaultTargetFormat   = "original"
	DefaultAudioCodec     = "mp3"
	DefaultMergeFormat    = "mkv"
	DefaultRetries        = 10
	DefaultConcurrency    = 1
	MaxConcurrency        = 25

	// PlaylistConcurrencyCap is the highest child concurrency allowed once a
	// playlist has been seen in the current run.
	PlaylistConcurrencyCap = 4
)

// VideoContainers are target formats handled as a merge container.
var VideoContainers = [...]string{"mp4", "mkv", "webm", "mov", "flv", "avi"}

// AudioCodecs are target formats handled as an audio extraction codec.
var AudioCodecs = [...]string{"mp3", "m4a", "aac", "opus", "vorbis", "flac", "wav", "alac"}
