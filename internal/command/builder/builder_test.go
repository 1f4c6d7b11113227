package builder

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"harvester/internal/domain/errs"
	"harvester/internal/models"
	"harvester/internal/state"
)

func baseSettings() *models.JobSettings {
	return &models.JobSettings{
		Mode:            models.ModeVideo,
		Quality:         "best",
		TargetFormat:    "original",
		OutputTemplate:  "downloads/%(title)s.%(ext)s",
		Retries:         10,
		FragmentRetries: 10,
		Concurrency:     1,
	}
}

// flagValue returns the token following flag, or "" if flag is absent.
func flagValue(args []string, flag string) string {
	i := slices.Index(args, flag)
	if i < 0 || i+1 >= len(args) {
		return ""
	}
	return args[i+1]
}

func TestBuildArgsAlwaysMachineReadable(t *testing.T) {
	t.Parallel()

	args, err := NewDLCommandBuilder(baseSettings()).BuildArgs("https://example.com/v/1", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"--newline", "--no-color", "--no-playlist"} {
		if !slices.Contains(args, want) {
			t.Errorf("args missing %q: %q", want, args)
		}
	}
	if slices.Contains(args, "--yes-playlist") {
		t.Errorf("single video should not request playlist expansion: %q", args)
	}
}

func TestBuildArgsURLIsLastAfterEndOfOptions(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://example.com/watch?v=abc&list=PL1",
		"-https://evil.example/--exec=rm",
		"https://example.com/a b;$(touch x)|`id`",
		"https://example.com/'quoted'\"dq\"",
	}
	for _, u := range urls {
		args, err := NewDLCommandBuilder(baseSettings()).BuildArgs(u, false)
		if err != nil {
			t.Fatalf("BuildArgs(%q): %v", u, err)
		}
		n := len(args)
		if args[n-1] != u {
			t.Errorf("last arg = %q, want URL %q verbatim", args[n-1], u)
		}
		if args[n-2] != "--" {
			t.Errorf("arg before URL = %q, want \"--\"", args[n-2])
		}
		if slices.Index(args, u) != n-1 {
			t.Errorf("URL %q appears before the end of the vector", u)
		}
	}
}

func TestBuildArgsVideoFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, quality, target string
		wantFormat, wantMerge string
	}{
		{"best original", "best", "original", "b/bv*+ba", "mkv"},
		{"best mp4", "best", "mp4", "b/bv*+ba", "mp4"},
		{"capped original", "720", "original", "b[height<=720]/bv*[height<=720]+ba/b", ""},
		{"capped p suffix webm", "1080p", "webm", "b[height<=1080]/bv*[height<=1080]+ba/b", "webm"},
		{"empty quality", "", "", "b/bv*+ba", "mkv"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := baseSettings()
			s.Quality = tt.quality
			s.TargetFormat = tt.target

			args, err := NewDLCommandBuilder(s).BuildArgs("https://example.com/v", false)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := flagValue(args, "-f"); got != tt.wantFormat {
				t.Errorf("-f = %q, want %q", got, tt.wantFormat)
			}
			if got := flagValue(args, "--merge-output-format"); got != tt.wantMerge {
				t.Errorf("--merge-output-format = %q, want %q", got, tt.wantMerge)
			}
		})
	}
}

func TestBuildArgsAudio(t *testing.T) {
	t.Parallel()

	tests := []struct {
		target, want string
	}{
		{"mp3", "mp3"},
		{"opus", "opus"},
		{"original", "best"},
		{"mp4", "mp3"},
	}
	for _, tt := range tests {
		s := baseSettings()
		s.Mode = models.ModeAudio
		s.TargetFormat = tt.target

		args, err := NewDLCommandBuilder(s).BuildArgs("https://example.com/v", false)
		if err != nil {
			t.Fatalf("target %q: unexpected error: %v", tt.target, err)
		}
		if !slices.Contains(args, "-x") {
			t.Errorf("target %q: audio mode missing -x: %q", tt.target, args)
		}
		if got := flagValue(args, "--audio-format"); got != tt.want {
			t.Errorf("target %q: --audio-format = %q, want %q", tt.target, got, tt.want)
		}
		if slices.Contains(args, "-f") {
			t.Errorf("target %q: audio mode should not set a video format: %q", tt.target, args)
		}
	}
}

func TestBuildArgsPlaylistAndThrottle(t *testing.T) {
	t.Parallel()

	s := baseSettings()
	s.ThrottleSeconds = 5
	args, err := NewDLCommandBuilder(s).BuildArgs("https://example.com/playlist?list=PL1", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Contains(args, "--yes-playlist") || slices.Contains(args, "--no-playlist") {
		t.Errorf("playlist flags wrong: %q", args)
	}
	if got := flagValue(args, "--sleep-interval"); got != "5" {
		t.Errorf("--sleep-interval = %q, want 5", got)
	}

	s.ThrottleSeconds = 0
	args, _ = NewDLCommandBuilder(s).BuildArgs("https://example.com/playlist?list=PL1", true)
	if slices.Contains(args, "--sleep-interval") {
		t.Errorf("no throttle should not emit --sleep-interval: %q", args)
	}
}

func TestBuildArgsOptionalFlags(t *testing.T) {
	t.Parallel()

	s := baseSettings()
	s.ArchivePath = "/tmp/archive file.txt"
	s.Concurrency = 4
	s.FFmpegLocation = "/opt/ffmpeg"
	s.CookieFile = "/tmp/cookies.txt"
	s.CookiesFromBrowser = "firefox"
	s.RestrictFilenames = true

	args, err := NewDLCommandBuilder(s).BuildArgs("https://example.com/v", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := map[string]string{
		"--download-archive":     "/tmp/archive file.txt",
		"--concurrent-fragments": "4",
		"--ffmpeg-location":      "/opt/ffmpeg",
		"--cookies":              "/tmp/cookies.txt",
		"--retries":              "10",
		"--fragment-retries":     "10",
		"-o":                     "downloads/%(title)s.%(ext)s",
	}
	for flag, want := range checks {
		if got := flagValue(args, flag); got != want {
			t.Errorf("%s = %q, want %q", flag, got, want)
		}
	}
	if slices.Contains(args, "--cookies-from-browser") {
		t.Errorf("cookie file should take priority over browser cookies: %q", args)
	}
	if !slices.Contains(args, "--restrict-filenames") {
		t.Errorf("missing --restrict-filenames: %q", args)
	}
	if strings.Count(strings.Join(args, "\x00"), "--download-archive") != 1 {
		t.Errorf("archive flag should appear exactly once: %q", args)
	}
}

func TestBuildArgsInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*models.JobSettings)
	}{
		{"bad quality", func(s *models.JobSettings) { s.Quality = "ultra" }},
		{"audio codec in video mode", func(s *models.JobSettings) { s.TargetFormat = "mp3" }},
		{"unknown target", func(s *models.JobSettings) { s.TargetFormat = "gif" }},
		{"unknown mode", func(s *models.JobSettings) { s.Mode = "hologram" }},
	}
	for _, tt := range tests {
		s := baseSettings()
		tt.mutate(s)
		_, err := NewDLCommandBuilder(s).BuildArgs("https://example.com/v", false)
		if !errors.Is(err, errs.ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", tt.name, err)
		}
	}

	if _, err := NewDLCommandBuilder(baseSettings()).BuildArgs("", false); err == nil {
		t.Errorf("expected error for blank URL")
	}
}

func TestBuildJob(t *testing.T) {
	t.Parallel()

	in := state.NewInterrupt()
	s := baseSettings()

	job, err := NewDLCommandBuilder(s).BuildJob("https://example.com/v", false, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if job.Program != "yt-dlp" {
		t.Errorf("Program = %q, want yt-dlp", job.Program)
	}
	if job.Interrupt != in {
		t.Errorf("interrupt token not carried into the job")
	}

	s.YtdlpPath = "/usr/local/bin/yt-dlp"
	if got := NewDLCommandBuilder(s).Program(); got != s.YtdlpPath {
		t.Errorf("Program() = %q, want %q", got, s.YtdlpPath)
	}
}
