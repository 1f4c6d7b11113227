// Package builder turns typed job settings into the yt-dlp argument vector.
package builder

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"harvester/internal/domain/command"
	"harvester/internal/domain/consts"
	"harvester/internal/domain/errs"
	"harvester/internal/domain/regex"
	"harvester/internal/models"
	"harvester/internal/state"
	"harvester/internal/utils/logging"
)

// DLCommandBuilder builds download invocations for one set of job settings.
type DLCommandBuilder struct {
	Settings *models.JobSettings
}

// NewDLCommandBuilder returns a builder for the given settings.
func NewDLCommandBuilder(s *models.JobSettings) *DLCommandBuilder {
	return &DLCommandBuilder{
		Settings: s,
	}
}

// Program returns the child executable to run.
func (b *DLCommandBuilder) Program() string {
	if b.Settings != nil && b.Settings.YtdlpPath != "" {
		return b.Settings.YtdlpPath
	}
	return consts.YTDLP
}

// BuildJob builds a complete Job for one URL.
func (b *DLCommandBuilder) BuildJob(url string, playlist bool, interrupt *state.Interrupt) (models.Job, error) {
	args, err := b.BuildArgs(url, playlist)
	if err != nil {
		return models.Job{}, err
	}
	return models.Job{
		Program:   b.Program(),
		Args:      args,
		Interrupt: interrupt,
	}, nil
}

// BuildArgs returns the ordered argument vector for one URL.
//
// Every element is a single opaque token. The URL is always last, after "--".
func (b *DLCommandBuilder) BuildArgs(url string, playlist bool) ([]string, error) {
	if b.Settings == nil {
		return nil, errors.New("job settings passed in nil")
	}
	if url == "" {
		return nil, errors.New("url passed in blank")
	}

	s := b.Settings
	args := make([]string, 0, 32)
	args = append(args, command.Newline, command.NoColor)

	switch s.Mode {
	case models.ModeAudio:
		args = append(args, command.ExtractAudio, command.AudioFormat, AudioCodecFor(s.TargetFormat))

	case models.ModeVideo, "":
		formatArgs, err := videoFormatArgs(s.Quality, s.TargetFormat)
		if err != nil {
			return nil, err
		}
		args = append(args, formatArgs...)

	default:
		return nil, fmt.Errorf("%w: unknown mode %q", errs.ErrValidation, s.Mode)
	}

	output := s.OutputTemplate
	if output == "" {
		output = consts.DefaultOutputTemplate
	}
	args = append(args, command.Output, output)

	if s.Retries >= 0 {
		args = append(args, command.Retries, strconv.Itoa(s.Retries))
	}
	if s.FragmentRetries >= 0 {
		args = append(args, command.FragmentRetries, strconv.Itoa(s.FragmentRetries))
	}
	if s.Concurrency > 1 {
		args = append(args, command.ConcurrentFragments, strconv.Itoa(s.Concurrency))
	}

	if s.ArchivePath != "" {
		args = append(args, command.DownloadArchive, s.ArchivePath)
	}

	if playlist {
		args = append(args, command.YesPlaylist)
		if s.ThrottleSeconds > 0 {
			args = append(args, command.SleepInterval, strconv.Itoa(s.ThrottleSeconds))
		}
	} else {
		args = append(args, command.NoPlaylist)
	}

	if s.RestrictFilenames {
		args = append(args, command.RestrictFilenames)
	}

	// Cookie file takes priority over reading a browser store
	switch {
	case s.CookieFile != "":
		args = append(args, command.CookiePath, s.CookieFile)
	case s.CookiesFromBrowser != "":
		args = append(args, command.CookiesFromBrowser, s.CookiesFromBrowser)
	}

	if s.FFmpegLocation != "" {
		args = append(args, command.FFmpegLocation, s.FFmpegLocation)
	}

	args = append(args, command.EndOfOptions, url)

	logging.D(2, "Built argument list: %q", args)
	return args, nil
}

// videoFormatArgs returns the format selection and merge target for video mode.
func videoFormatArgs(quality, target string) ([]string, error) {
	height, capped, err := ParseQuality(quality)
	if err != nil {
		return nil, err
	}

	target = strings.ToLower(strings.TrimSpace(target))
	if IsAudioCodec(target) {
		return nil, fmt.Errorf("%w: target format %q is an audio codec, use audio mode", errs.ErrValidation, target)
	}

	var args []string
	if capped {
		h := strconv.Itoa(height)
		args = append(args, command.Format,
			command.FormatCappedPrefix+h+"]/bv*[height<="+h+"]+ba/b")
	} else {
		args = append(args, command.Format, command.FormatBest)
	}

	switch {
	case IsVideoContainer(target):
		args = append(args, command.MergeOutputFormat, target)
	case !capped && (target == "" || target == consts.DefaultTargetFormat):
		args = append(args, command.MergeOutputFormat, consts.DefaultMergeFormat)
	case target != "" && target != consts.DefaultTargetFormat:
		return nil, fmt.Errorf("%w: unknown target format %q", errs.ErrValidation, target)
	}
	return args, nil
}

// ParseQuality reports the height cap for a quality string.
//
// "best" (or empty) returns capped=false. "720" and "720p" return 720.
func ParseQuality(quality string) (height int, capped bool, err error) {
	q := strings.ToLower(strings.TrimSpace(quality))
	if q == "" || q == consts.DefaultQuality {
		return 0, false, nil
	}

	m := regex.NumericQualityCompile().FindStringSubmatch(q)
	if m == nil {
		return 0, false, fmt.Errorf("%w: quality %q is neither %q nor a numeric height", errs.ErrValidation, quality, consts.DefaultQuality)
	}
	height, err = strconv.Atoi(m[1])
	if err != nil || height <= 0 {
		return 0, false, fmt.Errorf("%w: quality %q is not a valid height", errs.ErrValidation, quality)
	}
	return height, true, nil
}

// AudioCodecFor maps a target format to the codec passed to --audio-format.
func AudioCodecFor(target string) string {
	t := strings.ToLower(strings.TrimSpace(target))
	switch {
	case IsAudioCodec(t):
		return t
	case t == consts.DefaultTargetFormat:
		return command.AudioFormatBest
	default:
		return consts.DefaultAudioCodec
	}
}

// IsAudioCodec reports whether the target format names an audio codec.
func IsAudioCodec(target string) bool {
	return slices.Contains(consts.AudioCodecs[:], target)
}

// IsVideoContainer reports whether the target format names a video container.
func IsVideoContainer(target string) bool {
	return slices.Contains(consts.VideoContainers[:], target)
}
