package cfg

import (
	"fmt"
	"strings"

	"harvester/internal/command/builder"
	"harvester/internal/domain/consts"
	"harvester/internal/domain/errs"
	"harvester/internal/domain/keys"
	"harvester/internal/domain/paths"
	"harvester/internal/models"
	"harvester/internal/utils/logging"

	"github.com/spf13/viper"
)

// verify normalizes the program-wide settings every command uses.
func verify() {
	verifyLogLevel()
	verifyConcurrencyLimit()
}

// verifyLogLevel clamps the debug level to 0-5.
func verifyLogLevel() {
	level := viper.GetInt(keys.DebugLevel)
	switch {
	case level < 0:
		level = 0
	case level > 5:
		level = 5
	}
	logging.Level = level
	viper.Set(keys.DebugLevel, level)
}

// verifyConcurrencyLimit checks and ensures correct concurrency limit input.
func verifyConcurrencyLimit() {
	n := viper.GetInt(keys.ConcurrencyInput)

	switch {
	case n < 1:
		n = 1
		logging.W("Concurrency set too low, set to minimum value: %d", n)
	case n > consts.MaxConcurrency:
		n = consts.MaxConcurrency
		logging.W("Concurrency set too high, set to maximum value: %d", n)
	default:
		logging.D(1, "Concurrency: %d", n)
	}
	viper.Set(keys.Concurrency, n)
}

// verifyDownloadSettings validates mode, quality and target format together.
func verifyDownloadSettings() error {
	mode := strings.ToLower(strings.TrimSpace(viper.GetString(keys.Mode)))
	if mode == "" {
		mode = string(models.ModeVideo)
	}
	switch models.Mode(mode) {
	case models.ModeVideo, models.ModeAudio:
	default:
		return fmt.Errorf("%w: mode %q must be %q or %q", errs.ErrValidation, mode, models.ModeVideo, models.ModeAudio)
	}
	viper.Set(keys.Mode, mode)

	if _, _, err := builder.ParseQuality(viper.GetString(keys.Quality)); err != nil {
		return err
	}

	format := strings.ToLower(strings.TrimSpace(viper.GetString(keys.TargetFormat)))
	if format == "" {
		format = consts.DefaultTargetFormat
	}
	switch {
	case format == consts.DefaultTargetFormat:
	case builder.IsAudioCodec(format):
		if models.Mode(mode) == models.ModeVideo {
			return fmt.Errorf("%w: format %q is an audio codec, use --%s audio", errs.ErrValidation, format, keys.Mode)
		}
	case builder.IsVideoContainer(format):
		if models.Mode(mode) == models.ModeAudio {
			logging.W("Format %q is a video container, audio will be extracted as %s", format, consts.DefaultAudioCodec)
		}
	default:
		return fmt.Errorf("%w: unknown format %q", errs.ErrValidation, format)
	}
	viper.Set(keys.TargetFormat, format)

	for _, k := range []string{keys.Retries, keys.FragmentRetries, keys.ThrottleSeconds} {
		if viper.GetInt(k) < 0 {
			return fmt.Errorf("%w: --%s cannot be negative", errs.ErrValidation, k)
		}
	}
	return nil
}

// jobSettingsFromConfig builds job settings from the verified configuration.
func jobSettingsFromConfig() models.JobSettings {
	archive := ""
	if !viper.GetBool(keys.NoArchive) {
		archive = viper.GetString(keys.ArchiveFile)
		if archive == "" {
			archive = paths.ArchiveFilePath
		}
	}

	return models.JobSettings{
		Mode:               models.Mode(viper.GetString(keys.Mode)),
		Quality:            viper.GetString(keys.Quality),
		TargetFormat:       viper.GetString(keys.TargetFormat),
		OutputTemplate:     viper.GetString(keys.OutputTemplate),
		Retries:            viper.GetInt(keys.Retries),
		FragmentRetries:    viper.GetInt(keys.FragmentRetries),
		Concurrency:        viper.GetInt(keys.Concurrency),
		ThrottleSeconds:    viper.GetInt(keys.ThrottleSeconds),
		ArchivePath:        archive,
		YtdlpPath:          viper.GetString(keys.YtdlpPath),
		FFmpegLocation:     viper.GetString(keys.FFmpegLocation),
		CookiesFromBrowser: viper.GetString(keys.CookiesFromBrowser),
		CookieFile:         viper.GetString(keys.CookieFile),
		RestrictFilenames:  viper.GetBool(keys.RestrictFilenames),
	}
}

// listsDir returns the configured lists directory.
func listsDir() string {
	if d := viper.GetString(keys.ListsDir); d != "" {
		return d
	}
	return paths.ListsDir
}
