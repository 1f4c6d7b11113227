// Package regex compiles and caches various regex expressions.
package regex

import (
	"regexp"
	"sync"
)

var (
	ansiEscape      *regexp.Regexp
	ansiEscapeOnce  sync.Once
	ansiJSON        *regexp.Regexp
	ansiJSONOnce    sync.Once
	dlPercent       *regexp.Regexp
	dlPercentOnce   sync.Once
	dlETA           *regexp.Regexp
	dlETAOnce       sync.Once
	numericQuality  *regexp.Regexp
	numericQualOnce sync.Once
)

// AnsiEscapeCompile compiles regex for ANSI escape codes.
func AnsiEscapeCompile() *regexp.Regexp {
	ansiEscapeOnce.Do(func() {
		ansiEscape = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)
	})
	return ansiEscape
}

// AnsiEscapeJSONCompile compiles regex for ANSI escape codes after JSON string encoding.
func AnsiEscapeJSONCompile() *regexp.Regexp {
	ansiJSONOnce.Do(func() {
		ansiJSON = regexp.MustCompile(`\\u001b\[[0-9;?]*[A-Za-z]`)
	})
	return ansiJSON
}

// DownloadPercentCompile compiles regex for yt-dlp "[download]  42.5%" progress lines.
func DownloadPercentCompile() *regexp.Regexp {
	dlPercentOnce.Do(func() {
		dlPercent = regexp.MustCompile(`^\[download\]\s+([0-9]{1,3}(?:\.[0-9]+)?)%`)
	})
	return dlPercent
}

// DownloadETACompile compiles regex for the ETA token ("ETA 01:30" or "ETA 00:01:30").
func DownloadETACompile() *regexp.Regexp {
	dlETAOnce.Do(func() {
		dlETA = regexp.MustCompile(`\bETA\s+(?:([0-9]+):)?([0-9]{1,2}):([0-9]{2})\b`)
	})
	return dlETA
}

// NumericQualityCompile compiles regex for height-capped quality values ("720", "1080p").
func NumericQualityCompile() *regexp.Regexp {
	numericQualOnce.Do(func() {
		numericQuality = regexp.MustCompile(`^([0-9]{2,4})p?$`)
	})
	return numericQuality
}
