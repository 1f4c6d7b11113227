// Package parsing holds pure parsers for child output, URLs, names and dates.
package parsing

import (
	"strconv"
	"strings"
	"time"

	"harvester/internal/domain/regex"
	"harvester/internal/models"
)

// diagnosticPrefixes are line starts the child uses for status and errors.
var diagnosticPrefixes = [...]string{
	"[info]",
	"[ffmpeg]",
	"[Merger]",
	"[ExtractAudio]",
	"[VideoConvertor]",
	"[VideoRemuxer]",
	"[Fixup",
	"[download]",
	"[hlsnative]",
	"[dashsegments]",
	"[generic]",
	"[youtube]",
	"[youtube:tab]",
	"[debug]",
	"ERROR:",
	"WARNING:",
}

// ParseProgress classifies one line of child output.
//
// It never fails: anything it cannot place is Unrecognized, with the text kept.
func ParseProgress(line string) models.ProgressEvent {
	clean := StripANSI(line)
	clean = strings.TrimRight(clean, "\r\n")
	trimmed := strings.TrimSpace(clean)

	if m := regex.DownloadPercentCompile().FindStringSubmatch(trimmed); m != nil {
		if pct, err := strconv.ParseFloat(m[1], 64); err == nil && pct >= 0 && pct <= 100 {
			ev := models.ProgressEvent{
				Kind:    models.EventProgress,
				Percent: pct,
				Text:    clean,
			}
			ev.ETA, ev.HasETA = parseETA(trimmed)
			return ev
		}
	}

	for _, p := range diagnosticPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return models.ProgressEvent{Kind: models.EventDiagnostic, Text: clean}
		}
	}
	return models.ProgressEvent{Kind: models.EventUnrecognized, Text: clean}
}

// parseETA extracts "ETA MM:SS" or "ETA HH:MM:SS". "ETA Unknown" yields no ETA.
func parseETA(line string) (time.Duration, bool) {
	m := regex.DownloadETACompile().FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}

	var hours int
	if m[1] != "" {
		h, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		hours = h
	}
	mins, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, false
	}
	secs, err := strconv.Atoi(m[3])
	if err != nil || secs > 59 {
		return 0, false
	}
	if m[1] != "" && mins > 59 {
		return 0, false
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(mins)*time.Minute +
		time.Duration(secs)*time.Second, true
}

// StripANSI removes terminal escape sequences.
func StripANSI(s string) string {
	if !strings.Contains(s, "\x1b") {
		return s
	}
	return regex.AnsiEscapeCompile().ReplaceAllString(s, "")
}
