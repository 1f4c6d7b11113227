package print

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"harvester/internal/models"
)

func TestFormatProgress(t *testing.T) {
	t.Parallel()

	got := FormatProgress(models.ProgressEvent{Kind: models.EventProgress, Percent: 42.5, ETA: 90 * time.Second, HasETA: true}, false)
	if got != "[DOWNLOAD]  42.5% ETA 00:01:30" {
		t.Fatalf("FormatProgress = %q", got)
	}

	got = FormatProgress(models.ProgressEvent{Kind: models.EventProgress, Percent: 100}, false)
	if got != "[DOWNLOAD] 100.0% ETA --:--:--" {
		t.Fatalf("FormatProgress without ETA = %q", got)
	}
}

func TestProgressPrinterBreaksLineForDiagnostics(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	p := NewProgressPrinter(&buf, false)

	p.Event("u", models.ProgressEvent{Kind: models.EventProgress, Percent: 10})
	p.Event("u", models.ProgressEvent{Kind: models.EventProgress, Percent: 20})
	p.Event("u", models.ProgressEvent{Kind: models.EventDiagnostic, Text: "[Merger] Merging formats"})
	p.Event("u", models.ProgressEvent{Kind: models.EventUnrecognized, Text: "odd line"})
	p.Finish()

	want := "\r[DOWNLOAD]  10.0% ETA --:--:--\r[DOWNLOAD]  20.0% ETA --:--:--\n[Merger] Merging formats\nodd line\n"
	if buf.String() != want {
		t.Fatalf("output = %q\nwant     %q", buf.String(), want)
	}
}

func TestRunSummary(t *testing.T) {
	t.Parallel()

	s := RunSummary(&models.DownloadStats{
		ListName:   "music",
		State:      models.RunAborted,
		Total:      3,
		Successful: 1,
		Failed:     1,
		FailedURLs: []string{"https://example.com/b"},
	})
	for _, want := range []string{`list "music" (aborted)`, "Successful: 1", "  - https://example.com/b"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary missing %q:\n%s", want, s)
		}
	}
}
