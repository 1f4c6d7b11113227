// Package print renders download progress and run summaries for the terminal.
package print

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"harvester/internal/domain/consts"
	"harvester/internal/models"
	"harvester/internal/parsing"
	"harvester/internal/times"
)

// ProgressPrinter redraws a single progress line and prints diagnostics above it.
type ProgressPrinter struct {
	Out   io.Writer
	Color bool

	mu    sync.Mutex
	inBar bool
}

// NewProgressPrinter returns a printer writing to w.
func NewProgressPrinter(w io.Writer, color bool) *ProgressPrinter {
	return &ProgressPrinter{Out: w, Color: color}
}

// Event renders one classified output line.
func (p *ProgressPrinter) Event(_ string, ev models.ProgressEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if ev.Kind == models.EventProgress {
		fmt.Fprint(p.Out, "\r"+FormatProgress(ev, p.Color))
		p.inBar = true
		return
	}

	if strings.TrimSpace(ev.Text) == "" {
		return
	}
	if p.inBar {
		fmt.Fprintln(p.Out)
		p.inBar = false
	}
	fmt.Fprintln(p.Out, ev.Text)
}

// Finish ends an open progress line.
func (p *ProgressPrinter) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.inBar {
		fmt.Fprintln(p.Out)
		p.inBar = false
	}
}

// FormatProgress renders "[DOWNLOAD]  42.5% ETA 00:01:30".
func FormatProgress(ev models.ProgressEvent, color bool) string {
	eta := "--:--:--"
	if ev.HasETA {
		eta = times.FormatETA(ev.ETA)
	}

	tag := "[DOWNLOAD]"
	if color {
		tag = consts.ColorCyan + tag + consts.ColorReset
	}
	return fmt.Sprintf("%s %5.1f%% ETA %s", tag, ev.Percent, eta)
}

// RunSummary renders the end-of-run report.
func RunSummary(stats *models.DownloadStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n========== %s: list %q (%s) ==========\n", consts.ProgramDisplay, stats.ListName, stats.State)
	fmt.Fprintf(&b, "Total:      %d\n", stats.Total)
	fmt.Fprintf(&b, "Successful: %d\n", stats.Successful)
	fmt.Fprintf(&b, "Failed:     %d\n", stats.Failed)
	fmt.Fprintf(&b, "Skipped:    %d\n", stats.Skipped)
	fmt.Fprintf(&b, "Elapsed:    %s\n", parsing.FormatDuration(stats.Elapsed))

	if len(stats.FailedURLs) > 0 {
		b.WriteString("\nFailed (kept for the next run):\n")
		for _, u := range stats.FailedURLs {
			fmt.Fprintf(&b, "  - %s\n", u)
		}
	}
	return b.String()
}
