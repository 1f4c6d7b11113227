package file

import (
	"fmt"
	"strings"
	"time"

	"harvester/internal/models"
	"harvester/internal/parsing"
)

// AppendRunLog appends one run summary block to the run log.
func AppendRunLog(path string, stats *models.DownloadStats) error {
	if stats == nil {
		return fmt.Errorf("run stats passed in nil")
	}
	return AppendText(path, FormatRunLog(stats))
}

// FormatRunLog renders a run as a header line followed by one line per URL.
func FormatRunLog(stats *models.DownloadStats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s run=%s list=%s state=%s total=%d successful=%d failed=%d skipped=%d elapsed=%s\n",
		stats.FinishedAt.UTC().Format(time.RFC3339),
		stats.RunID,
		stats.ListName,
		stats.State,
		stats.Total,
		stats.Successful,
		stats.Failed,
		stats.Skipped,
		parsing.FormatDuration(stats.Elapsed),
	)
	for _, r := range stats.Results {
		fmt.Fprintf(&b, "  [%d] %s %s\n", r.Position, r.Outcome, r.URL)
	}
	for _, u := range stats.SkippedURLs {
		fmt.Fprintf(&b, "  [-] skipped (malformed) %s\n", u)
	}
	return b.String()
}
