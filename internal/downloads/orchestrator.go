// Package downloads drives a URL list through the child downloader, one item at a time.
package downloads

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"harvester/internal/command/builder"
	"harvester/internal/domain/consts"
	"harvester/internal/domain/errs"
	"harvester/internal/file"
	"harvester/internal/models"
	"harvester/internal/parsing"
	"harvester/internal/state"
	"harvester/internal/times"
	"harvester/internal/utils/logging"

	"github.com/google/uuid"
)

// JobRunner runs one child job to completion.
type JobRunner interface {
	Run(job models.Job, sink func(line string)) models.RunOutcome
}

// Orchestrator owns one list for the duration of a run.
//
// It is sequential: concurrency is handed to the child, never used here.
type Orchestrator struct {
	Runner       JobRunner
	Settings     models.JobSettings
	IgnoreErrors bool
	Interrupt    *state.Interrupt

	// Store and RunLogPath are optional persistence targets.
	Store      models.RunStore
	RunLogPath string

	// OnEvent receives every classified output line with the URL it belongs to.
	OnEvent func(url string, ev models.ProgressEvent)

	Clock     times.Clock
	ItemDelay time.Duration

	mu    sync.Mutex
	state models.RunState
}

// queued is one valid URL and its line index in the list file.
type queued struct {
	line int
	url  string
}

// State returns the current run state.
func (o *Orchestrator) State() models.RunState {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state == "" {
		return models.RunIdle
	}
	return o.state
}

func (o *Orchestrator) setState(s models.RunState) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
	logging.D(2, "Run state: %s", s)
}

// RunList processes every URL in the list at listPath.
//
// A list that cannot be read returns an error and no stats. Otherwise stats are
// always returned, together with any persistence errors joined into one.
func (o *Orchestrator) RunList(ctx context.Context, listName, listPath string) (*models.DownloadStats, error) {
	if o.Runner == nil {
		return nil, errors.New("orchestrator has no runner")
	}
	clock := o.clock()

	stats := &models.DownloadStats{
		RunID:     uuid.NewString(),
		ListName:  listName,
		StartedAt: clock.Now(),
	}

	// Validating
	o.setState(models.RunValidating)
	lines, err := file.ReadFileLines(listPath)
	if err != nil {
		o.setState(models.RunIdle)
		return nil, fmt.Errorf("failed to load list %q: %w", listName, err)
	}

	queue := make([]queued, 0, len(lines))
	for i, l := range lines {
		if err := parsing.ValidateURL(l); err != nil {
			logging.W("Skipping line %d of list %q: %v", i+1, listName, err)
			stats.Skipped++
			stats.SkippedURLs = append(stats.SkippedURLs, l)
			continue
		}
		queue = append(queue, queued{line: i, url: l})
	}
	stats.Total = len(queue)

	// Processing
	o.setState(models.RunProcessing)
	succeeded := make(map[int]bool, len(queue))
	settings := o.Settings
	final := models.RunCompleted

	for i, q := range queue {
		if o.Interrupt.IsSet() {
			logging.I("Interrupt set, not starting item %d of %d", i+1, len(queue))
			final = models.RunAborted
			break
		}

		playlist := parsing.IsPlaylist(q.url)
		if playlist && settings.Concurrency > consts.PlaylistConcurrencyCap {
			logging.W("Playlist detected (%s): lowering concurrency from %d to %d for the rest of this run",
				q.url, settings.Concurrency, consts.PlaylistConcurrencyCap)
			settings.Concurrency = consts.PlaylistConcurrencyCap
		}

		logging.I("Downloading [%d/%d]: %s", i+1, len(queue), q.url)
		outcome := o.runOne(&settings, q.url, playlist)

		if outcome.Kind == models.OutcomeCancelled {
			logging.W("Download of %s cancelled, stopping run", q.url)
			final = models.RunAborted
			break
		}

		stats.Results = append(stats.Results, models.URLResult{Position: i + 1, URL: q.url, Outcome: outcome})

		if outcome.OK() {
			stats.Successful++
			succeeded[q.line] = true
			logging.S("Downloaded [%d/%d]: %s", i+1, len(queue), q.url)
		} else {
			stats.Failed++
			stats.FailedURLs = append(stats.FailedURLs, q.url)
			logging.E("Failed [%d/%d] %s: %v", i+1, len(queue), q.url, outcome.Err)

			if !o.IgnoreErrors {
				logging.W("Stopping at first error (ignore-errors is off)")
				final = models.RunAborted
				break
			}
		}

		if settings.Concurrency > 1 && i < len(queue)-1 {
			if !times.WaitTime(clock, o.itemDelay(), o.Interrupt.Done()) {
				final = models.RunAborted
				break
			}
		}
	}

	stats.FinishedAt = clock.Now()
	stats.Elapsed = stats.FinishedAt.Sub(stats.StartedAt)
	stats.State = final
	o.setState(final)

	remaining := make([]string, 0, len(lines)-len(succeeded))
	for i, l := range lines {
		if !succeeded[i] {
			remaining = append(remaining, l)
		}
	}

	return stats, o.persist(ctx, stats, listPath, remaining)
}

// runOne builds and runs a single job, routing its output through the parser.
func (o *Orchestrator) runOne(settings *models.JobSettings, url string, playlist bool) models.RunOutcome {
	job, err := builder.NewDLCommandBuilder(settings).BuildJob(url, playlist, o.Interrupt)
	if err != nil {
		return models.SpawnError(fmt.Errorf("could not build command: %w", err))
	}

	return o.Runner.Run(job, func(line string) {
		ev := parsing.ParseProgress(line)
		if o.OnEvent != nil {
			o.OnEvent(url, ev)
			return
		}
		if ev.Kind != models.EventProgress {
			logging.D(1, "%s", ev.Text)
		}
	})
}

// persist writes the run log, the remaining list and the run record.
//
// Every target is attempted even if an earlier one fails.
func (o *Orchestrator) persist(ctx context.Context, stats *models.DownloadStats, listPath string, remaining []string) error {
	var errList []error

	if o.RunLogPath != "" {
		if err := file.AppendRunLog(o.RunLogPath, stats); err != nil {
			errList = append(errList, fmt.Errorf("%w: run log: %w", errs.ErrPersistence, err))
		}
	}

	if err := file.WriteLinesAtomic(listPath, remaining, consts.PermsListFile); err != nil {
		errList = append(errList, fmt.Errorf("%w: remaining list: %w", errs.ErrPersistence, err))
	}

	if o.Store != nil {
		// An operator interrupt cancels ctx, but the aborted run must still be recorded
		dbCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), consts.DatabaseTimeout)
		defer cancel()
		if err := o.Store.RecordRun(dbCtx, stats); err != nil {
			errList = append(errList, fmt.Errorf("%w: run record: %w", errs.ErrPersistence, err))
		}
	}

	for _, err := range errList {
		logging.E("PERSISTENCE FAILURE: %v", err)
	}
	return errors.Join(errList...)
}

func (o *Orchestrator) clock() times.Clock {
	if o.Clock == nil {
		return times.SystemClock{}
	}
	return o.Clock
}

func (o *Orchestrator) itemDelay() time.Duration {
	if o.ItemDelay <= 0 {
		return consts.InterItemDelay
	}
	return o.ItemDelay
}
