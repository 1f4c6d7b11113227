// Package runner spawns child processes from an argument vector and streams
// their merged output line by line.
package runner

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"harvester/internal/domain/command"
	"harvester/internal/domain/consts"
	"harvester/internal/models"
	"harvester/internal/state"
	"harvester/internal/times"
	"harvester/internal/utils/logging"
)

// Runner executes one Job at a time.
type Runner struct {
	// PollInterval bounds how long the wait loop goes without checking the interrupt.
	PollInterval time.Duration
	// GracePeriod is the time between the polite stop and the forced kill.
	GracePeriod time.Duration
	Clock       times.Clock
	// OnStart, if set, is called with the child PID right after spawn.
	OnStart func(pid int)
}

// NewRunner returns a Runner with the default poll interval and grace period.
func NewRunner() *Runner {
	return &Runner{
		PollInterval: consts.PollInterval,
		GracePeriod:  consts.TerminationGrace,
		Clock:        times.SystemClock{},
	}
}

// Run spawns the job, forwards each output line to sink and returns the
// classified outcome.
//
// Stdout and stderr share one pipe, so lines reach the sink in the order the
// child wrote them. The sink is called from a single goroutine. A slow sink
// stalls the child on a full pipe rather than dropping output. Run always
// reaps the child before returning.
func (r *Runner) Run(job models.Job, sink func(line string)) (outcome models.RunOutcome) {
	defer func() {
		if rec := recover(); rec != nil {
			logging.E("Recovered from panic running %q: %v", job.Program, rec)
			outcome = models.SpawnError(fmt.Errorf("internal runner panic: %v", rec))
		}
	}()

	if job.Program == "" {
		return models.SpawnError(errors.New("no program given"))
	}
	if job.Interrupt.IsSet() {
		return models.Cancelled()
	}
	if sink == nil {
		sink = func(string) {}
	}

	path, err := exec.LookPath(job.Program)
	if err != nil {
		return models.SpawnError(fmt.Errorf("%w (%s)", err, consts.SpawnRemediation))
	}

	cmd := exec.Command(path, job.Args...)
	prepareCommand(cmd, append([]string{path}, job.Args...))

	pr, pw, err := os.Pipe()
	if err != nil {
		return models.SpawnError(fmt.Errorf("failed to create output pipe: %w", err))
	}
	cmd.Stdout = pw
	cmd.Stderr = pw

	logging.D(1, "Executing command: %s %q", path, job.Args)
	if err := cmd.Start(); err != nil {
		closeAll(pr, pw)
		return models.SpawnError(fmt.Errorf("%w (%s)", err, consts.SpawnRemediation))
	}

	// The child holds its own copy of the write end
	if err := pw.Close(); err != nil {
		logging.D(2, "Failed to close parent write end of output pipe: %v", err)
	}

	pid := cmd.Process.Pid
	if r.OnStart != nil {
		r.OnStart(pid)
	}

	readDone := make(chan struct{})
	go func() {
		defer close(readDone)
		if err := scanLines(pr, sink); err != nil && !errors.Is(err, os.ErrClosed) {
			logging.D(1, "Output reader for PID %d stopped: %v", pid, err)
		}
	}()

	waitDone := make(chan error, 1)
	go func() {
		waitDone <- cmd.Wait()
	}()

	clock := r.clock()
	for {
		select {
		case err := <-waitDone:
			return r.drain(cmd, job, readDone, pr, classifyExit(err))

		case <-job.Interrupt.Done():
			return r.cancel(cmd, waitDone, readDone, pr)

		case <-clock.After(r.pollInterval()):
			if job.Interrupt.IsSet() {
				return r.cancel(cmd, waitDone, readDone, pr)
			}
		}
	}
}

// drain waits for the output reader once the child has exited.
//
// Descendants of the child inherit the pipe and can keep it open. They are
// killed when the interrupt is set or when the grace period runs out.
func (r *Runner) drain(cmd *exec.Cmd, job models.Job, readDone <-chan struct{}, pr *os.File, outcome models.RunOutcome) models.RunOutcome {
	clock := r.clock()
	deadline := clock.After(r.gracePeriod())

	for {
		select {
		case <-readDone:
			closeAll(pr)
			return outcome

		case <-job.Interrupt.Done():
			logging.I("Interrupt received, stopping leftover processes of PID %d", cmd.Process.Pid)
			r.stopGroup(cmd, readDone, pr)
			return models.Cancelled()

		case <-deadline:
			logging.W("Output of PID %d still open %v after exit, killing its process group", cmd.Process.Pid, r.gracePeriod())
			r.stopGroup(cmd, readDone, pr)
			return outcome

		case <-clock.After(r.pollInterval()):
			if job.Interrupt.IsSet() {
				r.stopGroup(cmd, readDone, pr)
				return models.Cancelled()
			}
		}
	}
}

// stopGroup kills whatever is left in the child's process group and waits for the reader.
func (r *Runner) stopGroup(cmd *exec.Cmd, readDone <-chan struct{}, pr *os.File) {
	if err := forceKill(cmd); err != nil {
		logging.D(2, "Process group sweep for PID %d: %v", cmd.Process.Pid, err)
	}

	select {
	case <-readDone:
	case <-r.clock().After(r.gracePeriod()):
		closeAll(pr)
		<-readDone
	}
	closeAll(pr)
}

// cancel stops the child, escalating to a forced kill after the grace period.
func (r *Runner) cancel(cmd *exec.Cmd, waitDone <-chan error, readDone <-chan struct{}, pr *os.File) models.RunOutcome {
	pid := cmd.Process.Pid
	clock := r.clock()
	logging.I("Interrupt received, stopping child process (PID %d)", pid)

	if err := terminate(cmd); err != nil {
		logging.D(1, "Polite stop of PID %d failed: %v", pid, err)
	}

	select {
	case <-waitDone:
	case <-clock.After(r.gracePeriod()):
		logging.W("Child process (PID %d) did not stop within %v, killing", pid, r.gracePeriod())
		if err := forceKill(cmd); err != nil {
			logging.E("Failed to kill PID %d: %v", pid, err)
		}
		<-waitDone
	}

	// Sweep anything left in the process group holding the pipe open
	r.stopGroup(cmd, readDone, pr)
	return models.Cancelled()
}

// Version runs "<program> <flag>" and returns the first line of output.
//
// An empty flag means "--version".
func (r *Runner) Version(program, flag string) (string, error) {
	if flag == "" {
		flag = command.Version
	}

	interrupt := state.NewInterrupt()
	timer := time.AfterFunc(consts.VersionTimeout, interrupt.Set)
	defer timer.Stop()

	var lines []string
	outcome := r.Run(models.Job{
		Program:   program,
		Args:      []string{flag},
		Interrupt: interrupt,
	}, func(line string) {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	})

	if !outcome.OK() {
		return "", fmt.Errorf("%s %s: %s", program, flag, outcome)
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("%s %s printed nothing", program, flag)
	}
	return strings.TrimSpace(lines[0]), nil
}

// classifyExit maps the result of Wait onto an outcome.
func classifyExit(err error) models.RunOutcome {
	if err == nil {
		return models.Succeeded()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// ExitCode is -1 when the child was killed by a signal
		return models.FailedWithCode(exitErr.ExitCode())
	}
	logging.E("Unexpected wait error: %v", err)
	return models.FailedWithCode(-1)
}

func (r *Runner) clock() times.Clock {
	if r.Clock == nil {
		return times.SystemClock{}
	}
	return r.Clock
}

func (r *Runner) pollInterval() time.Duration {
	if r.PollInterval <= 0 {
		return consts.PollInterval
	}
	return r.PollInterval
}

func (r *Runner) gracePeriod() time.Duration {
	if r.GracePeriod <= 0 {
		return consts.TerminationGrace
	}
	return r.GracePeriod
}

func closeAll(files ...*os.File) {
	for _, f := range files {
		if f != nil {
			_ = f.Close()
		}
	}
}
