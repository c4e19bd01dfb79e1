package cli

import (
	"fmt"
	"time"

	"github.com/example/ramtop/internal/proc"
	"github.com/example/ramtop/internal/session"
)

// terminator resolves the pid-terminating function, building the real
// escalating terminator from the config on first use.
func (a *appContext) terminator() func(pid int32) bool {
	if a.terminate == nil {
		term := proc.NewTerminator(proc.NewSignaller(),
			proc.WithGraceWait(a.cfg.GraceWait.Duration),
			proc.WithPollInterval(a.cfg.PollInterval.Duration),
			proc.WithSettleDelay(a.cfg.SettleDelay.Duration),
		)
		a.terminate = term.Terminate
	}
	return a.terminate
}

// runBatch terminates the given pids in order and returns the summary
// report. Once started the batch runs to completion; there is no mid-batch
// cancellation.
func (a *appContext) runBatch(pids []int32) (string, error) {
	sess, err := a.ensureSession()
	if err != nil {
		return "", err
	}
	terminate := a.terminator()

	records := make([]session.TerminationRecord, 0, len(pids))
	for _, pid := range pids {
		desc := a.inspector.Describe(pid)
		sess.Logf("Attempting to terminate: %s", desc)
		ok := terminate(pid)
		if ok {
			sess.Logf("Successfully terminated: %s", desc)
		} else {
			desc += " (Insufficient permissions or busy)"
			sess.Logf("Failed to terminate: %s", desc)
		}
		records = append(records, session.TerminationRecord{
			PID:         pid,
			Description: desc,
			Succeeded:   ok,
		})
	}

	// Let the freed pages show up in the totals before re-sampling.
	a.sleep(a.cfg.BatchSettle.Duration)

	if after, err := a.inspector.TotalResidentMB(); err == nil {
		sess.Logf("Final RAM usage: %d MB", after)
	}

	a.mu.Lock()
	a.records = records
	a.mu.Unlock()

	return a.report(), nil
}

// report samples current memory and renders the summary with the most
// recent batch outcomes.
func (a *appContext) report() string {
	a.mu.Lock()
	records := a.records
	before := a.beforeMB
	sess := a.session
	a.mu.Unlock()

	sum := session.MemorySummary{BeforeMB: before}
	if after, err := a.inspector.TotalResidentMB(); err == nil {
		sum.AfterMB = after
	}
	if avail, err := a.inspector.AvailableMB(); err == nil {
		sum.AvailableAfterMB = avail
	}

	var logPath string
	if sess != nil {
		logPath = sess.LogPath()
	}
	return session.Report(sum, records, logPath, time.Now())
}

// List implements tui.Backend.
func (a *appContext) List() ([]proc.ProcessSample, error) {
	return a.inspector.TopByResident(a.cfg.TopN)
}

// Terminate implements tui.Backend.
func (a *appContext) Terminate(pids []int32) string {
	report, err := a.runBatch(pids)
	if err != nil {
		return fmt.Sprintf("Termination batch failed: %v\n", err)
	}
	return report
}

// Summary implements tui.Backend.
func (a *appContext) Summary() string {
	return a.report()
}
