package session

import (
	"fmt"
	"strings"
	"time"
)

// TerminationRecord captures the outcome of one termination attempt.
type TerminationRecord struct {
	PID         int32
	Description string
	Succeeded   bool
}

// MemorySummary aggregates total resident memory before and after a batch
// of terminations, plus the OS-reported available memory afterwards.
type MemorySummary struct {
	BeforeMB         uint64
	AfterMB          uint64
	AvailableAfterMB uint64
}

// FreedMB reports the resident memory released by the batch, floored at
// zero: unrelated allocations can push the after total above the before
// total during the settle window.
func (m MemorySummary) FreedMB() uint64 {
	if m.AfterMB >= m.BeforeMB {
		return 0
	}
	return m.BeforeMB - m.AfterMB
}

// Report renders the end-of-batch summary shown to the user: the memory
// accounting block, per-process outcomes, and a pointer at the session log.
func Report(sum MemorySummary, records []TerminationRecord, logPath string, completedAt time.Time) string {
	var terminated, failed []TerminationRecord
	for _, rec := range records {
		if rec.Succeeded {
			terminated = append(terminated, rec)
		} else {
			failed = append(failed, rec)
		}
	}

	heavyRule := strings.Repeat("=", 72)
	lightRule := strings.Repeat("-", 72)

	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	line(heavyRule)
	line("RAM MANAGEMENT SUMMARY")
	line(heavyRule)
	line("")
	line("RAM USAGE STATISTICS:")
	line("  Before Operation:  %d MB", sum.BeforeMB)
	line("  After Operation:   %d MB", sum.AfterMB)
	line("  RAM Freed:         %d MB", sum.FreedMB())
	line("  Available Memory:  %d MB", sum.AvailableAfterMB)
	line("")
	line(lightRule)
	line("")

	if len(terminated) > 0 {
		line("SUCCESSFULLY TERMINATED PROCESSES (%d):", len(terminated))
		for _, rec := range terminated {
			line("  ✓ %s", rec.Description)
		}
	} else {
		line("SUCCESSFULLY TERMINATED PROCESSES: None")
	}
	line("")

	if len(failed) > 0 {
		line("FAILED TO TERMINATE (%d):", len(failed))
		for _, rec := range failed {
			line("  ✗ %s", rec.Description)
		}
		line("")
		line("NOTE: Failed terminations may require administrator privileges.")
		line("      Re-run with elevated privileges to terminate those processes.")
		line("")
	}

	line(lightRule)
	line("")
	line("Operation completed at: %s", completedAt.Format(timeLayout))
	line("")
	line("Log file: %s", logPath)

	return b.String()
}
