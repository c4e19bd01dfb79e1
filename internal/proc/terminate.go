package proc

import (
	"errors"
	"os"
	"time"
)

// ErrProcessGone reports that the target process exited before or while a
// signal was being delivered.
var ErrProcessGone = errors.New("process already gone")

// Signaller delivers termination signals to host processes. Implementations
// translate "no such process" conditions to ErrProcessGone and permission
// refusals to errors matching os.ErrPermission.
type Signaller interface {
	// Exists reports whether pid refers to a live process.
	Exists(pid int32) bool
	// Graceful asks the process to exit cleanly. The process may ignore or
	// delay the request.
	Graceful(pid int32) error
	// Forceful terminates the process unconditionally.
	Forceful(pid int32) error
}

// Terminator escalates from graceful to forceful termination with a bounded
// wait between the two stages. The worst case per process is roughly
// graceWait + settleDelay.
type Terminator struct {
	sig Signaller

	graceWait    time.Duration
	pollInterval time.Duration
	settleDelay  time.Duration

	sleep func(time.Duration)
}

// Option configures a Terminator.
type Option func(*Terminator)

// WithGraceWait bounds how long the terminator waits for a process to honour
// the graceful signal before escalating.
func WithGraceWait(d time.Duration) Option {
	return func(t *Terminator) {
		if d > 0 {
			t.graceWait = d
		}
	}
}

// WithPollInterval sets the existence-poll cadence during the grace wait.
func WithPollInterval(d time.Duration) Option {
	return func(t *Terminator) {
		if d > 0 {
			t.pollInterval = d
		}
	}
}

// WithSettleDelay sets the pause between the forceful kill and the final
// existence check.
func WithSettleDelay(d time.Duration) Option {
	return func(t *Terminator) {
		if d > 0 {
			t.settleDelay = d
		}
	}
}

// NewTerminator constructs a Terminator over the supplied signaller.
func NewTerminator(sig Signaller, opts ...Option) *Terminator {
	t := &Terminator{
		sig:          sig,
		graceWait:    time.Second,
		pollInterval: 100 * time.Millisecond,
		settleDelay:  500 * time.Millisecond,
		sleep:        time.Sleep,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Terminate attempts to stop the process and reports whether it no longer
// exists afterwards. Permission refusals and already-gone races are absorbed
// here; the boolean is the only externally visible outcome.
func (t *Terminator) Terminate(pid int32) bool {
	if !t.sig.Exists(pid) {
		return true
	}

	// A permission refusal on the graceful signal is deliberately ignored:
	// the process may still exit on its own, and the final existence check
	// is authoritative either way.
	if err := t.sig.Graceful(pid); errors.Is(err, ErrProcessGone) {
		return true
	}

	polls := int(t.graceWait / t.pollInterval)
	if polls < 1 {
		polls = 1
	}
	for i := 0; i < polls; i++ {
		if !t.sig.Exists(pid) {
			return true
		}
		t.sleep(t.pollInterval)
	}

	if err := t.sig.Forceful(pid); err != nil {
		if errors.Is(err, ErrProcessGone) {
			return true
		}
		if errors.Is(err, os.ErrPermission) {
			return false
		}
	}

	t.sleep(t.settleDelay)
	return !t.sig.Exists(pid)
}
