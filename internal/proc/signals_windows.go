//go:build windows

package proc

import (
	"errors"
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v3/process"
)

// windowsSignaller routes through gopsutil because Windows has no SIGTERM
// equivalent; both stages end up calling TerminateProcess, so the escalation
// collapses to best-effort semantics on this platform.
type windowsSignaller struct{}

// NewSignaller returns the host signal implementation.
func NewSignaller() Signaller {
	return windowsSignaller{}
}

func (windowsSignaller) Exists(pid int32) bool {
	ok, err := process.PidExists(pid)
	if err != nil {
		return false
	}
	return ok
}

func (windowsSignaller) Graceful(pid int32) error {
	p, err := process.NewProcess(pid)
	if err != nil {
		return translateProcessErr(err)
	}
	return translateProcessErr(p.Terminate())
}

func (windowsSignaller) Forceful(pid int32) error {
	p, err := process.NewProcess(pid)
	if err != nil {
		return translateProcessErr(err)
	}
	return translateProcessErr(p.Kill())
}

func translateProcessErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, process.ErrorProcessNotRunning):
		return ErrProcessGone
	case errors.Is(err, os.ErrPermission):
		return fmt.Errorf("terminate process: %w", os.ErrPermission)
	default:
		return fmt.Errorf("terminate process: %w", err)
	}
}
