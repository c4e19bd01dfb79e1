//go:build !windows

package proc

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/shirou/gopsutil/v3/process"
)

type unixSignaller struct{}

// NewSignaller returns the host signal implementation.
func NewSignaller() Signaller {
	return unixSignaller{}
}

func (unixSignaller) Exists(pid int32) bool {
	ok, err := process.PidExists(pid)
	if err != nil {
		return false
	}
	return ok
}

func (unixSignaller) Graceful(pid int32) error {
	return translateKillErr(syscall.Kill(int(pid), syscall.SIGTERM))
}

func (unixSignaller) Forceful(pid int32) error {
	return translateKillErr(syscall.Kill(int(pid), syscall.SIGKILL))
}

func translateKillErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, syscall.ESRCH):
		return ErrProcessGone
	case errors.Is(err, syscall.EPERM):
		return fmt.Errorf("send signal: %w", os.ErrPermission)
	default:
		return fmt.Errorf("send signal: %w", err)
	}
}
