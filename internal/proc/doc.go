// Package proc reads process and memory state from the host and terminates
// processes with a graceful-then-forceful signal escalation.
//
// Process enumeration and memory accounting go through gopsutil, which keeps
// the package portable across Linux, macOS and Windows. Signal delivery is
// host-specific: on Unix the package sends SIGTERM and SIGKILL directly,
// while the Windows build falls back to gopsutil's TerminateProcess wrappers.
// In both cases the final existence check, not the signal-send result, is
// what decides whether a termination succeeded.
package proc
