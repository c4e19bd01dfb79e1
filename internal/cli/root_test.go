package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestRootCommandWiring(t *testing.T) {
	root := NewRootCmd()

	for _, name := range []string{"top", "kill", "tui"} {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("root command missing subcommand %q", name)
		}
	}

	if root.PersistentFlags().Lookup("config") == nil {
		t.Fatalf("root command missing --config flag")
	}
}

func TestKillCommandEndToEnd(t *testing.T) {
	t.Setenv("RAMTOP_LOG_DIR", t.TempDir())

	root, app := newRootCommand()
	fake := &fakeInspector{
		totals:    []uint64{3000, 2500, 2500},
		available: 900,
		descs:     map[int32]string{42: "PID 42: hog (500 MB)"},
	}
	app.inspector = fake
	app.terminate = func(pid int32) bool { return true }
	app.sleep = func(time.Duration) {}

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"kill", "42"})

	if err := root.Execute(); err != nil {
		t.Fatalf("execute kill: %v", err)
	}

	for _, want := range []string{
		"RAM MANAGEMENT SUMMARY",
		"RAM Freed:         500 MB",
		"✓ PID 42: hog (500 MB)",
	} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("kill output missing %q\n%s", want, out.String())
		}
	}
}

func TestKillCommandRejectsBadPid(t *testing.T) {
	root, app := newRootCommand()
	app.sleep = func(time.Duration) {}

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"kill", "not-a-pid"})

	if err := root.Execute(); err == nil {
		t.Fatalf("kill accepted non-numeric pid")
	}
}

func TestTuiCommandRequiresTerminal(t *testing.T) {
	root, _ := newRootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"tui"})

	err := root.Execute()
	if err == nil {
		t.Fatalf("tui started without a terminal")
	}
	if !strings.Contains(err.Error(), "interactive terminal") {
		t.Fatalf("unexpected error: %v", err)
	}
}
