package tui

import (
	"testing"

	"github.com/example/ramtop/internal/proc"
)

func TestSelectedPIDsPreservesDisplayOrder(t *testing.T) {
	samples := []proc.ProcessSample{
		{PID: 900, Name: "browser"},
		{PID: 55, Name: "compiler"},
		{PID: 30, Name: "editor"},
		{PID: 77, Name: "player"},
	}
	checked := map[int32]bool{
		77:  true,
		900: true,
		30:  false,
	}

	pids := selectedPIDs(samples, checked)

	want := []int32{900, 77}
	if len(pids) != len(want) {
		t.Fatalf("selectedPIDs = %v, want %v", pids, want)
	}
	for i := range want {
		if pids[i] != want[i] {
			t.Fatalf("selectedPIDs = %v, want %v", pids, want)
		}
	}
}

func TestSelectedPIDsIgnoresStaleChecks(t *testing.T) {
	samples := []proc.ProcessSample{{PID: 10, Name: "sh"}}
	checked := map[int32]bool{10: true, 999: true}

	pids := selectedPIDs(samples, checked)
	if len(pids) != 1 || pids[0] != 10 {
		t.Fatalf("selectedPIDs = %v, want [10]", pids)
	}
}

func TestSelectedPIDsEmpty(t *testing.T) {
	if pids := selectedPIDs(nil, nil); len(pids) != 0 {
		t.Fatalf("selectedPIDs = %v, want empty", pids)
	}
}

func TestCheckboxLabel(t *testing.T) {
	if got := checkboxLabel(true); got != checkboxChecked {
		t.Fatalf("checkboxLabel(true) = %q, want %q", got, checkboxChecked)
	}
	if got := checkboxLabel(false); got != checkboxEmpty {
		t.Fatalf("checkboxLabel(false) = %q, want %q", got, checkboxEmpty)
	}
}

func TestFormatRAM(t *testing.T) {
	tests := []struct {
		bytes uint64
		want  string
	}{
		{bytes: 512 << 20, want: "512.0"},
		{bytes: 1536 << 10, want: "1.5"},
		{bytes: 0, want: "0.0"},
	}

	for _, tt := range tests {
		if got := formatRAM(tt.bytes); got != tt.want {
			t.Fatalf("formatRAM(%d) = %q, want %q", tt.bytes, got, tt.want)
		}
	}
}
