package proc

import (
	"fmt"
	"sort"

	units "github.com/docker/go-units"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// DefaultTopN is the number of processes shown when no limit is configured.
const DefaultTopN = 10

// ProcessSample is a point-in-time memory reading for a single process. A
// sample is rebuilt from scratch on every listing and never mutated.
type ProcessSample struct {
	PID           int32
	Name          string
	ResidentBytes uint64
	MemoryPercent float32
}

// ResidentMB returns the resident set in mebibytes.
func (s ProcessSample) ResidentMB() float64 {
	return float64(s.ResidentBytes) / units.MiB
}

// Sampler reads process and memory information from the host.
type Sampler struct{}

// NewSampler constructs a host-backed sampler.
func NewSampler() *Sampler {
	return &Sampler{}
}

// TopByResident returns the n processes with the largest resident sets,
// sorted descending. Processes whose name or memory info cannot be read are
// skipped rather than reported.
func (s *Sampler) TopByResident(n int) ([]ProcessSample, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	samples := make([]ProcessSample, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		if name == "" {
			name = "(unknown)"
		}
		info, err := p.MemoryInfo()
		if err != nil || info == nil {
			continue
		}
		pct, err := p.MemoryPercent()
		if err != nil {
			pct = 0
		}
		samples = append(samples, ProcessSample{
			PID:           p.Pid,
			Name:          name,
			ResidentBytes: info.RSS,
			MemoryPercent: pct,
		})
	}

	return rankSamples(samples, n), nil
}

// rankSamples orders samples descending by resident bytes and truncates the
// result to n entries.
func rankSamples(samples []ProcessSample, n int) []ProcessSample {
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].ResidentBytes > samples[j].ResidentBytes
	})
	if n > 0 && len(samples) > n {
		samples = samples[:n]
	}
	return samples
}

// TotalResidentMB sums resident memory across every process the caller can
// inspect, in mebibytes.
func (s *Sampler) TotalResidentMB() (uint64, error) {
	procs, err := process.Processes()
	if err != nil {
		return 0, fmt.Errorf("list processes: %w", err)
	}

	var total uint64
	for _, p := range procs {
		info, err := p.MemoryInfo()
		if err != nil || info == nil {
			continue
		}
		total += info.RSS
	}
	return total / units.MiB, nil
}

// AvailableMB reports the memory the operating system considers available,
// in mebibytes.
func (s *Sampler) AvailableMB() (uint64, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0, fmt.Errorf("read virtual memory: %w", err)
	}
	return vm.Available / units.MiB, nil
}

// Describe renders a short identifier for a pid, suitable for log lines and
// termination records. Processes that cannot be inspected come back as
// "(unknown)" rather than an error.
func (s *Sampler) Describe(pid int32) string {
	p, err := process.NewProcess(pid)
	if err != nil {
		return fmt.Sprintf("PID %d: (unknown)", pid)
	}
	name, err := p.Name()
	if err != nil || name == "" {
		return fmt.Sprintf("PID %d: (unknown)", pid)
	}
	var rssMB uint64
	if info, err := p.MemoryInfo(); err == nil && info != nil {
		rssMB = info.RSS / units.MiB
	}
	return fmt.Sprintf("PID %d: %s (%d MB)", pid, name, rssMB)
}
