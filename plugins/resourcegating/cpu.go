package resourcegating

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/prometheus/procfs"
)

// ErrNoCPUAccounting is returned when the stat file has no aggregate cpu line.
var ErrNoCPUAccounting = errors.New("no aggregate cpu accounting")

// Sampler reports host CPU utilization as a fraction in [0, 1].
type Sampler interface {
	Utilization() (float64, error)
}

// ProcStatSampler computes utilization from the aggregate cpu counters of
// /proc/stat, as the busy share of CPU time elapsed since the previous sample.
type ProcStatSampler struct {
	fs procfs.FS

	mu        sync.Mutex
	prevIdle  float64
	prevTotal float64
	last      float64
}

// NewProcStatSampler creates a sampler over the proc filesystem mounted at
// mount, or procfs.DefaultMountPoint when mount is empty.
func NewProcStatSampler(mount string) (*ProcStatSampler, error) {
	if mount == "" {
		mount = procfs.DefaultMountPoint
	}
	fs, err := procfs.NewFS(mount)
	if err != nil {
		return nil, fmt.Errorf("open procfs %s: %w", mount, err)
	}
	return &ProcStatSampler{fs: fs}, nil
}

// Utilization implements Sampler. The first call reports utilization since
// boot.
func (s *ProcStatSampler) Utilization() (float64, error) {
	stat, err := s.fs.Stat()
	if err != nil {
		return 0, fmt.Errorf("read cpu stat: %w", err)
	}
	idle, total := cpuTimes(stat.CPUTotal)
	if total == 0 {
		return 0, ErrNoCPUAccounting
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if total <= s.prevTotal || idle < s.prevIdle {
		// No ticks elapsed, or the counters were reset.
		s.prevIdle, s.prevTotal = idle, total
		return s.last, nil
	}
	dIdle, dTotal := idle-s.prevIdle, total-s.prevTotal
	s.prevIdle, s.prevTotal = idle, total
	s.last = min(max(1-dIdle/dTotal, 0), 1)
	return s.last, nil
}

// cpuTimes returns idle (idle + iowait) and total CPU seconds. Guest time is
// already counted in user and nice.
func cpuTimes(c procfs.CPUStat) (idle, total float64) {
	idle = c.Idle + c.Iowait
	total = c.User + c.Nice + c.System + idle + c.IRQ + c.SoftIRQ + c.Steal
	return idle, total
}

// GoroutineSampler estimates load from the goroutine count when no kernel
// accounting is available: ten runnable goroutines per CPU count as fully
// busy.
type GoroutineSampler struct{}

// Utilization implements Sampler.
func (GoroutineSampler) Utilization() (float64, error) {
	u := float64(runtime.NumGoroutine()) / float64(runtime.NumCPU()*10)
	return min(u, 1), nil
}
