package telemetry

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"time"

	"github.com/rs/zerolog"
)

// Profiler captures a CPU profile and an execution trace for the span of a run
type Profiler struct {
	dir      string
	baseName string
	cpuFile  *os.File
	trcFile  *os.File
	logger   zerolog.Logger
}

// StartProfile begins CPU profiling and tracing into dir. Files are named
// after reason and the start time.
func StartProfile(dir, reason string, logger zerolog.Logger) (*Profiler, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profiles directory: %w", err)
	}

	timestamp := time.Now().Format("20060102-150405")
	p := &Profiler{
		dir:      dir,
		baseName: fmt.Sprintf("%s-%s", reason, timestamp),
		logger:   logger,
	}

	cpuFile, err := os.Create(p.path(".cpu.prof"))
	if err != nil {
		return nil, fmt.Errorf("failed to create profile file: %w", err)
	}
	if err := pprof.StartCPUProfile(cpuFile); err != nil {
		cpuFile.Close()
		return nil, fmt.Errorf("failed to start CPU profile: %w", err)
	}
	p.cpuFile = cpuFile

	trcFile, err := os.Create(p.path(".trace"))
	if err != nil {
		p.stopCPU()
		return nil, fmt.Errorf("failed to create trace file: %w", err)
	}
	if err := trace.Start(trcFile); err != nil {
		trcFile.Close()
		p.stopCPU()
		return nil, fmt.Errorf("failed to start trace: %w", err)
	}
	p.trcFile = trcFile

	return p, nil
}

func (p *Profiler) path(ext string) string {
	return filepath.Join(p.dir, p.baseName+ext)
}

func (p *Profiler) stopCPU() error {
	pprof.StopCPUProfile()
	return p.cpuFile.Close()
}

// Stop ends both captures and logs where they were written along with the
// current memory stats
func (p *Profiler) Stop() error {
	trace.Stop()
	trcErr := p.trcFile.Close()
	cpuErr := p.stopCPU()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.logger.Info().
		Str("cpuProfile", p.path(".cpu.prof")).
		Str("trace", p.path(".trace")).
		Uint64("allocKB", m.Alloc/1024).
		Uint64("totalAllocKB", m.TotalAlloc/1024).
		Uint64("sysKB", m.Sys/1024).
		Uint32("numGC", m.NumGC).
		Uint64("heapObjects", m.HeapObjects).
		Msg("profile saved")

	if cpuErr != nil {
		return cpuErr
	}
	return trcErr
}
