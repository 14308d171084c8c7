// Package prof wraps runtime profiling for CLI runs: CPU profiles,
// heap snapshots and execution traces behind one start/stop pair.
package prof

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Session owns the files an active profiling run writes to. The zero
// value is inert; Stop on it is a no-op.
type Session struct {
	cpuFile   *os.File
	traceFile *os.File
}

// Start opens the requested profiles. Empty paths skip that profile.
// On error any partially started profile is stopped again.
func Start(cpuPath, tracePath string) (*Session, error) {
	s := &Session{}

	if cpuPath != "" {
		f, err := os.Create(cpuPath)
		if err != nil {
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
		s.cpuFile = f
	}

	if tracePath != "" {
		f, err := os.Create(tracePath)
		if err != nil {
			s.Stop()
			return nil, fmt.Errorf("trace: %w", err)
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			s.Stop()
			return nil, fmt.Errorf("trace: %w", err)
		}
		s.traceFile = f
	}

	return s, nil
}

// Stop flushes and closes whatever Start opened.
func (s *Session) Stop() {
	if s == nil {
		return
	}
	if s.cpuFile != nil {
		pprof.StopCPUProfile()
		_ = s.cpuFile.Close()
		s.cpuFile = nil
	}
	if s.traceFile != nil {
		trace.Stop()
		_ = s.traceFile.Close()
		s.traceFile = nil
	}
}

// WriteMem captures a heap profile after a forced collection.
func WriteMem(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("heap profile: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()
	runtime.GC()
	return pprof.WriteHeapProfile(f)
}
