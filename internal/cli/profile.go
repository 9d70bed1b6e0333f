package cli

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"sync"
	"time"
)

var (
	// MemorySampleRate How often to dump the memory to a file in HZ. Values of less than 1 are recommended to avoid
	// having to sort through too many dump files
	MemorySampleRate = 0.5

	memProfiler *memoryProfiler
)

type memoryProfiler struct {
	mu                 sync.Mutex
	dumpPath           string
	heapDumps          [][]byte
	shouldProfilerStop chan struct{}
	stopped            chan struct{}
}

func StartCPUProfiler(profileOutput io.Writer) error {
	runtime.SetCPUProfileRate(500)
	if err := pprof.StartCPUProfile(profileOutput); err != nil {
		return fmt.Errorf("starting cpu profiler: %w", err)
	}
	return nil
}

func StopCPUProfiler() {
	pprof.StopCPUProfile()
}

// StartMemoryProfiler keeps heap profiles in memory at MemorySampleRate until StopMemoryProfiler writes them to
// profileDumpPath
func StartMemoryProfiler(profileDumpPath string) {
	if MemorySampleRate <= 0 {
		return
	}

	memProfiler = &memoryProfiler{
		dumpPath:           profileDumpPath,
		shouldProfilerStop: make(chan struct{}),
		stopped:            make(chan struct{}),
	}

	go func(p *memoryProfiler) {
		defer close(p.stopped)
		ticker := time.NewTicker(time.Duration((1/MemorySampleRate)*1000) * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-p.shouldProfilerStop:
				return
			case <-ticker.C:
				p.dump()
			}
		}
	}(memProfiler)
}

func (p *memoryProfiler) dump() {
	w := bytes.NewBuffer(nil)
	if err := pprof.WriteHeapProfile(w); err != nil {
		log.Println("Error taking memory profile")
		return
	}
	p.mu.Lock()
	p.heapDumps = append(p.heapDumps, w.Bytes())
	p.mu.Unlock()
}

func StopMemoryProfiler() {
	if memProfiler == nil {
		return
	}

	p := memProfiler
	memProfiler = nil
	close(p.shouldProfilerStop)
	<-p.stopped
	p.dump()

	if err := os.MkdirAll(p.dumpPath, 0755); err != nil {
		log.Printf("Error creating memory profile directory: %s\n", err)
		return
	}
	for dIdx, dump := range p.heapDumps {
		err := os.WriteFile(filepath.Join(p.dumpPath, fmt.Sprintf("mem-%d.mprof", dIdx)), dump, 0644)
		if err != nil {
			log.Println("Error writing memory profile to disk")
		}
	}
}
