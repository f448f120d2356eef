package main

import (
	"runtime"
	"sync"
	"time"

	"github.com/farxc/fastfood_minwage/internal/logger"
)

type ProfilerStats struct {
	PeakGoroutines int
	PeakMemoryMB   uint64
	Samples        int
}

// MemoryMonitor samples goroutines and heap while the table workers run.
type MemoryMonitor struct {
	mu    sync.Mutex
	stats ProfilerStats
	stop  chan struct{}
	done  chan struct{}
}

func NewMonitor() *MemoryMonitor {
	return &MemoryMonitor{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
}

func (m *MemoryMonitor) Start(interval time.Duration, appLogger *logger.Logger) {
	go func() {
		defer close(m.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				m.update(appLogger)
			case <-m.stop:
				m.update(appLogger)
				return
			}
		}
	}()
}

func (m *MemoryMonitor) update(appLogger *logger.Logger) {
	const component = "Monitor"

	var mStats runtime.MemStats
	runtime.ReadMemStats(&mStats)

	currentGoroutines := runtime.NumGoroutine()
	currentMemoryMB := mStats.Alloc / 1024 / 1024

	m.mu.Lock()
	defer m.mu.Unlock()

	m.stats.Samples++
	if currentGoroutines > m.stats.PeakGoroutines {
		m.stats.PeakGoroutines = currentGoroutines
	}
	if currentMemoryMB > m.stats.PeakMemoryMB {
		m.stats.PeakMemoryMB = currentMemoryMB
	}

	appLogger.Debug(component, "goroutines=%d memoryMB=%d peakGoroutines=%d peakMemoryMB=%d", currentGoroutines, currentMemoryMB, m.stats.PeakGoroutines, m.stats.PeakMemoryMB)
}

// Stop takes a last sample, ends sampling and returns the peaks seen.
func (m *MemoryMonitor) Stop() ProfilerStats {
	close(m.stop)
	<-m.done
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}
