package infrastructure

import (
	"context"
	"runtime"
	"time"
)

// RuntimeStats is a snapshot of the Go runtime taken at the end of a run
type RuntimeStats struct {
	GoRoutines    int
	HeapAlloc     uint64
	TotalAlloc    uint64
	GCCount       uint32
	LastGCPause   time.Duration
	ProcessUptime time.Duration
	Timestamp     time.Time
}

// CollectRuntimeStats reads the runtime memory statistics and records them
// on the runtime gauges when metrics is non-nil
func CollectRuntimeStats(ctx context.Context, metrics *BusinessMetrics, startTime time.Time) *RuntimeStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	stats := &RuntimeStats{
		GoRoutines:    runtime.NumGoroutine(),
		HeapAlloc:     memStats.HeapAlloc,
		TotalAlloc:    memStats.TotalAlloc,
		GCCount:       memStats.NumGC,
		LastGCPause:   time.Duration(memStats.PauseNs[(memStats.NumGC+255)%256]),
		ProcessUptime: time.Since(startTime),
		Timestamp:     time.Now(),
	}

	if metrics != nil {
		metrics.HeapAlloc.Record(ctx, int64(stats.HeapAlloc))
		metrics.TotalAlloc.Record(ctx, int64(stats.TotalAlloc))
		metrics.GCCount.Record(ctx, int64(stats.GCCount))
		metrics.ProcessUptime.Record(ctx, stats.ProcessUptime.Seconds())
	}

	return stats
}

// FormatStats returns a log-friendly representation of the snapshot
func (stats *RuntimeStats) FormatStats() map[string]interface{} {
	return map[string]interface{}{
		"goroutines":       stats.GoRoutines,
		"heap_alloc_mb":    stats.HeapAlloc / 1024 / 1024,
		"total_alloc_mb":   stats.TotalAlloc / 1024 / 1024,
		"gc_count":         stats.GCCount,
		"last_gc_pause_ms": stats.LastGCPause.Milliseconds(),
		"uptime_seconds":   stats.ProcessUptime.Seconds(),
		"timestamp":        stats.Timestamp.Format(time.RFC3339),
	}
}
