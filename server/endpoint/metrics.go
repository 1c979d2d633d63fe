package endpoint

import (
	"net/http"
	"runtime"

	"github.com/gin-gonic/gin"
)

// RuntimeStats is the body of the /metrics endpoint.
type RuntimeStats struct {
	Goroutines  int    `json:"goroutines"`
	CPUs        int    `json:"cpus"`
	HeapAllocMB uint64 `json:"heap_alloc_mb"`
	HeapObjects uint64 `json:"heap_objects"`
	SysMB       uint64 `json:"sys_mb"`
	GCRuns      uint32 `json:"gc_runs"`
	Uptime      string `json:"uptime"`
}

// ReadRuntimeStats samples the Go runtime.
func ReadRuntimeStats() RuntimeStats {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return RuntimeStats{
		Goroutines:  runtime.NumGoroutine(),
		CPUs:        runtime.NumCPU(),
		HeapAllocMB: m.HeapAlloc >> 20,
		HeapObjects: m.HeapObjects,
		SysMB:       m.Sys >> 20,
		GCRuns:      m.NumGC,
		Uptime:      uptime(),
	}
}

// Metrics returns a handler that reports runtime statistics.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, ReadRuntimeStats())
	}
}
