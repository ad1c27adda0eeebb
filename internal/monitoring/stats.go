package monitoring

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"

	"wardrobe-backend/internal/cache"
)

// Stats is a point-in-time snapshot of host and database health for the
// ops stats endpoint.
type Stats struct {
	DatabaseStatus string  `json:"database_status"`
	CacheStatus    string  `json:"cache_status"`
	ResponseTimeMS int64   `json:"response_time_ms"`
	CPUPercent     float64 `json:"cpu_percent"`
	MemoryPercent  float64 `json:"memory_percent"`
	DiskPercent    float64 `json:"disk_percent"`
	Uptime         string  `json:"uptime"`
}

type Collector struct {
	db      *pgxpool.Pool
	started time.Time
}

func NewCollector(db *pgxpool.Pool) *Collector {
	return &Collector{db: db, started: time.Now()}
}

func (c *Collector) Collect(ctx context.Context) Stats {
	stats := Stats{
		DatabaseStatus: "healthy",
		Uptime:         time.Since(c.started).Round(time.Second).String(),
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	if err := c.db.Ping(pingCtx); err != nil {
		stats.DatabaseStatus = "unhealthy"
	}
	stats.ResponseTimeMS = time.Since(start).Milliseconds()

	if rdb := cache.GetClient(); rdb == nil {
		stats.CacheStatus = "disabled"
	} else if err := rdb.Ping(pingCtx).Err(); err != nil {
		stats.CacheStatus = "unhealthy"
	} else {
		stats.CacheStatus = "healthy"
	}

	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryPercent = vm.UsedPercent
	}
	if du, err := disk.Usage("/"); err == nil {
		stats.DiskPercent = du.UsedPercent
	}

	return stats
}
