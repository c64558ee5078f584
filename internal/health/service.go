package health

import (
	"context"
	"runtime"
	"time"

	"github.com/redis/go-redis/v9"
)

// DBPinger is optional for the health check. If nil, the database is
// reported as disconnected.
type DBPinger interface {
	Ping() error
}

var startTime = time.Now()

// DepStatus is the connectivity report for one dependency.
type DepStatus struct {
	Status string      `json:"status"`
	PingMs interface{} `json:"ping_ms"`
}

// Result is the /health/json payload.
type Result struct {
	Status        string               `json:"status"`
	UptimeSeconds int64                `json:"uptime_seconds"`
	GoVersion     string               `json:"go_version"`
	Dependencies  map[string]DepStatus `json:"dependencies"`
}

// Collect pings the database and Redis and reports overall status. Status is
// "ok" only when both dependencies answer.
func Collect(ctx context.Context, rdb *redis.Client, db DBPinger) Result {
	result := Result{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(startTime).Seconds()),
		GoVersion:     runtime.Version(),
		Dependencies:  make(map[string]DepStatus),
	}

	dbStatus := "disconnected"
	var dbPingMs *int64
	if db != nil {
		start := time.Now()
		if err := db.Ping(); err == nil {
			ms := time.Since(start).Milliseconds()
			dbPingMs = &ms
			dbStatus = "connected"
		} else {
			dbStatus = "error"
		}
	}
	result.Dependencies["database"] = DepStatus{Status: dbStatus, PingMs: dbPingMs}

	redisStatus := "disconnected"
	var redisPingMs *int64
	if rdb != nil {
		start := time.Now()
		if err := rdb.Ping(ctx).Err(); err == nil {
			ms := time.Since(start).Milliseconds()
			redisPingMs = &ms
			redisStatus = "connected"
		} else {
			redisStatus = "error"
		}
	}
	result.Dependencies["redis"] = DepStatus{Status: redisStatus, PingMs: redisPingMs}

	if dbStatus != "connected" || redisStatus != "connected" {
		result.Status = "degraded"
	}
	return result
}
