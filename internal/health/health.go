package health

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"studio-backend/internal/cache"
)

type Checker struct {
	db *pgxpool.Pool
}

type Status struct {
	Status   string         `json:"status"`
	Database DatabaseStatus `json:"database"`
	Cache    string         `json:"cache"`
}

type DatabaseStatus struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

func NewChecker(db *pgxpool.Pool) *Checker {
	return &Checker{db: db}
}

// Check reports overall server health. The cache is optional, so a
// missing Redis connection never marks the server unhealthy.
func (c *Checker) Check() Status {
	dbStatus := c.checkDatabase()

	status := "healthy"
	if dbStatus.Status != "healthy" {
		status = "unhealthy"
	}

	cacheStatus := "disabled"
	if cache.Enabled() {
		cacheStatus = "connected"
	}

	return Status{
		Status:   status,
		Database: dbStatus,
		Cache:    cacheStatus,
	}
}

func (c *Checker) checkDatabase() DatabaseStatus {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := c.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	if err != nil {
		return DatabaseStatus{Status: "unhealthy", ResponseTime: responseTime}
	}
	return DatabaseStatus{Status: "healthy", ResponseTime: responseTime}
}
