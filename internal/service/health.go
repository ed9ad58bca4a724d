package service

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/sakif/portfolio-cms/internal/repository"
)

// Health status values.
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

// Health is the body of GET /api/health.
type Health struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Uptime    float64   `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
}

// Healthy reports whether every dependency answered.
func (h Health) Healthy() bool {
	return h.Status == StatusOK
}

const healthKey = "health"

// HealthService probes the database and caches the result for a short TTL,
// so a burst of probes costs one ping.
type HealthService struct {
	db      repository.Pinger
	cache   *gocache.Cache
	ttl     time.Duration
	started time.Time
	now     func() time.Time
}

func NewHealthService(db repository.Pinger, ttl time.Duration) *HealthService {
	return &HealthService{
		db:      db,
		cache:   gocache.New(ttl, 2*ttl),
		ttl:     ttl,
		started: time.Now(),
		now:     time.Now,
	}
}

// Check returns the cached report or runs a fresh probe.
func (s *HealthService) Check(ctx context.Context) Health {
	if v, ok := s.cache.Get(healthKey); ok {
		if h, ok := v.(Health); ok {
			return h
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	now := s.now()
	h := Health{
		Status:    StatusOK,
		Database:  "up",
		Uptime:    now.Sub(s.started).Seconds(),
		Timestamp: now.UTC(),
	}
	if err := s.db.Ping(ctx); err != nil {
		h.Status = StatusDegraded
		h.Database = "down"
	}

	if s.ttl > 0 {
		s.cache.Set(healthKey, h, s.ttl)
	}
	return h
}
