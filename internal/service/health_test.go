package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakePinger struct {
	calls int
	err   error
}

func (f *fakePinger) Ping(context.Context) error {
	f.calls++
	return f.err
}

func TestHealthCheck_CachesResult(t *testing.T) {
	db := &fakePinger{}
	svc := NewHealthService(db, time.Minute)

	first := svc.Check(context.Background())
	second := svc.Check(context.Background())

	assert.True(t, first.Healthy())
	assert.Equal(t, "up", first.Database)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, db.calls, "the second probe must come from the cache")
}

func TestHealthCheck_Degraded(t *testing.T) {
	db := &fakePinger{err: errors.New("closed")}
	svc := NewHealthService(db, 0)

	h := svc.Check(context.Background())
	assert.False(t, h.Healthy())
	assert.Equal(t, StatusDegraded, h.Status)
	assert.Equal(t, "down", h.Database)

	svc.Check(context.Background())
	assert.Equal(t, 2, db.calls, "a zero TTL disables caching")
}
