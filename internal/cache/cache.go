package cache

import (
	"context"
	"time"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

func JobKey(jobID string) string { return "job:" + jobID }
func CompanyKey(employerID string) string { return "company:" + employerID }

// Noop never hits. Used when caching is disabled.
type Noop struct{}

func (Noop) GetJSON(context.Context, string, any) (bool, error) { return false, nil }
func (Noop) SetJSON(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Del(context.Context, ...string) error { return nil }
