// Package notify fans application status changes out to connected
// jobseekers over Redis pub/sub.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const TypeApplicationStatus = "application_status"

type Event struct {
	Type          string    `json:"type"`
	ApplicationID string    `json:"applicationId"`
	JobID         string    `json:"jobId"`
	Status        string    `json:"status"`
	At            time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, jobSeekerID string, ev Event) error
}

func Channel(jobSeekerID string) string {
	return "jobseeker:" + jobSeekerID + ":notifications"
}

type RedisNotifier struct {
	rdb *redis.Client
}

func NewRedisNotifier(rdb *redis.Client) *RedisNotifier {
	return &RedisNotifier{rdb: rdb}
}

func (n *RedisNotifier) Publish(ctx context.Context, jobSeekerID string, ev Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return n.rdb.Publish(ctx, Channel(jobSeekerID), b).Err()
}

// Subscribe opens the notification channel of one jobseeker. Callers must
// Close the returned subscription.
func (n *RedisNotifier) Subscribe(ctx context.Context, jobSeekerID string) *redis.PubSub {
	return n.rdb.Subscribe(ctx, Channel(jobSeekerID))
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, string, Event) error { return nil }
