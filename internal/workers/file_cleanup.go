// Package workers runs background consumers fed through Redis streams.
package workers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/jobportal/internal/storage"
)

const (
	DefaultCleanupStream = "files:cleanup"
	DefaultCleanupGroup  = "file-cleanup-workers"
)

// DeferredDeleteStore wraps an ObjectStore so Delete only enqueues the key;
// a FileCleanupPool performs the actual removal.
type DeferredDeleteStore struct {
	storage.ObjectStore
	rdb    *redis.Client
	stream string
}

func NewDeferredDeleteStore(inner storage.ObjectStore, rdb *redis.Client, stream string) *DeferredDeleteStore {
	if stream == "" {
		stream = DefaultCleanupStream
	}
	return &DeferredDeleteStore{ObjectStore: inner, rdb: rdb, stream: stream}
}

func (s *DeferredDeleteStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	return s.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		Values: map[string]any{
			"key":         key,
			"enqueued_at": strconv.FormatInt(time.Now().Unix(), 10),
		},
	}).Err()
}

type FileCleanupPool struct {
	Redis      *redis.Client
	Store      storage.ObjectStore
	NumWorkers int

	Logger *logrus.Logger

	Stream         string
	Group          string
	ConsumerPrefix string
}

func (p *FileCleanupPool) Start(ctx context.Context) error {
	if p.Redis == nil || p.Store == nil {
		return errors.New("FileCleanupPool missing dependency: Redis/Store must be set")
	}
	if p.Stream == "" {
		p.Stream = DefaultCleanupStream
	}
	if p.Group == "" {
		p.Group = DefaultCleanupGroup
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "c"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 2
	}
	if p.Logger == nil {
		p.Logger = logrus.New()
	}

	_ = p.Redis.XGroupCreateMkStream(ctx, p.Stream, p.Group, "0").Err() // ignore BUSYGROUP

	for i := 0; i < p.NumWorkers; i++ {
		consumer := p.ConsumerPrefix + "-" + strconv.Itoa(i+1)
		go p.runConsumer(ctx, consumer)
	}
	return nil
}

func (p *FileCleanupPool) runConsumer(ctx context.Context, consumer string) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.Redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    p.Group,
			Consumer: consumer,
			Streams:  []string{p.Stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()

		if err != nil {
			if err == redis.Nil {
				continue
			}
			if ctx.Err() != nil {
				return
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				p.handleMsg(ctx, msg)
				_ = p.Redis.XAck(ctx, p.Stream, p.Group, msg.ID).Err()
			}
		}
	}
}

// handleMsg deletes one object. A failed delete is logged and dropped so a
// missing object cannot wedge the stream.
func (p *FileCleanupPool) handleMsg(ctx context.Context, msg redis.XMessage) {
	key, _ := msg.Values["key"].(string)
	if key == "" {
		return
	}

	log := p.Logger.WithFields(logrus.Fields{
		"redis_id": msg.ID,
		"key":      key,
	})

	if err := p.Store.Delete(ctx, key); err != nil {
		log.WithError(err).Warn("object cleanup failed")
		return
	}
	log.Debug("object removed")
}
