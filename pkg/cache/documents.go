// Package cache shares trained step documents between service instances
// through Redis.
package cache

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/steps"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "fern:step:"

type DocumentCache struct {
	rdb    Commands
	ttl    time.Duration
	logger ectologger.Logger
}

func NewDocumentCache(rdb Commands, ttl time.Duration, logger ectologger.Logger) *DocumentCache {
	return &DocumentCache{
		rdb:    rdb,
		ttl:    ttl,
		logger: logger,
	}
}

func Key(stepID string) string {
	return keyPrefix + stepID
}

// Get returns the cached document and whether it was found. A malformed entry
// is dropped and reported as a miss.
func (c *DocumentCache) Get(ctx context.Context, stepID string) (steps.Document, bool, error) {
	raw, err := c.rdb.Get(ctx, Key(stepID)).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return steps.Document{}, false, nil
	}
	if err != nil {
		return steps.Document{}, false, err
	}

	var doc steps.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		c.logger.WithContext(ctx).WithError(err).WithField("step_id", stepID).Warn("dropping malformed cached step")
		_ = c.Delete(ctx, stepID)
		return steps.Document{}, false, nil
	}

	return doc, true, nil
}

func (c *DocumentCache) Set(ctx context.Context, doc steps.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, Key(doc.ID), raw, c.ttl).Err()
}

func (c *DocumentCache) Delete(ctx context.Context, stepID string) error {
	return c.rdb.Del(ctx, Key(stepID)).Err()
}

func (c *DocumentCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
