// Package loader resolves trained steps by ID through three layers: decoded
// steps held in process, documents shared through Redis, and the database.
package loader

import (
	"context"
	"sync"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/Ramsey-B/fern/pkg/metrics"
	"github.com/Ramsey-B/fern/pkg/steps"
	"github.com/Ramsey-B/fern/pkg/tracing"
)

// Repository is the durable step store.
type Repository interface {
	Upsert(ctx context.Context, doc steps.Document) error
	Get(ctx context.Context, id string) (steps.Document, error)
	Delete(ctx context.Context, id string) error
}

// SharedCache holds documents for every service instance.
type SharedCache interface {
	Get(ctx context.Context, stepID string) (steps.Document, bool, error)
	Set(ctx context.Context, doc steps.Document) error
	Delete(ctx context.Context, stepID string) error
}

type Config struct {
	MaxSize int
	TTL     time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxSize: 1000,
		TTL:     5 * time.Minute,
	}
}

type Loader struct {
	repo   Repository
	shared SharedCache
	logger ectologger.Logger

	mu      sync.RWMutex
	local   map[string]*entry
	maxSize int
	ttl     time.Duration
	hits    int64
	misses  int64
}

type entry struct {
	step      steps.Step
	expiresAt time.Time
}

// NewLoader builds a loader. shared may be nil.
func NewLoader(repo Repository, shared SharedCache, cfg Config, logger ectologger.Logger) *Loader {
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = DefaultConfig().MaxSize
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultConfig().TTL
	}

	return &Loader{
		repo:    repo,
		shared:  shared,
		logger:  logger,
		local:   make(map[string]*entry),
		maxSize: cfg.MaxSize,
		ttl:     cfg.TTL,
	}
}

// Get returns the step stored under id.
func (l *Loader) Get(ctx context.Context, id string) (steps.Step, error) {
	ctx, span := tracing.StartSpan(ctx, "Loader.Get")
	defer span.End()

	l.mu.RLock()
	e, ok := l.local[id]
	l.mu.RUnlock()

	if ok && time.Now().Before(e.expiresAt) {
		l.mu.Lock()
		l.hits++
		l.mu.Unlock()
		metrics.ObserveCacheLookup("local", true)
		return e.step, nil
	}

	l.mu.Lock()
	l.misses++
	l.mu.Unlock()
	metrics.ObserveCacheLookup("local", false)

	doc, err := l.loadDocument(ctx, id)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	step, err := steps.FromDocument(doc)
	if err != nil {
		tracing.RecordError(span, err)
		return nil, err
	}

	l.remember(step)
	return step, nil
}

func (l *Loader) loadDocument(ctx context.Context, id string) (steps.Document, error) {
	if l.shared != nil {
		doc, found, err := l.shared.Get(ctx, id)
		if err != nil {
			// the database still has the step
			l.logger.WithContext(ctx).WithError(err).WithField("step_id", id).Warn("shared step cache unavailable")
		}
		metrics.ObserveCacheLookup("redis", found)
		if found {
			return doc, nil
		}
	}

	doc, err := l.repo.Get(ctx, id)
	if err != nil {
		return steps.Document{}, err
	}

	if l.shared != nil {
		if err := l.shared.Set(ctx, doc); err != nil {
			l.logger.WithContext(ctx).WithError(err).WithField("step_id", id).Warn("failed to share step")
		}
	}

	return doc, nil
}

// Save stores step and returns the stored document.
func (l *Loader) Save(ctx context.Context, step steps.Step) (steps.Document, error) {
	ctx, span := tracing.StartSpan(ctx, "Loader.Save", tracing.StepAttributes(step.GetID(), string(step.GetKind()))...)
	defer span.End()

	doc := steps.ToDocument(step)
	if err := l.repo.Upsert(ctx, doc); err != nil {
		tracing.RecordError(span, err)
		return steps.Document{}, err
	}

	if l.shared != nil {
		if err := l.shared.Set(ctx, doc); err != nil {
			l.logger.WithContext(ctx).WithError(err).WithField("step_id", doc.ID).Warn("failed to share step")
		}
	}

	l.remember(step)
	return doc, nil
}

// Delete removes id from every layer.
func (l *Loader) Delete(ctx context.Context, id string) error {
	ctx, span := tracing.StartSpan(ctx, "Loader.Delete")
	defer span.End()

	l.Invalidate(id)

	if l.shared != nil {
		if err := l.shared.Delete(ctx, id); err != nil {
			l.logger.WithContext(ctx).WithError(err).WithField("step_id", id).Warn("failed to delete shared step")
		}
	}

	return l.repo.Delete(ctx, id)
}

func (l *Loader) remember(step steps.Step) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.local[step.GetID()]; !ok && len(l.local) >= l.maxSize {
		l.evictHalf()
	}

	l.local[step.GetID()] = &entry{
		step:      step,
		expiresAt: time.Now().Add(l.ttl),
	}
}

// evictHalf must be called with the lock held.
func (l *Loader) evictHalf() {
	target := len(l.local) / 2
	if target == 0 {
		target = 1
	}
	count := 0
	for key := range l.local {
		delete(l.local, key)
		count++
		if count >= target {
			break
		}
	}
}

// Invalidate drops id from the in-process layer.
func (l *Loader) Invalidate(id string) {
	l.mu.Lock()
	delete(l.local, id)
	l.mu.Unlock()
}

type Stats struct {
	Size   int   `json:"size"`
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

func (l *Loader) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return Stats{
		Size:   len(l.local),
		Hits:   l.hits,
		Misses: l.misses,
	}
}
