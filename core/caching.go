package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/gi/internal/contract"
	"go.uber.org/zap"
)

// LookupKind tells the outcomes of a cache read apart.
type LookupKind int

// Outcomes of a cache read.
const (
	LookupMiss    LookupKind = iota // absent or expired
	LookupHit                       // present and fresh
	LookupCorrupt                   // unreadable or malformed
)

// String returns the lowercase name of the outcome.
func (k LookupKind) String() string {
	switch k {
	case LookupHit:
		return "hit"
	case LookupCorrupt:
		return "corrupt"
	default:
		return "miss"
	}
}

// CacheLookup is the result of reading one cache record.
// Data is set only for hits; Reason only for corrupt records.
type CacheLookup[T any] struct {
	Kind   LookupKind
	Data   T
	Reason error
}

// PersistKind tells the outcomes of a cache write apart.
type PersistKind int

// Outcomes of a cache write.
const (
	PersistOk PersistKind = iota
	PersistFailed
)

// Persist is the result of writing one cache record.
type Persist struct {
	Kind   PersistKind
	Reason error
}

// isFresh reports whether a record written at ts (epoch ms) is inside window at now.
// A zero or negative window is never fresh.
func isFresh(ts int64, window time.Duration, now time.Time) bool {
	if window <= 0 {
		return false
	}
	return now.Sub(time.UnixMilli(ts)) < window
}

// detachCancel returns a context that is not cancelled when parent is cancelled,
// but still respects parent's deadline so a shared fetch does not hang.
func detachCancel(parent context.Context) (context.Context, context.CancelFunc) {
	ctx := context.WithoutCancel(parent)
	if dl, ok := parent.Deadline(); ok {
		return context.WithDeadline(ctx, dl)
	}
	return context.WithCancel(ctx)
}

// lookup reads and decodes the record for key. check rejects decoded data
// that has the right type but the wrong shape.
func lookup[T any](r *Resolver, key string, window time.Duration, check func(T) error) CacheLookup[T] {
	if r.store == nil {
		return CacheLookup[T]{Kind: LookupMiss}
	}

	raw, ts, err := r.store.Get(key)
	if err != nil {
		if errors.Is(err, contract.ErrCacheMiss) {
			return CacheLookup[T]{Kind: LookupMiss}
		}
		return CacheLookup[T]{Kind: LookupCorrupt, Reason: err}
	}

	var data T
	if err := json.Unmarshal(raw, &data); err != nil {
		return CacheLookup[T]{Kind: LookupCorrupt, Reason: err}
	}
	if err := check(data); err != nil {
		return CacheLookup[T]{Kind: LookupCorrupt, Reason: err}
	}
	if !isFresh(ts, window, r.now()) {
		return CacheLookup[T]{Kind: LookupMiss}
	}
	return CacheLookup[T]{Kind: LookupHit, Data: data}
}

// persist stamps data with the current time and writes it for key.
func persist[T any](r *Resolver, key string, data T) Persist {
	if r.store == nil {
		return Persist{Kind: PersistOk}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return Persist{Kind: PersistFailed, Reason: err}
	}
	if err := r.store.Set(key, raw, r.now().UnixMilli()); err != nil {
		return Persist{Kind: PersistFailed, Reason: err}
	}
	return Persist{Kind: PersistOk}
}

// resolve returns fresh data for key, from the cache when the record is
// inside window and from fetch otherwise. Concurrent calls for the same key
// share one fetch. A fetch failure is returned as-is with no fallback to
// stale data; a write failure is reported but does not fail the call.
func resolve[T any](ctx context.Context, r *Resolver, key string, window time.Duration, check func(T) error, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	log := r.logger.With(zap.String("key", key))

	res := lookup(r, key, window, check)
	switch res.Kind {
	case LookupHit:
		log.Debug("cache hit")
		return res.Data, nil
	case LookupCorrupt:
		log.Warn("cache record unreadable", zap.Error(res.Reason))
		r.notifier.Notify(fmt.Sprintf("Failed to read cache for %s", key))
	default:
		log.Debug("cache miss", zap.Duration("window", window))
	}

	if err := ctx.Err(); err != nil {
		return zero, err
	}

	ch := r.sf.DoChan(key, func() (any, error) {
		// Another flight may have refreshed the record while this one waited
		if again := lookup(r, key, window, check); again.Kind == LookupHit {
			return again.Data, nil
		}

		fetchCtx, cancel := detachCancel(ctx)
		defer cancel()

		start := r.now()
		data, err := fetch(fetchCtx)
		if err != nil {
			log.Error("fetch failed", zap.Error(err))
			r.notifier.Notify(fmt.Sprintf("Failed to fetch data from %s", r.fetcher.Locate(key)))
			if !errors.Is(err, contract.ErrFetchFailed) {
				err = fmt.Errorf("%w: %w", contract.ErrFetchFailed, err)
			}
			return nil, err
		}
		log.Debug("fetched", zap.Duration("elapsed", r.now().Sub(start)))

		if p := persist(r, key, data); p.Kind == PersistFailed {
			log.Warn("cache write failed", zap.Error(p.Reason))
			r.notifier.Notify(fmt.Sprintf("Failed to write cache for %s", key))
		}
		return data, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case out := <-ch:
		if out.Err != nil {
			return zero, out.Err
		}
		data, ok := out.Val.(T)
		if !ok {
			return zero, fmt.Errorf("core: unexpected result type %T for %q", out.Val, key)
		}
		return data, nil
	}
}
