// Package core resolves the template catalog and template bodies through a
// time-bounded cache placed in front of the remote catalog.
package core

import (
	"time"

	"github.com/huangsam/gi/internal/contract"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Resolver serves catalog and template lookups, refreshing cache records
// from the remote catalog once they fall out of their validity window.
// It is safe for concurrent use.
type Resolver struct {
	store    contract.CacheStore
	fetcher  contract.Fetcher
	notifier contract.Notifier
	logger   *zap.Logger
	now      func() time.Time
	sf       singleflight.Group
}

var _ contract.TemplateResolver = &Resolver{} // Compile-time check

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger for cache and fetch diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithNotifier sets the sink for user-facing status messages.
func WithNotifier(notifier contract.Notifier) Option {
	return func(r *Resolver) {
		if notifier != nil {
			r.notifier = notifier
		}
	}
}

// WithClock overrides the time source used for freshness and write stamps.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		if now != nil {
			r.now = now
		}
	}
}

// NewResolver creates a Resolver. A nil store disables caching.
// Panics if fetcher is nil.
func NewResolver(store contract.CacheStore, fetcher contract.Fetcher, opts ...Option) *Resolver {
	if fetcher == nil {
		panic("core: Fetcher must not be nil")
	}
	r := &Resolver{
		store:    store,
		fetcher:  fetcher,
		notifier: nopNotifier{},
		logger:   zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type nopNotifier struct{}

func (nopNotifier) Notify(string) {}
