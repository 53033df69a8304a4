package core

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/gi/internal/contract"
	"github.com/huangsam/gi/schema"
)

// catalogDelimiters separates names in the catalog body. Line breaks of any
// style separate lines and commas separate names on one line.
var catalogDelimiters = strings.NewReplacer("\r\n", ",", "\n", ",", "\r", ",")

// SplitCatalog splits a raw catalog body into template names.
// Order of appearance and duplicates are kept; empty segments are dropped.
func SplitCatalog(body string) []string {
	parts := strings.Split(catalogDelimiters.Replace(body), ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}

// checkCatalog rejects an empty catalog.
func checkCatalog(names []string) error {
	if len(names) == 0 {
		return errors.New("catalog has no template names")
	}
	return nil
}

// GetTemplateNames returns the catalog of template names. The cached catalog
// is reused while it is younger than window; a zero window always refetches.
func (r *Resolver) GetTemplateNames(ctx context.Context, window time.Duration) ([]string, error) {
	names, err := resolve(ctx, r, schema.ListKey, window, checkCatalog, r.fetchCatalog)
	if err != nil {
		return nil, err
	}
	// Callers sharing one fetch must not share one slice
	return slices.Clone(names), nil
}

// fetchCatalog downloads and splits the catalog.
func (r *Resolver) fetchCatalog(ctx context.Context) ([]string, error) {
	body, err := r.fetcher.Fetch(ctx, schema.ListKey)
	if err != nil {
		return nil, err
	}
	names := SplitCatalog(string(body))
	if err := checkCatalog(names); err != nil {
		return nil, fmt.Errorf("%w: %w: %w", contract.ErrFetchFailed, contract.ErrMalformedResponse, err)
	}
	return names, nil
}
