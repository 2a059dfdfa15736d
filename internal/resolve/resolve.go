// Package resolve queries external music-metadata services for shared URLs.
package resolve

import (
	"context"
	"sync"
)

// Metadata is what a lookup service knows about one music URL.
type Metadata struct {
	Title        string
	Artists      []string
	PageURL      string
	ThumbnailURL string
	// Platforms maps a service platform key (e.g. "spotify") to a deep link.
	Platforms map[string]string
}

// Result is the outcome of resolving one candidate URL. Exactly one of the
// three states holds: Meta != nil (found), Meta == nil && Err == nil (the
// service had no match), or Err != nil (the lookup itself failed).
type Result struct {
	URL  string
	Meta *Metadata
	Err  error
}

// Found reports whether the service returned usable metadata.
func (r Result) Found() bool { return r.Err == nil && r.Meta != nil }

// NotFound reports a clean "no match" answer from the service.
func (r Result) NotFound() bool { return r.Err == nil && r.Meta == nil }

// Service is a single external lookup endpoint. Lookup returns (nil, nil)
// when the service answers cleanly that it has no match for the URL.
type Service interface {
	Name() string
	Lookup(ctx context.Context, rawURL string) (*Metadata, error)
}

// All resolves every URL concurrently against svc and returns one Result per
// input URL in the same order. It waits for the whole batch; a failed or
// unmatched lookup never short-circuits its siblings.
func All(ctx context.Context, svc Service, urls []string) []Result {
	results := make([]Result, len(urls))
	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			meta, err := svc.Lookup(ctx, u)
			results[i] = Result{URL: u, Meta: meta, Err: err}
		}(i, u)
	}
	wg.Wait()
	return results
}

// Found filters a batch down to its usable metadata, preserving order.
func Found(results []Result) []*Metadata {
	var metas []*Metadata
	for _, r := range results {
		if r.Found() {
			metas = append(metas, r.Meta)
		}
	}
	return metas
}
