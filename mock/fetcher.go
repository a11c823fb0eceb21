package mock

import (
	"context"

	"github.com/fwojciec/recordscout"
)

var (
	_ recordscout.Fetcher  = (*Fetcher)(nil)
	_ recordscout.Searcher = (*Searcher)(nil)
)

// Fetcher is a mock implementation of recordscout.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// Searcher is a mock implementation of recordscout.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string) (string, error)
}

func (s *Searcher) Search(ctx context.Context, query string) (string, error) {
	return s.SearchFn(ctx, query)
}

var _ recordscout.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of recordscout.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
