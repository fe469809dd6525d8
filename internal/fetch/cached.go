package fetch

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// DefaultCacheTTL is how long a fetched page stays fresh.
const DefaultCacheTTL = 15 * time.Minute

// CachedFetcher wraps URL fetching with an in-memory cache keyed by URL.
// Only successful fetches are cached. It is safe for concurrent use.
type CachedFetcher struct {
	options *Options
	ttl     time.Duration
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	result    *Result
	fetchedAt time.Time
}

// CachedResult extends Result with cache metadata.
type CachedResult struct {
	*Result
	FromCache bool
}

// NewCachedFetcher creates a cached fetcher. A nil opts uses DefaultOptions
// and a zero ttl uses DefaultCacheTTL.
func NewCachedFetcher(opts *Options, ttl time.Duration) *CachedFetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedFetcher{
		options: opts,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Fetch returns a fresh cached result when one exists, otherwise fetches
// urlStr and caches the result.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	f.mu.Lock()
	entry, ok := f.entries[urlStr]
	if ok && f.now().Sub(entry.fetchedAt) < f.ttl {
		f.mu.Unlock()
		log.WithField("url", urlStr).Debug("page cache hit")
		return &CachedResult{Result: entry.result, FromCache: true}, nil
	}
	f.mu.Unlock()

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.entries[urlStr] = cacheEntry{result: result, fetchedAt: f.now()}
	f.mu.Unlock()

	return &CachedResult{Result: result}, nil
}

// Purge drops expired entries and returns how many were removed.
func (f *CachedFetcher) Purge() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	removed := 0
	for url, entry := range f.entries {
		if f.now().Sub(entry.fetchedAt) >= f.ttl {
			delete(f.entries, url)
			removed++
		}
	}
	return removed
}

// Len returns the number of cached entries, fresh or not.
func (f *CachedFetcher) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}
