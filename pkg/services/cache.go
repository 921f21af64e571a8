package services

import (
	"context"
	"sync"
)

// feedCall is one memoized retrieval. done is closed once data/err are set.
type feedCall struct {
	done chan struct{}
	data []byte
	err  error
}

// FeedCache memoizes feed retrievals per identifier for the life of the
// process. Concurrent callers for the same identifier share a single
// in-flight fetch. A failed fetch is evicted rather than cached, so the next
// caller retries it.
type FeedCache struct {
	fetcher Fetcher

	cacheMutex sync.Mutex
	calls      map[string]*feedCall
}

func NewFeedCache(fetcher Fetcher) *FeedCache {
	return &FeedCache{
		fetcher: fetcher,
		calls:   map[string]*feedCall{},
	}
}

// Get returns the cached bytes for url, fetching them at most once.
func (c *FeedCache) Get(ctx context.Context, url string) ([]byte, error) {
	c.cacheMutex.Lock()
	if call, ok := c.calls[url]; ok {
		c.cacheMutex.Unlock()
		select {
		case <-call.done:
			return call.data, call.err
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	call := &feedCall{done: make(chan struct{})}
	c.calls[url] = call
	c.cacheMutex.Unlock()

	call.data, call.err = c.fetcher.Fetch(ctx, url)
	if call.err != nil {
		// Evict so a future call retries instead of seeing a poisoned entry.
		c.cacheMutex.Lock()
		delete(c.calls, url)
		c.cacheMutex.Unlock()
	}
	close(call.done)

	return call.data, call.err
}

// Invalidate drops one identifier from the cache.
func (c *FeedCache) Invalidate(url string) {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()
	delete(c.calls, url)
}

// InvalidateAll drops every cached entry.
func (c *FeedCache) InvalidateAll() {
	c.cacheMutex.Lock()
	defer c.cacheMutex.Unlock()
	c.calls = map[string]*feedCall{}
}
