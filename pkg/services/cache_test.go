package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

// countingFetcher counts retrievals per identifier and can be told to fail.
type countingFetcher struct {
	mu    sync.Mutex
	count map[string]int
	fail  atomic.Bool
}

func newCountingFetcher() *countingFetcher {
	return &countingFetcher{count: map[string]int{}}
}

func (f *countingFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	f.count[url]++
	f.mu.Unlock()
	if f.fail.Load() {
		return nil, &FetchError{URL: url, Status: 503}
	}
	return []byte("[" + url + "]"), nil
}

func (f *countingFetcher) calls(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count[url]
}

func TestFeedCache_FetchesOncePerIdentifier(t *testing.T) {
	fetcher := newCountingFetcher()
	cache := NewFeedCache(fetcher)

	for i := 0; i < 5; i++ {
		if _, err := cache.Get(context.Background(), "jobs.json"); err != nil {
			t.Fatalf("Get returned error: %v", err)
		}
	}
	if _, err := cache.Get(context.Background(), "grad.json"); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}

	if got := fetcher.calls("jobs.json"); got != 1 {
		t.Errorf("jobs.json fetched %d times, want 1", got)
	}
	if got := fetcher.calls("grad.json"); got != 1 {
		t.Errorf("grad.json fetched %d times, want 1", got)
	}
}

func TestFeedCache_ConcurrentCallersShareOneFetch(t *testing.T) {
	fetcher := newCountingFetcher()
	cache := NewFeedCache(fetcher)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Get(context.Background(), "jobs.json"); err != nil {
				t.Errorf("Get returned error: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := fetcher.calls("jobs.json"); got != 1 {
		t.Errorf("concurrent callers caused %d fetches, want 1", got)
	}
}

func TestFeedCache_FailureEvictsAndRetries(t *testing.T) {
	fetcher := newCountingFetcher()
	fetcher.fail.Store(true)
	cache := NewFeedCache(fetcher)

	_, err := cache.Get(context.Background(), "jobs.json")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("want *FetchError, got %v", err)
	}
	if fe.URL != "jobs.json" || fe.Status != 503 {
		t.Errorf("FetchError = %+v, want URL jobs.json status 503", fe)
	}

	// The failed entry must not be poisoned.
	fetcher.fail.Store(false)
	data, err := cache.Get(context.Background(), "jobs.json")
	if err != nil {
		t.Fatalf("retry after failure returned error: %v", err)
	}
	if string(data) != "[jobs.json]" {
		t.Errorf("retry returned %q", data)
	}

	if got := fetcher.calls("jobs.json"); got != 2 {
		t.Errorf("expected exactly 2 fetches (fail then retry), got %d", got)
	}
}

func TestFeedCache_InvalidateForcesRefetch(t *testing.T) {
	fetcher := newCountingFetcher()
	cache := NewFeedCache(fetcher)

	cache.Get(context.Background(), "jobs.json")
	cache.Invalidate("jobs.json")
	cache.Get(context.Background(), "jobs.json")

	if got := fetcher.calls("jobs.json"); got != 2 {
		t.Errorf("invalidate should force a refetch, got %d fetches", got)
	}
}
