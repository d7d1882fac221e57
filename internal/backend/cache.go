package backend

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultContentCacheSize is the default number of decoded documents kept.
const DefaultContentCacheSize = 64

// CacheObserver is notified of content cache lookups.
type CacheObserver interface {
	CacheHit()
	CacheMiss()
}

// CachingClient wraps a Client and memoizes decoded document content, so
// reopening a document does not refetch it. Concurrent fetches of the same
// id share one backend call. Failed fetches are not cached.
type CachingClient struct {
	Client
	cache    *lru.Cache[string, []byte]
	group    singleflight.Group
	observer CacheObserver
}

// NewCachingClient wraps inner with a content cache holding size entries.
// A size of zero or less returns inner unchanged.
func NewCachingClient(inner Client, size int, observer CacheObserver) Client {
	if size <= 0 {
		return inner
	}
	cache, _ := lru.New[string, []byte](size)
	return &CachingClient{
		Client:   inner,
		cache:    cache,
		observer: observer,
	}
}

// FetchDocumentContent returns cached content if available, otherwise fetches
// and caches it. The shared fetch outlives a caller that gives up, so other
// callers waiting on the same id still get the content.
func (c *CachingClient) FetchDocumentContent(ctx context.Context, id string) ([]byte, error) {
	if data, ok := c.cache.Get(id); ok {
		c.hit()
		return data, nil
	}
	c.miss()

	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(id, func() (any, error) {
		if data, ok := c.cache.Get(id); ok {
			return data, nil
		}
		data, err := c.Client.FetchDocumentContent(fetchCtx, id)
		if err != nil {
			return nil, err
		}
		c.cache.Add(id, data)
		return data, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

// Purge drops all cached content.
func (c *CachingClient) Purge() {
	c.cache.Purge()
}

func (c *CachingClient) hit() {
	if c.observer != nil {
		c.observer.CacheHit()
	}
}

func (c *CachingClient) miss() {
	if c.observer != nil {
		c.observer.CacheMiss()
	}
}
