package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"WorkshopMapDashboard/internal/models"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// maxBodyBytes bounds how much of the source document is read. Larger
// documents fail the load.
const maxBodyBytes = 64 << 20

// Loader fetches CSV sheets over HTTP and memoizes the parsed dataset per URL
// for the lifetime of the process. Failed loads are not cached.
type Loader struct {
	client  *http.Client
	logger  *zap.Logger
	maxBody int64

	group singleflight.Group

	mu    sync.RWMutex
	cache map[string]*models.Dataset
	// gen is bumped by Forget; a fetch started under an older generation
	// does not write to cache.
	gen map[string]uint64
}

// New returns a Loader. A nil client falls back to one with a 30s timeout.
func New(client *http.Client, logger *zap.Logger) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		client:  client,
		logger:  logger,
		maxBody: maxBodyBytes,
		cache:   make(map[string]*models.Dataset),
		gen:     make(map[string]uint64),
	}
}

// Load returns the dataset for url, fetching it on first use. Concurrent
// first calls for the same url share a single fetch.
func (l *Loader) Load(ctx context.Context, url string) (*models.Dataset, error) {
	l.mu.RLock()
	ds, ok := l.cache[url]
	l.mu.RUnlock()
	if ok {
		return ds, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The shared fetch must outlive any single caller's cancellation.
	fetchCtx := context.WithoutCancel(ctx)
	ch := l.group.DoChan(url, func() (any, error) {
		l.mu.RLock()
		cached, ok := l.cache[url]
		gen := l.gen[url]
		l.mu.RUnlock()
		if ok {
			return cached, nil
		}

		start := time.Now()
		ds, err := l.fetch(fetchCtx, url)
		if err != nil {
			l.logger.Warn("dataset load failed", zap.String("url", url), zap.Error(err))
			return nil, err
		}
		l.mu.Lock()
		current := l.gen[url] == gen
		if current {
			l.cache[url] = ds
		}
		l.mu.Unlock()
		if !current {
			l.logger.Info("discarding dataset fetched before refresh", zap.String("url", url))
			return ds, nil
		}
		l.logger.Info("dataset loaded",
			zap.String("url", url),
			zap.Int("records", ds.Len()),
			zap.Int("columns", len(ds.Columns)),
			zap.Duration("took", time.Since(start)))
		return ds, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.Dataset), nil
	}
}

// Forget drops the memoized dataset for url so the next Load fetches again.
func (l *Loader) Forget(url string) {
	l.mu.Lock()
	delete(l.cache, url)
	l.gen[url]++
	l.mu.Unlock()
	l.group.Forget(url)
	l.logger.Info("dataset cache cleared", zap.String("url", url))
}

// Cached reports whether url currently has a memoized dataset.
func (l *Loader) Cached(url string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, ok := l.cache[url]
	return ok
}

func (l *Loader) fetch(ctx context.Context, url string) (*models.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &FetchError{URL: url, Status: resp.StatusCode, Err: fmt.Errorf("status %s", resp.Status)}
	}

	body := &countingReader{r: io.LimitReader(resp.Body, l.maxBody+1)}
	ds, err := Parse(body)
	if body.n > l.maxBody {
		return nil, &ParseError{URL: url, Err: fmt.Errorf("document exceeds %d bytes", l.maxBody)}
	}
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.URL = url
			return nil, pe
		}
		return nil, &ParseError{URL: url, Err: err}
	}
	return ds, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
