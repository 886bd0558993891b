package crawler

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fuzumoe/siteinsight-backend/internal/metrics"
	"github.com/fuzumoe/siteinsight-backend/internal/model"
)

// Store is the persistence the workers need: job lookup, status and results.
type Store interface {
	FindByID(id uint) (*model.Crawl, error)
	UpdateStatus(id uint, status string) error
	SaveResult(id uint, res *CrawlResult) error
}

// Pool is injected into the crawl service so handlers can queue jobs.
type Pool interface {
	// Start runs background workers until the passed context is cancelled.
	Start(ctx context.Context)
	// Enqueue queues a crawl ID and reports whether it was accepted.
	Enqueue(id uint) bool
	Shutdown()
}

// NewPool creates a worker pool that runs queued crawls with c. Each crawl is
// sequential; workers only let crawls of different sites overlap.
func NewPool(store Store, c *Crawler, workers, buf int) Pool {
	if workers <= 0 {
		workers = 4
	}
	if buf <= 0 {
		buf = 128
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &pool{
		store:   store,
		crawler: c,
		workers: workers,
		tasks:   make(chan uint, buf),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// pool manages a set of workers that process crawl jobs.
type pool struct {
	store   Store
	crawler *Crawler
	workers int
	tasks   chan uint

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

// Start spins up background workers and blocks until ctx is cancelled.
func (p *pool) Start(ctx context.Context) {
	p.mu.Lock()
	childCtx, cancel := context.WithCancel(ctx)
	p.ctx, p.cancel = childCtx, cancel
	p.mu.Unlock()

	for i := 0; i < p.workers; i++ {
		w := newWorker(i+1, childCtx, p.store, p.crawler)
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			w.run(p.tasks)
		}()
	}

	<-childCtx.Done()
	p.Shutdown()
}

// Enqueue drops a crawl ID onto the buffered channel without blocking.
func (p *pool) Enqueue(id uint) bool {
	p.mu.Lock()
	ctx := p.ctx
	p.mu.Unlock()

	select {
	case <-ctx.Done():
		return false
	default:
	}
	select {
	case p.tasks <- id:
		return true
	default:
		metrics.QueueDropped.Inc()
		slog.Warn("crawl queue full, dropping job", "crawl_id", id)
		return false
	}
}

// Shutdown cancels the workers and waits for in-flight crawls to return.
func (p *pool) Shutdown() {
	p.once.Do(func() {
		p.mu.Lock()
		cancel := p.cancel
		p.mu.Unlock()
		cancel()
		p.wg.Wait()
	})
}
