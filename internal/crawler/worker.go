package crawler

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fuzumoe/siteinsight-backend/internal/model"
)

// worker pulls crawl IDs off the pool queue and runs them one at a time.
type worker struct {
	id      int
	ctx     context.Context
	store   Store
	crawler *Crawler
	log     *slog.Logger
}

func newWorker(id int, ctx context.Context, s Store, c *Crawler) *worker {
	return &worker{id: id, ctx: ctx, store: s, crawler: c, log: slog.Default().With("worker", id)}
}

// NewWorker creates a worker; exported for tests that drive it directly.
func NewWorker(id int, ctx context.Context, s Store, c *Crawler) *worker {
	return newWorker(id, ctx, s, c)
}

// run processes tasks until the context ends or the channel closes.
func (w *worker) run(tasks <-chan uint) {
	for {
		select {
		case <-w.ctx.Done():
			return
		case id, ok := <-tasks:
			if !ok {
				return
			}
			if id == 0 {
				continue
			}
			w.process(id)
		}
	}
}

// Run is an exported wrapper around run.
func (w *worker) Run(tasks <-chan uint) {
	w.run(tasks)
}

// Process runs a single crawl job synchronously.
func (w *worker) Process(id uint) {
	w.process(id)
}

// process loads the job, crawls its seed and stores the result.
func (w *worker) process(id uint) {
	log := w.log.With("crawl_id", id)

	rec, err := w.store.FindByID(id)
	if err != nil {
		log.Error("lookup crawl", "error", err)
		return
	}
	if rec.Status == model.StatusRunning {
		log.Warn("crawl already running, skipping")
		return
	}
	if err := w.store.UpdateStatus(id, model.StatusRunning); err != nil {
		log.Error("set running", "error", err)
		return
	}

	res := w.crawler.Run(w.ctx, rec.Seed, rec.MaxPages)
	if errors.Is(w.ctx.Err(), context.Canceled) && res.PageCount == 0 {
		// shutting down before anything was fetched; leave the job re-queueable
		_ = w.store.UpdateStatus(id, model.StatusQueued)
		log.Info("crawl interrupted by shutdown")
		return
	}

	if err := w.store.SaveResult(id, res); err != nil {
		_ = w.store.UpdateStatus(id, model.StatusError)
		log.Error("save crawl result", "error", err)
		return
	}
	log.Info("crawl stored", "seed", rec.Seed, "pages", res.PageCount, "error", res.Error)
}
