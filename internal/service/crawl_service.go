package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/fuzumoe/siteinsight-backend/internal/crawler"
	"github.com/fuzumoe/siteinsight-backend/internal/export"
	"github.com/fuzumoe/siteinsight-backend/internal/model"
	"github.com/fuzumoe/siteinsight-backend/internal/repository"
)

var (
	ErrInvalidSeed  = errors.New("seed must be a domain or http(s) URL")
	ErrQueueFull    = errors.New("crawl queue is full, try again later")
	ErrCrawlRunning = errors.New("crawl is already running")
)

// Runner executes a crawl synchronously.
type Runner interface {
	Run(ctx context.Context, seed string, maxPages int) *crawler.CrawlResult
}

// CrawlService defines business operations around crawls.
type CrawlService interface {
	Create(input *model.CreateCrawlInput) (*model.CrawlDTO, error)
	Get(id uint) (*model.CrawlDTO, error)
	List(p repository.Pagination) (*model.PaginatedResponse[model.CrawlDTO], error)
	Start(id uint) error
	Results(id uint) (*model.CrawlResultDTO, error)
	Delete(id uint) error
	Preview(ctx context.Context, input *model.CreateCrawlInput) (*crawler.CrawlResult, error)
	Export(id uint, w io.Writer) error
}

type crawlService struct {
	repo            repository.CrawlRepository
	crawlers        crawler.Pool
	runner          Runner
	defaultMaxPages int
}

// NewCrawlService constructs a CrawlService.
func NewCrawlService(r repository.CrawlRepository, p crawler.Pool, runner Runner, defaultMaxPages int) CrawlService {
	if defaultMaxPages <= 0 {
		defaultMaxPages = crawler.DefaultMaxPages
	}
	return &crawlService{repo: r, crawlers: p, runner: runner, defaultMaxPages: defaultMaxPages}
}

// Create stores a queued crawl and hands it to the worker pool. A crawl
// that cannot be scheduled is removed again so no row is left queued.
func (s *crawlService) Create(input *model.CreateCrawlInput) (*model.CrawlDTO, error) {
	if err := validateSeed(input.Seed); err != nil {
		return nil, err
	}
	c := model.CrawlFromCreateInput(input, s.defaultMaxPages)
	if err := s.repo.Create(c); err != nil {
		return nil, fmt.Errorf("create crawl: %w", err)
	}
	if !s.crawlers.Enqueue(c.ID) {
		if err := s.repo.Delete(c.ID); err != nil {
			return nil, errors.Join(ErrQueueFull, fmt.Errorf("remove unscheduled crawl %d: %w", c.ID, err))
		}
		return nil, ErrQueueFull
	}
	return c.ToDTO(), nil
}

func (s *crawlService) Get(id uint) (*model.CrawlDTO, error) {
	c, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return c.ToDTO(), nil
}

func (s *crawlService) List(p repository.Pagination) (*model.PaginatedResponse[model.CrawlDTO], error) {
	p = p.Normalized()
	crawls, err := s.repo.List(p)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count()
	if err != nil {
		return nil, err
	}

	dtos := make([]model.CrawlDTO, len(crawls))
	for i := range crawls {
		dtos[i] = *crawls[i].ToDTO()
	}
	return &model.PaginatedResponse[model.CrawlDTO]{
		Data: dtos,
		Pagination: model.PaginationMetaDTO{
			Page:       p.Page,
			PageSize:   p.PageSize,
			TotalItems: total,
			TotalPages: p.TotalPages(total),
		},
	}, nil
}

// Start re-queues an existing crawl that is not currently running.
func (s *crawlService) Start(id uint) error {
	c, err := s.repo.FindByID(id)
	if err != nil {
		return fmt.Errorf("cannot start crawl: %w", err)
	}
	if c.Status == model.StatusRunning {
		return ErrCrawlRunning
	}
	if err := s.repo.UpdateStatus(id, model.StatusQueued); err != nil {
		return err
	}
	if !s.crawlers.Enqueue(id) {
		return ErrQueueFull
	}
	return nil
}

func (s *crawlService) Results(id uint) (*model.CrawlResultDTO, error) {
	c, err := s.repo.Results(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get crawl results: %w", err)
	}
	return c.ToResultDTO(), nil
}

func (s *crawlService) Delete(id uint) error {
	return s.repo.Delete(id)
}

// Preview runs a crawl inline without storing it.
func (s *crawlService) Preview(ctx context.Context, input *model.CreateCrawlInput) (*crawler.CrawlResult, error) {
	if err := validateSeed(input.Seed); err != nil {
		return nil, err
	}
	maxPages := input.MaxPages
	if maxPages <= 0 {
		maxPages = s.defaultMaxPages
	}
	return s.runner.Run(ctx, input.Seed, maxPages), nil
}

// Export writes the stored result of a crawl as an xlsx workbook.
func (s *crawlService) Export(id uint, w io.Writer) error {
	res, err := s.Results(id)
	if err != nil {
		return err
	}
	return export.WriteWorkbook(w, res)
}

func validateSeed(seed string) error {
	seed = strings.TrimSpace(seed)
	if scheme, _, found := strings.Cut(seed, "://"); found {
		if s := strings.ToLower(scheme); s != "http" && s != "https" {
			return ErrInvalidSeed
		}
	}
	u, err := url.Parse(crawler.NormalizeSeed(seed))
	if err != nil || u.Hostname() == "" || u.User != nil {
		return ErrInvalidSeed
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ErrInvalidSeed
	}
	return nil
}
