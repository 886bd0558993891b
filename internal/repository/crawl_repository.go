package repository

import (
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/fuzumoe/siteinsight-backend/internal/crawler"
	"github.com/fuzumoe/siteinsight-backend/internal/model"
)

// ErrCrawlNotFound is returned when no crawl row matches.
var ErrCrawlNotFound = errors.New("crawl not found")

// CrawlRepository defines DB ops around Crawl entities.
type CrawlRepository interface {
	Create(c *model.Crawl) error
	FindByID(id uint) (*model.Crawl, error)
	Results(id uint) (*model.Crawl, error)
	List(p Pagination) ([]model.Crawl, error)
	Count() (int, error)
	UpdateStatus(id uint, status string) error
	SaveResult(id uint, res *crawler.CrawlResult) error
	Delete(id uint) error
}

type crawlRepo struct {
	db *gorm.DB
}

// NewCrawlRepo constructs a gorm-backed CrawlRepository.
func NewCrawlRepo(db *gorm.DB) CrawlRepository {
	return &crawlRepo{db: db}
}

func (r *crawlRepo) Create(c *model.Crawl) error {
	return r.db.Create(c).Error
}

func (r *crawlRepo) FindByID(id uint) (*model.Crawl, error) {
	var c model.Crawl
	if err := r.db.Omit("corpus").First(&c, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

// Results loads a crawl with its pages in crawl order and its signals.
func (r *crawlRepo) Results(id uint) (*model.Crawl, error) {
	var c model.Crawl
	err := r.db.
		Preload("Pages", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Signals", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&c, id).
		Error
	if err != nil {
		return nil, notFound(err)
	}
	return &c, nil
}

func (r *crawlRepo) List(p Pagination) ([]model.Crawl, error) {
	var crawls []model.Crawl
	err := r.db.
		Omit("corpus").
		Order("id DESC").
		Offset(p.Offset()).
		Limit(p.Limit()).
		Find(&crawls).
		Error
	if err != nil {
		return nil, err
	}
	return crawls, nil
}

func (r *crawlRepo) Count() (int, error) {
	var n int64
	if err := r.db.Model(&model.Crawl{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *crawlRepo) UpdateStatus(id uint, status string) error {
	res := r.db.Model(&model.Crawl{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCrawlNotFound
	}
	return nil
}

// SaveResult replaces the pages and signals of a crawl with res and updates
// its summary columns in one transaction.
func (r *crawlRepo) SaveResult(id uint, res *crawler.CrawlResult) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("crawl_id = ?", id).Delete(&model.Page{}).Error; err != nil {
			return err
		}
		if err := tx.Where("crawl_id = ?", id).Delete(&model.Signal{}).Error; err != nil {
			return err
		}

		status := model.StatusDone
		if res.Failed() {
			status = model.StatusError
		}
		now := time.Now()
		updates := map[string]any{
			"status":        status,
			"base_url":      res.BaseURL,
			"company_name":  res.CompanyName,
			"page_count":    res.PageCount,
			"error_message": res.Error,
			"corpus":        res.Corpus,
			"elapsed_ms":    res.Elapsed.Milliseconds(),
			"finished_at":   &now,
		}
		upd := tx.Model(&model.Crawl{}).Where("id = ?", id).Updates(updates)
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			return ErrCrawlNotFound
		}

		if pages := pagesFromResult(id, res); len(pages) > 0 {
			if err := tx.Create(&pages).Error; err != nil {
				return err
			}
		}
		if signals := signalsFromResult(id, res); len(signals) > 0 {
			if err := tx.Create(&signals).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *crawlRepo) Delete(id uint) error {
	res := r.db.Delete(&model.Crawl{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrCrawlNotFound
	}
	return nil
}

func pagesFromResult(id uint, res *crawler.CrawlResult) []model.Page {
	pages := make([]model.Page, len(res.Pages))
	for i, p := range res.Pages {
		pages[i] = model.Page{
			CrawlID:    id,
			Position:   i + 1,
			URL:        p.URL,
			Label:      p.Label,
			TextLength: p.TextLength,
		}
	}
	return pages
}

// signalsFromResult flattens the signal map, ordered by signal name.
func signalsFromResult(id uint, res *crawler.CrawlResult) []model.Signal {
	names := make([]string, 0, len(res.Signals))
	for name := range res.Signals {
		names = append(names, name)
	}
	sort.Strings(names)

	var signals []model.Signal
	for _, name := range names {
		for _, snippet := range res.Signals[name] {
			signals = append(signals, model.Signal{CrawlID: id, Name: name, Snippet: snippet})
		}
	}
	return signals
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCrawlNotFound
	}
	return err
}
