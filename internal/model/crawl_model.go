package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusQueued  = "queued"
	StatusRunning = "running"
	StatusDone    = "done"
	StatusError   = "error"
)

// Crawl is one crawl job of a seed site and, once finished, its aggregate result.
type Crawl struct {
	ID           uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	RunID        string         `gorm:"size:36;not null;uniqueIndex" json:"run_id"`
	Seed         string         `gorm:"size:2048;not null" json:"seed"`
	BaseURL      string         `gorm:"size:2048" json:"base_url"`
	CompanyName  string         `gorm:"size:255" json:"company_name"`
	Status       string         `gorm:"type:enum('queued','running','done','error');default:'queued';not null" json:"status"`
	MaxPages     int            `gorm:"not null;default:10" json:"max_pages"`
	PageCount    int            `json:"page_count"`
	ErrorMessage string         `gorm:"type:text" json:"error,omitempty"`
	Corpus       string         `gorm:"type:longtext" json:"-"`
	ElapsedMS    int64          `json:"elapsed_ms"`
	FinishedAt   *time.Time     `json:"finished_at,omitempty"`
	Pages        []Page         `gorm:"constraint:OnDelete:CASCADE" json:"pages,omitempty"`
	Signals      []Signal       `gorm:"constraint:OnDelete:CASCADE" json:"signals,omitempty"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName returns the name of the table for Crawl.
func (Crawl) TableName() string {
	return "crawls"
}

// CrawlDTO is the summary view of a crawl, without its corpus.
type CrawlDTO struct {
	ID           uint       `json:"id"`
	RunID        string     `json:"run_id"`
	Seed         string     `json:"seed"`
	BaseURL      string     `json:"base_url"`
	CompanyName  string     `json:"company_name"`
	Status       string     `json:"status"`
	MaxPages     int        `json:"max_pages"`
	PageCount    int        `json:"page_count"`
	ErrorMessage string     `json:"error,omitempty"`
	ElapsedMS    int64      `json:"elapsed_ms"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// CrawlResultDTO is the full result of a finished crawl.
type CrawlResultDTO struct {
	CrawlDTO
	Pages   []PageDTO           `json:"pages"`
	Signals map[string][]string `json:"enterprise_signals"`
	Corpus  string              `json:"corpus"`
}

// CreateCrawlInput defines the fields accepted when queueing a crawl.
type CreateCrawlInput struct {
	Seed     string `json:"seed" binding:"required"`
	MaxPages int    `json:"max_pages" binding:"omitempty,gte=1,lte=50"`
}

// ToDTO converts a Crawl model to a CrawlDTO.
func (c *Crawl) ToDTO() *CrawlDTO {
	return &CrawlDTO{
		ID:           c.ID,
		RunID:        c.RunID,
		Seed:         c.Seed,
		BaseURL:      c.BaseURL,
		CompanyName:  c.CompanyName,
		Status:       c.Status,
		MaxPages:     c.MaxPages,
		PageCount:    c.PageCount,
		ErrorMessage: c.ErrorMessage,
		ElapsedMS:    c.ElapsedMS,
		FinishedAt:   c.FinishedAt,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ToResultDTO converts a Crawl with preloaded pages and signals.
func (c *Crawl) ToResultDTO() *CrawlResultDTO {
	dto := &CrawlResultDTO{
		CrawlDTO: *c.ToDTO(),
		Pages:    make([]PageDTO, len(c.Pages)),
		Signals:  make(map[string][]string),
		Corpus:   c.Corpus,
	}
	for i := range c.Pages {
		dto.Pages[i] = *c.Pages[i].ToDTO()
	}
	for _, s := range c.Signals {
		dto.Signals[s.Name] = append(dto.Signals[s.Name], s.Snippet)
	}
	return dto
}

// CrawlFromCreateInput maps CreateCrawlInput to a queued Crawl.
func CrawlFromCreateInput(input *CreateCrawlInput, defaultMaxPages int) *Crawl {
	maxPages := input.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}
	now := time.Now()
	return &Crawl{
		RunID:     uuid.NewString(),
		Seed:      strings.TrimSpace(input.Seed),
		Status:    StatusQueued,
		MaxPages:  maxPages,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
