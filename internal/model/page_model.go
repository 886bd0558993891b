package model

import (
	"time"
)

// Page is one crawled page of a Crawl, in crawl order.
type Page struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CrawlID    uint      `gorm:"not null;index" json:"crawl_id"`
	Position   int       `gorm:"not null" json:"position"`
	URL        string    `gorm:"size:2048;not null" json:"url"`
	Label      string    `gorm:"size:255" json:"label"`
	TextLength int       `json:"text_length"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName returns the name of the table for Page.
func (Page) TableName() string {
	return "pages"
}

// PageDTO is the citation view of a crawled page.
type PageDTO struct {
	Position   int    `json:"position"`
	URL        string `json:"url"`
	Label      string `json:"label"`
	TextLength int    `json:"text_length"`
}

// ToDTO transforms a Page model into a PageDTO.
func (p *Page) ToDTO() *PageDTO {
	return &PageDTO{
		Position:   p.Position,
		URL:        p.URL,
		Label:      p.Label,
		TextLength: p.TextLength,
	}
}

// Signal is one enterprise-signal snippet matched during a crawl.
type Signal struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CrawlID   uint      `gorm:"not null;index" json:"crawl_id"`
	Name      string    `gorm:"size:64;not null;index" json:"name"`
	Snippet   string    `gorm:"type:text" json:"snippet"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName returns the name of the table for Signal.
func (Signal) TableName() string {
	return "signals"
}
