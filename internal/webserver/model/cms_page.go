package model

import (
	"time"

	"github.com/microcosm-cc/bluemonday"
)

// CMSPage is an editorial page, e.g. "About" or "Imprint"
type CMSPage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Slug      string    `gorm:"uniqueIndex" json:"slug"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Language  string    `gorm:"index" json:"language"`
	Published bool      `gorm:"index" json:"published"`
}

var contentPolicy = bluemonday.UGCPolicy()

// Sanitize strips from the page content the markup that could run scripts in readers' browsers
func (p *CMSPage) Sanitize() {
	p.Content = contentPolicy.Sanitize(p.Content)
}

func (p CMSPage) Validate() map[string]string {
	errs := map[string]string{}

	if p.Title == "" {
		errs["title"] = "Title cannot be empty"
	}

	if len(p.Title) > 200 {
		errs["title"] = "Title cannot be longer than 200 characters"
	}

	if len(p.Language) != 2 {
		errs["language"] = "Incorrect language"
	}

	return errs
}
