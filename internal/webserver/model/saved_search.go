package model

import (
	"time"

	"github.com/docviewer/viewer/internal/search"
)

// SavedSearch is a search a user stored to run again later
type SavedSearch struct {
	ID                  uint      `gorm:"primarykey" json:"id"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
	UserID              uint      `gorm:"index" json:"-"`
	Name                string    `json:"name"`
	Query               string    `json:"query"`
	SearchString        string    `json:"searchString"`
	Filter              string    `json:"filter"`
	Page                int       `json:"page"`
	Sort                string    `json:"sort"`
	Facets              string    `json:"facets"`
	NewHitsNotification bool      `json:"newHitsNotification"`
	LastHitsCount       int       `json:"lastHitsCount"`
}

// NewSavedSearch captures snapshot under name
func NewSavedSearch(userID uint, name string, snapshot search.Snapshot, hitsCount int, notify bool) SavedSearch {
	return SavedSearch{
		UserID:              userID,
		Name:                name,
		Query:               snapshot.Query,
		SearchString:        snapshot.SearchString,
		Filter:              snapshot.Filter,
		Page:                snapshot.Page,
		Sort:                snapshot.Sort,
		Facets:              snapshot.Facets,
		NewHitsNotification: notify,
		LastHitsCount:       hitsCount,
	}
}

// Snapshot returns the search to restore in a session
func (s SavedSearch) Snapshot() search.Snapshot {
	return search.Snapshot{
		Query:        s.Query,
		SearchString: s.SearchString,
		Filter:       s.Filter,
		Page:         s.Page,
		Sort:         s.Sort,
		Facets:       s.Facets,
	}
}
