package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/docviewer/viewer/internal/search"
	"github.com/docviewer/viewer/internal/solr"
	"go.uber.org/zap"
)

// Index runs queries against the search index
type Index interface {
	Search(ctx context.Context, q solr.Query) (solr.Response, error)
}

type Config struct {
	// DateField holds dates as YYYYMMDD numbers
	DateField string
	YearField string
	// BaseFilter restricts the documents counted, e.g. to top level works
	BaseFilter         string
	HierarchicalFacets []string
	TTL                time.Duration
}

type Year struct {
	Year int `json:"year"`
	Hits int `json:"hits"`
}

type Month struct {
	Month int `json:"month"`
	Hits  int `json:"hits"`
}

// Day of a month grid. Padding days before the first and after the last day of the month
// have a zero Day.
type Day struct {
	Day  int    `json:"day"`
	Date string `json:"date,omitempty"`
	Hits int    `json:"hits"`
}

// Week holds seven days, Monday first
type Week [7]Day

// Calendar computes hit counts per year, month and day from the date facet of the index
type Calendar struct {
	index  Index
	cache  Cache
	config Config
	logger *zap.Logger
}

func New(index Index, cache Cache, cfg Config, logger *zap.Logger) *Calendar {
	if cache == nil {
		cache = NoCache{}
	}
	return &Calendar{index: index, cache: cache, config: cfg, logger: logger}
}

// Years returns the years having hits, ascending. collection is a facet string restricting
// the documents counted, "" or "-" for none.
func (c *Calendar) Years(ctx context.Context, collection string) ([]Year, error) {
	var years []Year
	err := c.cached(ctx, "years:"+collection, &years, func() error {
		counts, err := c.facet(ctx, c.config.YearField, collection, "")
		if err != nil {
			return err
		}
		years = make([]Year, 0, len(counts))
		for _, fc := range counts {
			year, err := strconv.Atoi(fc.Value)
			if err != nil {
				continue
			}
			years = append(years, Year{Year: year, Hits: fc.Count})
		}
		sort.Slice(years, func(i, j int) bool { return years[i].Year < years[j].Year })
		return nil
	})
	return years, err
}

// Months returns the twelve months of year with their hits
func (c *Calendar) Months(ctx context.Context, year int, collection string) ([]Month, error) {
	var months []Month
	err := c.cached(ctx, fmt.Sprintf("months:%d:%s", year, collection), &months, func() error {
		days, err := c.days(ctx, fmt.Sprintf("[%04d0101 TO %04d1231]", year, year), collection)
		if err != nil {
			return err
		}
		months = make([]Month, 12)
		for i := range months {
			months[i].Month = i + 1
		}
		for date, hits := range days {
			months[date.Month()-1].Hits += hits
		}
		return nil
	})
	return months, err
}

// Weeks returns the month grid of year and month, one week per row starting on Monday
func (c *Calendar) Weeks(ctx context.Context, year int, month time.Month, collection string) ([]Week, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("invalid month %d", month)
	}
	var weeks []Week
	err := c.cached(ctx, fmt.Sprintf("weeks:%d:%d:%s", year, month, collection), &weeks, func() error {
		first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		last := first.AddDate(0, 1, -1)
		days, err := c.days(ctx, "["+first.Format("20060102")+" TO "+last.Format("20060102")+"]", collection)
		if err != nil {
			return err
		}
		weeks = MonthGrid(year, month, days)
		return nil
	})
	return weeks, err
}

// MonthGrid lays out the days of month in weeks starting on Monday, with the hits in counts
func MonthGrid(year int, month time.Month, counts map[time.Time]int) []Week {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// Monday is column 0
	column := (int(first.Weekday()) + 6) % 7

	var (
		weeks []Week
		week  Week
	)
	for date := first; date.Month() == month; date = date.AddDate(0, 0, 1) {
		week[column] = Day{Day: date.Day(), Date: date.Format("2006-01-02"), Hits: counts[date]}
		column++
		if column == 7 {
			weeks = append(weeks, week)
			week = Week{}
			column = 0
		}
	}
	if column > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

func (c *Calendar) days(ctx context.Context, dateRange, collection string) (map[time.Time]int, error) {
	counts, err := c.facet(ctx, c.config.DateField, collection, c.config.DateField+":"+dateRange)
	if err != nil {
		return nil, err
	}
	days := make(map[time.Time]int, len(counts))
	for _, fc := range counts {
		date, err := time.Parse("20060102", fc.Value)
		if err != nil {
			continue
		}
		days[date] += fc.Count
	}
	return days, nil
}

func (c *Calendar) facet(ctx context.Context, field, collection, extraFilter string) ([]solr.FacetCount, error) {
	facets := search.NewFacets(c.config.HierarchicalFacets...)
	facets.SetString(collection)

	fqs := []string{field + ":*"}
	if c.config.BaseFilter != "" {
		fqs = append(fqs, c.config.BaseFilter)
	}
	if extraFilter != "" {
		fqs = append(fqs, extraFilter)
	}
	fqs = append(fqs, facets.FilterQueries()...)

	res, err := c.index.Search(ctx, solr.Query{
		FilterQueries: fqs,
		FacetFields:   []string{field},
	})
	if err != nil {
		return nil, err
	}
	return res.Facets[field], nil
}

// cached fills dst from the cache under key, or by calling compute and caching the outcome.
// Cache failures are logged and otherwise ignored.
func (c *Calendar) cached(ctx context.Context, key string, dst any, compute func() error) error {
	if raw, found, err := c.cache.Get(ctx, key); err != nil {
		c.logger.Warn("calendar cache read failed", zap.String("key", key), zap.Error(err))
	} else if found {
		if err := json.Unmarshal(raw, dst); err == nil {
			return nil
		}
	}

	if err := compute(); err != nil {
		return err
	}

	raw, err := json.Marshal(dst)
	if err != nil {
		return err
	}
	if err := c.cache.Set(ctx, key, raw, c.config.TTL); err != nil {
		c.logger.Warn("calendar cache write failed", zap.String("key", key), zap.Error(err))
	}
	return nil
}
