package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Viewer holds the process-wide configuration of the viewer. It is read once at start up
// and shared read-only by every session.
type Viewer struct {
	Solr      Solr      `yaml:"solr"`
	Search    Search    `yaml:"search"`
	Calendar  Calendar  `yaml:"calendar"`
	Export    Export    `yaml:"export"`
	Downloads Downloads `yaml:"downloads"`
	Cache     Cache     `yaml:"cache"`
}

type Solr struct {
	URL     string        `yaml:"url" env:"SOLR_URL" env-default:"http://localhost:8983/solr/collection1"`
	Timeout time.Duration `yaml:"timeout" env:"SOLR_TIMEOUT" env-default:"10s"`
}

// FacetField describes an index field offered as a facet in search results
type FacetField struct {
	Field        string `yaml:"field"`
	Hierarchical bool   `yaml:"hierarchical"`
	Limit        int    `yaml:"limit"`
}

// AdvancedField describes a field selectable in the advanced search form
type AdvancedField struct {
	Field        string `yaml:"field"`
	Label        string `yaml:"label"`
	Hierarchical bool   `yaml:"hierarchical"`
}

type Search struct {
	HitsPerPage        int             `yaml:"hits-per-page" env:"HITS_PER_PAGE" env-default:"10"`
	HitsPerPageOptions []int           `yaml:"hits-per-page-options" env:"HITS_PER_PAGE_OPTIONS" env-default:"10,20,50,100"`
	DefaultSort        string          `yaml:"default-sort" env:"DEFAULT_SORT" env-default:"RELEVANCE"`
	BaseFilter         string          `yaml:"base-filter" env:"SEARCH_BASE_FILTER" env-default:"(ISWORK:true OR ISANCHOR:true OR DOCTYPE:PAGE) -DATEDELETED:*"`
	SortFields         []string        `yaml:"sort-fields" env:"SORT_FIELDS" env-default:"SORT_TITLE,SORT_CREATOR,SORT_YEARPUBLISH"`
	StopWords          []string        `yaml:"stop-words" env:"STOP_WORDS"`
	Facets             []FacetField    `yaml:"facets"`
	AdvancedFields     []AdvancedField `yaml:"advanced-fields"`
	AdvancedGroups     int             `yaml:"advanced-groups" env:"ADVANCED_GROUPS" env-default:"2"`
	AdvancedItems      int             `yaml:"advanced-items" env:"ADVANCED_ITEMS" env-default:"2"`
}

type Calendar struct {
	DateField  string `yaml:"date-field" env:"CALENDAR_DATE_FIELD" env-default:"YEARMONTHDAY"`
	YearField  string `yaml:"year-field" env:"CALENDAR_YEAR_FIELD" env-default:"YEAR"`
	BaseFilter string `yaml:"base-filter" env:"CALENDAR_BASE_FILTER" env-default:"ISWORK:true"`
}

type Export struct {
	Timeout time.Duration `yaml:"timeout" env:"EXPORT_TIMEOUT" env-default:"120s"`
	MaxHits int           `yaml:"max-hits" env:"EXPORT_MAX_HITS" env-default:"10000"`
	Fields  []string      `yaml:"fields" env:"EXPORT_FIELDS" env-default:"PI,LABEL,DOCSTRCT,YEARPUBLISH"`
}

// Downloads lists the access conditions under which records may be viewed and downloaded
// by anyone. PDFAccessConditions additionally allow PDF downloads.
type Downloads struct {
	OpenAccessConditions []string `yaml:"open-access-conditions" env:"OPEN_ACCESS_CONDITIONS" env-default:"OPENACCESS"`
	PDFAccessConditions  []string `yaml:"pdf-access-conditions" env:"PDF_ACCESS_CONDITIONS"`
}

type Cache struct {
	RedisAddr string        `yaml:"redis-addr" env:"REDIS_ADDR"`
	TTL       time.Duration `yaml:"ttl" env:"CACHE_TTL" env-default:"10m"`
}

// Load reads the viewer configuration from the YAML file at path, if any, and from the
// environment. Environment variables take precedence over the file.
func Load(path string) (Viewer, error) {
	var cfg Viewer

	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return cfg, fmt.Errorf("reading configuration from environment: %w", err)
		}
	} else if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration from %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, cfg.validate()
}

func (v *Viewer) applyDefaults() {
	if len(v.Search.Facets) == 0 {
		v.Search.Facets = []FacetField{
			{Field: "DC", Hierarchical: true},
			{Field: "DOCSTRCT"},
			{Field: "YEAR"},
		}
	}
	if len(v.Search.AdvancedFields) == 0 {
		v.Search.AdvancedFields = []AdvancedField{
			{Field: "ALL", Label: "searchFieldAll"},
			{Field: "DC", Label: "DC", Hierarchical: true},
			{Field: "TITLE", Label: "TITLE"},
			{Field: "CREATOR", Label: "CREATOR"},
			{Field: "FULLTEXT", Label: "FULLTEXT"},
		}
	}
}

func (v Viewer) validate() error {
	if v.Search.HitsPerPage < 1 {
		return fmt.Errorf("hits per page must be greater than 0, got %d", v.Search.HitsPerPage)
	}
	if v.Export.Timeout <= 0 {
		return fmt.Errorf("export timeout must be positive, got %s", v.Export.Timeout)
	}
	return nil
}
