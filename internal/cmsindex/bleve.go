package cmsindex

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/char/asciifolding"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/docviewer/viewer/internal/result"
	"github.com/microcosm-cc/bluemonday"
)

// Page is the indexable content of a CMS page
type Page struct {
	ID       string
	Slug     string
	Title    string
	Content  string
	Language string
}

// Hit is a CMS page matching a search
type Hit struct {
	ID    string `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

type document struct {
	Slug     string
	Title    string
	Content  string
	Language string
}

// BleveIndexer keeps published CMS pages searchable
type BleveIndexer struct {
	idx   bleve.Index
	strip *bluemonday.Policy
}

func NewBleve(index bleve.Index) *BleveIndexer {
	return &BleveIndexer{idx: index, strip: bluemonday.StrictPolicy()}
}

// Mapping folds accents and lowercases page text, and keeps slugs and languages as keywords
func Mapping() (*mapping.IndexMappingImpl, error) {
	indexMapping := bleve.NewIndexMapping()

	err := indexMapping.AddCustomAnalyzer("page",
		map[string]interface{}{
			"type": custom.Name,
			"char_filters": []string{
				asciifolding.Name,
			},
			"tokenizer": unicode.Name,
			"token_filters": []string{
				lowercase.Name,
			},
		})
	if err != nil {
		return nil, err
	}
	indexMapping.DefaultAnalyzer = "page"
	indexMapping.DefaultMapping.AddFieldMappingsAt("Slug", bleve.NewKeywordFieldMapping())
	indexMapping.DefaultMapping.AddFieldMappingsAt("Language", bleve.NewKeywordFieldMapping())

	return indexMapping, nil
}

// Add indexes page, replacing any previous version of it
func (b *BleveIndexer) Add(page Page) error {
	if err := b.idx.Index(page.ID, b.document(page)); err != nil {
		return fmt.Errorf("error indexing page %s: %w", page.ID, err)
	}
	return nil
}

// Remove drops the page with id from the index
func (b *BleveIndexer) Remove(id string) error {
	return b.idx.Delete(id)
}

// AddAll indexes pages in batches of batchSize
func (b *BleveIndexer) AddAll(pages []Page, batchSize int) error {
	batch := b.idx.NewBatch()
	for _, page := range pages {
		if err := batch.Index(page.ID, b.document(page)); err != nil {
			return fmt.Errorf("error indexing page %s: %w", page.ID, err)
		}
		if batch.Size() >= batchSize {
			if err := b.idx.Batch(batch); err != nil {
				return err
			}
			batch.Reset()
		}
	}
	return b.idx.Batch(batch)
}

// Search looks for pages in language matching every keyword, in their title or content.
// An empty language searches all of them.
func (b *BleveIndexer) Search(keywords, language string, page, resultsPerPage int) (result.Paginated[[]Hit], error) {
	page = max(page, 1)
	words := strings.Fields(keywords)
	if len(words) == 0 {
		return result.NewPaginated(resultsPerPage, page, 0, []Hit{}), nil
	}

	var titleQueries, contentQueries []query.Query
	for _, word := range words {
		tq := bleve.NewMatchQuery(word)
		tq.SetField("Title")
		titleQueries = append(titleQueries, tq)

		cq := bleve.NewMatchQuery(word)
		cq.SetField("Content")
		contentQueries = append(contentQueries, cq)
	}
	titleCompound := bleve.NewConjunctionQuery(titleQueries...)
	titleCompound.SetBoost(5)
	var q query.Query = bleve.NewDisjunctionQuery(titleCompound, bleve.NewConjunctionQuery(contentQueries...))

	if language != "" {
		lq := bleve.NewTermQuery(language)
		lq.SetField("Language")
		q = bleve.NewConjunctionQuery(q, lq)
	}

	req := bleve.NewSearchRequestOptions(q, resultsPerPage, (page-1)*resultsPerPage, false)
	req.Fields = []string{"Slug", "Title"}
	res, err := b.idx.Search(req)
	if err != nil {
		return result.Paginated[[]Hit]{}, err
	}

	hits := make([]Hit, len(res.Hits))
	for i, val := range res.Hits {
		hits[i] = Hit{ID: val.ID}
		hits[i].Slug, _ = val.Fields["Slug"].(string)
		hits[i].Title, _ = val.Fields["Title"].(string)
	}
	return result.NewPaginated(resultsPerPage, page, int(res.Total), hits), nil
}

// Count returns the number of indexed pages
func (b *BleveIndexer) Count() (uint64, error) {
	return b.idx.DocCount()
}

func (b *BleveIndexer) Close() error {
	return b.idx.Close()
}

func (b *BleveIndexer) document(page Page) document {
	return document{
		Slug:     page.Slug,
		Title:    page.Title,
		Content:  b.strip.Sanitize(page.Content),
		Language: page.Language,
	}
}
