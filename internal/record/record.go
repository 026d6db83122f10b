package record

import (
	"context"
	"fmt"
	"regexp"

	"github.com/docviewer/viewer/internal/solr"
)

// Index fields of record and structure element documents
const (
	FieldPI              = "PI"
	FieldPITopstruct     = "PI_TOPSTRUCT"
	FieldPIParent        = "PI_PARENT"
	FieldIDDoc           = "IDDOC"
	FieldIDDocParent     = "IDDOC_PARENT"
	FieldLogID           = "LOGID"
	FieldLabel           = "LABEL"
	FieldDocStrct        = "DOCSTRCT"
	FieldDocType         = "DOCTYPE"
	FieldNumPages        = "NUMPAGES"
	FieldIsWork          = "ISWORK"
	FieldIsAnchor        = "ISANCHOR"
	FieldDateDeleted     = "DATEDELETED"
	FieldThumbPageNo     = "THUMBPAGENO"
	FieldCurrentNo       = "CURRENTNO"
	FieldCurrentNoSort   = "CURRENTNOSORT"
	FieldAccessCondition = "ACCESSCONDITION"
	docTypeStructure     = "DOCSTRCT"
)

var recordFields = []string{
	FieldPI, FieldIDDoc, FieldLabel, FieldDocStrct, FieldNumPages, FieldIsAnchor, FieldPIParent,
	FieldDateDeleted, FieldThumbPageNo, FieldLogID, FieldCurrentNo, FieldAccessCondition,
}

var validPI = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.\-]*$`)

// ValidPI reports whether pi can be a persistent identifier
func ValidPI(pi string) bool {
	return len(pi) <= 255 && validPI.MatchString(pi)
}

// Record is a top level work, or the anchor of a multi-volume work
type Record struct {
	PI               string   `json:"pi"`
	IDDoc            string   `json:"iddoc"`
	Label            string   `json:"label"`
	DocStruct        string   `json:"docStruct"`
	NumPages         int      `json:"numPages"`
	IsAnchor         bool     `json:"isAnchor"`
	PIParent         string   `json:"piParent,omitempty"`
	ThumbPageNo      int      `json:"thumbPageNo"`
	LogID            string   `json:"logId"`
	CurrentNo        string   `json:"currentNo,omitempty"`
	AccessConditions []string `json:"accessConditions"`
}

func fromDocument(doc solr.Document) Record {
	return Record{
		PI:               doc.String(FieldPI),
		IDDoc:            doc.String(FieldIDDoc),
		Label:            doc.String(FieldLabel),
		DocStruct:        doc.String(FieldDocStrct),
		NumPages:         doc.Int(FieldNumPages),
		IsAnchor:         doc.Bool(FieldIsAnchor),
		PIParent:         doc.String(FieldPIParent),
		ThumbPageNo:      max(doc.Int(FieldThumbPageNo), 1),
		LogID:            doc.String(FieldLogID),
		CurrentNo:        doc.String(FieldCurrentNo),
		AccessConditions: doc.Strings(FieldAccessCondition),
	}
}

// Index runs queries against the search index
type Index interface {
	Search(ctx context.Context, q solr.Query) (solr.Response, error)
}

// Repository loads records and their structure from the index
type Repository struct {
	index Index
}

func NewRepository(index Index) *Repository {
	return &Repository{index: index}
}

// Load returns the work or anchor identified by pi
func (r *Repository) Load(ctx context.Context, pi string) (Record, error) {
	if !ValidPI(pi) {
		return Record{}, fmt.Errorf("%q: %w", pi, ErrMalformedPI)
	}

	res, err := r.index.Search(ctx, solr.Query{
		Q:             FieldPI + ":" + solr.Phrase(pi),
		FilterQueries: []string{FieldIsWork + ":true OR " + FieldIsAnchor + ":true OR " + FieldDateDeleted + ":*"},
		Fields:        recordFields,
		Rows:          1,
	})
	if err != nil {
		return Record{}, fmt.Errorf("loading record %s: %w", pi, err)
	}
	if len(res.Docs) == 0 {
		return Record{}, fmt.Errorf("%s: %w", pi, ErrRecordNotFound)
	}
	if res.Docs[0].Has(FieldDateDeleted) {
		return Record{}, fmt.Errorf("%s: %w", pi, ErrRecordDeleted)
	}
	return fromDocument(res.Docs[0]), nil
}
