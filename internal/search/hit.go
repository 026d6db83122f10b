package search

import "github.com/docviewer/viewer/internal/solr"

// Index fields read from hit documents
const (
	fieldPI          = "PI"
	fieldPITopstruct = "PI_TOPSTRUCT"
	fieldIDDoc       = "IDDOC"
	fieldLabel       = "LABEL"
	fieldDocStrct    = "DOCSTRCT"
	fieldDocType     = "DOCTYPE"
	fieldOrder       = "ORDER"
	fieldThumbPageNo = "THUMBPAGENO"
)

// DefaultResultFields are the fields requested for every hit
var DefaultResultFields = []string{fieldPI, fieldPITopstruct, fieldIDDoc, fieldLabel, fieldDocStrct, fieldDocType, fieldOrder, fieldThumbPageNo}

// Hit summarises a search hit: the record it belongs to and the page to open
type Hit struct {
	PI        string        `json:"pi"`
	IDDoc     string        `json:"iddoc"`
	Label     string        `json:"label"`
	DocStruct string        `json:"docStruct"`
	PageNo    int           `json:"pageNo"`
	Doc       solr.Document `json:"-"`
}

// HitFromDocument builds a hit from an index document. Page documents open at their own
// page, everything else at its thumbnail page.
func HitFromDocument(doc solr.Document) Hit {
	h := Hit{
		PI:        doc.String(fieldPITopstruct),
		IDDoc:     doc.String(fieldIDDoc),
		Label:     doc.String(fieldLabel),
		DocStruct: doc.String(fieldDocStrct),
		PageNo:    doc.Int(fieldThumbPageNo),
		Doc:       doc,
	}
	if h.PI == "" {
		h.PI = doc.String(fieldPI)
	}
	if doc.String(fieldDocType) == "PAGE" {
		h.PageNo = doc.Int(fieldOrder)
	}
	if h.PageNo < 1 {
		h.PageNo = 1
	}
	return h
}
