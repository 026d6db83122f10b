package record

import (
	"context"
	"fmt"

	"github.com/docviewer/viewer/internal/solr"
)

const maxTOCEntries = 10000

// TOCEntry is a line of a table of contents. Level 0 entries are the top of the tree.
type TOCEntry struct {
	IDDoc     string `json:"iddoc"`
	LogID     string `json:"logId,omitempty"`
	Label     string `json:"label"`
	DocStruct string `json:"docStruct"`
	PI        string `json:"pi"`
	PageNo    int    `json:"pageNo"`
	Level     int    `json:"level"`
}

// TOC is the table of contents of a record: its structure elements, or its volumes if
// the record is an anchor
type TOC struct {
	PI      string     `json:"pi"`
	Label   string     `json:"label"`
	Entries []TOCEntry `json:"entries"`
}

// TOC returns the table of contents of rec
func (r *Repository) TOC(ctx context.Context, rec Record) (TOC, error) {
	if rec.IsAnchor {
		return r.volumes(ctx, rec)
	}

	res, err := r.index.Search(ctx, solr.Query{
		Q:             FieldPITopstruct + ":" + solr.Phrase(rec.PI),
		FilterQueries: []string{FieldDocType + ":" + docTypeStructure},
		Fields:        []string{FieldIDDoc, FieldIDDocParent, FieldLogID, FieldLabel, FieldDocStrct, FieldThumbPageNo},
		Sort:          []solr.SortField{{Field: FieldThumbPageNo}},
		Rows:          maxTOCEntries,
	})
	if err != nil {
		return TOC{}, fmt.Errorf("loading table of contents of %s: %w", rec.PI, err)
	}

	return TOC{PI: rec.PI, Label: rec.Label, Entries: BuildTree(rec.PI, res.Docs)}, nil
}

func (r *Repository) volumes(ctx context.Context, anchor Record) (TOC, error) {
	res, err := r.index.Search(ctx, solr.Query{
		Q:             FieldPIParent + ":" + solr.Phrase(anchor.PI),
		FilterQueries: []string{FieldIsWork + ":true"},
		Fields:        recordFields,
		Sort:          []solr.SortField{{Field: FieldCurrentNoSort}},
		Rows:          maxTOCEntries,
	})
	if err != nil {
		return TOC{}, fmt.Errorf("loading volumes of %s: %w", anchor.PI, err)
	}

	entries := make([]TOCEntry, 0, len(res.Docs)+1)
	entries = append(entries, TOCEntry{
		IDDoc:     anchor.IDDoc,
		LogID:     anchor.LogID,
		Label:     anchor.Label,
		DocStruct: anchor.DocStruct,
		PI:        anchor.PI,
		PageNo:    1,
	})
	for _, doc := range res.Docs {
		volume := fromDocument(doc)
		label := volume.Label
		if label == "" {
			label = volume.CurrentNo
		}
		entries = append(entries, TOCEntry{
			IDDoc:     volume.IDDoc,
			LogID:     volume.LogID,
			Label:     label,
			DocStruct: volume.DocStruct,
			PI:        volume.PI,
			PageNo:    volume.ThumbPageNo,
			Level:     1,
		})
	}

	return TOC{PI: anchor.PI, Label: anchor.Label, Entries: entries}, nil
}

// BuildTree orders structure element documents of record pi as a tree, using IDDOC_PARENT,
// and flattens it depth first. Siblings keep the order of docs. Elements whose parent is
// missing are treated as roots.
func BuildTree(pi string, docs []solr.Document) []TOCEntry {
	present := make(map[string]bool, len(docs))
	for _, doc := range docs {
		present[doc.String(FieldIDDoc)] = true
	}

	children := map[string][]solr.Document{}
	var roots []solr.Document
	for _, doc := range docs {
		parent := doc.String(FieldIDDocParent)
		if parent == "" || !present[parent] || parent == doc.String(FieldIDDoc) {
			roots = append(roots, doc)
			continue
		}
		children[parent] = append(children[parent], doc)
	}

	entries := make([]TOCEntry, 0, len(docs))
	visited := make(map[string]bool, len(docs))
	var walk func(doc solr.Document, level int)
	walk = func(doc solr.Document, level int) {
		id := doc.String(FieldIDDoc)
		if visited[id] {
			return
		}
		visited[id] = true
		entries = append(entries, TOCEntry{
			IDDoc:     id,
			LogID:     doc.String(FieldLogID),
			Label:     doc.String(FieldLabel),
			DocStruct: doc.String(FieldDocStrct),
			PI:        pi,
			PageNo:    max(doc.Int(FieldThumbPageNo), 1),
			Level:     level,
		})
		for _, child := range children[id] {
			walk(child, level+1)
		}
	}
	for _, root := range roots {
		walk(root, 0)
	}

	return entries
}
