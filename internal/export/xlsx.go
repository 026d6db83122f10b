package export

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/docviewer/viewer/internal/search"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ErrTimeout is returned when an export does not finish in time
var ErrTimeout = errors.New("export timed out")

const batchSize = 100

// Hits walks the hits to export
type Hits interface {
	Each(ctx context.Context, limit, batchSize int, fn func(search.Hit) error) error
}

// Exporter writes search results to spreadsheets
type Exporter struct {
	timeout time.Duration
	maxHits int
	fields  []string
	logger  *zap.Logger
}

func NewExporter(timeout time.Duration, maxHits int, fields []string, logger *zap.Logger) *Exporter {
	return &Exporter{timeout: timeout, maxHits: maxHits, fields: fields, logger: logger}
}

type outcome struct {
	data []byte
	err  error
}

// XLSX writes up to the configured maximum of hits as a spreadsheet, one row per hit and
// one column per configured field, with a header row of translated field names.
// The export runs in its own goroutine and is cancelled when ctx is done or the timeout
// expires, in which case ErrTimeout is returned.
func (e *Exporter) XLSX(ctx context.Context, hits Hits, t func(string) string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	done := make(chan outcome, 1)
	go func() {
		data, err := e.writeXLSX(ctx, hits, t)
		done <- outcome{data: data, err: err}
	}()

	select {
	case o := <-done:
		if errors.Is(o.err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return o.data, o.err
	case <-ctx.Done():
		e.logger.Warn("export cancelled", zap.Error(ctx.Err()))
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, ctx.Err()
	}
}

func (e *Exporter) writeXLSX(ctx context.Context, hits Hits, t func(string) string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// spreadsheet names are limited to 31 characters
	sheet := t("searchResultsExport")
	if runes := []rune(sheet); len(runes) > 31 {
		sheet = string(runes[:31])
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return nil, err
	}

	header := make([]interface{}, len(e.fields))
	for i, field := range e.fields {
		header[i] = t(field)
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, err
	}

	row := 1
	err = hits.Each(ctx, e.maxHits, batchSize, func(hit search.Hit) error {
		row++
		values := make([]interface{}, len(e.fields))
		for i, field := range e.fields {
			values[i] = hit.Doc.String(field)
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		return sw.SetRow(cell, values)
	})
	if err != nil {
		return nil, fmt.Errorf("exporting hits: %w", err)
	}

	if err := sw.Flush(); err != nil {
		return nil, err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
