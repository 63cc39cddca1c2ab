package ingest

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/sells-group/prospector-cli/internal/model"
)

// CSVSource loads contact records from a CSV export on disk. It implements
// the contacts.Loader contract: a full ingestion pass per call, order
// preserved, fatal error for structurally invalid input.
type CSVSource struct {
	Path string
}

// NewCSVSource creates a CSVSource for the given file path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

// Load reads and normalizes the whole export. Malformed CSV structure is a
// whole-batch error; rows missing identity fields still normalize.
func (s *CSVSource) Load(ctx context.Context) ([]model.ContactRecord, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, eris.Wrapf(err, "ingest: open %s", s.Path)
	}
	defer f.Close()

	records, err := ReadCSV(ctx, f)
	if err != nil {
		return nil, err
	}

	zap.L().Info("ingest: csv load complete",
		zap.String("path", s.Path),
		zap.Int("records", len(records)),
	)
	return records, nil
}

// ReadCSV parses a header-first CSV stream into normalized contact records.
// Input may carry a UTF-8 BOM (the upstream export does).
func ReadCSV(ctx context.Context, r io.Reader) ([]model.ContactRecord, error) {
	bomAware := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(bomAware)
	reader.FieldsPerRecord = -1 // tolerate ragged rows; header length governs

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("ingest: empty csv input")
	}
	if err != nil {
		return nil, eris.Wrap(err, "ingest: read header")
	}

	now := time.Now().UTC()
	var records []model.ContactRecord
	for {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "ingest: cancelled")
		}

		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "ingest: read row")
		}

		raw := make(RawRow, len(header))
		for i, col := range header {
			if i < len(row) {
				raw[col] = row[i]
			}
		}
		records = append(records, Normalize(raw, now))
	}

	return records, nil
}
