// Package csvio reads and writes the semicolon-delimited files the
// converter works with: the cadastre export, the two mapping tables, the
// Treesta import file and the unmapped value report.
package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"treesta-importer/internal/record"
)

// Delimiter separates cells in every file the converter reads or writes.
const Delimiter = ';'

// DefaultEncoding is the encoding assumed for input files.
const DefaultEncoding = "utf-8"

// NotFoundError reports a required file that does not exist.
type NotFoundError struct {
	// Kind names the file's role, e.g. "input" or "field mapping".
	Kind string
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s file not found: %s", e.Kind, e.Path)
}

// Unwrap lets errors.Is(err, os.ErrNotExist) match.
func (e *NotFoundError) Unwrap() error {
	return os.ErrNotExist
}

// LookupEncoding resolves an encoding label such as "utf-8",
// "windows-1252" or "latin1".
func LookupEncoding(name string) (encoding.Encoding, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultEncoding
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}

	return enc, nil
}

// Open opens path for reading. A missing file yields *NotFoundError.
func Open(kind, path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &NotFoundError{Kind: kind, Path: path}
		}

		return nil, eris.Wrapf(err, "csvio: open %s file", kind)
	}

	return f, nil
}

// NewReader returns a CSV reader for semicolon-delimited, double-quoted
// text. A leading byte order mark is consumed; without one the input is
// decoded with enc (UTF-8 when nil). Rows may have any number of cells
// and a stray quote inside an unquoted cell is kept as text.
func NewReader(r io.Reader, enc encoding.Encoding) *csv.Reader {
	if enc == nil {
		enc = unicode.UTF8
	}

	decoded := transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder()))

	cr := csv.NewReader(decoded)
	cr.Comma = Delimiter
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	return cr
}

// ReadHeader returns the trimmed header row of the file at path.
func ReadHeader(path string, enc encoding.Encoding) ([]string, error) {
	f, err := Open("input", path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	header, err := NewReader(f, enc).Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, eris.Wrap(err, "csvio: read header")
	}

	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.TrimSpace(h)
	}

	return out, nil
}

// ReadRecords reads the whole file at path. The header row names the
// cells of every following row: missing trailing cells read as empty and
// cells beyond the header are dropped.
func ReadRecords(path string, enc encoding.Encoding) ([]string, []*record.Record, error) {
	f, err := Open("input", path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	return ParseRecords(f, enc)
}

// ParseRecords is ReadRecords over an already opened reader.
func ParseRecords(r io.Reader, enc encoding.Encoding) ([]string, []*record.Record, error) {
	rows, err := NewReader(r, enc).ReadAll()
	if err != nil {
		return nil, nil, eris.Wrap(err, "csvio: read records")
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	records := make([]*record.Record, 0, len(rows)-1)

	for _, row := range rows[1:] {
		rec := record.New()

		for i, name := range header {
			value := ""
			if i < len(row) {
				value = row[i]
			}

			rec.Set(name, value)
		}

		records = append(records, rec)
	}

	return header, records, nil
}
