package mapping

import (
	"fmt"
	"io"
	"strings"

	"treesta-importer/internal/csvio"
)

// Table names used in errors.
const (
	FieldTable = "field mapping"
	ValueTable = "value mapping"
)

// LoadFieldMappingFile loads a field mapping table from path.
func LoadFieldMappingFile(path string) (*FieldMapping, error) {
	f, err := csvio.Open(FieldTable, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := ParseFieldMapping(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s %s: %w", FieldTable, path, err)
	}

	return m, nil
}

// ParseFieldMapping parses a field mapping table.
func ParseFieldMapping(r io.Reader) (*FieldMapping, error) {
	header, rows, err := readTable(r)
	if err != nil {
		return nil, err
	}

	oldIdx, newIdx, ok := findColumns(header, fieldHeaderPairs)
	if !ok {
		return nil, &SchemaError{Table: FieldTable, Headers: header}
	}

	pairs := make([][2]string, 0, len(rows))
	for _, row := range rows {
		pairs = append(pairs, [2]string{
			strings.TrimSpace(cell(row, oldIdx)),
			strings.TrimSpace(cell(row, newIdx)),
		})
	}

	return NewFieldMapping(pairs...), nil
}

// LoadValueMappingFile loads a value mapping table from path.
func LoadValueMappingFile(path string) (*ValueMapping, error) {
	f, err := csvio.Open(ValueTable, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := ParseValueMapping(f)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s %s: %w", ValueTable, path, err)
	}

	return m, nil
}

// ParseValueMapping parses a value mapping table. A header matching no
// known convention falls back to the first two columns.
func ParseValueMapping(r io.Reader) (*ValueMapping, error) {
	header, rows, err := readTable(r)
	if err != nil {
		return nil, err
	}

	oldIdx, newIdx, ok := findColumns(header, valueHeaderPairs)
	if !ok {
		if len(header) < 2 {
			return nil, &SchemaError{Table: ValueTable, Headers: header}
		}

		oldIdx, newIdx = 0, 1
	}

	pairs := make([][2]string, 0, len(rows))
	for _, row := range rows {
		pairs = append(pairs, [2]string{cell(row, oldIdx), cell(row, newIdx)})
	}

	return NewValueMapping(pairs...), nil
}

// LoadTables loads both tables of a profile.
func LoadTables(fieldsPath, valuesPath string) (*Tables, error) {
	fields, err := LoadFieldMappingFile(fieldsPath)
	if err != nil {
		return nil, err
	}

	values, err := LoadValueMappingFile(valuesPath)
	if err != nil {
		return nil, err
	}

	return &Tables{Fields: fields, Values: values}, nil
}

// readTable reads a mapping table into its header and data rows.
func readTable(r io.Reader) ([]string, [][]string, error) {
	rows, err := csvio.NewReader(r, nil).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse mapping table: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	return rows[0], rows[1:], nil
}

// findColumns locates the first accepted header pair. Header cells are
// compared trimmed and case-insensitively.
func findColumns(header []string, pairs [][2]string) (int, int, bool) {
	index := make(map[string]int, len(header))

	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, ok := index[key]; !ok {
			index[key] = i
		}
	}

	for _, p := range pairs {
		oldIdx, okOld := index[p[0]]
		newIdx, okNew := index[p[1]]

		if okOld && okNew {
			return oldIdx, newIdx, true
		}
	}

	return 0, 0, false
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}

	return ""
}
