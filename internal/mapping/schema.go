package mapping

import (
	"fmt"
	"strings"
)

// Header conventions accepted for the field mapping table.
var fieldHeaderPairs = [][2]string{
	{"old_field", "new_field"},
	{"source_field", "target_field"},
}

// Header conventions accepted for the value mapping table.
var valueHeaderPairs = [][2]string{
	{"old_value", "new_value"},
	{"source_value", "treesta_value"},
}

// SchemaError reports a mapping table whose header matches none of the
// accepted conventions.
type SchemaError struct {
	// Table is "field mapping" or "value mapping".
	Table string
	// Headers are the header cells that were found.
	Headers []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: unexpected headers [%s]", e.Table, strings.Join(e.Headers, ", "))
}

// FieldMapping translates source column names to target field names.
// It is read-only once loaded.
type FieldMapping struct {
	targets map[string]string
	// sources keeps the source names in first-seen order.
	sources []string
	order   []string
	reverse map[string]string
}

// NewFieldMapping builds a field mapping from source/target pairs, applied
// in order. Pairs with an empty target are skipped.
func NewFieldMapping(pairs ...[2]string) *FieldMapping {
	m := &FieldMapping{targets: make(map[string]string)}

	seenTarget := make(map[string]bool)

	for _, p := range pairs {
		source, target := p[0], p[1]
		if target == "" {
			continue
		}

		if _, ok := m.targets[source]; !ok {
			m.sources = append(m.sources, source)
		}

		m.targets[source] = target

		if !seenTarget[target] {
			seenTarget[target] = true
			m.order = append(m.order, target)
		}
	}

	// When several sources share a target the last one wins, in source order.
	m.reverse = make(map[string]string, len(m.targets))
	for _, source := range m.sources {
		if source == "" {
			continue
		}

		m.reverse[m.targets[source]] = source
	}

	return m
}

// Target returns the target field for a source column.
func (m *FieldMapping) Target(source string) (string, bool) {
	t, ok := m.targets[source]
	return t, ok
}

// Source returns the source column that feeds target.
func (m *FieldMapping) Source(target string) (string, bool) {
	s, ok := m.reverse[target]
	return s, ok
}

// TargetOrder returns the distinct targets in first-seen order.
func (m *FieldMapping) TargetOrder() []string {
	return m.order
}

// Len returns the number of mapped source columns.
func (m *FieldMapping) Len() int {
	return len(m.targets)
}

// ValueMapping translates source values to Treesta values. It is
// read-only once loaded.
type ValueMapping struct {
	values map[string]string
}

// NewValueMapping builds a value mapping from old/new pairs. Both sides
// are trimmed; empty sources are skipped and empty replacements map a
// value to itself.
func NewValueMapping(pairs ...[2]string) *ValueMapping {
	m := &ValueMapping{values: make(map[string]string, len(pairs))}

	for _, p := range pairs {
		oldValue := strings.TrimSpace(p[0])
		newValue := strings.TrimSpace(p[1])

		if oldValue == "" {
			continue
		}

		if newValue == "" {
			newValue = oldValue
		}

		m.values[oldValue] = newValue
	}

	return m
}

// Lookup returns the translation of value.
func (m *ValueMapping) Lookup(value string) (string, bool) {
	if m == nil {
		return "", false
	}

	v, ok := m.values[value]
	return v, ok
}

// Keys returns every source value in the table, unordered.
func (m *ValueMapping) Keys() []string {
	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}

	return keys
}

// Len returns the number of entries.
func (m *ValueMapping) Len() int {
	return len(m.values)
}

// Tables bundles the two tables of one profile.
type Tables struct {
	Fields *FieldMapping
	Values *ValueMapping
}
