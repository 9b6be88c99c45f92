package mapping

import (
	"regexp"
	"strings"

	"treesta-importer/internal/diagnostic"
)

// partSeparatorRe finds the commas that separate compound parts: a comma,
// whitespace, then at least two digits (which stay with the next part).
var partSeparatorRe = regexp.MustCompile(`,\s+(\d{2})`)

// Translator maps cell values through a value table and reports misses.
type Translator struct {
	values *ValueMapping
	sink   diagnostic.Sink
}

// NewTranslator creates a Translator. A nil sink drops misses.
func NewTranslator(values *ValueMapping, sink diagnostic.Sink) *Translator {
	return &Translator{values: values, sink: sink}
}

// Map translates text read for the target field.
func (t *Translator) Map(text, target string) string {
	return MapValue(text, t.values, t.sink, target)
}

// MapValue translates a cell value through values.
//
// A plain value is trimmed and looked up; without an entry the trimmed
// value is returned. A brace-wrapped value is resolved as described in
// the package documentation and returned wrapped in braces again. Every
// looked-up value without an entry is passed to sink with target.
func MapValue(text string, values *ValueMapping, sink diagnostic.Sink, target string) string {
	if text == "" {
		return text
	}

	if !isCompound(text) {
		return lookup(strings.TrimSpace(text), values, sink, target)
	}

	inner := strings.TrimSpace(strings.Trim(text, "{}"))

	if v, ok := values.Lookup(inner); ok {
		return "{" + v + "}"
	}

	if v, ok := values.Lookup(strings.ReplaceAll(inner, ",", "")); ok {
		return "{" + v + "}"
	}

	parts := SplitCompound(inner)

	if len(parts) == 1 {
		if known, ok := splitKnown(strings.TrimSpace(parts[0]), values); ok {
			return "{" + strings.Join(known, ", ") + "}"
		}
	}

	translated := make([]string, len(parts))

	for i, p := range parts {
		translated[i] = lookup(strings.TrimSpace(p), values, sink, target)
	}

	return "{" + strings.Join(translated, ", ") + "}"
}

// SplitCompound splits the inner text of a compound value into its parts.
// Commas that are not followed by whitespace and two digits belong to the
// value itself and do not split.
func SplitCompound(inner string) []string {
	matches := partSeparatorRe.FindAllStringSubmatchIndex(inner, -1)
	if len(matches) == 0 {
		return []string{inner}
	}

	parts := make([]string, 0, len(matches)+1)
	start := 0

	for _, m := range matches {
		parts = append(parts, inner[start:m[0]])
		// m[2] is where the digits begin.
		start = m[2]
	}

	return append(parts, inner[start:])
}

// splitKnown splits value at every comma, but only when value itself has
// no entry and every part does.
func splitKnown(value string, values *ValueMapping) ([]string, bool) {
	if _, ok := values.Lookup(value); ok || !strings.Contains(value, ",") {
		return nil, false
	}

	parts := strings.Split(value, ",")
	out := make([]string, len(parts))

	for i, p := range parts {
		v, ok := values.Lookup(strings.TrimSpace(p))
		if !ok {
			return nil, false
		}

		out[i] = v
	}

	return out, true
}

func isCompound(text string) bool {
	return strings.HasPrefix(text, "{") && strings.HasSuffix(text, "}")
}

func lookup(value string, values *ValueMapping, sink diagnostic.Sink, target string) string {
	if v, ok := values.Lookup(value); ok {
		return v
	}

	if value != "" && sink != nil {
		sink.Add(target, value)
	}

	return value
}
