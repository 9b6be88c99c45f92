// Package normalize provides the small, pure cell cleanups applied while
// reshaping records: boolean canonicalization, species cleanup and the
// coordinate column test.
package normalize

import (
	"regexp"
	"strings"
)

var (
	numericPrefixRe = regexp.MustCompile(`^\s*\d+\s*`)
	parenSuffixRe   = regexp.MustCompile(`\s*\([^)]*\)`)
)

// coordNames are column names that carry position or geometry and are
// copied verbatim, mapped or not. Compared lowercased.
var coordNames = map[string]bool{
	"x":            true,
	"y":            true,
	"lat":          true,
	"lon":          true,
	"lng":          true,
	"latitude":     true,
	"longitude":    true,
	"easting":      true,
	"northing":     true,
	"coordinate_x": true,
	"coordinate_y": true,
	"koord_x":      true,
	"koord_y":      true,
	"wkt":          true,
	"geom":         true,
	"geometry":     true,
	"the_geom":     true,
}

// CoordNames returns the coordinate column names, lowercased.
func CoordNames() []string {
	names := make([]string, 0, len(coordNames))
	for name := range coordNames {
		names = append(names, name)
	}

	return names
}

// IsCoordName reports whether a column name denotes a coordinate or
// geometry column. Surrounding whitespace and case are ignored.
func IsCoordName(name string) bool {
	if name == "" {
		return false
	}

	return coordNames[strings.ToLower(strings.TrimSpace(name))]
}

// Boolean maps "true"/"false" (any case, surrounding whitespace ignored)
// to "1"/"0". Anything else is returned unchanged.
func Boolean(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true":
		return "1"
	case "false":
		return "0"
	default:
		return value
	}
}

// StripNumericPrefix removes a leading run of digits and the whitespace
// around it, e.g. "1 gut" -> "gut".
func StripNumericPrefix(value string) string {
	return numericPrefixRe.ReplaceAllString(value, "")
}

// Species cleans a species cell: the inventory number in front and any
// parenthesized common name are dropped.
//
//	"12 Quercus robur (Stieleiche)" -> "Quercus robur"
func Species(value string) string {
	v := StripNumericPrefix(value)
	v = parenSuffixRe.ReplaceAllString(v, "")

	return strings.TrimSpace(v)
}
