package diagnostic

import (
	"regexp"
	"strings"

	"treesta-importer/internal/normalize"
)

var (
	isoTimestampRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}:\d{2}`)
	slashTimestampRe = regexp.MustCompile(`^\d{4}/\d{2}/\d{2}[ T]\d{2}:\d{2}:\d{2}`)
	dateRe           = regexp.MustCompile(`^\d{4}[-/]\d{2}[-/]\d{2}$`)
	integerRe        = regexp.MustCompile(`^\d+$`)
)

// booleanLiterals never need a value table entry.
var booleanLiterals = map[string]bool{
	"true":  true,
	"false": true,
	"0":     true,
	"1":     true,
	"ja":    true,
	"nein":  true,
}

// ignoredTargets are target fields whose values are free data, not
// enumerations. Coordinate names are added in init.
var ignoredTargets = map[string]bool{
	"id":                true,
	"treenumber":        true,
	"treenumber2":       true,
	"sequencenumber":    true,
	"number":            true,
	"street":            true,
	"location":          true,
	"green_space":       true,
	"land_use":          true,
	"access":            true,
	"city":              true,
	"zip":               true,
	"customer":          true,
	"client":            true,
	"owner":             true,
	"contact":           true,
	"inspector":         true,
	"controller":        true,
	"name":              true,
	"date":              true,
	"created_at":        true,
	"updated_at":        true,
	"timestamp":         true,
	"inspection_date":   true,
	"control_date":      true,
	"measured_at":       true,
	"survey_date":       true,
	"last_control_date": true,
}

// ignoredSubstrings exclude any target field containing them.
var ignoredSubstrings = []string{
	// addresses, time
	"name", "nummer", "number", "street", "straße", "strasse", "ort",
	"green_space", "location", "date", "time",
	// comments and remarks
	"bemerkung", "bemerk", "kommentar",
	"comment", "comments", "remark",
	"note", "notes", "notiz", "notizen",
	// media
	"foto", "anhang", "attachment", "image", "bild",
	// coordinates
	"koordinat", "coord",
}

func init() {
	for _, name := range normalize.CoordNames() {
		ignoredTargets[name] = true
	}
}

// ShouldTrack reports whether a value without a value table entry is
// worth reporting. Empty values, boolean literals, plain integers, dates
// and timestamps are never reported, nor is anything stored under a
// target field that holds free data.
func ShouldTrack(target, raw string) bool {
	v := strings.TrimSpace(raw)
	if v == "" {
		return false
	}

	if booleanLiterals[strings.ToLower(v)] {
		return false
	}

	if integerRe.MatchString(v) {
		return false
	}

	if isoTimestampRe.MatchString(v) || slashTimestampRe.MatchString(v) || dateRe.MatchString(v) {
		return false
	}

	tk := strings.ToLower(strings.TrimSpace(target))
	if ignoredTargets[tk] {
		return false
	}

	for _, sub := range ignoredSubstrings {
		if strings.Contains(tk, sub) {
			return false
		}
	}

	return true
}
