// Package profile tells the two cadastre export schemas apart and carries
// everything that differs between them: mapping file names and the rule
// used to collect remediation measures.
package profile

import (
	"fmt"
	"path/filepath"
	"strings"
)

//go:generate go tool stringer -type=Profile -linecomment -output=profile_string.go

// Profile identifies the schema version of a cadastre export.
type Profile int

const (
	_ Profile = iota // zero value is no profile

	BK3 // bk3
	BK4 // bk4
)

// MeasureRouting selects how measure columns are collected.
type MeasureRouting int

const (
	// SlotRouting pairs measures_N with measures_N_urgency (BK3).
	SlotRouting MeasureRouting = iota + 1
	// NamedRouting reads the urgency from the column name,
	// e.g. massnahme_hoch (BK4).
	NamedRouting
)

// bk3Prefix marks control columns that only BK3 exports carry.
const bk3Prefix = "Kontrollen_"

var bk3Markers = map[string]bool{
	"Kontrollen_zustand":        true,
	"Kontrollen_vitalitaet":     true,
	"Kontrollen_massnahme1":     true,
	"Kontrollen_dringlichkeit1": true,
	"Kontrollen_massnahme2":     true,
	"Kontrollen_dringlichkeit2": true,
}

// Detect picks the profile from an export's header row: any Kontrollen_
// column means BK3, everything else is BK4.
func Detect(header []string) Profile {
	for _, h := range header {
		h = strings.TrimSpace(h)
		if strings.HasPrefix(h, bk3Prefix) || bk3Markers[h] {
			return BK3
		}
	}

	return BK4
}

// Parse resolves a profile name. Accepted: "bk3", "bk4",
// "baumkataster_3", "baumkataster_4", "3", "4", any case.
func Parse(name string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "bk3", "baumkataster_3", "baumkataster_bk3", "3":
		return BK3, nil
	case "bk4", "baumkataster_4", "baumkataster_bk4", "4":
		return BK4, nil
	default:
		return 0, fmt.Errorf("unknown profile %q (want bk3 or bk4)", name)
	}
}

// IsValid returns true for BK3 and BK4.
func (p Profile) IsValid() bool {
	return p == BK3 || p == BK4
}

// Routing returns the measure routing rule of the profile.
func (p Profile) Routing() MeasureRouting {
	if p == BK3 {
		return SlotRouting
	}

	return NamedRouting
}

// number is the profile's version digit.
func (p Profile) number() string {
	if p == BK3 {
		return "3"
	}

	return "4"
}

// FieldMappingCandidates lists the field mapping file names tried in dir,
// most specific first.
func (p Profile) FieldMappingCandidates(dir string) []string {
	return p.candidates(dir, "fields_mapping")
}

// ValueMappingCandidates lists the value mapping file names tried in dir,
// most specific first.
func (p Profile) ValueMappingCandidates(dir string) []string {
	return p.candidates(dir, "value_mapping")
}

func (p Profile) candidates(dir, base string) []string {
	return []string{
		filepath.Join(dir, fmt.Sprintf("%s_baumkataster_%s.csv", base, p)),
		filepath.Join(dir, fmt.Sprintf("%s_baumkataster_%s.csv", base, p.number())),
		filepath.Join(dir, base+".csv"),
	}
}
