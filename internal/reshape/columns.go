package reshape

import (
	"sort"

	"treesta-importer/internal/common"
	"treesta-importer/internal/profile"
	"treesta-importer/internal/record"
)

// Columns decides the column order of the import file:
//  1. mapped targets, in field mapping order, that any row carries
//  2. the measure slots that any row carries, each with its urgency
//  3. every other field any row carries, alphabetically
func Columns(targetOrder []string, rows []record.Row) []string {
	present := make(map[string]bool)

	for _, row := range rows {
		for k := range row {
			present[k] = true
		}
	}

	var header []string

	for _, k := range targetOrder {
		if present[k] {
			header = append(header, k)
		}
	}

	var slots []string

	for n := 1; n <= profile.MaxSlots; n++ {
		if present[MeasureField(n)] {
			slots = append(slots, MeasureField(n), UrgencyField(n))
		}
	}

	header = common.AppendUnique(header, slots...)

	var residual []string

	for k := range present {
		if !common.Contains(header, k) {
			residual = append(residual, k)
		}
	}

	sort.Strings(residual)

	return common.AppendUnique(header, residual...)
}
