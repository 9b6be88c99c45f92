package reshape

import (
	"sort"
	"strconv"

	"treesta-importer/internal/profile"
	"treesta-importer/internal/record"
)

// MeasureField returns the name of measure slot n (1-based).
func MeasureField(n int) string {
	return "measures_" + strconv.Itoa(n)
}

// UrgencyField returns the urgency field of measure slot n (1-based).
func UrgencyField(n int) string {
	return MeasureField(n) + "_urgency"
}

// measureBucket groups translated measures by urgency, in first-seen
// order of the urgencies.
type measureBucket struct {
	urgencies []string
	measures  map[string][]string
}

func newMeasureBucket() *measureBucket {
	return &measureBucket{measures: make(map[string][]string)}
}

func (b *measureBucket) add(urgency, measure string) {
	if _, ok := b.measures[urgency]; !ok {
		b.urgencies = append(b.urgencies, urgency)
	}

	b.measures[urgency] = append(b.measures[urgency], measure)
}

// measureSlot is one compacted output slot.
type measureSlot struct {
	urgency string
	braced  string
}

// slots orders the urgency groups by policy rank and drops groups
// without any measure text.
func (b *measureBucket) slots(policy profile.Policy) []measureSlot {
	urgencies := make([]string, len(b.urgencies))
	copy(urgencies, b.urgencies)

	sort.SliceStable(urgencies, func(i, j int) bool {
		return policy.Rank(urgencies[i]) < policy.Rank(urgencies[j])
	})

	out := make([]measureSlot, 0, len(urgencies))

	for _, u := range urgencies {
		if braced := Braced(b.measures[u]); braced != "" {
			out = append(out, measureSlot{urgency: u, braced: braced})
		}
	}

	return out
}

// flush clears every measure slot in dst and writes the compacted groups
// from slot 1 on. Groups beyond the policy's slot count are dropped.
func (b *measureBucket) flush(dst record.Row, policy profile.Policy) {
	for n := 1; n <= profile.MaxSlots; n++ {
		delete(dst, MeasureField(n))
		delete(dst, UrgencyField(n))
	}

	for i, slot := range b.slots(policy) {
		n := i + 1
		if n > policy.MaxMeasureSlots {
			break
		}

		dst[MeasureField(n)] = slot.braced
		dst[UrgencyField(n)] = slot.urgency
	}
}
