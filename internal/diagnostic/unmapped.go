package diagnostic

import (
	"bufio"
	"io"
	"sort"
)

// ReportHeader is the first line of the unmapped value report.
const ReportHeader = "Nicht gemappte Werte (value_mapping ergänzen):"

// Sink receives values that had no value table entry, together with the
// target field they were read for. Implementations decide what is noise.
type Sink interface {
	Add(target, value string)
}

// Unmapped is the run-wide set of untranslated values. It only grows.
// The zero value is ready to use.
type Unmapped struct {
	values map[string]struct{}
	// targets remembers the first target field each value was seen under.
	targets map[string]string
}

// NewUnmapped creates an empty miss set.
func NewUnmapped() *Unmapped {
	return &Unmapped{}
}

// Add records value if it passes the noise filter for target.
func (u *Unmapped) Add(target, value string) {
	if !ShouldTrack(target, value) {
		return
	}

	if u.values == nil {
		u.values = make(map[string]struct{})
		u.targets = make(map[string]string)
	}

	if _, ok := u.values[value]; ok {
		return
	}

	u.values[value] = struct{}{}
	u.targets[value] = target
}

// Has reports whether value was recorded.
func (u *Unmapped) Has(value string) bool {
	_, ok := u.values[value]
	return ok
}

// Target returns the target field value was first seen under.
func (u *Unmapped) Target(value string) string {
	return u.targets[value]
}

// Len returns the number of distinct values.
func (u *Unmapped) Len() int {
	return len(u.values)
}

// IsEmpty returns true if nothing was recorded.
func (u *Unmapped) IsEmpty() bool {
	return len(u.values) == 0
}

// Values returns the recorded values in byte order.
func (u *Unmapped) Values() []string {
	out := make([]string, 0, len(u.values))
	for v := range u.values {
		out = append(out, v)
	}

	sort.Strings(out)

	return out
}

// WriteReport writes the header line followed by one value per line.
func (u *Unmapped) WriteReport(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.WriteString(ReportHeader + "\n"); err != nil {
		return err
	}

	for _, v := range u.Values() {
		if _, err := bw.WriteString(v + "\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}
