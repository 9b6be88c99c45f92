// Package record holds the row shapes that flow through the converter:
// an ordered input Record read from the export and the Row produced for
// the import file.
package record

// Field is a single named cell of an input record.
type Field struct {
	Name  string
	Value string
}

// Record is one input row. Field order follows the input header.
type Record struct {
	fields []Field
	index  map[string]int
}

// New creates an empty record.
func New() *Record {
	return &Record{index: make(map[string]int)}
}

// FromPairs builds a record from alternating name/value arguments.
// A trailing name without a value gets an empty value.
func FromPairs(pairs ...string) *Record {
	r := New()

	for i := 0; i < len(pairs); i += 2 {
		value := ""
		if i+1 < len(pairs) {
			value = pairs[i+1]
		}

		r.Set(pairs[i], value)
	}

	return r
}

// Set stores a value. A name that is already present keeps its position
// and takes the new value.
func (r *Record) Set(name, value string) {
	if i, ok := r.index[name]; ok {
		r.fields[i].Value = value
		return
	}

	r.index[name] = len(r.fields)
	r.fields = append(r.fields, Field{Name: name, Value: value})
}

// Get returns the value stored under name.
func (r *Record) Get(name string) (string, bool) {
	i, ok := r.index[name]
	if !ok {
		return "", false
	}

	return r.fields[i].Value, true
}

// Fields returns the cells in column order.
func (r *Record) Fields() []Field {
	return r.fields
}

// Len returns the number of cells.
func (r *Record) Len() int {
	return len(r.fields)
}

// Row is one output row keyed by target field name. Column order is
// decided once for the whole file, so a map is enough here.
type Row map[string]string

// Has reports whether the row carries a non-empty value for name.
func (r Row) Has(name string) bool {
	return r[name] != ""
}
