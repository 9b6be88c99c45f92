package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"treesta-importer/internal/diagnostic"
)

// recordingSink remembers every miss without filtering.
type recordingSink struct {
	misses [][2]string
}

func (s *recordingSink) Add(target, value string) {
	s.misses = append(s.misses, [2]string{target, value})
}

func testValues() *ValueMapping {
	return NewValueMapping(
		[2]string{"a", "A"},
		[2]string{"b", "B"},
		[2]string{"gut", "good"},
		[2]string{"1234", "X"},
		[2]string{"12 Totholz", "deadwood"},
		[2]string{"34 Zwiesel", "fork"},
		[2]string{"Totholz, Zwiesel", "deadwood and fork"},
	)
}

func TestMapValuePlain(t *testing.T) {
	sink := &recordingSink{}
	values := testValues()

	assert.Equal(t, "good", MapValue("gut", values, sink, "condition"))
	assert.Equal(t, "good", MapValue("  gut ", values, sink, "condition"))
	assert.Empty(t, sink.misses)

	assert.Equal(t, "schlecht", MapValue(" schlecht ", values, sink, "condition"))
	assert.Equal(t, [][2]string{{"condition", "schlecht"}}, sink.misses)
}

func TestMapValueEmpty(t *testing.T) {
	sink := &recordingSink{}

	assert.Equal(t, "", MapValue("", testValues(), sink, "condition"))
	assert.Equal(t, "", MapValue("   ", testValues(), sink, "condition"))
	assert.Empty(t, sink.misses)
}

func TestMapValueCompound(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		misses   []string
	}{
		{"parts in order", "{a, b}", "{A, B}", nil},
		{"whole inner first", "{Totholz, Zwiesel}", "{deadwood and fork}", nil},
		{"comma stripped match", "{1,234}", "{X}", nil},
		{"numeric split", "{12 Totholz, 34 Zwiesel}", "{deadwood, fork}", nil},
		{"split keeps order", "{34 Zwiesel, 12 Totholz}", "{fork, deadwood}", nil},
		{"single unknown", "{Pilz}", "{Pilz}", []string{"Pilz"}},
		{"number with comma unknown", "{5,678}", "{5,678}", []string{"5,678"}},
		{"partial miss", "{12 Totholz, 56 Pilz}", "{deadwood, 56 Pilz}", []string{"56 Pilz"}},
		{"padded inner", "{  a  }", "{A}", nil},
		{"bare braces", "{}", "{}", nil},
		{"lone brace", "{", "{", []string{"{"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &recordingSink{}

			assert.Equal(t, tt.expected, MapValue(tt.input, testValues(), sink, "features_crown"))

			var misses []string
			for _, m := range sink.misses {
				misses = append(misses, m[1])
			}

			assert.Equal(t, tt.misses, misses)
		})
	}
}

func TestMapValueNoSplitWithoutDigits(t *testing.T) {
	// ", b" is not followed by digits, so the inner text stays one part.
	sink := &recordingSink{}

	assert.Equal(t, "{a, b, c}", MapValue("{a, b, c}", NewValueMapping(), sink, "restriction"))
	assert.Len(t, sink.misses, 1)
}

func TestSplitCompound(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"12 Totholz", []string{"12 Totholz"}},
		{"12 Totholz, 34 Zwiesel", []string{"12 Totholz", "34 Zwiesel"}},
		{"12 a, 34 b, 56 c", []string{"12 a", "34 b", "56 c"}},
		{"1,234", []string{"1,234"}},
		{"a, 5 b", []string{"a, 5 b"}},
		{"a,  78 b", []string{"a", "78 b"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitCompound(tt.input))
		})
	}
}

func TestTranslatorFiltersNoiseThroughUnmapped(t *testing.T) {
	unmapped := diagnostic.NewUnmapped()
	tr := NewTranslator(testValues(), unmapped)

	tr.Map("Baum steht schief", "kontrolle_kommentar")
	tr.Map("IMG_0001.jpg", "foto")
	tr.Map("nicht verkehrssicher", "tree_safety")
	tr.Map("{12 Totholz, 99 Pilz}", "features_crown")

	assert.Equal(t, []string{"99 Pilz", "nicht verkehrssicher"}, unmapped.Values())
}

func TestTranslatorNilSink(t *testing.T) {
	tr := NewTranslator(testValues(), nil)

	assert.Equal(t, "unknown", tr.Map("unknown", "condition"))
}

func TestMapValueIsDeterministic(t *testing.T) {
	values := testValues()

	for range 3 {
		assert.Equal(t, "{A, B}", MapValue("{a, b}", values, nil, "restriction"))
	}
}
