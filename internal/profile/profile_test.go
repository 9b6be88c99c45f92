package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		header   []string
		expected Profile
	}{
		{"control column", []string{"id", "baumart", "Kontrollen_zustand"}, BK3},
		{"any Kontrollen prefix", []string{"id", "Kontrollen_datum"}, BK3},
		{"padded marker", []string{" Kontrollen_vitalitaet "}, BK3},
		{"no control columns", []string{"id", "baumart", "zustand", "massnahme_hoch"}, BK4},
		{"lowercase prefix is not BK3", []string{"kontrollen_zustand"}, BK4},
		{"empty header", nil, BK4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Detect(tt.header))
		})
	}
}

func TestParse(t *testing.T) {
	for _, name := range []string{"bk3", "BK3", "baumkataster_3", "3"} {
		p, err := Parse(name)
		require.NoError(t, err, name)
		assert.Equal(t, BK3, p)
	}

	for _, name := range []string{"bk4", " Baumkataster_4 ", "4"} {
		p, err := Parse(name)
		require.NoError(t, err, name)
		assert.Equal(t, BK4, p)
	}

	_, err := Parse("bk5")
	require.Error(t, err)
}

func TestString(t *testing.T) {
	assert.Equal(t, "bk3", BK3.String())
	assert.Equal(t, "bk4", BK4.String())
	assert.Equal(t, "Profile(0)", Profile(0).String())
	assert.False(t, Profile(0).IsValid())
}

func TestRouting(t *testing.T) {
	assert.Equal(t, SlotRouting, BK3.Routing())
	assert.Equal(t, NamedRouting, BK4.Routing())
}

func TestMappingCandidates(t *testing.T) {
	assert.Equal(t, []string{
		filepath.Join("maps", "fields_mapping_baumkataster_bk3.csv"),
		filepath.Join("maps", "fields_mapping_baumkataster_3.csv"),
		filepath.Join("maps", "fields_mapping.csv"),
	}, BK3.FieldMappingCandidates("maps"))

	assert.Equal(t, []string{
		filepath.Join("maps", "value_mapping_baumkataster_bk4.csv"),
		filepath.Join("maps", "value_mapping_baumkataster_4.csv"),
		filepath.Join("maps", "value_mapping.csv"),
	}, BK4.ValueMappingCandidates("maps"))
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	require.NoError(t, p.Validate())

	assert.Equal(t, 0, p.Rank("high"))
	assert.Equal(t, 1, p.Rank("mittel"))
	assert.Equal(t, 2, p.Rank("niedrig"))
	assert.Equal(t, 3, p.Rank("optional"))
	assert.Equal(t, 4, p.Rank(""))
	assert.Equal(t, UnknownUrgencyRank, p.Rank("whenever"))

	u, ok := p.NamedUrgency("Massnahme_Sofort")
	assert.True(t, ok)
	assert.Equal(t, "high", u)

	_, ok = p.NamedUrgency("massnahme_hoch_bemerkung")
	assert.False(t, ok)

	assert.True(t, p.IsMeasureColumn("MASSNAHME_hoch_datum"))
	assert.True(t, p.IsRemarkColumn("massnahme_hoch_Bemerkung"))
	assert.False(t, p.IsRemarkColumn("massnahme_hoch"))

	assert.True(t, p.OptionalIsDowngraded())
}

func TestParsePolicyOverrides(t *testing.T) {
	data := []byte(`
named_measures:
  Massnahme_Optional: optional
  massnahme_hoch: high
max_measure_slots: 3
`)

	p, err := ParsePolicy(data)
	require.NoError(t, err)

	assert.Equal(t, "massnahme_", p.MeasurePrefix)
	assert.Equal(t, 3, p.MaxMeasureSlots)
	assert.Len(t, p.NamedMeasures, 2)
	assert.False(t, p.OptionalIsDowngraded())

	// Untouched sections keep their defaults.
	assert.Equal(t, 0, p.Rank("high"))
}

func TestParsePolicyInvalid(t *testing.T) {
	_, err := ParsePolicy([]byte("max_measure_slots: 9\n"))
	require.Error(t, err)

	_, err = ParsePolicy([]byte("named_measures: [oops\n"))
	require.Error(t, err)
}

func TestParsePolicyPrefixMustCoverNamedMeasures(t *testing.T) {
	_, err := ParsePolicy([]byte("measure_prefix: mn_\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not start with measure_prefix")

	p, err := ParsePolicy([]byte(`
measure_prefix: mn_
named_measures:
  MN_Hoch: high
  mn_optional: optional
`))
	require.NoError(t, err)

	u, ok := p.NamedUrgency("mn_hoch")
	assert.True(t, ok)
	assert.Equal(t, "high", u)
	assert.False(t, p.OptionalIsDowngraded())
}

func TestLoadPolicyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte("urgency_order:\n  high: 0\n  low: 1\n"), 0o644))

	p, err := LoadPolicyFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Rank("low"))
	assert.Equal(t, UnknownUrgencyRank, p.Rank("normal"))

	_, err = LoadPolicyFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
