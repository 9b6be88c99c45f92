package reshape

import (
	"regexp"
	"strings"

	"treesta-importer/internal/diagnostic"
	"treesta-importer/internal/mapping"
	"treesta-importer/internal/normalize"
	"treesta-importer/internal/profile"
	"treesta-importer/internal/record"
)

// Target fields with special handling.
const (
	SpeciesField   = "species"
	ConditionField = "condition"
	VitalityField  = "vitality"
)

// slotMeasureRe matches a BK3 measure slot and captures its number.
var slotMeasureRe = regexp.MustCompile(`^measures_(\d+)$`)

// aggregateTargets collect values from several source columns.
var aggregateTargets = map[string]bool{
	"restriction":                    true,
	"features_crown":                 true,
	"features_trunk":                 true,
	"features_trunkbase_root_collar": true,
	"features_root_surroundings":     true,
	"habitat_structure_canopy":       true,
	"habitat_species_canopy":         true,
	"habitat_structure_trunk":        true,
	"habitat_species_trunk":          true,
}

// aliasTargets fold the two condition/vitality column families into one
// target field.
var aliasTargets = map[string]string{
	"Kontrollen_zustand":    ConditionField,
	"zustand":               ConditionField,
	"Kontrollen_vitalitaet": VitalityField,
	"vitalitaet":            VitalityField,
}

// targetPriority ranks the sources of each aliased field; 0 is the most
// trusted.
var targetPriority = map[string]map[string]int{
	ConditionField: {"Kontrollen_zustand": 0, "zustand": 1},
	VitalityField:  {"Kontrollen_vitalitaet": 0, "vitalitaet": 1},
}

const (
	// unrankedSource is the priority of a source missing from targetPriority.
	unrankedSource = 99
	// unsetPriority is the priority of a field nothing was written to yet.
	unsetPriority = 999
)

// speciesFallbacks are raw columns read for species when no mapped
// column supplied one.
var speciesFallbacks = []string{"baumart", "art", "species"}

// IsAggregateTarget reports whether field collects values from several
// columns.
func IsAggregateTarget(field string) bool {
	return aggregateTargets[field]
}

// Transformer reshapes records of one profile. It keeps no per-record
// state, so one Transformer serves a whole run.
type Transformer struct {
	profile    profile.Profile
	fields     *mapping.FieldMapping
	translator *mapping.Translator
	policy     profile.Policy
}

// New creates a Transformer. Misses are reported to sink.
func New(p profile.Profile, tables *mapping.Tables, sink diagnostic.Sink, policy profile.Policy) *Transformer {
	return &Transformer{
		profile:    p,
		fields:     tables.Fields,
		translator: mapping.NewTranslator(tables.Values, sink),
		policy:     policy,
	}
}

// rowState is the transient state built while one record is reshaped.
type rowState struct {
	src        *record.Record
	dst        record.Row
	priorities map[string]int
	aggregates *aggregateBuffer
	measures   *measureBucket
}

// TransformAll reshapes every record in order.
func (t *Transformer) TransformAll(records []*record.Record) []record.Row {
	rows := make([]record.Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, t.Transform(rec))
	}

	return rows
}

// Transform reshapes a single record.
func (t *Transformer) Transform(src *record.Record) record.Row {
	st := &rowState{
		src:        src,
		dst:        make(record.Row),
		priorities: make(map[string]int),
		aggregates: newAggregateBuffer(),
		measures:   newMeasureBucket(),
	}

	for _, f := range src.Fields() {
		t.route(st, f.Name, f.Value)
	}

	st.aggregates.flush(st.dst)
	st.measures.flush(st.dst, t.policy)

	if !st.dst.Has(SpeciesField) {
		for _, alt := range speciesFallbacks {
			if v, ok := src.Get(alt); ok && v != "" {
				st.dst[SpeciesField] = normalize.Species(v)
				break
			}
		}
	}

	return st.dst
}

// route sends one input cell down its route.
func (t *Transformer) route(st *rowState, oldKey, raw string) {
	newKey, ok := t.fields.Target(oldKey)
	if !ok || newKey == "" {
		if !normalize.IsCoordName(oldKey) {
			return
		}

		newKey = oldKey
	}

	val := strings.TrimSpace(raw)

	switch t.profile.Routing() {
	case profile.SlotRouting:
		if t.routeSlotMeasure(st, newKey, val) {
			return
		}
	case profile.NamedRouting:
		if t.routeSlotMeasure(st, newKey, val) || t.routeNamedMeasure(st, newKey, val) {
			return
		}
	}

	if aggregateTargets[newKey] {
		st.aggregates.add(newKey, t.translator.Map(val, newKey))
		return
	}

	if normalize.IsCoordName(newKey) || normalize.IsCoordName(oldKey) {
		st.dst[newKey] = val
		return
	}

	if newKey == SpeciesField {
		st.dst[newKey] = normalize.Species(val)
		return
	}

	if alias, ok := aliasTargets[newKey]; ok {
		t.writeRanked(st, alias, newKey, val)
		return
	}

	if newKey == ConditionField || newKey == VitalityField {
		t.writeRanked(st, newKey, newKey, val)
		return
	}

	mapped := t.translator.Map(val, newKey)
	if !st.dst.Has(newKey) {
		st.dst[newKey] = normalize.Boolean(mapped)
	}
}

// routeSlotMeasure collects measures_N together with the urgency found in
// the column mapped to measures_N_urgency. Both profiles accept slot
// columns; BK4 additionally reads urgency-named columns.
func (t *Transformer) routeSlotMeasure(st *rowState, newKey, val string) bool {
	m := slotMeasureRe.FindStringSubmatch(newKey)
	if m == nil {
		return false
	}

	urgencyKey := "measures_" + m[1] + "_urgency"

	urgencyRaw := ""
	if source, ok := t.fields.Source(urgencyKey); ok {
		v, _ := st.src.Get(source)
		urgencyRaw = strings.TrimSpace(v)
	}

	urgency := t.translator.Map(urgencyRaw, urgencyKey)
	measure := t.translator.Map(val, newKey)
	st.measures.add(urgency, measure)

	return true
}

// routeNamedMeasure collects a BK4 measure whose urgency is part of the
// column name. Remark, date and name side columns are dropped.
func (t *Transformer) routeNamedMeasure(st *rowState, newKey, val string) bool {
	if !t.policy.IsMeasureColumn(newKey) {
		return false
	}

	if label, ok := t.policy.NamedUrgency(newKey); ok {
		urgency := t.translator.Map(label, "measures_urgency")
		if urgency == "" {
			urgency = label
		}

		st.measures.add(urgency, t.translator.Map(val, "measures"))

		return true
	}

	return t.policy.IsRemarkColumn(newKey)
}

// writeRanked writes an aliased field, letting a more trusted source
// overwrite a less trusted one. An empty translation never writes.
func (t *Transformer) writeRanked(st *rowState, target, sourceKey, val string) {
	if target == VitalityField {
		val = normalize.StripNumericPrefix(val)
	}

	mapped := t.translator.Map(val, target)
	if mapped == "" {
		return
	}

	incoming, ok := targetPriority[target][sourceKey]
	if !ok {
		incoming = unrankedSource
	}

	current, ok := st.priorities[target]
	if !ok {
		current = unsetPriority
	}

	if incoming < current || !st.dst.Has(target) {
		st.dst[target] = normalize.Boolean(mapped)
		st.priorities[target] = incoming
	}
}
