// Package convert runs a whole conversion: it detects the profile of a
// cadastre export, loads the matching mapping tables, reshapes every
// record and writes the Treesta import file plus the unmapped value
// report.
package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"treesta-importer/internal/csvio"
	"treesta-importer/internal/diagnostic"
	"treesta-importer/internal/mapping"
	"treesta-importer/internal/match"
	"treesta-importer/internal/profile"
	"treesta-importer/internal/reshape"
)

// ErrEmptyInput is returned for an input file without a header row.
var ErrEmptyInput = errors.New("input file has no header row")

// Result describes a finished run.
type Result struct {
	RunID   string
	Profile profile.Profile

	FieldsMappingPath string
	ValuesMappingPath string

	OutputPath string
	// ReportPath is empty when every value was mapped.
	ReportPath string

	Columns  []string
	Rows     int
	Unmapped []string
}

// Run converts opts.InputPath. Nothing is written unless the whole input
// was read and transformed; the import file is replaced atomically.
func Run(opts Options) (*Result, error) {
	opts.applyDefaults()

	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	res := &Result{RunID: uuid.NewString()}
	log := opts.Logger.WithFields(logrus.Fields{
		"run":   res.RunID,
		"input": opts.InputPath,
	})

	enc, err := csvio.LookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}

	header, err := csvio.ReadHeader(opts.InputPath, enc)
	if err != nil {
		return nil, err
	}

	if len(header) == 0 {
		return nil, ErrEmptyInput
	}

	res.Profile = opts.Profile
	if res.Profile.IsValid() {
		log.WithField("profile", res.Profile).Info("using profile override")
	} else {
		res.Profile = profile.Detect(header)
		log.WithField("profile", res.Profile).Info("detected profile")
	}

	if res.Profile == profile.BK4 && opts.Policy.OptionalIsDowngraded() {
		u, _ := opts.Policy.NamedUrgency(opts.Policy.MeasurePrefix + "optional")
		log.WithField("urgency", u).Warn("massnahme_optional is not filed as optional; confirm the policy")
	}

	res.FieldsMappingPath, res.ValuesMappingPath, err = ResolveMappingFiles(opts, res.Profile)
	if err != nil {
		return nil, err
	}

	tables, err := mapping.LoadTables(res.FieldsMappingPath, res.ValuesMappingPath)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"fields_mapping": res.FieldsMappingPath,
		"fields":         tables.Fields.Len(),
		"values_mapping": res.ValuesMappingPath,
		"values":         tables.Values.Len(),
	}).Debug("loaded mapping tables")

	_, records, err := csvio.ReadRecords(opts.InputPath, enc)
	if err != nil {
		return nil, err
	}

	log.WithField("records", len(records)).Info("read input")

	unmapped := diagnostic.NewUnmapped()
	rows := reshape.New(res.Profile, tables, unmapped, opts.Policy).TransformAll(records)

	res.Rows = len(rows)
	res.Columns = reshape.Columns(tables.Fields.TargetOrder(), rows)
	res.Unmapped = unmapped.Values()

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = filepath.Dir(opts.InputPath)
	}

	res.OutputPath = filepath.Join(outDir, opts.OutputName)

	if err := csvio.WriteRows(res.OutputPath, res.Columns, rows); err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"output":  res.OutputPath,
		"rows":    res.Rows,
		"columns": len(res.Columns),
	}).Info("wrote import file")

	reportPath := filepath.Join(outDir, opts.ReportName)

	if unmapped.IsEmpty() {
		if err := csvio.RemoveIfExists(reportPath); err != nil {
			return nil, err
		}

		return res, nil
	}

	if err := csvio.WriteFileAtomic(reportPath, unmapped.WriteReport); err != nil {
		return nil, err
	}

	res.ReportPath = reportPath

	log.WithFields(logrus.Fields{
		"report":   reportPath,
		"unmapped": unmapped.Len(),
	}).Warn("some values have no value mapping entry")

	if log.Logger.IsLevelEnabled(logrus.DebugLevel) {
		logSuggestions(log, unmapped, tables.Values)
	}

	return res, nil
}

// logSuggestions logs the closest value table keys for every miss.
func logSuggestions(log *logrus.Entry, unmapped *diagnostic.Unmapped, values *mapping.ValueMapping) {
	keys := values.Keys()

	for _, v := range unmapped.Values() {
		candidates := match.Suggest(v, keys, match.DefaultMinScore, match.DefaultMaxSuggestions)
		if len(candidates) == 0 {
			continue
		}

		names := make([]string, len(candidates))
		for i, c := range candidates {
			names[i] = fmt.Sprintf("%s (%.2f)", c.Key, c.Score)
		}

		log.WithFields(logrus.Fields{
			"value":       v,
			"target":      unmapped.Target(v),
			"suggestions": names,
		}).Debug("unmapped value resembles known keys")
	}
}

// ResolveMappingFiles returns the field and value mapping paths for a run.
// Explicit paths are used as given; otherwise the first existing
// candidate in opts.MappingsDir wins.
func ResolveMappingFiles(opts Options, p profile.Profile) (string, string, error) {
	if opts.FieldsMappingPath != "" {
		return opts.FieldsMappingPath, opts.ValuesMappingPath, nil
	}

	dir := opts.MappingsDir
	if dir == "" {
		dir = "."
	}

	fields, err := firstExisting(mapping.FieldTable, p.FieldMappingCandidates(dir))
	if err != nil {
		return "", "", err
	}

	values, err := firstExisting(mapping.ValueTable, p.ValueMappingCandidates(dir))
	if err != nil {
		return "", "", err
	}

	return fields, values, nil
}

func firstExisting(kind string, candidates []string) (string, error) {
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}

	return "", &csvio.NotFoundError{Kind: kind, Path: candidates[0]}
}

// DetectFile reads the header of the file at path and returns its profile.
func DetectFile(path, encodingName string) (profile.Profile, error) {
	enc, err := csvio.LookupEncoding(encodingName)
	if err != nil {
		return 0, err
	}

	header, err := csvio.ReadHeader(path, enc)
	if err != nil {
		return 0, err
	}

	if len(header) == 0 {
		return 0, ErrEmptyInput
	}

	return profile.Detect(header), nil
}
