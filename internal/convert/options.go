package convert

import (
	"errors"
	"io"
	"strings"

	"github.com/sirupsen/logrus"

	"treesta-importer/internal/csvio"
	"treesta-importer/internal/profile"
)

// Default output file names.
const (
	DefaultOutputName = "treesta_import.csv"
	DefaultReportName = "unmapped_values.txt"
)

// Options configures a conversion run.
type Options struct {
	// InputPath is the cadastre export to convert.
	InputPath string

	// FieldsMappingPath and ValuesMappingPath name the mapping tables
	// explicitly. Both or neither must be set; when neither is, the tables
	// are looked up in MappingsDir by profile.
	FieldsMappingPath string
	ValuesMappingPath string

	// MappingsDir is searched for profile-specific mapping tables.
	MappingsDir string

	// Profile overrides detection when valid.
	Profile profile.Profile

	// OutputDir receives the import file and the report. Empty means the
	// input file's directory.
	OutputDir  string
	OutputName string
	ReportName string

	// Encoding of the input file, e.g. "utf-8" or "windows-1252".
	Encoding string

	Policy profile.Policy

	// Logger receives progress and diagnostics. Nil discards them.
	Logger *logrus.Logger
}

// DefaultOptions returns options for a run in the current directory with
// auto-detected profile and mapping tables.
func DefaultOptions() Options {
	return Options{
		MappingsDir: ".",
		OutputName:  DefaultOutputName,
		ReportName:  DefaultReportName,
		Encoding:    csvio.DefaultEncoding,
		Policy:      profile.DefaultPolicy(),
	}
}

// Validate checks the options before any file is touched.
func (o Options) Validate() error {
	if strings.TrimSpace(o.InputPath) == "" {
		return errors.New("input path is required")
	}

	if (o.FieldsMappingPath == "") != (o.ValuesMappingPath == "") {
		return errors.New("field and value mapping paths must be given together")
	}

	if o.Profile != 0 && !o.Profile.IsValid() {
		return errors.New("invalid profile override")
	}

	return o.Policy.Validate()
}

// applyDefaults fills unset fields with the DefaultOptions values.
func (o *Options) applyDefaults() {
	defaults := DefaultOptions()

	if o.MappingsDir == "" {
		o.MappingsDir = defaults.MappingsDir
	}

	if o.OutputName == "" {
		o.OutputName = defaults.OutputName
	}

	if o.ReportName == "" {
		o.ReportName = defaults.ReportName
	}

	if o.Encoding == "" {
		o.Encoding = defaults.Encoding
	}

	if o.Policy.NamedMeasures == nil && o.Policy.UrgencyOrder == nil && o.Policy.MaxMeasureSlots == 0 {
		o.Policy = defaults.Policy
	}

	if o.Logger == nil {
		o.Logger = discardLogger()
	}
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}
