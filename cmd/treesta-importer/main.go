// Package main provides the CLI entrypoint for treesta-importer.
//
// treesta-importer converts Baumkataster tree cadastre exports (BK3 and
// BK4) into Treesta import files:
//   - Detects the export's schema version from its header row
//   - Renames and translates columns through editable mapping tables
//   - Writes treesta_import.csv and a report of untranslated values
package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"treesta-importer/internal/convert"
	"treesta-importer/internal/profile"
)

type rootOptions struct {
	logLevel string
}

type convertOptions struct {
	fieldsMapping string
	valuesMapping string
	mappingsDir   string
	profile       string
	outputDir     string
	encoding      string
	policyPath    string
	debugPolicy   bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var root rootOptions

	cmd := &cobra.Command{
		Use:           "treesta-importer",
		Short:         "Convert Baumkataster exports into Treesta import files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&root.logLevel, "log-level", "info", "Log level: debug, info, warn, error")

	cmd.AddCommand(newConvertCmd(&root), newDetectCmd())

	return cmd
}

func newLogger(level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	return logger, nil
}

func newConvertCmd(root *rootOptions) *cobra.Command {
	opts := convertOptions{
		mappingsDir: ".",
		encoding:    "utf-8",
	}

	cmd := &cobra.Command{
		Use:   "convert <input.csv>",
		Short: "Convert a cadastre export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(root.logLevel)
			if err != nil {
				return err
			}

			return runConvert(cmd, logger, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.fieldsMapping, "fields-mapping", "", "Field mapping table (requires --values-mapping)")
	cmd.Flags().StringVar(&opts.valuesMapping, "values-mapping", "", "Value mapping table (requires --fields-mapping)")
	cmd.Flags().StringVar(&opts.mappingsDir, "mappings-dir", opts.mappingsDir, "Directory searched for profile mapping tables")
	cmd.Flags().StringVar(&opts.profile, "profile", "", "Profile override: bk3 or bk4 (default: detect)")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "Output directory (default: input directory)")
	cmd.Flags().StringVar(&opts.encoding, "encoding", opts.encoding, "Input encoding, e.g. utf-8 or windows-1252")
	cmd.Flags().StringVar(&opts.policyPath, "policy", "", "YAML file overriding the measure policy")
	cmd.Flags().BoolVar(&opts.debugPolicy, "debug-policy", false, "Dump the effective measure policy")

	cmd.MarkFlagsRequiredTogether("fields-mapping", "values-mapping")

	return cmd
}

func runConvert(cmd *cobra.Command, logger *logrus.Logger, input string, opts convertOptions) error {
	cfg := convert.DefaultOptions()
	cfg.InputPath = input
	cfg.FieldsMappingPath = opts.fieldsMapping
	cfg.ValuesMappingPath = opts.valuesMapping
	cfg.MappingsDir = opts.mappingsDir
	cfg.OutputDir = opts.outputDir
	cfg.Encoding = opts.encoding
	cfg.Logger = logger

	if opts.profile != "" {
		p, err := profile.Parse(opts.profile)
		if err != nil {
			return err
		}

		cfg.Profile = p
	}

	if opts.policyPath != "" {
		policy, err := profile.LoadPolicyFile(opts.policyPath)
		if err != nil {
			return err
		}

		cfg.Policy = policy
	}

	if opts.debugPolicy {
		logger.Debug("effective measure policy:\n" + spew.Sdump(cfg.Policy))
	}

	res, err := convert.Run(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Profile:  %s\n", res.Profile)
	fmt.Fprintf(out, "Rows:     %d\n", res.Rows)
	fmt.Fprintf(out, "Output:   %s\n", res.OutputPath)

	if res.ReportPath != "" {
		fmt.Fprintf(out, "Unmapped: %d values, see %s\n", len(res.Unmapped), res.ReportPath)
	}

	return nil
}

func newDetectCmd() *cobra.Command {
	var encoding string

	cmd := &cobra.Command{
		Use:   "detect <input.csv>",
		Short: "Print the profile of a cadastre export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := convert.DetectFile(args[0], encoding)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), p)

			return nil
		},
	}

	cmd.Flags().StringVar(&encoding, "encoding", "utf-8", "Input encoding")

	return cmd
}
