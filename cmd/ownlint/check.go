package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ownlint/internal/diag"
	"ownlint/internal/diagfmt"
	"ownlint/internal/driver"
	"ownlint/internal/project"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [<doc|directory>]",
	Short: "Validate ownership annotations in declaration documents",
	Long: `Validate the ownership graph of one declaration document or of every
document (*.yaml, *.yml, *.toml) within a directory. Without an argument the
inputs come from the ownlint.toml manifest.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

// init registers CLI flags for the check command used by runCheck.
func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json|short)")
	checkCmd.Flags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory runs (0=auto)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("disk-cache", false, "enable persistent disk cache for parsed documents")
	checkCmd.Flags().Bool("ui", false, "show interactive progress for directory runs")
	checkCmd.Flags().Int("max-value-depth", 0, "value-type flattening depth cap (0=default)")
}

type checkSettings struct {
	format           string
	noWarnings       bool
	warningsAsErrors bool
	withNotes        bool
	useUI            bool
	quiet            bool
	color            bool
	opts             driver.Options
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	settings, err := collectCheckSettings(cmd)
	if err != nil {
		return err
	}

	inputs, err := resolveInputs(cmd, args, &settings)
	if err != nil {
		return err
	}

	var results []driver.DocumentResult
	for _, input := range inputs {
		part, err := runCheckInput(cmd, input, settings)
		if err != nil {
			return err
		}
		results = append(results, part...)
	}

	bag := driver.MergeBags(results)
	bag = applySeverityPolicy(bag, settings)

	if err := renderBag(cmd, bag, settings); err != nil {
		return err
	}
	if !settings.quiet && settings.format == "pretty" {
		total := 0
		for _, res := range results {
			total += res.Decls
		}
		fmt.Fprintf(cmd.OutOrStdout(), "checked %d declaration(s) in %d document(s)\n", total, len(results))
	}

	if bag.HasErrors() {
		os.Exit(1)
	}
	return nil
}

func collectCheckSettings(cmd *cobra.Command) (checkSettings, error) {
	var s checkSettings

	s.format, _ = cmd.Flags().GetString("format")
	switch s.format {
	case "pretty", "json", "short":
	default:
		return s, fmt.Errorf("unsupported format %q (must be pretty, json or short)", s.format)
	}

	s.noWarnings, _ = cmd.Flags().GetBool("no-warnings")
	s.warningsAsErrors, _ = cmd.Flags().GetBool("warnings-as-errors")
	s.withNotes, _ = cmd.Flags().GetBool("with-notes")
	s.useUI, _ = cmd.Flags().GetBool("ui")
	s.quiet, _ = cmd.Flags().GetBool("quiet")

	colorMode, _ := cmd.Flags().GetString("color")
	s.color = colorEnabled(colorMode, os.Stdout)

	s.opts.MaxDiagnostics, _ = cmd.Flags().GetInt("max-diagnostics")
	s.opts.MaxValueDepth, _ = cmd.Flags().GetInt("max-value-depth")
	s.opts.Jobs, _ = cmd.Flags().GetInt("jobs")

	if useCache, _ := cmd.Flags().GetBool("disk-cache"); useCache {
		cache, err := driver.OpenDiskCache("ownlint")
		if err != nil {
			return s, fmt.Errorf("open disk cache: %w", err)
		}
		s.opts.Cache = cache
	}
	return s, nil
}

// resolveInputs picks the documents to check: the positional argument when
// given, otherwise the manifest's [inputs] section. The manifest's [check]
// section fills in whatever flags the user did not set explicitly.
func resolveInputs(cmd *cobra.Command, args []string, s *checkSettings) ([]string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	manifest, err := project.FindManifest(cwd)
	if err != nil && !errors.Is(err, project.ErrNoManifest) {
		return nil, err
	}
	haveManifest := err == nil

	if haveManifest {
		if !cmd.Flags().Changed("max-diagnostics") && manifest.Check.MaxDiagnostics > 0 {
			s.opts.MaxDiagnostics = manifest.Check.MaxDiagnostics
		}
		if !cmd.Flags().Changed("warnings-as-errors") {
			s.warningsAsErrors = manifest.Check.WarningsAsErrors
		}
		if !cmd.Flags().Changed("no-warnings") {
			s.noWarnings = manifest.Check.NoWarnings
		}
	}

	if len(args) == 1 {
		return args[:1], nil
	}
	if haveManifest && len(manifest.Inputs) > 0 {
		return manifest.ResolveInputs(), nil
	}
	return nil, errors.New("no input: pass a document or directory, or list inputs in ownlint.toml")
}

func runCheckInput(cmd *cobra.Command, input string, settings checkSettings) ([]driver.DocumentResult, error) {
	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}
	if info.IsDir() && settings.useUI && isTerminal(os.Stdout) {
		return runCheckDirWithUI(cmd.Context(), "checking "+input, input, settings.opts)
	}
	return driver.CheckPath(cmd.Context(), input, settings.opts)
}

// applySeverityPolicy rewrites the merged bag according to --no-warnings and
// --warnings-as-errors. The validator itself always assigns plain severities;
// policy is the CLI's business.
func applySeverityPolicy(bag *diag.Bag, settings checkSettings) *diag.Bag {
	if !settings.noWarnings && !settings.warningsAsErrors {
		return bag
	}
	out := diag.NewBag(int(bag.Cap()))
	for _, d := range bag.Items() {
		if d.Severity == diag.SevWarning {
			if settings.noWarnings {
				continue
			}
			if settings.warningsAsErrors {
				d.Severity = diag.SevError
			}
		}
		out.Add(d)
	}
	out.Sort()
	return out
}

func renderBag(cmd *cobra.Command, bag *diag.Bag, settings checkSettings) error {
	out := cmd.OutOrStdout()
	switch settings.format {
	case "json":
		return diagfmt.JSON(out, bag, diagfmt.JSONOpts{
			Max:          int(bag.Cap()),
			IncludeNotes: settings.withNotes,
		})
	case "short":
		if formatted := diag.FormatGoldenDiagnostics(bag.Items(), settings.withNotes); formatted != "" {
			fmt.Fprintln(out, formatted)
		}
		return nil
	default:
		diagfmt.Pretty(out, bag, diagfmt.PrettyOpts{
			Color:     settings.color,
			ShowNotes: settings.withNotes,
		})
		return nil
	}
}
