package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/vzic-go/vzic/config"
	"github.com/vzic-go/vzic/internal/linkresolve"
	"github.com/vzic-go/vzic/internal/logging"
	"github.com/vzic-go/vzic/internal/recurrence"
	"github.com/vzic-go/vzic/internal/transition"
	"github.com/vzic-go/vzic/internal/zonebuild"
	"github.com/vzic-go/vzic/tzdata"
	"github.com/vzic-go/vzic/vtimezone"
	"github.com/vzic-go/vzic/zonetab"
)

// coreSourceFiles are the Olson source files the core always processes,
// per spec §6's "Input" description.
var coreSourceFiles = []string{
	"africa", "antarctica", "asia", "australasia", "europe",
	"northamerica", "southamerica",
}

// newRunID generates the run ID stamped onto --dump-changes reports.
// It is a package-level var, called exactly once per convert
// invocation, so deterministic tests can replace it with a stub.
var newRunID = uuid.NewString

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert an Olson tzdata source directory into VTIMEZONE .ics files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd)
			if err != nil {
				return err
			}
			return runConvert(cfg)
		},
	}
	config.BindFlags(cmd)
	return cmd
}

func runConvert(cfg config.Config) error {
	if cfg.OlsonDir == "" {
		return fmt.Errorf("convert: --olson-dir is required")
	}

	reporter, err := logging.New()
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	defer reporter.Sync()

	runID := newRunID()
	if cfg.DumpChanges {
		reporter.Warn("", "run-id", runID)
	}

	file, err := parseOlsonSource(cfg.OlsonDir)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	zonesByName := zonebuild.GroupZones(file.ZoneLines)
	rulesByName := zonebuild.ExpandAllRules(file.RuleLines)

	names := make([]string, 0, len(zonesByName))
	for name := range zonesByName {
		names = append(names, name)
	}
	sortCollated(names)

	opts := vtimezone.Options{
		TZIDPrefix: cfg.TZIDPrefix,
		URLPrefix:  cfg.URLPrefix,
		PureOutput: cfg.PureOutput,
		Today:      time.Now(),
	}

	componentsByName := make(map[string][]recurrence.Component, len(names))
	for _, name := range names {
		segments := zonebuild.BuildSegments(zonesByName[name])
		txs, err := transition.BuildZone(name, segments, rulesByName)
		if err != nil {
			return fmt.Errorf("convert: %s: %w", name, err)
		}
		components := recurrence.CollapseWithOptions(txs, recurrence.Options{
			Compat:   !cfg.PureOutput,
			NoRRules: cfg.NoRRules,
			NoRDates: cfg.NoRDates,
		})
		componentsByName[name] = components

		if err := writeZoneFile(cfg.OutputDir, name, components, opts); err != nil {
			return fmt.Errorf("convert: writing %s: %w", name, err)
		}
	}

	mode := linkresolve.Mode(cfg.LinkMode)
	reemit := func(from, to string) error {
		components, ok := componentsByName[from]
		if !ok {
			return fmt.Errorf("no computed transitions for link source %s", from)
		}
		return writeZoneFile(cfg.OutputDir, to, components, opts)
	}
	if err := linkresolve.Resolve(cfg.OutputDir, file.LinkLines, mode, reemit); err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	if cfg.Dump {
		if err := dumpZoneTab(cfg.OlsonDir, cfg.OutputDir, names, reporter); err != nil {
			return fmt.Errorf("convert: %w", err)
		}
	}

	fmt.Println(reporter.Summary(len(componentsByName)))
	return nil
}

// parseOlsonSource parses every core source file found in dir into a
// single merged tzdata.File. A missing optional file is skipped;
// southamerica-style files that are entirely absent from a partial
// mirror simply contribute nothing.
func parseOlsonSource(dir string) (tzdata.File, error) {
	var merged tzdata.File
	found := false
	for _, base := range coreSourceFiles {
		f, err := os.Open(filepath.Join(dir, base))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return tzdata.File{}, err
		}
		parsed, err := tzdata.Parse(f)
		f.Close()
		if err != nil {
			return tzdata.File{}, fmt.Errorf("parsing %s: %w", base, err)
		}
		found = true
		merged.ZoneLines = append(merged.ZoneLines, parsed.ZoneLines...)
		merged.RuleLines = append(merged.RuleLines, parsed.RuleLines...)
		merged.LinkLines = append(merged.LinkLines, parsed.LinkLines...)
	}
	if !found {
		return tzdata.File{}, fmt.Errorf("no Olson source files found in %s", dir)
	}
	return merged, nil
}

func writeZoneFile(outputDir, name string, components []recurrence.Component, opts vtimezone.Options) error {
	path := filepath.Join(outputDir, name+".ics")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintln(f, "BEGIN:VCALENDAR")
	fmt.Fprintln(f, "VERSION:2.0")
	fmt.Fprintln(f, "PRODID:-//vzic-go//NONSGML vzic-go//EN")
	if err := vtimezone.WriteZone(f, name, components, opts); err != nil {
		return err
	}
	fmt.Fprintln(f, "END:VCALENDAR")
	return nil
}

// dumpZoneTab emits zones.tab/zones.h under outputDir, as vzic does
// when invoked with its dump flag (spec §6 "When enabled").
func dumpZoneTab(olsonDir, outputDir string, names []string, reporter *logging.Reporter) error {
	f, err := os.Open(filepath.Join(olsonDir, "zone.tab"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	descs, err := zonetab.Parse(f)
	if err != nil {
		return err
	}

	tabPath := filepath.Join(outputDir, "zones.tab")
	tabFile, err := os.Create(tabPath)
	if err != nil {
		return err
	}
	defer tabFile.Close()
	if err := zonetab.WriteZonesTab(tabFile, names, descs, func(name string) {
		reporter.Warn(name, "zone-tab-missing", "no zone.tab entry or alias found")
	}); err != nil {
		return err
	}

	hPath := filepath.Join(outputDir, "zones.h")
	hFile, err := os.Create(hPath)
	if err != nil {
		return err
	}
	defer hFile.Close()
	return zonetab.WriteZonesH(hFile, names)
}

// sortCollated sorts names in place using a locale-independent
// collation order (language.Und), per SPEC_FULL.md's deterministic
// byte-identical-output contract.
func sortCollated(names []string) {
	c := collate.New(language.Und)
	c.SortStrings(names)
}
