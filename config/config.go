// Package config collects every process-wide option vzic-go accepts into
// one immutable value, built once at startup and threaded through the
// pipeline explicitly — no package-level flag variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// LinkMode selects how Link records are resolved into output files.
type LinkMode string

const (
	// LinkModeReemit runs the emitter a second time under the alias name.
	LinkModeReemit LinkMode = "reemit"
	// LinkModeAlias creates a relative symlink instead of re-emitting.
	LinkModeAlias LinkMode = "alias"
)

// Config is the full set of options a `vzic convert` run is parameterized
// by. A Config is built once by Load and never mutated afterward.
type Config struct {
	OlsonDir    string   `mapstructure:"olson-dir"`
	OutputDir   string   `mapstructure:"output-dir"`
	URLPrefix   string   `mapstructure:"url-prefix"`
	TZIDPrefix  string   `mapstructure:"tzid-prefix"`
	PureOutput  bool     `mapstructure:"pure-output"`
	NoRRules    bool     `mapstructure:"no-rrules"`
	NoRDates    bool     `mapstructure:"no-rdates"`
	Dump        bool     `mapstructure:"dump"`
	DumpChanges bool     `mapstructure:"dump-changes"`
	LinkMode    LinkMode `mapstructure:"link-mode"`
}

// BindFlags registers every config-backed flag on cmd's flag set. Called
// once per command that accepts these flags (presently only `convert`).
func BindFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.String("olson-dir", "", "directory containing the Olson tzdata source files")
	flags.String("output-dir", "zoneinfo", "directory VTIMEZONE .ics files are written to")
	flags.String("url-prefix", "", "TZURL prefix (before the zone name)")
	flags.String("tzid-prefix", "", "TZID prefix; %D expands to today's YYYYMMDD, %% to a literal %")
	flags.Bool("pure-output", false, "emit pure RFC 5545 output instead of Outlook-compatible output")
	flags.Bool("no-rrules", false, "never collapse repeating transitions into RRULEs")
	flags.Bool("no-rdates", false, "never group standalone transitions into RDATEs")
	flags.Bool("dump", false, "also write the zones.tab/zones.h companion files")
	flags.Bool("dump-changes", false, "log a run ID for the conversion (computed transitions are not logged)")
	flags.String("link-mode", string(LinkModeReemit), "how Link records are resolved: reemit or alias")
}

// Load builds a Config from cmd's bound flags, environment variables
// (VZIC_ prefix, dashes folded to underscores) and, if present, a YAML
// config file named by the persistent --config flag or discovered via
// Viper's default search path.
func Load(cmd *cobra.Command) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VZIC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return Config{}, fmt.Errorf("binding flags: %w", err)
	}

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", cfgFile, err)
		}
	} else {
		v.SetConfigName("vzic")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.LinkMode == "" {
		cfg.LinkMode = LinkModeReemit
	}
	if cfg.LinkMode != LinkModeReemit && cfg.LinkMode != LinkModeAlias {
		return Config{}, fmt.Errorf("invalid link-mode %q: must be %q or %q", cfg.LinkMode, LinkModeReemit, LinkModeAlias)
	}
	return cfg, nil
}
