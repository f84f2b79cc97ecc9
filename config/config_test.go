package config

import (
	"testing"

	"github.com/spf13/cobra"
)

func newTestCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "convert"}
	cmd.PersistentFlags().String("config", "", "config file path")
	BindFlags(cmd)
	return cmd
}

func TestLoadDefaults(t *testing.T) {
	cmd := newTestCommand()
	if err := cmd.ParseFlags(nil); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	cfg, err := Load(cmd)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OutputDir != "zoneinfo" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "zoneinfo")
	}
	if cfg.LinkMode != LinkModeReemit {
		t.Errorf("LinkMode = %q, want %q", cfg.LinkMode, LinkModeReemit)
	}
	if cfg.PureOutput {
		t.Errorf("PureOutput = true, want false by default")
	}
}

func TestLoadFlagOverride(t *testing.T) {
	cmd := newTestCommand()
	if err := cmd.ParseFlags([]string{"--pure-output", "--link-mode=alias", "--output-dir=/tmp/out"}); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	cfg, err := Load(cmd)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.PureOutput {
		t.Errorf("PureOutput = false, want true")
	}
	if cfg.LinkMode != LinkModeAlias {
		t.Errorf("LinkMode = %q, want %q", cfg.LinkMode, LinkModeAlias)
	}
	if cfg.OutputDir != "/tmp/out" {
		t.Errorf("OutputDir = %q, want /tmp/out", cfg.OutputDir)
	}
}

func TestLoadInvalidLinkMode(t *testing.T) {
	cmd := newTestCommand()
	if err := cmd.ParseFlags([]string{"--link-mode=bogus"}); err != nil {
		t.Fatalf("ParseFlags() error = %v", err)
	}
	if _, err := Load(cmd); err == nil {
		t.Fatalf("Load() error = nil, want an error for an invalid link-mode")
	}
}
