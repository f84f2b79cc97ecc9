package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vzic-go/vzic/tzdb/ianadist"
)

func newFetchCmd() *cobra.Command {
	var destDir string
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the latest IANA time zone database into a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, destDir)
		},
	}
	cmd.Flags().StringVar(&destDir, "dest", "tzdata", "directory to write the downloaded source files to")
	return cmd
}

func runFetch(cmd *cobra.Command, destDir string) error {
	release, _, err := ianadist.Latest(cmd.Context(), "")
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	if release == nil {
		return fmt.Errorf("fetch: empty release")
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	for name, contents := range release.DataFiles {
		if err := os.WriteFile(filepath.Join(destDir, name), contents, 0o644); err != nil {
			return fmt.Errorf("fetch: writing %s: %w", name, err)
		}
	}
	if release.LeapSecondsFile != nil {
		if err := os.WriteFile(filepath.Join(destDir, "leapseconds"), release.LeapSecondsFile, 0o644); err != nil {
			return fmt.Errorf("fetch: writing leapseconds: %w", err)
		}
	}

	fmt.Printf("fetched tzdata %s into %s\n", release.Version, destDir)
	return nil
}
