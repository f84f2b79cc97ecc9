// Package linkresolve applies Olson Link records to a completed
// conversion run, per spec §4.7. It never computes a transition stream
// itself — it only decides, for each Link{From, To}, whether the
// caller should re-run the emitter under the alias name or whether a
// filesystem symlink can stand in for it.
package linkresolve

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vzic-go/vzic/tzdata"
)

// Mode selects how Links are materialized.
type Mode string

const (
	// ModeReemit re-runs the emitter under the alias name, producing an
	// independent, byte-identical .ics file.
	ModeReemit Mode = "reemit"
	// ModeAlias creates a relative symlink instead of re-emitting.
	ModeAlias Mode = "alias"
)

// ReemitFunc re-emits the zone named "to" using the same transition
// stream already computed for "from". The caller supplies this because
// only it has access to the per-zone recurrence.Component cache.
type ReemitFunc func(from, to string) error

// Resolve applies every link in links according to mode. outDir is the
// output root the rest of the pipeline writes zoneName+".ics" files
// under.
//
// In ModeAlias, a Link whose To has no "/" is ignored per spec §4.7
// ("Links with no / in to are ignored") — such names don't have a
// Region/City file path to alias.
func Resolve(outDir string, links []tzdata.LinkLine, mode Mode, reemit ReemitFunc) error {
	for _, link := range links {
		switch mode {
		case ModeReemit:
			if err := reemit(link.From, link.To); err != nil {
				return fmt.Errorf("linkresolve: re-emitting %s as %s: %w", link.From, link.To, err)
			}
		case ModeAlias:
			if !strings.Contains(link.To, "/") {
				continue
			}
			if err := alias(outDir, link.From, link.To); err != nil {
				return fmt.Errorf("linkresolve: aliasing %s to %s: %w", link.To, link.From, err)
			}
		default:
			return fmt.Errorf("linkresolve: unknown mode %q", mode)
		}
	}
	return nil
}

// alias creates <outDir>/<to>.ics as a relative symlink pointing at
// <outDir>/<from>.ics.
func alias(outDir, from, to string) error {
	fromPath := filepath.Join(outDir, from+".ics")
	toPath := filepath.Join(outDir, to+".ics")

	if err := os.MkdirAll(filepath.Dir(toPath), 0o755); err != nil {
		return err
	}

	rel, err := filepath.Rel(filepath.Dir(toPath), fromPath)
	if err != nil {
		return err
	}

	if existing, err := os.Lstat(toPath); err == nil {
		if existing.Mode()&os.ModeSymlink == 0 {
			return fmt.Errorf("%s already exists and is not a symlink", toPath)
		}
		if err := os.Remove(toPath); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	return os.Symlink(rel, toPath)
}
