// Package logging provides the structured warning/summary reporter used
// by cmd/vzic for its run-level messages. The recurrence collapser and the
// emitter do not report through it: the warnings RRule.Render returns are
// discarded by the emitter and are not logged. Fatal parse/semantic
// errors are never routed through here — they remain plain Go error
// values returned up the call stack; this package only ever logs things
// the pipeline continues past.
package logging

import (
	"fmt"

	"github.com/rickb777/plural"
	"go.uber.org/zap"
)

var zoneWord = plural.FromZero("%d zones", "%d zone", "%d zones")

// Reporter collects compatibility warnings during a conversion run and
// renders the human-readable end-of-run summary.
type Reporter struct {
	log      *zap.Logger
	warnings []Warning
	skipped  []string
}

// Warning is one compatibility warning attributed to a zone.
type Warning struct {
	Zone    string
	Kind    string
	Message string
}

// New builds a Reporter around a production zap.Logger.
func New() (*Reporter, error) {
	log, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return &Reporter{log: log}, nil
}

// Warn records a compatibility warning and logs it at warn level with
// structured fields, per spec §7's "logged, processing continues"
// policy.
func (r *Reporter) Warn(zone, kind, message string) {
	r.warnings = append(r.warnings, Warning{Zone: zone, Kind: kind, Message: message})
	r.log.Warn(message, zap.String("zone", zone), zap.String("kind", kind))
}

// Skipped records that a zone was skipped entirely (e.g. excluded by
// configuration or a non-fatal parse issue upstream chose to drop it).
func (r *Reporter) Skipped(zone string) {
	r.skipped = append(r.skipped, zone)
	r.log.Warn("zone skipped", zap.String("zone", zone))
}

// Warnings returns every warning recorded so far.
func (r *Reporter) Warnings() []Warning {
	return r.warnings
}

// Summary renders a one-line, pluralized end-of-run report, e.g.
// "312 zones converted, 3 zones skipped, 7 warnings".
func (r *Reporter) Summary(converted int) string {
	msg := zoneWord.FormatInt(converted) + " converted"
	if len(r.skipped) > 0 {
		msg += ", " + zoneWord.FormatInt(len(r.skipped)) + " skipped"
	}
	if len(r.warnings) > 0 {
		msg += fmt.Sprintf(", %d warnings", len(r.warnings))
	}
	return msg
}

// Sync flushes the underlying logger; call before process exit.
func (r *Reporter) Sync() error {
	return r.log.Sync()
}
