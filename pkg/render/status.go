// Package render turns batch results into user-facing text: status lines,
// progress, facet detail panels and markdown reports.
package render

import (
	"fmt"

	"github.com/fioriscope/fioriscope/pkg/apps"
)

// DeprecatedWarning is shown under a deprecated application.
const DeprecatedWarning = "⚠️ This application is deprecated in the selected release"

// Status labels.
const (
	LabelSuccess           = "Success"
	LabelSuccessDeprecated = "Success (Deprecated)"
	LabelError             = "Error"
)

// StatusLine is the per-identifier line shown while a batch runs.
type StatusLine struct {
	FioriID string `json:"fioriId" yaml:"fioriId"`
	Label   string `json:"label" yaml:"label"`
	Detail  string `json:"detail,omitempty" yaml:"detail,omitempty"`
	OK      bool   `json:"ok" yaml:"ok"`
}

// String renders the line as "<id> - <label>".
func (s StatusLine) String() string {
	return s.FioriID + " - " + s.Label
}

// Status builds the status line of a single result.
func Status(a *apps.Aggregate) StatusLine {
	line := StatusLine{FioriID: a.FioriID, OK: a.Succeeded()}
	switch {
	case !a.Succeeded():
		line.Label = LabelError
		line.Detail = "Error: " + a.Error
	case a.Deprecated:
		line.Label = LabelSuccessDeprecated
		line.Detail = DeprecatedWarning
	default:
		line.Label = LabelSuccess
	}
	return line
}

// StatusLines builds one status line per result, in order.
func StatusLines(results []apps.Aggregate) []StatusLine {
	lines := make([]StatusLine, 0, len(results))
	for i := range results {
		lines = append(lines, Status(&results[i]))
	}
	return lines
}

// ProgressText renders progress as "Processing: N%" with N rounded.
func ProgressText(p apps.Progress) string {
	return fmt.Sprintf("Processing: %d%%", p.Rounded())
}
