package output

import (
	"io"

	"github.com/fioriscope/fioriscope/internal/cmd/table"
	"github.com/fioriscope/fioriscope/pkg/apps"
	"github.com/fioriscope/fioriscope/pkg/export"
)

// State writes the per-identifier outcome of a run. Structured formats get
// the whole state.
func State(w io.Writer, format Format, state *apps.State) error {
	if format.IsTable() {
		return NewFormatter(format).Format(w, table.StatusData(state.Results))
	}
	return NewFormatter(format).Format(w, state)
}

// Report writes the exported rows followed by the consolidated sets.
func Report(w io.Writer, format Format, rep *export.Report) error {
	if !format.IsTable() {
		return NewFormatter(format).Format(w, rep)
	}
	f := NewFormatter(format)
	if err := f.Format(w, table.ReportData(rep, format == FormatWide)); err != nil {
		return err
	}
	return f.Format(w, table.ConsolidatedData(rep.Consolidated))
}
