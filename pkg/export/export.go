// Package export reduces a finished batch into spreadsheet rows plus a
// consolidated summary, and writes the result as an xlsx workbook.
package export

import (
	"github.com/fioriscope/fioriscope/pkg/apps"
	"github.com/fioriscope/fioriscope/pkg/errors"
)

// Report is the reduced form of a batch, ready to be written.
type Report struct {
	Release      string           `json:"release" yaml:"release"`
	Rows         []Row            `json:"rows" yaml:"rows"`
	Consolidated ConsolidatedSets `json:"consolidated" yaml:"consolidated"`
}

// Build reduces state into a report. Only successful, non-deprecated results
// are exported; if there are none, errors.ErrNoValidResults is returned.
func Build(state *apps.State) (*Report, error) {
	if state == nil {
		return nil, errors.ErrNoValidResults
	}
	valid := state.Valid()
	if len(valid) == 0 {
		return nil, errors.ErrNoValidResults
	}

	rows := make([]Row, 0, len(valid))
	for i := range valid {
		rows = append(rows, NewRow(&valid[i]))
	}

	return &Report{
		Release:      state.Release,
		Rows:         rows,
		Consolidated: Consolidate(valid),
	}, nil
}

// AllRows returns the application rows followed by the CONSOLIDATED row.
func (r *Report) AllRows() []Row {
	out := make([]Row, 0, len(r.Rows)+1)
	out = append(out, r.Rows...)
	return append(out, r.Consolidated.Row())
}

// FileName returns the workbook file name, Fiori_Apps_Data_<release>.xlsx.
func (r *Report) FileName() string {
	return apps.FileName(r.Release)
}
