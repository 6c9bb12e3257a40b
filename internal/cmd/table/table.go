// Package table builds the tabular views of batch results for CLI commands.
package table

import (
	"strconv"
	"strings"

	"github.com/fioriscope/fioriscope/internal/cmd/emoji"
	"github.com/fioriscope/fioriscope/pkg/apps"
	"github.com/fioriscope/fioriscope/pkg/export"
	"github.com/fioriscope/fioriscope/pkg/render"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// StatusData lists one line per processed identifier.
func StatusData(results []apps.Aggregate) Data {
	rows := make([][]string, 0, len(results))
	for _, line := range render.StatusLines(results) {
		mark := emoji.Success
		if !line.OK {
			mark = emoji.Error
		}
		rows = append(rows, []string{mark, line.FioriID, line.Label, line.Detail})
	}
	return Data{
		Headers:         []string{"", "Fiori ID", "Status", "Details"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignCenter, AlignLeft, AlignLeft, AlignLeft},
	}
}

// ReportData lists the exported rows. The narrow form keeps the descriptive
// columns and counts the multi-valued ones; wide shows every cell.
func ReportData(rep *export.Report, wide bool) Data {
	rows := rep.AllRows()
	if wide {
		out := make([][]string, 0, len(rows))
		for _, r := range rows {
			out = append(out, r.Values())
		}
		return Data{Headers: export.Headers(), Rows: out}
	}

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			r.FioriID,
			r.AppTitle,
			r.BSPName,
			count(r.BusinessRoles),
			count(r.ODataServices),
			count(r.TechnicalCatalogs),
			count(r.SemanticActions),
		})
	}
	return Data{
		Headers: []string{"Fiori ID", "App Title", "BSP Name", "Roles", "Services", "Catalogs", "Actions"},
		Rows:    out,
		ColumnAlignment: []Align{
			AlignLeft, AlignLeft, AlignLeft,
			AlignRight, AlignRight, AlignRight, AlignRight,
		},
	}
}

// ConsolidatedData lists each consolidated set with its size.
func ConsolidatedData(c export.ConsolidatedSets) Data {
	sections := c.Sections()
	rows := make([][]string, 0, len(sections))
	for _, s := range sections {
		rows = append(rows, []string{s.Title, strconv.Itoa(len(s.Values)), strings.Join(s.Values, ", ")})
	}
	return Data{
		Headers:         []string{"Set", "Count", "Values"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight, AlignLeft},
	}
}

// count returns the number of lines in a newline-joined cell.
func count(cell string) string {
	if cell == "" {
		return "0"
	}
	return strconv.Itoa(strings.Count(cell, "\n") + 1)
}
