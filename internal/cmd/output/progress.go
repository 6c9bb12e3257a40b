package output

import (
	"fmt"
	"io"

	"github.com/fioriscope/fioriscope/internal/cmd/emoji"
	"github.com/fioriscope/fioriscope/pkg/apps"
	"github.com/fioriscope/fioriscope/pkg/batch"
	"github.com/fioriscope/fioriscope/pkg/render"
)

var _ batch.Observer = (*Progress)(nil)

// Progress prints batch feedback as it arrives: the running percentage,
// then one status line per finished identifier.
type Progress struct {
	w       io.Writer
	printed int
}

// NewProgress creates a Progress writing to w.
func NewProgress(w io.Writer) *Progress {
	return &Progress{w: w}
}

// OnProgress implements batch.Observer.
func (p *Progress) OnProgress(_ string, prog apps.Progress) {
	_, _ = fmt.Fprintf(p.w, "%s %s (%d/%d)\n", emoji.Progress, render.ProgressText(prog), prog.Processed, prog.Total)
}

// OnResults implements batch.Observer.
func (p *Progress) OnResults(_ string, results []apps.Aggregate) {
	for ; p.printed < len(results); p.printed++ {
		line := render.Status(&results[p.printed])
		mark := emoji.Success
		if !line.OK {
			mark = emoji.Error
		}
		_, _ = fmt.Fprintf(p.w, "  %s %s\n", mark, line)
		if line.Detail != "" {
			_, _ = fmt.Fprintf(p.w, "    %s\n", line.Detail)
		}
	}
}
