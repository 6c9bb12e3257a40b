package alerts

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"

	"github.com/fioriscope/fioriscope/internal/cmd/output"
)

// Writer writes alerts in one output format.
type Writer struct {
	w        io.Writer
	format   output.Format
	useColor bool
}

// NewWriter creates a Writer. Color is used for table output on terminals
// unless noColor is set.
func NewWriter(w io.Writer, format output.Format, noColor bool) *Writer {
	return &Writer{
		w:        w,
		format:   format,
		useColor: !noColor && isTerminal(w),
	}
}

// alertData is the structured form of an alert.
type alertData struct {
	Level   string   `json:"level" yaml:"level"`
	Message string   `json:"message" yaml:"message"`
	Details []string `json:"details,omitempty" yaml:"details,omitempty"`
	Error   string   `json:"error,omitempty" yaml:"error,omitempty"`
	TTLMs   int64    `json:"ttlMs,omitempty" yaml:"ttlMs,omitempty"`
}

// Write writes a in the configured format.
func (aw *Writer) Write(a *Alert) error {
	switch aw.format {
	case output.FormatJSON:
		return json.NewEncoder(aw.w).Encode(toData(a))
	case output.FormatYAML:
		b, err := yaml.Marshal(toData(a))
		if err != nil {
			return err
		}
		_, err = aw.w.Write(b)
		return err
	default:
		return aw.writeText(a)
	}
}

func toData(a *Alert) alertData {
	d := alertData{
		Level:   a.Level.String(),
		Message: a.Message,
		Details: a.Details,
		TTLMs:   a.TTL.Milliseconds(),
	}
	if a.Err != nil {
		d.Error = a.Err.Error()
	}
	return d
}

func (aw *Writer) writeText(a *Alert) error {
	message := a.String()
	if aw.useColor {
		message = a.Level.Color() + message + resetColor
	}
	if _, err := fmt.Fprintln(aw.w, message); err != nil {
		return err
	}
	for _, detail := range a.Details {
		if _, err := fmt.Fprintf(aw.w, "   %s\n", detail); err != nil {
			return err
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
