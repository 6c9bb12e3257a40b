package apps

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fioriscope/fioriscope/pkg/errors"
)

// MissingInputMessage is shown when either the identifiers or the release are blank.
const MissingInputMessage = "Please enter both Fiori App IDs and Release ID"

var upper = cases.Upper(language.Und)

// RunConfig is the validated input of a batch run.
type RunConfig struct {
	Identifiers []string `json:"fioriIds" yaml:"fioriIds"`
	Release     string   `json:"releaseId" yaml:"releaseId"`
}

// Normalize trims and uppercases an identifier or release.
func Normalize(s string) string {
	return upper.String(strings.TrimSpace(s))
}

// ParseIdentifiers splits whitespace-separated input into normalized identifiers.
func ParseIdentifiers(input string) []string {
	fields := strings.Fields(input)
	ids := make([]string, 0, len(fields))
	for _, f := range fields {
		ids = append(ids, Normalize(f))
	}
	return ids
}

// NewRunConfig normalizes ids and release and validates the result.
// Each element of ids may itself hold several whitespace-separated identifiers.
func NewRunConfig(ids []string, release string) (RunConfig, error) {
	cfg := RunConfig{
		Identifiers: ParseIdentifiers(strings.Join(ids, " ")),
		Release:     Normalize(release),
	}
	return cfg, cfg.Validate()
}

// Normalized returns a copy of c with every identifier and the release
// trimmed and uppercased. Blank entries are kept so Validate still sees them.
func (c RunConfig) Normalized() RunConfig {
	ids := make([]string, len(c.Identifiers))
	for i, id := range c.Identifiers {
		ids[i] = Normalize(id)
	}
	return RunConfig{Identifiers: ids, Release: Normalize(c.Release)}
}

// Validate checks that at least one identifier and a release are present,
// and that every identifier is a single non-blank token.
func (c RunConfig) Validate() error {
	if len(c.Identifiers) == 0 {
		return errors.NewValidationError("fioriIds", c.Identifiers, MissingInputMessage)
	}
	for _, id := range c.Identifiers {
		if strings.TrimSpace(id) == "" {
			return errors.NewValidationError("fioriIds", c.Identifiers, MissingInputMessage)
		}
		if strings.ContainsFunc(strings.TrimSpace(id), unicode.IsSpace) {
			return errors.NewValidationError("fioriIds", id, "identifiers must not contain whitespace")
		}
	}
	if strings.TrimSpace(c.Release) == "" {
		return errors.NewValidationError("releaseId", c.Release, MissingInputMessage)
	}
	return nil
}

// FileName returns the workbook file name for the run's release.
func (c RunConfig) FileName() string {
	return FileName(c.Release)
}
