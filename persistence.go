package fioriscope

import (
	"context"

	"github.com/fioriscope/fioriscope/pkg/apps"
	"github.com/fioriscope/fioriscope/pkg/errors"
	"github.com/fioriscope/fioriscope/pkg/export"
)

// Compile-time interface check to ensure proper implementation.
var _ Persistence = (*client)(nil)

// Persistence turns runs into workbooks.
type Persistence interface {
	// Report reduces the last completed run.
	Report() (*export.Report, error)

	// Download re-runs the last configuration and reduces the fresh result.
	Download(ctx context.Context) (*export.Report, *apps.State, error)

	// Save writes the last run's workbook into dir and returns its path.
	Save(dir string) (string, error)
}

// Report reduces the last completed run.
func (c *client) Report() (*export.Report, error) {
	state, ok := c.Last()
	if !ok {
		return nil, errors.ErrNoPreviousRun
	}
	return export.Build(state)
}

// Download re-runs the last configuration so the workbook reflects current
// catalog data, then reduces it.
func (c *client) Download(ctx context.Context) (*export.Report, *apps.State, error) {
	state, err := c.Rerun(ctx)
	if err != nil {
		return nil, nil, err
	}
	rep, err := export.Build(state)
	return rep, state, err
}

// Save writes the last run's workbook into dir.
func (c *client) Save(dir string) (string, error) {
	rep, err := c.Report()
	if err != nil {
		return "", err
	}
	return rep.WriteFile(dir)
}
