// Package apps defines the data model shared by the fetch, batch and export
// stages: upstream records, facets, per-identifier aggregates, batch state
// and the validated run configuration.
package apps

import "github.com/fioriscope/fioriscope/pkg/constants"

// FileName returns the workbook file name for release.
func FileName(release string) string {
	return constants.FilePrefix + release + constants.FileExtension
}
