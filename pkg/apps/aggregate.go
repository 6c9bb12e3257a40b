package apps

import "github.com/fioriscope/fioriscope/pkg/constants"

// Status is the outcome of processing one identifier.
type Status string

// Status values.
const (
	StatusSuccess Status = "Success"
	StatusError   Status = "Error"
)

// Aggregate is everything gathered for one identifier in a batch.
// Error results carry only FioriID, Status and Error.
type Aggregate struct {
	FioriID         string             `json:"fioriId" yaml:"fioriId"`
	Status          Status             `json:"status" yaml:"status"`
	Deprecated      bool               `json:"isDeprecated" yaml:"isDeprecated"`
	Error           string             `json:"error,omitempty" yaml:"error,omitempty"`
	Details         Record             `json:"appDetails,omitempty" yaml:"appDetails,omitempty"`
	Facets          map[Facet][]Record `json:"facets,omitempty" yaml:"facets,omitempty"`
	SemanticActions []SemanticAction   `json:"semanticActions,omitempty" yaml:"semanticActions,omitempty"`
}

// NewSuccess builds a successful aggregate, deriving the deprecation flag from details.
func NewSuccess(fioriID string, details Record, facets map[Facet][]Record, actions []SemanticAction) Aggregate {
	return Aggregate{
		FioriID:         fioriID,
		Status:          StatusSuccess,
		Deprecated:      IsDeprecated(details),
		Details:         details,
		Facets:          facets,
		SemanticActions: actions,
	}
}

// NewFailure builds an error aggregate carrying msg.
func NewFailure(fioriID, msg string) Aggregate {
	return Aggregate{
		FioriID: fioriID,
		Status:  StatusError,
		Error:   msg,
	}
}

// IsDeprecated reports whether the details mark the application deprecated in its release.
func IsDeprecated(details Record) bool {
	return details.Get("isPublished") == constants.DeprecatedState
}

// Records returns the records of facet f; never nil for a successful aggregate.
func (a *Aggregate) Records(f Facet) []Record {
	if recs, ok := a.Facets[f]; ok && recs != nil {
		return recs
	}
	return []Record{}
}

// Succeeded reports whether the identifier was fetched completely.
func (a *Aggregate) Succeeded() bool {
	return a.Status == StatusSuccess
}

// Exportable reports whether the aggregate contributes to the spreadsheet.
func (a *Aggregate) Exportable() bool {
	return a.Succeeded() && !a.Deprecated
}

// Title returns the app title, preferring Title over AppName.
func (a *Aggregate) Title() string {
	return a.Details.First("Title", "AppName")
}
