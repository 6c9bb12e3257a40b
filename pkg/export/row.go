package export

import (
	"strings"

	"github.com/fioriscope/fioriscope/pkg/apps"
	"github.com/fioriscope/fioriscope/pkg/constants"
)

// Column is one spreadsheet column.
type Column struct {
	Header string
	Width  float64
}

// Columns lists the spreadsheet columns in order.
var Columns = []Column{
	{"Fiori ID", 15},
	{"App Title", 40},
	{"Application Type", 20},
	{"UI Technology", 20},
	{"Application Component", 30},
	{"BSP Name", 20},
	{"UI5 Component ID", 30},
	{"Business Roles", 40},
	{"OData Services", 40},
	{"Technical Catalogs", 40},
	{"Spaces", 40},
	{"Pages", 40},
	{"Related Apps", 40},
	{"Semantic Objects", 40},
	{"Semantic Actions", 40},
}

// Headers returns the column headers in order.
func Headers() []string {
	out := make([]string, len(Columns))
	for i, c := range Columns {
		out[i] = c.Header
	}
	return out
}

// Row is one flattened spreadsheet row. Multi-valued cells are newline-joined.
type Row struct {
	FioriID              string `json:"fioriId" yaml:"fioriId"`
	AppTitle             string `json:"appTitle" yaml:"appTitle"`
	ApplicationType      string `json:"applicationType" yaml:"applicationType"`
	UITechnology         string `json:"uiTechnology" yaml:"uiTechnology"`
	ApplicationComponent string `json:"applicationComponent" yaml:"applicationComponent"`
	BSPName              string `json:"bspName" yaml:"bspName"`
	UI5ComponentID       string `json:"ui5ComponentId" yaml:"ui5ComponentId"`
	BusinessRoles        string `json:"businessRoles" yaml:"businessRoles"`
	ODataServices        string `json:"odataServices" yaml:"odataServices"`
	TechnicalCatalogs    string `json:"technicalCatalogs" yaml:"technicalCatalogs"`
	Spaces               string `json:"spaces" yaml:"spaces"`
	Pages                string `json:"pages" yaml:"pages"`
	RelatedApps          string `json:"relatedApps" yaml:"relatedApps"`
	SemanticObjects      string `json:"semanticObjects" yaml:"semanticObjects"`
	SemanticActions      string `json:"semanticActions" yaml:"semanticActions"`
}

// Values returns the cells in column order.
func (r Row) Values() []string {
	return []string{
		r.FioriID,
		r.AppTitle,
		r.ApplicationType,
		r.UITechnology,
		r.ApplicationComponent,
		r.BSPName,
		r.UI5ComponentID,
		r.BusinessRoles,
		r.ODataServices,
		r.TechnicalCatalogs,
		r.Spaces,
		r.Pages,
		r.RelatedApps,
		r.SemanticObjects,
		r.SemanticActions,
	}
}

// IsConsolidated reports whether r is the cross-application summary row.
func (r Row) IsConsolidated() bool {
	return r.FioriID == constants.ConsolidatedID
}

// NewRow flattens a successful aggregate.
// The BSP facet is not a column; it only feeds the consolidated BSP set.
func NewRow(a *apps.Aggregate) Row {
	d := a.Details
	return Row{
		FioriID:              a.FioriID,
		AppTitle:             a.Title(),
		ApplicationType:      d.Get("ApplicationType"),
		UITechnology:         d.Get("UITechnology"),
		ApplicationComponent: d.Get("ApplicationComponent"),
		BSPName:              d.Get("BSPName"),
		UI5ComponentID:       d.Get("SAPUI5ComponentId"),
		BusinessRoles:        joinFacet(a, apps.FacetBusinessRoles),
		ODataServices:        joinFacet(a, apps.FacetTechnicalNames),
		TechnicalCatalogs:    joinFacet(a, apps.FacetTechnicalCatalogs),
		Spaces:               joinFacet(a, apps.FacetSpaces),
		Pages:                joinFacet(a, apps.FacetPages),
		RelatedApps:          joinFacet(a, apps.FacetRelatedApps),
		SemanticObjects:      joinFacet(a, apps.FacetSemanticObjects),
		SemanticActions:      strings.Join(rowPairs(a.SemanticActions), "\n"),
	}
}

func joinFacet(a *apps.Aggregate, f apps.Facet) string {
	return strings.Join(f.Names(a.Records(f)), "\n")
}

// rowPairs renders every action of a row, complete or not.
func rowPairs(actions []apps.SemanticAction) []string {
	out := make([]string, 0, len(actions))
	for _, sa := range actions {
		out = append(out, sa.String())
	}
	return out
}

// actionPairs renders only complete actions, for the consolidated set.
func actionPairs(actions []apps.SemanticAction) []string {
	out := make([]string, 0, len(actions))
	for _, sa := range actions {
		if sa.Complete() {
			out = append(out, sa.String())
		}
	}
	return out
}
