package export

import (
	"maps"
	"slices"
	"strings"

	"github.com/fioriscope/fioriscope/pkg/apps"
	"github.com/fioriscope/fioriscope/pkg/constants"
)

// ConsolidatedSets are the unique values of each multi-valued column across
// all exported applications, sorted.
type ConsolidatedSets struct {
	BusinessRoles     []string `json:"businessRoles" yaml:"businessRoles"`
	ODataServices     []string `json:"odataServices" yaml:"odataServices"`
	TechnicalCatalogs []string `json:"technicalCatalogs" yaml:"technicalCatalogs"`
	BSPNames          []string `json:"bspNames" yaml:"bspNames"`
	Spaces            []string `json:"spaces" yaml:"spaces"`
	Pages             []string `json:"pages" yaml:"pages"`
	RelatedApps       []string `json:"relatedApps" yaml:"relatedApps"`
	SemanticObjects   []string `json:"semanticObjects" yaml:"semanticObjects"`
	SemanticActions   []string `json:"semanticActions" yaml:"semanticActions"`
}

type set map[string]struct{}

func (s set) add(vals ...string) {
	for _, v := range vals {
		if v != "" {
			s[v] = struct{}{}
		}
	}
}

func (s set) sorted() []string {
	if len(s) == 0 {
		return []string{}
	}
	return slices.Sorted(maps.Keys(s))
}

// Consolidate reduces the given aggregates into the nine sets.
//
// The BSP set holds the details BSP name plus every BSP facet name. Semantic
// object:action pairs of a result are collected only while walking that
// result's semantic objects, so a result without semantic objects adds no
// pairs.
func Consolidate(results []apps.Aggregate) ConsolidatedSets {
	var (
		roles, services, catalogs, bsps = set{}, set{}, set{}, set{}
		spaces, pages, related          = set{}, set{}, set{}
		objects, actions                = set{}, set{}
	)

	for i := range results {
		a := &results[i]
		roles.add(apps.FacetBusinessRoles.Names(a.Records(apps.FacetBusinessRoles))...)
		services.add(apps.FacetTechnicalNames.Names(a.Records(apps.FacetTechnicalNames))...)
		catalogs.add(apps.FacetTechnicalCatalogs.Names(a.Records(apps.FacetTechnicalCatalogs))...)
		bsps.add(a.Details.Get("BSPName"))
		bsps.add(apps.FacetBSPNames.Names(a.Records(apps.FacetBSPNames))...)
		spaces.add(apps.FacetSpaces.Names(a.Records(apps.FacetSpaces))...)
		pages.add(apps.FacetPages.Names(a.Records(apps.FacetPages))...)
		related.add(apps.FacetRelatedApps.Names(a.Records(apps.FacetRelatedApps))...)

		for _, obj := range apps.FacetSemanticObjects.Names(a.Records(apps.FacetSemanticObjects)) {
			objects.add(obj)
			actions.add(actionPairs(a.SemanticActions)...)
		}
	}

	return ConsolidatedSets{
		BusinessRoles:     roles.sorted(),
		ODataServices:     services.sorted(),
		TechnicalCatalogs: catalogs.sorted(),
		BSPNames:          bsps.sorted(),
		Spaces:            spaces.sorted(),
		Pages:             pages.sorted(),
		RelatedApps:       related.sorted(),
		SemanticObjects:   objects.sorted(),
		SemanticActions:   actions.sorted(),
	}
}

// Row returns the CONSOLIDATED summary row. Narrative columns stay blank.
func (c ConsolidatedSets) Row() Row {
	join := func(v []string) string { return strings.Join(v, "\n") }
	return Row{
		FioriID:           constants.ConsolidatedID,
		BSPName:           join(c.BSPNames),
		BusinessRoles:     join(c.BusinessRoles),
		ODataServices:     join(c.ODataServices),
		TechnicalCatalogs: join(c.TechnicalCatalogs),
		Spaces:            join(c.Spaces),
		Pages:             join(c.Pages),
		RelatedApps:       join(c.RelatedApps),
		SemanticObjects:   join(c.SemanticObjects),
		SemanticActions:   join(c.SemanticActions),
	}
}

// Sections returns the sets paired with their column headers, in column order.
func (c ConsolidatedSets) Sections() []Section {
	return []Section{
		{"BSP Name", c.BSPNames},
		{"Business Roles", c.BusinessRoles},
		{"OData Services", c.ODataServices},
		{"Technical Catalogs", c.TechnicalCatalogs},
		{"Spaces", c.Spaces},
		{"Pages", c.Pages},
		{"Related Apps", c.RelatedApps},
		{"Semantic Objects", c.SemanticObjects},
		{"Semantic Actions", c.SemanticActions},
	}
}

// Section is one named consolidated set.
type Section struct {
	Title  string
	Values []string
}
