package apps

// Facet identifies one of the related-data queries issued per application.
type Facet string

// Facet values, in the order they are fetched and exported.
const (
	FacetTechnicalNames    Facet = "technical_names"
	FacetBusinessRoles     Facet = "business_roles"
	FacetBSPNames          Facet = "bsp_names"
	FacetTechnicalCatalogs Facet = "technical_catalogs"
	FacetSpaces            Facet = "spaces"
	FacetPages             Facet = "pages"
	FacetRelatedApps       Facet = "related_apps"
	FacetSemanticObjects   Facet = "semantic_objects"
)

// Facets returns the eight concurrently fetched facets in canonical order.
func Facets() []Facet {
	return []Facet{
		FacetTechnicalNames,
		FacetBusinessRoles,
		FacetBSPNames,
		FacetTechnicalCatalogs,
		FacetSpaces,
		FacetPages,
		FacetRelatedApps,
		FacetSemanticObjects,
	}
}

type facetInfo struct {
	navigation string
	field      string
	title      string
}

var facetTable = map[Facet]facetInfo{
	FacetTechnicalNames:    {"ODataServices", "TechnicalName", "Technical Names"},
	FacetBusinessRoles:     {"SplitBusinessRole", "BusinessRoleName", "Business Roles"},
	FacetBSPNames:          {"ICFNodes", "BSPName", "BSP Names"},
	FacetTechnicalCatalogs: {"SplitTechnicalCatalogs", "TechincalCatalog", "Technical Catalogs"},
	FacetSpaces:            {"SplitSpace", "SpaceName", "Spaces"},
	FacetPages:             {"SplitPage", "PageName", "Pages"},
	FacetRelatedApps:       {"Related_Apps", "FioriId", "Related Apps"},
	FacetSemanticObjects:   {"SplitAdditionalIntents", "SemanticObject", "Semantic Objects"},
}

// Navigation returns the OData navigation segment that serves the facet.
func (f Facet) Navigation() string {
	return facetTable[f].navigation
}

// DisplayField returns the record field shown for each entry of the facet.
// The technical catalog field keeps the upstream spelling.
func (f Facet) DisplayField() string {
	return facetTable[f].field
}

// Title returns the human-readable facet name.
func (f Facet) Title() string {
	return facetTable[f].title
}

// IsValid reports whether f is a known facet.
func (f Facet) IsValid() bool {
	_, ok := facetTable[f]
	return ok
}

// String implements fmt.Stringer.
func (f Facet) String() string {
	return string(f)
}

// Names returns the display field of every record, in order.
func (f Facet) Names(records []Record) []string {
	names := make([]string, 0, len(records))
	for _, r := range records {
		names = append(names, r.Get(f.DisplayField()))
	}
	return names
}
