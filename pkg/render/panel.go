package render

import (
	"slices"
	"strconv"
	"strings"

	"github.com/fioriscope/fioriscope/pkg/apps"
)

// Detail is one labelled value under a panel item.
type Detail struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Item is one entry of a facet panel.
type Item struct {
	Heading string   `json:"heading" yaml:"heading"`
	Badge   string   `json:"badge,omitempty" yaml:"badge,omitempty"`
	Details []Detail `json:"details,omitempty" yaml:"details,omitempty"`
}

// Panel is the detail view of one facet.
type Panel struct {
	Facet    apps.Facet `json:"facet" yaml:"facet"`
	Title    string     `json:"title" yaml:"title"`
	Items    []Item     `json:"items" yaml:"items"`
	CopyText string     `json:"copyText" yaml:"copyText"`
}

// Empty reports whether the facet had no records.
func (p Panel) Empty() bool {
	return len(p.Items) == 0
}

// EmptyMessage returns the text shown for a facet without records.
func (p Panel) EmptyMessage() string {
	return "No " + p.Title + " found"
}

type detailField struct {
	label string
	key   string
}

var panelDetails = map[apps.Facet][]detailField{
	apps.FacetTechnicalNames:    {{"Namespace", "NameSpace"}, {"Software Component", "SoftwareComponentName"}},
	apps.FacetBusinessRoles:     {{"Description", "BusinessRoleDescription"}, {"Role ID", "RoleID"}},
	apps.FacetBSPNames:          {{"App Name", "AppName"}, {"URL", "BSPApplicationURL"}, {"UI5 Component ID", "SAPUI5ComponentId"}},
	apps.FacetTechnicalCatalogs: {{"Description", "TechincalCatalogDescription"}, {"System Alias", "SystemAlias"}},
	apps.FacetSpaces:            {{"Title", "SpaceTitle"}, {"Description", "SpaceDescription"}},
	apps.FacetPages:             {{"Title", "PageTitle"}, {"Description", "PageDescription"}},
	apps.FacetRelatedApps:       {{"App Name", "AppName"}, {"Relation Type", "relationType"}},
	apps.FacetSemanticObjects:   {{"Action", "SemanticAction"}, {"Parameters", "MappingSignatureKeyVal"}},
}

// FacetPanel builds the detail panel of facet f.
//
// Business roles list leading roles first and BSP names list the main BSP
// first; both sorts are stable. The copy text of semantic objects drops
// duplicates.
func FacetPanel(f apps.Facet, records []apps.Record) Panel {
	recs := slices.Clone(records)
	switch f {
	case apps.FacetBusinessRoles:
		slices.SortStableFunc(recs, func(a, b apps.Record) int {
			return boolRank(!isLeading(a)) - boolRank(!isLeading(b))
		})
	case apps.FacetBSPNames:
		slices.SortStableFunc(recs, func(a, b apps.Record) int {
			return additionalRank(a) - additionalRank(b)
		})
	}

	names := f.Names(recs)
	if f == apps.FacetSemanticObjects {
		names = dedupe(names)
	}

	panel := Panel{
		Facet:    f,
		Title:    f.Title(),
		Items:    make([]Item, 0, len(recs)),
		CopyText: strings.Join(names, "\n"),
	}
	for _, r := range recs {
		item := Item{Heading: r.Get(f.DisplayField())}
		switch {
		case f == apps.FacetBusinessRoles && isLeading(r):
			item.Badge = "Leading Role"
		case f == apps.FacetBSPNames && r.Get("isAdditional") == "0":
			item.Badge = "Main BSP"
		}
		for _, d := range panelDetails[f] {
			if v := r.Get(d.key); v != "" {
				item.Details = append(item.Details, Detail{Label: d.label, Value: v})
			}
		}
		panel.Items = append(panel.Items, item)
	}
	return panel
}

// Panels builds the panel of every facet of a successful result.
func Panels(a *apps.Aggregate) []Panel {
	out := make([]Panel, 0, len(apps.Facets()))
	for _, f := range apps.Facets() {
		out = append(out, FacetPanel(f, a.Records(f)))
	}
	return out
}

func isLeading(r apps.Record) bool {
	return r.Get("isLeading") == "X"
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}

// additionalRank orders BSP records by their numeric isAdditional flag.
func additionalRank(r apps.Record) int {
	n, err := strconv.Atoi(r.Get("isAdditional"))
	if err != nil {
		return 0
	}
	return n
}

func dedupe(vals []string) []string {
	seen := make(map[string]struct{}, len(vals))
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
