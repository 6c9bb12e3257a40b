package fiorilib_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fioriscope/fioriscope/internal/sources/fiorilib"
	"github.com/fioriscope/fioriscope/pkg/apps"
	"github.com/fioriscope/fioriscope/pkg/constants"
	"github.com/fioriscope/fioriscope/pkg/errors"
)

const (
	detailsKey    = "fioriId='F0842',releaseId='S28OP',inpfioriId='F0842',inpreleaseId='S28OP',inpLanguage='EN'"
	navigationKey = "inpfioriId='F0842',inpreleaseId='S28OP',inpLanguage='EN',fioriId='F0842',releaseId='S28OP'"
)

func TestURLs(t *testing.T) {
	c := fiorilib.New()
	base := constants.DefaultBaseURL

	assert.Equal(t, base+"/Details("+detailsKey+")?$format=json", c.DetailsURL("F0842", "S28OP"))

	tests := []struct {
		facet apps.Facet
		want  string
	}{
		{apps.FacetTechnicalNames, base + "/Details(" + navigationKey + ")/ODataServices?$format=json"},
		{apps.FacetBusinessRoles, base + "/Details(" + detailsKey + ")/SplitBusinessRole?$format=json"},
		{apps.FacetBSPNames, base + "/Details(" + navigationKey + ")/ICFNodes?$format=json"},
		{apps.FacetTechnicalCatalogs, base + "/Details(" + navigationKey + ")/SplitTechnicalCatalogs?$format=json"},
		{apps.FacetSpaces, base + "/Details(" + navigationKey + ")/SplitSpace?$format=json"},
		{apps.FacetPages, base + "/Details(" + navigationKey + ")/SplitPage?$format=json"},
		{apps.FacetRelatedApps, base + "/Details(" + navigationKey + ")/Related_Apps?$format=json"},
		{apps.FacetSemanticObjects, base + "/Details(" + navigationKey + ")/SplitAdditionalIntents?$format=json"},
	}
	for _, tt := range tests {
		t.Run(tt.facet.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, c.FacetURL(tt.facet, "F0842", "S28OP"))
		})
	}
}

func TestOptions(t *testing.T) {
	c := fiorilib.New(fiorilib.WithBaseURL("http://example.test/svc/"), fiorilib.WithLanguage("DE"))
	assert.Equal(t, "http://example.test/svc", c.BaseURL())
	assert.Contains(t, c.DetailsURL("X", "Y"), "inpLanguage='DE'")
	assert.Contains(t, c.DetailsURL("O'X", "Y"), "fioriId='O''X'")
}

func TestDetailsURLEscaping(t *testing.T) {
	c := fiorilib.New(fiorilib.WithBaseURL("http://example.test/svc"))

	tests := []struct {
		id   string
		want string
	}{
		{"F0842", "fioriId='F0842'"},
		{"O'X", "fioriId='O''X'"},
		{"A B", "fioriId='A%20B'"},
		{"A/B's", "fioriId='A%2FB''s'"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Contains(t, c.DetailsURL(tt.id, "S28OP"), tt.want)
		})
	}
}

// fakeCatalog serves canned OData payloads keyed by navigation segment.
func fakeCatalog(t *testing.T, details string, facets map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "json", r.URL.Query().Get("$format"))
		path := r.URL.Path
		idx := strings.LastIndex(path, ")/")
		if idx < 0 {
			_, _ = w.Write([]byte(details))
			return
		}
		nav := path[idx+2:]
		body, ok := facets[nav]
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
}

func TestDetails(t *testing.T) {
	srv := fakeCatalog(t, `{"d":{"__metadata":{"uri":"x"},"fioriId":"F0842","Title":"Manage Orders","isPublished":"Published"}}`, nil)
	defer srv.Close()

	rec, err := fiorilib.New(fiorilib.WithBaseURL(srv.URL)).Details(context.Background(), "F0842", "S28OP")
	require.NoError(t, err)
	assert.Equal(t, apps.Record{"fioriId": "F0842", "Title": "Manage Orders", "isPublished": "Published"}, rec)
}

func TestDetailsMissingPayload(t *testing.T) {
	srv := fakeCatalog(t, `{}`, nil)
	defer srv.Close()

	_, err := fiorilib.New(fiorilib.WithBaseURL(srv.URL)).Details(context.Background(), "F0842", "S28OP")
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestFacetEndpoints(t *testing.T) {
	srv := fakeCatalog(t, `{"d":{}}`, map[string]string{
		"ODataServices":          `{"d":{"results":[{"TechnicalName":"SRV_A"}]}}`,
		"SplitBusinessRole":      `{"d":{"results":[{"BusinessRoleName":"SAP_BR_A","isLeading":"X"}]}}`,
		"ICFNodes":               `{"d":{"results":[{"BSPName":"BSP_A","isAdditional":0}]}}`,
		"SplitTechnicalCatalogs": `{"d":{"results":[{"TechincalCatalog":"TC_A"}]}}`,
		"SplitSpace":             `{"d":{}}`,
		"SplitPage":              `{"d":{"results":[{"PageName":"P_A"}]}}`,
		"Related_Apps":           `{"d":{"results":[{"FioriId":"F9999"}]}}`,
		"SplitAdditionalIntents": `{"d":{"results":[{"SemanticObject":"SalesOrder","SemanticAction":"manage","MappingSignatureKeyVal":"k"}]}}`,
	})
	defer srv.Close()

	c := fiorilib.New(fiorilib.WithBaseURL(srv.URL))
	ctx := context.Background()

	calls := map[apps.Facet]func(context.Context, string, string) ([]apps.Record, error){
		apps.FacetTechnicalNames:    c.TechnicalNames,
		apps.FacetBusinessRoles:     c.BusinessRoles,
		apps.FacetBSPNames:          c.BSPNames,
		apps.FacetTechnicalCatalogs: c.TechnicalCatalogs,
		apps.FacetSpaces:            c.Spaces,
		apps.FacetPages:             c.Pages,
		apps.FacetRelatedApps:       c.RelatedApps,
		apps.FacetSemanticObjects:   c.SemanticObjects,
	}
	want := map[apps.Facet][]string{
		apps.FacetTechnicalNames:    {"SRV_A"},
		apps.FacetBusinessRoles:     {"SAP_BR_A"},
		apps.FacetBSPNames:          {"BSP_A"},
		apps.FacetTechnicalCatalogs: {"TC_A"},
		apps.FacetSpaces:            {},
		apps.FacetPages:             {"P_A"},
		apps.FacetRelatedApps:       {"F9999"},
		apps.FacetSemanticObjects:   {"SalesOrder"},
	}

	for f, call := range calls {
		recs, err := call(ctx, "F0842", "S28OP")
		require.NoError(t, err, f)
		assert.Equal(t, want[f], f.Names(recs), f)
	}

	actions, err := c.SemanticActions(ctx, "F0842", "S28OP")
	require.NoError(t, err)
	assert.Equal(t, []apps.SemanticAction{{SemanticObject: "SalesOrder", SemanticAction: "manage"}}, actions)
}

func TestFacetHTTPError(t *testing.T) {
	srv := fakeCatalog(t, `{"d":{}}`, nil)
	defer srv.Close()

	_, err := fiorilib.New(fiorilib.WithBaseURL(srv.URL)).Spaces(context.Background(), "F0842", "S28OP")
	require.Error(t, err)
	assert.Equal(t, "HTTP error! Status: 404", err.Error())
}

func TestUnknownFacet(t *testing.T) {
	_, err := fiorilib.New().Facet(context.Background(), apps.Facet("bogus"), "F", "R")
	assert.True(t, errors.IsValidationError(err))
}
