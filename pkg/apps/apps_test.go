package apps_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fioriscope/fioriscope/pkg/apps"
	"github.com/fioriscope/fioriscope/pkg/errors"
)

func TestNewRecord(t *testing.T) {
	dec := json.NewDecoder(strings.NewReader(`{
		"fioriId": "F0842",
		"isAdditional": 0,
		"Score": 1.5,
		"Active": true,
		"Missing": null,
		"__metadata": {"uri": "x"},
		"Tags": ["a"]
	}`))
	dec.UseNumber()
	var raw map[string]any
	require.NoError(t, dec.Decode(&raw))

	rec := apps.NewRecord(raw)

	assert.Equal(t, apps.Record{
		"fioriId":      "F0842",
		"isAdditional": "0",
		"Score":        "1.5",
		"Active":       "true",
	}, rec)
	assert.Nil(t, apps.NewRecord(nil))
}

func TestRecordAccessors(t *testing.T) {
	rec := apps.Record{"Title": "", "AppName": "Manage Orders"}
	assert.Equal(t, "Manage Orders", rec.First("Title", "AppName"))
	assert.Empty(t, rec.Get("Missing"))
	assert.True(t, rec.Has("Title"))
	assert.False(t, rec.Has("Missing"))

	var empty apps.Record
	assert.Empty(t, empty.Get("Title"))
}

func TestFacetMetadata(t *testing.T) {
	tests := []struct {
		facet      apps.Facet
		navigation string
		field      string
		title      string
	}{
		{apps.FacetTechnicalNames, "ODataServices", "TechnicalName", "Technical Names"},
		{apps.FacetBusinessRoles, "SplitBusinessRole", "BusinessRoleName", "Business Roles"},
		{apps.FacetBSPNames, "ICFNodes", "BSPName", "BSP Names"},
		{apps.FacetTechnicalCatalogs, "SplitTechnicalCatalogs", "TechincalCatalog", "Technical Catalogs"},
		{apps.FacetSpaces, "SplitSpace", "SpaceName", "Spaces"},
		{apps.FacetPages, "SplitPage", "PageName", "Pages"},
		{apps.FacetRelatedApps, "Related_Apps", "FioriId", "Related Apps"},
		{apps.FacetSemanticObjects, "SplitAdditionalIntents", "SemanticObject", "Semantic Objects"},
	}

	require.Len(t, apps.Facets(), len(tests))
	for i, tt := range tests {
		t.Run(tt.facet.String(), func(t *testing.T) {
			assert.Equal(t, tt.facet, apps.Facets()[i])
			assert.Equal(t, tt.navigation, tt.facet.Navigation())
			assert.Equal(t, tt.field, tt.facet.DisplayField())
			assert.Equal(t, tt.title, tt.facet.Title())
			assert.True(t, tt.facet.IsValid())
		})
	}
	assert.False(t, apps.Facet("bogus").IsValid())
}

func TestFacetNames(t *testing.T) {
	recs := []apps.Record{{"SpaceName": "S1"}, {"SpaceName": "S2"}, {}}
	assert.Equal(t, []string{"S1", "S2", ""}, apps.FacetSpaces.Names(recs))
}

func TestProjectSemanticActions(t *testing.T) {
	got := apps.ProjectSemanticActions([]apps.Record{
		{"SemanticObject": "SalesOrder", "SemanticAction": "display", "MappingSignatureKeyVal": "x"},
		{"SemanticObject": "SalesOrder"},
	})

	require.Len(t, got, 2)
	assert.Equal(t, "SalesOrder:display", got[0].String())
	assert.True(t, got[0].Complete())
	assert.False(t, got[1].Complete())
}

func TestAggregate(t *testing.T) {
	t.Run("deprecated details", func(t *testing.T) {
		a := apps.NewSuccess("F1", apps.Record{"isPublished": "Deprecated"}, nil, nil)
		assert.True(t, a.Succeeded())
		assert.True(t, a.Deprecated)
		assert.False(t, a.Exportable())
		assert.NotNil(t, a.Records(apps.FacetSpaces))
	})

	t.Run("published details", func(t *testing.T) {
		a := apps.NewSuccess("F2", apps.Record{"isPublished": "Published", "AppName": "App"}, nil, nil)
		assert.False(t, a.Deprecated)
		assert.True(t, a.Exportable())
		assert.Equal(t, "App", a.Title())
	})

	t.Run("failure", func(t *testing.T) {
		a := apps.NewFailure("F3", "HTTP error! Status: 500")
		assert.False(t, a.Succeeded())
		assert.False(t, a.Exportable())
		assert.Equal(t, "HTTP error! Status: 500", a.Error)
	})
}

func TestProgress(t *testing.T) {
	assert.Zero(t, apps.Progress{}.Percent())
	p := apps.Progress{Processed: 1, Total: 3}
	assert.InDelta(t, 33.333, p.Percent(), 0.01)
	assert.Equal(t, 33, p.Rounded())
	assert.Equal(t, 67, apps.Progress{Processed: 2, Total: 3}.Rounded())
	assert.False(t, p.Done())
	assert.True(t, apps.Progress{Processed: 3, Total: 3}.Done())
}

func TestStateValidAndCounts(t *testing.T) {
	st := apps.State{Results: []apps.Aggregate{
		apps.NewSuccess("A", apps.Record{}, nil, nil),
		apps.NewSuccess("B", apps.Record{"isPublished": "Deprecated"}, nil, nil),
		apps.NewFailure("C", "boom"),
		apps.NewSuccess("D", apps.Record{}, nil, nil),
	}}

	valid := st.Valid()
	require.Len(t, valid, 2)
	assert.Equal(t, "A", valid[0].FioriID)
	assert.Equal(t, "D", valid[1].FioriID)

	ok, dep, failed := st.Counts()
	assert.Equal(t, 2, ok)
	assert.Equal(t, 1, dep)
	assert.Equal(t, 1, failed)

	snap := st.Snapshot()
	snap.Results[0].FioriID = "Z"
	assert.Equal(t, "A", st.Results[0].FioriID)
	assert.Zero(t, st.Duration())
}

func TestNewRunConfig(t *testing.T) {
	cfg, err := apps.NewRunConfig([]string{" f0842 ", "f1234  F5678"}, " s28op ")
	require.NoError(t, err)
	assert.Equal(t, []string{"F0842", "F1234", "F5678"}, cfg.Identifiers)
	assert.Equal(t, "S28OP", cfg.Release)
	assert.Equal(t, "Fiori_Apps_Data_S28OP.xlsx", cfg.FileName())
}

func TestRunConfigValidation(t *testing.T) {
	tests := []struct {
		name    string
		ids     []string
		release string
		field   string
	}{
		{"no identifiers", nil, "S28OP", "fioriIds"},
		{"blank identifiers", []string{"   "}, "S28OP", "fioriIds"},
		{"no release", []string{"F0842"}, "  ", "releaseId"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := apps.NewRunConfig(tt.ids, tt.release)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))

			var ve *errors.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, apps.MissingInputMessage, ve.Message)
		})
	}
}

func TestRunConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     apps.RunConfig
		wantErr bool
	}{
		{"valid", apps.RunConfig{Identifiers: []string{"F0842"}, Release: "S28OP"}, false},
		{"blank entry", apps.RunConfig{Identifiers: []string{"  ", "f0842"}, Release: "S28OP"}, true},
		{"empty entry", apps.RunConfig{Identifiers: []string{""}, Release: "S28OP"}, true},
		{"embedded whitespace", apps.RunConfig{Identifiers: []string{"F0842\tF1234"}, Release: "S28OP"}, true},
		{"blank release", apps.RunConfig{Identifiers: []string{"F0842"}, Release: "\t"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.True(t, errors.IsValidationError(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRunConfigNormalized(t *testing.T) {
	cfg := apps.RunConfig{Identifiers: []string{"  ", " f0842 "}, Release: " s28op "}.Normalized()
	assert.Equal(t, apps.RunConfig{Identifiers: []string{"", "F0842"}, Release: "S28OP"}, cfg)
	assert.True(t, errors.IsValidationError(cfg.Validate()))
}

func TestParseIdentifiers(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, apps.ParseIdentifiers("a\tb\n"))
	assert.Empty(t, apps.ParseIdentifiers("   "))
}
