package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fioriscope/fioriscope/pkg/errors"
)

func TestClientSetsHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"d":{"fioriId":"F0842"}}`))
	}))
	defer srv.Close()

	d, err := New().GetEntity(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "F0842", d["fioriId"])
}

func TestGetEntityMissingPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	d, err := New().GetEntity(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestGetCollection(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"results", `{"d":{"results":[{"SpaceName":"S1"},{"SpaceName":"S2","Rank":3}]}}`, 2},
		{"no results key", `{"d":{}}`, 0},
		{"no d", `{}`, 0},
		{"null results", `{"d":{"results":null}}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := New().GetCollection(context.Background(), srv.URL)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestCollectionKeepsNumbersAsJSONNumber(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"d":{"results":[{"isAdditional":0}]}}`))
	}))
	defer srv.Close()

	got, err := New().GetCollection(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, json.Number("0"), got[0]["isAdditional"])
}

func TestNon2xxIsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New().GetCollection(context.Background(), srv.URL+"/Details")
	require.Error(t, err)
	assert.Equal(t, "HTTP error! Status: 503", err.Error())
	assert.True(t, errors.IsUpstreamUnavailable(err))

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, srv.URL+"/Details", apiErr.Endpoint)
	assert.Equal(t, "boom", apiErr.Message)
}

func TestMalformedBodyIsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	_, err := New().GetEntity(context.Background(), srv.URL)
	var parseErr *errors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "json", parseErr.Format)
}

func TestRateLimitHonoursContext(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"d":{}}`))
	}))
	defer srv.Close()

	c := New(WithRateLimit(0.001, 1))
	_, err := c.GetEntity(context.Background(), srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.GetEntity(ctx, srv.URL)
	require.Error(t, err)
	assert.EqualValues(t, 1, hits.Load())
}

func TestOptions(t *testing.T) {
	c := New(WithTimeout(0), WithRateLimit(0, 0))
	assert.Zero(t, c.http.Timeout)
	assert.Nil(t, c.limiter)

	hc := &http.Client{Timeout: time.Second}
	c = New(WithHTTPClient(hc), WithRateLimit(5, 0))
	assert.Same(t, hc, c.http)
	require.NotNil(t, c.limiter)
	assert.Equal(t, 1, c.limiter.Burst())
}
