package transport

import (
	"context"
	"net/http"
)

// entityEnvelope is the OData v2 wrapper around a single entity.
type entityEnvelope struct {
	D map[string]any `json:"d"`
}

// collectionEnvelope is the OData v2 wrapper around an entity set.
type collectionEnvelope struct {
	D *struct {
		Results []map[string]any `json:"results"`
	} `json:"d"`
}

// GetEntity fetches url and returns the "d" object of an OData entity response.
// The result is nil when the payload carries no entity.
func (c *Client) GetEntity(ctx context.Context, url string) (map[string]any, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return DecodeEntity(resp)
}

// GetCollection fetches url and returns the "d.results" array of an OData
// collection response. A payload without results yields an empty slice.
func (c *Client) GetCollection(ctx context.Context, url string) ([]map[string]any, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return DecodeCollection(resp)
}

// DecodeEntity decodes an OData entity response.
func DecodeEntity(resp *http.Response) (map[string]any, error) {
	var env entityEnvelope
	if err := DecodeResponse(resp, &env); err != nil {
		return nil, err
	}
	return env.D, nil
}

// DecodeCollection decodes an OData collection response.
func DecodeCollection(resp *http.Response) ([]map[string]any, error) {
	var env collectionEnvelope
	if err := DecodeResponse(resp, &env); err != nil {
		return nil, err
	}
	if env.D == nil || env.D.Results == nil {
		return []map[string]any{}, nil
	}
	return env.D.Results, nil
}
