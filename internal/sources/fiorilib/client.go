// Package fiorilib is the data source adapter for the Fiori Apps Library
// single-app OData service.
package fiorilib

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/fioriscope/fioriscope/internal/transport"
	"github.com/fioriscope/fioriscope/pkg/apps"
	"github.com/fioriscope/fioriscope/pkg/constants"
	"github.com/fioriscope/fioriscope/pkg/errors"
	"github.com/fioriscope/fioriscope/pkg/logging"
)

// Client queries the catalog for one application at a time.
type Client struct {
	baseURL   string
	language  string
	transport *transport.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the service root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithLanguage overrides the language key sent with every query.
func WithLanguage(lang string) Option {
	return func(c *Client) {
		if lang != "" {
			c.language = lang
		}
	}
}

// WithTransport sets the HTTP transport.
func WithTransport(t *transport.Client) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// New creates a catalog client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:  constants.DefaultBaseURL,
		language: constants.DefaultLanguage,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		c.transport = transport.New()
	}
	return c
}

// BaseURL returns the service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Details fetches the metadata record of fioriID in release.
// An empty payload is reported as a not-found error.
func (c *Client) Details(ctx context.Context, fioriID, release string) (apps.Record, error) {
	u := c.DetailsURL(fioriID, release)
	logging.FromContext(ctx).Debug().Str("url", u).Msg("Fetching app details")

	d, err := c.transport.GetEntity(ctx, u)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, errors.NewNotFoundError("app details", fioriID+"@"+release)
	}
	return apps.NewRecord(d), nil
}

// Facet fetches the records of facet f. Missing results yield an empty slice.
func (c *Client) Facet(ctx context.Context, f apps.Facet, fioriID, release string) ([]apps.Record, error) {
	if !f.IsValid() {
		return nil, errors.NewValidationError("facet", f, "unknown facet")
	}
	u := c.FacetURL(f, fioriID, release)
	logging.FromContext(ctx).Debug().Str("facet", f.String()).Str("url", u).Msg("Fetching facet")

	raw, err := c.transport.GetCollection(ctx, u)
	if err != nil {
		return nil, err
	}
	return apps.NewRecords(raw), nil
}

// SemanticActions fetches the navigation intents projected to object/action pairs.
func (c *Client) SemanticActions(ctx context.Context, fioriID, release string) ([]apps.SemanticAction, error) {
	recs, err := c.Facet(ctx, apps.FacetSemanticObjects, fioriID, release)
	if err != nil {
		return nil, err
	}
	return apps.ProjectSemanticActions(recs), nil
}

// TechnicalNames fetches the OData services of an application.
func (c *Client) TechnicalNames(ctx context.Context, fioriID, release string) ([]apps.Record, error) {
	return c.Facet(ctx, apps.FacetTechnicalNames, fioriID, release)
}

// BusinessRoles fetches the business roles of an application.
func (c *Client) BusinessRoles(ctx context.Context, fioriID, release string) ([]apps.Record, error) {
	return c.Facet(ctx, apps.FacetBusinessRoles, fioriID, release)
}

// BSPNames fetches the ICF nodes hosting an application.
func (c *Client) BSPNames(ctx context.Context, fioriID, release string) ([]apps.Record, error) {
	return c.Facet(ctx, apps.FacetBSPNames, fioriID, release)
}

// TechnicalCatalogs fetches the technical catalogs of an application.
func (c *Client) TechnicalCatalogs(ctx context.Context, fioriID, release string) ([]apps.Record, error) {
	return c.Facet(ctx, apps.FacetTechnicalCatalogs, fioriID, release)
}

// Spaces fetches the launchpad spaces of an application.
func (c *Client) Spaces(ctx context.Context, fioriID, release string) ([]apps.Record, error) {
	return c.Facet(ctx, apps.FacetSpaces, fioriID, release)
}

// Pages fetches the launchpad pages of an application.
func (c *Client) Pages(ctx context.Context, fioriID, release string) ([]apps.Record, error) {
	return c.Facet(ctx, apps.FacetPages, fioriID, release)
}

// RelatedApps fetches the applications related to an application.
func (c *Client) RelatedApps(ctx context.Context, fioriID, release string) ([]apps.Record, error) {
	return c.Facet(ctx, apps.FacetRelatedApps, fioriID, release)
}

// SemanticObjects fetches the navigation intents of an application.
func (c *Client) SemanticObjects(ctx context.Context, fioriID, release string) ([]apps.Record, error) {
	return c.Facet(ctx, apps.FacetSemanticObjects, fioriID, release)
}

// DetailsURL returns the entity URL for the details query.
func (c *Client) DetailsURL(fioriID, release string) string {
	return fmt.Sprintf("%s/Details(%s)?$format=json", c.baseURL, c.detailsKey(fioriID, release))
}

// FacetURL returns the navigation URL for facet f.
// Business roles are addressed with the details key order, every other facet
// with the input parameters first.
func (c *Client) FacetURL(f apps.Facet, fioriID, release string) string {
	key := c.navigationKey(fioriID, release)
	if f == apps.FacetBusinessRoles {
		key = c.detailsKey(fioriID, release)
	}
	return fmt.Sprintf("%s/Details(%s)/%s?$format=json", c.baseURL, key, f.Navigation())
}

func (c *Client) detailsKey(fioriID, release string) string {
	id, rel, lang := literal(fioriID), literal(release), literal(c.language)
	return fmt.Sprintf("fioriId=%s,releaseId=%s,inpfioriId=%s,inpreleaseId=%s,inpLanguage=%s", id, rel, id, rel, lang)
}

func (c *Client) navigationKey(fioriID, release string) string {
	id, rel, lang := literal(fioriID), literal(release), literal(c.language)
	return fmt.Sprintf("inpfioriId=%s,inpreleaseId=%s,inpLanguage=%s,fioriId=%s,releaseId=%s", id, rel, lang, id, rel)
}

// literal quotes v as an OData string literal safe for a URL path.
// Embedded quotes are doubled and stay literal; everything else is
// path-escaped.
func literal(v string) string {
	parts := strings.Split(v, "'")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return "'" + strings.Join(parts, "''") + "'"
}
