// Package aggregate gathers everything the catalog knows about one
// application: its details, the eight related facets and its semantic actions.
package aggregate

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/fioriscope/fioriscope/pkg/apps"
	"github.com/fioriscope/fioriscope/pkg/logging"
	"github.com/fioriscope/fioriscope/pkg/retry"
)

// Source is the upstream catalog as seen by the aggregator.
type Source interface {
	Details(ctx context.Context, fioriID, release string) (apps.Record, error)
	Facet(ctx context.Context, f apps.Facet, fioriID, release string) ([]apps.Record, error)
	SemanticActions(ctx context.Context, fioriID, release string) ([]apps.SemanticAction, error)
}

// Aggregator fetches and merges the data of a single identifier.
type Aggregator struct {
	source Source
	retry  []retry.Option
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithRetry sets the retry options applied to facet and semantic action queries.
func WithRetry(opts ...retry.Option) Option {
	return func(a *Aggregator) {
		a.retry = append(a.retry, opts...)
	}
}

// New creates an aggregator over source.
func New(source Source, opts ...Option) *Aggregator {
	a := &Aggregator{source: source}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate fetches the details of fioriID once, then all facets concurrently
// with retry, then the semantic actions with retry.
//
// The first failure is returned as is: a details error, or the last error of
// the first facet to exhaust its attempts. Remaining facet queries are
// cancelled in that case.
func (a *Aggregator) Aggregate(ctx context.Context, fioriID, release string) (apps.Aggregate, error) {
	ctx = logging.WithIdentifier(ctx, fioriID)
	log := logging.FromContext(ctx)

	details, err := a.source.Details(ctx, fioriID, release)
	if err != nil {
		return apps.Aggregate{}, err
	}

	facets := apps.Facets()
	results := make([][]apps.Record, len(facets))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range facets {
		g.Go(func() error {
			fctx := logging.WithFacet(gctx, f.String())
			recs, err := retry.Do(fctx, func(ctx context.Context) ([]apps.Record, error) {
				return a.source.Facet(ctx, f, fioriID, release)
			}, a.retry...)
			if err != nil {
				return err
			}
			results[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return apps.Aggregate{}, err
	}

	byFacet := make(map[apps.Facet][]apps.Record, len(facets))
	for i, f := range facets {
		byFacet[f] = results[i]
	}

	actions, err := retry.Do(ctx, func(ctx context.Context) ([]apps.SemanticAction, error) {
		return a.source.SemanticActions(ctx, fioriID, release)
	}, a.retry...)
	if err != nil {
		return apps.Aggregate{}, err
	}

	agg := apps.NewSuccess(fioriID, details, byFacet, actions)
	log.Debug().Bool("deprecated", agg.Deprecated).Msg("Aggregated application")
	return agg, nil
}
