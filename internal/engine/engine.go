// Package engine is the query facade shared by every protocol adapter. Each
// method validates its parameters, builds SPARQL text, runs it once against
// the configured endpoint and normalizes the bindings.
package engine

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator"

	"github.com/YutaGoto/imasparql-mcp-server/internal/graph"
	"github.com/YutaGoto/imasparql-mcp-server/internal/metrics"
	"github.com/YutaGoto/imasparql-mcp-server/internal/normalize"
	"github.com/YutaGoto/imasparql-mcp-server/internal/sparql"
)

// Selecter runs a SELECT query. *graph.Client satisfies it.
type Selecter interface {
	Select(ctx context.Context, query string) ([]graph.Binding, error)
}

// Querier is the surface the adapters depend on.
type Querier interface {
	SearchEntities(ctx context.Context, p sparql.SearchEntitiesParams) ([]normalize.Summary, error)
	GetEntity(ctx context.Context, p sparql.GetEntityParams) (normalize.EntityContext, error)
	GetEntityDetails(ctx context.Context, p sparql.GetEntityDetailsParams) (normalize.Details, error)
	GetEntityRelations(ctx context.Context, p sparql.GetEntityRelationsParams) ([]normalize.Ref, error)
	GetUnitMembers(ctx context.Context, p sparql.GetUnitMembersParams) ([]normalize.Ref, error)
	GetUnitMembersByName(ctx context.Context, p sparql.GetUnitMembersByNameParams) ([]normalize.UnitMember, error)
	SearchClothes(ctx context.Context, p sparql.SearchClothesParams) ([]normalize.Summary, error)
	GetIdolClothes(ctx context.Context, p sparql.GetIdolClothesParams) ([]normalize.Clothes, error)
}

var _ Querier = (*Engine)(nil)

type Engine struct {
	client   Selecter
	validate *validator.Validate
	allowed  []string
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

type Option func(*Engine)

// WithAllowedIRIPrefixes restricts identifier parameters to IRIs under one
// of prefixes. Without it any absolute IRI is accepted.
func WithAllowedIRIPrefixes(prefixes []string) Option {
	return func(e *Engine) {
		e.allowed = append([]string(nil), prefixes...)
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func New(client Selecter, opts ...Option) *Engine {
	e := &Engine{client: client, logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	e.validate = newValidator(e.allowed)
	return e
}

// run validates params, executes the built query and normalizes the rows.
// Client errors are returned untouched.
func run[P, R any](ctx context.Context, e *Engine, intent string, params P, build func(P) string, shape func([]graph.Binding) R) (R, error) {
	var zero R
	start := time.Now()

	if err := e.check(params); err != nil {
		e.metrics.Observe(intent, outcome(err), 0, time.Since(start))
		return zero, err
	}

	rows, err := e.client.Select(ctx, build(params))
	elapsed := time.Since(start)
	e.metrics.Observe(intent, outcome(err), len(rows), elapsed)
	if err != nil {
		e.logger.Debug("sparql query failed", "intent", intent, "duration_ms", elapsed.Milliseconds(), "error", err)
		return zero, err
	}
	e.logger.Debug("sparql query completed", "intent", intent, "rows", len(rows), "duration_ms", elapsed.Milliseconds())
	return shape(rows), nil
}

func (e *Engine) SearchEntities(ctx context.Context, p sparql.SearchEntitiesParams) ([]normalize.Summary, error) {
	return run(ctx, e, IntentSearchEntities, p, sparql.BuildSearchEntities, normalize.SearchEntities)
}

func (e *Engine) GetEntity(ctx context.Context, p sparql.GetEntityParams) (normalize.EntityContext, error) {
	return run(ctx, e, IntentGetEntity, p, sparql.BuildGetEntity, func(rows []graph.Binding) normalize.EntityContext {
		return normalize.Entity(p.URI, rows)
	})
}

func (e *Engine) GetEntityDetails(ctx context.Context, p sparql.GetEntityDetailsParams) (normalize.Details, error) {
	return run(ctx, e, IntentGetEntityDetails, p, sparql.BuildGetEntityDetails, normalize.EntityDetails)
}

func (e *Engine) GetEntityRelations(ctx context.Context, p sparql.GetEntityRelationsParams) ([]normalize.Ref, error) {
	return run(ctx, e, IntentGetEntityRelations, p, sparql.BuildGetEntityRelations, normalize.Relations)
}

func (e *Engine) GetUnitMembers(ctx context.Context, p sparql.GetUnitMembersParams) ([]normalize.Ref, error) {
	return run(ctx, e, IntentGetUnitMembers, p, sparql.BuildGetUnitMembers, normalize.UnitMembers)
}

func (e *Engine) GetUnitMembersByName(ctx context.Context, p sparql.GetUnitMembersByNameParams) ([]normalize.UnitMember, error) {
	return run(ctx, e, IntentGetUnitMembersByName, p, sparql.BuildGetUnitMembersByName, normalize.UnitMembersByName)
}

func (e *Engine) SearchClothes(ctx context.Context, p sparql.SearchClothesParams) ([]normalize.Summary, error) {
	return run(ctx, e, IntentSearchClothes, p, sparql.BuildSearchClothes, normalize.SearchClothes)
}

func (e *Engine) GetIdolClothes(ctx context.Context, p sparql.GetIdolClothesParams) ([]normalize.Clothes, error) {
	return run(ctx, e, IntentGetIdolClothes, p, sparql.BuildGetIdolClothes, normalize.IdolClothes)
}
