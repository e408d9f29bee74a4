// Package analytics implements the procurement spend analytics computation
// pipeline: a pure, input-driven function from transaction rows, field
// mappings, vendor clusters and filters to a fully derived dashboard
// view-model. The engine performs no I/O and keeps no state between runs;
// every output is rebuilt in full whenever any input changes.
package analytics

import (
	"log/slog"
	"time"

	"github.com/spendlens/spendlens/internal/common"
	"github.com/spendlens/spendlens/internal/model"
)

// Input carries everything one computation depends on. Now anchors
// "current fiscal year" and year-to-date cutoffs; the zero value means the
// wall clock, callers pin it in tests.
type Input struct {
	Now       time.Time
	Mapping   model.FieldMapping
	Currency  string
	Rows      []model.Row
	Clusters  []model.VendorCluster
	Filters   model.Filters
	DateRange model.DateRange
}

// Engine computes analytics view-models. It is safe for concurrent use:
// all state lives in the per-call pipeline.
type Engine struct {
	thresholds Thresholds
}

// New creates an engine with the default thresholds.
func New() *Engine {
	return NewWithThresholds(DefaultThresholds())
}

// NewWithThresholds creates an engine with custom thresholds.
func NewWithThresholds(t Thresholds) *Engine {
	return &Engine{thresholds: t}
}

// Thresholds returns the engine's active thresholds.
func (e *Engine) Thresholds() Thresholds {
	return e.thresholds
}

// Compute runs the full pipeline. Malformed vendor clusters are the only
// error condition; every data-quality problem in the rows degrades to
// zeroed or empty outputs instead.
func (e *Engine) Compute(input Input) (*model.ViewModel, error) {
	for i := range input.Clusters {
		if err := input.Clusters[i].Validate(); err != nil {
			return nil, &common.ClusterError{Err: err, Master: input.Clusters[i].MasterName, Index: i}
		}
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	resolver := NewResolver(input.Mapping, input.Rows)
	cols := resolveColumns(resolver)

	// One normalization pass over the full dataset; everything downstream
	// works from the normalized view.
	all := buildView(input.Rows, cols)

	// Global baseline first: it must be computed from the entire dataset,
	// before any filter narrows the view.
	global := buildGlobalIndex(all, e.thresholds)
	tc := newTailClassifier(e.thresholds)
	tail := tc.classify(global)

	view := trimToRange(applyFilters(all, input.Filters), input.DateRange)

	// Metrics and savings share a single combined pass over the view.
	metrics := newMetricsAccumulator(cols, now, e.thresholds.PaymentRiskPattern)
	savings := newSavingsClassifier(global, cols, e.thresholds)
	for _, vr := range view {
		metrics.add(vr)
		savings.classify(vr)
	}
	m := metrics.finalize()
	buckets := savings.results()

	tailFlags := tc.flagTailTransactions(view, &tail)
	sourcing := analyzeSourcing(view)
	opportunities := rankOpportunities(buckets, e.thresholds.TopOpportunities)

	vm := &model.ViewModel{
		Currency:                 input.Currency,
		Cards:                    assembleCards(cols, m, buckets, tail, tailFlags, sourcing),
		SupplierDistribution:     m.SupplierDist,
		CategoryDistribution:     m.CategoryDist,
		BusinessUnitDistribution: m.BusinessUnitDist,
		LocationDistribution:     m.LocationDist,
		MonthlySpend:             m.Months,
		Sourcing:                 sourcing,
		Tail:                     tail,
		Opportunities:            opportunities,
		Clusters:                 input.Clusters,
		TotalSpend:               m.TotalSpend,
		TransactionCount:         m.TransactionCount,
	}

	slog.Debug("analytics computation complete",
		"rows", len(input.Rows),
		"view_rows", len(view),
		"suppliers", len(global.SupplierSpend),
		"items", len(global.Items),
		"opportunities", len(opportunities))

	return vm, nil
}
