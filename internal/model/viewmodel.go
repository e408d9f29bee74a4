package model

import "time"

// OpportunityBucket identifies one of the five mutually exclusive
// savings-classification buckets. Each transaction row lands in at most one.
type OpportunityBucket string

// Savings bucket identifiers, in rule-priority order.
const (
	BucketPriceVariance     OpportunityBucket = "priceVariance"
	BucketSingleSource      OpportunityBucket = "singleSource"
	BucketCompliance        OpportunityBucket = "compliance"
	BucketTailSpend         OpportunityBucket = "tailSpend"
	BucketProcessEfficiency OpportunityBucket = "processEfficiency"
)

// Label returns the human-readable name for a bucket.
func (b OpportunityBucket) Label() string {
	switch b {
	case BucketPriceVariance:
		return "Price Variance"
	case BucketSingleSource:
		return "Single-Source Risk"
	case BucketCompliance:
		return "Contract & Category Consolidation"
	case BucketTailSpend:
		return "Tail Spend Consolidation"
	case BucketProcessEfficiency:
		return "Low-Value PO Efficiency"
	default:
		return string(b)
	}
}

// SupplierAggregate is the per-supplier rollup over a row set. It is rebuilt
// on every computation cycle and never persisted.
type SupplierAggregate struct {
	Name             string  `json:"name"`
	Category         string  `json:"category"`
	TotalSpend       float64 `json:"total_spend"`
	TransactionCount int     `json:"transaction_count"`
}

// ItemAggregate is the dataset-wide view of a purchased item, computed only
// from the full unfiltered row set.
type ItemAggregate struct {
	Description  string              `json:"description"`
	MinPrice     float64             `json:"min_price"`
	BestSupplier string              `json:"best_supplier"`
	Suppliers    map[string]struct{} `json:"-"`
}

// SupplierCount returns the number of distinct suppliers seen for the item.
func (i *ItemAggregate) SupplierCount() int {
	return len(i.Suppliers)
}

// MonthBucket is one point of the monthly spend time series.
type MonthBucket struct {
	Start            time.Time `json:"start"`
	Key              string    `json:"key"`
	Label            string    `json:"label"`
	Spend            float64   `json:"spend"`
	GrowthPct        float64   `json:"growth_pct"`
	TransactionCount int       `json:"transaction_count"`
}

// VendorSpend pairs a vendor name with accumulated spend.
type VendorSpend struct {
	Name  string  `json:"name"`
	Spend float64 `json:"spend"`
}

// SavingsOpportunity accumulates one heuristic bucket's running totals.
type SavingsOpportunity struct {
	Bucket     OpportunityBucket `json:"bucket"`
	Spend      float64           `json:"spend"`
	Savings    float64           `json:"savings"`
	TopVendors []VendorSpend     `json:"top_vendors"`
	Categories []string          `json:"categories"`
	ItemCount  int               `json:"item_count"`
}

// ParetoPoint is one step of the cumulative supplier spend curve.
type ParetoPoint struct {
	Supplier      string  `json:"supplier"`
	Spend         float64 `json:"spend"`
	CumulativePct float64 `json:"cumulative_pct"`
	Rank          int     `json:"rank"`
}

// TailClassification is the Pareto ranking of all suppliers against the
// global baseline, plus the exclusion-adjusted final tail set.
type TailClassification struct {
	Head      []string      `json:"head"`
	MidTail   []string      `json:"mid_tail"`
	LongTail  []string      `json:"long_tail"`
	FinalTail []string      `json:"final_tail"`
	Pareto    []ParetoPoint `json:"pareto"`

	// TailSpend is the summed global spend of the final tail set.
	TailSpend float64 `json:"tail_spend"`
}

// InTail reports whether a supplier belongs to the final tail set.
func (t *TailClassification) InTail(supplier string) bool {
	for _, s := range t.FinalTail {
		if s == supplier {
			return true
		}
	}
	return false
}

// DistributionEntry is one slice of a spend distribution.
type DistributionEntry struct {
	Name             string  `json:"name"`
	Spend            float64 `json:"spend"`
	Pct              float64 `json:"pct"`
	TransactionCount int     `json:"transaction_count"`
}

// SubMetric is a secondary value displayed beneath a KPI card.
type SubMetric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// KPIKind describes how a KPI card's value should be rendered.
type KPIKind string

// KPI value kinds.
const (
	KPINumber   KPIKind = "number"
	KPIPercent  KPIKind = "percent"
	KPICurrency KPIKind = "currency"
)

// KPICard is one dashboard card in the assembled view-model. Formatting of
// the value is a presentation concern; the card carries the raw number plus
// the kind and currency code needed to render it.
type KPICard struct {
	ID           string              `json:"id"`
	Label        string              `json:"label"`
	Kind         KPIKind             `json:"kind"`
	Value        float64             `json:"value"`
	SubMetrics   []SubMetric         `json:"sub_metrics,omitempty"`
	Distribution []DistributionEntry `json:"distribution,omitempty"`
	DrillDown    any                 `json:"drill_down,omitempty"`
}

// SupplierShare is a supplier's spend share within one sourced item.
type SupplierShare struct {
	Supplier string  `json:"supplier"`
	Spend    float64 `json:"spend"`
	SharePct float64 `json:"share_pct"`
}

// SourcedItem is one item grouping from the sourcing strategy analysis.
type SourcedItem struct {
	Description  string          `json:"description"`
	Spend        float64         `json:"spend"`
	Suppliers    []SupplierShare `json:"suppliers"`
	SingleSource bool            `json:"single_source"`
}

// SourcingSummary classifies items as single- vs multi-sourced.
type SourcingSummary struct {
	Items             []SourcedItem `json:"items"`
	SingleSourced     int           `json:"single_sourced"`
	MultiSourced      int           `json:"multi_sourced"`
	SingleSourceSpend float64       `json:"single_source_spend"`
}

// RankedOpportunity is one entry of the top-N savings opportunity list.
type RankedOpportunity struct {
	Bucket         OpportunityBucket `json:"bucket"`
	Label          string            `json:"label"`
	Spend          float64           `json:"spend"`
	Savings        float64           `json:"savings"`
	SavingsPct     float64           `json:"savings_pct"`
	ProjectedSpend float64           `json:"projected_spend"`
	Recommendation string            `json:"recommendation"`
	Formula        string            `json:"formula"`
}

// ViewModel is the final composed output of one analytics computation. It is
// purely derived data: presentation, export and drill-down collaborators
// consume it as-is.
type ViewModel struct {
	Currency string `json:"currency"`

	Cards []KPICard `json:"cards"`

	SupplierDistribution     []DistributionEntry `json:"supplier_distribution"`
	CategoryDistribution     []DistributionEntry `json:"category_distribution"`
	BusinessUnitDistribution []DistributionEntry `json:"business_unit_distribution"`
	LocationDistribution     []DistributionEntry `json:"location_distribution"`

	MonthlySpend  []MonthBucket       `json:"monthly_spend"`
	Sourcing      SourcingSummary     `json:"sourcing"`
	Tail          TailClassification  `json:"tail"`
	Opportunities []RankedOpportunity `json:"opportunities"`
	Clusters      []VendorCluster     `json:"clusters"`

	TotalSpend       float64 `json:"total_spend"`
	TransactionCount int     `json:"transaction_count"`
}
