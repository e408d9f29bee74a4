package analytics

import (
	"sort"

	"github.com/spendlens/spendlens/internal/model"
)

// savingsRule is one entry of the classification waterfall. evaluate returns
// the estimated savings and whether the rule claims the row. Rules are
// evaluated in slice order and the first claim is final, so a row can never
// be counted in two buckets.
type savingsRule struct {
	bucket   model.OpportunityBucket
	evaluate func(vr ViewRow) (float64, bool)
}

// savingsClassifier accumulates per-bucket running totals while the engine
// sweeps the active view.
type savingsClassifier struct {
	rules   []savingsRule
	buckets map[model.OpportunityBucket]*bucketAccum
	order   []model.OpportunityBucket
}

type bucketAccum struct {
	spend       float64
	savings     float64
	vendorSpend map[string]float64
	categories  []string
	itemCount   int
}

func newSavingsClassifier(global *GlobalIndex, cols columns, t Thresholds) *savingsClassifier {
	c := &savingsClassifier{
		buckets: make(map[model.OpportunityBucket]*bucketAccum),
		order: []model.OpportunityBucket{
			model.BucketPriceVariance,
			model.BucketSingleSource,
			model.BucketCompliance,
			model.BucketTailSpend,
			model.BucketProcessEfficiency,
		},
	}
	for _, b := range c.order {
		c.buckets[b] = &bucketAccum{vendorSpend: make(map[string]float64)}
	}

	c.rules = []savingsRule{
		{
			// A competing supplier sells the same item cheaper somewhere in
			// the full dataset.
			bucket: model.BucketPriceVariance,
			evaluate: func(vr ViewRow) (float64, bool) {
				item := global.Item(vr.Item)
				if item == nil || item.SupplierCount() <= 1 {
					return 0, false
				}
				if vr.UnitPrice <= item.MinPrice {
					return 0, false
				}
				savings := (vr.UnitPrice - item.MinPrice) * impliedQuantity(vr)
				if savings <= 0 {
					return 0, false
				}
				return savings, true
			},
		},
		{
			bucket: model.BucketSingleSource,
			evaluate: func(vr ViewRow) (float64, bool) {
				item := global.Item(vr.Item)
				if item == nil || item.SupplierCount() != 1 {
					return 0, false
				}
				return vr.Amount * t.SingleSourceRate, true
			},
		},
		{
			// Unavailable contract data disables the rule entirely: a
			// dataset with no contract column is not a dataset where every
			// row is off-contract.
			bucket: model.BucketCompliance,
			evaluate: func(vr ViewRow) (float64, bool) {
				if cols.contractRef == "" || vr.ContractRef != "" {
					return 0, false
				}
				return vr.Amount * t.complianceRate(vr.Category), true
			},
		},
		{
			bucket: model.BucketTailSpend,
			evaluate: func(vr ViewRow) (float64, bool) {
				if !global.InTailSeed(vr.Supplier) {
					return 0, false
				}
				return vr.Amount * t.TailSavingsRate, true
			},
		},
		{
			// Without an amount column every row parses to 0, which is a
			// missing feature, not a dataset of low-value purchases.
			bucket: model.BucketProcessEfficiency,
			evaluate: func(vr ViewRow) (float64, bool) {
				if cols.amount == "" || vr.Amount >= t.LowValueCutoff {
					return 0, false
				}
				return t.LowValueFlatSavings, true
			},
		},
	}

	return c
}

// impliedQuantity prefers the explicit quantity field and falls back to
// amount / unit price with a guarded denominator.
func impliedQuantity(vr ViewRow) float64 {
	if vr.Quantity > 0 {
		return vr.Quantity
	}
	price := vr.UnitPrice
	if price == 0 {
		price = 1
	}
	return vr.Amount / price
}

// classify runs the waterfall for one row. At most one bucket accumulates.
func (c *savingsClassifier) classify(vr ViewRow) {
	for _, rule := range c.rules {
		savings, ok := rule.evaluate(vr)
		if !ok {
			continue
		}
		acc := c.buckets[rule.bucket]
		acc.spend += vr.Amount
		acc.savings += savings
		acc.itemCount++
		if vr.Supplier != "" {
			acc.vendorSpend[vr.Supplier] += vr.Amount
		}
		if vr.Category != "" {
			acc.addCategory(vr.Category)
		}
		return
	}
}

func (a *bucketAccum) addCategory(category string) {
	if len(a.categories) >= 3 {
		return
	}
	for _, c := range a.categories {
		if c == category {
			return
		}
	}
	a.categories = append(a.categories, category)
}

// results returns the five buckets in priority order, including empty ones.
func (c *savingsClassifier) results() []model.SavingsOpportunity {
	out := make([]model.SavingsOpportunity, 0, len(c.order))
	for _, b := range c.order {
		acc := c.buckets[b]
		out = append(out, model.SavingsOpportunity{
			Bucket:     b,
			Spend:      acc.spend,
			Savings:    acc.savings,
			TopVendors: acc.topVendors(3),
			Categories: acc.categories,
			ItemCount:  acc.itemCount,
		})
	}
	return out
}

func (a *bucketAccum) topVendors(n int) []model.VendorSpend {
	out := make([]model.VendorSpend, 0, len(a.vendorSpend))
	for name, spend := range a.vendorSpend {
		out = append(out, model.VendorSpend{Name: name, Spend: spend})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Spend != out[j].Spend {
			return out[i].Spend > out[j].Spend
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
