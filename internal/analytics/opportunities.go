package analytics

import (
	"math"
	"sort"

	"github.com/spendlens/spendlens/internal/model"
)

// rankOpportunities keeps the buckets with positive savings, sorts them
// descending by absolute savings and returns the top N with supporting
// detail for the dashboard's opportunity list.
func rankOpportunities(buckets []model.SavingsOpportunity, topN int) []model.RankedOpportunity {
	candidates := make([]model.SavingsOpportunity, 0, len(buckets))
	for _, b := range buckets {
		if b.Savings > 0 {
			candidates = append(candidates, b)
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		return math.Abs(candidates[i].Savings) > math.Abs(candidates[j].Savings)
	})
	if topN > 0 && len(candidates) > topN {
		candidates = candidates[:topN]
	}

	out := make([]model.RankedOpportunity, 0, len(candidates))
	for _, b := range candidates {
		denom := b.Spend
		if denom == 0 {
			denom = 1
		}
		out = append(out, model.RankedOpportunity{
			Bucket:         b.Bucket,
			Label:          b.Bucket.Label(),
			Spend:          b.Spend,
			Savings:        b.Savings,
			SavingsPct:     b.Savings / denom * 100,
			ProjectedSpend: b.Spend - b.Savings,
			Recommendation: recommendationFor(b.Bucket),
			Formula:        formulaFor(b.Bucket),
		})
	}
	return out
}

func recommendationFor(b model.OpportunityBucket) string {
	switch b {
	case model.BucketPriceVariance:
		return "Negotiate affected line items down to the best observed unit price, or shift volume to the lowest-price supplier."
	case model.BucketSingleSource:
		return "Qualify a second supplier for single-sourced items to create price competition and reduce supply risk."
	case model.BucketCompliance:
		return "Move uncontracted spend onto negotiated agreements; prioritize the categories with the highest consolidation rates."
	case model.BucketTailSpend:
		return "Consolidate tail suppliers into preferred vendors or a managed catalog to cut unit costs and overhead."
	case model.BucketProcessEfficiency:
		return "Batch low-value purchases or route them through catalogs and P-cards to reduce per-order processing cost."
	default:
		return ""
	}
}

func formulaFor(b model.OpportunityBucket) string {
	switch b {
	case model.BucketPriceVariance:
		return "sum over affected rows of (unit price - global minimum price) x implied quantity"
	case model.BucketSingleSource:
		return "2% of spend on items bought from exactly one supplier"
	case model.BucketCompliance:
		return "uncontracted spend x category consolidation rate (5-10% by category keyword)"
	case model.BucketTailSpend:
		return "10% of spend with suppliers in the global tail set"
	case model.BucketProcessEfficiency:
		return "flat 500 per purchase under the low-value cutoff"
	default:
		return ""
	}
}
