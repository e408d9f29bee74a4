package analytics

import (
	"regexp"
	"strings"
	"sync"
)

// CategoryRate binds a savings rate to a set of category keywords. A keyword
// matches case-insensitively at a word start, so "it" hits "IT Services" but
// not "Facility Services", while "tech" still covers "Technology".
type CategoryRate struct {
	Name     string
	Keywords []string
	Rate     float64
}

// Thresholds collects every tunable constant of the computation pipeline
// in one overridable struct, so tenants can adjust vocabulary and cutoffs
// without code changes.
type Thresholds struct {
	// Savings heuristics.
	SingleSourceRate      float64
	ComplianceRates       []CategoryRate
	DefaultComplianceRate float64
	TailSavingsRate       float64
	LowValueCutoff        float64
	LowValueFlatSavings   float64

	// Pareto tail classification.
	HeadCumulativeCutoff    float64
	MidTailCumulativeCutoff float64
	TailSeedShare           float64
	TailSupplierShareCutoff float64
	TailSupplierSpendCutoff float64
	TailTransactionCutoff   float64

	// Classification vocabularies, kept as data so vocabulary changes do
	// not require code changes.
	ProtectedSupplierPattern string
	ProtectedItemPattern     string
	PaymentRiskPattern       string

	// Ranked opportunity list length.
	TopOpportunities int
}

// DefaultThresholds returns the standard heuristic constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SingleSourceRate: 0.02,
		ComplianceRates: []CategoryRate{
			{Name: "Direct Materials", Keywords: []string{"materials", "manufacturing", "production"}, Rate: 0.08},
			{Name: "IT & Software", Keywords: []string{"it", "tech", "software"}, Rate: 0.06},
			{Name: "Logistics", Keywords: []string{"logistics", "transport", "freight"}, Rate: 0.07},
			{Name: "Facilities", Keywords: []string{"facility", "housekeeping", "cleaning"}, Rate: 0.10},
		},
		DefaultComplianceRate: 0.05,
		TailSavingsRate:       0.10,
		LowValueCutoff:        5000,
		LowValueFlatSavings:   500,

		HeadCumulativeCutoff:    0.80,
		MidTailCumulativeCutoff: 0.95,
		TailSeedShare:           0.20,
		TailSupplierShareCutoff: 0.005,
		TailSupplierSpendCutoff: 2_500_000,
		TailTransactionCutoff:   50_000,

		ProtectedSupplierPattern: `safety|critical|spare|regulatory|itar|strategic|contract`,
		ProtectedItemPattern:     `safety|critical|regulatory`,
		PaymentRiskPattern:       `immediate|cash|net 7|net0|pickup`,

		TopOpportunities: 3,
	}
}

// complianceRate picks the consolidation rate for a category string.
func (t Thresholds) complianceRate(category string) float64 {
	lower := strings.ToLower(category)
	for _, cr := range t.ComplianceRates {
		for _, kw := range cr.Keywords {
			if keywordRe(kw).MatchString(lower) {
				return cr.Rate
			}
		}
	}
	return t.DefaultComplianceRate
}

var keywordReCache sync.Map // keyword -> *regexp.Regexp

// keywordRe compiles a keyword into its word-start matcher, caching the
// compiled form since rates are looked up once per row.
func keywordRe(kw string) *regexp.Regexp {
	if re, ok := keywordReCache.Load(kw); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(kw))
	keywordReCache.Store(kw, re)
	return re
}
