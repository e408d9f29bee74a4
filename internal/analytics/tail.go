package analytics

import (
	"regexp"

	"github.com/spendlens/spendlens/internal/model"
)

// tailClassifier Pareto-ranks suppliers against the global, unfiltered
// baseline. Filters must never change its output.
type tailClassifier struct {
	protectedSupplier *regexp.Regexp
	protectedItem     *regexp.Regexp
	thresholds        Thresholds
}

func newTailClassifier(t Thresholds) *tailClassifier {
	return &tailClassifier{
		protectedSupplier: regexp.MustCompile(`(?i)` + t.ProtectedSupplierPattern),
		protectedItem:     regexp.MustCompile(`(?i)` + t.ProtectedItemPattern),
		thresholds:        t,
	}
}

// classify walks all suppliers descending by global spend, banding them by
// cumulative share and carving out the exclusion-adjusted final tail set.
func (tc *tailClassifier) classify(global *GlobalIndex) model.TailClassification {
	out := model.TailClassification{
		Head:      []string{},
		MidTail:   []string{},
		LongTail:  []string{},
		FinalTail: []string{},
		Pareto:    []model.ParetoPoint{},
	}

	suppliers := global.SupplierAggregates()
	if len(suppliers) == 0 {
		return out
	}

	total := global.TotalSpend
	if total <= 0 {
		total = 1
	}

	cumulative := 0.0
	for i, s := range suppliers {
		before := cumulative / total
		cumulative += s.TotalSpend

		switch {
		case before < tc.thresholds.HeadCumulativeCutoff:
			out.Head = append(out.Head, s.Name)
		case before < tc.thresholds.MidTailCumulativeCutoff:
			out.MidTail = append(out.MidTail, s.Name)
		default:
			out.LongTail = append(out.LongTail, s.Name)
		}

		share := s.TotalSpend / total
		if before > tc.thresholds.HeadCumulativeCutoff &&
			(share < tc.thresholds.TailSupplierShareCutoff || s.TotalSpend < tc.thresholds.TailSupplierSpendCutoff) &&
			!tc.isProtectedSupplier(s.Name, s.Category) {
			out.FinalTail = append(out.FinalTail, s.Name)
			out.TailSpend += s.TotalSpend
		}

		out.Pareto = append(out.Pareto, model.ParetoPoint{
			Rank:          i + 1,
			Supplier:      s.Name,
			Spend:         s.TotalSpend,
			CumulativePct: cumulative / total * 100,
		})
	}

	return out
}

func (tc *tailClassifier) isProtectedSupplier(name, category string) bool {
	return tc.protectedSupplier.MatchString(name) || (category != "" && tc.protectedSupplier.MatchString(category))
}

// TailFlag is the transaction-level tail marker used by drill-down views.
type TailFlag struct {
	Supplier string  `json:"supplier"`
	Item     string  `json:"item,omitempty"`
	Amount   float64 `json:"amount"`
}

// flagTailTransactions marks active-view rows as tail: small transactions
// and final-tail suppliers qualify, protected item descriptions never do.
func (tc *tailClassifier) flagTailTransactions(view []ViewRow, tail *model.TailClassification) []TailFlag {
	inTail := make(map[string]struct{}, len(tail.FinalTail))
	for _, s := range tail.FinalTail {
		inTail[s] = struct{}{}
	}

	flags := make([]TailFlag, 0)
	for _, vr := range view {
		if vr.Item != "" && tc.protectedItem.MatchString(vr.Item) {
			continue
		}
		_, supplierTail := inTail[vr.Supplier]
		if vr.Amount < tc.thresholds.TailTransactionCutoff || supplierTail {
			flags = append(flags, TailFlag{Supplier: vr.Supplier, Item: vr.Item, Amount: vr.Amount})
		}
	}
	return flags
}
