package analytics

import (
	"sort"

	"github.com/spendlens/spendlens/internal/model"
)

// analyzeSourcing groups the active view by item description and classifies
// each item as single- or multi-sourced. Items without a resolvable
// description column simply produce an empty summary.
func analyzeSourcing(view []ViewRow) model.SourcingSummary {
	type itemAccum struct {
		spend         float64
		supplierSpend map[string]float64
	}

	items := make(map[string]*itemAccum)
	for _, vr := range view {
		if vr.Item == "" {
			continue
		}
		acc, ok := items[vr.Item]
		if !ok {
			acc = &itemAccum{supplierSpend: make(map[string]float64)}
			items[vr.Item] = acc
		}
		acc.spend += vr.Amount
		if vr.Supplier != "" {
			acc.supplierSpend[vr.Supplier] += vr.Amount
		}
	}

	summary := model.SourcingSummary{Items: make([]model.SourcedItem, 0, len(items))}
	for desc, acc := range items {
		denom := acc.spend
		if denom == 0 {
			denom = 1
		}

		shares := make([]model.SupplierShare, 0, len(acc.supplierSpend))
		for supplier, spend := range acc.supplierSpend {
			shares = append(shares, model.SupplierShare{
				Supplier: supplier,
				Spend:    spend,
				SharePct: spend / denom * 100,
			})
		}
		sort.Slice(shares, func(i, j int) bool {
			if shares[i].Spend != shares[j].Spend {
				return shares[i].Spend > shares[j].Spend
			}
			return shares[i].Supplier < shares[j].Supplier
		})

		single := len(acc.supplierSpend) == 1
		if single {
			summary.SingleSourced++
			summary.SingleSourceSpend += acc.spend
		} else if len(acc.supplierSpend) > 1 {
			summary.MultiSourced++
		}

		summary.Items = append(summary.Items, model.SourcedItem{
			Description:  desc,
			Spend:        acc.spend,
			Suppliers:    shares,
			SingleSource: single,
		})
	}

	sort.Slice(summary.Items, func(i, j int) bool {
		if summary.Items[i].Spend != summary.Items[j].Spend {
			return summary.Items[i].Spend > summary.Items[j].Spend
		}
		return summary.Items[i].Description < summary.Items[j].Description
	})

	return summary
}
