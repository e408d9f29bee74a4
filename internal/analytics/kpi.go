package analytics

import (
	"fmt"

	"github.com/spendlens/spendlens/internal/model"
)

// assembleCards composes the KPI card list from the computed parts. Pure
// composition: no new numbers are derived here beyond ratios of values the
// pipeline already produced. Cards for unavailable fields are omitted
// entirely, which is how a missing mapping shows up as a disabled feature.
func assembleCards(cols columns, m Metrics, buckets []model.SavingsOpportunity, tail model.TailClassification, tailFlags []TailFlag, sourcing model.SourcingSummary) []model.KPICard {
	cards := make([]model.KPICard, 0, 8)

	totalCard := model.KPICard{
		ID:    "total_spend",
		Label: "Total Spend",
		Kind:  model.KPICurrency,
		Value: m.TotalSpend,
		SubMetrics: []model.SubMetric{
			{Label: "Transactions", Value: fmt.Sprintf("%d", m.TransactionCount)},
			{Label: "Suppliers", Value: fmt.Sprintf("%d", len(m.SupplierDist))},
		},
		Distribution: topEntries(m.SupplierDist, 5),
	}
	if cols.poNumber != "" {
		totalCard.SubMetrics = append(totalCard.SubMetrics,
			model.SubMetric{Label: "Avg PO Value", Value: fmt.Sprintf("%.2f", m.AvgPOValue)})
	}
	cards = append(cards, totalCard)

	if cols.contractRef != "" {
		denom := m.TotalSpend
		if denom == 0 {
			denom = 1
		}
		cards = append(cards, model.KPICard{
			ID:    "contract_coverage",
			Label: "Spend Under Contract",
			Kind:  model.KPIPercent,
			Value: m.ContractedSpend / denom * 100,
			SubMetrics: []model.SubMetric{
				{Label: "Contracted", Value: fmt.Sprintf("%.2f", m.ContractedSpend)},
				{Label: "Unverified", Value: fmt.Sprintf("%.2f", m.UnverifiedSpend)},
			},
		})
	}

	if cols.paymentTerms != "" {
		cards = append(cards, model.KPICard{
			ID:    "payment_risk",
			Label: "Payment Terms Risk",
			Kind:  model.KPICurrency,
			Value: m.PaymentRiskSpend,
		})
	}

	if cols.date != "" {
		cards = append(cards, model.KPICard{
			ID:    "fy_spend",
			Label: m.CurrentFYLabel + " Spend",
			Kind:  model.KPICurrency,
			Value: m.CurrentFYSpend,
			SubMetrics: []model.SubMetric{
				{Label: "Prior FY", Value: fmt.Sprintf("%.2f", m.PriorFYSpend)},
				{Label: "Year to Date", Value: fmt.Sprintf("%.2f", m.YTDSpend)},
			},
		})
	}

	totalSavings := 0.0
	for _, b := range buckets {
		totalSavings += b.Savings
	}
	cards = append(cards, model.KPICard{
		ID:        "savings_potential",
		Label:     "Savings Potential",
		Kind:      model.KPICurrency,
		Value:     totalSavings,
		DrillDown: buckets,
	})

	cards = append(cards, model.KPICard{
		ID:    "tail_spend",
		Label: "Tail Spend",
		Kind:  model.KPICurrency,
		Value: tail.TailSpend,
		SubMetrics: []model.SubMetric{
			{Label: "Tail Suppliers", Value: fmt.Sprintf("%d", len(tail.FinalTail))},
			{Label: "Head Suppliers", Value: fmt.Sprintf("%d", len(tail.Head))},
		},
		DrillDown: tailFlags,
	})

	if cols.item != "" {
		cards = append(cards, model.KPICard{
			ID:    "single_source",
			Label: "Single-Sourced Items",
			Kind:  model.KPINumber,
			Value: float64(sourcing.SingleSourced),
			SubMetrics: []model.SubMetric{
				{Label: "Multi-Sourced", Value: fmt.Sprintf("%d", sourcing.MultiSourced)},
				{Label: "Single-Source Spend", Value: fmt.Sprintf("%.2f", sourcing.SingleSourceSpend)},
			},
		})
	}

	return cards
}

func topEntries(entries []model.DistributionEntry, n int) []model.DistributionEntry {
	if len(entries) <= n {
		return entries
	}
	return entries[:n]
}
