package analytics

import (
	"regexp"
	"sort"
	"time"

	"github.com/spendlens/spendlens/internal/model"
)

// Metrics is everything the single reducing pass over the active view
// produces. Absent field mappings leave the dependent slices empty rather
// than failing the computation.
type Metrics struct {
	TotalSpend       float64
	TransactionCount int

	ContractedSpend float64
	UnverifiedSpend float64

	PaymentRiskSpend float64

	CurrentFYSpend float64
	PriorFYSpend   float64
	YTDSpend       float64
	CurrentFYLabel string

	CategoryDist     []model.DistributionEntry
	BusinessUnitDist []model.DistributionEntry
	LocationDist     []model.DistributionEntry
	SupplierDist     []model.DistributionEntry

	DistinctPOCount int
	AvgPOValue      float64

	Months []model.MonthBucket
}

// Labels for rows whose mapped cell is blank. The column exists, so the
// spend still has to land somewhere for the distribution sums to match the
// view total.
const (
	unknownSupplier     = "Unknown"
	uncategorizedBucket = "Uncategorized"
)

type distAccum struct {
	spend map[string]float64
	count map[string]int
}

func newDistAccum() *distAccum {
	return &distAccum{spend: make(map[string]float64), count: make(map[string]int)}
}

func (d *distAccum) add(name string, blank string, amount float64) {
	if name == "" {
		name = blank
	}
	d.spend[name] += amount
	d.count[name]++
}

func (d *distAccum) entries(total float64) []model.DistributionEntry {
	denom := total
	if denom == 0 {
		denom = 1
	}
	out := make([]model.DistributionEntry, 0, len(d.spend))
	for name, spend := range d.spend {
		out = append(out, model.DistributionEntry{
			Name:             name,
			Spend:            spend,
			Pct:              spend / denom * 100,
			TransactionCount: d.count[name],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Spend != out[j].Spend {
			return out[i].Spend > out[j].Spend
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// metricsAccumulator is the reducer driven by the engine's combined pass
// over the active view.
type metricsAccumulator struct {
	cols        columns
	now         time.Time
	currentFY   int
	paymentRisk *regexp.Regexp

	totalSpend       float64
	txnCount         int
	contractedSpend  float64
	unverifiedSpend  float64
	paymentRiskSpend float64
	currentFYSpend   float64
	priorFYSpend     float64
	ytdSpend         float64

	categories    *distAccum
	businessUnits *distAccum
	locations     *distAccum
	suppliers     *distAccum

	poNumbers map[string]struct{}
	months    map[string]*model.MonthBucket
}

func newMetricsAccumulator(cols columns, now time.Time, riskPattern string) *metricsAccumulator {
	return &metricsAccumulator{
		cols:          cols,
		now:           now,
		currentFY:     fiscalYear(now),
		paymentRisk:   regexp.MustCompile(`(?i)` + riskPattern),
		categories:    newDistAccum(),
		businessUnits: newDistAccum(),
		locations:     newDistAccum(),
		suppliers:     newDistAccum(),
		poNumbers:     make(map[string]struct{}),
		months:        make(map[string]*model.MonthBucket),
	}
}

func (m *metricsAccumulator) add(vr ViewRow) {
	m.totalSpend += vr.Amount
	m.txnCount++

	if m.cols.contractRef != "" {
		if vr.ContractRef != "" {
			m.contractedSpend += vr.Amount
		} else {
			m.unverifiedSpend += vr.Amount
		}
	}

	if m.cols.paymentTerms != "" && vr.PaymentTerms != "" && m.paymentRisk.MatchString(vr.PaymentTerms) {
		m.paymentRiskSpend += vr.Amount
	}

	if m.cols.supplier != "" {
		m.suppliers.add(vr.Supplier, unknownSupplier, vr.Amount)
	}
	if m.cols.category != "" {
		m.categories.add(vr.Category, uncategorizedBucket, vr.Amount)
	}
	if m.cols.businessUnit != "" {
		m.businessUnits.add(vr.BusinessUnit, uncategorizedBucket, vr.Amount)
	}
	if m.cols.location != "" {
		m.locations.add(vr.Location, uncategorizedBucket, vr.Amount)
	}

	if m.cols.poNumber != "" && vr.PONumber != "" {
		m.poNumbers[vr.PONumber] = struct{}{}
	}

	// Rows without a parseable date count toward spend totals but drop out
	// of time-series and fiscal-year aggregation.
	if vr.Date == nil {
		return
	}
	d := *vr.Date

	switch fiscalYear(d) {
	case m.currentFY:
		m.currentFYSpend += vr.Amount
		if !d.After(m.now) {
			m.ytdSpend += vr.Amount
		}
	case m.currentFY - 1:
		m.priorFYSpend += vr.Amount
	}

	key := d.Format("2006-01")
	bucket, ok := m.months[key]
	if !ok {
		bucket = &model.MonthBucket{
			Key:   key,
			Label: d.Format("Jan 2006"),
			Start: time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC),
		}
		m.months[key] = bucket
	}
	bucket.Spend += vr.Amount
	bucket.TransactionCount++
}

func (m *metricsAccumulator) finalize() Metrics {
	out := Metrics{
		TotalSpend:       m.totalSpend,
		TransactionCount: m.txnCount,
		ContractedSpend:  m.contractedSpend,
		UnverifiedSpend:  m.unverifiedSpend,
		PaymentRiskSpend: m.paymentRiskSpend,
		CurrentFYSpend:   m.currentFYSpend,
		PriorFYSpend:     m.priorFYSpend,
		YTDSpend:         m.ytdSpend,
		CurrentFYLabel:   fiscalYearLabel(m.currentFY),
		CategoryDist:     m.categories.entries(m.totalSpend),
		BusinessUnitDist: m.businessUnits.entries(m.totalSpend),
		LocationDist:     m.locations.entries(m.totalSpend),
		SupplierDist:     m.suppliers.entries(m.totalSpend),
		DistinctPOCount:  len(m.poNumbers),
	}

	if m.cols.poNumber != "" {
		denom := float64(len(m.poNumbers))
		if denom == 0 {
			denom = 1
		}
		out.AvgPOValue = m.totalSpend / denom
	}

	months := make([]model.MonthBucket, 0, len(m.months))
	for _, b := range m.months {
		months = append(months, *b)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Start.Before(months[j].Start) })
	for i := range months {
		if i == 0 {
			months[i].GrowthPct = 0
			continue
		}
		prev := months[i-1].Spend
		if prev == 0 {
			months[i].GrowthPct = 0
			continue
		}
		months[i].GrowthPct = (months[i].Spend - prev) / prev * 100
	}
	out.Months = months

	return out
}

// fiscalYear returns the fiscal year a date belongs to. The fiscal year
// starts April 1, so FY(t) is the calendar year when the month is April or
// later and the previous year otherwise.
func fiscalYear(t time.Time) int {
	if t.Month() >= time.April {
		return t.Year()
	}
	return t.Year() - 1
}

// fiscalYearStart returns April 1 of the fiscal year containing t.
func fiscalYearStart(t time.Time) time.Time {
	return time.Date(fiscalYear(t), time.April, 1, 0, 0, 0, 0, time.UTC)
}

func fiscalYearLabel(fy int) string {
	return "FY" + time.Date(fy, time.April, 1, 0, 0, 0, 0, time.UTC).Format("06") + "-" +
		time.Date(fy+1, time.April, 1, 0, 0, 0, 0, time.UTC).Format("06")
}
