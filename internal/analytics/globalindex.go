package analytics

import (
	"math"
	"sort"

	"github.com/spendlens/spendlens/internal/model"
)

// GlobalIndex is the dataset-wide, filter-independent baseline. It is built
// once per computation from the entire row set; the active filters must
// never influence anything in here.
type GlobalIndex struct {
	// Items maps item description to its global aggregate.
	Items map[string]*model.ItemAggregate

	// SupplierSpend and SupplierTxns aggregate the full dataset per supplier.
	SupplierSpend map[string]float64
	SupplierTxns  map[string]int

	// SupplierCategory records the first category observed per supplier,
	// used as its representative category.
	SupplierCategory map[string]string

	// TailSeed is the set of suppliers occupying the bottom slice of global
	// spend (ascending cumulative, within the seed share). The savings
	// heuristics use it as the tail-spend membership test.
	TailSeed map[string]struct{}

	TotalSpend float64
}

// buildGlobalIndex makes a single pass over the full normalized dataset.
func buildGlobalIndex(all []ViewRow, t Thresholds) *GlobalIndex {
	g := &GlobalIndex{
		Items:            make(map[string]*model.ItemAggregate),
		SupplierSpend:    make(map[string]float64),
		SupplierTxns:     make(map[string]int),
		SupplierCategory: make(map[string]string),
		TailSeed:         make(map[string]struct{}),
	}

	for _, vr := range all {
		g.TotalSpend += vr.Amount
		if vr.Supplier != "" {
			g.SupplierSpend[vr.Supplier] += vr.Amount
			g.SupplierTxns[vr.Supplier]++
			if _, ok := g.SupplierCategory[vr.Supplier]; !ok && vr.Category != "" {
				g.SupplierCategory[vr.Supplier] = vr.Category
			}
		}

		if vr.Item == "" {
			continue
		}
		item, ok := g.Items[vr.Item]
		if !ok {
			item = &model.ItemAggregate{
				Description: vr.Item,
				MinPrice:    math.Inf(1),
				Suppliers:   make(map[string]struct{}),
			}
			g.Items[vr.Item] = item
		}
		if vr.Supplier != "" {
			item.Suppliers[vr.Supplier] = struct{}{}
		}
		if vr.UnitPrice > 0 && vr.UnitPrice < item.MinPrice {
			item.MinPrice = vr.UnitPrice
			item.BestSupplier = vr.Supplier
		}
	}

	// An item whose prices were all zero never had its minimum set; reset
	// the sentinel so downstream subtraction cannot see +Inf.
	for _, item := range g.Items {
		if math.IsInf(item.MinPrice, 1) {
			item.MinPrice = 0
		}
	}

	g.seedTail(t)
	return g
}

// seedTail walks suppliers in ascending spend order and collects those whose
// running cumulative total stays within the seed share of global spend.
func (g *GlobalIndex) seedTail(t Thresholds) {
	if g.TotalSpend <= 0 {
		return
	}

	suppliers := make([]string, 0, len(g.SupplierSpend))
	for name := range g.SupplierSpend {
		suppliers = append(suppliers, name)
	}
	sort.Slice(suppliers, func(i, j int) bool {
		si, sj := g.SupplierSpend[suppliers[i]], g.SupplierSpend[suppliers[j]]
		if si != sj {
			return si < sj
		}
		return suppliers[i] < suppliers[j]
	})

	limit := g.TotalSpend * t.TailSeedShare
	cumulative := 0.0
	for _, name := range suppliers {
		cumulative += g.SupplierSpend[name]
		if cumulative > limit {
			break
		}
		g.TailSeed[name] = struct{}{}
	}
}

// Item returns the global aggregate for an item description, or nil.
func (g *GlobalIndex) Item(description string) *model.ItemAggregate {
	if description == "" {
		return nil
	}
	return g.Items[description]
}

// InTailSeed reports membership in the global tail seed set.
func (g *GlobalIndex) InTailSeed(supplier string) bool {
	_, ok := g.TailSeed[supplier]
	return ok
}

// SupplierAggregates returns per-supplier rollups sorted descending by spend.
func (g *GlobalIndex) SupplierAggregates() []model.SupplierAggregate {
	out := make([]model.SupplierAggregate, 0, len(g.SupplierSpend))
	for name, spend := range g.SupplierSpend {
		out = append(out, model.SupplierAggregate{
			Name:             name,
			Category:         g.SupplierCategory[name],
			TotalSpend:       spend,
			TransactionCount: g.SupplierTxns[name],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalSpend != out[j].TotalSpend {
			return out[i].TotalSpend > out[j].TotalSpend
		}
		return out[i].Name < out[j].Name
	})
	return out
}
