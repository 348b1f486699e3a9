package stocklog

import "sort"

// PositionProfit is the profit view of one holding under an effective
// current price.
type PositionProfit struct {
	Symbol        string
	Name          string
	Quantity      int64
	AvgCost       Money
	CurrentPrice  Money
	CurrentValue  Money
	TotalCost     Money
	Profit        Money
	ProfitPercent Percent
	Priced        bool // false when no override existed and AvgCost stood in
}

// ProfitReport combines all holdings with a price source into per-symbol and
// aggregate profit figures.
type ProfitReport struct {
	TotalCost          Money
	TotalValue         Money
	TotalProfit        Money
	TotalProfitPercent Percent
	Positions          []PositionProfit
}

// ComputeProfitReport values every holding at its override price when one is
// present, else at its average cost. An un-priced holding therefore reports
// as flat break-even rather than unknown. Positions are sorted by descending
// absolute profit, ties broken by symbol; the sort is a presentation policy,
// not a correctness contract.
func ComputeProfitReport(holdings map[string]*Holding, priceOverrides map[string]Money) ProfitReport {
	var report ProfitReport

	for _, h := range holdings {
		price, priced := priceOverrides[h.Symbol]
		if !priced || price.IsZero() {
			price = h.AvgCost
			priced = false
		}
		value := price.Mul(h.Quantity)
		profit := value.Sub(h.TotalCost)

		report.Positions = append(report.Positions, PositionProfit{
			Symbol:        h.Symbol,
			Name:          h.Name,
			Quantity:      h.Quantity,
			AvgCost:       h.AvgCost,
			CurrentPrice:  price,
			CurrentValue:  value,
			TotalCost:     h.TotalCost,
			Profit:        profit,
			ProfitPercent: PercentOf(profit, h.TotalCost),
			Priced:        priced,
		})
		report.TotalCost = report.TotalCost.Add(h.TotalCost)
		report.TotalValue = report.TotalValue.Add(value)
	}

	sort.SliceStable(report.Positions, func(i, j int) bool {
		a, b := report.Positions[i], report.Positions[j]
		if c := a.Profit.Abs().Cmp(b.Profit.Abs()); c != 0 {
			return c > 0
		}
		return a.Symbol < b.Symbol
	})

	report.TotalProfit = report.TotalValue.Sub(report.TotalCost)
	report.TotalProfitPercent = PercentOf(report.TotalProfit, report.TotalCost)
	return report
}
