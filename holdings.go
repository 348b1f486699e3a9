package stocklog

import (
	"fmt"
	"sort"
)

// CostBasisMethod defines the method for calculating cost basis.
type CostBasisMethod int

const (
	// AverageCost blends all held units of a symbol into one weighted-average
	// cost, recomputed proportionally on every sell.
	AverageCost CostBasisMethod = iota
	// FIFO (First-In, First-Out) consumes the oldest remaining buy lots first.
	FIFO
)

func (m CostBasisMethod) String() string {
	switch m {
	case AverageCost:
		return "average"
	case FIFO:
		return "fifo"
	default:
		return "unknown"
	}
}

// ParseCostBasisMethod parses a string into a CostBasisMethod.
func ParseCostBasisMethod(s string) (CostBasisMethod, error) {
	switch s {
	case "average":
		return AverageCost, nil
	case "fifo":
		return FIFO, nil
	default:
		return 0, fmt.Errorf("unknown cost basis method: %q", s)
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (m CostBasisMethod) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", m.String())), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (m *CostBasisMethod) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	parsed, err := ParseCostBasisMethod(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Holding is the derived per-symbol snapshot of what is currently held. It is
// recomputed from scratch on every call and never persisted as a source of
// truth. TotalCost covers currently held units only: a sell removes the cost
// basis of the units it disposed.
type Holding struct {
	Symbol    string
	Name      string
	Quantity  int64
	TotalCost Money
	AvgCost   Money
	Realized  Money // realized profit locked in by completed sells
	lots      lots  // remaining buy lots, FIFO method only
}

// Lots returns the remaining buy lots of a FIFO holding, oldest first.
func (h Holding) Lots() []lot {
	out := make([]lot, len(h.lots))
	copy(out, h.lots)
	return out
}

// ComputeHoldings turns a transaction list, in any order, into a per-symbol
// snapshot of current holdings using the given cost basis method.
//
// Transactions are stable-sorted by date first, so equal dates keep their
// original relative order. Symbols whose quantity reaches zero are dropped
// from the result; re-buying later starts a fresh holding.
//
// A sell that exceeds the held quantity is clamped to what is available and
// reported in the returned OversoldError list. The primary defense against
// oversells is Ledger.Add's entry-time rejection; the clamp here only guards
// histories that arrived through import or hand editing, and it is applied
// uniformly for both cost basis methods.
func ComputeHoldings(transactions []Transaction, method CostBasisMethod) (map[string]*Holding, []*OversoldError) {
	sorted := make([]Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	holdings := make(map[string]*Holding)
	var oversold []*OversoldError

	for _, tx := range sorted {
		h, ok := holdings[tx.Symbol]
		if !ok {
			h = &Holding{Symbol: tx.Symbol, Name: tx.Name}
			holdings[tx.Symbol] = h
		}
		if tx.Name != "" {
			h.Name = tx.Name
		}

		switch method {
		case FIFO:
			applyFIFO(h, tx, &oversold)
		default:
			applyAverage(h, tx, &oversold)
		}

		if h.Quantity > 0 {
			h.AvgCost = h.TotalCost.Div(h.Quantity)
		} else {
			h.AvgCost = Money{}
		}
	}

	for symbol, h := range holdings {
		if h.Quantity <= 0 {
			delete(holdings, symbol)
		}
	}
	return holdings, oversold
}

// applyAverage maintains the running (quantity, totalCost) pair of the
// weighted-average method.
func applyAverage(h *Holding, tx Transaction, oversold *[]*OversoldError) {
	if tx.Side == Buy {
		h.TotalCost = h.TotalCost.Add(tx.Amount())
		h.Quantity += tx.Quantity
		return
	}

	sellQty := tx.Quantity
	if sellQty > h.Quantity {
		*oversold = append(*oversold, &OversoldError{
			Symbol: tx.Symbol, Date: tx.Date, Requested: sellQty, Available: h.Quantity,
		})
		sellQty = h.Quantity
	}
	avgCost := h.TotalCost.Div(h.Quantity) // zero when nothing is held
	costOfSold := avgCost.Mul(sellQty)
	proceeds := tx.Price.Mul(sellQty).Sub(tx.Fee)
	h.Realized = h.Realized.Add(proceeds.Sub(costOfSold))
	h.TotalCost = h.TotalCost.Sub(costOfSold)
	h.Quantity -= sellQty
}

// applyFIFO maintains the per-symbol lot queue of the FIFO method.
func applyFIFO(h *Holding, tx Transaction, oversold *[]*OversoldError) {
	if tx.Side == Buy {
		h.lots = append(h.lots, lot{Price: tx.Price, Quantity: tx.Quantity, Date: tx.Date})
		h.TotalCost = h.TotalCost.Add(tx.Amount())
		h.Quantity += tx.Quantity
		return
	}

	remaining, costOfSold, unsatisfied := h.lots.sell(tx.Quantity)
	if unsatisfied > 0 {
		*oversold = append(*oversold, &OversoldError{
			Symbol: tx.Symbol, Date: tx.Date, Requested: tx.Quantity, Available: tx.Quantity - unsatisfied,
		})
	}
	soldQty := tx.Quantity - unsatisfied
	proceeds := tx.Price.Mul(soldQty).Sub(tx.Fee)
	h.Realized = h.Realized.Add(proceeds.Sub(costOfSold))
	h.lots = remaining
	h.TotalCost = h.TotalCost.Sub(costOfSold)
	h.Quantity -= soldQty
}
