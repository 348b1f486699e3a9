package stocklog

// lot is a remaining slice of one historical buy, tracked for FIFO cost-basis
// accounting. A partially consumed lot keeps its original unit price and
// shrinks its quantity; lots are never merged.
type lot struct {
	Price    Money
	Quantity int64
	Date     Date
}

// lots is a FIFO queue of remaining buy lots for one symbol, oldest first.
type lots []lot

// cost returns the cost basis of all remaining lots, accumulated with
// per-step rounding.
func (l lots) cost() Money {
	var total Money
	for _, current := range l {
		total = total.Add(current.Price.Mul(current.Quantity))
	}
	return total
}

// quantity returns the total units remaining across lots.
func (l lots) quantity() int64 {
	var total int64
	for _, current := range l {
		total += current.Quantity
	}
	return total
}

// sell consumes quantityToSell units from the front of the queue. It returns
// the remaining lots, the cost basis of the consumed units, and any unsatisfied
// remainder (an oversell is reported, never silently absorbed).
func (l lots) sell(quantityToSell int64) (remaining lots, costOfSold Money, unsatisfied int64) {
	remaining = l
	for quantityToSell > 0 && len(remaining) > 0 {
		oldest := remaining[0]
		if oldest.Quantity <= quantityToSell {
			// Full consumption of the oldest lot.
			costOfSold = costOfSold.Add(oldest.Price.Mul(oldest.Quantity))
			quantityToSell -= oldest.Quantity
			remaining = remaining[1:]
		} else {
			// Partial consumption: the lot keeps its price and shrinks.
			costOfSold = costOfSold.Add(oldest.Price.Mul(quantityToSell))
			shrunk := oldest
			shrunk.Quantity -= quantityToSell
			remaining = append(lots{shrunk}, remaining[1:]...)
			quantityToSell = 0
		}
	}
	return remaining, costOfSold, quantityToSell
}
