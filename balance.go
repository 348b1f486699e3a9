package stocklog

import "sort"

// ComputeAccountBalance derives the account cash balance from an initial
// funds figure and the transaction stream in chronological order. A buy
// consumes price*quantity plus its fee; a sell produces price*quantity minus
// its fee. Fees come from the commission schedule unless the transaction
// carries a declared fee.
func ComputeAccountBalance(transactions []Transaction, initialFunds Money, schedule CommissionSchedule) Money {
	sorted := make([]Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	balance := initialFunds
	for _, tx := range sorted {
		fee := schedule.Fee(tx)
		switch tx.Side {
		case Buy:
			balance = balance.Sub(tx.Amount().Add(fee))
		case Sell:
			balance = balance.Add(tx.Amount().Sub(fee))
		}
	}
	return balance
}
