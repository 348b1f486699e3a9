package stocklog

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ClosedTrade is one completed sell matched against its FIFO buy lots.
type ClosedTrade struct {
	Symbol        string
	Name          string
	SellDate      Date
	Quantity      int64
	SellPrice     Money
	Proceeds      Money // sell amount minus declared fee
	Cost          Money // FIFO cost basis of the units sold
	Profit        Money
	ProfitPercent Percent
}

// ComputeClosedTrades replays the history and emits one ClosedTrade per sell,
// FIFO-matched per symbol, in chronological order. Sells beyond the available
// lots are matched for whatever is available; the holdings calculator is the
// place that reports such oversells.
func ComputeClosedTrades(transactions []Transaction) []ClosedTrade {
	sorted := make([]Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	queues := make(map[string]lots)
	var trades []ClosedTrade

	for _, tx := range sorted {
		if tx.Side == Buy {
			queues[tx.Symbol] = append(queues[tx.Symbol], lot{Price: tx.Price, Quantity: tx.Quantity, Date: tx.Date})
			continue
		}

		remaining, cost, unsatisfied := queues[tx.Symbol].sell(tx.Quantity)
		queues[tx.Symbol] = remaining
		matched := tx.Quantity - unsatisfied
		proceeds := tx.Price.Mul(matched).Sub(tx.Fee)
		profit := proceeds.Sub(cost)

		trades = append(trades, ClosedTrade{
			Symbol:        tx.Symbol,
			Name:          tx.Name,
			SellDate:      tx.Date,
			Quantity:      matched,
			SellPrice:     tx.Price,
			Proceeds:      proceeds,
			Cost:          cost,
			Profit:        profit,
			ProfitPercent: PercentOf(profit, cost),
		})
	}
	return trades
}

// WinRate summarizes closed trades: how many were profitable, and the ratio
// of gross profit to gross loss.
type WinRate struct {
	Trades       int64
	Wins         int64
	Rate         Percent
	TotalProfit  Money
	TotalLoss    Money
	ProfitFactor decimal.Decimal
}

// ComputeWinRate aggregates a closed-trade list. A zero gross loss yields a
// zero profit factor rather than a division error.
func ComputeWinRate(trades []ClosedTrade) WinRate {
	var w WinRate
	for _, trade := range trades {
		w.Trades++
		if trade.Profit.IsPositive() {
			w.Wins++
			w.TotalProfit = w.TotalProfit.Add(trade.Profit)
		} else {
			w.TotalLoss = w.TotalLoss.Add(trade.Profit.Abs())
		}
	}
	w.Rate = PercentFromRatio(w.Wins, w.Trades)
	if !w.TotalLoss.IsZero() {
		w.ProfitFactor = w.TotalProfit.value.Div(w.TotalLoss.value).Round(2)
	}
	return w
}

// MonthlyActivity aggregates one calendar month of trading.
type MonthlyActivity struct {
	Month  string // "2006-01"
	Bought Money  // buy amounts including fees
	Sold   Money  // sell amounts net of fees
	Fees   Money
	Net    Money // Sold - Bought
}

// ComputeMonthlyActivity groups the history by calendar month. Fees come from
// the commission schedule unless the transaction declares one, matching the
// cash-balance computation.
func ComputeMonthlyActivity(transactions []Transaction, schedule CommissionSchedule) []MonthlyActivity {
	byMonth := make(map[string]*MonthlyActivity)
	for _, tx := range transactions {
		key := tx.Date.MonthKey()
		activity, ok := byMonth[key]
		if !ok {
			activity = &MonthlyActivity{Month: key}
			byMonth[key] = activity
		}
		fee := schedule.Fee(tx)
		activity.Fees = activity.Fees.Add(fee)
		switch tx.Side {
		case Buy:
			activity.Bought = activity.Bought.Add(tx.Amount().Add(fee))
		case Sell:
			activity.Sold = activity.Sold.Add(tx.Amount().Sub(fee))
		}
	}

	months := make([]MonthlyActivity, 0, len(byMonth))
	for _, activity := range byMonth {
		activity.Net = activity.Sold.Sub(activity.Bought)
		months = append(months, *activity)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Month < months[j].Month })
	return months
}
