// Package render formats ledger calculations as markdown, ready for a
// terminal renderer or a plain pager.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/marcwinter/stocklog"
)

// Transaction renders a transaction to a one-line string.
func Transaction(tx stocklog.Transaction) string {
	switch tx.Side {
	case stocklog.Sell:
		return fmt.Sprintf("Sold %d of %s at %s on %s", tx.Quantity, tx.Symbol, tx.Price, tx.Date)
	default:
		return fmt.Sprintf("Bought %d of %s at %s on %s", tx.Quantity, tx.Symbol, tx.Price, tx.Date)
	}
}

// Holdings renders the holdings table. Oversold warnings, if any, are listed
// after the table.
func Holdings(holdings map[string]*stocklog.Holding, oversold []*stocklog.OversoldError, method stocklog.CostBasisMethod) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Holdings (%s)\n\n", method)

	if len(holdings) == 0 {
		fmt.Fprintln(&b, "No open positions.")
		renderOversold(&b, oversold)
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Name | Quantity | Avg Cost | Total Cost | Realized |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|")
	for _, h := range sortedHoldings(holdings) {
		fmt.Fprintf(&b, "| %s | %s | %d | %s | %s | %s |\n",
			h.Symbol, h.Name, h.Quantity, h.AvgCost, h.TotalCost, h.Realized.Signed())
	}
	renderOversold(&b, oversold)
	return b.String()
}

// Profit renders the profit report table, positions first, totals last.
func Profit(report stocklog.ProfitReport, oversold []*stocklog.OversoldError) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Profit Report\n\n")

	if len(report.Positions) == 0 {
		fmt.Fprintln(&b, "No open positions.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Symbol | Quantity | Avg Cost | Price | Value | Profit | Profit % |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|")
	for _, p := range report.Positions {
		price := p.CurrentPrice.String()
		if !p.Priced {
			price += "*"
		}
		fmt.Fprintf(&b, "| %s | %d | %s | %s | %s | %s | %s |\n",
			p.Symbol, p.Quantity, p.AvgCost, price, p.CurrentValue, p.Profit.Signed(), p.ProfitPercent)
	}
	fmt.Fprintf(&b, "\nTotal cost %s, value %s, profit %s (%s).\n",
		report.TotalCost, report.TotalValue, report.TotalProfit.Signed(), report.TotalProfitPercent)
	fmt.Fprintln(&b, "\n\\* no stored price, average cost used")
	renderOversold(&b, oversold)
	return b.String()
}

// Transactions renders the transaction list, oldest first.
func Transactions(txs []stocklog.Transaction) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Transactions\n\n")

	if len(txs) == 0 {
		fmt.Fprintln(&b, "No transactions.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Side | Symbol | Quantity | Price | Amount | Fee | ID |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|:---|")
	for _, tx := range txs {
		fmt.Fprintf(&b, "| %s | %s | %s | %d | %s | %s | %s | %s |\n",
			tx.Date, tx.Side, tx.Symbol, tx.Quantity, tx.Price, tx.Amount(), tx.Fee, shortID(tx.ID))
	}
	return b.String()
}

// Trades renders the closed-trade list and its win-rate summary.
func Trades(trades []stocklog.ClosedTrade, rate stocklog.WinRate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Closed Trades\n\n")

	if len(trades) == 0 {
		fmt.Fprintln(&b, "No closed trades.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Date | Symbol | Quantity | Sell Price | Proceeds | Cost | Profit | Profit % |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|---:|")
	for _, t := range trades {
		fmt.Fprintf(&b, "| %s | %s | %d | %s | %s | %s | %s | %s |\n",
			t.SellDate, t.Symbol, t.Quantity, t.SellPrice, t.Proceeds, t.Cost, t.Profit.Signed(), t.ProfitPercent)
	}
	fmt.Fprintf(&b, "\n%d trades, %d wins (%s), gross profit %s, gross loss %s",
		rate.Trades, rate.Wins, rate.Rate, rate.TotalProfit, rate.TotalLoss)
	if !rate.ProfitFactor.IsZero() {
		fmt.Fprintf(&b, ", profit factor %s", rate.ProfitFactor)
	}
	fmt.Fprintln(&b, ".")
	return b.String()
}

// Monthly renders the per-month activity table.
func Monthly(months []stocklog.MonthlyActivity) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Monthly Activity\n\n")

	if len(months) == 0 {
		fmt.Fprintln(&b, "No transactions.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Month | Bought | Sold | Fees | Net |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|")
	for _, m := range months {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			m.Month, m.Bought, m.Sold, m.Fees, m.Net.Signed())
	}
	return b.String()
}

// Balance renders the cash-balance summary.
func Balance(balance, initialFunds stocklog.Money, currency string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Account Balance\n\n")
	fmt.Fprintf(&b, "Initial funds: %s\n\n", initialFunds.Display(currency))
	fmt.Fprintf(&b, "Cash balance:  %s\n", balance.Display(currency))
	return b.String()
}

func sortedHoldings(holdings map[string]*stocklog.Holding) []*stocklog.Holding {
	out := make([]*stocklog.Holding, 0, len(holdings))
	for _, h := range holdings {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out
}

func renderOversold(b *strings.Builder, oversold []*stocklog.OversoldError) {
	if len(oversold) == 0 {
		return
	}
	fmt.Fprintln(b)
	for _, o := range oversold {
		fmt.Fprintf(b, "> Warning: %s\n", o)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
