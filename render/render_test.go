package render

import (
	"strings"
	"testing"

	"github.com/marcwinter/stocklog"
)

func day(t *testing.T, s string) stocklog.Date {
	t.Helper()
	d, err := stocklog.ParseDate(s)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func sampleTransactions(t *testing.T) []stocklog.Transaction {
	t.Helper()
	return []stocklog.Transaction{
		{ID: "aaaa1111-x", Symbol: "AAPL", Side: stocklog.Buy, Price: stocklog.M(10), Quantity: 100, Date: day(t, "2025-01-10")},
		{ID: "bbbb2222-x", Symbol: "AAPL", Side: stocklog.Sell, Price: stocklog.M(20), Quantity: 50, Date: day(t, "2025-03-10")},
	}
}

func TestHoldingsTable(t *testing.T) {
	holdings, oversold := stocklog.ComputeHoldings(sampleTransactions(t), stocklog.AverageCost)
	out := Holdings(holdings, oversold, stocklog.AverageCost)

	for _, want := range []string{"# Holdings (average)", "| AAPL |", "| Symbol |", "10.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHoldingsEmpty(t *testing.T) {
	out := Holdings(map[string]*stocklog.Holding{}, nil, stocklog.FIFO)
	if !strings.Contains(out, "No open positions.") {
		t.Errorf("output = %q", out)
	}
}

func TestProfitTableMarksUnpricedPositions(t *testing.T) {
	holdings, _ := stocklog.ComputeHoldings(sampleTransactions(t), stocklog.AverageCost)
	report := stocklog.ComputeProfitReport(holdings, nil)
	out := Profit(report, nil)
	if !strings.Contains(out, "10.00*") {
		t.Errorf("unpriced position must be starred:\n%s", out)
	}
	if !strings.Contains(out, "average cost used") {
		t.Errorf("missing footnote:\n%s", out)
	}
}

func TestTransactionsTableShortensIDs(t *testing.T) {
	out := Transactions(sampleTransactions(t))
	if !strings.Contains(out, "| aaaa1111 |") {
		t.Errorf("IDs must be shortened to 8 characters:\n%s", out)
	}
	if strings.Contains(out, "aaaa1111-x") {
		t.Errorf("full ID leaked:\n%s", out)
	}
}

func TestTransactionOneLiner(t *testing.T) {
	txs := sampleTransactions(t)
	if got := Transaction(txs[0]); got != "Bought 100 of AAPL at 10.00 on 2025-01-10" {
		t.Errorf("buy line = %q", got)
	}
	if got := Transaction(txs[1]); got != "Sold 50 of AAPL at 20.00 on 2025-03-10" {
		t.Errorf("sell line = %q", got)
	}
}

func TestTradesTableIncludesWinRate(t *testing.T) {
	trades := stocklog.ComputeClosedTrades(sampleTransactions(t))
	out := Trades(trades, stocklog.ComputeWinRate(trades))
	for _, want := range []string{"# Closed Trades", "1 trades, 1 wins (100.00%)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestMonthlyTable(t *testing.T) {
	months := stocklog.ComputeMonthlyActivity(sampleTransactions(t), stocklog.DefaultCommissionSchedule())
	out := Monthly(months)
	for _, want := range []string{"| 2025-01 |", "| 2025-03 |"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBalanceSummary(t *testing.T) {
	out := Balance(stocklog.M(8995), stocklog.M(10000), "USD")
	for _, want := range []string{"$8,995.00", "$10,000.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestOversoldWarningsAppended(t *testing.T) {
	holdings, oversold := stocklog.ComputeHoldings([]stocklog.Transaction{
		{ID: "a", Symbol: "AAPL", Side: stocklog.Buy, Price: stocklog.M(10), Quantity: 10, Date: day(t, "2025-01-10")},
		{ID: "b", Symbol: "AAPL", Side: stocklog.Sell, Price: stocklog.M(12), Quantity: 25, Date: day(t, "2025-02-10")},
	}, stocklog.AverageCost)
	out := Holdings(holdings, oversold, stocklog.AverageCost)
	if !strings.Contains(out, "> Warning:") {
		t.Errorf("oversold warning missing:\n%s", out)
	}
}
