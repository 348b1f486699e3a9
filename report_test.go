package stocklog

import "testing"

func reportHoldings(t *testing.T) map[string]*Holding {
	t.Helper()
	holdings, oversold := ComputeHoldings([]Transaction{
		buy("t1", "AAPL", 10, 100, "2025-01-10"),
		buy("t2", "GOOG", 2, 2800, "2025-01-15"),
		buy("t3", "MSFT", 5, 400, "2025-01-20"),
	}, AverageCost)
	if len(oversold) != 0 {
		t.Fatalf("unexpected oversold: %v", oversold)
	}
	return holdings
}

func TestComputeProfitReport(t *testing.T) {
	holdings := reportHoldings(t)
	report := ComputeProfitReport(holdings, map[string]Money{
		"AAPL": M(120), // +200
		"GOOG": M(2750), // -100
	})

	if len(report.Positions) != 3 {
		t.Fatalf("positions = %d, want 3", len(report.Positions))
	}

	// Sorted by absolute profit descending: AAPL +200, GOOG -100, MSFT flat.
	wantOrder := []string{"AAPL", "GOOG", "MSFT"}
	for i, want := range wantOrder {
		if got := report.Positions[i].Symbol; got != want {
			t.Fatalf("position %d = %s, want %s", i, got, want)
		}
	}

	aapl := report.Positions[0]
	if !aapl.Profit.Equal(M(200)) || !aapl.Priced {
		t.Errorf("AAPL = %+v, want profit 200.00 from the stored price", aapl)
	}
	if got := aapl.ProfitPercent.String(); got != "20.00%" {
		t.Errorf("AAPL profit percent = %s", got)
	}

	goog := report.Positions[1]
	if !goog.Profit.Equal(M(-100)) {
		t.Errorf("GOOG profit = %s, want -100.00", goog.Profit)
	}

	// No stored price: valued at average cost, flat break-even.
	msft := report.Positions[2]
	if msft.Priced {
		t.Error("MSFT must be flagged as not priced")
	}
	if !msft.Profit.IsZero() {
		t.Errorf("MSFT profit = %s, want zero", msft.Profit)
	}
	if !msft.CurrentPrice.Equal(M(400)) {
		t.Errorf("MSFT price = %s, want the average cost", msft.CurrentPrice)
	}

	// Totals: cost 1000+5600+2000 = 8600, value 1200+5500+2000 = 8700.
	if !report.TotalCost.Equal(M(8600)) {
		t.Errorf("TotalCost = %s, want 8600.00", report.TotalCost)
	}
	if !report.TotalValue.Equal(M(8700)) {
		t.Errorf("TotalValue = %s, want 8700.00", report.TotalValue)
	}
	if !report.TotalProfit.Equal(M(100)) {
		t.Errorf("TotalProfit = %s, want 100.00", report.TotalProfit)
	}
	if got := report.TotalProfitPercent.String(); got != "1.16%" {
		t.Errorf("TotalProfitPercent = %s", got)
	}
}

func TestComputeProfitReportIgnoresZeroOverride(t *testing.T) {
	holdings := reportHoldings(t)
	report := ComputeProfitReport(holdings, map[string]Money{"AAPL": {}})
	for _, p := range report.Positions {
		if p.Symbol == "AAPL" {
			if p.Priced || !p.Profit.IsZero() {
				t.Errorf("zero override must fall back to average cost: %+v", p)
			}
		}
	}
}

func TestComputeProfitReportEmpty(t *testing.T) {
	report := ComputeProfitReport(map[string]*Holding{}, nil)
	if len(report.Positions) != 0 || !report.TotalProfit.IsZero() || !report.TotalProfitPercent.IsZero() {
		t.Errorf("empty report = %+v", report)
	}
}

func TestComputeProfitReportTieBreaksBySymbol(t *testing.T) {
	holdings, _ := ComputeHoldings([]Transaction{
		buy("t1", "BBB", 10, 100, "2025-01-10"),
		buy("t2", "AAA", 10, 100, "2025-01-10"),
	}, AverageCost)
	report := ComputeProfitReport(holdings, nil)
	if report.Positions[0].Symbol != "AAA" || report.Positions[1].Symbol != "BBB" {
		t.Errorf("tie order = %s, %s", report.Positions[0].Symbol, report.Positions[1].Symbol)
	}
}
