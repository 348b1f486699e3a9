package stocklog

import "testing"

func TestCommissionFloor(t *testing.T) {
	schedule := DefaultCommissionSchedule()

	testCases := []struct {
		quantity int64
		want     string
	}{
		{0, "5.00"},
		{1, "5.00"},
		{100, "5.00"},   // 100*0.02 = 2.00, the floor wins
		{250, "5.00"},   // exactly at the crossover
		{251, "5.02"},   // just above it
		{1000, "20.00"}, // the rate wins
		{-10, "5.00"},   // negative treated as zero
	}
	for _, tc := range testCases {
		if got := schedule.Commission(tc.quantity).String(); got != tc.want {
			t.Errorf("Commission(%d) = %s, want %s", tc.quantity, got, tc.want)
		}
	}
}

func TestCommissionCustomSchedule(t *testing.T) {
	schedule := CommissionSchedule{MinimumFee: M(1), PerUnitRate: M(0.005)}
	if got := schedule.Commission(100).String(); got != "1.00" {
		t.Errorf("Commission(100) = %s, want 1.00", got)
	}
	if got := schedule.Commission(1000).String(); got != "5.00" {
		t.Errorf("Commission(1000) = %s, want 5.00", got)
	}
}

func TestScheduleFeesStayOutOfRealizedProfit(t *testing.T) {
	// Cash views estimate a fee from the schedule when none was declared;
	// realized and per-trade profit subtract only declared fees, so an
	// undeclared fee never shifts a position's profit.
	txs := []Transaction{
		buy("t1", "AAPL", 100, 10, "2025-01-10"),
		sell("t2", "AAPL", 40, 15, "2025-02-10"),
	}

	holdings, _ := ComputeHoldings(txs, AverageCost)
	if got := holdings["AAPL"].Realized; !got.Equal(M(200)) {
		t.Errorf("Realized = %s, want 200.00", got)
	}
	trades := ComputeClosedTrades(txs)
	if len(trades) != 1 || !trades[0].Profit.Equal(M(200)) {
		t.Errorf("trades = %+v, want one with profit 200.00", trades)
	}

	// 10000 - (1000 + 5) + (600 - 5).
	balance := ComputeAccountBalance(txs, M(10000), DefaultCommissionSchedule())
	if got := balance.String(); got != "9590.00" {
		t.Errorf("balance = %s, want 9590.00", got)
	}
}

func TestFeePrefersDeclaredFee(t *testing.T) {
	schedule := DefaultCommissionSchedule()

	tx := buy("t1", "AAPL", 100, 10, "2025-01-10")
	if got := schedule.Fee(tx).String(); got != "5.00" {
		t.Errorf("Fee without declared fee = %s, want the schedule's 5.00", got)
	}

	tx.Fee = M(1.5)
	if got := schedule.Fee(tx).String(); got != "1.50" {
		t.Errorf("Fee with declared fee = %s, want 1.50", got)
	}
}
