package stocklog

import "testing"

func TestComputeAccountBalance(t *testing.T) {
	schedule := DefaultCommissionSchedule()

	testCases := []struct {
		name         string
		initialFunds Money
		txs          []Transaction
		want         string
	}{
		{
			name:         "empty history",
			initialFunds: M(10000),
			want:         "10000.00",
		},
		{
			name:         "one buy with schedule fee",
			initialFunds: M(10000),
			txs: []Transaction{
				buy("t1", "AAPL", 100, 10, "2025-01-10"), // 1000 + max(5, 2) fee
			},
			want: "8995.00",
		},
		{
			name:         "sell credits amount minus fee",
			initialFunds: M(10000),
			txs: []Transaction{
				buy("t1", "AAPL", 100, 10, "2025-01-10"),  // -1005
				sell("t2", "AAPL", 100, 12, "2025-02-10"), // +1200 - 5
			},
			want: "10190.00",
		},
		{
			name:         "declared fee overrides the schedule",
			initialFunds: M(1000),
			txs: []Transaction{
				func() Transaction {
					tx := buy("t1", "AAPL", 10, 10, "2025-01-10")
					tx.Fee = M(1)
					return tx
				}(), // -100 - 1
			},
			want: "899.00",
		},
		{
			name:         "balance can go negative",
			initialFunds: M(0),
			txs: []Transaction{
				buy("t1", "AAPL", 10, 10, "2025-01-10"),
			},
			want: "-105.00",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeAccountBalance(tc.txs, tc.initialFunds, schedule)
			if got.String() != tc.want {
				t.Errorf("balance = %s, want %s", got, tc.want)
			}
		})
	}
}
