package stocklog

import "fmt"

// day is a test helper to build a Date from a constant string.
func day(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(fmt.Sprintf("bad test date %q: %v", s, err))
	}
	return d
}

// buy and sell build valid transactions with a deterministic ID so tests can
// reference them back.
func buy(id, symbol string, quantity int64, price float64, date string) Transaction {
	return Transaction{
		ID:       id,
		Symbol:   symbol,
		Side:     Buy,
		Price:    M(price),
		Quantity: quantity,
		Date:     day(date),
	}
}

func sell(id, symbol string, quantity int64, price float64, date string) Transaction {
	tx := buy(id, symbol, quantity, price, date)
	tx.Side = Sell
	return tx
}
