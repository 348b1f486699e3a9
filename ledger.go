package stocklog

import (
	"fmt"
	"iter"
	"sort"
)

// Ledger holds the full transaction history.
//
// In a Ledger transactions are always in chronological order; transactions on
// the same day keep their insertion order. That ordering is load-bearing: it
// drives proportional-cost and FIFO lot consumption, so it must be
// deterministic.
type Ledger struct {
	transactions []Transaction
	index        map[string]int // transaction position by ID
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		transactions: make([]Transaction, 0),
		index:        make(map[string]int),
	}
}

// NewLedgerOf creates a ledger pre-filled with the given transactions,
// sorted chronologically. Stored histories are trusted; no oversell check is
// re-applied here (the holdings calculator clamps and reports instead).
func NewLedgerOf(txs []Transaction) *Ledger {
	l := NewLedger()
	l.transactions = append(l.transactions, txs...)
	l.stableSort()
	return l
}

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// Add validates a transaction and appends it to the ledger. A sell whose
// quantity exceeds the quantity available on its date is rejected here, at
// entry time. Adding a backdated sell also re-checks every sell of the symbol
// recorded after it, so an oversold history can never be created through this
// path.
func (l *Ledger) Add(tx Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	if _, exists := l.index[tx.ID]; exists {
		return validationErr("id", "%q already exists in the ledger", tx.ID)
	}
	l.transactions = append(l.transactions, tx)
	l.stableSort()
	if tx.Side == Sell {
		if oerr := l.verifySells(tx.Symbol); oerr != nil {
			l.removeAt(l.index[tx.ID])
			return oerr
		}
	}
	return nil
}

// Update replaces the transaction with the given ID. The replacement is
// validated against the rest of the history as if the old record never
// existed, and the sells of both affected symbols are re-checked.
func (l *Ledger) Update(id string, tx Transaction) error {
	pos, ok := l.index[id]
	if !ok {
		return fmt.Errorf("transaction %q not found", id)
	}
	old := l.transactions[pos]
	tx.ID = id

	// Re-run the entry checks on a history without the old record.
	rest := make([]Transaction, 0, len(l.transactions)-1)
	rest = append(rest, l.transactions[:pos]...)
	rest = append(rest, l.transactions[pos+1:]...)
	scratch := NewLedgerOf(rest)
	if err := scratch.Add(tx); err != nil {
		return err
	}
	// Shrinking or retyping a buy can strand a sell that the entry check of
	// the replacement itself never looks at.
	for _, symbol := range []string{tx.Symbol, old.Symbol} {
		if oerr := scratch.verifySells(symbol); oerr != nil {
			return oerr
		}
	}

	l.transactions[pos] = tx
	l.stableSort()
	return nil
}

// Delete removes the transaction with the given ID. Deleting a buy is refused
// when a sell recorded after it would no longer be covered.
func (l *Ledger) Delete(id string) error {
	pos, ok := l.index[id]
	if !ok {
		return fmt.Errorf("transaction %q not found", id)
	}
	tx := l.transactions[pos]
	rest := make([]Transaction, 0, len(l.transactions)-1)
	rest = append(rest, l.transactions[:pos]...)
	rest = append(rest, l.transactions[pos+1:]...)
	if tx.Side == Buy {
		if oerr := (&Ledger{transactions: rest}).verifySells(tx.Symbol); oerr != nil {
			return oerr
		}
	}
	l.transactions = rest
	l.reindex()
	return nil
}

// Get returns the transaction with the given ID.
func (l *Ledger) Get(id string) (Transaction, bool) {
	pos, ok := l.index[id]
	if !ok {
		return Transaction{}, false
	}
	return l.transactions[pos], true
}

// Transactions returns an iterator over transactions in chronological order,
// restricted to those accepted by every given filter.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range l.transactions {
			accept := true
			for _, filter := range filters {
				if !filter(tx) {
					accept = false
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(tx) {
				return
			}
		}
	}
}

// All returns a copy of the chronological transaction list.
func (l *Ledger) All() []Transaction {
	out := make([]Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// AvailableQuantity computes the units of a symbol that can still be sold on
// a given date: cumulative buys minus cumulative sells with an earlier or
// equal date.
func (l *Ledger) AvailableQuantity(symbol string, on Date) int64 {
	var available int64
	for _, tx := range l.transactions {
		if tx.When().After(on) {
			// The ledger is sorted by date, so it's safe to break.
			break
		}
		if tx.Symbol != symbol {
			continue
		}
		switch tx.Side {
		case Buy:
			available += tx.Quantity
		case Sell:
			available -= tx.Quantity
		}
	}
	return available
}

// verifySells re-checks every sell of a symbol against the quantity available
// on its date and returns the first one that is no longer covered. A mutation
// that rewrites earlier history (a backdated sell, a shrunk or removed buy)
// can strand a sell that was valid when it was recorded; this is the check
// that catches it.
func (l *Ledger) verifySells(symbol string) *OversoldError {
	for _, tx := range l.transactions {
		if tx.Symbol != symbol || tx.Side != Sell {
			continue
		}
		// AvailableQuantity counts the sell itself; add it back to get what
		// the sell could draw on.
		available := l.AvailableQuantity(symbol, tx.Date) + tx.Quantity
		if tx.Quantity > available {
			return &OversoldError{Symbol: symbol, Date: tx.Date, Requested: tx.Quantity, Available: available}
		}
	}
	return nil
}

func (l *Ledger) removeAt(pos int) {
	l.transactions = append(l.transactions[:pos], l.transactions[pos+1:]...)
	l.reindex()
}

// AllSymbols returns the distinct symbols in the ledger, in first-seen order.
func (l *Ledger) AllSymbols() []string {
	visited := make(map[string]struct{})
	var symbols []string
	for _, tx := range l.transactions {
		if _, ok := visited[tx.Symbol]; ok {
			continue
		}
		visited[tx.Symbol] = struct{}{}
		symbols = append(symbols, tx.Symbol)
	}
	return symbols
}

// OldestDate returns the date of the earliest transaction, or the zero Date
// for an empty ledger.
func (l *Ledger) OldestDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[0].Date
}

// NewestDate returns the date of the latest transaction, or the zero Date for
// an empty ledger.
func (l *Ledger) NewestDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[len(l.transactions)-1].Date
}

// stableSort sorts the ledger by transaction date. The sort is stable:
// transactions on the same day keep their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Date.Before(l.transactions[j].Date)
	})
	l.reindex()
}

func (l *Ledger) reindex() {
	l.index = make(map[string]int, len(l.transactions))
	for i, tx := range l.transactions {
		l.index[tx.ID] = i
	}
}

// When returns the transaction date; it exists so filters read naturally.
func (t Transaction) When() Date { return t.Date }

// AcceptAll accepts every transaction.
func AcceptAll(Transaction) bool { return true }

// BySymbol returns a predicate that keeps transactions of one symbol.
func BySymbol(symbol string) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Symbol == symbol }
}

// BySide returns a predicate that keeps transactions of one side.
func BySide(side Side) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Side == side }
}

// ByRange returns a predicate that keeps transactions between from and to,
// inclusive. A zero bound is open.
func ByRange(from, to Date) func(Transaction) bool {
	return func(tx Transaction) bool {
		if !from.IsZero() && tx.Date.Before(from) {
			return false
		}
		if !to.IsZero() && tx.Date.After(to) {
			return false
		}
		return true
	}
}
