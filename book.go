package stocklog

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ChangeKind identifies the mutation a Change describes.
type ChangeKind int

const (
	TransactionAdded ChangeKind = iota
	TransactionUpdated
	TransactionDeleted
)

func (k ChangeKind) String() string {
	switch k {
	case TransactionAdded:
		return "added"
	case TransactionUpdated:
		return "updated"
	case TransactionDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// Change describes one mutation of the transaction list.
type Change struct {
	Kind        ChangeKind
	Transaction Transaction
}

// Book is the ledger engine bound to a storage collaborator. It owns no
// derived state: holdings, balance, and profit views are recomputed from the
// full transaction list on every call, which keeps them drift-free at O(n)
// per call.
//
// A Book is built for a single-user, single-process environment; concurrent
// writers to the same underlying store are last-writer-wins.
type Book struct {
	store       Store
	ledger      *Ledger
	subscribers []func(Change)
}

// Open loads the transaction history from the store and returns a Book bound
// to it.
func Open(store Store) (*Book, error) {
	txs, err := store.Transactions()
	if err != nil {
		return nil, fmt.Errorf("cannot load transactions: %w", err)
	}
	return &Book{store: store, ledger: NewLedgerOf(txs)}, nil
}

// Subscribe registers a callback invoked after every mutation. The returned
// function unsubscribes. A panicking subscriber is isolated: it is logged and
// does not prevent later subscribers from being notified.
func (b *Book) Subscribe(fn func(Change)) (unsubscribe func()) {
	b.subscribers = append(b.subscribers, fn)
	pos := len(b.subscribers) - 1
	return func() { b.subscribers[pos] = nil }
}

func (b *Book) notify(change Change) {
	for _, fn := range b.subscribers {
		if fn == nil {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Warn().Interface("panic", r).Str("change", change.Kind.String()).
						Msg("ledger subscriber panicked")
				}
			}()
			fn(change)
		}()
	}
}

// persist writes the full transaction list back to the store. On failure the
// in-memory ledger is re-read from the store so the two never drift apart.
func (b *Book) persist() error {
	if err := b.store.SaveTransactions(b.ledger.All()); err != nil {
		if txs, rerr := b.store.Transactions(); rerr == nil {
			b.ledger = NewLedgerOf(txs)
		}
		return fmt.Errorf("cannot save transactions: %w", err)
	}
	return nil
}

// Add validates and records a transaction, persists the history, and notifies
// subscribers. Validation failures and oversells block the mutation; nothing
// is partially applied.
func (b *Book) Add(tx Transaction) error {
	if err := b.ledger.Add(tx); err != nil {
		return err
	}
	if err := b.persist(); err != nil {
		return err
	}
	b.notify(Change{Kind: TransactionAdded, Transaction: tx})
	return nil
}

// Update replaces the transaction with the given ID.
func (b *Book) Update(id string, tx Transaction) error {
	if err := b.ledger.Update(id, tx); err != nil {
		return err
	}
	if err := b.persist(); err != nil {
		return err
	}
	tx.ID = id
	b.notify(Change{Kind: TransactionUpdated, Transaction: tx})
	return nil
}

// Delete removes the transaction with the given ID.
func (b *Book) Delete(id string) error {
	tx, ok := b.ledger.Get(id)
	if !ok {
		return fmt.Errorf("transaction %q not found", id)
	}
	if err := b.ledger.Delete(id); err != nil {
		return err
	}
	if err := b.persist(); err != nil {
		return err
	}
	b.notify(Change{Kind: TransactionDeleted, Transaction: tx})
	return nil
}

// Ledger exposes the chronological transaction history for reads.
func (b *Book) Ledger() *Ledger { return b.ledger }

// Settings reads the current settings, normalized with defaults.
func (b *Book) Settings() Settings {
	settings, err := b.store.Settings()
	if err != nil {
		return DefaultSettings()
	}
	return settings.normalize()
}

// Holdings recomputes the per-symbol holdings with the configured cost basis
// method.
func (b *Book) Holdings() (map[string]*Holding, []*OversoldError) {
	return ComputeHoldings(b.ledger.All(), b.Settings().Method)
}

// HoldingsBy recomputes the holdings with an explicit cost basis method.
func (b *Book) HoldingsBy(method CostBasisMethod) (map[string]*Holding, []*OversoldError) {
	return ComputeHoldings(b.ledger.All(), method)
}

// Balance recomputes the account cash balance from the configured initial
// funds and commission schedule.
func (b *Book) Balance() Money {
	settings := b.Settings()
	return ComputeAccountBalance(b.ledger.All(), settings.InitialFunds, settings.Commission)
}

// ProfitReport recomputes the profit view of the current holdings using the
// stored price overrides.
func (b *Book) ProfitReport() (ProfitReport, []*OversoldError) {
	holdings, oversold := b.Holdings()
	overrides, err := b.store.PriceOverrides()
	if err != nil {
		overrides = nil
	}
	return ComputeProfitReport(holdings, overrides), oversold
}

// ClosedTrades recomputes the FIFO-matched round trips.
func (b *Book) ClosedTrades() []ClosedTrade {
	return ComputeClosedTrades(b.ledger.All())
}

// MonthlyActivity recomputes the per-month aggregates.
func (b *Book) MonthlyActivity() []MonthlyActivity {
	return ComputeMonthlyActivity(b.ledger.All(), b.Settings().Commission)
}

// SetInitialFunds stores the starting cash figure.
func (b *Book) SetInitialFunds(funds Money) error {
	settings := b.Settings()
	settings.InitialFunds = funds
	return b.store.SaveSettings(settings)
}

// SetMethod stores the cost basis method used by default.
func (b *Book) SetMethod(method CostBasisMethod) error {
	settings := b.Settings()
	settings.Method = method
	return b.store.SaveSettings(settings)
}

// SetExchangeRate stores the display exchange rate.
func (b *Book) SetExchangeRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.IsZero() {
		return validationErr("rate", "must be positive, got %s", rate)
	}
	settings := b.Settings()
	settings.ExchangeRate = rate
	return b.store.SaveSettings(settings)
}

// SetCommission stores the commission schedule.
func (b *Book) SetCommission(schedule CommissionSchedule) error {
	settings := b.Settings()
	settings.Commission = schedule
	return b.store.SaveSettings(settings)
}

// SetPriceOverride stores a user-entered current price for a symbol. A zero
// price clears the override.
func (b *Book) SetPriceOverride(symbol string, price Money) error {
	overrides, err := b.store.PriceOverrides()
	if err != nil || overrides == nil {
		overrides = make(map[string]Money)
	}
	key := normalizeSymbol(symbol)
	if key == "" {
		return validationErr("symbol", "is missing")
	}
	if price.IsNegative() {
		return validationErr("price", "must not be negative, got %s", price)
	}
	if price.IsZero() {
		delete(overrides, key)
	} else {
		overrides[key] = price
	}
	return b.store.SavePriceOverrides(overrides)
}

// PriceOverrides reads the user-entered price map.
func (b *Book) PriceOverrides() map[string]Money {
	overrides, err := b.store.PriceOverrides()
	if err != nil {
		return map[string]Money{}
	}
	return overrides
}
