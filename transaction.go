package stocklog

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Side identifies the direction of a transaction.
type Side int

const (
	// Buy adds units of a symbol and consumes cash.
	Buy Side = iota
	// Sell removes units of a symbol and produces cash.
	Sell
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "buy"
	case Sell:
		return "sell"
	default:
		return "unknown"
	}
}

// ParseSide parses a string into a Side.
func ParseSide(s string) (Side, error) {
	switch s {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return 0, fmt.Errorf("unknown side: %q", s)
	}
}

// MarshalJSON implements the json.Marshaler interface.
func (s Side) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *Side) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseSide(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Transaction is an immutable record of one trade. The ID is assigned at
// creation and never reused. Fee is the broker fee the user declared for this
// trade; when zero, the configured commission schedule supplies the fee for
// cash-balance purposes.
type Transaction struct {
	ID       string
	Symbol   string
	Name     string
	Side     Side
	Price    Money
	Quantity int64
	Date     Date
	Fee      Money
	Note     string
}

// normalizeSymbol trims and uppercases a ticker symbol.
func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// NewTransaction creates a transaction with a fresh ID and a case-normalized
// symbol. It does not validate; call Validate (or go through Ledger.Add).
func NewTransaction(side Side, symbol, name string, price Money, quantity int64, day Date) Transaction {
	return Transaction{
		ID:       uuid.NewString(),
		Symbol:   normalizeSymbol(symbol),
		Name:     strings.TrimSpace(name),
		Side:     side,
		Price:    price,
		Quantity: quantity,
		Date:     day,
	}
}

// Amount returns price*quantity, the gross value of the trade before fees.
func (t Transaction) Amount() Money { return t.Price.Mul(t.Quantity) }

// Validate checks the transaction's own fields: symbol and date present,
// positive price and quantity, no future date, no negative fee. Ledger-state
// checks (oversell) belong to Ledger.Add.
func (t Transaction) Validate() error {
	if t.ID == "" {
		return validationErr("id", "is missing")
	}
	if t.Symbol == "" {
		return validationErr("symbol", "is missing")
	}
	if t.Symbol != strings.ToUpper(t.Symbol) {
		return validationErr("symbol", "%q must be uppercase", t.Symbol)
	}
	if t.Side != Buy && t.Side != Sell {
		return validationErr("side", "must be buy or sell")
	}
	if !t.Price.IsPositive() {
		return validationErr("price", "must be positive, got %s", t.Price)
	}
	if t.Quantity <= 0 {
		return validationErr("quantity", "must be positive, got %d", t.Quantity)
	}
	if t.Date.IsZero() {
		return validationErr("date", "is missing")
	}
	if t.Date.After(Today()) {
		return validationErr("date", "%s is in the future", t.Date)
	}
	if t.Fee.IsNegative() {
		return validationErr("fee", "must not be negative, got %s", t.Fee)
	}
	return nil
}

// Equal reports whether two transactions are identical records.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.Symbol == o.Symbol &&
		t.Name == o.Name &&
		t.Side == o.Side &&
		t.Price.Equal(o.Price) &&
		t.Quantity == o.Quantity &&
		t.Date == o.Date &&
		t.Fee.Equal(o.Fee) &&
		t.Note == o.Note
}

// MarshalJSON implements the json.Marshaler interface with a stable field
// order and omitted empty optionals.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("symbol", t.Symbol)
	w.Optional("name", t.Name)
	w.Append("side", t.Side)
	w.Append("price", t.Price)
	w.Append("quantity", t.Quantity)
	w.Append("date", t.Date)
	if !t.Fee.IsZero() {
		w.Append("fee", t.Fee)
	}
	w.Optional("note", t.Note)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID       string `json:"id"`
		Symbol   string `json:"symbol"`
		Name     string `json:"name"`
		Side     Side   `json:"side"`
		Price    Money  `json:"price"`
		Quantity int64  `json:"quantity"`
		Date     Date   `json:"date"`
		Fee      Money  `json:"fee"`
		Note     string `json:"note"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*t = Transaction{
		ID:       temp.ID,
		Symbol:   strings.ToUpper(temp.Symbol),
		Name:     temp.Name,
		Side:     temp.Side,
		Price:    temp.Price,
		Quantity: temp.Quantity,
		Date:     temp.Date,
		Fee:      temp.Fee,
		Note:     temp.Note,
	}
	return nil
}
