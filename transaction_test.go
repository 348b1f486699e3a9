package stocklog

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNewTransactionNormalizesSymbol(t *testing.T) {
	tx := NewTransaction(Buy, " aapl ", " Apple Inc ", M(185.50), 10, day("2025-01-10"))
	if tx.Symbol != "AAPL" {
		t.Errorf("Symbol = %q, want AAPL", tx.Symbol)
	}
	if tx.Name != "Apple Inc" {
		t.Errorf("Name = %q", tx.Name)
	}
	if tx.ID == "" {
		t.Error("ID must be assigned at creation")
	}
	other := NewTransaction(Buy, "aapl", "", M(185.50), 10, day("2025-01-10"))
	if other.ID == tx.ID {
		t.Error("IDs must be unique")
	}
}

func TestTransactionValidate(t *testing.T) {
	valid := buy("t1", "AAPL", 10, 185.50, "2025-01-10")

	testCases := []struct {
		name      string
		mutate    func(*Transaction)
		wantField string
	}{
		{"valid", func(tx *Transaction) {}, ""},
		{"missing id", func(tx *Transaction) { tx.ID = "" }, "id"},
		{"missing symbol", func(tx *Transaction) { tx.Symbol = "" }, "symbol"},
		{"lowercase symbol", func(tx *Transaction) { tx.Symbol = "aapl" }, "symbol"},
		{"bad side", func(tx *Transaction) { tx.Side = Side(7) }, "side"},
		{"zero price", func(tx *Transaction) { tx.Price = Money{} }, "price"},
		{"negative price", func(tx *Transaction) { tx.Price = M(-1) }, "price"},
		{"zero quantity", func(tx *Transaction) { tx.Quantity = 0 }, "quantity"},
		{"negative quantity", func(tx *Transaction) { tx.Quantity = -5 }, "quantity"},
		{"missing date", func(tx *Transaction) { tx.Date = Date{} }, "date"},
		{"future date", func(tx *Transaction) { tx.Date = Today().Add(1) }, "date"},
		{"negative fee", func(tx *Transaction) { tx.Fee = M(-2) }, "fee"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tx := valid
			tc.mutate(&tx)
			err := tx.Validate()
			if tc.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want *ValidationError", err)
			}
			if verr.Field != tc.wantField {
				t.Errorf("Field = %q, want %q", verr.Field, tc.wantField)
			}
		})
	}
}

func TestTransactionJSONRoundTrip(t *testing.T) {
	in := buy("t1", "AAPL", 10, 185.50, "2025-01-10")
	in.Name = "Apple"
	in.Fee = M(5)
	in.Note = "first position"

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	// Field order is stable and empty optionals are omitted.
	if !strings.HasPrefix(string(data), `{"id":"t1","symbol":"AAPL","name":"Apple","side":"buy"`) {
		t.Errorf("unexpected field order: %s", data)
	}

	var out Transaction
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if !in.Equal(out) {
		t.Errorf("round trip:\n got %+v\nwant %+v", out, in)
	}
}

func TestTransactionJSONOmitsEmptyOptionals(t *testing.T) {
	data, err := json.Marshal(buy("t1", "AAPL", 10, 185.50, "2025-01-10"))
	if err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{"name", "fee", "note"} {
		if strings.Contains(string(data), `"`+field+`"`) {
			t.Errorf("empty %q must be omitted: %s", field, data)
		}
	}
}

func TestParseSideRejectsUnknown(t *testing.T) {
	if _, err := ParseSide("short"); err == nil {
		t.Error("want error for unknown side")
	}
	var s Side
	if err := json.Unmarshal([]byte(`"hold"`), &s); err == nil {
		t.Error("want error for unknown side in JSON")
	}
}
