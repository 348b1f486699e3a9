package stocklog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// This file handles the import/export format: the persisted document itself,
// round-tripped verbatim. It should remain human readable and a single file.

// Export writes the store's collections to w as one JSON document.
func Export(w io.Writer, store Store) error {
	doc := newDocument()
	var err error
	if doc.Transactions, err = store.Transactions(); err != nil {
		return fmt.Errorf("cannot export transactions: %w", err)
	}
	if doc.Prices, err = store.PriceOverrides(); err != nil {
		return fmt.Errorf("cannot export prices: %w", err)
	}
	if doc.Settings, err = store.Settings(); err != nil {
		return fmt.Errorf("cannot export settings: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal export document: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// Import reads a JSON document from r and writes its collections into the
// store. Each top-level key is all-or-nothing: a key that fails to parse is
// reported and its collection in the store is left untouched, so a corrupt
// document can never partially overwrite good data.
//
// A document with none of the expected keys is probed for the legacy v1 key
// layout (stock_transactions / stock_settings) and migrated best-effort; this
// is a dormant compatibility shim, not ongoing format evolution.
func Import(r io.Reader, store Store) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return &ImportFormatError{Err: err}
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return &ImportFormatError{Err: err}
	}

	var errs error
	recognized := false

	if rawTxs, ok := raw["transactions"]; ok {
		recognized = true
		var txs []Transaction
		if err := json.Unmarshal(rawTxs, &txs); err != nil {
			errs = errors.Join(errs, &ImportFormatError{Key: "transactions", Err: err})
		} else if err := validateImported(txs); err != nil {
			errs = errors.Join(errs, &ImportFormatError{Key: "transactions", Err: err})
		} else if err := store.SaveTransactions(txs); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	if rawPrices, ok := raw["prices"]; ok {
		recognized = true
		var prices map[string]Money
		if err := json.Unmarshal(rawPrices, &prices); err != nil {
			errs = errors.Join(errs, &ImportFormatError{Key: "prices", Err: err})
		} else if err := store.SavePriceOverrides(upperKeys(prices)); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	if rawSettings, ok := raw["settings"]; ok {
		recognized = true
		var settings Settings
		if err := json.Unmarshal(rawSettings, &settings); err != nil {
			errs = errors.Join(errs, &ImportFormatError{Key: "settings", Err: err})
		} else if err := store.SaveSettings(settings); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	if !recognized {
		migrated, err := importLegacy(data, store)
		if err != nil {
			return errors.Join(errs, err)
		}
		if !migrated {
			return &ImportFormatError{Err: errors.New("no recognized top-level keys")}
		}
	}
	return errs
}

// validateImported checks every imported transaction before any of them is
// stored; a bad record rejects the whole key.
func validateImported(txs []Transaction) error {
	for i, tx := range txs {
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("transaction %d: %w", i, err)
		}
	}
	return nil
}

func upperKeys(prices map[string]Money) map[string]Money {
	out := make(map[string]Money, len(prices))
	for symbol, price := range prices {
		out[strings.ToUpper(symbol)] = price
	}
	return out
}

// importLegacy probes a document for the v1 key layout and migrates whatever
// it can recognize. It returns true when anything was migrated.
func importLegacy(data []byte, store Store) (bool, error) {
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return false, &ImportFormatError{Err: err}
	}

	migrated := false

	if jval, err := jsonpath.Get("$.stock_transactions", jobj); err == nil {
		txs := legacyTransactions(jval)
		if len(txs) > 0 {
			if err := store.SaveTransactions(txs); err != nil {
				return migrated, err
			}
			logger.Info().Int("count", len(txs)).Msg("migrated transactions from legacy layout")
			migrated = true
		}
	}

	if jval, err := jsonpath.Get("$.stock_settings.initialFunds", jobj); err == nil {
		if funds, ok := legacyNumber(jval); ok {
			settings, serr := store.Settings()
			if serr != nil {
				settings = DefaultSettings()
			}
			settings.InitialFunds = M(funds)
			if jrate, rerr := jsonpath.Get("$.stock_settings.exchangeRate", jobj); rerr == nil {
				if rate, rok := legacyNumber(jrate); rok {
					settings.ExchangeRate = decimal.NewFromFloat(rate)
				}
			}
			if err := store.SaveSettings(settings); err != nil {
				return migrated, err
			}
			migrated = true
		}
	}

	return migrated, nil
}

// legacyTransactions converts the v1 transaction array, tolerating the field
// aliases observed in old exports (code/symbol/ticker, shares/amount...).
// Records without a usable symbol, price, and quantity are dropped.
func legacyTransactions(jval any) []Transaction {
	list, ok := jval.([]any)
	if !ok {
		return nil
	}
	var txs []Transaction
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}

		symbol, _ := firstString(entry, "code", "symbol", "ticker")
		price, priceOK := firstNumber(entry, "price", "unitPrice", "avgPrice")
		quantity, qtyOK := firstNumber(entry, "quantity", "shares", "amount")
		if symbol == "" || !priceOK || !qtyOK || price <= 0 || quantity <= 0 {
			continue
		}

		tx := Transaction{
			Symbol:   strings.ToUpper(symbol),
			Side:     legacySide(entry["type"]),
			Price:    M(price),
			Quantity: int64(quantity),
			Date:     legacyDate(entry),
		}
		if name, _ := firstString(entry, "name", "stockName"); name != "" {
			tx.Name = name
		}
		if id, _ := firstString(entry, "id"); id != "" {
			tx.ID = id
		} else {
			tx.ID = uuid.NewString()
		}
		txs = append(txs, tx)
	}
	return txs
}

func legacySide(v any) Side {
	s := strings.ToLower(fmt.Sprint(v))
	if strings.Contains(s, "sell") || s == "s" || s == "out" {
		return Sell
	}
	return Buy
}

func legacyDate(entry map[string]any) Date {
	if s, _ := firstString(entry, "date"); s != "" {
		if d, err := ParseDate(s); err == nil {
			return d
		}
	}
	if s, _ := firstString(entry, "createTime"); len(s) >= 10 {
		if d, err := ParseDate(s[:10]); err == nil {
			return d
		}
	}
	return Today()
}

func firstString(entry map[string]any, keys ...string) (string, string) {
	for _, key := range keys {
		if v, ok := entry[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s, key
			}
		}
	}
	return "", ""
}

// legacyNumber coerces a decoded JSON value to a float, accepting the string
// numbers some v1 exports used.
func legacyNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		if parsed, err := strconv.ParseFloat(n, 64); err == nil {
			return parsed, true
		}
	}
	return 0, false
}

func firstNumber(entry map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		if v, ok := entry[key]; ok {
			if n, ok := legacyNumber(v); ok {
				return n, true
			}
		}
	}
	return 0, false
}
