package stocklog

import (
	"os"
	"path/filepath"
	"testing"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "stocklog.json"))
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := tempStore(t)

	txs := []Transaction{
		buy("t1", "AAPL", 10, 185.50, "2025-01-10"),
		sell("t2", "AAPL", 4, 192, "2025-02-10"),
	}
	if err := store.SaveTransactions(txs); err != nil {
		t.Fatal(err)
	}
	if err := store.SavePriceOverrides(map[string]Money{"AAPL": M(190)}); err != nil {
		t.Fatal(err)
	}
	settings := DefaultSettings()
	settings.InitialFunds = M(10000)
	settings.Method = FIFO
	if err := store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	got, err := store.Transactions()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || !got[0].Equal(txs[0]) || !got[1].Equal(txs[1]) {
		t.Errorf("transactions = %+v", got)
	}

	prices, err := store.PriceOverrides()
	if err != nil {
		t.Fatal(err)
	}
	if !prices["AAPL"].Equal(M(190)) {
		t.Errorf("prices = %+v", prices)
	}

	loaded, err := store.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if !loaded.InitialFunds.Equal(M(10000)) || loaded.Method != FIFO {
		t.Errorf("settings = %+v", loaded)
	}
}

func TestFileStoreMissingFileDefaults(t *testing.T) {
	store := tempStore(t)

	txs, err := store.Transactions()
	if err != nil || len(txs) != 0 {
		t.Errorf("Transactions() = %v, %v", txs, err)
	}
	settings, err := store.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if settings.Currency != "USD" || settings.Commission.IsZero() {
		t.Errorf("default settings = %+v", settings)
	}
}

func TestFileStoreCorruptFileDegrades(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stocklog.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	store := NewFileStore(path)

	txs, err := store.Transactions()
	if err != nil || len(txs) != 0 {
		t.Errorf("corrupt store must degrade to defaults: %v, %v", txs, err)
	}

	// A save replaces the corrupt file with a valid document.
	if err := store.SaveTransactions([]Transaction{buy("t1", "AAPL", 1, 100, "2025-01-10")}); err != nil {
		t.Fatal(err)
	}
	reloaded, err := NewFileStore(path).Transactions()
	if err != nil || len(reloaded) != 1 {
		t.Errorf("after save: %v, %v", reloaded, err)
	}
}

func TestFileStoreSavePreservesOtherCollections(t *testing.T) {
	store := tempStore(t)
	if err := store.SavePriceOverrides(map[string]Money{"AAPL": M(190)}); err != nil {
		t.Fatal(err)
	}
	if err := store.SaveTransactions([]Transaction{buy("t1", "AAPL", 1, 100, "2025-01-10")}); err != nil {
		t.Fatal(err)
	}
	prices, err := store.PriceOverrides()
	if err != nil {
		t.Fatal(err)
	}
	if !prices["AAPL"].Equal(M(190)) {
		t.Error("saving transactions must not drop stored prices")
	}
}

func TestMemStoreCopies(t *testing.T) {
	store := NewMemStore()
	txs := []Transaction{buy("t1", "AAPL", 1, 100, "2025-01-10")}
	if err := store.SaveTransactions(txs); err != nil {
		t.Fatal(err)
	}
	txs[0].Symbol = "MUTATED"

	got, err := store.Transactions()
	if err != nil {
		t.Fatal(err)
	}
	if got[0].Symbol != "AAPL" {
		t.Error("store must not share memory with the caller")
	}

	got[0].Symbol = "MUTATED"
	again, _ := store.Transactions()
	if again[0].Symbol != "AAPL" {
		t.Error("returned slice must be a copy")
	}
}

func TestSettingsNormalize(t *testing.T) {
	var s Settings
	n := s.normalize()
	if n.Currency != "USD" || n.ExchangeRate.IsZero() || n.Commission.IsZero() {
		t.Errorf("normalize() = %+v", n)
	}
	// Explicit values survive.
	s = DefaultSettings()
	s.Currency = "EUR"
	if got := s.normalize().Currency; got != "EUR" {
		t.Errorf("Currency = %s, want EUR", got)
	}
}
