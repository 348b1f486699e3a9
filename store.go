package stocklog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Settings are the scalar knobs of the account, persisted alongside the
// transactions.
type Settings struct {
	InitialFunds Money              `json:"initialFunds"`
	Currency     string             `json:"currency"`
	ExchangeRate decimal.Decimal    `json:"exchangeRate"`
	Method       CostBasisMethod    `json:"method"`
	Commission   CommissionSchedule `json:"commission"`
}

// DefaultSettings returns the settings of a fresh account.
func DefaultSettings() Settings {
	return Settings{
		Currency:     "USD",
		ExchangeRate: decimal.NewFromFloat(7.2),
		Method:       AverageCost,
		Commission:   DefaultCommissionSchedule(),
	}
}

// normalize fills gaps left by older documents that predate a setting.
func (s Settings) normalize() Settings {
	if s.Currency == "" {
		s.Currency = "USD"
	}
	if s.ExchangeRate.IsZero() {
		s.ExchangeRate = decimal.NewFromFloat(7.2)
	}
	if s.Commission.IsZero() {
		s.Commission = DefaultCommissionSchedule()
	}
	return s
}

// Store is the key-value persistence capability the ledger engine is handed.
// Each logical collection is read in full before a calculation and written in
// full after a mutation; there are no partial writes. Implementations must
// degrade to empty defaults on read failure instead of surfacing corruption
// into the calculation layer.
type Store interface {
	Transactions() ([]Transaction, error)
	SaveTransactions([]Transaction) error
	PriceOverrides() (map[string]Money, error)
	SavePriceOverrides(map[string]Money) error
	Settings() (Settings, error)
	SaveSettings(Settings) error
}

// document is the persisted JSON layout: a version string, the flat
// transaction array, the symbol-to-price override map, and the settings.
// Export and import round-trip this document verbatim.
type document struct {
	Version      string           `json:"version"`
	Transactions []Transaction    `json:"transactions"`
	Prices       map[string]Money `json:"prices"`
	Settings     Settings         `json:"settings"`
}

// documentVersion is a free-text marker, not a schema-evolution mechanism.
const documentVersion = "2"

func newDocument() document {
	return document{
		Version:  documentVersion,
		Prices:   make(map[string]Money),
		Settings: DefaultSettings(),
	}
}

// FileStore persists the whole account as one JSON document on disk.
type FileStore struct {
	path string
	log  zerolog.Logger
}

// NewFileStore creates a store backed by the given file path. The file is
// created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
		log:  logger.With().Str("store", path).Logger(),
	}
}

// read loads the document, falling back to an empty default one when the file
// is missing or unreadable. Corruption is logged, never propagated: a broken
// store must not crash a calculation.
func (s *FileStore) read() document {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return newDocument()
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("cannot read store, using empty defaults")
		return newDocument()
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.log.Warn().Err(err).Msg("corrupt store document, using empty defaults")
		return newDocument()
	}
	if doc.Prices == nil {
		doc.Prices = make(map[string]Money)
	}
	doc.Settings = doc.Settings.normalize()
	if doc.Version == "" {
		doc.Version = documentVersion
	}
	return doc
}

// write persists the whole document. The write goes to a temporary file first
// so a crash mid-write cannot leave a half document behind.
func (s *FileStore) write(doc document) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("cannot create store directory: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal store document: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("cannot write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("cannot replace store file: %w", err)
	}
	return nil
}

func (s *FileStore) Transactions() ([]Transaction, error) {
	return s.read().Transactions, nil
}

func (s *FileStore) SaveTransactions(txs []Transaction) error {
	doc := s.read()
	doc.Transactions = txs
	return s.write(doc)
}

func (s *FileStore) PriceOverrides() (map[string]Money, error) {
	return s.read().Prices, nil
}

func (s *FileStore) SavePriceOverrides(prices map[string]Money) error {
	doc := s.read()
	doc.Prices = prices
	return s.write(doc)
}

func (s *FileStore) Settings() (Settings, error) {
	return s.read().Settings, nil
}

func (s *FileStore) SaveSettings(settings Settings) error {
	doc := s.read()
	doc.Settings = settings.normalize()
	return s.write(doc)
}

// MemStore is an in-memory Store, used by tests and by callers that manage
// persistence themselves.
type MemStore struct {
	doc document
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{doc: newDocument()}
}

func (s *MemStore) Transactions() ([]Transaction, error) {
	out := make([]Transaction, len(s.doc.Transactions))
	copy(out, s.doc.Transactions)
	return out, nil
}

func (s *MemStore) SaveTransactions(txs []Transaction) error {
	s.doc.Transactions = make([]Transaction, len(txs))
	copy(s.doc.Transactions, txs)
	return nil
}

func (s *MemStore) PriceOverrides() (map[string]Money, error) {
	out := make(map[string]Money, len(s.doc.Prices))
	for k, v := range s.doc.Prices {
		out[k] = v
	}
	return out, nil
}

func (s *MemStore) SavePriceOverrides(prices map[string]Money) error {
	s.doc.Prices = make(map[string]Money, len(prices))
	for k, v := range prices {
		s.doc.Prices[k] = v
	}
	return nil
}

func (s *MemStore) Settings() (Settings, error) {
	return s.doc.Settings, nil
}

func (s *MemStore) SaveSettings(settings Settings) error {
	s.doc.Settings = settings.normalize()
	return nil
}
