package stocklog

import "fmt"

// ValidationError reports a malformed transaction. It is returned before the
// transaction enters the ledger; a transaction that fails validation is never
// partially applied.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid transaction: %s %s", e.Field, e.Reason)
}

func validationErr(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// OversoldError reports a sell whose quantity exceeds the quantity available
// at that point in chronological order. The ledger rejects such a sell at
// entry time; the holdings calculator clamps and reports it when one is found
// in an already-stored history.
type OversoldError struct {
	Symbol    string
	Date      Date
	Requested int64
	Available int64
}

func (e *OversoldError) Error() string {
	return fmt.Sprintf("on %s, cannot sell %d of %s, only %d held", e.Date, e.Requested, e.Symbol, e.Available)
}

// ImportFormatError reports an imported document that is unparseable or is
// missing an expected top-level key. The collection named by Key is left
// untouched; import never partially overwrites good data.
type ImportFormatError struct {
	Key string
	Err error
}

func (e *ImportFormatError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("unreadable import document: %v", e.Err)
	}
	return fmt.Sprintf("import key %q: %v", e.Key, e.Err)
}

func (e *ImportFormatError) Unwrap() error { return e.Err }
