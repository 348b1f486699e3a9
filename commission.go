package stocklog

// CommissionSchedule computes the deterministic broker fee for one
// transaction: a per-unit rate with a minimum floor. The constants are
// configuration, not business rules; the defaults match a flat retail
// schedule of $0.02 per unit with a $5 minimum.
type CommissionSchedule struct {
	MinimumFee  Money `json:"minimumFee"`
	PerUnitRate Money `json:"perUnitRate"`
}

// DefaultCommissionSchedule returns the default schedule.
func DefaultCommissionSchedule() CommissionSchedule {
	return CommissionSchedule{MinimumFee: M(5), PerUnitRate: M(0.02)}
}

// IsZero reports whether the schedule is unset.
func (s CommissionSchedule) IsZero() bool {
	return s.MinimumFee.IsZero() && s.PerUnitRate.IsZero()
}

// Commission returns max(minimumFee, perUnitRate*quantity), rounded to
// 2 decimal places. Negative quantities are treated as zero.
func (s CommissionSchedule) Commission(quantity int64) Money {
	if quantity < 0 {
		quantity = 0
	}
	return s.PerUnitRate.Mul(quantity).Max(s.MinimumFee)
}

// Fee returns the fee to charge for a transaction: the fee the user declared
// on the record when present, otherwise the schedule's computed commission.
func (s CommissionSchedule) Fee(tx Transaction) Money {
	if !tx.Fee.IsZero() {
		return tx.Fee
	}
	return s.Commission(tx.Quantity)
}
