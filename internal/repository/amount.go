package repository

import "github.com/shopspring/decimal"

// amount stores a decimal as a bare JSON number instead of decimal's
// default quoted string.
type amount decimal.Decimal

func (a amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).String()), nil
}

func (a *amount) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	*a = amount(d)
	return nil
}
