package domain

import (
	"fmt"
	"strings"

	"github.com/govalues/decimal"
)

var (
	majorUnitLimit = decimal.MustParse("1000")
	minorPerMajor  = decimal.Hundred
	half           = decimal.MustParse("0.5")
)

// NormalizeAmount converts a client amount of unknown unit into minor units.
// Values below 1000 are read as major units (rupees), anything else as minor
// units (paise) already. A legitimate minor-unit amount under 1000 is therefore
// misread as major units; clients should send major units.
func NormalizeAmount(raw string) (int64, error) {
	d, err := decimal.Parse(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidAmount, raw)
	}
	return NormalizeDecimalAmount(d)
}

// NormalizeDecimalAmount applies the NormalizeAmount rules to a parsed value.
func NormalizeDecimalAmount(d decimal.Decimal) (int64, error) {
	if d.Sign() <= 0 {
		return 0, fmt.Errorf("%w: must be positive", ErrInvalidAmount)
	}

	if d.Cmp(majorUnitLimit) < 0 {
		var err error
		d, err = d.Mul(minorPerMajor)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidAmount, err)
		}
	}

	// round half away from zero, d is positive here
	rounded, err := d.Add(half)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidAmount, err)
	}
	whole, _, ok := rounded.Floor(0).Int64(0)
	if !ok {
		return 0, fmt.Errorf("%w: out of range", ErrInvalidAmount)
	}
	if whole < 1 {
		return 0, fmt.Errorf("%w: rounds to zero", ErrInvalidAmount)
	}
	return whole, nil
}
