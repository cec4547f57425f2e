package types

import (
	"errors"
	"fmt"
)

// tokenDecimals is the number of decimal places in a whole token:
// one token equals 10^9 nano tokens.
const tokenDecimals = 9

// nanosPerToken is the number of nano tokens in one whole token.
const nanosPerToken uint64 = 1_000_000_000

// ErrAmountOverflow is returned when adding two amounts would exceed the
// representable range.
var ErrAmountOverflow = errors.New("token amount overflow")

// NanoTokens is a monetary amount expressed in the smallest network unit
// (one billionth of a token). It marshals to JSON as a plain integer.
type NanoTokens uint64

// Add returns the sum of a and b, or ErrAmountOverflow if the result would
// wrap around.
func (a NanoTokens) Add(b NanoTokens) (NanoTokens, error) {
	sum := a + b
	if sum < a {
		return 0, ErrAmountOverflow
	}
	return sum, nil
}

// String renders the amount as a decimal token value, e.g. 1500000000 nano
// tokens formats as "1.500000000".
func (a NanoTokens) String() string {
	whole := uint64(a) / nanosPerToken
	frac := uint64(a) % nanosPerToken
	return fmt.Sprintf("%d.%0*d", whole, tokenDecimals, frac)
}
