// Package wide provides the 256-bit unsigned arithmetic used for pool valuation.
// All operations are integer-only so results are reproducible on every node.
package wide

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
)

// ErrOverflow is returned when a result does not fit its target width.
var ErrOverflow = errors.New("integer overflow")

// FromUint128 widens a u128 quantity. Negative values and values of 2^128 or more are rejected.
func FromUint128(value *big.Int) (*uint256.Int, error) {
	if value == nil {
		return nil, fmt.Errorf("nil value")
	}
	if value.Sign() < 0 {
		return nil, fmt.Errorf("negative value %s", value)
	}
	if value.BitLen() > 128 {
		return nil, fmt.Errorf("%w: %s exceeds 128 bits", ErrOverflow, value)
	}
	out, overflow := uint256.FromBig(value)
	if overflow {
		return nil, fmt.Errorf("%w: %s", ErrOverflow, value)
	}
	return out, nil
}

// Mul returns a*b, failing instead of truncating.
func Mul(a, b *uint256.Int) (*uint256.Int, error) {
	out, overflow := new(uint256.Int).MulOverflow(a, b)
	if overflow {
		return nil, fmt.Errorf("%w: %s * %s", ErrOverflow, a.Dec(), b.Dec())
	}
	return out, nil
}

// Double returns 2*x.
func Double(x *uint256.Int) (*uint256.Int, error) {
	out, overflow := new(uint256.Int).AddOverflow(x, x)
	if overflow {
		return nil, fmt.Errorf("%w: 2 * %s", ErrOverflow, x.Dec())
	}
	return out, nil
}

// Sqrt returns floor(sqrt(x)).
func Sqrt(x *uint256.Int) *uint256.Int {
	return new(uint256.Int).Sqrt(x)
}
