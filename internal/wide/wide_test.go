package wide

import (
	"errors"
	"math/big"
	"testing"

	"github.com/holiman/uint256"
)

func TestSqrtFloor(t *testing.T) {
	cases := []struct {
		in   uint64
		want uint64
	}{
		{0, 0},
		{1, 1},
		{3, 1},
		{4, 2},
		{15, 3},
		{16, 4},
		{40000, 200},
		{40001, 200},
		{1<<62 - 1, 2147483647},
	}
	for _, tc := range cases {
		got := Sqrt(uint256.NewInt(tc.in))
		if got.Uint64() != tc.want {
			t.Fatalf("sqrt(%d) = %d, want %d", tc.in, got.Uint64(), tc.want)
		}
	}
}

func TestSqrtOfMaxProduct(t *testing.T) {
	max128 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	a, err := FromUint128(max128)
	if err != nil {
		t.Fatalf("widen: %v", err)
	}

	product, err := Mul(a, a)
	if err != nil {
		t.Fatalf("product of two u128 values must fit: %v", err)
	}

	root := Sqrt(product)
	if root.ToBig().Cmp(max128) != 0 {
		t.Fatalf("sqrt((2^128-1)^2) = %s, want %s", root.Dec(), max128)
	}
}

func TestMulOverflow(t *testing.T) {
	a := new(uint256.Int).Lsh(uint256.NewInt(1), 200)
	if _, err := Mul(a, a); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected overflow, got %v", err)
	}
}

func TestDoubleOverflow(t *testing.T) {
	a := new(uint256.Int).Lsh(uint256.NewInt(1), 255)
	if _, err := Double(a); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected overflow, got %v", err)
	}
	got, err := Double(uint256.NewInt(200))
	if err != nil || got.Uint64() != 400 {
		t.Fatalf("double(200) = %v, %v", got, err)
	}
}

func TestFromUint128Bounds(t *testing.T) {
	if _, err := FromUint128(new(big.Int).Lsh(big.NewInt(1), 128)); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected overflow for 2^128, got %v", err)
	}
	if _, err := FromUint128(big.NewInt(-1)); err == nil {
		t.Fatalf("expected error for negative value")
	}
	if _, err := FromUint128(nil); err == nil {
		t.Fatalf("expected error for nil value")
	}
}
