package oracle

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"lpOracle/internal/model"
)

func TestResolvePool(t *testing.T) {
	querier := newFakeQuerier()
	querier.addPool(lpAddr, pairAddr, model.TokenAsset(tokenAddr), 100, model.NativeAsset("uusd"), 200, 100)

	pool, err := NewPoolResolver(querier, querier).ResolvePool(context.Background(), lpAddr)
	if err != nil {
		t.Fatalf("resolve pool: %v", err)
	}
	if pool.Pool != pairAddr.Hex() {
		t.Fatalf("pool address mismatch: %s", pool.Pool)
	}
	if !pool.AssetA.Equal(model.TokenAsset(tokenAddr)) || pool.ReserveA.Int64() != 100 {
		t.Fatalf("primary mismatch: %s %s", pool.AssetA, pool.ReserveA)
	}
	if !pool.AssetB.Equal(model.NativeAsset("uusd")) || pool.ReserveB.Int64() != 200 {
		t.Fatalf("secondary mismatch: %s %s", pool.AssetB, pool.ReserveB)
	}
	if pool.TotalShares.Int64() != 100 {
		t.Fatalf("total shares mismatch: %s", pool.TotalShares)
	}
}

func TestResolvePoolMalformed(t *testing.T) {
	native := model.NativeAsset("uusd")
	token := model.TokenAsset(tokenAddr)

	cases := []struct {
		name string
		resp model.PoolResponse
	}{
		{
			name: "single asset",
			resp: model.PoolResponse{
				Assets:     []model.PoolAsset{{Info: native, Amount: big.NewInt(1)}},
				TotalShare: big.NewInt(1),
			},
		},
		{
			name: "three assets",
			resp: model.PoolResponse{
				Assets: []model.PoolAsset{
					{Info: native, Amount: big.NewInt(1)},
					{Info: token, Amount: big.NewInt(1)},
					{Info: model.NativeAsset("uluna"), Amount: big.NewInt(1)},
				},
				TotalShare: big.NewInt(1),
			},
		},
		{
			name: "duplicate asset",
			resp: model.PoolResponse{
				Assets:     []model.PoolAsset{{Info: native, Amount: big.NewInt(1)}, {Info: native, Amount: big.NewInt(2)}},
				TotalShare: big.NewInt(1),
			},
		},
		{
			name: "unknown kind",
			resp: model.PoolResponse{
				Assets:     []model.PoolAsset{{Info: native, Amount: big.NewInt(1)}, {Amount: big.NewInt(2)}},
				TotalShare: big.NewInt(1),
			},
		},
		{
			name: "reserve above u128",
			resp: model.PoolResponse{
				Assets:     []model.PoolAsset{{Info: native, Amount: new(big.Int).Lsh(big.NewInt(1), 128)}, {Info: token, Amount: big.NewInt(2)}},
				TotalShare: big.NewInt(1),
			},
		},
		{
			name: "missing total share",
			resp: model.PoolResponse{
				Assets: []model.PoolAsset{{Info: native, Amount: big.NewInt(1)}, {Info: token, Amount: big.NewInt(2)}},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			querier := newFakeQuerier()
			querier.minters[lpAddr] = pairAddr
			querier.pools[pairAddr] = tc.resp

			_, err := NewPoolResolver(querier, querier).ResolvePool(context.Background(), lpAddr)
			if !errors.Is(err, ErrPoolData) {
				t.Fatalf("expected ErrPoolData, got %v", err)
			}
		})
	}
}

func TestResolvePoolZeroMinter(t *testing.T) {
	querier := newFakeQuerier()
	querier.minters[lpAddr] = common.Address{}

	_, err := NewPoolResolver(querier, querier).ResolvePool(context.Background(), lpAddr)
	if !errors.Is(err, ErrPoolData) {
		t.Fatalf("expected ErrPoolData, got %v", err)
	}
}

func TestResolvePoolQueryFailures(t *testing.T) {
	querier := newFakeQuerier()
	if _, err := NewPoolResolver(querier, querier).ResolvePool(context.Background(), lpAddr); !errors.Is(err, ErrExternalQuery) {
		t.Fatalf("minter failure: expected ErrExternalQuery, got %v", err)
	}

	querier.minters[lpAddr] = pairAddr
	if _, err := NewPoolResolver(querier, querier).ResolvePool(context.Background(), lpAddr); !errors.Is(err, ErrExternalQuery) {
		t.Fatalf("pool failure: expected ErrExternalQuery, got %v", err)
	}
}
