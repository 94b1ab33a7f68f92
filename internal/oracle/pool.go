package oracle

import (
	"context"
	"math/big"

	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/common"

	"lpOracle/internal/model"
)

var zeroAddress common.Address

var maxUint128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// PoolResolver locates the pool behind an LP token and reads its reserves.
//
// The LP token's minter is assumed to be the pool contract. This is an
// invariant of the pair protocol and is not verified here; a minter that
// does not answer pool queries with a two-asset pool yields ErrPoolData.
type PoolResolver struct {
	minters MinterQuerier
	pools   PoolQuerier
}

// NewPoolResolver returns a resolver reading minters and pools through the given queriers.
func NewPoolResolver(minters MinterQuerier, pools PoolQuerier) *PoolResolver {
	return &PoolResolver{minters: minters, pools: pools}
}

// ResolvePool returns a fresh snapshot of the pool that minted lpToken.
func (r *PoolResolver) ResolvePool(ctx context.Context, lpToken common.Address) (model.PoolSnapshot, error) {
	if r.minters == nil || r.pools == nil {
		return model.PoolSnapshot{}, errorsmod.Wrap(ErrExternalQuery, "pool querier is not configured")
	}

	pair, err := r.minters.Minter(ctx, lpToken)
	if err != nil {
		return model.PoolSnapshot{}, errorsmod.Wrapf(ErrExternalQuery, "minter of %s: %s", lpToken.Hex(), err)
	}
	if pair == zeroAddress {
		return model.PoolSnapshot{}, errorsmod.Wrapf(ErrPoolData, "lp token %s has no minter", lpToken.Hex())
	}

	resp, err := r.pools.Pool(ctx, pair)
	if err != nil {
		return model.PoolSnapshot{}, errorsmod.Wrapf(ErrExternalQuery, "pool %s: %s", pair.Hex(), err)
	}

	return snapshotFromResponse(pair, resp)
}

func snapshotFromResponse(pair common.Address, resp model.PoolResponse) (model.PoolSnapshot, error) {
	if len(resp.Assets) != 2 {
		return model.PoolSnapshot{}, errorsmod.Wrapf(ErrPoolData, "pool %s reports %d assets, want 2", pair.Hex(), len(resp.Assets))
	}

	primary := resp.Assets[0].Info
	secondary := resp.Assets[1].Info
	for _, asset := range resp.Assets {
		if kind := asset.Info.Kind(); kind != model.AssetKindNative && kind != model.AssetKindToken {
			return model.PoolSnapshot{}, errorsmod.Wrapf(ErrPoolData, "pool %s reports an asset of unknown kind", pair.Hex())
		}
	}
	if primary.Equal(secondary) {
		return model.PoolSnapshot{}, errorsmod.Wrapf(ErrPoolData, "pool %s reports %s twice", pair.Hex(), primary)
	}

	primaryDepth, ok := findDepth(resp.Assets, primary)
	if !ok {
		return model.PoolSnapshot{}, errorsmod.Wrapf(ErrPoolData, "cannot find primary asset %s in pool response", primary)
	}
	secondaryDepth, ok := findDepth(resp.Assets, secondary)
	if !ok {
		return model.PoolSnapshot{}, errorsmod.Wrapf(ErrPoolData, "cannot find secondary asset %s in pool response", secondary)
	}

	for name, value := range map[string]*big.Int{
		"primary reserve":   primaryDepth,
		"secondary reserve": secondaryDepth,
		"total share":       resp.TotalShare,
	} {
		if !isUint128(value) {
			return model.PoolSnapshot{}, errorsmod.Wrapf(ErrPoolData, "pool %s %s out of range", pair.Hex(), name)
		}
	}

	return model.PoolSnapshot{
		Pool:        pair.Hex(),
		AssetA:      primary,
		ReserveA:    new(big.Int).Set(primaryDepth),
		AssetB:      secondary,
		ReserveB:    new(big.Int).Set(secondaryDepth),
		TotalShares: new(big.Int).Set(resp.TotalShare),
	}, nil
}

func findDepth(assets []model.PoolAsset, info model.AssetInfo) (*big.Int, bool) {
	for _, asset := range assets {
		if asset.Info.Equal(info) {
			return asset.Amount, true
		}
	}
	return nil, false
}

func isUint128(value *big.Int) bool {
	return value != nil && value.Sign() >= 0 && value.Cmp(maxUint128) <= 0
}
