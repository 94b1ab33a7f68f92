package oracle

import (
	"context"
	"errors"
	"math/big"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"lpOracle/internal/model"
	"lpOracle/internal/wide"
)

// Valuator prices LP shares with the constant-product fair value formula
//
//	poolValue = 2 * sqrt(reserveA*priceA * reserveB*priceB)
//	rate      = poolValue / totalShares
//
// The product reserveA*reserveB is unchanged by a one-sided deposit or
// withdrawal at the pool's invariant, so the result tracks external prices
// rather than the pool's own reserve ratio.
type Valuator struct {
	pools  *PoolResolver
	prices *PriceResolver
	logger *zap.Logger
}

// NewValuator combines a pool and a price resolver. A nil logger discards output.
func NewValuator(pools *PoolResolver, prices *PriceResolver, logger *zap.Logger) *Valuator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Valuator{pools: pools, prices: prices, logger: logger}
}

// ComputeLPRate returns the per-share value of lpToken at time now.
func (v *Valuator) ComputeLPRate(ctx context.Context, lpToken common.Address, cfg model.Config, now uint64) (model.ProxyPriceResponse, error) {
	pool, err := v.pools.ResolvePool(ctx, lpToken)
	if err != nil {
		return model.ProxyPriceResponse{}, err
	}
	if pool.TotalShares == nil || pool.TotalShares.Sign() == 0 {
		return model.ProxyPriceResponse{}, errorsmod.Wrapf(ErrArithmetic, "invalid pool: zero total shares (lp token %s)", lpToken.Hex())
	}

	priceA, err := v.prices.ResolvePrice(ctx, pool.AssetA, cfg)
	if err != nil {
		return model.ProxyPriceResponse{}, err
	}
	priceB, err := v.prices.ResolvePrice(ctx, pool.AssetB, cfg)
	if err != nil {
		return model.ProxyPriceResponse{}, err
	}

	rate, err := FairShareValue(pool.ReserveA, priceA.Rate, pool.ReserveB, priceB.Rate, pool.TotalShares)
	if err != nil {
		return model.ProxyPriceResponse{}, errorsmod.Wrapf(err, "lp token %s", lpToken.Hex())
	}

	v.logger.Debug("lp rate computed",
		zap.String("lp_token", lpToken.Hex()),
		zap.String("pool", pool.Pool),
		zap.Stringer("asset_a", pool.AssetA),
		zap.String("reserve_a", pool.ReserveA.String()),
		zap.String("price_a", priceA.Rate.String()),
		zap.Stringer("asset_b", pool.AssetB),
		zap.String("reserve_b", pool.ReserveB.String()),
		zap.String("price_b", priceB.Rate.String()),
		zap.String("total_shares", pool.TotalShares.String()),
		zap.String("rate", rate.String()),
	)

	return model.ProxyPriceResponse{Rate: rate, LastUpdated: now}, nil
}

// FairShareValue applies the fair value formula to raw pool figures.
// Each reserve*price product is floored to an integer and must fit in 128 bits.
func FairShareValue(reserveA *big.Int, priceA sdkmath.LegacyDec, reserveB *big.Int, priceB sdkmath.LegacyDec, totalShares *big.Int) (sdkmath.LegacyDec, error) {
	if totalShares == nil || totalShares.Sign() == 0 {
		return sdkmath.LegacyDec{}, errorsmod.Wrap(ErrArithmetic, "invalid pool: zero total shares")
	}

	valueA, err := assetValue(reserveA, priceA)
	if err != nil {
		return sdkmath.LegacyDec{}, errorsmod.Wrapf(ErrArithmetic, "primary value: %s", err)
	}
	valueB, err := assetValue(reserveB, priceB)
	if err != nil {
		return sdkmath.LegacyDec{}, errorsmod.Wrapf(ErrArithmetic, "secondary value: %s", err)
	}

	product, err := wide.Mul(valueA, valueB)
	if err != nil {
		return sdkmath.LegacyDec{}, errorsmod.Wrapf(ErrArithmetic, "value product: %s", err)
	}
	poolValue, err := wide.Double(wide.Sqrt(product))
	if err != nil {
		return sdkmath.LegacyDec{}, errorsmod.Wrapf(ErrArithmetic, "pool value: %s", err)
	}

	return decFromRatio(poolValue, totalShares)
}

// assetValue returns floor(reserve * price) widened to 256 bits.
func assetValue(reserve *big.Int, price sdkmath.LegacyDec) (*uint256.Int, error) {
	if reserve == nil || reserve.Sign() < 0 {
		return nil, errors.New("invalid reserve")
	}
	if price.IsNil() || price.IsNegative() {
		return nil, errors.New("invalid price")
	}
	value := new(big.Int).Mul(reserve, price.BigInt())
	value.Quo(value, sdkmath.LegacyOneDec().BigInt())
	return wide.FromUint128(value)
}

// decFromRatio returns numerator/denominator as a decimal, rounded down.
func decFromRatio(numerator *uint256.Int, denominator *big.Int) (sdkmath.LegacyDec, error) {
	num := sdkmath.LegacyNewDecFromBigInt(numerator.ToBig())
	den := sdkmath.LegacyNewDecFromBigInt(denominator)
	if den.IsZero() {
		return sdkmath.LegacyDec{}, errorsmod.Wrap(ErrArithmetic, "division by zero")
	}
	return num.QuoTruncate(den), nil
}
