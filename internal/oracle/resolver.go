package oracle

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"

	"lpOracle/internal/model"
)

// DefaultBaseDenom is the unit of account prices are expressed in.
const DefaultBaseDenom = "uusd"

// PriceResolver prices a single asset in the base denom.
type PriceResolver struct {
	baseDenom string
	native    NativeRateQuerier
	hub       HubQuerier
}

// NewPriceResolver returns a resolver pricing in baseDenom, or DefaultBaseDenom when empty.
func NewPriceResolver(baseDenom string, native NativeRateQuerier, hub HubQuerier) *PriceResolver {
	if baseDenom == "" {
		baseDenom = DefaultBaseDenom
	}
	return &PriceResolver{baseDenom: baseDenom, native: native, hub: hub}
}

// BaseDenom returns the denom priced at exactly one.
func (r *PriceResolver) BaseDenom() string {
	return r.baseDenom
}

// ResolvePrice returns the price of asset. Failures are not retried.
func (r *PriceResolver) ResolvePrice(ctx context.Context, asset model.AssetInfo, cfg model.Config) (model.PriceQuote, error) {
	switch asset.Kind() {
	case model.AssetKindNative:
		if asset.Denom() == r.baseDenom {
			return model.PriceQuote{Rate: sdkmath.LegacyOneDec(), ObservedAt: model.NoTimestamp}, nil
		}
		return r.nativePrice(ctx, asset.Denom())
	case model.AssetKindToken:
		return r.hubPrice(ctx, asset, cfg)
	default:
		return model.PriceQuote{}, errorsmod.Wrapf(ErrPoolData, "unknown asset kind %d", asset.Kind())
	}
}

// nativePrice asks for a single quote denom and uses the single resulting entry.
// The source reports no observation time, so NoTimestamp is returned.
func (r *PriceResolver) nativePrice(ctx context.Context, denom string) (model.PriceQuote, error) {
	if r.native == nil {
		return model.PriceQuote{}, errorsmod.Wrap(ErrExternalQuery, "native exchange-rate source is not configured")
	}
	rates, err := r.native.ExchangeRates(ctx, denom, []string{r.baseDenom})
	if err != nil {
		return model.PriceQuote{}, errorsmod.Wrapf(ErrExternalQuery, "exchange rate %s/%s: %s", denom, r.baseDenom, err)
	}
	if len(rates) == 0 {
		return model.PriceQuote{}, errorsmod.Wrapf(ErrExternalQuery, "exchange rate %s/%s: empty response", denom, r.baseDenom)
	}
	rate := rates[0]
	if rate.QuoteDenom != "" && rate.QuoteDenom != r.baseDenom {
		return model.PriceQuote{}, errorsmod.Wrapf(ErrExternalQuery, "exchange rate %s: unexpected quote denom %s", denom, rate.QuoteDenom)
	}
	if rate.ExchangeRate.IsNil() || rate.ExchangeRate.IsNegative() {
		return model.PriceQuote{}, errorsmod.Wrapf(ErrExternalQuery, "exchange rate %s/%s: invalid rate", denom, r.baseDenom)
	}
	return model.PriceQuote{Rate: rate.ExchangeRate, ObservedAt: model.NoTimestamp}, nil
}

func (r *PriceResolver) hubPrice(ctx context.Context, asset model.AssetInfo, cfg model.Config) (model.PriceQuote, error) {
	if r.hub == nil {
		return model.PriceQuote{}, errorsmod.Wrap(ErrExternalQuery, "price hub querier is not configured")
	}
	if cfg.PriceHubAddress == zeroAddress {
		return model.PriceQuote{}, errorsmod.Wrap(ErrConfig, "price hub address is not set")
	}
	resp, err := r.hub.HubPrice(ctx, cfg.PriceHubAddress, asset.Token(), nil)
	if err != nil {
		return model.PriceQuote{}, errorsmod.Wrapf(ErrExternalQuery, "hub price %s: %s", asset.Token().Hex(), err)
	}
	if resp.Rate.IsNil() || resp.Rate.IsNegative() {
		return model.PriceQuote{}, errorsmod.Wrapf(ErrExternalQuery, "hub price %s: invalid rate", asset.Token().Hex())
	}
	return model.PriceQuote{Rate: resp.Rate, ObservedAt: resp.LastUpdated}, nil
}
