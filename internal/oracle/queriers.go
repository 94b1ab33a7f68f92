package oracle

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"lpOracle/internal/model"
)

// MinterQuerier looks up the minter of a token.
type MinterQuerier interface {
	Minter(ctx context.Context, token common.Address) (common.Address, error)
}

// PoolQuerier reads the pool state of a pair contract.
type PoolQuerier interface {
	Pool(ctx context.Context, pair common.Address) (model.PoolResponse, error)
}

// NativeRateQuerier reads native exchange rates of base in each quote denom.
type NativeRateQuerier interface {
	ExchangeRates(ctx context.Context, base string, quotes []string) ([]model.ExchangeRate, error)
}

// HubQuerier reads token prices from a price hub.
type HubQuerier interface {
	HubPrice(ctx context.Context, hub, token common.Address, timeframe *uint64) (model.HubPriceResponse, error)
}

// Querier bundles every upstream lookup used by a price query.
type Querier interface {
	MinterQuerier
	PoolQuerier
	NativeRateQuerier
	HubQuerier
}
