package model

import (
	"math/big"

	sdkmath "cosmossdk.io/math"
)

// PoolResponse is the raw pool-state reply of a pair contract.
type PoolResponse struct {
	Assets     []PoolAsset `json:"assets"`
	TotalShare *big.Int    `json:"total_share"`
}

// ExchangeRate is one entry of a native exchange-rate reply.
type ExchangeRate struct {
	QuoteDenom   string            `json:"quote_denom"`
	ExchangeRate sdkmath.LegacyDec `json:"exchange_rate"`
}

// HubPriceResponse is the price hub reply for a token.
type HubPriceResponse struct {
	Rate        sdkmath.LegacyDec `json:"rate"`
	LastUpdated uint64            `json:"last_updated"`
}
