package model

import (
	"math"

	sdkmath "cosmossdk.io/math"
)

// NoTimestamp marks a quote whose source does not report an observation time.
const NoTimestamp uint64 = math.MaxUint64

// PriceQuote is the price of one unit of an asset in the base denom.
type PriceQuote struct {
	Rate       sdkmath.LegacyDec `json:"rate"`
	ObservedAt uint64            `json:"observed_at"`
}

// ProxyPriceResponse is the result of a price query.
type ProxyPriceResponse struct {
	Rate        sdkmath.LegacyDec `json:"rate"`
	LastUpdated uint64            `json:"last_updated"`
}

// QuoteRecord is a served price kept in the quote journal.
type QuoteRecord struct {
	AssetToken  string `json:"asset_token"`
	Rate        string `json:"rate"`
	LastUpdated uint64 `json:"last_updated"`
	ServedAt    string `json:"served_at"`
}
