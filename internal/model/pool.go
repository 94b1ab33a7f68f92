package model

import "math/big"

// PoolAsset is one reserve entry reported by a pool contract.
type PoolAsset struct {
	Info   AssetInfo `json:"info"`
	Amount *big.Int  `json:"amount"`
}

// PoolSnapshot is the pool state read for a single price query.
type PoolSnapshot struct {
	Pool        string    `json:"pool"`
	AssetA      AssetInfo `json:"asset_a"`
	ReserveA    *big.Int  `json:"reserve_a"`
	AssetB      AssetInfo `json:"asset_b"`
	ReserveB    *big.Int  `json:"reserve_b"`
	TotalShares *big.Int  `json:"total_shares"`
}
