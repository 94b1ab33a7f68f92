package oracle

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum/common"

	"lpOracle/internal/model"
)

var errUpstream = errors.New("upstream unavailable")

type hubCall struct {
	hub       common.Address
	token     common.Address
	timeframe *uint64
}

type fakeQuerier struct {
	minters    map[common.Address]common.Address
	pools      map[common.Address]model.PoolResponse
	native     map[string][]model.ExchangeRate
	hubPrices  map[common.Address]model.HubPriceResponse
	nativeErr  error
	hubCalls   []hubCall
	nativeReqs [][]string
	calls      int
}

func newFakeQuerier() *fakeQuerier {
	return &fakeQuerier{
		minters:   make(map[common.Address]common.Address),
		pools:     make(map[common.Address]model.PoolResponse),
		native:    make(map[string][]model.ExchangeRate),
		hubPrices: make(map[common.Address]model.HubPriceResponse),
	}
}

func (f *fakeQuerier) Minter(_ context.Context, token common.Address) (common.Address, error) {
	f.calls++
	minter, ok := f.minters[token]
	if !ok {
		return common.Address{}, fmt.Errorf("minter %s: %w", token.Hex(), errUpstream)
	}
	return minter, nil
}

func (f *fakeQuerier) Pool(_ context.Context, pair common.Address) (model.PoolResponse, error) {
	f.calls++
	resp, ok := f.pools[pair]
	if !ok {
		return model.PoolResponse{}, fmt.Errorf("pool %s: %w", pair.Hex(), errUpstream)
	}
	return resp, nil
}

func (f *fakeQuerier) ExchangeRates(_ context.Context, base string, quotes []string) ([]model.ExchangeRate, error) {
	f.calls++
	f.nativeReqs = append(f.nativeReqs, append([]string{base}, quotes...))
	if f.nativeErr != nil {
		return nil, f.nativeErr
	}
	return f.native[base], nil
}

func (f *fakeQuerier) HubPrice(_ context.Context, hub, token common.Address, timeframe *uint64) (model.HubPriceResponse, error) {
	f.calls++
	f.hubCalls = append(f.hubCalls, hubCall{hub: hub, token: token, timeframe: timeframe})
	resp, ok := f.hubPrices[token]
	if !ok {
		return model.HubPriceResponse{}, fmt.Errorf("unknown asset %s", token.Hex())
	}
	return resp, nil
}

// addPool registers lpToken -> pair -> assets.
func (f *fakeQuerier) addPool(lpToken, pair common.Address, a model.AssetInfo, reserveA int64, b model.AssetInfo, reserveB int64, totalShares int64) {
	f.minters[lpToken] = pair
	f.pools[pair] = model.PoolResponse{
		Assets: []model.PoolAsset{
			{Info: a, Amount: big.NewInt(reserveA)},
			{Info: b, Amount: big.NewInt(reserveB)},
		},
		TotalShare: big.NewInt(totalShares),
	}
}

type fixedClock uint64

func (c fixedClock) LatestBlockTime(context.Context) (uint64, error) {
	return uint64(c), nil
}

type memoryStore struct {
	cfg   model.Config
	saved bool
}

func (m *memoryStore) LoadConfig(context.Context) (model.Config, bool, error) {
	return m.cfg, m.saved, nil
}

func (m *memoryStore) SaveConfig(_ context.Context, cfg model.Config) error {
	m.cfg = cfg
	m.saved = true
	return nil
}

func dec(value string) sdkmath.LegacyDec {
	return sdkmath.LegacyMustNewDecFromStr(value)
}

var (
	hubAddr   = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	lpAddr    = common.HexToAddress("0x00000000000000000000000000000000000000b1")
	pairAddr  = common.HexToAddress("0x00000000000000000000000000000000000000c1")
	tokenAddr = common.HexToAddress("0x00000000000000000000000000000000000000d1")
	testCfg   = model.Config{PriceHubAddress: hubAddr}
)
