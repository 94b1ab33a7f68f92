package chain

import (
	"context"
	"fmt"
	"math/big"

	sdkmath "cosmossdk.io/math"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"lpOracle/internal/model"
)

// rateDecimals is the fixed-point precision of on-chain rates.
const rateDecimals = 18

type abiPoolAsset struct {
	Native bool
	Denom  string
	Token  common.Address
	Amount *big.Int
}

type abiPoolResponse struct {
	Assets     []abiPoolAsset
	TotalShare *big.Int
}

type abiExchangeRate struct {
	QuoteDenom   string
	ExchangeRate *big.Int
}

// Querier issues the contract queries the oracle depends on.
type Querier struct {
	caller       ContractCaller
	nativeOracle common.Address
}

// NewQuerier builds a Querier. nativeOracle may be the zero address when no
// native exchange-rate source is deployed; native lookups then fail.
func NewQuerier(caller ContractCaller, nativeOracle common.Address) *Querier {
	return &Querier{caller: caller, nativeOracle: nativeOracle}
}

// Minter returns the minter of a token.
func (q *Querier) Minter(ctx context.Context, token common.Address) (common.Address, error) {
	parsed, err := LPTokenABI()
	if err != nil {
		return common.Address{}, fmt.Errorf("parse lp token abi: %w", err)
	}
	resp, err := q.call(ctx, token, parsed, "minter")
	if err != nil {
		return common.Address{}, err
	}
	values, err := parsed.Unpack("minter", resp)
	if err != nil {
		return common.Address{}, fmt.Errorf("unpack minter: %w", err)
	}
	if len(values) != 1 {
		return common.Address{}, fmt.Errorf("minter return size %d", len(values))
	}
	minter, ok := values[0].(common.Address)
	if !ok {
		return common.Address{}, fmt.Errorf("minter unexpected type %T", values[0])
	}
	return minter, nil
}

// Pool returns the reserves and share supply of a pair contract.
func (q *Querier) Pool(ctx context.Context, pair common.Address) (model.PoolResponse, error) {
	parsed, err := PairABI()
	if err != nil {
		return model.PoolResponse{}, fmt.Errorf("parse pair abi: %w", err)
	}
	resp, err := q.call(ctx, pair, parsed, "pool")
	if err != nil {
		return model.PoolResponse{}, err
	}

	var out abiPoolResponse
	if err := parsed.UnpackIntoInterface(&out, "pool", resp); err != nil {
		return model.PoolResponse{}, fmt.Errorf("unpack pool: %w", err)
	}

	assets := make([]model.PoolAsset, 0, len(out.Assets))
	for _, asset := range out.Assets {
		info := model.TokenAsset(asset.Token)
		if asset.Native {
			info = model.NativeAsset(asset.Denom)
		}
		assets = append(assets, model.PoolAsset{Info: info, Amount: asset.Amount})
	}

	return model.PoolResponse{Assets: assets, TotalShare: out.TotalShare}, nil
}

// ExchangeRates returns native exchange rates of base quoted in each of quotes.
func (q *Querier) ExchangeRates(ctx context.Context, base string, quotes []string) ([]model.ExchangeRate, error) {
	if q.nativeOracle == (common.Address{}) {
		return nil, fmt.Errorf("native oracle address is not configured")
	}
	parsed, err := NativeOracleABI()
	if err != nil {
		return nil, fmt.Errorf("parse native oracle abi: %w", err)
	}
	resp, err := q.call(ctx, q.nativeOracle, parsed, "exchangeRates", base, quotes)
	if err != nil {
		return nil, err
	}

	var out []abiExchangeRate
	if err := parsed.UnpackIntoInterface(&out, "exchangeRates", resp); err != nil {
		return nil, fmt.Errorf("unpack exchangeRates: %w", err)
	}

	rates := make([]model.ExchangeRate, 0, len(out))
	for _, rate := range out {
		dec, err := decFromFixedPoint(rate.ExchangeRate)
		if err != nil {
			return nil, fmt.Errorf("exchange rate %s: %w", rate.QuoteDenom, err)
		}
		rates = append(rates, model.ExchangeRate{QuoteDenom: rate.QuoteDenom, ExchangeRate: dec})
	}
	return rates, nil
}

// HubPrice queries the price hub for a token. A nil timeframe selects the hub default.
func (q *Querier) HubPrice(ctx context.Context, hub, token common.Address, timeframe *uint64) (model.HubPriceResponse, error) {
	parsed, err := HubABI()
	if err != nil {
		return model.HubPriceResponse{}, fmt.Errorf("parse hub abi: %w", err)
	}
	var window uint64
	if timeframe != nil {
		window = *timeframe
	}
	resp, err := q.call(ctx, hub, parsed, "price", token, window)
	if err != nil {
		return model.HubPriceResponse{}, err
	}

	values, err := parsed.Unpack("price", resp)
	if err != nil {
		return model.HubPriceResponse{}, fmt.Errorf("unpack price: %w", err)
	}
	if len(values) != 2 {
		return model.HubPriceResponse{}, fmt.Errorf("price return size %d", len(values))
	}
	raw, ok := values[0].(*big.Int)
	if !ok {
		return model.HubPriceResponse{}, fmt.Errorf("price rate unexpected type %T", values[0])
	}
	lastUpdated, ok := values[1].(uint64)
	if !ok {
		return model.HubPriceResponse{}, fmt.Errorf("price last updated unexpected type %T", values[1])
	}
	rate, err := decFromFixedPoint(raw)
	if err != nil {
		return model.HubPriceResponse{}, fmt.Errorf("price rate: %w", err)
	}

	return model.HubPriceResponse{Rate: rate, LastUpdated: lastUpdated}, nil
}

func (q *Querier) call(ctx context.Context, to common.Address, parsed abi.ABI, method string, args ...interface{}) ([]byte, error) {
	if q.caller == nil {
		return nil, fmt.Errorf("contract caller is nil")
	}
	data, err := parsed.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	msg := ethereum.CallMsg{To: &to, Data: data}
	resp, err := q.caller.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s on %s: %w", method, to.Hex(), err)
	}
	return resp, nil
}

func decFromFixedPoint(value *big.Int) (sdkmath.LegacyDec, error) {
	if value == nil {
		return sdkmath.LegacyDec{}, fmt.Errorf("nil rate")
	}
	if value.Sign() < 0 {
		return sdkmath.LegacyDec{}, fmt.Errorf("negative rate %s", value)
	}
	return sdkmath.LegacyNewDecFromBigIntWithPrec(value, rateDecimals), nil
}
