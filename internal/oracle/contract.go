package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	errorsmod "cosmossdk.io/errors"
	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"lpOracle/internal/model"
	"lpOracle/internal/storage"
)

// Clock reports the current block time in unix seconds.
type Clock interface {
	LatestBlockTime(ctx context.Context) (uint64, error)
}

// Contract exposes instantiation, administration and queries of the oracle.
type Contract struct {
	store    storage.ConfigStore
	valuator *Valuator
	clock    Clock
	logger   *zap.Logger

	// mu keeps config updates exclusive with config reads.
	mu sync.RWMutex
}

// NewContract wires a Contract from its collaborators.
func NewContract(store storage.ConfigStore, querier Querier, baseDenom string, clock Clock, logger *zap.Logger) *Contract {
	if logger == nil {
		logger = zap.NewNop()
	}
	valuator := NewValuator(
		NewPoolResolver(querier, querier),
		NewPriceResolver(baseDenom, querier, querier),
		logger,
	)
	return &Contract{
		store:    store,
		valuator: valuator,
		clock:    clock,
		logger:   logger,
	}
}

// Instantiate validates and persists the initial config.
func (c *Contract) Instantiate(ctx context.Context, msg model.InstantiateMsg) (model.Config, error) {
	hub, err := ParseAddress(msg.PriceHubAddress)
	if err != nil {
		return model.Config{}, errorsmod.Wrapf(ErrConfig, "price hub address: %s", err)
	}
	cfg := model.Config{PriceHubAddress: hub}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.store.SaveConfig(ctx, cfg); err != nil {
		return model.Config{}, errorsmod.Wrapf(ErrConfig, "save config: %s", err)
	}

	c.logger.Info("oracle instantiated", zap.String("price_hub", hub.Hex()))
	return cfg, nil
}

// UpdateConfig applies an administrative change to a previously stored config.
func (c *Contract) UpdateConfig(ctx context.Context, msg model.UpdateConfigMsg) (model.Config, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cfg, err := c.loadConfigLocked(ctx)
	if err != nil {
		return model.Config{}, err
	}
	if msg.PriceHubAddress != nil {
		hub, err := ParseAddress(*msg.PriceHubAddress)
		if err != nil {
			return model.Config{}, errorsmod.Wrapf(ErrConfig, "price hub address: %s", err)
		}
		cfg.PriceHubAddress = hub
	}
	if err := c.store.SaveConfig(ctx, cfg); err != nil {
		return model.Config{}, errorsmod.Wrapf(ErrConfig, "save config: %s", err)
	}

	c.logger.Info("oracle config updated", zap.String("price_hub", cfg.PriceHubAddress.Hex()))
	return cfg, nil
}

// QueryConfig returns the stored config.
func (c *Contract) QueryConfig(ctx context.Context) (model.ConfigResponse, error) {
	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return model.ConfigResponse{}, err
	}
	return cfg.Response(), nil
}

// QueryPrice returns the fair per-share rate of an LP token.
func (c *Contract) QueryPrice(ctx context.Context, assetToken string) (model.ProxyPriceResponse, error) {
	lpToken, err := ParseAddress(assetToken)
	if err != nil {
		return model.ProxyPriceResponse{}, errorsmod.Wrapf(ErrInvalidRequest, "asset token: %s", err)
	}
	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return model.ProxyPriceResponse{}, err
	}
	if c.clock == nil {
		return model.ProxyPriceResponse{}, errorsmod.Wrap(ErrExternalQuery, "block clock is not configured")
	}
	now, err := c.clock.LatestBlockTime(ctx)
	if err != nil {
		return model.ProxyPriceResponse{}, errorsmod.Wrapf(ErrExternalQuery, "latest block time: %s", err)
	}
	return c.valuator.ComputeLPRate(ctx, lpToken, cfg, now)
}

// Query dispatches a raw JSON query and returns the JSON encoded result.
func (c *Contract) Query(ctx context.Context, raw []byte) ([]byte, error) {
	msg, err := ParseQueryMsg(raw)
	if err != nil {
		return nil, errorsmod.Wrap(ErrInvalidRequest, err.Error())
	}

	var res interface{}
	switch {
	case msg.Config != nil:
		res, err = c.QueryConfig(ctx)
	case msg.Base != nil && msg.Base.Price != nil:
		res, err = c.QueryPrice(ctx, msg.Base.Price.AssetToken)
	}
	if err != nil {
		return nil, err
	}
	return json.Marshal(res)
}

func (c *Contract) loadConfig(ctx context.Context) (model.Config, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadConfigLocked(ctx)
}

func (c *Contract) loadConfigLocked(ctx context.Context) (model.Config, error) {
	if c.store == nil {
		return model.Config{}, errorsmod.Wrap(ErrConfig, "config store is not configured")
	}
	cfg, ok, err := c.store.LoadConfig(ctx)
	if err != nil {
		return model.Config{}, errorsmod.Wrapf(ErrConfig, "load config: %s", err)
	}
	if !ok {
		return model.Config{}, errorsmod.Wrap(ErrConfig, "oracle is not instantiated")
	}
	return cfg, nil
}

// ParseAddress validates a non-zero hex address. Callers tag the error with
// the kind that fits the input's origin.
func ParseAddress(input string) (common.Address, error) {
	input = strings.TrimSpace(input)
	if !common.IsHexAddress(input) {
		return common.Address{}, fmt.Errorf("invalid address: %q", input)
	}
	addr := common.HexToAddress(input)
	if addr == zeroAddress {
		return common.Address{}, errors.New("zero address")
	}
	return addr, nil
}
