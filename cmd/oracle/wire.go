package main

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lpOracle/internal/chain"
	"lpOracle/internal/config"
	"lpOracle/internal/oracle"
	"lpOracle/internal/storage"
	"lpOracle/internal/storage/postgres"
)

type runtime struct {
	cfg     config.Config
	logger  *zap.Logger
	store   storage.ConfigStore
	sink    storage.QuoteSink
	querier oracle.Querier
	clock   oracle.Clock
	closers []func()
}

// setup loads config and opens the store; withChain also dials the RPC endpoint.
func setup(ctx context.Context, cmd *cobra.Command, withChain bool) (*runtime, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	rt := &runtime{cfg: cfg, logger: logger}
	rt.closers = append(rt.closers, func() { _ = logger.Sync() })

	if cfg.PGDSN != "" {
		store, err := postgres.Connect(ctx, cfg.PGDSN, cfg.MaxRetries, cfg.RetryBackoff)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		rt.closers = append(rt.closers, store.Close)
		rt.store = store
		rt.sink = store
	} else {
		rt.store = storage.NewFileConfigStore(cfg.StoreFile)
	}
	rt.sink = withJournal(rt.sink, cfg.QuotesOut)

	if !withChain {
		return rt, nil
	}

	if cfg.RPCURL == "" {
		rt.Close()
		return nil, fmt.Errorf("rpc url is required")
	}
	var nativeOracle common.Address
	if cfg.NativeOracle != "" {
		nativeOracle, err = oracle.ParseAddress(cfg.NativeOracle)
		if err != nil {
			rt.Close()
			return nil, fmt.Errorf("native oracle: %w", err)
		}
	}

	chainClient, err := chain.NewClient(ctx, cfg.RPCURL)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("connect rpc: %w", err)
	}
	rt.closers = append(rt.closers, chainClient.Close)
	rt.querier = chain.NewQuerier(chainClient, nativeOracle)
	rt.clock = chainClient

	if chainID, err := chainClient.GetChainID(ctx); err == nil {
		logger.Info("connected to chain", zap.String("chain_id", chainID.String()))
	} else {
		logger.Warn("chain id lookup failed", zap.Error(err))
	}

	return rt, nil
}

// withJournal adds a JSONL journal at path next to sink.
func withJournal(sink storage.QuoteSink, path string) storage.QuoteSink {
	if path == "" {
		return sink
	}
	jsonl := storage.NewJsonlStorage(path)
	if sink == nil {
		return jsonl
	}
	return storage.MultiSink{sink, jsonl}
}

func (r *runtime) contract() *oracle.Contract {
	return oracle.NewContract(r.store, r.querier, r.cfg.BaseDenom, r.clock, r.logger)
}

func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i]()
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
