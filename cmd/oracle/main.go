package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"lpOracle/internal/model"
	"lpOracle/internal/server"
)

func main() {
	root := &cobra.Command{
		Use:          "oracle",
		Short:        "Fair LP share price oracle",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	instantiateCmd := &cobra.Command{
		Use:   "instantiate",
		Short: "Store the initial oracle config",
		RunE:  runInstantiate,
	}
	addStoreFlags(instantiateCmd)
	instantiateCmd.Flags().String("price-hub", "", "price hub contract address")
	root.AddCommand(instantiateCmd)

	updateCmd := &cobra.Command{
		Use:   "update-config",
		Short: "Change the stored oracle config",
		RunE:  runUpdateConfig,
	}
	addStoreFlags(updateCmd)
	updateCmd.Flags().String("price-hub", "", "new price hub contract address")
	root.AddCommand(updateCmd)

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Print the stored oracle config",
		RunE:  runConfig,
	}
	addStoreFlags(configCmd)
	root.AddCommand(configCmd)

	priceCmd := &cobra.Command{
		Use:   "price",
		Short: "Compute the fair rate of an LP token",
		RunE:  runPrice,
	}
	addStoreFlags(priceCmd)
	addChainFlags(priceCmd)
	priceCmd.Flags().String("asset-token", "", "LP token address")
	root.AddCommand(priceCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve oracle queries over HTTP",
		RunE:  runServe,
	}
	addStoreFlags(serveCmd)
	addChainFlags(serveCmd)
	serveCmd.Flags().String("listen", ":8080", "HTTP listen address")
	root.AddCommand(serveCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().String("store-file", "./data/config.json", "config store file (ignored when pg-dsn is set)")
	cmd.Flags().String("pg-dsn", "", "Postgres DSN for config and quote storage")
	cmd.Flags().Int("max-retries", 5, "maximum Postgres connect attempts after the first")
	cmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial Postgres connect backoff")
	cmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
}

func addChainFlags(cmd *cobra.Command) {
	cmd.Flags().String("rpc", "", "chain RPC URL")
	cmd.Flags().String("native-oracle", "", "native exchange-rate oracle address")
	cmd.Flags().String("base-denom", "uusd", "base denom prices are expressed in")
	cmd.Flags().String("quotes-out", "", "append served quotes to this JSONL file")
}

func runInstantiate(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := setup(ctx, cmd, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	if rt.cfg.PriceHub == "" {
		return fmt.Errorf("price hub address is required")
	}
	cfg, err := rt.contract().Instantiate(ctx, model.InstantiateMsg{PriceHubAddress: rt.cfg.PriceHub})
	if err != nil {
		return err
	}
	return printJSON(cmd, cfg.Response())
}

func runUpdateConfig(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := setup(ctx, cmd, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	msg := model.UpdateConfigMsg{}
	if rt.cfg.PriceHub != "" {
		msg.PriceHubAddress = &rt.cfg.PriceHub
	}
	cfg, err := rt.contract().UpdateConfig(ctx, msg)
	if err != nil {
		return err
	}
	return printJSON(cmd, cfg.Response())
}

func runConfig(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := setup(ctx, cmd, false)
	if err != nil {
		return err
	}
	defer rt.Close()

	resp, err := rt.contract().QueryConfig(ctx)
	if err != nil {
		return err
	}
	return printJSON(cmd, resp)
}

func runPrice(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := setup(ctx, cmd, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	if rt.cfg.AssetToken == "" {
		return fmt.Errorf("asset token is required")
	}
	resp, err := rt.contract().QueryPrice(ctx, rt.cfg.AssetToken)
	if err != nil {
		return err
	}

	if rt.sink != nil {
		record := model.QuoteRecord{
			AssetToken:  rt.cfg.AssetToken,
			Rate:        resp.Rate.String(),
			LastUpdated: resp.LastUpdated,
			ServedAt:    time.Now().UTC().Format(time.RFC3339Nano),
		}
		if err := rt.sink.PutQuotes(ctx, []model.QuoteRecord{record}); err != nil {
			rt.logger.Warn("quote journal write failed", zap.Error(err))
		}
	}

	return printJSON(cmd, resp)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := setup(ctx, cmd, true)
	if err != nil {
		return err
	}
	defer rt.Close()

	srv := server.NewServer(rt.contract(), rt.sink, rt.logger)

	rt.logger.Info("oracle serve start",
		zap.String("listen", rt.cfg.Listen),
		zap.String("rpc", rt.cfg.RPCURL),
		zap.String("base_denom", rt.cfg.BaseDenom),
		zap.String("native_oracle", rt.cfg.NativeOracle),
		zap.Bool("postgres", rt.cfg.PGDSN != ""),
		zap.String("quotes_out", rt.cfg.QuotesOut),
	)

	return srv.Run(ctx, rt.cfg.Listen)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
