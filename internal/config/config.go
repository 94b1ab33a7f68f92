package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	RPCURL       string
	NativeOracle string
	BaseDenom    string
	StoreFile    string
	PGDSN        string
	MaxRetries   int
	RetryBackoff time.Duration
	QuotesOut    string
	Listen       string
	PriceHub     string
	AssetToken   string
	LogLevel     string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ORACLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("base-denom", "uusd")
	v.SetDefault("store-file", "./data/config.json")
	v.SetDefault("listen", ":8080")
	v.SetDefault("max-retries", 5)
	v.SetDefault("retry-backoff", 500*time.Millisecond)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		RPCURL:       strings.TrimSpace(v.GetString("rpc")),
		NativeOracle: strings.TrimSpace(v.GetString("native-oracle")),
		BaseDenom:    strings.TrimSpace(v.GetString("base-denom")),
		StoreFile:    strings.TrimSpace(v.GetString("store-file")),
		PGDSN:        strings.TrimSpace(v.GetString("pg-dsn")),
		MaxRetries:   v.GetInt("max-retries"),
		RetryBackoff: v.GetDuration("retry-backoff"),
		QuotesOut:    strings.TrimSpace(v.GetString("quotes-out")),
		Listen:       strings.TrimSpace(v.GetString("listen")),
		PriceHub:     strings.TrimSpace(v.GetString("price-hub")),
		AssetToken:   strings.TrimSpace(v.GetString("asset-token")),
		LogLevel:     v.GetString("log-level"),
	}

	return cfg, nil
}
