package model

import "github.com/ethereum/go-ethereum/common"

// Config is the persisted oracle configuration.
type Config struct {
	PriceHubAddress common.Address `json:"price_hub_addr"`
}

// Response renders the config for a config query.
func (c Config) Response() ConfigResponse {
	return ConfigResponse{PriceHubAddress: c.PriceHubAddress.Hex()}
}

// ConfigResponse is the result of a config query.
type ConfigResponse struct {
	PriceHubAddress string `json:"price_hub_addr"`
}

// InstantiateMsg carries the initial configuration.
type InstantiateMsg struct {
	PriceHubAddress string `json:"price_hub_addr"`
}

// UpdateConfigMsg carries an administrative configuration change.
type UpdateConfigMsg struct {
	PriceHubAddress *string `json:"price_hub_addr,omitempty"`
}
