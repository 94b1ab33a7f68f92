package oracle

import (
	"encoding/json"
	"fmt"
)

// QueryMsg is the query surface. Exactly one field is set.
type QueryMsg struct {
	Config *struct{}      `json:"config,omitempty"`
	Base   *ProxyQueryMsg `json:"base,omitempty"`
}

// ProxyQueryMsg holds the queries every price proxy answers.
type ProxyQueryMsg struct {
	Price *PriceQuery `json:"price,omitempty"`
}

// PriceQuery asks for the rate of an LP token.
type PriceQuery struct {
	AssetToken string `json:"asset_token"`
}

// ParseQueryMsg decodes a raw query and checks that it names exactly one query.
func ParseQueryMsg(data []byte) (QueryMsg, error) {
	var msg QueryMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return QueryMsg{}, fmt.Errorf("decode query: %w", err)
	}
	switch {
	case msg.Config != nil && msg.Base == nil:
		return msg, nil
	case msg.Base != nil && msg.Config == nil:
		if msg.Base.Price == nil {
			return QueryMsg{}, fmt.Errorf("decode query: base query must set price")
		}
		return msg, nil
	default:
		return QueryMsg{}, fmt.Errorf("decode query: exactly one of config or base must be set")
	}
}
