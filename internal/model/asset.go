package model

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// AssetKind tags the variant held by an AssetInfo.
type AssetKind uint8

const (
	AssetKindNative AssetKind = iota + 1
	AssetKindToken
)

func (k AssetKind) String() string {
	switch k {
	case AssetKindNative:
		return "native"
	case AssetKindToken:
		return "token"
	default:
		return "unknown"
	}
}

// AssetInfo identifies a pooled asset: either a native chain denom or a token contract.
// The zero value is invalid; build one with NativeAsset or TokenAsset.
type AssetInfo struct {
	kind  AssetKind
	denom string
	token common.Address
}

// NativeAsset returns the descriptor for a native denom.
func NativeAsset(denom string) AssetInfo {
	return AssetInfo{kind: AssetKindNative, denom: denom}
}

// TokenAsset returns the descriptor for a token contract.
func TokenAsset(address common.Address) AssetInfo {
	return AssetInfo{kind: AssetKindToken, token: address}
}

func (a AssetInfo) Kind() AssetKind { return a.kind }

// Denom is set only for native assets.
func (a AssetInfo) Denom() string { return a.denom }

// Token is set only for token assets.
func (a AssetInfo) Token() common.Address { return a.token }

// Equal compares tag and payload.
func (a AssetInfo) Equal(other AssetInfo) bool {
	if a.kind != other.kind {
		return false
	}
	switch a.kind {
	case AssetKindNative:
		return a.denom == other.denom
	case AssetKindToken:
		return a.token == other.token
	default:
		return true
	}
}

func (a AssetInfo) String() string {
	switch a.kind {
	case AssetKindNative:
		return "native:" + a.denom
	case AssetKindToken:
		return "token:" + a.token.Hex()
	default:
		return "unknown"
	}
}

type assetInfoJSON struct {
	Native *string `json:"native,omitempty"`
	Token  *string `json:"token,omitempty"`
}

func (a AssetInfo) MarshalJSON() ([]byte, error) {
	switch a.kind {
	case AssetKindNative:
		denom := a.denom
		return json.Marshal(assetInfoJSON{Native: &denom})
	case AssetKindToken:
		token := a.token.Hex()
		return json.Marshal(assetInfoJSON{Token: &token})
	default:
		return nil, fmt.Errorf("marshal asset info: unknown kind %d", a.kind)
	}
}

func (a *AssetInfo) UnmarshalJSON(data []byte) error {
	var raw assetInfoJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch {
	case raw.Native != nil && raw.Token == nil:
		if strings.TrimSpace(*raw.Native) == "" {
			return fmt.Errorf("native denom is empty")
		}
		*a = NativeAsset(*raw.Native)
	case raw.Token != nil && raw.Native == nil:
		if !common.IsHexAddress(*raw.Token) {
			return fmt.Errorf("invalid token address: %s", *raw.Token)
		}
		*a = TokenAsset(common.HexToAddress(*raw.Token))
	default:
		return fmt.Errorf("asset info must set exactly one of native or token")
	}
	return nil
}
