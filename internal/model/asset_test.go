package model

import (
	"encoding/json"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestAssetInfoEqual(t *testing.T) {
	token := common.HexToAddress("0x1111111111111111111111111111111111111111")

	if !NativeAsset("uusd").Equal(NativeAsset("uusd")) {
		t.Fatalf("same native denoms should be equal")
	}
	if NativeAsset("uusd").Equal(NativeAsset("uluna")) {
		t.Fatalf("different native denoms should differ")
	}
	if !TokenAsset(token).Equal(TokenAsset(token)) {
		t.Fatalf("same tokens should be equal")
	}
	if NativeAsset(token.Hex()).Equal(TokenAsset(token)) {
		t.Fatalf("native and token with same payload text should differ")
	}
}

func TestAssetInfoJSON(t *testing.T) {
	token := common.HexToAddress("0x2222222222222222222222222222222222222222")

	data, err := json.Marshal(TokenAsset(token))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `{"token":"`+token.Hex()+`"}` {
		t.Fatalf("unexpected token json: %s", data)
	}

	var decoded AssetInfo
	if err := json.Unmarshal([]byte(`{"native":"uluna"}`), &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if decoded.Kind() != AssetKindNative || decoded.Denom() != "uluna" {
		t.Fatalf("unexpected asset: %s", decoded)
	}
}

func TestAssetInfoJSONRejectsAmbiguous(t *testing.T) {
	var decoded AssetInfo
	cases := []string{
		`{}`,
		`{"native":"uusd","token":"0x2222222222222222222222222222222222222222"}`,
		`{"token":"not-an-address"}`,
		`{"native":""}`,
	}
	for _, input := range cases {
		if err := json.Unmarshal([]byte(input), &decoded); err == nil {
			t.Fatalf("expected error for %s", input)
		}
	}
}
