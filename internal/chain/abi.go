package chain

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

const lpTokenABIJSON = `[
  {"inputs": [], "name": "minter", "outputs": [{"internalType": "address", "name": "", "type": "address"}], "stateMutability": "view", "type": "function"}
]`

const pairABIJSON = `[
  {
    "inputs": [],
    "name": "pool",
    "outputs": [
      {
        "components": [
          {"internalType": "bool", "name": "native", "type": "bool"},
          {"internalType": "string", "name": "denom", "type": "string"},
          {"internalType": "address", "name": "token", "type": "address"},
          {"internalType": "uint128", "name": "amount", "type": "uint128"}
        ],
        "internalType": "struct Asset[]",
        "name": "assets",
        "type": "tuple[]"
      },
      {"internalType": "uint128", "name": "totalShare", "type": "uint128"}
    ],
    "stateMutability": "view",
    "type": "function"
  }
]`

const nativeOracleABIJSON = `[
  {
    "inputs": [
      {"internalType": "string", "name": "base", "type": "string"},
      {"internalType": "string[]", "name": "quotes", "type": "string[]"}
    ],
    "name": "exchangeRates",
    "outputs": [
      {
        "components": [
          {"internalType": "string", "name": "quoteDenom", "type": "string"},
          {"internalType": "uint256", "name": "exchangeRate", "type": "uint256"}
        ],
        "internalType": "struct ExchangeRate[]",
        "name": "",
        "type": "tuple[]"
      }
    ],
    "stateMutability": "view",
    "type": "function"
  }
]`

const hubABIJSON = `[
  {
    "inputs": [
      {"internalType": "address", "name": "assetToken", "type": "address"},
      {"internalType": "uint64", "name": "timeframe", "type": "uint64"}
    ],
    "name": "price",
    "outputs": [
      {"internalType": "uint256", "name": "rate", "type": "uint256"},
      {"internalType": "uint64", "name": "lastUpdated", "type": "uint64"}
    ],
    "stateMutability": "view",
    "type": "function"
  }
]`

type lazyABI struct {
	source string
	once   sync.Once
	parsed abi.ABI
	err    error
}

func (l *lazyABI) get() (abi.ABI, error) {
	l.once.Do(func() {
		l.parsed, l.err = abi.JSON(strings.NewReader(l.source))
	})
	return l.parsed, l.err
}

var (
	lpTokenABI      = &lazyABI{source: lpTokenABIJSON}
	pairABI         = &lazyABI{source: pairABIJSON}
	nativeOracleABI = &lazyABI{source: nativeOracleABIJSON}
	hubABI          = &lazyABI{source: hubABIJSON}
)

// LPTokenABI returns the parsed LP token ABI.
func LPTokenABI() (abi.ABI, error) { return lpTokenABI.get() }

// PairABI returns the parsed pair contract ABI.
func PairABI() (abi.ABI, error) { return pairABI.get() }

// NativeOracleABI returns the parsed native exchange-rate oracle ABI.
func NativeOracleABI() (abi.ABI, error) { return nativeOracleABI.get() }

// HubABI returns the parsed price hub ABI.
func HubABI() (abi.ABI, error) { return hubABI.get() }
