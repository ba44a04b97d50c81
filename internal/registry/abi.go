package registry

import (
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// registrarABIJSON is the subdomain registrar interface: one write to
// claim a label with a token, one view returning the domain claimed by
// each token in an index-aligned list.
const registrarABIJSON = `[
  {
    "name": "claimSubdomain",
    "type": "function",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "label", "type": "string"},
      {"name": "tokenId", "type": "uint256"}
    ],
    "outputs": []
  },
  {
    "name": "getTokensDomains",
    "type": "function",
    "stateMutability": "view",
    "inputs": [
      {"name": "tokenIds", "type": "uint256[]"}
    ],
    "outputs": [
      {"name": "", "type": "string[]"}
    ]
  }
]`

var (
	registrarABI     abi.ABI
	registrarABIOnce sync.Once
	registrarABIErr  error
)

// loadABI parses the registrar ABI once.
func loadABI() (abi.ABI, error) {
	registrarABIOnce.Do(func() {
		registrarABI, registrarABIErr = abi.JSON(strings.NewReader(registrarABIJSON))
	})
	return registrarABI, registrarABIErr
}
