package registry

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x1723/mfbldr/internal/chain/rpc"
)

const testContract = "0xa3d2BDC03A0e7Fd1641e9D718d80E1C1300Eb5F9"

// testSigner signs with a throwaway key generated per test.
type testSigner struct {
	addr string
	priv []byte
}

func newTestSigner(t *testing.T) *testSigner {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return &testSigner{
		addr: crypto.PubkeyToAddress(key.PublicKey).Hex(),
		priv: crypto.FromECDSA(key),
	}
}

func (s *testSigner) Address() string { return s.addr }

func (s *testSigner) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	key, err := crypto.ToECDSA(s.priv)
	if err != nil {
		return nil, err
	}
	return types.SignTx(tx, types.NewEIP155Signer(chainID), key)
}

// rpcHandler answers JSON-RPC methods from a map of handler funcs.
func rpcHandler(t *testing.T, handlers map[string]func(params []json.RawMessage) string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string            `json:"method"`
			ID     uint64            `json:"id"`
			Params []json.RawMessage `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		h, ok := handlers[req.Method]
		require.True(t, ok, "unexpected method %s", req.Method)

		resp := map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  json.RawMessage(h(req.Params)),
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}
}

func TestIsValidAddress(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidAddress(testContract))
	assert.False(t, IsValidAddress("mfbldr.eth"))
	assert.False(t, IsValidAddress("0x123"))
	assert.False(t, IsValidAddress(""))
}

func TestNewRejectsBadAddress(t *testing.T) {
	t.Parallel()

	_, err := New(rpc.NewClient("http://localhost"), "not-an-address", big.NewInt(1), nil)
	require.Error(t, err)
}

func TestTokensDomains(t *testing.T) {
	t.Parallel()

	t.Run("empty input short-circuits", func(t *testing.T) {
		t.Parallel()
		reg, err := New(rpc.NewClient("http://localhost"), testContract, big.NewInt(1), nil)
		require.NoError(t, err)

		domains, err := reg.TokensDomains(context.Background(), nil)
		require.NoError(t, err)
		assert.Nil(t, domains)
	})

	t.Run("decodes index-aligned domains", func(t *testing.T) {
		t.Parallel()

		contractABI, err := loadABI()
		require.NoError(t, err)

		// Contract answer for two tokens: first claimed "builder", second unclaimed
		encoded, err := contractABI.Methods["getTokensDomains"].Outputs.Pack([]string{"builder", ""})
		require.NoError(t, err)

		srv := httptest.NewServer(rpcHandler(t, map[string]func([]json.RawMessage) string{
			"eth_call": func(params []json.RawMessage) string {
				var msg struct {
					To   string `json:"to"`
					Data string `json:"data"`
				}
				require.NoError(t, json.Unmarshal(params[0], &msg))
				assert.Equal(t, strings.ToLower(testContract), strings.ToLower(msg.To))
				return `"0x` + hex.EncodeToString(encoded) + `"`
			},
		}))
		defer srv.Close()

		reg, err := New(rpc.NewClient(srv.URL), testContract, big.NewInt(1), nil)
		require.NoError(t, err)

		domains, err := reg.TokensDomains(context.Background(), []*big.Int{big.NewInt(7), big.NewInt(12)})
		require.NoError(t, err)
		assert.Equal(t, []string{"builder", ""}, domains)
	})
}

func TestClaim(t *testing.T) {
	t.Parallel()

	t.Run("requires a signer", func(t *testing.T) {
		t.Parallel()
		reg, err := New(rpc.NewClient("http://localhost"), testContract, big.NewInt(1), nil)
		require.NoError(t, err)

		_, err = reg.Claim(context.Background(), "mfer1", big.NewInt(7))
		require.Error(t, err)
	})

	t.Run("builds, signs, and broadcasts", func(t *testing.T) {
		t.Parallel()

		signer := newTestSigner(t)
		wantHash := "0x2222222222222222222222222222222222222222222222222222222222222222"

		var sentRaw string
		srv := httptest.NewServer(rpcHandler(t, map[string]func([]json.RawMessage) string{
			"eth_getTransactionCount": func(_ []json.RawMessage) string { return `"0x3"` },
			"eth_gasPrice":            func(_ []json.RawMessage) string { return `"0x3b9aca00"` },
			"eth_estimateGas":         func(_ []json.RawMessage) string { return `"0x15f90"` },
			"eth_sendRawTransaction": func(params []json.RawMessage) string {
				require.NoError(t, json.Unmarshal(params[0], &sentRaw))
				return `"` + wantHash + `"`
			},
		}))
		defer srv.Close()

		reg, err := New(rpc.NewClient(srv.URL), testContract, big.NewInt(1), signer)
		require.NoError(t, err)

		hash, err := reg.Claim(context.Background(), "mfer1", big.NewInt(7))
		require.NoError(t, err)
		assert.Equal(t, wantHash, hash)

		// The broadcast payload decodes back to the transaction we built
		rawBytes, err := hex.DecodeString(strings.TrimPrefix(sentRaw, "0x"))
		require.NoError(t, err)
		var tx types.Transaction
		require.NoError(t, tx.UnmarshalBinary(rawBytes))
		assert.Equal(t, uint64(3), tx.Nonce())
		assert.Equal(t, uint64(0x15f90), tx.Gas())
		require.NotNil(t, tx.To())
		assert.Equal(t, strings.ToLower(testContract), strings.ToLower(tx.To().Hex()))

		contractABI, err := loadABI()
		require.NoError(t, err)
		wantData, err := contractABI.Pack("claimSubdomain", "mfer1", big.NewInt(7))
		require.NoError(t, err)
		assert.Equal(t, wantData, tx.Data())
	})

	t.Run("estimation revert surfaces node text", func(t *testing.T) {
		t.Parallel()

		signer := newTestSigner(t)
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Method string `json:"method"`
				ID     uint64 `json:"id"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			switch req.Method {
			case "eth_getTransactionCount":
				_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x0"}`))
			case "eth_gasPrice":
				_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x1"}`))
			case "eth_estimateGas":
				_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":3,"message":"execution reverted: sub-domain already exists"}}`))
			}
		}))
		defer srv.Close()

		reg, err := New(rpc.NewClient(srv.URL), testContract, big.NewInt(1), signer)
		require.NoError(t, err)

		_, err = reg.Claim(context.Background(), "mfer1", big.NewInt(7))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sub-domain already exists")
	})
}
