package rpc

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x1723/mfbldr/internal/metrics"
)

// newTestServer returns a server that answers every method from the given
// result map, echoing the request ID.
func newTestServer(t *testing.T, results map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string          `json:"method"`
			ID     uint64          `json:"id"`
			Params json.RawMessage `json:"params"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		result, ok := results[req.Method]
		if !ok {
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":-32601,"message":"method not found"}}`))
			return
		}
		resp := map[string]any{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  json.RawMessage(result),
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestChainID(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{"eth_chainId": `"0x1"`})
	defer srv.Close()

	client := NewClient(srv.URL)
	id, err := client.ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1), id)
}

func TestGetTransactionCount(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{"eth_getTransactionCount": `"0x2a"`})
	defer srv.Close()

	client := NewClient(srv.URL)
	nonce, err := client.GetTransactionCount(context.Background(), "0xabc", "")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), nonce)
}

func TestGasPrice(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{"eth_gasPrice": `"0x3b9aca00"`})
	defer srv.Close()

	client := NewClient(srv.URL)
	price, err := client.GasPrice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1_000_000_000), price)
}

func TestEthCall(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{"eth_call": `"0xdeadbeef"`})
	defer srv.Close()

	client := NewClient(srv.URL)
	out, err := client.EthCall(context.Background(), CallMsg{To: "0xabc", Data: []byte{0x01}}, "")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, out)
}

func TestSendRawTransaction(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"eth_sendRawTransaction": `"0x1111111111111111111111111111111111111111111111111111111111111111"`,
	})
	defer srv.Close()

	client := NewClient(srv.URL)
	hash, err := client.SendRawTransaction(context.Background(), []byte{0xf8, 0x6b})
	require.NoError(t, err)
	assert.Equal(t, "0x1111111111111111111111111111111111111111111111111111111111111111", hash)
}

func TestGetTransactionReceipt(t *testing.T) {
	t.Parallel()

	t.Run("unmined returns nil nil", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t, map[string]string{"eth_getTransactionReceipt": `null`})
		defer srv.Close()

		client := NewClient(srv.URL)
		receipt, err := client.GetTransactionReceipt(context.Background(), "0xabc")
		require.NoError(t, err)
		assert.Nil(t, receipt)
	})

	t.Run("mined receipt with success status", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t, map[string]string{
			"eth_getTransactionReceipt": `{"transactionHash":"0xabc","blockNumber":"0x10","status":"0x1"}`,
		})
		defer srv.Close()

		client := NewClient(srv.URL)
		receipt, err := client.GetTransactionReceipt(context.Background(), "0xabc")
		require.NoError(t, err)
		require.NotNil(t, receipt)
		assert.True(t, receipt.Succeeded())
	})

	t.Run("reverted receipt", func(t *testing.T) {
		t.Parallel()
		srv := newTestServer(t, map[string]string{
			"eth_getTransactionReceipt": `{"transactionHash":"0xabc","blockNumber":"0x10","status":"0x0"}`,
		})
		defer srv.Close()

		client := NewClient(srv.URL)
		receipt, err := client.GetTransactionReceipt(context.Background(), "0xabc")
		require.NoError(t, err)
		require.NotNil(t, receipt)
		assert.False(t, receipt.Succeeded())
	})
}

func TestRPCErrorPreservesNodeMessage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"error":{"code":3,"message":"execution reverted: Not authorised"}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.EstimateGas(context.Background(), CallMsg{To: "0xabc"})
	require.Error(t, err)
	assert.Equal(t, "execution reverted: Not authorised", err.Error())
}

func TestCallRecordsMetrics(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{"eth_gasPrice": `"0x1"`})
	defer srv.Close()

	before := metrics.Global.Snapshot()

	client := NewClient(srv.URL)
	_, err := client.GasPrice(context.Background())
	require.NoError(t, err)

	after := metrics.Global.Snapshot()
	assert.GreaterOrEqual(t, after.RPCCallsTotal, before.RPCCallsTotal+1)
	assert.GreaterOrEqual(t, after.RPCLatencyNanos, before.RPCLatencyNanos)
}

func TestCallMsgMarshalJSON(t *testing.T) {
	t.Parallel()

	msg := CallMsg{
		From:  "0xfrom",
		To:    "0xto",
		Gas:   21000,
		Value: big.NewInt(5),
		Data:  []byte{0xab},
	}
	data, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"0xfrom","to":"0xto","gas":"0x5208","value":"0x5","data":"0xab"}`, string(data))

	// Zero-value fields are omitted
	data, err = json.Marshal(CallMsg{To: "0xto"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"to":"0xto"}`, string(data))
}

func TestParseHexBigInt(t *testing.T) {
	t.Parallel()

	n, err := parseHexBigInt("0x0")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n.Int64())

	n, err = parseHexBigInt("")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n.Int64())

	_, err = parseHexBigInt("0xzz")
	require.ErrorIs(t, err, ErrInvalidHexNumber)
}
