package registry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0x1723/mfbldr/internal/chain/rpc"
)

func receiptServer(t *testing.T, answers []string) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID uint64 `json:"id"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		i := calls.Add(1) - 1
		answer := answers[len(answers)-1]
		if int(i) < len(answers) {
			answer = answers[i]
		}
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID, "result": json.RawMessage(answer)}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	return srv, &calls
}

func TestAwait(t *testing.T) {
	t.Parallel()

	t.Run("polls until mined and reports success", func(t *testing.T) {
		t.Parallel()
		srv, calls := receiptServer(t, []string{
			`null`,
			`null`,
			`{"transactionHash":"0xabc","blockNumber":"0x10","status":"0x1"}`,
		})
		defer srv.Close()

		w := NewWatcher(rpc.NewClient(srv.URL), 5*time.Millisecond)
		ok, err := w.Await(context.Background(), "0xabc")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.GreaterOrEqual(t, calls.Load(), int64(3))
	})

	t.Run("reports revert", func(t *testing.T) {
		t.Parallel()
		srv, _ := receiptServer(t, []string{
			`{"transactionHash":"0xabc","blockNumber":"0x10","status":"0x0"}`,
		})
		defer srv.Close()

		w := NewWatcher(rpc.NewClient(srv.URL), 5*time.Millisecond)
		ok, err := w.Await(context.Background(), "0xabc")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("context cancellation aborts the wait", func(t *testing.T) {
		t.Parallel()
		srv, _ := receiptServer(t, []string{`null`})
		defer srv.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()

		w := NewWatcher(rpc.NewClient(srv.URL), 5*time.Millisecond)
		_, err := w.Await(ctx, "0xabc")
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("tolerates transient poll errors", func(t *testing.T) {
		t.Parallel()
		var calls atomic.Int64
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":{"transactionHash":"0xabc","blockNumber":"0x10","status":"0x1"}}`))
		}))
		defer srv.Close()

		w := NewWatcher(rpc.NewClient(srv.URL), 5*time.Millisecond)
		ok, err := w.Await(context.Background(), "0xabc")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
