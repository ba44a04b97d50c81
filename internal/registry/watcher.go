package registry

import (
	"context"
	"time"

	"github.com/0x1723/mfbldr/internal/chain/rpc"
)

// Watcher polls for a transaction receipt until the transaction is mined
// or the context is canceled. There is no internal timeout: the caller
// bounds the wait through the context.
type Watcher struct {
	client   *rpc.Client
	interval time.Duration
}

// NewWatcher creates a watcher polling at the given interval.
func NewWatcher(client *rpc.Client, interval time.Duration) *Watcher {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &Watcher{client: client, interval: interval}
}

// Await blocks until the transaction is mined, returning whether it
// succeeded. Transient poll errors are tolerated; only context
// cancellation aborts the wait.
func (w *Watcher) Await(ctx context.Context, txHash string) (bool, error) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		receipt, err := w.client.GetTransactionReceipt(ctx, txHash)
		if err == nil && receipt != nil {
			return receipt.Succeeded(), nil
		}
		if ctx.Err() != nil {
			return false, ctx.Err()
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-ticker.C:
		}
	}
}
