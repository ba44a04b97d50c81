package claim

import (
	"context"
	"math/big"

	"github.com/0x1723/mfbldr/internal/assets"
)

// AssetSource resolves the qualifying tokens owned by an address.
type AssetSource interface {
	Owned(ctx context.Context, owner string) ([]assets.Asset, error)
}

// DomainReader looks up the domain claimed by each token. The result is
// index-aligned with the input token IDs.
type DomainReader interface {
	TokensDomains(ctx context.Context, ids []*big.Int) ([]string, error)
}

// ClaimWriter submits a claim transaction and returns its hash. Failure
// text must carry the provider's raw error so it can be classified.
type ClaimWriter interface {
	Claim(ctx context.Context, label string, tokenID *big.Int) (string, error)
}

// ConfirmationWatcher blocks until a transaction is mined, reporting
// whether it succeeded.
type ConfirmationWatcher interface {
	Await(ctx context.Context, txHash string) (bool, error)
}

// Notifier receives the one-time success notification when a claim
// confirms.
type Notifier interface {
	ClaimConfirmed(name string)
}

// LogWriter is the logging surface the controller needs. Satisfied by
// *config.Logger.
type LogWriter interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}
