package cli

import (
	"context"
	"math/big"
	"time"

	"github.com/0x1723/mfbldr/internal/assets"
	"github.com/0x1723/mfbldr/internal/chain/rpc"
	"github.com/0x1723/mfbldr/internal/metrics"
	"github.com/0x1723/mfbldr/internal/registry"
	"github.com/0x1723/mfbldr/internal/signer"
	mferr "github.com/0x1723/mfbldr/pkg/errors"
)

// deps bundles the wired collaborators for a command invocation.
type deps struct {
	rpc      *rpc.Client
	registry *registry.Registry
	source   *meteredSource
	watcher  *registry.Watcher
}

// buildDeps wires the RPC client, registry, asset source, and watcher
// from the loaded config. The signer may be nil for read-only commands.
func buildDeps(s *signer.Signer) (*deps, error) {
	rpcClient := rpc.NewClient(cfg.GetRPC())

	var regSigner registry.Signer
	if s != nil {
		regSigner = s
	}

	reg, err := registry.New(rpcClient, cfg.GetRegistry(), big.NewInt(cfg.Network.ChainID), regSigner)
	if err != nil {
		return nil, err
	}

	assetClient := assets.NewClient(cfg.Assets.API, cfg.Assets.Collection, &assets.ClientOptions{
		APIKey:   cfg.Assets.APIKey,
		PageSize: cfg.Assets.PageSize,
	})

	interval := time.Duration(cfg.Confirmation.PollIntervalSeconds) * time.Second

	return &deps{
		rpc:      rpcClient,
		registry: reg,
		source:   &meteredSource{client: assetClient, registry: reg},
		watcher:  registry.NewWatcher(rpcClient, interval),
	}, nil
}

// loadSigner decrypts the configured key file, prompting for the
// password.
func loadSigner() (*signer.Signer, error) {
	keyPath := cfg.GetKeyFile()

	password, err := promptPassword("Key password: ")
	if err != nil {
		return nil, err
	}
	defer signer.ZeroBytes(password)

	key, err := signer.LoadKey(keyPath, string(password))
	if err != nil {
		if mferr.Is(err, mferr.ErrKeyNotFound) {
			return nil, mferr.WithSuggestion(err, "run 'mfbldr signer import' to set up a signing key")
		}
		return nil, err
	}

	return signer.New(key)
}

// meteredSource wraps the asset client and registry reads with metrics.
// Implements claim.AssetSource and claim.DomainReader.
type meteredSource struct {
	client   *assets.Client
	registry *registry.Registry
}

func (m *meteredSource) Owned(ctx context.Context, owner string) ([]assets.Asset, error) {
	list, err := m.client.Owned(ctx, owner)
	metrics.Global.RecordAssetQuery(err)
	return list, err
}

func (m *meteredSource) TokensDomains(ctx context.Context, ids []*big.Int) ([]string, error) {
	domains, err := m.registry.TokensDomains(ctx, ids)
	metrics.Global.RecordDomainLookup(err)
	return domains, err
}
