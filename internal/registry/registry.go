// Package registry talks to the on-chain subdomain registrar: reading
// which domains tokens have claimed, and submitting claim transactions.
package registry

import (
	"context"
	"fmt"
	"math/big"
	"regexp"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/0x1723/mfbldr/internal/chain/rpc"
	mferr "github.com/0x1723/mfbldr/pkg/errors"
)

// addressPattern matches a 0x-prefixed 20-byte hex address.
var addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// IsValidAddress reports whether s looks like an Ethereum address.
func IsValidAddress(s string) bool {
	return addressPattern.MatchString(s)
}

// Signer signs claim transactions for a single account.
type Signer interface {
	// Address returns the 0x-prefixed account address.
	Address() string
	// SignTx signs the transaction for the given chain.
	SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error)
}

// Registry is a client for the subdomain registrar contract.
type Registry struct {
	client   *rpc.Client
	contract common.Address
	chainID  *big.Int
	signer   Signer
}

// New creates a registry client. The signer may be nil for read-only use;
// Claim requires one.
func New(client *rpc.Client, contract string, chainID *big.Int, signer Signer) (*Registry, error) {
	if !IsValidAddress(contract) {
		return nil, mferr.WithDetails(mferr.ErrInvalidAddress, map[string]string{
			"field":   "registry",
			"address": contract,
		})
	}

	if _, err := loadABI(); err != nil {
		return nil, fmt.Errorf("parsing registrar ABI: %w", err)
	}

	return &Registry{
		client:   client,
		contract: common.HexToAddress(contract),
		chainID:  chainID,
		signer:   signer,
	}, nil
}

// TokensDomains returns the domain claimed by each token, index-aligned
// with the input: result[i] is the domain for ids[i], empty when the
// token has not claimed one.
func (r *Registry) TokensDomains(ctx context.Context, ids []*big.Int) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	contractABI, err := loadABI()
	if err != nil {
		return nil, err
	}

	data, err := contractABI.Pack("getTokensDomains", ids)
	if err != nil {
		return nil, fmt.Errorf("packing domain lookup: %w", err)
	}

	out, err := r.client.EthCall(ctx, rpc.CallMsg{
		To:   r.contract.Hex(),
		Data: data,
	}, "latest")
	if err != nil {
		return nil, mferr.Wrap(err, "reading claimed domains")
	}

	values, err := contractABI.Unpack("getTokensDomains", out)
	if err != nil {
		return nil, fmt.Errorf("unpacking domain lookup: %w", err)
	}

	domains, ok := values[0].([]string)
	if !ok {
		return nil, fmt.Errorf("unexpected domain lookup result type %T", values[0])
	}

	return domains, nil
}

// Claim submits a claimSubdomain transaction for the label and token,
// returning the transaction hash. Failures carry the node's raw error
// text so callers can classify the reason.
func (r *Registry) Claim(ctx context.Context, label string, tokenID *big.Int) (string, error) {
	if r.signer == nil {
		return "", mferr.ErrKeyNotFound
	}

	contractABI, err := loadABI()
	if err != nil {
		return "", err
	}

	data, err := contractABI.Pack("claimSubdomain", label, tokenID)
	if err != nil {
		return "", fmt.Errorf("packing claim: %w", err)
	}

	from := r.signer.Address()

	nonce, err := r.client.GetTransactionCount(ctx, from, "pending")
	if err != nil {
		return "", mferr.Wrap(err, "fetching nonce")
	}

	gasPrice, err := r.client.GasPrice(ctx)
	if err != nil {
		return "", mferr.Wrap(err, "fetching gas price")
	}

	// Estimation runs the call against latest state, so ownership and
	// availability failures surface here before anything is broadcast.
	gasLimit, err := r.client.EstimateGas(ctx, rpc.CallMsg{
		From: from,
		To:   r.contract.Hex(),
		Data: data,
	})
	if err != nil {
		return "", err
	}

	to := r.contract
	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &to,
		Value:    big.NewInt(0),
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	signedTx, err := r.signer.SignTx(tx, r.chainID)
	if err != nil {
		return "", mferr.Wrap(err, "signing claim transaction")
	}

	raw, err := signedTx.MarshalBinary()
	if err != nil {
		return "", fmt.Errorf("encoding signed transaction: %w", err)
	}

	hash, err := r.client.SendRawTransaction(ctx, raw)
	if err != nil {
		return "", err
	}

	return hash, nil
}
