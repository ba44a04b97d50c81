// Package assets resolves NFT ownership through an external asset index
// and merges on-chain claimed-domain state into the resolved tokens.
package assets

import (
	"math/big"

	mferr "github.com/0x1723/mfbldr/pkg/errors"
)

// Asset is one qualifying token owned by the queried address.
type Asset struct {
	// TokenID is the token identifier as a decimal string, exactly as the
	// asset index reports it.
	TokenID string

	// Name is the token's display name from the index.
	Name string

	// ImageURL is the token's image location from the index.
	ImageURL string

	// Domain is the subdomain already claimed with this token, empty if
	// the token has not been used for a claim. Filled in by MergeDomains.
	Domain string
}

// TokenIDBig parses the token identifier into a big integer.
func (a *Asset) TokenIDBig() (*big.Int, error) {
	n, ok := new(big.Int).SetString(a.TokenID, 10)
	if !ok || n.Sign() < 0 {
		return nil, mferr.WithDetails(mferr.ErrInvalidTokenID, map[string]string{
			"token_id": a.TokenID,
		})
	}
	return n, nil
}

// MergeDomains overlays registry domain state onto assets positionally:
// domains[i] belongs to assets[i]. Index-aligned with the token ID list
// sent to the registry lookup. Length mismatches are clamped to the
// shorter side so a short or over-long registry answer never panics.
func MergeDomains(assets []Asset, domains []string) []Asset {
	n := len(domains)
	if len(assets) < n {
		n = len(assets)
	}
	for i := 0; i < n; i++ {
		assets[i].Domain = domains[i]
	}
	return assets
}

// TokenIDs extracts the token identifiers from a slice of assets in order,
// for the registry's index-aligned domain lookup.
func TokenIDs(assets []Asset) ([]*big.Int, error) {
	ids := make([]*big.Int, 0, len(assets))
	for i := range assets {
		id, err := assets[i].TokenIDBig()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
