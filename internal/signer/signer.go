package signer

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/sha3"

	mferr "github.com/0x1723/mfbldr/pkg/errors"
)

// privateKeySize is the length of a secp256k1 private key in bytes.
const privateKeySize = 32

// Signer holds a single account's private key and signs claim
// transactions with it.
type Signer struct {
	priv    []byte
	address string
}

// New creates a signer from a raw 32-byte private key. The signer takes
// ownership of the slice; Zero wipes it.
func New(priv []byte) (*Signer, error) {
	if len(priv) != privateKeySize {
		return nil, mferr.WithDetails(mferr.ErrInvalidInput, map[string]string{
			"reason": "private key must be 32 bytes",
		})
	}

	key, err := crypto.ToECDSA(priv)
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}

	lockMemory(priv)

	return &Signer{
		priv:    priv,
		address: ChecksumAddress(crypto.PubkeyToAddress(key.PublicKey).Hex()),
	}, nil
}

// FromMnemonic derives the account key from a BIP39 mnemonic at the
// standard Ethereum path m/44'/60'/0'/0/0 and returns a signer for it.
func FromMnemonic(mnemonic, passphrase string) (*Signer, error) {
	priv, err := DeriveKey(mnemonic, passphrase)
	if err != nil {
		return nil, err
	}

	return New(priv)
}

// DeriveKey derives the raw account key from a BIP39 mnemonic at
// m/44'/60'/0'/0/0. The caller must zero the returned bytes.
func DeriveKey(mnemonic, passphrase string) ([]byte, error) {
	if err := ValidateMnemonic(mnemonic); err != nil {
		return nil, err
	}

	seed := bip39.NewSeed(NormalizeMnemonic(mnemonic), passphrase)
	defer ZeroBytes(seed)

	return derivePath(seed)
}

// derivePath walks m/44'/60'/0'/0/0 from the seed.
func derivePath(seed []byte) ([]byte, error) {
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("deriving master key: %w", err)
	}

	key := master
	for _, index := range []uint32{
		bip32.FirstHardenedChild + 44,
		bip32.FirstHardenedChild + 60,
		bip32.FirstHardenedChild,
		0,
		0,
	} {
		key, err = key.NewChildKey(index)
		if err != nil {
			return nil, fmt.Errorf("deriving child key: %w", err)
		}
	}

	priv := make([]byte, privateKeySize)
	copy(priv, key.Key)
	return priv, nil
}

// ParseHexKey decodes a raw hex-encoded private key, with or without
// the 0x prefix. The caller must zero the returned bytes.
func ParseHexKey(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")

	priv, err := hex.DecodeString(s)
	if err != nil {
		return nil, mferr.WithDetails(mferr.ErrInvalidInput, map[string]string{
			"reason": "private key is not valid hex",
		})
	}
	if len(priv) != privateKeySize {
		ZeroBytes(priv)
		return nil, mferr.WithDetails(mferr.ErrInvalidInput, map[string]string{
			"reason": "private key must be 32 bytes",
		})
	}

	return priv, nil
}

// Address returns the signer's EIP-55 checksummed address.
func (s *Signer) Address() string {
	return s.address
}

// SignTx signs the transaction with EIP-155 replay protection.
func (s *Signer) SignTx(tx *types.Transaction, chainID *big.Int) (*types.Transaction, error) {
	key, err := crypto.ToECDSA(s.priv)
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}

	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(chainID), key)
	if err != nil {
		return nil, fmt.Errorf("signing transaction: %w", err)
	}

	return signedTx, nil
}

// Zero wipes the signer's key material.
func (s *Signer) Zero() {
	unlockMemory(s.priv)
	ZeroBytes(s.priv)
}

// ChecksumAddress applies EIP-55 mixed-case checksumming to an address.
func ChecksumAddress(address string) string {
	addr := strings.ToLower(strings.TrimPrefix(address, "0x"))

	hasher := sha3.NewLegacyKeccak256()
	hasher.Write([]byte(addr))
	hash := hasher.Sum(nil)

	out := make([]byte, len(addr))
	for i := 0; i < len(addr); i++ {
		c := addr[i]
		if c >= 'a' && c <= 'f' {
			// Uppercase when the corresponding nibble of the hash is >= 8
			nibble := hash[i/2]
			if i%2 == 0 {
				nibble >>= 4
			}
			if nibble&0x0f >= 8 {
				c = c - 'a' + 'A'
			}
		}
		out[i] = c
	}

	return "0x" + string(out)
}
