package cli

import (
	"github.com/spf13/cobra"

	"github.com/0x1723/mfbldr/internal/output"
	"github.com/0x1723/mfbldr/internal/signer"
)

var signerCmd = &cobra.Command{
	Use:   "signer",
	Short: "Manage the claim signing key",
}

var signerImportHex bool

var signerImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a signing key from a BIP39 mnemonic or raw hex key",
	Long: `Import derives the account key from a mnemonic phrase at the standard
Ethereum path m/44'/60'/0'/0/0 and stores it encrypted with age under the
mfbldr home directory. Misspelled mnemonic words get correction hints.
With --hex the key is read directly as 32 hex-encoded bytes instead.`,
	Args: cobra.NoArgs,
	RunE: runSignerImport,
}

var signerAddressCmd = &cobra.Command{
	Use:   "address",
	Short: "Show the signing key's address",
	Args:  cobra.NoArgs,
	RunE:  runSignerAddress,
}

// SignerResponse is the JSON shape of signer command results.
type SignerResponse struct {
	Address string `json:"address"`
	KeyFile string `json:"key_file,omitempty"`
}

func runSignerImport(_ *cobra.Command, _ []string) error {
	key, err := readImportKey()
	if err != nil {
		return err
	}
	defer signer.ZeroBytes(key)

	// The signer takes ownership of its copy; the original is saved
	account, err := signer.New(append([]byte(nil), key...))
	if err != nil {
		return err
	}
	defer account.Zero()

	password, err := promptNewPassword()
	if err != nil {
		return err
	}
	defer signer.ZeroBytes(password)

	keyPath := cfg.GetKeyFile()
	if err := signer.SaveKey(keyPath, key, string(password)); err != nil {
		return err
	}

	if !formatter.IsJSON() {
		output.Success("signing key imported")
	}
	return formatter.Print(SignerResponse{
		Address: account.Address(),
		KeyFile: keyPath,
	})
}

// readImportKey obtains the raw account key from the user, either by
// deriving it from a mnemonic or decoding a hex key with --hex.
func readImportKey() ([]byte, error) {
	if signerImportHex {
		raw, err := promptPassword("Enter private key (hex): ")
		if err != nil {
			return nil, err
		}
		defer signer.ZeroBytes(raw)

		return signer.ParseHexKey(string(raw))
	}

	mnemonic, err := promptMnemonic()
	if err != nil {
		return nil, err
	}

	return signer.DeriveKey(mnemonic, "")
}

func runSignerAddress(_ *cobra.Command, _ []string) error {
	account, err := loadSigner()
	if err != nil {
		return err
	}
	defer account.Zero()

	return formatter.Print(SignerResponse{Address: account.Address()})
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	signerImportCmd.Flags().BoolVar(&signerImportHex, "hex", false, "read a raw hex private key instead of a mnemonic")
	signerCmd.AddCommand(signerImportCmd)
	signerCmd.AddCommand(signerAddressCmd)
	rootCmd.AddCommand(signerCmd)
}
