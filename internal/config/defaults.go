package config

// DefaultRPCURL is the default Ethereum RPC endpoint.
// Uses PublicNode (Allnodes), a privacy-first provider that requires no API key.
const DefaultRPCURL = "https://ethereum-rpc.publicnode.com"

// DefaultRegistry is the mfbldr.eth subdomain registrar contract on mainnet.
const DefaultRegistry = "0xa3d2BDC03A0e7Fd1641e9D718d80E1C1300Eb5F9"

// DefaultParent is the parent name under which labels are claimed.
const DefaultParent = "mfbldr.eth"

// DefaultAssetAPI is the asset index endpoint used for ownership queries.
const DefaultAssetAPI = "https://api.opensea.io/api/v1"

// DefaultCollection is the collection slug that gates claim eligibility.
const DefaultCollection = "mferbuilderdao"

// DefaultPageSize is the asset index page size. Matches the index's maximum.
const DefaultPageSize = 50

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.mfbldr",
		Network: NetworkConfig{
			RPC:      DefaultRPCURL,
			ChainID:  1,
			Registry: DefaultRegistry,
			Parent:   DefaultParent,
		},
		Assets: AssetsConfig{
			API:        DefaultAssetAPI,
			APIKey:     "",
			Collection: DefaultCollection,
			PageSize:   DefaultPageSize,
		},
		Signer: SignerConfig{
			KeyFile: "key.age",
		},
		Confirmation: ConfirmationConfig{
			PollIntervalSeconds: 5,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Color:         "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.mfbldr/mfbldr.log",
		},
	}
}
