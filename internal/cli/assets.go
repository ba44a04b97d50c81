package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/0x1723/mfbldr/internal/claim"
	"github.com/0x1723/mfbldr/internal/output"
	"github.com/0x1723/mfbldr/internal/registry"
	mferr "github.com/0x1723/mfbldr/pkg/errors"
)

var assetsAddress string

var assetsCmd = &cobra.Command{
	Use:   "assets",
	Short: "List your MFBLDR tokens and their claimed names",
	Long: `Assets lists the MferBuilderDAO tokens an address owns, marking the
subdomain each one has already claimed, if any.

The address comes from --address, or from the signing key when omitted.`,
	Args: cobra.NoArgs,
	RunE: runAssets,
}

// AssetEntry is one token in the assets listing.
type AssetEntry struct {
	TokenID string `json:"token_id"`
	Name    string `json:"name,omitempty"`
	Image   string `json:"image_url,omitempty"`
	Domain  string `json:"claimed_domain,omitempty"`
}

// AssetsResponse is the JSON shape of the assets listing.
type AssetsResponse struct {
	Address string       `json:"address"`
	Count   int          `json:"count"`
	Assets  []AssetEntry `json:"assets"`
}

func runAssets(cmd *cobra.Command, _ []string) error {
	address := assetsAddress
	if address == "" {
		account, err := loadSigner()
		if err != nil {
			return err
		}
		defer account.Zero()
		address = account.Address()
	} else if !registry.IsValidAddress(address) {
		return mferr.WithDetails(mferr.ErrInvalidAddress, map[string]string{
			"address": address,
		})
	}

	d, err := buildDeps(nil)
	if err != nil {
		return err
	}

	controller := claim.NewController(claim.ControllerOptions{
		Source:  d.source,
		Domains: d.source,
		Parent:  cfg.GetParent(),
		Log:     logger,
	})
	controller.Session().SetAddress(address)

	ctx, cancel := contextWithTimeout(cmd, 60*time.Second)
	defer cancel()

	resolved, err := controller.Resolve(ctx)
	if err != nil {
		return err
	}

	response := AssetsResponse{
		Address: address,
		Count:   len(resolved),
		Assets:  make([]AssetEntry, 0, len(resolved)),
	}
	for _, a := range resolved {
		response.Assets = append(response.Assets, AssetEntry{
			TokenID: a.TokenID,
			Name:    a.Name,
			Image:   a.ImageURL,
			Domain:  a.Domain,
		})
	}

	if formatter.IsJSON() {
		return formatter.Print(response)
	}

	if len(resolved) == 0 {
		return formatter.Println("no MFBLDR tokens found for", address)
	}

	table := output.NewTable("TOKEN", "NAME", "STATUS")
	for _, entry := range response.Assets {
		name := entry.Name
		if name == "" {
			name = "token " + entry.TokenID
		}
		status := "unclaimed"
		if entry.Domain != "" {
			status = "claimed " + entry.Domain + "." + cfg.GetParent()
		}
		table.AddRow(entry.TokenID, name, status)
	}
	return formatter.Printf("%s", table.String())
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	assetsCmd.Flags().StringVar(&assetsAddress, "address", "", "address to list tokens for (default: signing key address)")
	rootCmd.AddCommand(assetsCmd)
}
