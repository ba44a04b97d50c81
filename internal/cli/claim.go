package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/0x1723/mfbldr/internal/claim"
	"github.com/0x1723/mfbldr/internal/metrics"
	"github.com/0x1723/mfbldr/internal/output"
	mferr "github.com/0x1723/mfbldr/pkg/errors"
)

var (
	claimTokenID string
	claimYes     bool
	claimTimeout time.Duration
)

// resolveTimeout bounds asset resolution and claim submission. The
// confirmation wait is bounded separately by --timeout.
const resolveTimeout = 2 * time.Minute

var claimCmd = &cobra.Command{
	Use:   "claim <label>",
	Short: "Claim a subdomain under mfbldr.eth",
	Long: `Claim registers <label>.mfbldr.eth using one of your MFBLDR tokens.

The label must be lowercase with no spaces. When you own several tokens,
pick one with --token-id or interactively. The command waits for the
transaction to confirm; bound the wait with --timeout.`,
	Args: cobra.ExactArgs(1),
	RunE: runClaim,
}

// ClaimResponse is the JSON shape of a claim result.
type ClaimResponse struct {
	Name    string `json:"name"`
	TokenID string `json:"token_id"`
	TxHash  string `json:"tx_hash"`
	Status  string `json:"status"`
	Link    string `json:"link,omitempty"`
}

//nolint:gocognit // The claim flow is a single linear sequence of steps
func runClaim(cmd *cobra.Command, args []string) error {
	label := args[0]

	// Cheap local validation before touching the key or the network
	if err := claim.ValidateLabel(label); err != nil {
		return err
	}

	account, err := loadSigner()
	if err != nil {
		return err
	}
	defer account.Zero()

	d, err := buildDeps(account)
	if err != nil {
		return err
	}

	controller := claim.NewController(claim.ControllerOptions{
		Source:  d.source,
		Domains: d.source,
		Writer:  d.registry,
		Watcher: d.watcher,
		Parent:  cfg.GetParent(),
		Log:     logger,
	})
	controller.Session().SetAddress(account.Address())

	ctx, cancel := contextWithTimeout(cmd, resolveTimeout)
	defer cancel()

	resolved, err := controller.Resolve(ctx)
	if err != nil {
		return err
	}

	if len(resolved) == 0 {
		return mferr.WithSuggestion(mferr.ErrNoQualifyingToken,
			"the connected address must hold a MferBuilderDAO token to claim")
	}

	// Selection: flag first, then interactive picker
	switch {
	case claimTokenID != "":
		if err := controller.Session().Select(claimTokenID); err != nil {
			return err
		}
	case len(resolved) > 1:
		if !isInteractive() {
			return mferr.WithSuggestion(mferr.ErrSelectionRequired,
				"pass --token-id to choose a token non-interactively")
		}
		picked, pickErr := promptSelectAsset(resolved)
		if pickErr != nil {
			return pickErr
		}
		if err := controller.Session().Select(picked.TokenID); err != nil {
			return err
		}
	}

	selected, ok := controller.Session().Selected()
	if !ok {
		return mferr.ErrSelectionRequired
	}

	// The registry is the final authority, but warn before a claim that
	// will almost certainly revert
	if selected.Domain != "" && !claimYes {
		output.Warnf("token %s already claimed %s", selected.TokenID, selected.Domain)
		if !isInteractive() || !promptConfirm("Submit anyway?") {
			return mferr.WithMessage(mferr.ErrAssetAlreadyClaimed,
				fmt.Sprintf("token %s already claimed %s", selected.TokenID, selected.Domain))
		}
	}

	record, err := controller.Submit(ctx, label)
	if err != nil {
		return err
	}
	metrics.Global.RecordClaimSubmitted()

	link := txLink(record.Hash)
	if !formatter.IsJSON() {
		output.Infof("claim submitted: %s", record.Hash)
		if link != "" {
			output.Infof("track it at %s", link)
		}
		output.Info("waiting for confirmation...")
	}

	waitCtx, waitCancel := contextWithTimeout(cmd, claimTimeout)
	defer waitCancel()

	err = controller.Await(waitCtx, &confirmNotifier{silent: formatter.IsJSON()})
	if err != nil {
		if mferr.Is(err, mferr.ErrClaimReverted) {
			metrics.Global.RecordClaimReverted()
		}
		return err
	}
	metrics.Global.RecordClaimConfirmed()

	final := controller.Session().Record()
	return formatter.Print(ClaimResponse{
		Name:    record.Label + "." + cfg.GetParent(),
		TokenID: record.TokenID,
		TxHash:  final.Hash,
		Status:  final.Status.String(),
		Link:    link,
	})
}

// confirmNotifier prints the one-time registration success message.
type confirmNotifier struct {
	silent bool
}

func (n *confirmNotifier) ClaimConfirmed(name string) {
	if n.silent {
		return
	}
	output.Success("Your name has been registered!")
	output.Infof("%s is yours", name)
}

// txLink returns an explorer link for the transaction on mainnet.
func txLink(hash string) string {
	if cfg.Network.ChainID != 1 {
		return ""
	}
	return "https://etherscan.io/tx/" + hash
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	claimCmd.Flags().StringVar(&claimTokenID, "token-id", "", "token to claim with (required when owning several, unless interactive)")
	claimCmd.Flags().BoolVarP(&claimYes, "yes", "y", false, "skip the already-claimed warning prompt")
	claimCmd.Flags().DurationVar(&claimTimeout, "timeout", 0, "bound the confirmation wait (0 waits until canceled)")
	rootCmd.AddCommand(claimCmd)
}
