package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/0x1723/mfbldr/internal/output"
	"github.com/0x1723/mfbldr/internal/version"
)

var versionCheck bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	RunE:  runVersion,
}

// VersionResponse is the JSON shape of the version command.
type VersionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
	Date    string `json:"date,omitempty"`
	Latest  string `json:"latest,omitempty"`
	Newer   bool   `json:"update_available,omitempty"`
}

func runVersion(cmd *cobra.Command, _ []string) error {
	response := VersionResponse{
		Version: version.Version,
		Commit:  version.Commit,
		Date:    version.Date,
	}

	if versionCheck {
		ctx, cancel := contextWithTimeout(cmd, 30*time.Second)
		defer cancel()

		release, err := version.NewClient("").Latest(ctx)
		if err != nil {
			output.Warnf("release check failed: %v", err)
		} else {
			response.Latest = release.TagName
			response.Newer = version.IsNewer(version.Version, release.TagName)
		}
	}

	if formatter.IsJSON() {
		return formatter.Print(response)
	}

	if err := formatter.Println("mfbldr", version.String()); err != nil {
		return err
	}
	if response.Newer {
		output.Infof("update available: %s", response.Latest)
	}
	return nil
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "check GitHub for a newer release")
	rootCmd.AddCommand(versionCmd)
}
