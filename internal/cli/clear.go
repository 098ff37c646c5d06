package cli

import (
	"github.com/spf13/cobra"

	"github.com/keyfold/keyfold/internal/output"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var clearYes bool

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all wallets and the mnemonic",
	Long: `Delete every wallet and the mnemonic from the snapshot store.

The chain selection is kept, so "keyfold generate" works immediately
afterwards. Anything not backed up is gone for good.

Example:
  keyfold clear
  keyfold clear --yes`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

func runClear(cmd *cobra.Command, _ []string) error {
	if !clearYes {
		prompt := "Delete all wallets and the mnemonic? This cannot be undone."
		if !confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), prompt) {
			outln(cmd.ErrOrStderr(), "Aborted.")
			return nil
		}
	}

	s, closeStore, err := openSession()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := s.ClearAll(); err != nil {
		return err
	}

	// Drop the pending chain selection too: after a clear the next
	// invocation starts unselected, the same way hydration treats the
	// now-partial snapshot.
	if cfg.Chain != "" {
		cfg.Chain = ""
		if err := saveConfig(); err != nil {
			return err
		}
	}

	return output.FormatSuccess(cmd.OutOrStdout(),
		"Cleared all wallets and the mnemonic.", formatter.Format())
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "skip the confirmation prompt")
	rootCmd.AddCommand(clearCmd)
}
