package cli

import (
	"github.com/spf13/cobra"

	kferr "github.com/keyfold/keyfold/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var mnemonicYes bool

// mnemonicCmd is the parent command for mnemonic operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var mnemonicCmd = &cobra.Command{
	Use:   "mnemonic",
	Short: "Access the recovery phrase",
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var mnemonicShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the 12-word recovery phrase",
	Long: `Show the active recovery phrase. Anyone who sees these words can
derive every wallet, so make sure nobody is watching.

Example:
  keyfold mnemonic show
  keyfold mnemonic show --yes`,
	Args: cobra.NoArgs,
	RunE: runMnemonicShow,
}

func runMnemonicShow(cmd *cobra.Command, _ []string) error {
	if !mnemonicYes {
		prompt := "Display the recovery phrase on screen?"
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

	words := s.MnemonicWords()
	if len(words) == 0 {
		return kferr.ErrNoMnemonicAvailable
	}

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, map[string][]string{"mnemonic": words})
	}

	for i, word := range words {
		out(w, "%2d. %s\n", i+1, word)
	}
	return nil
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	mnemonicShowCmd.Flags().BoolVar(&mnemonicYes, "yes", false, "skip the confirmation prompt")
	mnemonicCmd.AddCommand(mnemonicShowCmd)
	rootCmd.AddCommand(mnemonicCmd)
}
