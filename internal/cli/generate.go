package cli

import (
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var generateMnemonic string

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the mnemonic and first wallet",
	Long: `Generate a fresh 12-word mnemonic (or import one with --mnemonic)
and derive the first wallet for the selected chain.

The mnemonic is shown once here and afterwards only via "mnemonic show".
Write it down and store it securely.

Example:
  keyfold generate
  keyfold generate --mnemonic "abandon abandon ... about"`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

type generateResult struct {
	Mnemonic []string  `json:"mnemonic"`
	Wallet   walletRow `json:"wallet"`
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	s, closeStore, err := openSession()
	if err != nil {
		return err
	}
	defer closeStore()

	if _, err := s.GenerateInitial(generateMnemonic); err != nil {
		return err
	}

	words := s.MnemonicWords()
	row := walletRows(s)[0]

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, generateResult{Mnemonic: words, Wallet: row})
	}

	outln(w, "Recovery phrase (write these 12 words down, in order):")
	outln(w)
	for i, word := range words {
		out(w, "  %2d. %s\n", i+1, word)
	}
	outln(w)
	printWalletRow(w, row)
	return nil
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	generateCmd.Flags().StringVar(&generateMnemonic, "mnemonic", "", "import an existing 12-word mnemonic instead of generating one")
	rootCmd.AddCommand(generateCmd)
}
