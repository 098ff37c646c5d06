package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/keyfold/keyfold/internal/output"
	"github.com/keyfold/keyfold/internal/session"
	kferr "github.com/keyfold/keyfold/pkg/errors"
)

// out is a helper for CLI output that ignores write errors (standard pattern for CLI tools).
//
//nolint:errcheck // CLI output writes to stdout are intentionally unchecked
func out(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format, args...)
}

// outln is a helper for CLI output with newline.
//
//nolint:errcheck // CLI output writes to stdout are intentionally unchecked
func outln(w io.Writer, args ...interface{}) {
	fmt.Fprintln(w, args...)
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// deleteYes skips the delete confirmation prompt.
	deleteYes bool
	// copyPrivate selects the private key for wallet copy.
	copyPrivate bool
)

// walletCmd is the parent command for wallet operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage derived wallets",
	Long:  `Add, list, delete, reveal, and copy wallets derived from the active mnemonic.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Derive the next wallet",
	Long: `Derive one more wallet from the active mnemonic.

The new account index is the current number of wallets.

Example:
  keyfold wallet add`,
	Args: cobra.NoArgs,
	RunE: runWalletAdd,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all wallets",
	Long: `List all derived wallets. Private keys are always masked here;
use "wallet reveal" or "wallet copy --private" to access them.

Example:
  keyfold wallet list
  keyfold wallet list -o json`,
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runWalletList,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletDeleteCmd = &cobra.Command{
	Use:   "delete <index>",
	Short: "Delete a wallet",
	Long: `Delete the wallet at the given index. Later wallets shift down by one
position but keep their original derivation paths.

Example:
  keyfold wallet delete 2
  keyfold wallet delete 2 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runWalletDelete,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletRevealCmd = &cobra.Command{
	Use:   "reveal <index>",
	Short: "Show a wallet with its private key",
	Long: `Show the wallet at the given index with the private key unmasked.

Example:
  keyfold wallet reveal 0`,
	Args: cobra.ExactArgs(1),
	RunE: runWalletReveal,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletCopyCmd = &cobra.Command{
	Use:   "copy <index>",
	Short: "Print a wallet key for piping to the clipboard",
	Long: `Print the public key (or, with --private, the private key) of the
wallet at the given index with no decoration, suitable for piping
into a clipboard utility.

Example:
  keyfold wallet copy 0 | xclip -selection clipboard
  keyfold wallet copy 0 --private | pbcopy`,
	Args: cobra.ExactArgs(1),
	RunE: runWalletCopy,
}

// walletRow is the display form of a wallet. PrivateKey is masked unless
// the wallet's visibility flag is set.
type walletRow struct {
	Index      int    `json:"index"`
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey"`
	Path       string `json:"path"`
}

func walletRows(s *session.Session) []walletRow {
	wallets := s.Wallets()
	revealed := s.Revealed()

	rows := make([]walletRow, len(wallets))
	for i, kp := range wallets {
		priv := output.Mask(kp.PrivateKey)
		if revealed[i] {
			priv = kp.PrivateKey
		}
		rows[i] = walletRow{
			Index:      i,
			PublicKey:  kp.PublicKey,
			PrivateKey: priv,
			Path:       kp.Path,
		}
	}
	return rows
}

func printWalletRow(w io.Writer, row walletRow) {
	out(w, "Wallet %d\n", row.Index)
	out(w, "  Public key:  %s\n", row.PublicKey)
	out(w, "  Private key: %s\n", row.PrivateKey)
	out(w, "  Path:        %s\n", row.Path)
}

// parseIndex parses a wallet index argument.
func parseIndex(arg string) (int, error) {
	idx, err := strconv.Atoi(arg)
	if err != nil {
		return 0, kferr.WithSuggestion(kferr.ErrInvalidInput,
			"wallet index must be a number")
	}
	return idx, nil
}

func runWalletAdd(cmd *cobra.Command, _ []string) error {
	s, closeStore, err := openSession()
	if err != nil {
		return err
	}
	defer closeStore()

	if _, err := s.AddWallet(); err != nil {
		return err
	}

	rows := walletRows(s)
	row := rows[len(rows)-1]

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, row)
	}

	outln(w, "Added wallet.")
	printWalletRow(w, row)
	return nil
}

func runWalletList(cmd *cobra.Command, _ []string) error {
	s, closeStore, err := openSession()
	if err != nil {
		return err
	}
	defer closeStore()

	rows := walletRows(s)
	w := cmd.OutOrStdout()

	if formatter.IsJSON() {
		return writeJSON(w, rows)
	}

	if len(rows) == 0 {
		outln(w, "No wallets yet.")
		outln(w, "Generate the first one with: keyfold generate")
		return nil
	}

	out(w, "Chain: %s\n\n", s.Chain().Name())
	for _, row := range rows {
		printWalletRow(w, row)
	}
	return nil
}

func runWalletDelete(cmd *cobra.Command, args []string) error {
	idx, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	if !deleteYes {
		prompt := fmt.Sprintf("Delete wallet %d? This cannot be undone.", idx)
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

	if err := s.DeleteWallet(idx); err != nil {
		return err
	}

	return output.FormatSuccess(cmd.OutOrStdout(),
		fmt.Sprintf("Deleted wallet %d.", idx), formatter.Format())
}

func runWalletReveal(cmd *cobra.Command, args []string) error {
	idx, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	s, closeStore, err := openSession()
	if err != nil {
		return err
	}
	defer closeStore()

	// Visibility starts hidden after hydration, so one toggle reveals.
	if err := s.ToggleVisibility(idx); err != nil {
		return err
	}

	row := walletRows(s)[idx]

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, row)
	}

	printWalletRow(w, row)
	return nil
}

func runWalletCopy(cmd *cobra.Command, args []string) error {
	idx, err := parseIndex(args[0])
	if err != nil {
		return err
	}

	s, closeStore, err := openSession()
	if err != nil {
		return err
	}
	defer closeStore()

	text, err := s.CopyText(idx, copyPrivate)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, map[string]string{"text": text})
	}

	outln(w, text)
	return nil
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	walletDeleteCmd.Flags().BoolVar(&deleteYes, "yes", false, "skip the confirmation prompt")
	walletCopyCmd.Flags().BoolVar(&copyPrivate, "private", false, "copy the private key instead of the public key")

	walletCmd.AddCommand(walletAddCmd)
	walletCmd.AddCommand(walletListCmd)
	walletCmd.AddCommand(walletDeleteCmd)
	walletCmd.AddCommand(walletRevealCmd)
	walletCmd.AddCommand(walletCopyCmd)
	rootCmd.AddCommand(walletCmd)
}
