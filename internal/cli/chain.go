package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keyfold/keyfold/internal/chain"
	"github.com/keyfold/keyfold/internal/output"
	kferr "github.com/keyfold/keyfold/pkg/errors"
)

// chainCmd is the parent command for chain selection.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Select and inspect the active chain",
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var chainUseCmd = &cobra.Command{
	Use:   "use <sol|eth>",
	Short: "Select the chain for this wallet set",
	Long: `Select the chain family that all wallets will be derived for.

The selection is fixed once made; run "keyfold clear" and start over
to derive for a different chain.

Example:
  keyfold chain use sol
  keyfold chain use eth`,
	Args: cobra.ExactArgs(1),
	RunE: runChainUse,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var chainShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active chain",
	Args:  cobra.NoArgs,
	RunE:  runChainShow,
}

type chainInfo struct {
	CoinType string `json:"coinType"`
	Name     string `json:"name"`
}

func runChainUse(cmd *cobra.Command, args []string) error {
	pt, ok := chain.Parse(args[0])
	if !ok {
		return kferr.WithSuggestion(
			kferr.WithDetails(kferr.ErrUnsupportedPathType,
				map[string]string{"chain": args[0]}),
			"supported chains: sol, eth",
		)
	}

	// Hydrate without the pending config selection: a chain loaded from
	// the snapshot is committed, while a selection that only lives in the
	// config can still be re-picked until the first generate.
	s, closeStore, err := hydrateSession()
	if err != nil {
		return err
	}
	defer closeStore()

	if err := s.SelectChain(pt); err != nil {
		return err
	}

	cfg.Chain = pt.String()
	if err := saveConfig(); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if formatter.IsJSON() {
		return writeJSON(w, chainInfo{CoinType: pt.String(), Name: pt.Name()})
	}

	return output.FormatSuccess(w,
		fmt.Sprintf("Chain set to %s (coin type %s).", pt.Name(), pt),
		formatter.Format())
}

func runChainShow(cmd *cobra.Command, _ []string) error {
	s, closeStore, err := openSession()
	if err != nil {
		return err
	}
	defer closeStore()

	pt := s.Chain()
	w := cmd.OutOrStdout()

	if formatter.IsJSON() {
		if pt == "" {
			return writeJSON(w, nil)
		}
		return writeJSON(w, chainInfo{CoinType: pt.String(), Name: pt.Name()})
	}

	if pt == "" {
		outln(w, "No chain selected.")
		outln(w, "Select one with: keyfold chain use <sol|eth>")
		return nil
	}

	out(w, "%s (coin type %s)\n", pt.Name(), pt)
	return nil
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	chainCmd.AddCommand(chainUseCmd)
	chainCmd.AddCommand(chainShowCmd)
	rootCmd.AddCommand(chainCmd)
}
