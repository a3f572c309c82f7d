package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/marshallshelly/quarry/pkg/codegen"
	"github.com/spf13/cobra"
)

// kindsCmd lists artifact kinds
var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the available artifact kinds",
	Long: `List every artifact kind 'quarry generate' can produce, with the
file each one is written to.

Examples:
  quarry kinds
  quarry kinds --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runKinds()
	},
}

func init() {
	rootCmd.AddCommand(kindsCmd)
}

func runKinds() error {
	kinds := codegen.Kinds()

	if jsonOutput {
		type kindInfo struct {
			Kind        string `json:"kind"`
			Description string `json:"description"`
			File        string `json:"file"`
		}
		infos := make([]kindInfo, len(kinds))
		for i, k := range kinds {
			infos[i] = kindInfo{Kind: string(k), Description: k.Description(), File: k.FileName()}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KIND\tDESCRIPTION\tFILE")
	_, _ = fmt.Fprintln(w, "----\t-----------\t----")
	for _, k := range kinds {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", k, k.Description(), k.FileName())
	}
	return w.Flush()
}
