package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kindahl/opvault"
)

var (
	listPassword    string
	listShowTrashed bool
)

var listCmd = &cobra.Command{
	Use:   "list <vault-dir>",
	Short: "Unlock a vault and print its entries as a table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]

		password, err := resolvePassword(listPassword)
		if err != nil {
			return err
		}

		vault, err := opvault.Open(dir, password)
		if err != nil {
			return describeOpenError(dir, err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TITLE\tCATEGORY\tURL\tTRASHED")
		for _, e := range vault.Catalog.Entries {
			if e.Trashed && !listShowTrashed {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%v\n", e.Title, e.Category, e.URL, e.Trashed)
		}
		return w.Flush()
	},
}

func init() {
	listCmd.Flags().StringVar(&listPassword, "password", "", "master password (insecure; prefer OPVAULT_PASSWORD or the prompt)")
	listCmd.Flags().BoolVar(&listShowTrashed, "show-trashed", false, "include trashed entries")
}
