package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/Jumpaku/go-drivestore"
)

var lsCmd = &cobra.Command{
	Use:   "ls [folder]",
	Short: "List the children of a folder",
	Long:  "List the children of a folder. Without an argument the root is listed.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLs,
}

var searchCmd = &cobra.Command{
	Use:   "search <folder> <query>",
	Short: "List the children of a folder matching a query",
	Long: "List the children of a folder matching a Drive query, e.g.\n" +
		"  drivestore search dogs \"name contains 'rex'\"",
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(searchCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	folder := ""
	if len(args) > 0 {
		folder = args[0]
	}
	return search(cmd, folder, "")
}

func runSearch(cmd *cobra.Command, args []string) error {
	return search(cmd, args[0], args[1])
}

func search(cmd *cobra.Command, folder, query string) error {
	return withStore(cmd.Context(), func(s *drivestore.Store) error {
		items, err := s.Search(cmd.Context(), folder, query)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "(no entries)")
			return nil
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, it := range items {
			name := it.Name
			if it.IsFolder() {
				name += "/"
			}
			fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", it.Kind, it.Size, it.ModTime.Format(time.DateTime), name, it.ID)
		}
		return w.Flush()
	})
}
