package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jumpaku/go-drivestore"
)

var rmCmd = &cobra.Command{
	Use:   "rm <path>",
	Short: "Delete a file or folder",
	Long:  "Delete the file or folder at <path>, including everything below a folder.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	path := args[0]
	return withStore(cmd.Context(), func(s *drivestore.Store) error {
		if err := s.Delete(cmd.Context(), path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Deleted %s\n", path)
		return nil
	})
}
