package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jumpaku/go-drivestore"
	dserrors "github.com/Jumpaku/go-drivestore/errors"
)

var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Print the raw content of a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

var catCmd = &cobra.Command{
	Use:   "cat <path>",
	Short: "Decode a document and print it as JSON",
	Long:  "Decode the document at <path> with the configured codec and print it as indented JSON.",
	Args:  cobra.ExactArgs(1),
	RunE:  runCat,
}

func init() {
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(catCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	path := args[0]
	return withStore(cmd.Context(), func(s *drivestore.Store) error {
		data, err := s.Bytes(cmd.Context(), path)
		if err != nil {
			return err
		}
		v, ok := data.Get()
		if !ok {
			return fmt.Errorf("'%s': %w", path, dserrors.ErrNotFound)
		}
		_, err = cmd.OutOrStdout().Write(v)
		return err
	})
}

func runCat(cmd *cobra.Command, args []string) error {
	path := args[0]
	return withStore(cmd.Context(), func(s *drivestore.Store) error {
		var v any
		found, err := s.Decode(cmd.Context(), path, &v)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("'%s': %w", path, dserrors.ErrNotFound)
		}
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format '%s': %w", path, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	})
}
