package cmd

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Jumpaku/go-drivestore"
	dserrors "github.com/Jumpaku/go-drivestore/errors"
)

var importCmd = &cobra.Command{
	Use:   "import <folder> <files...>",
	Short: "Upload local files into a folder concurrently",
	Long:  "Upload local files into <folder>, each named after its base name, with bounded concurrency.",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runImport,
}

func init() {
	importCmd.Flags().Int("concurrency", drivestore.DefaultConcurrency, "maximum number of uploads in flight")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	folder, files := args[0], args[1:]
	concurrency, _ := cmd.Flags().GetInt("concurrency")

	reqs := make([]drivestore.SaveRequest, 0, len(files))
	for _, name := range files {
		data, err := os.ReadFile(name)
		if err != nil {
			return dserrors.NewIOError(fmt.Sprintf("failed to read '%s'", name), err)
		}
		title := filepath.Base(name)
		reqs = append(reqs, drivestore.RawBytes{
			Title:     title,
			MediaType: mime.TypeByExtension(filepath.Ext(title)),
			Data:      data,
		})
	}

	return withStore(cmd.Context(), func(s *drivestore.Store) error {
		if err := s.SaveAll(cmd.Context(), folder, reqs, concurrency); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Imported %d files into %s\n", len(reqs), folder)
		return nil
	})
}
