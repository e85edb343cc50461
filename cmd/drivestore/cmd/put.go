package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Jumpaku/go-drivestore"
	dserrors "github.com/Jumpaku/go-drivestore/errors"
)

var putCmd = &cobra.Command{
	Use:   "put <folder> <title>",
	Short: "Save content into a folder",
	Long: "Save content as <title> inside <folder>, creating missing folders.\n" +
		"The content comes from --file, --text or --json; --touch only creates the file.\n" +
		"Without any of them the content is read from standard input.",
	Args: cobra.ExactArgs(2),
	RunE: runPut,
}

func init() {
	putCmd.Flags().String("file", "", "upload the content of a local file")
	putCmd.Flags().String("text", "", "save the given text")
	putCmd.Flags().String("json", "", "save the given JSON value encoded with the configured codec")
	putCmd.Flags().Bool("touch", false, "create the file without writing content")
	putCmd.Flags().String("media-type", "", "media type of raw content (default: guessed from the title)")
	putCmd.MarkFlagsMutuallyExclusive("file", "text", "json", "touch")
	rootCmd.AddCommand(putCmd)
}

func runPut(cmd *cobra.Command, args []string) error {
	folder, title := args[0], args[1]
	req, err := putRequest(cmd, title)
	if err != nil {
		return err
	}
	return withStore(cmd.Context(), func(s *drivestore.Store) error {
		if err := s.Save(cmd.Context(), folder, req); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s/%s\n", folder, title)
		return nil
	})
}

func putRequest(cmd *cobra.Command, title string) (drivestore.SaveRequest, error) {
	flags := cmd.Flags()
	mediaType, _ := flags.GetString("media-type")
	if mediaType == "" {
		mediaType = mime.TypeByExtension(filepath.Ext(title))
	}
	switch {
	case flags.Changed("touch"):
		return drivestore.MetadataOnly{Title: title}, nil
	case flags.Changed("text"):
		text, _ := flags.GetString("text")
		return drivestore.Text{Title: title, Content: text}, nil
	case flags.Changed("json"):
		raw, _ := flags.GetString("json")
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("invalid --json value: %w", dserrors.NewDecodeError("failed to parse JSON", err))
		}
		return drivestore.Document{Title: title, Value: v}, nil
	case flags.Changed("file"):
		name, _ := flags.GetString("file")
		data, err := os.ReadFile(name)
		if err != nil {
			return nil, dserrors.NewIOError(fmt.Sprintf("failed to read '%s'", name), err)
		}
		return drivestore.RawBytes{Title: title, MediaType: mediaType, Data: data}, nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, dserrors.NewIOError("failed to read standard input", err)
		}
		return drivestore.RawBytes{Title: title, MediaType: mediaType, Data: data}, nil
	}
}
