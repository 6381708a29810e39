package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopcanvas/shopcanvas/cli"
	"github.com/shopcanvas/shopcanvas/errors"
	"github.com/spf13/cobra"
)

// NewUploadCmd creates the `upload` command.
func NewUploadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload <subdomain> <purpose> <file>",
		Short: "Upload a store asset and print its public URL",
		Long: `Uploads an image into the store's asset folder in object storage. Purpose is
one of logo, hero or category; category uploads take --index to address the
list entry.
`,
		Args: cobra.ExactArgs(3),
		RunE: runUploadE,
	}

	cmd.Flags().Int("index", -1, "List index for category assets")

	return cmd
}

func runUploadE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	handler := cli.NewErrorHandler(opts.Verbose)

	repo, _, err := newRepository(cmd)
	if err != nil {
		return handler.Handle(err)
	}

	subdomain, purpose, path := args[0], args[1], args[2]
	switch purpose {
	case "logo", "hero", "category":
	default:
		return handler.Handle(errors.New(errors.ErrCodeInvalidInput, "purpose must be logo, hero or category"))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return handler.Handle(errors.UploadFailed(path, err))
	}

	ctx := cmd.Context()
	st, err := repo.GetBySubdomain(ctx, subdomain, false)
	if err != nil {
		return handler.Handle(err)
	}

	index, _ := cmd.Flags().GetInt("index")
	url, err := repo.UploadAsset(ctx, st.ID, purpose, index, filepath.Base(path), data)
	if err != nil {
		return handler.Handle(err)
	}

	fmt.Println(url)
	return nil
}
