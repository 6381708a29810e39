package cmd

import (
	"github.com/shopcanvas/shopcanvas/cli"
	"github.com/shopcanvas/shopcanvas/tui/storefront"
	"github.com/spf13/cobra"
)

// NewViewCmd creates the `view` command.
func NewViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <subdomain>",
		Short: "Render a storefront read-only in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runViewE,
	}

	cmd.Flags().Bool("drafts", false, "Allow viewing unpublished stores")

	return cmd
}

func runViewE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	handler := cli.NewErrorHandler(opts.Verbose)

	repo, _, err := newRepository(cmd)
	if err != nil {
		return handler.Handle(err)
	}

	drafts, _ := cmd.Flags().GetBool("drafts")

	ctx := cmd.Context()
	st, err := repo.GetBySubdomain(ctx, args[0], !drafts)
	if err != nil {
		return handler.Handle(err)
	}
	products, err := repo.Products(ctx, st.ID)
	if err != nil {
		return handler.Handle(err)
	}

	return handler.Handle(storefront.Run(st, products))
}
