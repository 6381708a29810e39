package cmd

import (
	"time"

	"github.com/shopcanvas/shopcanvas/catalog"
	"github.com/shopcanvas/shopcanvas/cli"
	"github.com/shopcanvas/shopcanvas/store"
	"github.com/shopcanvas/shopcanvas/tui/editor"
	"github.com/spf13/cobra"
)

// NewEditCmd creates the `edit` command.
func NewEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [subdomain]",
		Short: "Open the interactive storefront editor",
		Long: `Opens the visual editor for a store. With a subdomain argument (or store_id
in shopcanvas.yml) the existing store is loaded; otherwise a fresh draft is
started from a template and created on the first save.

Examples:
  # Edit an existing store
  shopcanvas edit acme

  # Start a new draft from the boutique template
  shopcanvas edit --template boutique --user <user-id>
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runEditE,
	}

	cmd.Flags().StringP("template", "t", "minimal", "Template for a new draft")
	cmd.Flags().StringP("user", "u", "", "Owner user id for a new draft")

	return cmd
}

func runEditE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	handler := cli.NewErrorHandler(opts.Verbose)

	repo, cfg, err := newRepository(cmd)
	if err != nil {
		return handler.Handle(err)
	}

	template, _ := cmd.Flags().GetString("template")
	userID, _ := cmd.Flags().GetString("user")

	ctx := cmd.Context()

	var (
		st       *store.Store
		products []catalog.Product
	)
	switch {
	case len(args) == 1:
		st, err = repo.GetBySubdomain(ctx, args[0], false)
	case cfg.StoreID != "":
		st, err = repo.GetByID(ctx, cfg.StoreID)
	}
	if err != nil {
		return handler.Handle(err)
	}
	if st != nil {
		if products, err = repo.Products(ctx, st.ID); err != nil {
			return handler.Handle(err)
		}
		if userID == "" {
			userID = st.UserID
		}
	}

	err = editor.Run(repo, editor.Options{
		Store:           st,
		UserID:          userID,
		Template:        template,
		Products:        products,
		AutosaveDelay:   time.Duration(cfg.Editor.AutosaveDelayMs) * time.Millisecond,
		AutosaveEnabled: cfg.AutosaveEnabled(),
		HistoryLimit:    historyLimit(cfg),
	})
	return handler.Handle(err)
}
