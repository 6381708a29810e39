package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/shopcanvas/shopcanvas/cli"
	"github.com/shopcanvas/shopcanvas/store"
	"github.com/shopcanvas/shopcanvas/storeconfig"
	"github.com/shopcanvas/shopcanvas/tui/theme"
	"github.com/spf13/cobra"
)

// NewStoreCmd creates the `store` command group.
func NewStoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Manage store records",
	}

	cmd.AddCommand(newStoreListCmd())
	cmd.AddCommand(newStoreCreateCmd())
	cmd.AddCommand(newStorePublishCmd(true))
	cmd.AddCommand(newStorePublishCmd(false))

	return cmd
}

func newStoreListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stores owned by a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			repo, _, err := newRepository(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			userID, _ := cmd.Flags().GetString("user")
			stores, err := repo.ListByOwner(cmd.Context(), userID)
			if err != nil {
				return handler.Handle(err)
			}

			if opts.JSONOutput {
				return json.NewEncoder(os.Stdout).Encode(stores)
			}

			t := theme.DefaultTheme
			for _, s := range stores {
				status := t.Error.Render("draft")
				if s.IsPublished {
					status = t.Success.Render("published")
				}
				fmt.Printf("%-24s %-20s %-12s %s\n", s.Name, s.Subdomain, s.Template, status)
			}
			if len(stores) == 0 {
				fmt.Println("No stores. Create one with 'shopcanvas store create'.")
			}
			return nil
		},
	}
	cmd.Flags().StringP("user", "u", "", "Owner user id")
	cmd.MarkFlagRequired("user")
	return cmd
}

func newStoreCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a store from a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			repo, _, err := newRepository(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			subdomain, _ := cmd.Flags().GetString("subdomain")
			template, _ := cmd.Flags().GetString("template")
			userID, _ := cmd.Flags().GetString("user")

			seed, err := storeconfig.DefaultTemplate(template)
			if err != nil {
				return handler.Handle(err)
			}

			ctx := cmd.Context()
			s, err := repo.Create(ctx, store.CreateParams{
				UserID:    userID,
				Name:      args[0],
				Subdomain: subdomain,
				Template:  template,
				Config:    seed,
			})
			if err != nil {
				return handler.Handle(err)
			}
			if err := repo.SeedMockProducts(ctx, s.ID, template); err != nil {
				return handler.Handle(err)
			}

			fmt.Printf("Created store %s (%s) from template %s\n", s.Name, s.Subdomain, template)
			return nil
		},
	}
	cmd.Flags().StringP("subdomain", "s", "", "Store subdomain")
	cmd.Flags().StringP("template", "t", "minimal", "Template name")
	cmd.Flags().StringP("user", "u", "", "Owner user id")
	cmd.MarkFlagRequired("subdomain")
	cmd.MarkFlagRequired("user")
	return cmd
}

func newStorePublishCmd(publish bool) *cobra.Command {
	use, short := "publish <subdomain>", "Publish a store"
	if !publish {
		use, short = "unpublish <subdomain>", "Take a store offline"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.GetOptions(cmd)
			handler := cli.NewErrorHandler(opts.Verbose)

			repo, _, err := newRepository(cmd)
			if err != nil {
				return handler.Handle(err)
			}

			ctx := cmd.Context()
			s, err := repo.GetBySubdomain(ctx, args[0], false)
			if err != nil {
				return handler.Handle(err)
			}

			if _, err := repo.Update(ctx, s.ID, store.UpdateParams{IsPublished: &publish}); err != nil {
				return handler.Handle(err)
			}

			if publish {
				fmt.Printf("%s is now live\n", s.Subdomain)
			} else {
				fmt.Printf("%s is now offline\n", s.Subdomain)
			}
			return nil
		},
	}
}
