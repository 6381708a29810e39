package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/shopcanvas/shopcanvas/catalog"
	"github.com/shopcanvas/shopcanvas/cli"
	"github.com/shopcanvas/shopcanvas/tui/theme"
	"github.com/spf13/cobra"
)

// NewProductsCmd creates the `products` command.
func NewProductsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products <subdomain>",
		Short: "List a store's products",
		Args:  cobra.ExactArgs(1),
		RunE:  runProductsE,
	}

	cmd.Flags().String("tab", "all", "Filter tab: all, on_sale, new, featured, best_sellers")

	return cmd
}

func runProductsE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	handler := cli.NewErrorHandler(opts.Verbose)

	repo, _, err := newRepository(cmd)
	if err != nil {
		return handler.Handle(err)
	}

	ctx := cmd.Context()
	st, err := repo.GetBySubdomain(ctx, args[0], false)
	if err != nil {
		return handler.Handle(err)
	}
	products, err := repo.Products(ctx, st.ID)
	if err != nil {
		return handler.Handle(err)
	}

	tab, _ := cmd.Flags().GetString("tab")
	products = catalog.Filter(products, catalog.Tab(tab))

	if opts.JSONOutput {
		return json.NewEncoder(os.Stdout).Encode(products)
	}

	t := theme.DefaultTheme
	for _, p := range products {
		var badges []string
		if p.OnSale() {
			badges = append(badges, t.Error.Render(fmt.Sprintf("-%.0f%%", p.DiscountPercentage)))
		}
		if p.IsNew {
			badges = append(badges, t.Success.Render("new"))
		}
		if p.IsFeatured {
			badges = append(badges, t.Info.Render("featured"))
		}
		fmt.Printf("%-32s %10s  stock %-4d %s\n", p.Name, p.DisplayPrice(), p.Stock, strings.Join(badges, " "))
	}
	if len(products) == 0 {
		fmt.Println("No products.")
	}
	return nil
}
