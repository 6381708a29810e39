package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/shopcanvas/shopcanvas/cli"
	"github.com/shopcanvas/shopcanvas/errors"
	"github.com/shopcanvas/shopcanvas/store"
	"github.com/spf13/cobra"
)

// NewOrderCmd creates the `order` command group.
func NewOrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Place test orders against a store",
	}

	cmd.AddCommand(newOrderPlaceCmd())

	return cmd
}

func newOrderPlaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "place <subdomain>",
		Short: "Place an order from a JSON payload",
		Long: `Reads a checkout payload from --file or stdin and runs it through the same
validation and order procedure as the storefront.

Example payload:
  {
    "customer_name": "Ada Lovelace",
    "email": "ada@example.com",
    "address": "1 Analytical Way",
    "city": "London",
    "postal_code": "N1",
    "payment_method": "cash_on_delivery",
    "items": [{"id": "p1", "name": "Classic Tee", "quantity": 1, "price": 24}]
  }
`,
		Args: cobra.ExactArgs(1),
		RunE: runOrderPlaceE,
	}

	cmd.Flags().StringP("file", "f", "", "Payload file ('-' or empty reads stdin)")

	return cmd
}

func runOrderPlaceE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	handler := cli.NewErrorHandler(opts.Verbose)

	repo, _, err := newRepository(cmd)
	if err != nil {
		return handler.Handle(err)
	}

	var payload []byte
	if file, _ := cmd.Flags().GetString("file"); file != "" && file != "-" {
		payload, err = os.ReadFile(file)
	} else {
		payload, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return handler.Handle(errors.Wrap(err, errors.ErrCodeInvalidInput, "read order payload"))
	}

	var req store.CheckoutRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return handler.Handle(errors.Wrap(err, errors.ErrCodeInvalidInput, "parse order payload"))
	}

	ctx := cmd.Context()
	st, err := repo.GetBySubdomain(ctx, args[0], true)
	if err != nil {
		return handler.Handle(err)
	}
	req.StoreID = st.ID

	orderID, err := repo.PlaceOrder(ctx, req)
	if err != nil {
		return handler.Handle(err)
	}

	fmt.Printf("Order placed: %s\n", orderID)
	return nil
}
