package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/shopcanvas/shopcanvas/cli"
	"github.com/shopcanvas/shopcanvas/errors"
	"github.com/shopcanvas/shopcanvas/supabase"
	"github.com/spf13/cobra"
)

// NewLoginCmd creates the `login` command.
func NewLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Sign in against the backend and print your user id",
		Long: `Signs in with email and password against the backend auth endpoint. The
password is read from stdin. The printed user id is what store commands take
via --user.

Examples:
  # Sign in
  echo "$PASSWORD" | shopcanvas login ada@example.com

  # Create an account first
  echo "$PASSWORD" | shopcanvas login ada@example.com --signup
`,
		Args: cobra.ExactArgs(1),
		RunE: runLoginE,
	}

	cmd.Flags().Bool("signup", false, "Create the account instead of signing in")

	return cmd
}

func runLoginE(cmd *cobra.Command, args []string) error {
	opts := cli.GetOptions(cmd)
	handler := cli.NewErrorHandler(opts.Verbose)

	repo, _, err := newRepository(cmd)
	if err != nil {
		return handler.Handle(err)
	}

	password, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && password == "" {
		return handler.Handle(errors.Wrap(err, errors.ErrCodeInvalidInput, "read password from stdin"))
	}
	password = strings.TrimRight(password, "\r\n")
	if password == "" {
		return handler.Handle(errors.New(errors.ErrCodeInvalidInput, "empty password"))
	}

	ctx := cmd.Context()
	auth := repo.Client().Auth()

	var resp *supabase.AuthResponse
	if signup, _ := cmd.Flags().GetBool("signup"); signup {
		resp, err = auth.SignUp(ctx, args[0], password)
	} else {
		resp, err = auth.SignIn(ctx, args[0], password)
	}
	if err != nil {
		return handler.Handle(errors.Wrap(err, errors.ErrCodeBackendUnavailable, "authentication failed"))
	}
	if resp.User == nil {
		return handler.Handle(errors.New(errors.ErrCodeBackendUnavailable, "auth response carried no user"))
	}

	fmt.Printf("Signed in as %s\n", resp.User.Email)
	fmt.Printf("User id: %s\n", resp.User.ID)
	return nil
}
