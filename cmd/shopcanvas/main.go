package main

import (
	"os"

	"github.com/shopcanvas/shopcanvas/cli"
	"github.com/shopcanvas/shopcanvas/cmd"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"shopcanvas",
		"Build, edit and serve multi-tenant storefronts from your terminal",
	)

	rootCmd.AddCommand(cmd.NewLoginCmd())
	rootCmd.AddCommand(cmd.NewEditCmd())
	rootCmd.AddCommand(cmd.NewViewCmd())
	rootCmd.AddCommand(cmd.NewServeCmd())
	rootCmd.AddCommand(cmd.NewStoreCmd())
	rootCmd.AddCommand(cmd.NewProductsCmd())
	rootCmd.AddCommand(cmd.NewUploadCmd())
	rootCmd.AddCommand(cmd.NewOrderCmd())
	rootCmd.AddCommand(cmd.NewLogsCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	cli.ApplyStyledHelp(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
