package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/identity-core/internal/tools/common"
	"github.com/sandeepkv93/identity-core/internal/tools/loadgen"
	"github.com/sandeepkv93/identity-core/internal/tools/migrate"
	"github.com/sandeepkv93/identity-core/internal/tools/seed"
	"github.com/sandeepkv93/identity-core/internal/tools/token"
	"github.com/sandeepkv93/identity-core/internal/tools/user"
)

func newRootCommand() *cobra.Command {
	opts := &common.Options{}
	root := &cobra.Command{
		Use:           "authctl",
		Short:         "Operator tooling for identity-core",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	common.BindFlags(root, opts)
	root.AddCommand(
		migrate.NewCommand(opts),
		seed.NewCommand(opts),
		user.NewCommand(opts),
		token.NewCommand(opts),
		loadgen.NewCommand(opts),
	)
	return root
}

func main() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		root.PrintErrln("Error:", err)
		os.Exit(common.ExitCode(err))
	}
}
