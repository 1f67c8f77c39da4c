package seed

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/identity-core/internal/database"
	"github.com/sandeepkv93/identity-core/internal/domain"
	"github.com/sandeepkv93/identity-core/internal/tools/common"
)

const toolName = "seed"

func NewCommand(opts *common.Options) *cobra.Command {
	cmd := &cobra.Command{Use: "seed", Short: "Role seed tooling"}
	cmd.AddCommand(newApplyCommand(opts), newDryRunCommand(opts))
	return cmd
}

func newApplyCommand(opts *common.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Insert the fixed role enumeration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, opts, toolName, "apply", func(ctx context.Context) ([]string, error) {
				_, db, err := common.LoadConfigDB(opts.EnvFile)
				if err != nil {
					return nil, err
				}
				defer common.CloseDB(db)

				report, err := database.SeedSync(db)
				if err != nil {
					return nil, err
				}
				if report.Noop {
					return []string{"roles already present, nothing to do"}, nil
				}
				return []string{fmt.Sprintf("roles created: %d", report.CreatedRoles)}, nil
			})
		},
	}
}

func newDryRunCommand(opts *common.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "dry-run",
		Short: "Show what seeding would do",
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, opts, toolName, "dry-run", func(ctx context.Context) ([]string, error) {
				return plan(), nil
			})
		},
	}
}

func plan() []string {
	roles := domain.DefaultRoles()
	details := make([]string, 0, len(roles)+1)
	for _, r := range roles {
		details = append(details, fmt.Sprintf("would ensure role %d: %s", r.ID, r.Name))
	}
	return append(details, "no mutation executed in dry-run mode")
}
