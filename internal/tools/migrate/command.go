package migrate

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/identity-core/internal/database"
	"github.com/sandeepkv93/identity-core/internal/di"
	"github.com/sandeepkv93/identity-core/internal/tools/common"
)

const toolName = "migrate"

func NewCommand(opts *common.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema tooling",
	}
	cmd.AddCommand(newUpCommand(opts), newStatusCommand(opts))
	return cmd
}

func newUpCommand(opts *common.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply schema migrations and seed the role table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, opts, toolName, "up", func(ctx context.Context) ([]string, error) {
				if err := common.LoadEnvFile(opts.EnvFile); err != nil {
					return nil, err
				}
				runner, err := di.InitializeMigrationRunner()
				if err != nil {
					return nil, err
				}
				defer func() { _ = runner.Close() }()

				report, err := runner.Run()
				if err != nil {
					return nil, err
				}
				return []string{
					"schema migration applied",
					fmt.Sprintf("roles created: %d", report.CreatedRoles),
				}, nil
			})
		},
	}
}

func newStatusCommand(opts *common.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Report which managed tables exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, opts, toolName, "status", func(ctx context.Context) ([]string, error) {
				_, db, err := common.LoadConfigDB(opts.EnvFile)
				if err != nil {
					return nil, err
				}
				defer common.CloseDB(db)
				return statusDetails(database.Status(db.WithContext(ctx)))
			})
		},
	}
}

func statusDetails(statuses []database.MigrationStatus) ([]string, error) {
	details := make([]string, 0, len(statuses))
	missing := 0
	for _, st := range statuses {
		state := "present"
		if !st.Present {
			state = "missing"
			missing++
		}
		details = append(details, fmt.Sprintf("table %s: %s", st.Table, state))
	}
	if missing > 0 {
		return details, fmt.Errorf("%d managed table(s) missing, run migrate up", missing)
	}
	return details, nil
}
