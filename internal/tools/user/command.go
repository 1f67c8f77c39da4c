package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/sandeepkv93/identity-core/internal/database"
	"github.com/sandeepkv93/identity-core/internal/domain"
	"github.com/sandeepkv93/identity-core/internal/tools/common"
)

const toolName = "user"

func NewCommand(opts *common.Options) *cobra.Command {
	cmd := &cobra.Command{Use: "user", Short: "User maintenance"}
	cmd.AddCommand(newVerifyCommand(opts))
	return cmd
}

func newVerifyCommand(opts *common.Options) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Mark a user's email as verified",
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, opts, toolName, "verify", func(ctx context.Context) ([]string, error) {
				if strings.TrimSpace(email) == "" {
					return nil, fmt.Errorf("email is required")
				}
				_, db, err := common.LoadConfigDB(opts.EnvFile)
				if err != nil {
					return nil, err
				}
				defer common.CloseDB(db)
				return verify(ctx, db, email)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email to mark verified")
	return cmd
}

func verify(ctx context.Context, db *gorm.DB, email string) ([]string, error) {
	normalized := domain.NormalizeEmail(email)
	if err := database.VerifyUserEmail(db.WithContext(ctx), normalized); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no user with email %s", normalized)
		}
		return nil, err
	}
	return []string{"marked email verified: " + normalized}, nil
}
