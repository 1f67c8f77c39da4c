package token

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/identity-core/internal/security"
	"github.com/sandeepkv93/identity-core/internal/tools/common"
)

const toolName = "token"

func NewCommand(opts *common.Options) *cobra.Command {
	cmd := &cobra.Command{Use: "token", Short: "Token diagnostics"}
	cmd.AddCommand(newInspectCommand(opts))
	return cmd
}

func newInspectCommand(opts *common.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <token>",
		Short: "Verify a token against JWT_SECRET_KEY and print its claims",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return common.Run(cmd, opts, toolName, "inspect", func(ctx context.Context) ([]string, error) {
				cfg, err := common.LoadConfig(opts.EnvFile)
				if err != nil {
					return nil, err
				}
				return inspect(security.NewTokenIssuer(cfg.JWTSecretKey, 0), args[0])
			})
		},
	}
}

// inspect lists the token's claims even when verification fails, so an
// expired or foreign token can still be diagnosed.
func inspect(issuer *security.TokenIssuer, raw string) ([]string, error) {
	mc := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, mc); err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}
	details := describe(mc)

	if _, err := issuer.Verify(raw); err != nil {
		return append(details, "signature: rejected"), err
	}
	return append(details, "signature: valid"), nil
}

func describe(mc jwt.MapClaims) []string {
	keys := make([]string, 0, len(mc))
	for k := range mc {
		if k == "iat" || k == "exp" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	details := make([]string, 0, len(keys)+2)
	for _, k := range keys {
		details = append(details, fmt.Sprintf("%s: %v", k, mc[k]))
	}
	if iat, err := mc.GetIssuedAt(); err == nil && iat != nil {
		details = append(details, "issued at: "+iat.UTC().Format(time.RFC3339))
	}
	exp, err := mc.GetExpirationTime()
	switch {
	case err != nil:
		details = append(details, "expires: invalid")
	case exp == nil:
		details = append(details, "expires: never")
	default:
		details = append(details, "expires: "+exp.UTC().Format(time.RFC3339))
	}
	return details
}
