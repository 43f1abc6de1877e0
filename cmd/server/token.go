package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/meal-planner/internal/utils"
)

var (
	tokenSubject string
	tokenTTL     time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print an admin token for /setup-database",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Admin.JWTSecret == "" {
			return errors.New("ADMIN_JWT_SECRET is not set")
		}
		ttl := tokenTTL
		if ttl <= 0 {
			ttl = cfg.Admin.TokenTTL
		}
		tok, err := utils.NewAdminToken(cfg.Admin.JWTSecret, tokenSubject, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok.Token)
		fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", tok.Exp.Format(time.RFC3339))
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "admin", "sub claim of the token")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (defaults to ADMIN_TOKEN_TTL)")
}
