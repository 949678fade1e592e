package main

import (
	"fmt"
	"time"

	"github.com/homecare-staffing/nursing-backend-go/internal/config"
	"github.com/homecare-staffing/nursing-backend-go/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

var (
	tokenUser  string
	tokenAdmin bool
	tokenTTL   time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Sign a development access token with JWT_SECRET_KEY",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		token, err := jwt.EncodeAccessToken(jwt.NewJWTAuth(cfg.JWT.Secret), tokenUser, tokenAdmin, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "dev-user", "user_id claim")
	tokenCmd.Flags().BoolVar(&tokenAdmin, "admin", false, "Grant admin privileges")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "Token lifetime")
}
