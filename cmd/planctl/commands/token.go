package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tripmate/internal/config"
	"tripmate/pkg/utils"
)

var TokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an API bearer token signed with JWT_SECRET",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		scope, _ := cmd.Flags().GetString("scope")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		secret := config.Load().JWTSecret
		if secret == "" {
			return fmt.Errorf("JWT_SECRET is not set")
		}

		token, err := utils.CreateToken(subject, scope, ttl, []byte(secret))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	TokenCmd.Flags().String("subject", "planctl", "client identifier stored in the token")
	TokenCmd.Flags().String("scope", "plans", "token scope; use \"ingest\" to allow POST /documents")
	TokenCmd.Flags().Duration("ttl", 24*time.Hour, "token lifetime")
}
