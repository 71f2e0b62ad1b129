package cmd

import (
	"fmt"
	"time"

	"boacompra-loader/utils"

	"github.com/spf13/cobra"
)

var tokenSubject string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a bearer token for POST /api/seed (signed with JWT_SECRET)",
	RunE: func(cmd *cobra.Command, args []string) error {
		expiry := time.Duration(settings.HTTP.JWTExpiryHours) * time.Hour
		token, err := utils.GenerateToken(tokenSubject, settings.HTTP.JWTSecret, expiry)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "operator", "Token subject")
}
