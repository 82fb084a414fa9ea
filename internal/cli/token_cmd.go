package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"registry/internal/middleware"
)

func newTokenCmd(app *App) *cobra.Command {
	var (
		subject string
		name    string
		locale  string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an admin token for the /donor routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.JWTSecret == "" {
				return errors.New("JWT_SECRET is not configured")
			}
			if ttl <= 0 {
				return errors.New("--ttl must be positive")
			}
			token, err := middleware.SignJWT(app.JWTSecret, middleware.TokenClaims{
				Sub:    subject,
				Name:   name,
				Locale: locale,
				Exp:    app.now().Add(ttl).Unix(),
				Issuer: "registryctl",
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "sub", "admin", "Token subject")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&locale, "locale", "", "Preferred locale, cs or en")
	cmd.Flags().DurationVar(&ttl, "ttl", 12*time.Hour, "Token lifetime")
	return cmd
}
