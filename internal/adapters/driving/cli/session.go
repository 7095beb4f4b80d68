package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shubhraaj/sitecms/internal/core/domain"
)

var (
	loginUsername string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the content API",
	Long: `Exchanges admin credentials for a token and stores it in the local cache.
Missing credentials are prompted for; the password is read without echo.`,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored token",
	RunE:  runLogout,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "admin username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "admin password (prompted if omitted)")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}

	reader := newReader(cmd.InOrStdin())
	username, password := loginUsername, loginPassword
	if username == "" {
		username = prompt(cmd, reader, "Username: ")
	}
	if password == "" {
		password = promptSecret(cmd, reader, "Password: ")
	}
	if username == "" || password == "" {
		return errors.New("username and password are required")
	}

	if err := sessionService.Login(commandContext(cmd), username, password); err != nil {
		var authErr *domain.AuthError
		if errors.As(err, &authErr) {
			return fmt.Errorf("login failed: %s", authErr.Message)
		}
		return fmt.Errorf("login failed: %w", err)
	}
	cmd.Println("Logged in.")
	return nil
}

func runLogout(cmd *cobra.Command, _ []string) error {
	if sessionService == nil {
		return errors.New("session service not configured")
	}
	if err := sessionService.Logout(commandContext(cmd)); err != nil {
		return err
	}
	cmd.Println("Logged out.")
	return nil
}
