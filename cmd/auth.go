package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/worksync/worksync/internal/identity"
)

var (
	authEmail    string
	authPassword string
	authFullName string
)

func promptIfEmpty(value, label string) (string, error) {
	if value != "" {
		return value, nil
	}
	fmt.Printf("%s: ", label)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(line), nil
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		email, err := promptIfEmpty(authEmail, "Email")
		if err != nil {
			return err
		}
		password, err := promptIfEmpty(authPassword, "Password")
		if err != nil {
			return err
		}

		cred, err := app.client.Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}
		if err := app.sessions.Set(cred); err != nil {
			return err
		}

		fmt.Println("Login successful.")
		if identity.IsAdmin(cred.Token) {
			fmt.Println("Signed in as an administrator.")
		}
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and store the session credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		fullName, err := promptIfEmpty(authFullName, "Full name")
		if err != nil {
			return err
		}
		email, err := promptIfEmpty(authEmail, "Email")
		if err != nil {
			return err
		}
		password, err := promptIfEmpty(authPassword, "Password")
		if err != nil {
			return err
		}

		cred, err := app.client.Register(cmd.Context(), fullName, email, password)
		if err != nil {
			return err
		}
		if err := app.sessions.Set(cred); err != nil {
			return err
		}

		fmt.Println("Registration successful.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		if err := app.sessions.Clear(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show what the stored token claims about you",
	Long: `Decodes the stored token payload without verifying it. The output is a
UI hint only; the API decides what you are actually allowed to do.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		cred, err := app.sessions.Get()
		if err != nil {
			return err
		}
		if !cred.IsAuthenticated() {
			fmt.Println("Not logged in.")
			return nil
		}

		claims, err := identity.Decode(cred.Token)
		if err != nil {
			fmt.Println("Logged in (token payload could not be decoded).")
			return nil
		}

		if claims.FullName != "" {
			fmt.Printf("Name:  %s\n", claims.FullName)
		}
		if claims.Email != "" {
			fmt.Printf("Email: %s\n", claims.Email)
		}
		role := claims.Role
		if role == "" {
			role = "user"
		}
		fmt.Printf("Role:  %s (advisory, not verified)\n", role)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&authEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&authPassword, "password", "", "account password")
	registerCmd.Flags().StringVar(&authFullName, "name", "", "full name")
	registerCmd.Flags().StringVar(&authEmail, "email", "", "account email")
	registerCmd.Flags().StringVar(&authPassword, "password", "", "account password")
}
