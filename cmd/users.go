package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/worksync/worksync/internal/user"
)

var (
	newUserName     string
	newUserEmail    string
	newUserPassword string
	newUserRole     string
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts (administrators only)",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List user accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		users, err := app.users.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(users) == 0 {
			fmt.Println("No users found.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE")
		for _, u := range users {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.FullName, u.Email, u.Role)
		}
		w.Flush()
		return nil
	},
}

var usersCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Provision a new user account",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		dto := user.CreateUserDTO{
			FullName: newUserName,
			Email:    newUserEmail,
			Password: newUserPassword,
			Role:     newUserRole,
		}

		created, err := app.users.Create(cmd.Context(), dto)
		if err != nil {
			return err
		}
		fmt.Printf("User %s created with role %s.\n", created.Email, created.Role)
		return nil
	},
}

func init() {
	usersCreateCmd.Flags().StringVar(&newUserName, "name", "", "full name")
	usersCreateCmd.Flags().StringVar(&newUserEmail, "email", "", "account email")
	usersCreateCmd.Flags().StringVar(&newUserPassword, "password", "", "account password")
	usersCreateCmd.Flags().StringVar(&newUserRole, "role", user.RoleUser, "account role (admin or user)")

	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersCreateCmd)
}
