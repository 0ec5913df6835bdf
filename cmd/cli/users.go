package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func listUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-users",
		Short: "List registered volunteers",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.store.ListUsers(app.ctx)
			if err != nil {
				return err
			}
			for _, u := range users {
				fmt.Printf("%-4d %-16s %-20s %s\n", u.ID, u.Username, u.Name, u.Role)
			}
			return nil
		},
	}
}

func addUserCmd() *cobra.Command {
	var (
		username     string
		name         string
		role         string
		passwordHash string
	)

	cmd := &cobra.Command{
		Use:   "add-user",
		Short: "Register a volunteer",
		Long:  `Registers a volunteer account. The password hash comes from the fronting auth service; this tool only stores it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.store.CreateUser(app.ctx, username, passwordHash, name, role)
			if err != nil {
				return err
			}
			fmt.Printf("Created user %d (%s)\n", user.ID, user.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Login name (required)")
	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&role, "role", "volunteer", "Role: volunteer or admin")
	cmd.Flags().StringVar(&passwordHash, "password-hash", "", "Pre-computed password hash")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("name")
	return cmd
}
