package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vbonduro/assetreg/internal/domain"
	"github.com/vbonduro/assetreg/internal/service"
)

func newUserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}
	cmd.AddCommand(newCreateAdminCmd())
	return cmd
}

func newCreateAdminCmd() *cobra.Command {
	var in service.AccountInput
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.Close()

			in.Role = domain.RoleAdmin
			u, err := a.services.Users.CreateAccount(cmd.Context(), domain.SystemActor, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created administrator %s (id %d)\n", u.Name, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Name, "name", "", "display name")
	cmd.Flags().StringVar(&in.Email, "email", "", "login email")
	cmd.Flags().StringVar(&in.Password, "password", "", "login password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
