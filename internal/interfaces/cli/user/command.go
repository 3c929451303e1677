// Package user holds account administration commands.
package user

import (
	"fmt"

	"github.com/spf13/cobra"

	appUser "labmanager/internal/application/user"
	infraAuth "labmanager/internal/infrastructure/auth"
	"labmanager/internal/infrastructure/repository"
	"labmanager/internal/interfaces/cli/bootstrap"
)

var (
	env        string
	configPath string
	req        appUser.CreateAdminRequest
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Account administration",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(newCreateAdminCommand())
	return cmd
}

func newCreateAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		Long:  `Create the administrator account used to sign in and provision every other account.`,
		RunE:  runCreateAdmin,
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Administrator e-mail (required)")
	cmd.Flags().StringVar(&req.Password, "password", "", "Administrator password, at least 8 characters (required)")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "First name (required)")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "Last name (required)")
	for _, f := range []string{"email", "password", "first-name", "last-name"} {
		_ = cmd.MarkFlagRequired(f)
	}

	return cmd
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	e, err := bootstrap.Load(env, configPath)
	if err != nil {
		return err
	}
	defer e.Close()

	repo := repository.NewUserRepository(e.DB, e.Logger)
	hasher := infraAuth.NewBcryptPasswordHasher(e.Config.Auth.Password.BcryptCost)
	service := appUser.NewService(repo, hasher, e.Logger.Named("user"))

	admin, err := service.CreateAdmin(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("failed to create administrator: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Administrator %s created (id %d)\n", admin.Email, admin.ID)
	return nil
}
