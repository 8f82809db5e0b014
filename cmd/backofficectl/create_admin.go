package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/service"
	"github.com/99minutos/backoffice/internal/core/validation"
	mongostore "github.com/99minutos/backoffice/internal/infrastructure/db/mongo"
	"github.com/99minutos/backoffice/internal/infrastructure/security"
)

// adminPasswordEnv keeps the password out of shell history and process lists.
const adminPasswordEnv = "BACKOFFICE_ADMIN_PASSWORD"

type createAdminOptions struct {
	name  string
	email string
	phone string
}

// NewCreateAdminCmd creates the create-admin subcommand.
func NewCreateAdminCmd(opts *rootOptions) *cobra.Command {
	in := &createAdminOptions{}

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Provision an ADMIN principal",
		Long: `Creates an ADMIN principal in the user directory. Admins cannot sign up
through the registration wizard. The password is read from ` + adminPasswordEnv + `.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			password := os.Getenv(adminPasswordEnv)
			if password == "" {
				return fmt.Errorf("%s is required", adminPasswordEnv)
			}

			dir, err := openDirectory(cmd, opts)
			if err != nil {
				return err
			}
			defer dir.Close()

			if err := mongostore.EnsureIndexes(dir.ctx, dir.db); err != nil {
				return fmt.Errorf("ensure indexes: %w", err)
			}

			svc := service.NewAuthService(
				mongostore.NewPrincipalRepository(dir.db),
				security.NewBcryptHasher(dir.cfg.Auth.BcryptCost),
				nil,
				validation.New(),
				nil,
				dir.log,
				service.AuthOptions{},
			)
			p, err := svc.ProvisionAdmin(dir.ctx, validation.AdminAccount{
				Name:     in.name,
				Email:    in.email,
				Phone:    in.phone,
				Password: password,
			})
			var fe domain.FieldErrors
			switch {
			case errors.As(err, &fe):
				return fmt.Errorf("invalid admin account: %w", fe)
			case errors.Is(err, domain.ErrEmailInUse):
				return fmt.Errorf("a principal with email %s already exists", domain.NormalizeEmail(in.email))
			case err != nil:
				return err
			}

			cmd.Printf("created ADMIN %s (%s)\n", p.Email, p.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.name, "name", "", "display name")
	cmd.Flags().StringVar(&in.email, "email", "", "sign-in email")
	cmd.Flags().StringVar(&in.phone, "phone", "", "phone number (optional)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
