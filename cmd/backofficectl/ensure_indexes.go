package main

import (
	"fmt"

	"github.com/spf13/cobra"

	mongostore "github.com/99minutos/backoffice/internal/infrastructure/db/mongo"
)

// NewEnsureIndexesCmd creates the ensure-indexes subcommand.
func NewEnsureIndexesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ensure-indexes",
		Short: "Create the user directory and audit indexes",
		Long: `Creates the unique email index on principals, the one-to-one indexes on
role profiles and the audit trail indexes. Safe to run repeatedly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := openDirectory(cmd, opts)
			if err != nil {
				return err
			}
			defer dir.Close()

			if err := mongostore.EnsureIndexes(dir.ctx, dir.db); err != nil {
				return fmt.Errorf("ensure indexes: %w", err)
			}
			cmd.Println("indexes are in place")
			return nil
		},
	}
}
