package main

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	mongostore "github.com/99minutos/backoffice/internal/infrastructure/db/mongo"
	"github.com/99minutos/backoffice/internal/pkg/config"
	"github.com/99minutos/backoffice/pkg/logger"
)

const defaultTimeout = 30 * time.Second

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	timeout time.Duration
}

// NewRootCmd creates the root command for the backofficectl CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "backofficectl",
		Short:        "Administrative tasks for the backoffice user directory",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", defaultTimeout, "timeout for database operations (e.g., 30s, 1m)")

	cmd.AddCommand(NewCreateAdminCmd(opts))
	cmd.AddCommand(NewEnsureIndexesCmd(opts))

	return cmd
}

// directory is an open connection to the user directory database.
type directory struct {
	cfg    *config.Config
	db     *mongo.Database
	log    zerolog.Logger
	close  func()
	cancel context.CancelFunc
	ctx    context.Context
}

// openDirectory loads the configuration and connects to MongoDB. The
// returned context carries the command timeout.
func openDirectory(cmd *cobra.Command, opts *rootOptions) (*directory, error) {
	cfg, err := config.Read(cmd.Context())
	if err != nil {
		return nil, err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Output: cmd.ErrOrStderr(), Service: "backofficectl"})

	ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
	client, db, err := mongostore.Connect(ctx, mongostore.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "backofficectl",
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("connect to directory: %w", err)
	}

	return &directory{
		cfg:    cfg,
		db:     db,
		log:    log,
		ctx:    ctx,
		cancel: cancel,
		close: func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error().Err(err).Msg("mongo disconnect error")
			}
		},
	}, nil
}

func (d *directory) Close() {
	d.close()
	d.cancel()
}
