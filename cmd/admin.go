package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/adsc/report-system/internal/core/service"
	mongodb "github.com/adsc/report-system/internal/infrastructure/db/mongo"
	"github.com/adsc/report-system/pkg/logger"
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create the bootstrap administrator",
	Long:  `Create the admin account from ADMIN_USERNAME, ADMIN_PASSWORD and ADMIN_EMAIL unless a user with that name exists.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		b, err := connectBackends(cmd.Context(), cfg, log, false)
		if err != nil {
			return err
		}
		defer b.close(log)

		auth := service.NewAuthService(mongodb.NewUserRepository(b.db), nil, nil, cfg.JWTSecret, cfg.TokenTTL, logger.For("auth"))
		user, created, err := auth.EnsureAdmin(cmd.Context(), adminSeed(cfg))
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(cmd.OutOrStdout(), "created admin %q (%s)\n", user.Username, user.ID)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "admin %q already exists\n", user.Username)
		}
		return nil
	},
}

var ensureIndexesCmd = &cobra.Command{
	Use:   "ensure-indexes",
	Short: "Create the MongoDB indexes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := bootstrap(cmd)
		if err != nil {
			return err
		}
		b, err := connectBackends(cmd.Context(), cfg, log, false)
		if err != nil {
			return err
		}
		defer b.close(log)

		if err := mongodb.EnsureIndexes(cmd.Context(), newRepositories(b.db).indexers()...); err != nil {
			return err
		}
		log.Info().Msg("indexes ensured")
		return nil
	},
}
