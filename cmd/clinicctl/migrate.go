package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/dental-inventory-api/internal/infrastructure/postgres"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones del esquema PostgreSQL",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Aplica las migraciones pendientes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadEnv()
			if err != nil {
				return err
			}
			if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
				return err
			}
			log.Info().Msg("migraciones aplicadas")
			return nil
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Revierte migraciones (--steps 0 revierte todas)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadEnv()
			if err != nil {
				return err
			}
			if err := postgres.MigrateDown(cfg.DB.ConnectionString(), steps); err != nil {
				return err
			}
			log.Info().Int("steps", steps).Msg("migraciones revertidas")
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "cantidad de migraciones a revertir")

	version := &cobra.Command{
		Use:   "version",
		Short: "Muestra la versión aplicada del esquema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadEnv()
			if err != nil {
				return err
			}
			v, dirty, err := postgres.MigrationVersion(cfg.DB.ConnectionString())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "versión %d (dirty=%t)\n", v, dirty)
			return nil
		},
	}

	cmd.AddCommand(up, down, version)
	return cmd
}
