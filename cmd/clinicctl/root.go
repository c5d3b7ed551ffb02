package main

import (
	"github.com/spf13/cobra"

	"github.com/jhoicas/dental-inventory-api/pkg/config"
	"github.com/jhoicas/dental-inventory-api/pkg/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "clinicctl",
		Short:         "Operación de dental-inventory-api",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(), newSeedMasterCmd())
	return root
}

// loadEnv carga configuración y logger; compartido por todos los subcomandos.
func loadEnv() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	return cfg, log, nil
}
