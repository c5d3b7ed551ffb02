package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/dental-inventory-api/internal/application/auth"
	"github.com/jhoicas/dental-inventory-api/internal/application/dto"
	"github.com/jhoicas/dental-inventory-api/internal/domain"
	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/dental-inventory-api/internal/domain/repository"
	"github.com/jhoicas/dental-inventory-api/internal/infrastructure/postgres"
	"github.com/jhoicas/dental-inventory-api/pkg/config"
)

func newSeedMasterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-master",
		Short: "Crea el usuario Master inicial (MASTER_USER_NAME, MASTER_PASSWORD)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := loadEnv()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			pool, err := postgres.NewPool(ctx, cfg.DB, log)
			if err != nil {
				return err
			}
			defer pool.Close()

			created, err := seedMaster(ctx, postgres.NewUserRepository(pool), cfg.Master)
			if err != nil {
				return err
			}
			if created {
				log.Info().Str("user_name", cfg.Master.UserName).Msg("usuario Master creado")
			} else {
				log.Info().Str("user_name", cfg.Master.UserName).Msg("el usuario Master ya existe")
			}
			return nil
		},
	}
}

// seedMaster crea el Master si no existe. Devuelve false si ya estaba registrado.
func seedMaster(ctx context.Context, users repository.UserRepository, seed config.MasterSeedConfig) (bool, error) {
	if seed.Password == "" {
		return false, fmt.Errorf("seed-master: MASTER_PASSWORD es obligatorio")
	}
	uc := auth.NewAuthUseCase(users, auth.JWTConfig{})
	_, err := uc.CreateUser(ctx, dto.CreateUserRequest{
		UserName: seed.UserName,
		Email:    seed.Email,
		Password: seed.Password,
		Role:     entity.RoleMaster,
	})
	if errors.Is(err, domain.ErrUserNameExists) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
