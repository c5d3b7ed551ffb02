package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/dental-inventory-api/internal/domain/entity"
	"github.com/jhoicas/dental-inventory-api/internal/testutil/memstore"
	"github.com/jhoicas/dental-inventory-api/pkg/config"
)

func TestSeedMaster_Idempotente(t *testing.T) {
	ctx := context.Background()
	users := memstore.New().Users()
	seed := config.MasterSeedConfig{UserName: "master", Password: "master-pass-1"}

	created, err := seedMaster(ctx, users, seed)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = seedMaster(ctx, users, seed)
	require.NoError(t, err)
	assert.False(t, created, "la segunda ejecución no debe duplicar el usuario")

	u, err := users.GetByUserName(ctx, "master")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleMaster, u.Role)
}

func TestSeedMaster_SinPassword(t *testing.T) {
	_, err := seedMaster(context.Background(), memstore.New().Users(), config.MasterSeedConfig{UserName: "master"})
	assert.Error(t, err)
}

func TestRootCmd_Subcomandos(t *testing.T) {
	root := newRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetArgs([]string{"migrate", "--help"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "up")
	assert.Contains(t, out.String(), "down")
	assert.Contains(t, out.String(), "version")
}
