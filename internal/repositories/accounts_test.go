package repositories_test

import (
	"context"
	"testing"

	"github.com/syneepse/ResumeFix/internal/repositories"
	"github.com/syneepse/ResumeFix/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindOrCreateByIdentity(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewAccountRepository(testutil.NewTestDB(t))

	_, err := repo.FindByIdentity(ctx, "jane@example.com")
	assert.ErrorIs(t, err, repositories.ErrAccountNotFound)

	created, err := repo.FindOrCreateByIdentity(ctx, "jane@example.com", nil)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", created.Email)
	assert.Equal(t, "jane@example.com", created.GoogleID)

	again, err := repo.FindOrCreateByIdentity(ctx, "jane@example.com", nil)
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
}

func TestUpsertGoogleLogin(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewAccountRepository(testutil.NewTestDB(t))

	// An account provisioned from the proxy header is claimed by the first OAuth login.
	provisioned, err := repo.FindOrCreateByIdentity(ctx, "jane@example.com", nil)
	require.NoError(t, err)
	assert.Nil(t, provisioned.LastLogin)

	account, err := repo.UpsertGoogleLogin(ctx, repositories.GoogleProfile{
		Subject:   "google-sub-1",
		Email:     "jane@example.com",
		Name:      "Jane Smith",
		AvatarURL: "https://example.com/jane.png",
	})
	require.NoError(t, err)
	assert.Equal(t, provisioned.ID, account.ID)
	assert.Equal(t, "google-sub-1", account.GoogleID)
	require.NotNil(t, account.Name)
	assert.Equal(t, "Jane Smith", *account.Name)
	assert.NotNil(t, account.LastLogin)

	bySub, err := repo.FindByIdentity(ctx, "google-sub-1")
	require.NoError(t, err)
	assert.Equal(t, account.ID, bySub.ID)
}

func TestUpsertGoogleLogin_CreatesAccount(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewAccountRepository(testutil.NewTestDB(t))

	account, err := repo.UpsertGoogleLogin(ctx, repositories.GoogleProfile{
		Subject: "google-sub-2",
		Email:   "john@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", account.Email)
	assert.Nil(t, account.Name)
	assert.NotNil(t, account.LastLogin)

	found, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "google-sub-2", found.GoogleID)
}
