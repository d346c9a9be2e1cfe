package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/syneepse/ResumeFix/internal/models"
	"github.com/syneepse/ResumeFix/internal/repositories"
	"github.com/syneepse/ResumeFix/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResumeRepository_OwnershipAndOrder(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	accounts := repositories.NewAccountRepository(db)
	repo := repositories.NewResumeRepository(db)

	alice, err := accounts.FindOrCreateByIdentity(ctx, "alice@example.com", nil)
	require.NoError(t, err)
	bob, err := accounts.FindOrCreateByIdentity(ctx, "bob@example.com", nil)
	require.NoError(t, err)

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	older := &models.Resume{AccountID: alice.ID, Filename: "a1.pdf", OriginalName: "a1.pdf", ContentType: "application/pdf", UploadDate: base}
	newer := &models.Resume{AccountID: alice.ID, Filename: "a2.pdf", OriginalName: "a2.pdf", ContentType: "application/pdf", UploadDate: base.Add(time.Hour)}
	bobs := &models.Resume{AccountID: bob.ID, Filename: "b1.pdf", OriginalName: "b1.pdf", ContentType: "application/pdf", UploadDate: base}
	for _, r := range []*models.Resume{older, newer, bobs} {
		require.NoError(t, repo.Create(ctx, r))
	}

	list, err := repo.ListByAccount(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)

	_, err = repo.GetForAccount(ctx, alice.ID, bobs.ID)
	assert.ErrorIs(t, err, repositories.ErrResumeNotFound)

	_, err = repo.GetForAccount(ctx, alice.ID, 9999)
	assert.ErrorIs(t, err, repositories.ErrResumeNotFound)

	got, err := repo.GetForAccount(ctx, bob.ID, bobs.ID)
	require.NoError(t, err)
	assert.Equal(t, "b1.pdf", got.Filename)

	require.NoError(t, repo.Delete(ctx, older))
	assert.ErrorIs(t, repo.Delete(ctx, older), repositories.ErrResumeNotFound)

	list, err = repo.ListByAccount(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestResumeRepository_EmptyList(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	accounts := repositories.NewAccountRepository(db)
	repo := repositories.NewResumeRepository(db)

	carol, err := accounts.FindOrCreateByIdentity(ctx, "carol@example.com", nil)
	require.NoError(t, err)

	list, err := repo.ListByAccount(ctx, carol.ID)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}
