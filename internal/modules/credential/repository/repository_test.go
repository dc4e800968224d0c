package repository_test

import (
	"context"
	"testing"

	"anoa.com/langanalytics/internal/entity"
	"anoa.com/langanalytics/internal/modules/credential/repository"
	"anoa.com/langanalytics/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialRepository(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := repository.NewCredentialRepository(db)
	ctx := context.Background()

	testutil.CreateTestOrg(t, db, "Acme", "a@x.com")

	t.Run("email taken by another row", func(t *testing.T) {
		taken, err := repo.EmailTaken(ctx, "a@x.com", "")
		require.NoError(t, err)
		assert.True(t, taken)
	})

	t.Run("own email is not a collision", func(t *testing.T) {
		taken, err := repo.EmailTaken(ctx, "a@x.com", "a@x.com")
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("username", func(t *testing.T) {
		taken, err := repo.UsernameTaken(ctx, "Acme", "")
		require.NoError(t, err)
		assert.True(t, taken)

		taken, err = repo.UsernameTaken(ctx, "Globex", "")
		require.NoError(t, err)
		assert.False(t, taken)
	})

	t.Run("mirror update by previous email", func(t *testing.T) {
		require.NoError(t, repository.MirrorUpdate(db, "a@x.com", map[string]interface{}{"email": "new@x.com"}))

		cred, err := repo.FindByEmail(ctx, "new@x.com")
		require.NoError(t, err)
		assert.Equal(t, entity.RoleOrg, cred.Role)
	})

	t.Run("delete by email", func(t *testing.T) {
		require.NoError(t, repository.DeleteByEmail(db, "new@x.com"))
		_, err := repo.FindByEmail(ctx, "new@x.com")
		assert.Error(t, err)
	})
}
