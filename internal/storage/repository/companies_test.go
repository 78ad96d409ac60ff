package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/adaso/internal/models"
)

func TestStorage_Companies(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	var created *models.Company

	t.Run("create", func(t *testing.T) {
		var err error
		created, err = storage.CreateCompany(ctx, models.Company{
			Name:          "Akdeniz Tekstil",
			Sector:        "Tekstil",
			Phone:         "0322 111 22 33",
			ContactPerson: "Mehmet Yılmaz",
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "Akdeniz Tekstil", created.Name)
		assert.Empty(t, created.Email)
		assert.False(t, created.CreatedAt.IsZero())
	})

	t.Run("list newest first", func(t *testing.T) {
		second, err := storage.CreateCompany(ctx, models.Company{Name: "Çukurova Gıda", Sector: "Gıda", Phone: "1"})
		require.NoError(t, err)

		list, err := storage.ListCompanies(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ID)
		assert.Equal(t, created.ID, list[1].ID)
	})

	t.Run("partial update", func(t *testing.T) {
		email := "info@akdeniz.com"
		updated, err := storage.UpdateCompany(ctx, created.ID, models.CompanyPatch{Email: &email})
		require.NoError(t, err)
		assert.Equal(t, email, updated.Email)
		assert.Equal(t, "Akdeniz Tekstil", updated.Name)
		assert.Equal(t, "Mehmet Yılmaz", updated.ContactPerson)
	})

	t.Run("update missing", func(t *testing.T) {
		name := "x"
		_, err := storage.UpdateCompany(ctx, 999999, models.CompanyPatch{Name: &name})
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, storage.DeleteCompany(ctx, created.ID))
		err := storage.DeleteCompany(ctx, created.ID)
		require.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := storage.CreateCompany(cctx, models.Company{Name: "n", Sector: "s", Phone: "p"})
		require.ErrorIs(t, err, context.Canceled)
	})
}
