package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/adaso/internal/models"
)

func TestStorage_Visits(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()
	ctx := context.Background()

	created, err := storage.CreateVisit(ctx, models.Visit{
		Date:         "2024-03-15",
		Time:         "14:30",
		Company:      "Akdeniz Tekstil",
		Visitor:      "Ayşe Demir",
		Purpose:      "Üyelik görüşmesi",
		Status:       models.VisitPlanned,
		Files:        []string{"rapor.pdf", "sunum.pptx"},
		IncomeAmount: decimal.RequireFromString("1500.50"),
	})
	require.NoError(t, err)

	t.Run("create returns stored row", func(t *testing.T) {
		assert.NotZero(t, created.ID)
		assert.Equal(t, "2024-03-15", created.Date)
		assert.Equal(t, "14:30", created.Time)
		assert.Equal(t, []string{"rapor.pdf", "sunum.pptx"}, created.Files)
		assert.True(t, decimal.RequireFromString("1500.50").Equal(created.IncomeAmount))
		assert.True(t, created.ExpenseAmount.IsZero())
	})

	t.Run("empty files round trip as empty list", func(t *testing.T) {
		v, err := storage.CreateVisit(ctx, models.Visit{
			Date: "2024-03-10", Time: "09:00", Company: "Çukurova Gıda",
			Visitor: "Ali", Purpose: "Tanışma", Status: models.VisitCompleted,
		})
		require.NoError(t, err)
		assert.NotNil(t, v.Files)
		assert.Empty(t, v.Files)
	})

	t.Run("list by date descending", func(t *testing.T) {
		list, err := storage.ListVisits(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, created.ID, list[0].ID)
	})

	t.Run("partial update keeps other fields", func(t *testing.T) {
		status := models.VisitCompleted
		expense := decimal.RequireFromString("200")
		v, err := storage.UpdateVisit(ctx, created.ID, models.VisitPatch{Status: &status, ExpenseAmount: &expense})
		require.NoError(t, err)
		assert.Equal(t, models.VisitCompleted, v.Status)
		assert.Equal(t, "14:30", v.Time)
		assert.Equal(t, []string{"rapor.pdf", "sunum.pptx"}, v.Files)
		assert.True(t, expense.Equal(v.ExpenseAmount))
	})

	t.Run("empty files patch clears list", func(t *testing.T) {
		empty := []string{}
		v, err := storage.UpdateVisit(ctx, created.ID, models.VisitPatch{Files: &empty})
		require.NoError(t, err)
		assert.Empty(t, v.Files)
	})

	t.Run("status constraint", func(t *testing.T) {
		bad := "Bilinmiyor"
		_, err := storage.UpdateVisit(ctx, created.ID, models.VisitPatch{Status: &bad})
		require.Error(t, err)
	})

	t.Run("missing visit", func(t *testing.T) {
		status := models.VisitCancelled
		_, err := storage.UpdateVisit(ctx, 999999, models.VisitPatch{Status: &status})
		require.ErrorIs(t, err, models.ErrNotFound)
		require.ErrorIs(t, storage.DeleteVisit(ctx, 999999), models.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, storage.DeleteVisit(ctx, created.ID))
		list, err := storage.ListVisits(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})
}
