package visit

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/adaso/internal/models"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateVisit(ctx context.Context, v models.Visit) (*models.Visit, error) {
	args := m.Called(ctx, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Visit), args.Error(1)
}

func (m *RepoMock) ListVisits(ctx context.Context) ([]*models.Visit, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Visit), args.Error(1)
}

func (m *RepoMock) UpdateVisit(ctx context.Context, id int64, p models.VisitPatch) (*models.Visit, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Visit), args.Error(1)
}

func (m *RepoMock) DeleteVisit(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func ptr[T any](v T) *T {
	return &v
}

func validVisit() models.Visit {
	return models.Visit{
		Date:    "2024-03-15",
		Time:    "14:30",
		Company: "Akdeniz Tekstil",
		Visitor: "Ayşe",
		Purpose: "Tanışma",
		Status:  models.VisitPlanned,
	}
}

func TestNormalizeFileNames(t *testing.T) {
	got := NormalizeFileNames([]string{" Görüşme Özeti.pdf ", "", "çizim(1).png", "İŞ_planı-v2.docx"})
	assert.Equal(t, []string{"Gorusme_Ozeti.pdf", "cizim_1_.png", "IS_plani-v2.docx"}, got)
	assert.Empty(t, NormalizeFileNames(nil))
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(v *models.Visit)
		wantErr error
	}{
		{name: "valid", mutate: func(*models.Visit) {}},
		{name: "missing company", mutate: func(v *models.Visit) { v.Company = "" }, wantErr: models.ErrValidation},
		{name: "bad date", mutate: func(v *models.Visit) { v.Date = "15.03.2024" }, wantErr: models.ErrValidation},
		{name: "time without leading zero", mutate: func(v *models.Visit) { v.Time = "9:30" }, wantErr: models.ErrInvalidTime},
		{name: "hour out of range", mutate: func(v *models.Visit) { v.Time = "24:00" }, wantErr: models.ErrInvalidTime},
		{name: "seconds", mutate: func(v *models.Visit) { v.Time = "10:00:00" }, wantErr: models.ErrInvalidTime},
		{name: "unknown status", mutate: func(v *models.Visit) { v.Status = "Bekliyor" }, wantErr: models.ErrValidation},
		{
			name:    "negative amount",
			mutate:  func(v *models.Visit) { v.ExpenseAmount = decimal.NewFromInt(-5) },
			wantErr: models.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			v := validVisit()
			tt.mutate(&v)
			if tt.wantErr == nil {
				repo.On("CreateVisit", mock.Anything, mock.Anything).Return(&models.Visit{ID: 1}, nil).Once()
			}
			svc := NewService(repo, nil, newNoopLogger())

			_, err := svc.Create(context.Background(), v)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "CreateVisit", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Create_NormalizesFiles(t *testing.T) {
	repo := new(RepoMock)
	repo.On("CreateVisit", mock.Anything, mock.MatchedBy(func(v models.Visit) bool {
		return assert.ObjectsAreEqual([]string{"sunum_ozet.pdf"}, v.Files)
	})).Return(&models.Visit{ID: 1}, nil).Once()

	v := validVisit()
	v.Files = []string{"sunum özet.pdf", "  "}
	_, err := NewService(repo, nil, newNoopLogger()).Create(context.Background(), v)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_Update(t *testing.T) {
	tests := []struct {
		name    string
		patch   models.VisitPatch
		wantErr error
	}{
		{name: "status only", patch: models.VisitPatch{Status: ptr(models.VisitCompleted)}},
		{name: "bad time", patch: models.VisitPatch{Time: ptr("7pm")}, wantErr: models.ErrInvalidTime},
		{name: "bad status", patch: models.VisitPatch{Status: ptr("x")}, wantErr: models.ErrValidation},
		{name: "cleared visitor", patch: models.VisitPatch{Visitor: ptr("")}, wantErr: models.ErrValidation},
		{name: "bad date", patch: models.VisitPatch{Date: ptr("2024-13-01")}, wantErr: models.ErrValidation},
		{
			name:    "negative income",
			patch:   models.VisitPatch{IncomeAmount: ptr(decimal.NewFromInt(-1))},
			wantErr: models.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			if tt.wantErr == nil {
				repo.On("UpdateVisit", mock.Anything, int64(5), tt.patch).Return(&models.Visit{ID: 5}, nil).Once()
			}
			_, err := NewService(repo, nil, newNoopLogger()).Update(context.Background(), 5, tt.patch)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Update_ClearsFiles(t *testing.T) {
	repo := new(RepoMock)
	repo.On("UpdateVisit", mock.Anything, int64(5), mock.MatchedBy(func(p models.VisitPatch) bool {
		return p.Files != nil && len(*p.Files) == 0
	})).Return(&models.Visit{ID: 5}, nil).Once()

	_, err := NewService(repo, nil, newNoopLogger()).Update(context.Background(), 5, models.VisitPatch{Files: ptr([]string{""})})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestService_DeleteMissing(t *testing.T) {
	repo := new(RepoMock)
	repo.On("DeleteVisit", mock.Anything, int64(9)).Return(models.ErrNotFound).Once()
	err := NewService(repo, nil, newNoopLogger()).Delete(context.Background(), 9)
	require.ErrorIs(t, err, models.ErrNotFound)
}
