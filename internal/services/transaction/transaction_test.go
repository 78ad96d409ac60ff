package transaction

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

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

func (m *RepoMock) CreateTransaction(ctx context.Context, t models.Transaction) (*models.Transaction, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *RepoMock) ListTransactions(ctx context.Context) ([]*models.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Transaction), args.Error(1)
}

func (m *RepoMock) UpdateTransaction(ctx context.Context, id int64, p models.TransactionPatch) (*models.Transaction, error) {
	args := m.Called(ctx, id, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func (m *RepoMock) DeleteTransaction(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *RepoMock) SummarizeTransactions(ctx context.Context, f models.SummaryFilter) (*models.TransactionSummary, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TransactionSummary), args.Error(1)
}

func validTransaction() models.Transaction {
	return models.Transaction{
		Date:        "2024-01-10",
		Description: "Aidat",
		Category:    "Üyelik",
		Type:        models.TransactionIncome,
		Amount:      decimal.RequireFromString("150.75"),
	}
}

func TestService_Create(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(tx *models.Transaction)
		wantErr error
	}{
		{name: "valid", mutate: func(*models.Transaction) {}},
		{name: "missing category", mutate: func(tx *models.Transaction) { tx.Category = "" }, wantErr: models.ErrValidation},
		{name: "unknown type", mutate: func(tx *models.Transaction) { tx.Type = "Diğer" }, wantErr: models.ErrValidation},
		{name: "zero amount", mutate: func(tx *models.Transaction) { tx.Amount = decimal.Zero }, wantErr: models.ErrValidation},
		{name: "bad date", mutate: func(tx *models.Transaction) { tx.Date = "10/01/2024" }, wantErr: models.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			tx := validTransaction()
			tt.mutate(&tx)
			if tt.wantErr == nil {
				repo.On("CreateTransaction", mock.Anything, tx).Return(&models.Transaction{ID: 1, Type: tx.Type}, nil).Once()
			}

			_, err := NewService(repo, nil, newNoopLogger()).Create(context.Background(), tx)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestService_Update(t *testing.T) {
	bad := "x"
	_, err := NewService(new(RepoMock), nil, newNoopLogger()).
		Update(context.Background(), 1, models.TransactionPatch{Type: &bad})
	require.ErrorIs(t, err, models.ErrValidation)

	negative := decimal.NewFromInt(-3)
	_, err = NewService(new(RepoMock), nil, newNoopLogger()).
		Update(context.Background(), 1, models.TransactionPatch{Amount: &negative})
	require.ErrorIs(t, err, models.ErrValidation)

	repo := new(RepoMock)
	desc := "Kira"
	patch := models.TransactionPatch{Description: &desc}
	repo.On("UpdateTransaction", mock.Anything, int64(2), patch).Return(&models.Transaction{ID: 2, Description: desc}, nil).Once()
	got, err := NewService(repo, nil, newNoopLogger()).Update(context.Background(), 2, patch)
	require.NoError(t, err)
	assert.Equal(t, desc, got.Description)
}

func TestService_Summary(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	want := &models.TransactionSummary{
		Income:  decimal.NewFromInt(100),
		Expense: decimal.NewFromInt(40),
		Net:     decimal.NewFromInt(60),
	}

	repo := new(RepoMock)
	repo.On("SummarizeTransactions", mock.Anything, models.SummaryFilter{From: &from, To: &to}).Return(want, nil).Once()
	repo.On("SummarizeTransactions", mock.Anything, models.SummaryFilter{}).Return(want, nil).Once()
	svc := NewService(repo, nil, newNoopLogger())

	got, err := svc.Summary(context.Background(), "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = svc.Summary(context.Background(), "", "")
	require.NoError(t, err)

	_, err = svc.Summary(context.Background(), "2024-02-01", "2024-01-01")
	require.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.Summary(context.Background(), "yesterday", "")
	require.ErrorIs(t, err, models.ErrValidation)
	repo.AssertExpectations(t)
}
