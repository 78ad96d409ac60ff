package transaction

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/adaso/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Create(ctx context.Context, t models.Transaction) (*models.Transaction, error) {
	args := m.Called(ctx, t)
	res, _ := args.Get(0).(*models.Transaction)
	return res, args.Error(1)
}

func (m *ServiceMock) List(ctx context.Context) ([]*models.Transaction, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]*models.Transaction)
	return res, args.Error(1)
}

func (m *ServiceMock) Update(ctx context.Context, id int64, p models.TransactionPatch) (*models.Transaction, error) {
	args := m.Called(ctx, id, p)
	res, _ := args.Get(0).(*models.Transaction)
	return res, args.Error(1)
}

func (m *ServiceMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ServiceMock) Summary(ctx context.Context, from, to string) (*models.TransactionSummary, error) {
	args := m.Called(ctx, from, to)
	res, _ := args.Get(0).(*models.TransactionSummary)
	return res, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newRouter(svc Service) http.Handler {
	h := New(newNoopLogger(), svc)
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/summary", h.Summary)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, bytes.NewBufferString(body)))
	return rec
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(*ServiceMock)
		wantStatus int
		wantBody   string
	}{
		{
			name: "доход",
			body: `{"date":"2024-05-02","description":"Sponsorluk","category":"Fuar","type":"Gelir","amount":"1250.00"}`,
			setupMock: func(m *ServiceMock) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(tr models.Transaction) bool {
					return tr.Type == models.TransactionIncome && tr.Amount.Equal(decimal.NewFromInt(1250))
				})).Return(&models.Transaction{ID: 1, Type: models.TransactionIncome, Amount: decimal.NewFromInt(1250)}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "неизвестный тип",
			body:       `{"date":"2024-05-02","description":"Sponsorluk","category":"Fuar","type":"Borç","amount":10}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":true,"message":"field Type must be one of: Gelir Gider","code":"VALIDATION_ERROR"}`,
		},
		{
			name: "неположительная сумма",
			body: `{"date":"2024-05-02","description":"Sponsorluk","category":"Fuar","type":"Gider","amount":0}`,
			setupMock: func(m *ServiceMock) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(nil, fmt.Errorf("%w: amount must be positive", models.ErrValidation))
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":true,"message":"validation error: amount must be positive","code":"VALIDATION_ERROR"}`,
		},
		{
			name:       "сумма не число",
			body:       `{"date":"2024-05-02","description":"x","category":"y","type":"Gider","amount":"abc"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":true,"message":"invalid request body","code":"VALIDATION_ERROR"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			rec := do(newRouter(svc), http.MethodPost, "/", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Summary(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Summary", mock.Anything, "2024-01-01", "2024-12-31").Return(&models.TransactionSummary{
		Income:  decimal.RequireFromString("1250"),
		Expense: decimal.RequireFromString("300.25"),
		Net:     decimal.RequireFromString("949.75"),
	}, nil)
	svc.On("Summary", mock.Anything, "", "").Return(&models.TransactionSummary{}, nil)
	svc.On("Summary", mock.Anything, "2024-12-31", "2024-01-01").
		Return(nil, fmt.Errorf("%w: from must not be after to", models.ErrValidation))
	router := newRouter(svc)

	rec := do(router, http.MethodGet, "/summary?from=2024-01-01&to=2024-12-31", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"income":"1250","expense":"300.25","net":"949.75"}`, rec.Body.String())

	rec = do(router, http.MethodGet, "/summary", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodGet, "/summary?from=2024-12-31&to=2024-01-01", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.AssertExpectations(t)
}

func TestHandler_UpdateDelete(t *testing.T) {
	amount := decimal.RequireFromString("99.90")
	svc := new(ServiceMock)
	svc.On("Update", mock.Anything, int64(5), mock.MatchedBy(func(p models.TransactionPatch) bool {
		return p.Amount != nil && p.Amount.Equal(amount) && p.Type == nil
	})).Return(&models.Transaction{ID: 5, Amount: amount}, nil)
	svc.On("Delete", mock.Anything, int64(5)).Return(nil)
	router := newRouter(svc)

	rec := do(router, http.MethodPut, "/5", `{"amount":"99.90"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodDelete, "/5", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	svc.AssertExpectations(t)
}
