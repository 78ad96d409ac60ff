package company

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/adaso/internal/models"
)

type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) Create(ctx context.Context, c models.Company) (*models.Company, error) {
	args := m.Called(ctx, c)
	res, _ := args.Get(0).(*models.Company)
	return res, args.Error(1)
}

func (m *ServiceMock) List(ctx context.Context) ([]*models.Company, error) {
	args := m.Called(ctx)
	res, _ := args.Get(0).([]*models.Company)
	return res, args.Error(1)
}

func (m *ServiceMock) Update(ctx context.Context, id int64, p models.CompanyPatch) (*models.Company, error) {
	args := m.Called(ctx, id, p)
	res, _ := args.Get(0).(*models.Company)
	return res, args.Error(1)
}

func (m *ServiceMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newRouter(svc Service) http.Handler {
	h := New(newNoopLogger(), svc)
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, bytes.NewBufferString(body)))
	return rec
}

var akdeniz = &models.Company{
	ID:        7,
	Name:      "Akdeniz Tekstil",
	Sector:    "Tekstil",
	Phone:     "0322 000 00 00",
	CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
}

func TestHandler_List(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("List", mock.Anything).Return([]*models.Company{akdeniz}, nil)

	rec := do(t, newRouter(svc), http.MethodGet, "/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":7,"name":"Akdeniz Tekstil","sector":"Tekstil","phone":"0322 000 00 00","createdAt":"2024-05-01T10:00:00Z"}]`, rec.Body.String())
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
			name: "успешное создание",
			body: `{"name":"Akdeniz Tekstil","sector":"Tekstil","phone":"0322 000 00 00"}`,
			setupMock: func(m *ServiceMock) {
				m.On("Create", mock.Anything, models.Company{Name: "Akdeniz Tekstil", Sector: "Tekstil", Phone: "0322 000 00 00"}).
					Return(akdeniz, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "нет обязательных полей",
			body:       `{"name":"Akdeniz Tekstil"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":true,"message":"field Sector is a required field, field Phone is a required field","code":"VALIDATION_ERROR"}`,
		},
		{
			name:       "некорректный JSON",
			body:       `{"name":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":true,"message":"invalid request body","code":"VALIDATION_ERROR"}`,
		},
		{
			name: "ошибка хранилища",
			body: `{"name":"Akdeniz Tekstil","sector":"Tekstil","phone":"0322 000 00 00"}`,
			setupMock: func(m *ServiceMock) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("storage.CreateCompany: db down"))
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":true,"message":"internal server error","code":"INTERNAL_ERROR"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.setupMock != nil {
				tt.setupMock(svc)
			}

			rec := do(t, newRouter(svc), http.MethodPost, "/", tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_Update(t *testing.T) {
	phone := "0322 111 11 11"

	svc := new(ServiceMock)
	svc.On("Update", mock.Anything, int64(7), models.CompanyPatch{Phone: &phone}).Return(akdeniz, nil)
	svc.On("Update", mock.Anything, int64(99), mock.Anything).Return(nil, models.ErrNotFound)
	router := newRouter(svc)

	rec := do(t, router, http.MethodPut, "/7", `{"phone":"0322 111 11 11"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodPut, "/99", `{"phone":"0322 111 11 11"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":true,"message":"not found","code":"NOT_FOUND"}`, rec.Body.String())

	rec = do(t, router, http.MethodPut, "/abc", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":true,"message":"validation error: invalid id","code":"VALIDATION_ERROR"}`, rec.Body.String())

	svc.AssertExpectations(t)
}

func TestHandler_Delete(t *testing.T) {
	svc := new(ServiceMock)
	svc.On("Delete", mock.Anything, int64(7)).Return(nil)
	svc.On("Delete", mock.Anything, int64(8)).Return(models.ErrNotFound)
	router := newRouter(svc)

	rec := do(t, router, http.MethodDelete, "/7", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = do(t, router, http.MethodDelete, "/8", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	svc.AssertExpectations(t)
}
