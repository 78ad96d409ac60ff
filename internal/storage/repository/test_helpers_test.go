package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/adaso/internal/config"
	"github.com/magabrotheeeer/adaso/internal/migrations"
)

// TestDataFactory содержит методы для создания тестовых данных
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его ID
func (f *TestDataFactory) CreateUser(t *testing.T, username, email, passwordHash string) string {
	id := uuid.NewString()
	_, err := f.storage.DB.Exec(`INSERT INTO users (id, display_name, username, email, password_hash)
		VALUES ($1, $2, $3, $4, $5)`,
		id, "Test "+username, username, email, passwordHash)
	require.NoError(t, err)
	return id
}

// CreateCompany создает тестовую фирму
func (f *TestDataFactory) CreateCompany(t *testing.T, name, sector, contactPerson string) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO companies (name, sector, phone, contact_person)
		VALUES ($1, $2, '0212 000 00 00', NULLIF($3, '')) RETURNING id`,
		name, sector, contactPerson).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateVisit создает тестовый визит
func (f *TestDataFactory) CreateVisit(t *testing.T, date, company, visitor, purpose, status string) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO visits (visit_date, visit_time, company, visitor, purpose, status)
		VALUES ($1::date, '10:00', $2, $3, $4, $5) RETURNING id`,
		date, company, visitor, purpose, status).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateTransaction создает тестовую запись дохода или расхода
func (f *TestDataFactory) CreateTransaction(t *testing.T, date, description, txType, amount string) int64 {
	var id int64
	err := f.storage.DB.QueryRow(`INSERT INTO transactions (tx_date, description, category, tx_type, amount)
		VALUES ($1::date, $2, 'Genel', $3, $4::numeric) RETURNING id`,
		date, description, txType, amount).Scan(&id)
	require.NoError(t, err)
	return id
}

// AgeResetToken сдвигает время выдачи токена сброса в прошлое
func (f *TestDataFactory) AgeResetToken(t *testing.T, userID string, age time.Duration) {
	_, err := f.storage.DB.Exec(`UPDATE users
		SET reset_token_created_at = NOW() - make_interval(secs => $1)
		WHERE id = $2`, age.Seconds(), userID)
	require.NoError(t, err)
}

// passwordHashOf читает текущий хэш пароля пользователя
func passwordHashOf(t *testing.T, s *Storage, userID string) string {
	var hash string
	err := s.DB.QueryRow(`SELECT password_hash FROM users WHERE id = $1`, userID).Scan(&hash)
	require.NoError(t, err)
	return hash
}

// setupTestDatabase создает тестовую БД с контейнером PostgreSQL и применяет миграции
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:15-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       "testdb",
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithDeadline(3 * time.Minute),
	}

	postgresContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "failed to start container")

	host, err := postgresContainer.Host(ctx)
	require.NoError(t, err)
	port, err := postgresContainer.MappedPort(ctx, "5432")
	require.NoError(t, err, "Failed to get port")

	connStr := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())

	// Пробуем подключиться несколько раз с ретраями
	var storage *Storage
	for range 10 {
		storage, err = New(config.Storage{StorageConnectionString: connStr, MaxOpenConns: 5})
		if err == nil {
			break
		}
		time.Sleep(1 * time.Second)
	}
	require.NoError(t, err, "Failed to create storage after retries")

	migrationsPath, err := filepath.Abs("../../../migrations")
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath), "Failed to apply migrations")

	cleanup := func() {
		if storage != nil {
			_ = storage.Close()
		}
		if postgresContainer != nil {
			_ = postgresContainer.Terminate(ctx)
		}
	}

	return storage, cleanup
}
