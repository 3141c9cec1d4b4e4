package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/roleplay/roleplay-api/internal/app"
	"github.com/roleplay/roleplay-api/internal/config"
	"github.com/roleplay/roleplay-api/internal/mail"
)

// TestEnvironment содержит все ресурсы необходимые для интеграционных тестов
type TestEnvironment struct {
	PostgresContainer *postgres.PostgresContainer
	App               *app.App
	Server            *httptest.Server
	DB                *pgxpool.Pool
	Mailer            *recordingMailer
}

// recordingMailer запоминает отправленные письма
type recordingMailer struct {
	mu       sync.Mutex
	messages []mail.Message
}

func (m *recordingMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

func (m *recordingMailer) Last() (mail.Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.messages) == 0 {
		return mail.Message{}, false
	}
	return m.messages[len(m.messages)-1], true
}

// SetupTestEnvironment поднимает PostgreSQL в контейнере и приложение поверх него
func SetupTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("roleplay_test"),
		postgres.WithUsername("test_user"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	env := &TestEnvironment{PostgresContainer: pgContainer, Mailer: &recordingMailer{}}
	t.Cleanup(func() { env.Cleanup(t) })

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)

	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: "0"},
		Database: config.DatabaseConfig{
			Host:     host,
			Port:     port.Port(),
			User:     "test_user",
			Password: "test_password",
			Name:     "roleplay_test",
			SSLMode:  "disable",
			MaxConns: 10,
			MinConns: 1,
			Migrate:  true,
		},
		JWT: config.JWTConfig{
			Secret:          "test-jwt-secret-key-for-integration-tests",
			ExpirationHours: 24,
		},
		Log:      config.LogConfig{Level: "error", Format: "json"},
		Mail:     config.MailConfig{From: "no-replay@roleplay.com"},
		Password: config.PasswordConfig{ResetTTL: 2 * time.Hour},
	}

	application, err := app.New(cfg)
	require.NoError(t, err, "Failed to create application")
	application.WithMailer(env.Mailer)

	// Initialize применяет встроенные миграции
	require.NoError(t, application.Initialize(ctx), "Failed to initialize application")
	env.App = application
	env.Server = httptest.NewServer(application.Handler())

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	env.DB, err = pgxpool.New(ctx, connStr)
	require.NoError(t, err)

	return env
}

// Cleanup очищает все тестовые ресурсы
func (te *TestEnvironment) Cleanup(t *testing.T) {
	t.Helper()

	if te.Server != nil {
		te.Server.Close()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if te.App != nil {
		_ = te.App.Shutdown(shutdownCtx)
	}

	if te.DB != nil {
		te.DB.Close()
	}

	if te.PostgresContainer != nil {
		_ = te.PostgresContainer.Terminate(context.Background())
	}
}

// MakeRequest выполняет HTTP запрос к приложению, body сериализуется в JSON
func (te *TestEnvironment) MakeRequest(t *testing.T, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, te.Server.URL+path, reader)
	require.NoError(t, err, "Failed to create request")

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := te.Server.Client().Do(req)
	require.NoError(t, err, "Failed to make request")

	return resp
}

// Do выполняет запрос, проверяет статус и декодирует ответ в out (если out не nil)
func (te *TestEnvironment) Do(t *testing.T, method, path string, body interface{}, token string, wantStatus int, out interface{}) {
	t.Helper()

	resp := te.MakeRequest(t, method, path, body, token)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, wantStatus, resp.StatusCode, "unexpected status for %s %s: %s", method, path, raw)

	if out != nil {
		require.NoError(t, json.Unmarshal(raw, out))
	}
}

type userJSON struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Avatar   *string `json:"avatar"`
}

type tokenJSON struct {
	Type      string    `json:"type"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type groupJSON struct {
	ID      int64      `json:"id"`
	Name    string     `json:"name"`
	Master  int64      `json:"master"`
	Players []userJSON `json:"players"`
}

type groupRequestJSON struct {
	ID      int64  `json:"id"`
	GroupID int64  `json:"groupId"`
	UserID  int64  `json:"userId"`
	Status  string `json:"status"`
	Group   *struct {
		Name   string `json:"name"`
		Master int64  `json:"master"`
	} `json:"group,omitempty"`
	User *struct {
		Username string `json:"username"`
	} `json:"user,omitempty"`
}

type errorJSON struct {
	Code    string `json:"code"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// CreateUser регистрирует пользователя и возвращает его вместе с токеном
func (te *TestEnvironment) CreateUser(t *testing.T, username string) (userJSON, string) {
	t.Helper()

	email := username + "@test.com"
	var created struct {
		User userJSON `json:"user"`
	}
	te.Do(t, http.MethodPost, "/users", map[string]string{
		"username": username,
		"email":    email,
		"password": "secret",
	}, "", http.StatusCreated, &created)

	return created.User, te.Login(t, email, "secret")
}

// Login открывает сессию и возвращает JWT
func (te *TestEnvironment) Login(t *testing.T, email, password string) string {
	t.Helper()

	var session struct {
		User  userJSON  `json:"user"`
		Token tokenJSON `json:"token"`
	}
	te.Do(t, http.MethodPost, "/sessions", map[string]string{
		"email":    email,
		"password": password,
	}, "", http.StatusCreated, &session)

	require.Equal(t, "bearer", session.Token.Type)
	require.NotEmpty(t, session.Token.Token)
	return session.Token.Token
}

// CreateGroup создает группу от имени владельца токена
func (te *TestEnvironment) CreateGroup(t *testing.T, token, name string) groupJSON {
	t.Helper()

	var created struct {
		Group groupJSON `json:"group"`
	}
	te.Do(t, http.MethodPost, "/groups", map[string]string{
		"name":        name,
		"description": "description",
		"schedule":    "schedule",
		"location":    "location",
		"chronicity":  "chronicity",
	}, token, http.StatusCreated, &created)

	return created.Group
}
