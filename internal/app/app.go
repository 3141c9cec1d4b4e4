package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	goredis "github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/roleplay/roleplay-api/internal/config"
	"github.com/roleplay/roleplay-api/internal/handler"
	"github.com/roleplay/roleplay-api/internal/logging"
	"github.com/roleplay/roleplay-api/internal/mail"
	"github.com/roleplay/roleplay-api/internal/metrics"
	"github.com/roleplay/roleplay-api/internal/middleware"
	"github.com/roleplay/roleplay-api/internal/repository"
	"github.com/roleplay/roleplay-api/internal/repository/postgres"
	"github.com/roleplay/roleplay-api/internal/repository/redis"
	"github.com/roleplay/roleplay-api/internal/service"
)

// App представляет приложение со всеми зависимостями
type App struct {
	config  *config.Config
	db      *pgxpool.Pool
	redis   *goredis.Client
	server  *http.Server
	logger  *slog.Logger
	metrics *metrics.Metrics
	mailer  mail.Mailer
}

// New создает новый экземпляр приложения
func New(cfg *config.Config) (*App, error) {
	// Инициализируем структурированный логгер (JSON или tint для локальной разработки)
	logger := logging.New(os.Stdout, cfg.Log.Format, cfg.Log.Level)
	slog.SetDefault(logger)

	app := &App{
		config:  cfg,
		logger:  logger,
		metrics: metrics.New(),
		mailer:  mail.NewLogMailer(logger),
	}

	return app, nil
}

// WithMailer подменяет отправщик писем (используется в тестах)
func (a *App) WithMailer(mailer mail.Mailer) *App {
	a.mailer = mailer
	return a
}

// Initialize инициализирует все компоненты приложения
func (a *App) Initialize(ctx context.Context) error {
	// Подключаемся к базе данных
	if err := a.connectDB(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Применяем встроенные миграции
	if a.config.Database.Migrate {
		if err := postgres.Migrate(ctx, a.db); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
		a.logger.Info("Database migrations applied")
	}

	// Redis нужен только для списка отозванных токенов
	if a.config.Redis.Enabled() {
		client, err := redis.NewClient(ctx, a.config.Redis.Addr, a.config.Redis.Password, a.config.Redis.DB)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.redis = client
		a.logger.Info("Connected to redis", "addr", a.config.Redis.Addr)
	}

	// Настраиваем HTTP сервер и роутинг
	a.setupServer()

	a.logger.Info("Application initialized successfully")
	return nil
}

// connectDB устанавливает подключение к PostgreSQL с connection pool
func (a *App) connectDB(ctx context.Context) error {
	poolConfig, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	// Настраиваем размеры connection pool
	poolConfig.MaxConns = a.config.Database.MaxConns
	poolConfig.MinConns = a.config.Database.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Проверяем подключение к БД
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	a.logger.Info("Connected to database")
	return nil
}

// denylist выбирает хранилище отозванных токенов: Redis если настроен, иначе PostgreSQL
func (a *App) denylist() repository.TokenDenylist {
	if a.redis != nil {
		return redis.NewTokenDenylist(a.redis)
	}
	return postgres.NewTokenDenylist(a.db)
}

// setupServer инициализирует HTTP роутер и обработчики
func (a *App) setupServer() {
	addr := fmt.Sprintf("%s:%s", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      a.router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Info("HTTP server configured", "addr", addr)
}

// router собирает слои приложения и возвращает chi роутер
func (a *App) router() http.Handler {
	// Инициализируем слой репозиториев (работа с БД)
	userRepo := postgres.NewUserRepository(a.db)
	groupRepo := postgres.NewGroupRepository(a.db)
	requestRepo := postgres.NewGroupRequestRepository(a.db)
	tokenRepo := postgres.NewLinkTokenRepository(a.db)

	// Инициализируем слой сервисов (бизнес-логика)
	authService := service.NewAuthService(
		userRepo,
		a.denylist(),
		a.config.JWT.Secret,
		a.config.JWT.GetExpiration(),
	)
	userService := service.NewUserService(userRepo)
	groupService := service.NewGroupService(groupRepo)
	requestService := service.NewGroupRequestService(requestRepo, groupRepo, a.metrics)
	passwordService := service.NewPasswordService(
		userRepo,
		tokenRepo,
		a.mailer,
		a.config.Mail.From,
		a.config.Password.ResetTTL,
	)

	validator, err := handler.NewValidator()
	if err != nil {
		// Переводы валидатора регистрируются статически, ошибка здесь означает баг
		panic(err)
	}

	// Инициализируем HTTP обработчики
	userHandler := handler.NewUserHandler(userService, validator)
	sessionHandler := handler.NewSessionHandler(authService, validator)
	passwordHandler := handler.NewPasswordHandler(passwordService, validator)
	groupHandler := handler.NewGroupHandler(groupService, validator)
	requestHandler := handler.NewGroupRequestHandler(requestService)

	// Инициализируем middleware для JWT авторизации
	authMiddleware := middleware.AuthMiddleware(authService)

	// Настраиваем роутер
	r := chi.NewRouter()

	// Глобальные middleware (применяются ко всем запросам)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(a.logger))
	r.Use(middleware.Metrics(a.metrics))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.SecureHeaders(a.config.Security.DevMode))
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// Health check для мониторинга
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			a.logger.Error("Failed to write health check response", "error", err)
		}
	})
	r.Method(http.MethodGet, "/metrics", a.metrics.Handler())

	// Публичные эндпоинты (без авторизации)
	r.Post("/users", userHandler.Create)
	r.Post("/sessions", sessionHandler.Create)
	r.Post("/forgot-password", passwordHandler.Forgot)
	r.Post("/reset-password", passwordHandler.Reset)

	// Защищенные эндпоинты (требуют JWT токен в заголовке Authorization)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Put("/users/{id}", userHandler.Update)
		r.Delete("/sessions", sessionHandler.Delete)

		r.Route("/groups", func(r chi.Router) {
			r.Get("/", groupHandler.List)
			r.Post("/", groupHandler.Create)

			r.Route("/{groupId}", func(r chi.Router) {
				r.Patch("/", groupHandler.Update)
				r.Delete("/", groupHandler.Delete)
				r.Delete("/players/{playerId}", groupHandler.RemovePlayer)

				r.Get("/requests", requestHandler.List)
				r.Post("/requests", requestHandler.Create)
				r.Post("/requests/{requestId}/accept", requestHandler.Accept)
				r.Delete("/requests/{requestId}", requestHandler.Reject)
			})
		})
	})

	return r
}

// Handler возвращает HTTP обработчик приложения (для тестов через httptest)
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run запускает HTTP сервер
func (a *App) Run() error {
	a.logger.Info("Starting HTTP server", "addr", a.server.Addr)
	return a.server.ListenAndServe()
}

// Shutdown корректно останавливает приложение
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application")

	// Останавливаем HTTP сервер (ждем завершения текущих запросов)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error("Failed to close redis client", "error", err)
		}
	}

	// Закрываем подключения к базе данных
	if a.db != nil {
		a.db.Close()
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}
