package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Restaurante-api/internal/application/auth"
	"github.com/jhoicas/Restaurante-api/internal/application/usecase"
	"github.com/jhoicas/Restaurante-api/internal/domain/access"
	"github.com/jhoicas/Restaurante-api/internal/domain/repository"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/memory"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/ratelimit"
	httpRouter "github.com/jhoicas/Restaurante-api/internal/interfaces/http"
	"github.com/jhoicas/Restaurante-api/pkg/config"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

// storage repositorios del backend elegido con APP_STORAGE.
type storage struct {
	restaurants repository.RestaurantRepository
	profiles    repository.ProfileRepository
	users       repository.UserRepository
	tx          usecase.RestaurantTxRunner
	close       func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.App.Storage == config.StorageMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store, err := memory.NewStore()
		if err != nil {
			return nil, err
		}
		return &storage{
			restaurants: store.Restaurants(),
			profiles:    store.Profiles(),
			users:       store.Users(),
			tx:          store,
			close:       func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.Migrate {
		if err := postgres.Migrate(pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &storage{
		restaurants: postgres.NewRestaurantRepository(pool),
		profiles:    postgres.NewProfileRepository(pool),
		users:       postgres.NewUserRepository(pool),
		tx:          postgres.NewTxRunner(pool),
		close:       pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.close()

	created, err := usecase.EnsureSuperAdmin(ctx, store.users, cfg.Bootstrap.SuperAdminEmail, cfg.Bootstrap.SuperAdminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("crear super_admin inicial")
	}
	if created {
		log.Info().Str("email", cfg.Bootstrap.SuperAdminEmail).Msg("super_admin inicial creado")
	}

	// Sin REDIS_ADDR no se limita el login.
	var limiter auth.RateLimiter
	if cfg.Redis.Addr != "" {
		client, err := ratelimit.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		rl, err := ratelimit.NewRedisLimiter(client, cfg.Redis.LoginRateLimit, cfg.Redis.LoginRateWindow)
		if err != nil {
			log.Fatal().Err(err).Msg("limitador de login")
		}
		limiter = rl
	}

	appMetrics := metrics.New("restaurante")
	guard := usecase.NewGuard(access.NewGate(), appMetrics)

	restaurantUC := usecase.NewRestaurantUseCase(store.restaurants, store.tx, guard)
	profileUC := usecase.NewProfileUseCase(store.profiles, guard)
	userUC := usecase.NewUserUseCase(store.users, store.restaurants, guard)
	authUC := auth.NewAuthUseCase(store.users, store.restaurants, guard, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, limiter)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Restaurante API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		RestaurantUC: restaurantUC,
		ProfileUC:    profileUC,
		UserUC:       userUC,
		Metrics:      appMetrics,
		Log:          log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
