package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/Restaurante-api/internal/application/auth"
	"github.com/jhoicas/Restaurante-api/internal/application/usecase"
	"github.com/jhoicas/Restaurante-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Restaurante-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	RestaurantUC *usecase.RestaurantUseCase
	ProfileUC    *usecase.ProfileUseCase
	UserUC       *usecase.UserUseCase
	Metrics      *metrics.Metrics // opcional
	Log          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	errs := errorMapper{log: log}

	var observer HTTPObserver
	if deps.Metrics != nil {
		observer = deps.Metrics
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api", RequestLogger(log, observer))

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, errs)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC, errs))
	protected.Get("/auth/me", authHandler.Me)

	restaurants := protected.Group("/restaurants")
	restaurantHandler := NewRestaurantHandler(deps.RestaurantUC, errs)
	restaurants.Get("/", restaurantHandler.List)
	restaurants.Post("/", restaurantHandler.Create)
	restaurants.Get("/:id", restaurantHandler.Get)
	restaurants.Put("/:id", restaurantHandler.Update)
	restaurants.Delete("/:id", restaurantHandler.Deactivate)

	profiles := protected.Group("/profiles")
	profileHandler := NewProfileHandler(deps.ProfileUC, errs)
	profiles.Get("/", profileHandler.List)
	profiles.Get("/:restaurant_id", profileHandler.Get)
	profiles.Put("/:restaurant_id", profileHandler.Update)

	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, errs)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.Get)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)
	users.Post("/:id/password", authHandler.ChangePassword)
}
