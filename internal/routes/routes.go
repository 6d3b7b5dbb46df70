// Package routes wires repositories, services, and handlers onto the
// fiber app.
package routes

import (
	"tutorlink/internal/config"
	"tutorlink/internal/handlers"
	"tutorlink/internal/middleware"
	"tutorlink/internal/models"
	"tutorlink/internal/repositories"
	"tutorlink/internal/repositories/cache"
	"tutorlink/internal/services/auth"
	"tutorlink/internal/services/exchange"
	"tutorlink/internal/services/payment"
	"tutorlink/internal/services/referral"
	"tutorlink/internal/services/reputation"
	"tutorlink/internal/services/user"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB, cacheService *cache.CacheService) {
	// Repositories
	userRepo := repositories.NewUserRepository(db, cacheService)
	referralRepo := repositories.NewReferralRepository(db)
	metricsRepo := repositories.NewMetricsRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)

	// Services
	providerBase := config.GetEnv("PAYMENT_PROVIDER_URL", "https://api.cryptapi.io")
	providerKey := config.GetEnv("PAYMENT_PROVIDER_API_KEY", "")
	callbackURL := config.GetEnv("PAYMENT_CALLBACK_URL", "")

	rateClient := exchange.NewClient(providerBase, providerKey)
	rateService := exchange.NewService(rateClient, nil)

	var scoreCache reputation.CacheOperator
	if cacheService != nil {
		scoreCache = cache.NewScoreCache(cacheService)
	}
	reputationService := reputation.NewService(metricsRepo, scoreCache)

	referralService := referral.NewService(referralRepo)

	provider := payment.NewProviderClient(providerBase, providerKey,
		config.GetEnv("PLATFORM_COMMISSION_ADDRESS", ""))
	charger := payment.NewStripeCharger(config.GetEnv("STRIPE_SECRET_KEY", ""))
	paymentService := payment.NewService(paymentRepo, provider, charger, rateService, reputationService, callbackURL)

	authService := auth.NewService(userRepo)
	userService := user.NewService(userRepo, referralService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	referralHandler := handlers.NewReferralHandler(referralService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	ratesHandler := handlers.NewRatesHandler(rateService)
	reputationHandler := handlers.NewReputationHandler(reputationService)
	healthHandler := handlers.NewHealthHandler(db, cacheService)

	api := app.Group("/api")

	// Public endpoints
	api.Post("/register", userHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.Refresh)
	api.Get("/health", healthHandler.Check)

	// Provider webhook, authenticated by the callback URL secret.
	api.Post("/webhooks/crypto", paymentHandler.Webhook)

	// Public reputation lookups
	api.Get("/users/:id/reputation", reputationHandler.Score)
	api.Get("/users/:id/metrics", reputationHandler.Metrics)

	// Authenticated endpoints
	authed := api.Group("", middleware.Auth())
	authed.Post("/logout", authHandler.Logout)
	authed.Get("/me", userHandler.Me)

	authed.Post("/referrals/code", referralHandler.GenerateCode)
	authed.Post("/referrals", referralHandler.Track)
	authed.Post("/referrals/:id/complete", referralHandler.Complete)
	authed.Get("/referrals", referralHandler.List)
	authed.Get("/bonuses", referralHandler.Bonuses)

	authed.Post("/payments/crypto", paymentHandler.CreateCryptoCharge)
	authed.Post("/payments/card", paymentHandler.ChargeCard)
	authed.Get("/payments/:id", paymentHandler.Get)
	authed.Get("/payments", paymentHandler.List)

	authed.Get("/rates/:currency", ratesHandler.Get)
	authed.Post("/rates/convert", ratesHandler.Convert)

	authed.Post("/users/:id/ratings", reputationHandler.Rate)

	// Admin endpoints
	admin := authed.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	admin.Post("/bonuses", referralHandler.Award)
}
