package routes

import (
	"path/filepath"
	"time"

	"github.com/electrobid/electrobid-api/internal/config"
	"github.com/electrobid/electrobid-api/internal/handlers"
	"github.com/electrobid/electrobid-api/internal/middleware"
	"github.com/electrobid/electrobid-api/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	auctionHandler *handlers.AuctionHandler,
	bidHandler *handlers.BidHandler,
	paymentHandler *handlers.PaymentHandler,
	healthHandler *handlers.HealthHandler,
) {
	// Auction listing images, saved by the auction service.
	app.Static("/images", filepath.Join(cfg.UploadsDir, "images"))

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	protected := middleware.JWTProtected(cfg)
	sellers := middleware.RoleRequired(models.RoleSeller, models.RoleAdmin)
	buyers := middleware.RoleRequired(models.RoleBuyer, models.RoleAdmin)
	admins := middleware.RoleRequired(models.RoleAdmin)

	// Auctions — browsing is public, listing management is for sellers
	auctions := api.Group("/auctions")
	auctions.Get("/", auctionHandler.List)
	auctions.Get("/mine", protected, sellers, auctionHandler.ListMine)
	auctions.Get("/:id", auctionHandler.GetByID)
	auctions.Post("/", protected, sellers, auctionHandler.Create)
	auctions.Delete("/:id", protected, sellers, auctionHandler.Delete)

	// Bids — placing is for buyers, history per auction is public
	bids := api.Group("/bids")
	bids.Post("/", protected, buyers, bidHandler.Create)
	bids.Get("/auction/:auctionId", bidHandler.ListByAuction)
	bids.Get("/my", protected, buyers, bidHandler.ListMine)

	// Payments
	payments := api.Group("/payments", protected)
	payments.Post("/", buyers, paymentHandler.Create)
	payments.Get("/", admins, paymentHandler.ListAll)
	payments.Get("/my", buyers, paymentHandler.ListMine)
	payments.Get("/:id", paymentHandler.GetByID)
	payments.Post("/pay/:id", buyers, paymentHandler.Pay)

	// Admin user directory
	users := api.Group("/users", protected, admins)
	users.Get("/", authHandler.ListUsers)
	users.Get("/:id", authHandler.GetUser)
}
