package api

import (
	"log"
	stdhttp "net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	intconfig "hallbooking/internal/config"
	h "hallbooking/internal/http/handlers"
	"hallbooking/internal/http/middleware"
	"hallbooking/internal/notify"
	"hallbooking/internal/payments/yoco"
	"hallbooking/internal/repositories"
)

// NewRouter wires middleware, handlers and dependencies.
func NewRouter(cfg intconfig.Config, cache *redis.Client) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.Server.AllowedOrigins
	} else {
		corsCfg.AllowOrigins = []string{"http://localhost:3000", "http://localhost:5173"}
	}
	corsCfg.AllowCredentials = true
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"}
	r.Use(cors.New(corsCfg))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	bookingRepo := repositories.BookingRepository{}
	userRepo := repositories.UserRepository{}
	gateway := yoco.NewClient(cfg.Yoco.BaseURL, cfg.Yoco.SecretKey)
	mailer := notify.NewClient(cfg.Notify.BaseURL, cfg.Notify.APIKey)

	authH := h.AuthHandler{Users: userRepo, JWTSecret: cfg.Auth.JWTSecret, TokenTTL: cfg.Auth.TokenTTL}
	bookingH := h.BookingHandler{
		Bookings:   bookingRepo,
		Users:      userRepo,
		Cache:      cache,
		CacheTTL:   cfg.Redis.CacheTTL,
		Mailer:     mailer,
		FromEmail:  cfg.Notify.FromEmail,
		AdminEmail: cfg.Notify.AdminEmail,
	}
	paymentH := h.PaymentHandler{
		Bookings:   bookingRepo,
		Gateway:    gateway,
		Mailer:     mailer,
		Cache:      cache,
		SiteURL:    cfg.Yoco.SiteURL,
		FromEmail:  cfg.Notify.FromEmail,
		AdminEmail: cfg.Notify.AdminEmail,
	}
	adminH := h.AdminHandler{
		Bookings:      bookingRepo,
		Mailer:        mailer,
		Cache:         cache,
		FromEmail:     cfg.Notify.FromEmail,
		AdminEmail:    cfg.Notify.AdminEmail,
		StaleDraftAge: cfg.Booking.StaleDraftAge,
	}

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		auth := api.Group("/auth")
		auth.POST("/login", authH.Login)
		auth.POST("/register", authH.Register)

		bookings := api.Group("/hall-bookings", middleware.RequireAuth(cfg.Auth.JWTSecret))
		bookings.GET("/steps", bookingH.Steps)
		bookings.GET("/availability", bookingH.Availability)
		bookings.GET("/draft", bookingH.GetDraft)
		bookings.PUT("/draft", bookingH.SaveDraft)
		bookings.POST("/draft/advance", bookingH.Advance)
		bookings.GET("/:id", bookingH.GetBooking)
		bookings.GET("/:id/form", bookingH.BookingForm)
		bookings.POST("/:id/confirmation", bookingH.Confirmation)

		payments := api.Group("/payments", middleware.RequireAuth(cfg.Auth.JWTSecret))
		payments.POST("/checkout", middleware.RateLimit(10, time.Minute), paymentH.CreateCheckout)
		payments.POST("/callback", paymentH.Callback)

		admin := api.Group("/admin/hall-bookings", middleware.RequireAuth(cfg.Auth.JWTSecret), middleware.RequireAdmin())
		admin.GET("", bookingH.List)
		admin.PUT("/:id/approve", adminH.Approve)
		admin.PUT("/:id/reject", adminH.Reject)
		admin.POST("/:id/resend-confirmation", adminH.ResendConfirmation)
		admin.DELETE("/stale-drafts", adminH.CleanupDrafts)
	}

	return r
}
