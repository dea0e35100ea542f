package server

import (
	"net/http"

	"roomscheduler/internal/config"
	"roomscheduler/internal/middleware"
	"roomscheduler/internal/modules/admin"
	"roomscheduler/internal/modules/auth"
	"roomscheduler/internal/modules/booking"
	"roomscheduler/internal/modules/catalog"
	jwtsvc "roomscheduler/internal/pkg/jwt"
	"roomscheduler/internal/pkg/logger"
	"roomscheduler/internal/pkg/response"
	"roomscheduler/internal/repository"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// NewRouter wires repositories, services and handlers onto a gin engine.
// clock may be nil for wall time.
func NewRouter(cfg *config.Config, db *gorm.DB, log *logger.Logger, clock booking.Clock) *gin.Engine {
	if config.IsProdLike(cfg.AppEnv) {
		gin.SetMode(gin.ReleaseMode)
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	tokens := jwtsvc.New(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL)

	authHandler := auth.NewHandler(auth.NewService(userRepo, tokens))
	catalogHandler := catalog.NewHandler(catalog.NewService(roomRepo, cfg.Server.RoomsCacheTTL))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, roomRepo, clock), clock)
	adminHandler := admin.NewHandler(admin.NewService(userRepo, log))

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.ErrorLogger(log),
		middleware.CORS(cfg.Server.CORSAllowedOrigins),
	)

	r.GET("/health", health(db))

	r.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Route not found")
	})

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1, middleware.RateLimiter(rate.Limit(cfg.Auth.RateLimitPerSec), cfg.Auth.RateLimitBurst))

		protected := v1.Group("", middleware.JWTAuth(tokens, userRepo))
		adminOnly := protected.Group("", middleware.AdminOnly())

		catalogHandler.RegisterRoutes(v1, adminOnly)
		bookingHandler.RegisterRoutes(protected, middleware.AdminOnly())
		adminHandler.RegisterRoutes(adminOnly)
	}

	return r
}

func health(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			_ = c.Error(err)
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database is not reachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	}
}
