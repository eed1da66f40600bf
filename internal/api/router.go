package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/meishi-app/meishi-backend/internal/auth"
	"github.com/meishi-app/meishi-backend/internal/availability"
	availabilityHttp "github.com/meishi-app/meishi-backend/internal/availability/http"
	"github.com/meishi-app/meishi-backend/internal/booking"
	bookingHttp "github.com/meishi-app/meishi-backend/internal/booking/http"
	"github.com/meishi-app/meishi-backend/internal/bookingsystem"
	bookingsystemHttp "github.com/meishi-app/meishi-backend/internal/bookingsystem/http"
	"github.com/meishi-app/meishi-backend/internal/generalslot"
	generalslotHttp "github.com/meishi-app/meishi-backend/internal/generalslot/http"
	"github.com/meishi-app/meishi-backend/internal/restaurant"
	restaurantHttp "github.com/meishi-app/meishi-backend/internal/restaurant/http"
	"github.com/meishi-app/meishi-backend/internal/timeslot"
	timeslotHttp "github.com/meishi-app/meishi-backend/internal/timeslot/http"
	"github.com/meishi-app/meishi-backend/internal/user"
	userHttp "github.com/meishi-app/meishi-backend/internal/user/http"
)

// Config carries the services and settings the router assembles.
type Config struct {
	IsProduction        bool
	ProdOrigins         string
	UserService         user.Service
	RestaurantService   restaurant.Service
	SystemService       bookingsystem.Service
	GeneralSlotService  generalslot.Service
	TimeSlotService     timeslot.Service
	BookingService      booking.Service
	AvailabilityService availability.Service
	JWTManager          *auth.JWTManager
}

// NewRouter initializes the HTTP router engine.
// It is responsible for assembling middleware (CORS, Logger, Auth) and registering routes for various modules.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000", // Web frontend
			"http://localhost:8081", // Swagger
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	authOptional := auth.AuthOptional(cfg.JWTManager)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	restaurantHandler := restaurantHttp.NewHandler(cfg.RestaurantService)
	systemHandler := bookingsystemHttp.NewHandler(cfg.SystemService)
	generalSlotHandler := generalslotHttp.NewHandler(cfg.GeneralSlotService)
	timeSlotHandler := timeslotHttp.NewHandler(cfg.TimeSlotService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	availabilityHandler := availabilityHttp.NewHandler(cfg.AvailabilityService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware)
		restaurantHttp.RegisterRoutes(v1, restaurantHandler, authMiddleware)
		bookingsystemHttp.RegisterRoutes(v1, systemHandler, authMiddleware)
		generalslotHttp.RegisterRoutes(v1, generalSlotHandler, authMiddleware)
		timeslotHttp.RegisterRoutes(v1, timeSlotHandler, authMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, authOptional)
		availabilityHttp.RegisterRoutes(v1, availabilityHandler)
	}

	return r
}
