package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/meishi-app/meishi-backend/internal/api"
	"github.com/meishi-app/meishi-backend/internal/auth"
	"github.com/meishi-app/meishi-backend/internal/availability"
	"github.com/meishi-app/meishi-backend/internal/booking"
	"github.com/meishi-app/meishi-backend/internal/bookingsystem"
	"github.com/meishi-app/meishi-backend/internal/generalslot"
	"github.com/meishi-app/meishi-backend/internal/restaurant"
	"github.com/meishi-app/meishi-backend/internal/slotgen"
	"github.com/meishi-app/meishi-backend/internal/timeslot"
	"github.com/meishi-app/meishi-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	HorizonDays  int
	Logger       *zap.Logger
	Now          func() time.Time
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
	Generator  *slotgen.Generator
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher, cfg.Logger)

	// Restaurant Module
	restaurantRepo := restaurant.NewPgxRepository(cfg.DBPool)
	restaurantService := restaurant.NewService(restaurantRepo)

	// Booking System Module
	systemRepo := bookingsystem.NewPgxRepository(cfg.DBPool)
	systemService := bookingsystem.NewService(systemRepo, restaurantService)

	// Time Slot Module
	timeSlotRepo := timeslot.NewPgxRepository(cfg.DBPool)
	timeSlotService := timeslot.NewService(timeSlotRepo, cfg.DBPool, systemService)

	// Weekly rules and the generator that materializes them
	generalSlotRepo := generalslot.NewPgxRepository(cfg.DBPool)
	generator := slotgen.NewGenerator(
		cfg.DBPool, timeSlotRepo, generalSlotRepo, cfg.HorizonDays, cfg.Now, cfg.Logger)
	generalSlotService := generalslot.NewService(generalSlotRepo, systemService, generator)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, timeSlotRepo, systemService, cfg.DBPool)

	// Availability Module
	availabilityRepo := availability.NewPgxRepository(cfg.DBPool)
	availabilityService := availability.NewService(availabilityRepo, restaurantService)

	router := api.NewRouter(api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		UserService:         userService,
		RestaurantService:   restaurantService,
		SystemService:       systemService,
		GeneralSlotService:  generalSlotService,
		TimeSlotService:     timeSlotService,
		BookingService:      bookingService,
		AvailabilityService: availabilityService,
		JWTManager:          jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
		Generator:  generator,
	}
}
