package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/firmdesk/scheduling-backend/internal/api"
	"github.com/firmdesk/scheduling-backend/internal/auth"
	"github.com/firmdesk/scheduling-backend/internal/booking"
	"github.com/firmdesk/scheduling-backend/internal/calendar"
	"github.com/firmdesk/scheduling-backend/internal/hours"
	"github.com/firmdesk/scheduling-backend/internal/offering"
	"github.com/firmdesk/scheduling-backend/internal/planner"
	"github.com/firmdesk/scheduling-backend/internal/staff"
	"github.com/firmdesk/scheduling-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	Logger       zerolog.Logger
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Staff module
	staffRepo := staff.NewPgxRepository(cfg.DBPool)
	staffService := staff.NewService(staffRepo)

	// Offering (service catalog) module
	offeringRepo := offering.NewPgxRepository(cfg.DBPool)
	offeringService := offering.NewService(offeringRepo, staffService)

	// Business hours module
	hoursRepo := hours.NewPgxRepository(cfg.DBPool)
	hoursService := hours.NewService(hoursRepo)

	// Booking module. The repository doubles as the planner's overlap
	// lookup so previews and commits see the same data.
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	detector := planner.NewDetector(bookingRepo, hoursService, staffService)
	assembler := planner.NewAssembler(detector, cfg.Logger)
	bookingService := booking.NewService(bookingRepo, offeringService, staffService, assembler)

	// Calendar feed
	feed := calendar.NewFeed(bookingService)

	router := api.NewRouter(api.Config{
		IsProduction:    cfg.IsProduction,
		ProdOrigins:     cfg.ProdOrigins,
		UserService:     userService,
		StaffService:    staffService,
		OfferingService: offeringService,
		HoursService:    hoursService,
		BookingService:  bookingService,
		CalendarFeed:    feed,
		JWTManager:      jwtManager,
		Logger:          cfg.Logger,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
