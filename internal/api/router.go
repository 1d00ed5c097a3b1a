package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/firmdesk/scheduling-backend/internal/auth"
	"github.com/firmdesk/scheduling-backend/internal/booking"
	bookingHttp "github.com/firmdesk/scheduling-backend/internal/booking/http"
	"github.com/firmdesk/scheduling-backend/internal/calendar"
	calendarHttp "github.com/firmdesk/scheduling-backend/internal/calendar/http"
	"github.com/firmdesk/scheduling-backend/internal/hours"
	hoursHttp "github.com/firmdesk/scheduling-backend/internal/hours/http"
	"github.com/firmdesk/scheduling-backend/internal/offering"
	offeringHttp "github.com/firmdesk/scheduling-backend/internal/offering/http"
	"github.com/firmdesk/scheduling-backend/internal/staff"
	staffHttp "github.com/firmdesk/scheduling-backend/internal/staff/http"
	"github.com/firmdesk/scheduling-backend/internal/user"
	userHttp "github.com/firmdesk/scheduling-backend/internal/user/http"
)

// Config holds everything the router needs to assemble the HTTP surface.
type Config struct {
	IsProduction bool
	ProdOrigins  string // comma-separated allowed origins in production

	UserService     user.Service
	StaffService    staff.Service
	OfferingService offering.Service
	HoursService    hours.Service
	BookingService  booking.Service
	CalendarFeed    *calendar.Feed

	JWTManager *auth.JWTManager
	Logger     zerolog.Logger
}

// NewRouter assembles middleware and registers every module's routes.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(RequestLogger(cfg.Logger), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000", "http://localhost:8081"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	staffMiddleware := RequireStaff()

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	staffHandler := staffHttp.NewHandler(cfg.StaffService)
	offeringHandler := offeringHttp.NewHandler(cfg.OfferingService)
	hoursHandler := hoursHttp.NewHandler(cfg.HoursService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService, cfg.OfferingService)
	calendarHandler := calendarHttp.NewHandler(cfg.CalendarFeed)

	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, staffMiddleware)
		staffHttp.RegisterRoutes(v1, staffHandler, authMiddleware, staffMiddleware)
		offeringHttp.RegisterRoutes(v1, offeringHandler, authMiddleware, staffMiddleware)
		hoursHttp.RegisterRoutes(v1, hoursHandler, authMiddleware, staffMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, staffMiddleware)
		calendarHttp.RegisterRoutes(v1, calendarHandler, authMiddleware)
	}

	return r
}
