package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"pitchside/backend/internal/auth"
	"pitchside/backend/internal/cache"
	"pitchside/backend/internal/config"
	"pitchside/backend/internal/database"
	"pitchside/backend/internal/handler"
	"pitchside/backend/internal/mailer"
	"pitchside/backend/internal/reminder"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	// Swagger imports
	_ "pitchside/backend/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Pitchside API
// @version         1.0
// @description     This is the API for the Pitchside venue-booking and pickup-game service.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	// Shared side-effect collaborators
	handler.Mail = mailer.NewSMTP(
		config.AppConfig.SMTPHost,
		config.AppConfig.SMTPPort,
		config.AppConfig.SMTPUser,
		config.AppConfig.SMTPPass,
		config.AppConfig.SMTPFrom,
	)
	handler.StatsCache = cache.New(config.AppConfig.RedisAddr, config.AppConfig.RedisPassword)

	// Daily booking reminders
	schedulerConfig := reminder.DefaultSchedulerConfig()
	schedulerConfig.DailyHour = config.AppConfig.ReminderHour
	schedulerConfig.DailyMinute = config.AppConfig.ReminderMinute
	scheduler := reminder.NewScheduler(schedulerConfig, database.DB, handler.Mail)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go scheduler.Start(ctx)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// Rate limit the credential endpoints per client IP.
	loginLimiter := auth.NewRateLimiter(rate.Limit(5.0/60.0), 5)

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		authRoutes.Use(loginLimiter.Limit())
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("/me", handler.GetMe)
			userRoutes.GET("/me/games", handler.GetMyGames)
		}

		// Game routes
		gameRoutes := apiV1.Group("/games")
		{
			gameRoutes.GET("", handler.GetGames)
			gameRoutes.GET("/:id", handler.GetGameByID)

			protected := gameRoutes.Group("")
			protected.Use(auth.AuthMiddleware())
			{
				protected.POST("", handler.CreateGame)
				protected.POST("/:id/join", handler.JoinGame)
				protected.POST("/:id/leave", handler.LeaveGame)
				protected.PUT("/:id", handler.UpdateGame)
				protected.DELETE("/:id", handler.DeleteGame)
			}
		}

		// Venue routes
		venueRoutes := apiV1.Group("/venues")
		{
			// Listing is public; an admin token narrows it to owned venues.
			venueRoutes.GET("", auth.OptionalAuthMiddleware(), handler.GetVenues)

			viewing := venueRoutes.Group("")
			viewing.Use(auth.AuthMiddleware())
			{
				viewing.GET("/:id", handler.GetVenueByID)
				viewing.GET("/:id/bookings", handler.GetVenueBookings)
			}

			// Mutations and aggregations are for venue admins only;
			// per-venue ownership is enforced in the handlers.
			managing := venueRoutes.Group("")
			managing.Use(auth.AuthMiddleware(), auth.AdminMiddleware())
			{
				managing.POST("", handler.CreateVenue)
				managing.PUT("/:id", handler.UpdateVenue)
				managing.DELETE("/:id", handler.DeleteVenue)

				managing.POST("/:id/bookings", handler.AddVenueBooking)
				managing.PUT("/:id/bookings/:bookingId", handler.UpdateVenueBooking)
				managing.DELETE("/:id/bookings/:bookingId", handler.DeleteVenueBooking)

				managing.GET("/:id/statistics", handler.GetVenueStatistics)
				managing.GET("/:id/history", handler.GetVenueHistory)
			}
		}
	}

	addr := ":" + config.AppConfig.Port
	fmt.Printf("Server is running on %s\n", addr)
	fmt.Printf("Swagger UI is available at http://localhost%s/swagger/index.html\n", addr)
	log.Fatal(router.Run(addr))
}
