package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/config"
	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/handlers"
	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/middleware"
	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/repository"
	"github.com/MarlonWelimaluwa/Elite-fitness-coach/internal/services"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	verificationRepo := repository.NewVerificationRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	slotRepo := repository.NewSlotRepository(db)
	workoutRepo := repository.NewWorkoutRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	engagementRepo := repository.NewEngagementRepository(db)
	broadcastRepo := repository.NewBroadcastRepository(db)
	contactRepo := repository.NewContactRepository(db)

	var emailService services.EmailService
	if cfg.ResendAPIKey != "" {
		emailService = services.NewResendEmailService(cfg.ResendAPIKey, cfg.EmailFrom)
	} else {
		emailService = services.NewLogEmailService()
	}

	bookingService := services.NewBookingService(db, bookingRepo, slotRepo)
	workoutService := services.NewWorkoutService(db, workoutRepo)
	progressService := services.NewProgressService(progressRepo)
	statsService := services.NewStatsService(engagementRepo, workoutRepo, bookingRepo, progressRepo, profileRepo)
	broadcastService := services.NewBroadcastService(broadcastRepo, profileRepo, emailService)
	contactService := services.NewContactService(contactRepo)
	clientService := services.NewClientService(profileRepo, engagementRepo)

	authHandler := handlers.NewAuthHandler(
		db,
		userRepo,
		profileRepo,
		verificationRepo,
		emailService,
		cfg.JWTSecret,
		cfg.PublicBaseURL,
	)
	profileHandler := handlers.NewProfileHandler(profileRepo)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	workoutHandler := handlers.NewWorkoutHandler(workoutService)
	progressHandler := handlers.NewProgressHandler(progressService)
	statsHandler := handlers.NewStatsHandler(statsService)
	broadcastHandler := handlers.NewBroadcastHandler(broadcastService)
	contactHandler := handlers.NewContactHandler(contactService)
	adminHandler := handlers.NewAdminHandler(bookingService, clientService, contactService)

	RegisterSite(app)

	api := app.Group("/api")

	api.Post("/contact", contactHandler.SubmitMessage)

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Get("/verify", authHandler.VerifyEmail)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.AuthRequired(cfg.JWTSecret), authHandler.Me)

	protected := api.Group("", middleware.AuthRequired(cfg.JWTSecret))

	protected.Get("/profile", profileHandler.GetProfile)
	protected.Patch("/profile", profileHandler.UpdateProfile)

	protected.Get("/slots", bookingHandler.ListOpenSlots)
	protected.Get("/session-types", bookingHandler.SessionTypes)

	bookings := protected.Group("/bookings")
	bookings.Post("", bookingHandler.CreateBooking)
	bookings.Get("", bookingHandler.ListBookings)
	bookings.Post("/:id/cancel", bookingHandler.CancelBooking)

	workouts := protected.Group("/workouts")
	workouts.Post("", workoutHandler.CreateWorkout)
	workouts.Get("", workoutHandler.ListWorkouts)
	workouts.Get("/:id", workoutHandler.GetWorkout)
	workouts.Put("/:id", workoutHandler.UpdateWorkout)
	workouts.Delete("/:id", workoutHandler.DeleteWorkout)

	progress := protected.Group("/progress")
	progress.Post("", progressHandler.CreateRecord)
	progress.Get("", progressHandler.ListRecords)
	progress.Delete("/:id", progressHandler.DeleteRecord)

	protected.Get("/stats", statsHandler.ClientStats)

	broadcasts := protected.Group("/broadcasts")
	broadcasts.Get("", broadcastHandler.ListBroadcasts)
	broadcasts.Post("", broadcastHandler.SendBroadcast)

	admin := protected.Group("/admin")
	admin.Get("/stats", statsHandler.CoachStats)
	admin.Get("/bookings", adminHandler.ListBookings)
	admin.Put("/bookings/:id/status", adminHandler.UpdateBookingStatus)
	admin.Get("/slots", adminHandler.ListSlots)
	admin.Post("/slots", adminHandler.AddSlot)
	admin.Delete("/slots/:id", adminHandler.DeleteSlot)
	admin.Get("/clients", adminHandler.ListClients)
	admin.Get("/messages", adminHandler.ListContactMessages)
}
