package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/unirideapp/uniride-api/internal/cache"
	"github.com/unirideapp/uniride-api/internal/config"
	"github.com/unirideapp/uniride-api/internal/handlers"
	infraRepo "github.com/unirideapp/uniride-api/internal/infra/repository"
	"github.com/unirideapp/uniride-api/internal/middleware"
	"github.com/unirideapp/uniride-api/internal/notify"
	"github.com/unirideapp/uniride-api/internal/session"
	"github.com/unirideapp/uniride-api/internal/storage"
	ucRide "github.com/unirideapp/uniride-api/internal/usecase/ride"
	ucStats "github.com/unirideapp/uniride-api/internal/usecase/stats"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, redis *cache.Redis, cfg *config.Config) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	rideRepo := infraRepo.NewRideGormRepository(db)

	sessions := session.NewStore(redis)

	notifyWriter := notify.NewWriter(db)
	notifier := notify.NewDispatcher(notifyWriter)

	avatars := storage.NewAvatarStore(cfg)

	// ======================================================
	// 🧠 USE CASES — RIDES
	// ======================================================
	publishRideUC := ucRide.NewPublishRide(
		rideRepo,
		notifier,
	)

	joinRideUC := ucRide.NewJoinRide(
		rideRepo,
		notifier,
	)

	cancelRideUC := ucRide.NewCancelRide(
		rideRepo,
		notifier,
	)

	finishRideUC := ucRide.NewFinishRide(
		rideRepo,
		notifier,
	)

	listRidesUC := ucRide.NewListRides(
		rideRepo,
	)

	statsUC := ucStats.NewGetStatistics(rideRepo, redis)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, sessions)
	meHandler := handlers.NewMeHandler(db, avatars)

	paymentHandler := handlers.NewPaymentHandler(db)
	driverHandler := handlers.NewDriverHandler(db, notifier)
	notificationHandler := handlers.NewNotificationHandler(db)

	rideHandler := handlers.NewRideHandler(
		publishRideUC,
		joinRideUC,
		cancelRideUC,
		finishRideUC,
		listRidesUC,
		redis,
	)

	statsHandler := handlers.NewStatsHandler(statsUC)
	adminHandler := handlers.NewAdminHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg, sessions))
		{
			secured.POST("/auth/logout", authHandler.Logout)
			secured.GET("/auth/me", authHandler.Me)

			secured.GET("/me/profile", meHandler.GetProfile)
			secured.PATCH("/me/profile", meHandler.UpdateProfile)
			secured.POST("/me/avatar", meHandler.UploadAvatar)

			secured.GET("/me/payment-methods", paymentHandler.List)
			secured.POST("/me/payment-methods", paymentHandler.Create)
			secured.PATCH("/me/payment-methods/:id", paymentHandler.Update)
			secured.DELETE("/me/payment-methods/:id", paymentHandler.Delete)

			secured.GET("/me/notifications", notificationHandler.List)
			secured.PATCH("/me/notifications/read-all", notificationHandler.MarkAllRead)
			secured.PATCH("/me/notifications/:id/read", notificationHandler.MarkRead)

			secured.GET("/me/statistics", statsHandler.Get)

			secured.GET("/drivers", driverHandler.List)
			secured.GET("/drivers/:id", driverHandler.Get)
			secured.POST("/drivers/:id/reviews", driverHandler.AddReview)

			// ------------------------------
			// RIDES
			// ------------------------------
			secured.POST("/rides", rideHandler.Publish)
			secured.GET("/rides/available", rideHandler.Available)
			secured.GET("/rides/mine", rideHandler.Mine)
			secured.GET("/rides/recent", rideHandler.Recent)
			secured.GET("/rides/current", rideHandler.Current)
			secured.POST("/rides/:id/join", rideHandler.Join)
			secured.POST("/rides/:id/cancel", rideHandler.Cancel)
			secured.POST("/rides/:id/finish", rideHandler.Finish)

			// ------------------------------
			// 🛡️ ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			{
				admin.GET("/users", adminHandler.ListUsers)
				admin.POST("/users", adminHandler.CreateUser)
				admin.PATCH("/users/:id", adminHandler.UpdateUser)
				admin.DELETE("/users/:id", adminHandler.DeleteUser)
			}
		}
	}
}
