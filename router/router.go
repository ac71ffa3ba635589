package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/reservation-app/controllers"
	"github.com/yeremiapane/reservation-app/middlewares"
	"github.com/yeremiapane/reservation-app/services"
	"gorm.io/gorm"
)

func SetupRouter(db *gorm.DB, notifier *services.Notifier) *gin.Engine {
	r := gin.Default()

	// Apply security middlewares
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	// Rate limiter global per IP (50 request per detik); dipasang sebelum
	// registrasi route supaya berlaku untuk semuanya
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	// Validasi format jam dan tanggal untuk binding tag
	controllers.RegisterValidators()

	// Inisialisasi service & controller
	bookingSvc := services.NewBookingService(db, notifier)

	userCtrl := controllers.NewUserController(db)
	restaurantCtrl := controllers.NewRestaurantController(db)
	tableCtrl := controllers.NewTableController(db)
	limitCtrl := controllers.NewLimitController(db)
	closedDayCtrl := controllers.NewClosedDayController(db)
	availabilityCtrl := controllers.NewAvailabilityController(db)
	reservationCtrl := controllers.NewReservationController(db, bookingSvc)
	notificationCtrl := controllers.NewNotificationController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Rate limiter untuk login/register
	public := r.Group("/")
	public.Use(middlewares.NewStrictRateLimiter())
	{
		public.POST("/register", userCtrl.Register)
		public.POST("/login", userCtrl.Login)
	}

	// Endpoint WebSocket dashboard (token lewat query)
	r.GET("/events/ws", middlewares.WebSocketAuthMiddleware(), controllers.EventsHandler)

	// -- GUEST (Tanpa Auth) --
	// Lihat profil restoran & slot yang tersedia
	r.GET("/restaurants/:restaurant_id", restaurantCtrl.GetRestaurant)
	r.GET("/restaurants/:restaurant_id/availability", availabilityCtrl.GetAvailability)

	// Booking & pembatalan via kode konfirmasi
	r.POST("/restaurants/:restaurant_id/reservations", reservationCtrl.CreateReservation)
	r.GET("/reservations/code/:code", reservationCtrl.GetReservationByCode)
	r.PATCH("/reservations/code/:code/cancel", reservationCtrl.CancelByCode)

	// ----------------------------------------------------------------
	//                      AUTHENTICATED ROUTES
	// ----------------------------------------------------------------
	auth := r.Group("/")
	auth.Use(middlewares.AuthMiddleware())
	{
		auth.GET("/profile", userCtrl.GetProfile)

		// Dashboard reservasi (owner + staff)
		staff := auth.Group("/")
		staff.Use(middlewares.RequireStaff())
		{
			staff.GET("/restaurants/:restaurant_id/reservations", reservationCtrl.ListByDate)
			staff.PATCH("/reservations/:reservation_id", reservationCtrl.UpdateStatus)
			staff.PATCH("/reservations/:reservation_id/cancel", reservationCtrl.CancelReservation)
			staff.GET("/restaurants/:restaurant_id/notifications", notificationCtrl.ListNotifications)
			staff.GET("/notifications/:notif_id", notificationCtrl.GetNotificationByID)
		}

		// Setting restoran, inventaris, limit, kalender tutup (owner saja)
		owner := auth.Group("/")
		owner.Use(middlewares.RequireOwner())
		{
			owner.POST("/restaurants", restaurantCtrl.CreateRestaurant)
			owner.PATCH("/restaurants/:restaurant_id/settings", restaurantCtrl.UpdateSettings)
			owner.PATCH("/restaurants/:restaurant_id/assignment-mode", restaurantCtrl.ChangeAssignmentMode)
			owner.PUT("/restaurants/:restaurant_id/deposit-tiers", restaurantCtrl.SetDepositTiers)

			owner.POST("/restaurants/:restaurant_id/table-types", tableCtrl.CreateTableType)
			owner.GET("/restaurants/:restaurant_id/table-types", tableCtrl.GetTableTypes)
			owner.DELETE("/table-types/:type_id", tableCtrl.DeleteTableType)

			owner.POST("/restaurants/:restaurant_id/tables", tableCtrl.CreateTable)
			owner.GET("/restaurants/:restaurant_id/tables", tableCtrl.GetAllTables)
			owner.PATCH("/tables/:table_id", tableCtrl.UpdateTable)
			owner.DELETE("/tables/:table_id", tableCtrl.DeleteTable)

			owner.POST("/restaurants/:restaurant_id/limits", limitCtrl.CreateLimit)
			owner.GET("/restaurants/:restaurant_id/limits", limitCtrl.ListLimits)
			owner.PATCH("/limits/:limit_id", limitCtrl.UpdateLimit)
			owner.DELETE("/limits/:limit_id", limitCtrl.DeleteLimit)

			owner.POST("/restaurants/:restaurant_id/closed-days", closedDayCtrl.CreateClosedDay)
			owner.GET("/restaurants/:restaurant_id/closed-days", closedDayCtrl.ListClosedDays)
			owner.DELETE("/closed-days/:day_id", closedDayCtrl.DeleteClosedDay)

			owner.DELETE("/notifications/:notif_id", notificationCtrl.DeleteNotification)
		}
	}

	return r
}
