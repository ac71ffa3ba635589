package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/reservation-app/config"
	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/router"
	"github.com/yeremiapane/reservation-app/services"
	"github.com/yeremiapane/reservation-app/utils"
	"gorm.io/gorm"
)

func init() {
	// Load .env file di awal sebelum apapun
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	// Validate required environment variables
	requiredEnvVars := []string{
		"DB_USER",
		"DB_PASSWORD",
		"DB_NAME",
		"JWT_SECRET",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" {
			log.Printf("Warning: Required environment variable %s is not set", envVar)
		}
	}

	// Initialize logger
	utils.InfoLogger = logrus.New()
	utils.ErrorLogger = logrus.New()

	utils.InfoLogger.SetOutput(os.Stdout)
	utils.ErrorLogger.SetOutput(os.Stderr)

	utils.InfoLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   true,
	})
	utils.ErrorLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   true,
	})
}

func main() {
	// Initialize DB
	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	// Set gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	autoMigrate(db)

	// Notifier queue untuk email/notifikasi reservasi (fire-and-forget)
	notifier := services.NewNotifier(db)
	notifier.Start()
	defer notifier.Stop()

	// Reminder monitor untuk reservasi besok
	reminderMonitor := services.NewReminderMonitor(db, notifier)
	reminderMonitor.Start()
	defer reminderMonitor.Stop()

	// Setup router
	r := router.SetupRouter(db, notifier)

	// Set trusted proxies
	r.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	// Run server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Listening on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.Restaurant{},
		&models.DepositTier{},
		&models.TableType{},
		&models.Table{},
		&models.ReservationLimit{},
		&models.ClosedDay{},
		&models.Reservation{},
		&models.Notification{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
