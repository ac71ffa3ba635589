package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/scheduling"
	"github.com/yeremiapane/reservation-app/services"
	"github.com/yeremiapane/reservation-app/utils"
)

type AvailabilityController struct {
	DB *gorm.DB
}

func NewAvailabilityController(db *gorm.DB) *AvailabilityController {
	return &AvailabilityController{DB: db}
}

// GetAvailability -> daftar slot yang bisa dipesan untuk (tanggal, jumlah tamu).
// Stateless: snapshot meja, limit, dan reservasi dibaca per request lalu
// diserahkan ke resolver murni; aman dipanggil paralel oleh banyak tamu.
func (ac *AvailabilityController) GetAvailability(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")

	var restaurant models.Restaurant
	if err := ac.DB.Preload("DepositTiers").First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	date := c.Query("date")
	people, err := strconv.Atoi(c.DefaultQuery("people", "0"))
	if err != nil {
		respondSchedulingError(c, &scheduling.ValidationError{Field: "people", Message: "must be a number"})
		return
	}

	closed, err := IsDateClosed(ac.DB, restaurant.ID, date)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var tables []models.Table
	if err := ac.DB.Preload("TableType").Where("restaurant_id = ?", restaurant.ID).
		Find(&tables).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var limitRows []models.ReservationLimit
	if err := ac.DB.Where("restaurant_id = ? AND date = ?", restaurant.ID, date).
		Find(&limitRows).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	limits := make(map[string]int, len(limitRows))
	for _, row := range limitRows {
		limits[row.TimeSlot] = row.MaxReservations
	}

	var reservations []models.Reservation
	if err := ac.DB.Where("restaurant_id = ? AND date = ?", restaurant.ID, date).
		Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	existing := make([]scheduling.ReservationInfo, 0, len(reservations))
	for _, r := range reservations {
		existing = append(existing, scheduling.ReservationInfo{
			Time:      r.Time,
			People:    r.People,
			TableID:   r.TableID,
			Cancelled: r.Cancelled,
		})
	}

	availability, err := scheduling.ResolveAvailability(
		services.SchedulingConfig(restaurant),
		date, people, time.Now(),
		services.TableInfos(tables),
		limits, existing, closed,
	)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Availability resolved", gin.H{
		"date":          date,
		"people":        people,
		"slots":         availability.Slots,
		"fallback_mode": availability.Fallback,
		"closed":        availability.Closed,
		"deposit_cost":  restaurant.DepositFor(people),
	})
}
