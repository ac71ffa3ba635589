package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/events"
	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/scheduling"
	"github.com/yeremiapane/reservation-app/utils"
)

type LimitController struct {
	DB *gorm.DB
}

func NewLimitController(db *gorm.DB) *LimitController {
	return &LimitController{DB: db}
}

// CreateLimit -> pasang override kapasitas untuk satu (tanggal, slot).
// Maksimal satu limit per slot: duplikat ditolak 409, dijaga unique index
// supaya dua owner yang menulis bersamaan tidak lolos dua-duanya.
func (lc *LimitController) CreateLimit(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	var restaurant models.Restaurant
	if err := lc.DB.First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Date            string `json:"date" binding:"required,dateformat"`
		TimeSlot        string `json:"time_slot" binding:"required,clock"`
		MaxReservations int    `json:"max_reservations" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	limit := models.ReservationLimit{
		RestaurantID:    restaurant.ID,
		Date:            req.Date,
		TimeSlot:        req.TimeSlot,
		MaxReservations: req.MaxReservations,
	}

	if err := lc.DB.Create(&limit).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respondSchedulingError(c, scheduling.ErrLimitConflict)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastLimitUpdate(limit)
	utils.InfoLogger.Printf("Reservation limit set: restaurant=%d %s %s max=%d",
		restaurant.ID, limit.Date, limit.TimeSlot, limit.MaxReservations)
	utils.RespondJSON(c, http.StatusCreated, "Reservation limit created", limit)
}

// UpdateLimit -> ubah max_reservations satu limit
func (lc *LimitController) UpdateLimit(c *gin.Context) {
	limitID := c.Param("limit_id")
	var limit models.ReservationLimit
	if err := lc.DB.First(&limit, limitID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		MaxReservations int `json:"max_reservations" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	limit.MaxReservations = req.MaxReservations
	if err := lc.DB.Save(&limit).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastLimitUpdate(limit)
	utils.InfoLogger.Printf("Reservation limit %d updated to max=%d", limit.ID, limit.MaxReservations)
	utils.RespondJSON(c, http.StatusOK, "Reservation limit updated", limit)
}

// DeleteLimit -> hapus limit; idempoten, baris yang sudah tidak ada bukan error
func (lc *LimitController) DeleteLimit(c *gin.Context) {
	limitID := c.Param("limit_id")

	if err := lc.DB.Delete(&models.ReservationLimit{}, limitID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastLimitUpdate(gin.H{"deleted_id": limitID})
	utils.RespondJSON(c, http.StatusOK, "Reservation limit deleted", gin.H{"id": limitID})
}

// ListLimits -> seluruh limit satu restoran, urut tanggal lalu slot
func (lc *LimitController) ListLimits(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	var limits []models.ReservationLimit
	if err := lc.DB.Where("restaurant_id = ?", restaurantID).
		Order("date ASC, time_slot ASC").Find(&limits).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservation limits", limits)
}
