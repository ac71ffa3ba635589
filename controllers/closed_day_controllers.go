package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/events"
	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/utils"
)

type ClosedDayController struct {
	DB *gorm.DB
}

func NewClosedDayController(db *gorm.DB) *ClosedDayController {
	return &ClosedDayController{DB: db}
}

// CreateClosedDay -> tandai satu tanggal tutup
func (cc *ClosedDayController) CreateClosedDay(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	var restaurant models.Restaurant
	if err := cc.DB.First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Date   string `json:"date" binding:"required,dateformat"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	closedDay := models.ClosedDay{
		RestaurantID: restaurant.ID,
		Date:         req.Date,
		Reason:       req.Reason,
	}
	if err := cc.DB.Create(&closedDay).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.RespondError(c, http.StatusConflict, errors.New("date is already marked closed"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastMessage(events.Message{
		Event: events.EventClosedDayUpdate,
		Data:  closedDay,
	})
	utils.InfoLogger.Printf("Closed day added: restaurant=%d %s", restaurant.ID, closedDay.Date)
	utils.RespondJSON(c, http.StatusCreated, "Closed day added", closedDay)
}

// ListClosedDays -> kalender tutup satu restoran, urut tanggal
func (cc *ClosedDayController) ListClosedDays(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	var days []models.ClosedDay
	if err := cc.DB.Where("restaurant_id = ?", restaurantID).
		Order("date ASC").Find(&days).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of closed days", days)
}

// DeleteClosedDay -> buka kembali satu tanggal; idempoten
func (cc *ClosedDayController) DeleteClosedDay(c *gin.Context) {
	dayID := c.Param("day_id")
	if err := cc.DB.Delete(&models.ClosedDay{}, dayID).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastMessage(events.Message{
		Event: events.EventClosedDayUpdate,
		Data:  gin.H{"deleted_id": dayID},
	})
	utils.RespondJSON(c, http.StatusOK, "Closed day removed", gin.H{"id": dayID})
}

// IsDateClosed -> dipakai resolver availability sebelum menghitung slot
func IsDateClosed(db *gorm.DB, restaurantID uint, date string) (bool, error) {
	var count int64
	err := db.Model(&models.ClosedDay{}).
		Where("restaurant_id = ? AND date = ?", restaurantID, date).
		Count(&count).Error
	return count > 0, err
}
