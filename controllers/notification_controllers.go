package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/utils"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// ListNotifications -> notifikasi satu restoran, terbaru dulu
func (nc *NotificationController) ListNotifications(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")

	query := nc.DB.Where("restaurant_id = ?", restaurantID)
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var notifs []models.Notification
	if err := query.Order("created_at DESC").Limit(100).Find(&notifs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of notifications", notifs)
}

// GetNotificationByID
func (nc *NotificationController) GetNotificationByID(c *gin.Context) {
	idStr := c.Param("notif_id")
	id, _ := strconv.Atoi(idStr)

	var notif models.Notification
	if err := nc.DB.First(&notif, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Notification detail", notif)
}

// DeleteNotification
func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	idStr := c.Param("notif_id")
	id, _ := strconv.Atoi(idStr)

	if err := nc.DB.Delete(&models.Notification{}, id).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Notification deleted", gin.H{"notif_id": id})
}
