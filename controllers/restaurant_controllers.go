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

type RestaurantController struct {
	DB *gorm.DB
}

func NewRestaurantController(db *gorm.DB) *RestaurantController {
	return &RestaurantController{DB: db}
}

// CreateRestaurant -> onboarding owner
func (rc *RestaurantController) CreateRestaurant(c *gin.Context) {
	var req struct {
		Name                string `json:"name" binding:"required"`
		OpenTime            string `json:"open_time" binding:"required,clock"`
		CloseTime           string `json:"close_time" binding:"required,clock"`
		SlotDurationMinutes int    `json:"slot_duration_minutes" binding:"required,min=1"`
		TableAssignmentMode string `json:"table_assignment_mode"`
		DefaultSlotCapacity int    `json:"default_slot_capacity"`
		CapacityBasis       string `json:"capacity_basis"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	userID, _ := c.Get("userID")

	restaurant := models.Restaurant{
		OwnerID:                userID.(uint),
		Name:                   req.Name,
		OpenTime:               req.OpenTime,
		CloseTime:              req.CloseTime,
		SlotDurationMinutes:    req.SlotDurationMinutes,
		TableAssignmentMode:    scheduling.ModeAutomatic,
		DefaultSlotCapacity:    req.DefaultSlotCapacity,
		CapacityBasis:          scheduling.BasisReservations,
		AllowHeadcountFallback: true,
	}
	if req.TableAssignmentMode != "" {
		if req.TableAssignmentMode != scheduling.ModeAutomatic && req.TableAssignmentMode != scheduling.ModeManual {
			utils.RespondError(c, http.StatusBadRequest, errors.New("table_assignment_mode must be automatic or manual"))
			return
		}
		restaurant.TableAssignmentMode = req.TableAssignmentMode
	}
	if req.CapacityBasis != "" {
		if req.CapacityBasis != scheduling.BasisReservations && req.CapacityBasis != scheduling.BasisCovers {
			utils.RespondError(c, http.StatusBadRequest, errors.New("capacity_basis must be reservations or covers"))
			return
		}
		restaurant.CapacityBasis = req.CapacityBasis
	}

	// slot grid harus valid sebelum disimpan
	if _, err := scheduling.GenerateTimeSlots(req.OpenTime, req.CloseTime, req.SlotDurationMinutes); err != nil {
		respondSchedulingError(c, err)
		return
	}

	if err := rc.DB.Create(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New restaurant created: %s (id=%d)", restaurant.Name, restaurant.ID)
	utils.RespondJSON(c, http.StatusCreated, "Restaurant created", restaurant)
}

// GetRestaurant -> detail satu restoran beserta deposit tiers
func (rc *RestaurantController) GetRestaurant(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	var restaurant models.Restaurant
	if err := rc.DB.Preload("DepositTiers").First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant detail", restaurant)
}

// UpdateSettings -> owner mengubah jam reservasi, durasi slot, dan kapasitas
func (rc *RestaurantController) UpdateSettings(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Name                   *string `json:"name"`
		OpenTime               *string `json:"open_time" binding:"omitempty,clock"`
		CloseTime              *string `json:"close_time" binding:"omitempty,clock"`
		SlotDurationMinutes    *int    `json:"slot_duration_minutes" binding:"omitempty,min=1"`
		DefaultSlotCapacity    *int    `json:"default_slot_capacity" binding:"omitempty,min=0"`
		CapacityBasis          *string `json:"capacity_basis"`
		AllowHeadcountFallback *bool   `json:"allow_headcount_fallback"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		restaurant.Name = *req.Name
	}
	if req.OpenTime != nil {
		restaurant.OpenTime = *req.OpenTime
	}
	if req.CloseTime != nil {
		restaurant.CloseTime = *req.CloseTime
	}
	if req.SlotDurationMinutes != nil {
		restaurant.SlotDurationMinutes = *req.SlotDurationMinutes
	}
	if req.DefaultSlotCapacity != nil {
		restaurant.DefaultSlotCapacity = *req.DefaultSlotCapacity
	}
	if req.CapacityBasis != nil {
		if *req.CapacityBasis != scheduling.BasisReservations && *req.CapacityBasis != scheduling.BasisCovers {
			utils.RespondError(c, http.StatusBadRequest, errors.New("capacity_basis must be reservations or covers"))
			return
		}
		restaurant.CapacityBasis = *req.CapacityBasis
	}
	if req.AllowHeadcountFallback != nil {
		restaurant.AllowHeadcountFallback = *req.AllowHeadcountFallback
	}

	if _, err := scheduling.GenerateTimeSlots(restaurant.OpenTime, restaurant.CloseTime, restaurant.SlotDurationMinutes); err != nil {
		respondSchedulingError(c, err)
		return
	}

	if err := rc.DB.Save(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastMessage(events.Message{
		Event: events.EventSettingsUpdate,
		Data:  restaurant,
	})

	utils.InfoLogger.Printf("Restaurant %d settings updated", restaurant.ID)
	utils.RespondJSON(c, http.StatusOK, "Restaurant settings updated", restaurant)
}

// ChangeAssignmentMode -> ganti mode penempatan meja. Butuh konfirmasi
// eksplisit karena mempengaruhi UX booking yang sedang berjalan. Reservasi
// lama tidak diubah: table_id yang sudah terisi tetap; hanya booking baru yang
// mengikuti mode baru.
func (rc *RestaurantController) ChangeAssignmentMode(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Mode    string `json:"table_assignment_mode" binding:"required"`
		Confirm bool   `json:"confirm"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Mode != scheduling.ModeAutomatic && req.Mode != scheduling.ModeManual {
		utils.RespondError(c, http.StatusBadRequest, errors.New("table_assignment_mode must be automatic or manual"))
		return
	}
	if !req.Confirm {
		utils.RespondError(c, http.StatusBadRequest, errors.New("mode switch requires explicit confirmation"))
		return
	}

	restaurant.TableAssignmentMode = req.Mode
	if err := rc.DB.Save(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	events.BroadcastMessage(events.Message{
		Event: events.EventSettingsUpdate,
		Data:  restaurant,
	})

	utils.InfoLogger.Printf("Restaurant %d assignment mode changed to %s", restaurant.ID, req.Mode)
	utils.RespondJSON(c, http.StatusOK, "Assignment mode updated", restaurant)
}

// SetDepositTiers -> ganti seluruh tier deposit (party size -> biaya)
func (rc *RestaurantController) SetDepositTiers(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Tiers []struct {
			MinPeople int     `json:"min_people" binding:"required,min=1"`
			Cost      float64 `json:"cost" binding:"min=0"`
		} `json:"tiers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	err := rc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("restaurant_id = ?", restaurant.ID).Delete(&models.DepositTier{}).Error; err != nil {
			return err
		}
		for _, tier := range req.Tiers {
			row := models.DepositTier{
				RestaurantID: restaurant.ID,
				MinPeople:    tier.MinPeople,
				Cost:         tier.Cost,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	rc.DB.Preload("DepositTiers").First(&restaurant, restaurant.ID)
	utils.RespondJSON(c, http.StatusOK, "Deposit tiers updated", restaurant.DepositTiers)
}
