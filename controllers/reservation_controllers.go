package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/events"
	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/services"
	"github.com/yeremiapane/reservation-app/utils"
)

type ReservationController struct {
	DB      *gorm.DB
	Booking *services.BookingService
}

func NewReservationController(db *gorm.DB, booking *services.BookingService) *ReservationController {
	return &ReservationController{DB: db, Booking: booking}
}

// CreateReservation -> tamu memesan satu slot. Cek kapasitas diulang di
// BookingService dalam transaksi; kalah race -> 409, tamu diminta pilih slot lain.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Date           string `json:"date" binding:"required,dateformat"`
		Time           string `json:"time" binding:"required,clock"`
		People         int    `json:"people" binding:"required,min=1"`
		GuestName      string `json:"guest_name" binding:"required"`
		GuestEmail     string `json:"guest_email" binding:"omitempty,email"`
		GuestPhone     string `json:"guest_phone"`
		SpecialRequest string `json:"special_request"`
		Occasion       string `json:"occasion"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	reservation, err := rc.Booking.PlaceReservation(services.BookingRequest{
		RestaurantID:   restaurant.ID,
		Date:           req.Date,
		Time:           req.Time,
		People:         req.People,
		GuestName:      req.GuestName,
		GuestEmail:     req.GuestEmail,
		GuestPhone:     req.GuestPhone,
		SpecialRequest: req.SpecialRequest,
		Occasion:       req.Occasion,
	})
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	events.BroadcastReservationCreate(*reservation)
	utils.RespondJSON(c, http.StatusCreated, "Reservation created", reservation)
}

// GetReservationByCode -> tamu melihat reservasinya lewat kode konfirmasi
func (rc *ReservationController) GetReservationByCode(c *gin.Context) {
	code := c.Param("code")
	var reservation models.Reservation
	if err := rc.DB.Preload("Table").Where("code = ?", code).First(&reservation).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation detail", reservation)
}

// CancelByCode -> pembatalan oleh tamu; idempoten
func (rc *ReservationController) CancelByCode(c *gin.Context) {
	code := c.Param("code")
	reservation, err := rc.Booking.CancelByCode(code)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	events.BroadcastReservationCancel(*reservation)
	utils.InfoLogger.Printf("Reservation %s cancelled by guest", reservation.Code)
	utils.RespondJSON(c, http.StatusOK, "Reservation cancelled", reservation)
}

// ListByDate -> dashboard owner/staff: reservasi satu tanggal urut jam
func (rc *ReservationController) ListByDate(c *gin.Context) {
	restaurantID := c.Param("restaurant_id")
	date := c.Query("date")

	query := rc.DB.Preload("Table").Where("restaurant_id = ?", restaurantID)
	if date != "" {
		query = query.Where("date = ?", date)
	}

	var reservations []models.Reservation
	if err := query.Order("date ASC, time ASC").Find(&reservations).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of reservations", reservations)
}

// UpdateStatus -> owner/staff menandai seen/attended atau menempatkan meja
// (mode manual). Flag status dan pembatalan menyentuh kolom berbeda, jadi
// update staff tidak bentrok dengan cancel tamu.
func (rc *ReservationController) UpdateStatus(c *gin.Context) {
	reservationID := c.Param("reservation_id")
	var reservation models.Reservation
	if err := rc.DB.First(&reservation, reservationID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	var req struct {
		Seen     *bool `json:"seen"`
		Attended *bool `json:"attended"`
		TableID  *uint `json:"table_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	updates := map[string]interface{}{}
	if req.Seen != nil {
		updates["seen"] = *req.Seen
	}
	if req.Attended != nil {
		updates["attended"] = *req.Attended
	}
	if req.TableID != nil {
		var table models.Table
		if err := rc.DB.Where("id = ? AND restaurant_id = ?", *req.TableID, reservation.RestaurantID).
			First(&table).Error; err != nil {
			utils.RespondError(c, http.StatusNotFound, err)
			return
		}
		updates["table_id"] = table.ID
	}
	if len(updates) == 0 {
		utils.RespondJSON(c, http.StatusOK, "Nothing to update", reservation)
		return
	}

	if err := rc.DB.Model(&reservation).Updates(updates).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	rc.DB.First(&reservation, reservation.ID)
	events.BroadcastReservationUpdate(reservation)
	utils.RespondJSON(c, http.StatusOK, "Reservation updated", reservation)
}

// CancelReservation -> pembatalan oleh owner/staff; idempoten
func (rc *ReservationController) CancelReservation(c *gin.Context) {
	reservationID := c.Param("reservation_id")
	var reservation models.Reservation
	if err := rc.DB.First(&reservation, reservationID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, err)
		return
	}

	cancelled, err := rc.Booking.CancelReservation(reservation.ID)
	if err != nil {
		respondSchedulingError(c, err)
		return
	}

	events.BroadcastReservationCancel(*cancelled)
	utils.InfoLogger.Printf("Reservation %s cancelled by staff", cancelled.Code)
	utils.RespondJSON(c, http.StatusOK, "Reservation cancelled", cancelled)
}
