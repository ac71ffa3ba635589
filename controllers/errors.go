package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/scheduling"
	"github.com/yeremiapane/reservation-app/utils"
)

// respondSchedulingError -> petakan error domain ke status HTTP. Error
// kapasitas dan konflik dikembalikan 409 dengan pesan yang bisa dibedakan
// client: tamu harus disuruh pilih slot lain, bukan diberi error generik.
func respondSchedulingError(c *gin.Context, err error) {
	var verr *scheduling.ValidationError
	var cerr *scheduling.ConfigurationError

	switch {
	case errors.As(err, &verr):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.As(err, &cerr):
		utils.RespondError(c, http.StatusUnprocessableEntity, err)
	case errors.Is(err, scheduling.ErrSlotFull):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, scheduling.ErrClosedDay):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, scheduling.ErrLimitConflict):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, gorm.ErrRecordNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, scheduling.ErrUnavailable)
	}
}
