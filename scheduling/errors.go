package scheduling

import (
	"errors"
	"fmt"
)

// ValidationError -> input tidak valid; Field menunjuk field yang bermasalah.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigurationError -> setting restoran belum lengkap (jam buka, durasi slot).
// Ditampilkan ke owner, bukan ke tamu.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

var (
	// ErrLimitConflict -> sudah ada reservation limit untuk slot tersebut
	ErrLimitConflict = errors.New("a reservation limit already exists for this slot")
	// ErrSlotFull -> kapasitas slot habis saat penulisan (kalah race dengan pemesan lain)
	ErrSlotFull = errors.New("slot is no longer available")
	// ErrClosedDay -> restoran tutup pada tanggal itu; berbeda dengan penuh
	ErrClosedDay = errors.New("restaurant is closed on this date")
	// ErrUnavailable -> storage bermasalah setelah retry di collaborator habis
	ErrUnavailable = errors.New("service temporarily unavailable")
)
