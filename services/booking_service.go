package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/scheduling"
	"github.com/yeremiapane/reservation-app/utils"
)

// BookingService menegakkan kapasitas slot pada saat penulisan. Availability
// yang dilihat tamu hanyalah read; cek kapasitas diulang di sini dalam satu
// transaksi supaya dua tamu yang berebut kursi terakhir tidak dua-duanya lolos.
type BookingService struct {
	db       *gorm.DB
	notifier *Notifier
}

func NewBookingService(db *gorm.DB, notifier *Notifier) *BookingService {
	return &BookingService{db: db, notifier: notifier}
}

type BookingRequest struct {
	RestaurantID   uint
	Date           string // "YYYY-MM-DD"
	Time           string // "HH:MM"
	People         int
	GuestName      string
	GuestEmail     string
	GuestPhone     string
	SpecialRequest string
	Occasion       string
}

// PlaceReservation -> validasi, lalu count-then-insert dalam satu transaksi
// dengan row lock pada reservasi slot yang sama. Mode automatic sekaligus
// mengunci meja best-fit; mode manual membiarkan table_id kosong untuk staff.
// Notifikasi dikirim fire-and-forget setelah commit; gagal kirim tidak
// membatalkan reservasi.
func (s *BookingService) PlaceReservation(req BookingRequest) (*models.Reservation, error) {
	if err := validateBookingRequest(req); err != nil {
		return nil, err
	}

	var restaurant models.Restaurant
	if err := s.db.Preload("DepositTiers").First(&restaurant, req.RestaurantID).Error; err != nil {
		return nil, err
	}
	cfg := SchedulingConfig(restaurant)

	// tanggal tutup ditolak sebelum menyentuh kapasitas
	var closedCount int64
	if err := s.db.Model(&models.ClosedDay{}).
		Where("restaurant_id = ? AND date = ?", req.RestaurantID, req.Date).
		Count(&closedCount).Error; err != nil {
		return nil, err
	}
	if closedCount > 0 {
		return nil, scheduling.ErrClosedDay
	}

	// slot harus ada di grid durasi restoran
	slots, err := scheduling.GenerateTimeSlots(cfg.OpenTime, cfg.CloseTime, cfg.SlotDurationMinutes)
	if err != nil {
		return nil, err
	}
	if !containsSlot(slots, req.Time) {
		return nil, &scheduling.ValidationError{Field: "time", Message: "is not a bookable slot for this restaurant"}
	}

	now := time.Now()
	if req.Date == now.Format("2006-01-02") && req.Time < now.Format("15:04") {
		return nil, &scheduling.ValidationError{Field: "time", Message: "slot start time has already passed"}
	}

	reservation := models.Reservation{
		Code:           uuid.NewString(),
		RestaurantID:   req.RestaurantID,
		Date:           req.Date,
		Time:           req.Time,
		People:         req.People,
		GuestName:      req.GuestName,
		GuestEmail:     req.GuestEmail,
		GuestPhone:     req.GuestPhone,
		SpecialRequest: req.SpecialRequest,
		Occasion:       req.Occasion,
		DepositCost:    restaurant.DepositFor(req.People),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Serialisasi count-then-insert dengan mengunci baris restoran, bukan
		// baris reservasi slot: pada slot kosong SELECT reservasi tidak
		// menemukan baris apapun untuk dikunci, dan di MySQL dua pemesan bisa
		// sama-sama lolos (READ COMMITTED) atau saling deadlock (REPEATABLE
		// READ, gap lock). Baris restoran selalu ada. SQLite tidak mengenal
		// FOR UPDATE; transaksi single-writer-nya sudah menserialkan penulisan.
		if tx.Dialector.Name() != "sqlite" {
			var locked models.Restaurant
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&locked, req.RestaurantID).Error; err != nil {
				return err
			}
		}

		var existing []models.Reservation
		if err := tx.Where("restaurant_id = ? AND date = ? AND time = ? AND cancelled = ?",
			req.RestaurantID, req.Date, req.Time, false).Find(&existing).Error; err != nil {
			return err
		}

		limit, err := slotLimit(tx, req.RestaurantID, req.Date, req.Time)
		if err != nil {
			return err
		}

		tables, err := tableSnapshot(tx, req.RestaurantID)
		if err != nil {
			return err
		}

		tableID, err := scheduling.PlanBooking(cfg, req.People, tables, limit, reservationInfos(existing))
		if err != nil {
			return err
		}
		reservation.TableID = tableID

		return tx.Create(&reservation).Error
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.ReservationCreated(reservation)
	}
	utils.InfoLogger.Printf("Reservation %s placed: restaurant=%d %s %s people=%d",
		reservation.Code, reservation.RestaurantID, reservation.Date, reservation.Time, reservation.People)

	return &reservation, nil
}

// CancelReservation -> set flag cancelled. Idempoten: membatalkan reservasi
// yang sudah batal bukan error dan tidak membebaskan kapasitas dua kali.
func (s *BookingService) CancelReservation(reservationID uint) (*models.Reservation, error) {
	var reservation models.Reservation
	changed := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		query := tx.Model(&models.Reservation{}).Where("id = ?", reservationID)
		if tx.Dialector.Name() != "sqlite" {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var found []models.Reservation
		if err := query.Find(&found).Error; err != nil {
			return err
		}
		if len(found) == 0 {
			return gorm.ErrRecordNotFound
		}
		reservation = found[0]
		if reservation.Cancelled {
			return nil // sudah batal, no-op
		}
		reservation.Cancelled = true
		changed = true
		return tx.Model(&models.Reservation{}).Where("id = ?", reservation.ID).
			Update("cancelled", true).Error
	})
	if err != nil {
		return nil, err
	}

	// Notifikasi hanya saat flag benar-benar berubah di panggilan ini;
	// cancel ulang yang no-op tidak mengirim email kedua ke tamu.
	if changed && s.notifier != nil {
		s.notifier.ReservationCancelled(reservation)
	}
	return &reservation, nil
}

// CancelByCode -> pembatalan oleh tamu lewat kode konfirmasi
func (s *BookingService) CancelByCode(code string) (*models.Reservation, error) {
	var reservation models.Reservation
	if err := s.db.Where("code = ?", code).First(&reservation).Error; err != nil {
		return nil, err
	}
	return s.CancelReservation(reservation.ID)
}

// SchedulingConfig -> snapshot setting restoran untuk paket scheduling
func SchedulingConfig(r models.Restaurant) scheduling.Config {
	return scheduling.Config{
		OpenTime:               r.OpenTime,
		CloseTime:              r.CloseTime,
		SlotDurationMinutes:    r.SlotDurationMinutes,
		AssignmentMode:         r.TableAssignmentMode,
		DefaultSlotCapacity:    r.DefaultSlotCapacity,
		CapacityBasis:          r.CapacityBasis,
		AllowHeadcountFallback: r.AllowHeadcountFallback,
	}
}

func validateBookingRequest(req BookingRequest) error {
	if req.People < 1 {
		return &scheduling.ValidationError{Field: "people", Message: "party size must be at least 1"}
	}
	if req.GuestName == "" {
		return &scheduling.ValidationError{Field: "guest_name", Message: "is required"}
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return &scheduling.ValidationError{Field: "date", Message: "must be formatted YYYY-MM-DD"}
	}
	return nil
}

func containsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}

// slotLimit -> override owner untuk (restoran, tanggal, slot); nil kalau tidak ada
func slotLimit(tx *gorm.DB, restaurantID uint, date, slot string) (*int, error) {
	var limit models.ReservationLimit
	err := tx.Where("restaurant_id = ? AND date = ? AND time_slot = ?", restaurantID, date, slot).
		First(&limit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &limit.MaxReservations, nil
}

func tableSnapshot(tx *gorm.DB, restaurantID uint) ([]scheduling.TableInfo, error) {
	var tables []models.Table
	if err := tx.Preload("TableType").Where("restaurant_id = ?", restaurantID).Find(&tables).Error; err != nil {
		return nil, err
	}
	return TableInfos(tables), nil
}

// TableInfos -> konversi model meja ke snapshot scheduling
func TableInfos(tables []models.Table) []scheduling.TableInfo {
	infos := make([]scheduling.TableInfo, 0, len(tables))
	for _, t := range tables {
		infos = append(infos, scheduling.TableInfo{
			TableID:     t.ID,
			TableTypeID: t.TableTypeID,
			TableNumber: t.TableNumber,
			Capacity:    t.Capacity,
			MinCovers:   t.TableType.MinCovers,
			MaxCovers:   t.TableType.MaxCovers,
		})
	}
	return infos
}

func reservationInfos(reservations []models.Reservation) []scheduling.ReservationInfo {
	infos := make([]scheduling.ReservationInfo, 0, len(reservations))
	for _, r := range reservations {
		infos = append(infos, scheduling.ReservationInfo{
			Time:      r.Time,
			People:    r.People,
			TableID:   r.TableID,
			Cancelled: r.Cancelled,
		})
	}
	return infos
}
