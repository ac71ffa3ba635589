package scheduling

import (
	"time"
)

// Mode penempatan meja. Automatic: tamu langsung dapat meja, kapasitas dihitung
// dari table-fit. Manual: staff menempatkan meja belakangan, kapasitas dihitung
// dari headcount restoran.
const (
	ModeAutomatic = "automatic"
	ModeManual    = "manual"
)

// Basis ceiling kapasitas di mode manual
const (
	BasisReservations = "reservations"
	BasisCovers       = "covers"
)

// Config adalah snapshot setting restoran yang dibutuhkan resolver. Semua
// input dilewatkan eksplisit; tidak ada state tersembunyi di level paket.
type Config struct {
	OpenTime               string // "HH:MM"
	CloseTime              string // "HH:MM"
	SlotDurationMinutes    int
	AssignmentMode         string // ModeAutomatic | ModeManual
	DefaultSlotCapacity    int    // ceiling mode manual; 0 = pakai total kursi
	CapacityBasis          string // BasisReservations | BasisCovers
	AllowHeadcountFallback bool
}

// ReservationInfo adalah snapshot reservasi yang sudah ada pada satu tanggal.
type ReservationInfo struct {
	Time      string // "HH:MM"
	People    int
	TableID   *uint
	Cancelled bool
}

// Availability adalah hasil akhir untuk satu (tanggal, jumlah tamu).
type Availability struct {
	Slots    []string `json:"slots"`
	Fallback bool     `json:"fallback_mode"`
	Closed   bool     `json:"closed"`
}

// ResolveAvailability -> daftar slot yang bisa dipesan untuk satu tanggal dan
// jumlah tamu. Fungsi murni atas snapshot yang dilewatkan caller; aman
// dipanggil paralel oleh banyak tamu.
//
// closed menandakan tanggal ada di kalender tutup; hasilnya slot kosong dengan
// Closed=true, dibedakan dari "tidak ada kapasitas".
func ResolveAvailability(cfg Config, date string, people int, now time.Time, tables []TableInfo, limits map[string]int, existing []ReservationInfo, closed bool) (Availability, error) {
	if err := checkConfig(cfg); err != nil {
		return Availability{}, err
	}
	if people < 1 {
		return Availability{}, &ValidationError{Field: "people", Message: "party size must be at least 1"}
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return Availability{}, &ValidationError{Field: "date", Message: "must be formatted YYYY-MM-DD"}
	}

	if closed {
		return Availability{Closed: true}, nil
	}

	candidates, err := GenerateTimeSlots(cfg.OpenTime, cfg.CloseTime, cfg.SlotDurationMinutes)
	if err != nil {
		return Availability{}, err
	}

	perSlot := make(map[string][]ReservationInfo)
	for _, r := range existing {
		if r.Cancelled {
			continue
		}
		perSlot[r.Time] = append(perSlot[r.Time], r)
	}

	fallback := fallbackActive(cfg, people, tables)

	today := now.Format("2006-01-02")
	nowClock := now.Format("15:04")

	var slots []string
	for _, slot := range candidates {
		// slot yang jam mulainya sudah lewat tidak ditawarkan
		if date == today && slot < nowClock {
			continue
		}
		var limit *int
		if max, ok := limits[slot]; ok {
			limit = &max
		}
		if _, err := PlanBooking(cfg, people, tables, limit, perSlot[slot]); err == nil {
			slots = append(slots, slot)
		}
	}

	return Availability{Slots: slots, Fallback: fallback}, nil
}

// PlanBooking -> cek kapasitas satu slot dan (mode automatic) pilih meja
// best-fit yang masih kosong. Mengembalikan ErrSlotFull bila kapasitas habis.
// Dipakai resolver per slot dan dipakai ulang oleh enforcer di dalam transaksi
// tulis, supaya pembacaan availability dan penulisan booking tidak pernah
// beda aturan.
func PlanBooking(cfg Config, people int, tables []TableInfo, limit *int, existing []ReservationInfo) (*uint, error) {
	if err := checkConfig(cfg); err != nil {
		return nil, err
	}
	if people < 1 {
		return nil, &ValidationError{Field: "people", Message: "party size must be at least 1"}
	}

	count := 0
	covers := 0
	taken := make(map[uint]bool)
	for _, r := range existing {
		if r.Cancelled {
			continue
		}
		count++
		covers += r.People
		if r.TableID != nil {
			taken[*r.TableID] = true
		}
	}

	// Override dari owner menggantikan kapasitas turunan meja sepenuhnya:
	// hanya max_reservations yang mengikat. Di mode automatic meja tetap
	// dipilih kalau ada yang kosong; kalau tidak ada, table_id dibiarkan
	// kosong untuk diurus staff.
	if limit != nil {
		if count >= *limit {
			return nil, ErrSlotFull
		}
		if cfg.AssignmentMode == ModeAutomatic {
			if id := pickTable(tables, people, taken); id != nil {
				return id, nil
			}
		}
		return nil, nil
	}

	switch cfg.AssignmentMode {
	case ModeAutomatic:
		fit := FitTables(tables, people)
		if len(fit) == 0 {
			// tidak ada tipe meja yang muat; degradasi ke headcount bila
			// kebijakan fallback aktif dan restoran memang punya meja
			if fallbackActive(cfg, people, tables) {
				if err := headcountCheck(cfg, people, tables, count, covers); err != nil {
					return nil, err
				}
				return nil, nil
			}
			return nil, ErrSlotFull
		}
		if count >= TotalCapacity(fit) {
			return nil, ErrSlotFull
		}
		for _, t := range fit {
			if !taken[t.TableID] {
				id := t.TableID
				return &id, nil
			}
		}
		return nil, ErrSlotFull
	case ModeManual:
		if err := headcountCheck(cfg, people, tables, count, covers); err != nil {
			return nil, err
		}
		return nil, nil
	default:
		return nil, &ConfigurationError{Message: "unknown table assignment mode: " + cfg.AssignmentMode}
	}
}

func checkConfig(cfg Config) error {
	if cfg.OpenTime == "" || cfg.CloseTime == "" {
		return &ConfigurationError{Message: "restaurant reservation hours are not configured"}
	}
	if cfg.SlotDurationMinutes < 1 {
		return &ConfigurationError{Message: "restaurant slot duration is not configured"}
	}
	return nil
}

// fallbackActive -> mode automatic tanpa satu pun meja yang muat, tapi
// restoran punya inventaris; slot tetap ditawarkan berbasis headcount dengan
// catatan "hubungi restoran".
func fallbackActive(cfg Config, people int, tables []TableInfo) bool {
	return cfg.AssignmentMode == ModeAutomatic &&
		cfg.AllowHeadcountFallback &&
		len(tables) > 0 &&
		len(FitTables(tables, people)) == 0
}

func pickTable(tables []TableInfo, people int, taken map[uint]bool) *uint {
	for _, t := range FitTables(tables, people) {
		if !taken[t.TableID] {
			id := t.TableID
			return &id
		}
	}
	return nil
}

func headcountCheck(cfg Config, people int, tables []TableInfo, count, covers int) error {
	ceiling := cfg.DefaultSlotCapacity
	if ceiling < 1 {
		ceiling = TotalCapacity(tables)
	}
	if ceiling < 1 {
		return &ConfigurationError{Message: "restaurant has no slot capacity configured"}
	}
	if cfg.CapacityBasis == BasisCovers {
		if covers+people > ceiling {
			return ErrSlotFull
		}
		return nil
	}
	if count >= ceiling {
		return ErrSlotFull
	}
	return nil
}
