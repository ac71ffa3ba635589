package scheduling

import (
	"fmt"
	"strconv"
	"strings"
)

// GenerateTimeSlots -> menghasilkan daftar slot "HH:MM" mulai dari startTime,
// bertambah durationMinutes, berhenti tepat sebelum endTime. Slot terakhir
// boleh berakhir melewati jam tutup: hanya jam mulai yang dicek terhadap
// endTime (kebijakan yang disengaja, bukan lupa cek batas akhir).
// Jam operasional harus dalam satu hari; melewati tengah malam ditolak.
func GenerateTimeSlots(startTime, endTime string, durationMinutes int) ([]string, error) {
	if durationMinutes < 1 {
		return nil, &ValidationError{Field: "slot_duration_minutes", Message: "must be a positive number of minutes"}
	}

	start, err := parseClock(startTime)
	if err != nil {
		return nil, &ValidationError{Field: "open_time", Message: err.Error()}
	}
	end, err := parseClock(endTime)
	if err != nil {
		return nil, &ValidationError{Field: "close_time", Message: err.Error()}
	}
	if end <= start {
		return nil, &ValidationError{Field: "close_time", Message: "must be after open_time on the same day"}
	}

	var slots []string
	for t := start; t < end; t += durationMinutes {
		// menit yang melebihi 59 dibawa ke komponen jam
		slots = append(slots, fmt.Sprintf("%02d:%02d", t/60, t%60))
	}
	return slots, nil
}

// parseClock -> "HH:MM" ke menit sejak tengah malam
func parseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%q is not a valid HH:MM time", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("%q is not a valid HH:MM time", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%q is not a valid HH:MM time", s)
	}
	return hour*60 + minute, nil
}
