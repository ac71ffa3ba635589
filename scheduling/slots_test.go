package scheduling

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateTimeSlotsTwoHourGrid(t *testing.T) {
	slots, err := GenerateTimeSlots("12:00", "22:00", 120)
	assert.NoError(t, err)
	assert.Equal(t, []string{"12:00", "14:00", "16:00", "18:00", "20:00"}, slots)
}

func TestGenerateTimeSlotsMinuteCarry(t *testing.T) {
	// Durasi 45 menit tidak membagi jam rata; overflow menit harus dibawa ke jam
	slots, err := GenerateTimeSlots("10:00", "12:00", 45)
	assert.NoError(t, err)
	assert.Equal(t, []string{"10:00", "10:45", "11:30"}, slots)
}

func TestGenerateTimeSlotsLastSlotMayOverrunClose(t *testing.T) {
	// Hanya jam mulai yang dicek terhadap jam tutup; 13:00 tetap ditawarkan
	// walau 13:00+60 melewati 13:30
	slots, err := GenerateTimeSlots("12:00", "13:30", 60)
	assert.NoError(t, err)
	assert.Equal(t, []string{"12:00", "13:00"}, slots)
}

func TestGenerateTimeSlotsGridAlignment(t *testing.T) {
	for _, duration := range []int{15, 30, 45, 60, 90, 120} {
		slots, err := GenerateTimeSlots("09:30", "23:00", duration)
		assert.NoError(t, err)
		assert.NotEmpty(t, slots)
		for i, slot := range slots {
			hour, _ := strconv.Atoi(slot[:2])
			minute, _ := strconv.Atoi(slot[3:])
			total := hour*60 + minute
			assert.Equal(t, 0, (total-(9*60+30))%duration, "slot %s off the %d-minute grid", slot, duration)
			assert.Less(t, total, 23*60, "slot %s starts at or after close", slot)
			if i > 0 {
				assert.Greater(t, slot, slots[i-1], "slots out of order")
			}
		}
	}
}

func TestGenerateTimeSlotsIdempotent(t *testing.T) {
	first, err := GenerateTimeSlots("12:00", "22:00", 30)
	assert.NoError(t, err)
	second, err := GenerateTimeSlots("12:00", "22:00", 30)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateTimeSlotsInvalidInput(t *testing.T) {
	cases := []struct {
		name     string
		start    string
		end      string
		duration int
	}{
		{"zero duration", "12:00", "22:00", 0},
		{"negative duration", "12:00", "22:00", -30},
		{"malformed start", "9:00", "22:00", 60},
		{"malformed end", "12:00", "22h00", 60},
		{"hour out of range", "25:00", "26:00", 60},
		{"minute out of range", "12:61", "22:00", 60},
		{"end equals start", "12:00", "12:00", 60},
		{"crosses midnight", "22:00", "02:00", 60},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slots, err := GenerateTimeSlots(tc.start, tc.end, tc.duration)
			assert.Error(t, err)
			assert.Nil(t, slots)
			var verr *ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}
