package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/utils"
)

// ReminderMonitor memindai reservasi besok secara berkala dan mengantrekan
// notifikasi pengingat lewat Notifier. Pengingat tidak dikirim ulang: kirim
// pertama tercatat sebagai baris Notification dan dipakai sebagai penanda.
type ReminderMonitor struct {
	DB       *gorm.DB
	Notifier *Notifier
	StopChan chan struct{}
	Interval time.Duration
}

func NewReminderMonitor(db *gorm.DB, notifier *Notifier) *ReminderMonitor {
	return &ReminderMonitor{
		DB:       db,
		Notifier: notifier,
		StopChan: make(chan struct{}),
		Interval: 15 * time.Minute,
	}
}

func (rm *ReminderMonitor) Start() {
	go func() {
		ticker := time.NewTicker(rm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rm.checkUpcoming()
			case <-rm.StopChan:
				return
			}
		}
	}()
}

func (rm *ReminderMonitor) Stop() {
	close(rm.StopChan)
}

func (rm *ReminderMonitor) checkUpcoming() {
	tomorrow := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	var due []models.Reservation
	err := rm.DB.
		Where("date = ? AND cancelled = ?", tomorrow, false).
		Where("id NOT IN (?)", rm.DB.Model(&models.Notification{}).
			Select("reservation_id").
			Where("kind = ? AND reservation_id IS NOT NULL", models.NotificationReservationReminder)).
		Find(&due).Error
	if err != nil {
		utils.ErrorLogger.Printf("Error fetching reservations due for reminder: %v", err)
		return
	}

	if len(due) > 0 {
		utils.InfoLogger.Printf("Queueing %d reservation reminders for %s", len(due), tomorrow)
	}
	for _, reservation := range due {
		rm.Notifier.ReservationReminder(reservation)
	}
}
