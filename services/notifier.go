package services

import (
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/yeremiapane/reservation-app/events"
	"github.com/yeremiapane/reservation-app/models"
	"github.com/yeremiapane/reservation-app/utils"
)

// Notifier mengirim notifikasi reservasi secara asinkron lewat worker pool
// berukuran tetap. Enqueue tidak pernah memblokir booking: kalau antrean
// penuh, job dibuang dan dicatat sebagai error.
type Notifier struct {
	DB      *gorm.DB
	Workers int

	queue chan notifyJob
	wg    sync.WaitGroup
	once  sync.Once
}

type notifyJob struct {
	kind        string
	reservation models.Reservation
}

func NewNotifier(db *gorm.DB) *Notifier {
	return &Notifier{
		DB:      db,
		Workers: 4,
		queue:   make(chan notifyJob, 64),
	}
}

func (n *Notifier) Start() {
	for i := 0; i < n.Workers; i++ {
		n.wg.Add(1)
		go n.worker()
	}
}

// Stop -> tutup antrean dan tunggu worker menghabiskan job tersisa
func (n *Notifier) Stop() {
	n.once.Do(func() {
		close(n.queue)
	})
	n.wg.Wait()
}

func (n *Notifier) ReservationCreated(r models.Reservation) {
	n.enqueue(notifyJob{kind: models.NotificationReservationCreated, reservation: r})
}

func (n *Notifier) ReservationCancelled(r models.Reservation) {
	n.enqueue(notifyJob{kind: models.NotificationReservationCancelled, reservation: r})
}

func (n *Notifier) ReservationReminder(r models.Reservation) {
	n.enqueue(notifyJob{kind: models.NotificationReservationReminder, reservation: r})
}

func (n *Notifier) enqueue(job notifyJob) {
	select {
	case n.queue <- job:
	default:
		utils.ErrorLogger.Printf("Notification queue full, dropping %s for reservation %s",
			job.kind, job.reservation.Code)
	}
}

func (n *Notifier) worker() {
	defer n.wg.Done()
	for job := range n.queue {
		n.deliver(job)
	}
}

func (n *Notifier) deliver(job notifyJob) {
	r := job.reservation

	var message string
	switch job.kind {
	case models.NotificationReservationCreated:
		message = fmt.Sprintf("Reservation for %s on %s at %s (%d people) confirmed",
			r.GuestName, r.Date, r.Time, r.People)
		if r.DepositCost > 0 {
			message += fmt.Sprintf(", deposit Rp %s", utils.FormatCurrency(r.DepositCost))
		}
	case models.NotificationReservationCancelled:
		message = fmt.Sprintf("Reservation for %s on %s at %s was cancelled",
			r.GuestName, r.Date, r.Time)
	case models.NotificationReservationReminder:
		message = fmt.Sprintf("Reminder: %s has a reservation tomorrow (%s) at %s for %d people",
			r.GuestName, r.Date, r.Time, r.People)
	default:
		utils.ErrorLogger.Printf("Unknown notification kind: %s", job.kind)
		return
	}

	notification := models.Notification{
		RestaurantID:  r.RestaurantID,
		ReservationID: &r.ID,
		Kind:          job.kind,
		Message:       message,
	}
	if err := n.DB.Create(&notification).Error; err != nil {
		utils.ErrorLogger.Printf("Error storing notification for reservation %s: %v", r.Code, err)
		return
	}

	events.BroadcastNotification(notification)
	utils.InfoLogger.Printf("Notification sent: %s (reservation %s)", job.kind, r.Code)
}
