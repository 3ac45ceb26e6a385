package jobs

import (
	"log"
	"time"

	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/models"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/services"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/storage"
	"github.com/nahlchatbot/NahlBooking-Farm-sub000/internal/utils"
)

// Hour of day (server-local) at which reminders go out
const reminderHour = 18

// ReminderJob sends a WhatsApp reminder the evening before each confirmed
// visit. One goroutine, stopped via Stop.
type ReminderJob struct {
	store    storage.Store
	notifier *services.Notifier
	stopCh   chan struct{}
}

// NewReminderJob creates a new reminder job
func NewReminderJob(store storage.Store, notifier *services.Notifier) *ReminderJob {
	return &ReminderJob{
		store:    store,
		notifier: notifier,
		stopCh:   make(chan struct{}),
	}
}

// Start schedules the daily reminder run
func (j *ReminderJob) Start() {
	log.Println("Starting visit reminder job...")
	go j.run()
}

// Stop halts the job
func (j *ReminderJob) Stop() {
	close(j.stopCh)
	log.Println("Visit reminder job stopped")
}

func (j *ReminderJob) run() {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), reminderHour, 0, 0, 0, now.Location())
		if !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}

		select {
		case <-time.After(time.Until(next)):
			j.sendReminders()
		case <-j.stopCh:
			return
		}
	}
}

// sendReminders notifies customers with a confirmed booking for tomorrow
func (j *ReminderJob) sendReminders() {
	tomorrow := utils.Today().AddDate(0, 0, 1)
	bookings, err := j.store.GetBookingsInRange(tomorrow, tomorrow)
	if err != nil {
		log.Printf("Reminder job failed to load bookings: %v", err)
		return
	}

	sent := 0
	for _, b := range bookings {
		if b.Status != models.BookingStatusConfirmed {
			continue
		}
		j.notifier.VisitReminder(b)
		sent++
	}
	if sent > 0 {
		log.Printf("Sent %d visit reminders for %s", sent, utils.FormatDate(tomorrow))
	}
}
