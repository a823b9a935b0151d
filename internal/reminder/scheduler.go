package reminder

import (
	"context"
	"log"
	"sync"
	"time"

	"pitchside/backend/internal/mailer"
	"pitchside/backend/internal/models"

	"gorm.io/gorm"
)

// SchedulerConfig holds configuration for the booking reminder scheduler.
type SchedulerConfig struct {
	// DailyHour is the hour (0-23) when reminders are sent, server-local.
	DailyHour int
	// DailyMinute is the minute (0-59) when reminders are sent.
	DailyMinute int
	// CheckInterval is how often to check whether it's time to run.
	CheckInterval time.Duration
}

// DefaultSchedulerConfig returns the default scheduler configuration:
// reminders go out at 08:00 local time.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		DailyHour:     8,
		DailyMinute:   0,
		CheckInterval: 1 * time.Minute,
	}
}

// Scheduler sends a reminder email the day before each user booking. It is a
// stateless daily scan: there is no retry and no delivery tracking, and the
// only duplicate guard is the in-process last-run date.
type Scheduler struct {
	config SchedulerConfig
	db     *gorm.DB
	mail   mailer.Mailer

	mu          sync.Mutex
	lastRunDate string // YYYY-MM-DD of last run
	running     bool
	stopCh      chan struct{}
}

// NewScheduler creates a reminder scheduler.
func NewScheduler(config SchedulerConfig, db *gorm.DB, mail mailer.Mailer) *Scheduler {
	if config.CheckInterval <= 0 {
		config.CheckInterval = 1 * time.Minute
	}
	return &Scheduler{
		config: config,
		db:     db,
		mail:   mail,
		stopCh: make(chan struct{}),
	}
}

// Start begins the scheduler loop. It blocks until the context is cancelled
// or Stop is called, so run it in its own goroutine.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	log.Printf("Booking reminder scheduler started (daily at %02d:%02d)",
		s.config.DailyHour, s.config.DailyMinute)

	ticker := time.NewTicker(s.config.CheckInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Booking reminder scheduler stopped")
			return
		case <-s.stopCh:
			log.Println("Booking reminder scheduler stopped")
			return
		case <-ticker.C:
			s.checkAndRun(time.Now())
		}
	}
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.running {
		s.running = false
		close(s.stopCh)
	}
	s.mu.Unlock()
}

// checkAndRun fires the scan once per day at the configured time.
func (s *Scheduler) checkAndRun(now time.Time) {
	if !s.shouldRun(now) {
		return
	}

	today := now.Format("2006-01-02")
	s.mu.Lock()
	s.lastRunDate = today
	s.mu.Unlock()

	s.SendBookingReminders(now)
}

// shouldRun reports whether the daily trigger time has been reached and the
// scan has not yet run today.
func (s *Scheduler) shouldRun(now time.Time) bool {
	s.mu.Lock()
	alreadyRan := s.lastRunDate == now.Format("2006-01-02")
	s.mu.Unlock()
	if alreadyRan {
		return false
	}
	return now.Hour() == s.config.DailyHour && now.Minute() == s.config.DailyMinute
}

// TomorrowDate returns the calendar date one day after now, formatted the way
// bookings store their date.
func TomorrowDate(now time.Time) string {
	return now.AddDate(0, 0, 1).Format("2006-01-02")
}

// SendBookingReminders scans every booking dated tomorrow and emails the
// booking user for each non-external one. Failures are logged per booking and
// never halt the scan.
func (s *Scheduler) SendBookingReminders(now time.Time) {
	start := time.Now()
	tomorrow := TomorrowDate(now)

	var bookings []models.Booking
	if err := s.db.Where("date = ? AND external = ?", tomorrow, false).Find(&bookings).Error; err != nil {
		log.Printf("Error fetching tomorrow's bookings: %v", err)
		return
	}

	sent, skipped, failed := 0, 0, 0
	for i := range bookings {
		booking := &bookings[i]
		if booking.BookedByID == nil {
			skipped++
			continue
		}

		var user models.User
		if err := s.db.First(&user, *booking.BookedByID).Error; err != nil {
			skipped++
			continue
		}

		var venue models.Venue
		if err := s.db.First(&venue, booking.VenueID).Error; err != nil {
			log.Printf("Reminder skipped, venue %d not found for booking %d", booking.VenueID, booking.ID)
			skipped++
			continue
		}

		msg := mailer.BookingReminder(mailer.BookingDetails{
			VenueName:    venue.Name,
			VenueAddress: venue.Address,
			VenueCity:    venue.Location,
			Date:         booking.Date,
			StartTime:    booking.StartTime,
			EndTime:      booking.EndTime,
		}, user.Language)

		if err := s.mail.Send([]string{user.Email}, msg); err != nil {
			log.Printf("Error sending reminder for booking %d to %s: %v", booking.ID, user.Email, err)
			failed++
			continue
		}
		sent++
	}

	log.Printf("Booking reminders processed: date=%s total=%d sent=%d skipped=%d failed=%d duration=%s",
		tomorrow, len(bookings), sent, skipped, failed, time.Since(start))
}
