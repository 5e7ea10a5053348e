package service

import (
	"fmt"
	"log"
	"time"

	"smartparking/internal/repository"
	"smartparking/internal/session"
)

// JobService holds the bodies of the scheduled maintenance jobs.
type JobService struct {
	Repo     *repository.JobRepository
	Sessions *session.Store
}

func NewJobService(repo *repository.JobRepository, sessions *session.Store) *JobService {
	return &JobService{Repo: repo, Sessions: sessions}
}

// CompleteFinishedBookings finds confirmed bookings whose check-out time
// has passed and marks them completed.
func (s *JobService) CompleteFinishedBookings() error {
	log.Println("Cron Job: Checking for bookings to mark as 'completed'...")

	bookingIDs, err := s.Repo.GetConfirmedBookingIDsPastCheckout()
	if err != nil {
		return fmt.Errorf("cron job: failed to get confirmed bookings past checkout: %w", err)
	}
	if len(bookingIDs) == 0 {
		log.Println("Cron Job: No confirmed bookings found past their checkout time.")
		return nil
	}

	log.Printf("Cron Job: Found %d bookings to mark as 'completed'. IDs: %v", len(bookingIDs), bookingIDs)

	if err := s.Repo.UpdateBookingStatuses(bookingIDs, "completed"); err != nil {
		return fmt.Errorf("cron job: failed to update booking statuses: %w", err)
	}
	return nil
}

// SweepSessions evicts expired conversation contexts. Writes already sweep
// as they go; this catches sessions that went quiet.
func (s *JobService) SweepSessions() {
	if evicted := s.Sessions.Evict(time.Now()); evicted > 0 {
		log.Printf("Cron Job: Evicted %d expired conversation contexts", evicted)
	}
}
