package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/wanjiru84/pro_marketplace/metrics"
	"github.com/wanjiru84/pro_marketplace/models"
	"gorm.io/gorm"
)

const upcomingBookingsLimit = 10

// bookingStatusRank orders the forward chain pending → confirmed →
// in_progress → completed. Transitions are monotonic: a booking may
// skip ahead but never move back. Cancelled is reachable from any
// non-terminal status; completed and cancelled are terminal for this
// operation (disputed and refunded are payment-driven and never
// reachable here).
var bookingStatusRank = map[string]int{
	models.BookingStatusPending:    0,
	models.BookingStatusConfirmed:  1,
	models.BookingStatusInProgress: 2,
	models.BookingStatusCompleted:  3,
}

type BookingService struct {
	db    *gorm.DB
	hooks metrics.Hooks
}

func NewBookingService(db *gorm.DB, hooks metrics.Hooks) *BookingService {
	return &BookingService{db: db, hooks: hooks}
}

func validUpdateStatus(status string) bool {
	switch status {
	case models.BookingStatusConfirmed, models.BookingStatusInProgress,
		models.BookingStatusCompleted, models.BookingStatusCancelled:
		return true
	}
	return false
}

func transitionAllowed(from, to string) bool {
	switch from {
	case models.BookingStatusPending, models.BookingStatusConfirmed, models.BookingStatusInProgress:
	default:
		return false
	}
	if to == models.BookingStatusCancelled {
		return true
	}
	return bookingStatusRank[to] > bookingStatusRank[from]
}

// UpdateStatus moves a booking owned by professionalID into newStatus.
// The write is a single conditional UPDATE keyed by id, owner and the
// status read beforehand, so two racing updates cannot both win
// silently. A booking owned by someone else reports ErrNotFound, same
// as a missing one.
func (s *BookingService) UpdateStatus(ctx context.Context, bookingID, professionalID uuid.UUID, newStatus string) (*models.Booking, error) {
	if !validUpdateStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	var booking models.Booking
	err := s.db.WithContext(ctx).
		Where("id = ? AND professional_id = ?", bookingID, professionalID).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !transitionAllowed(booking.Status, newStatus) {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":            newStatus,
		"status_updated_at": now,
	}
	if newStatus == models.BookingStatusCompleted {
		updates["completion_date"] = now
	}

	result := s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ? AND professional_id = ? AND status = ?", bookingID, professionalID, booking.Status).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// The status moved between our read and write.
		return nil, ErrInvalidTransition
	}

	booking.Status = newStatus
	booking.StatusUpdatedAt = &now
	if newStatus == models.BookingStatusCompleted {
		booking.CompletionDate = &now
	}

	switch newStatus {
	case models.BookingStatusCompleted:
		if err := s.hooks.OnBookingCompleted(professionalID); err != nil {
			log.Printf("🔥 metrics hook booking.completed failed for professional %s: %v", professionalID, err)
		}
	case models.BookingStatusCancelled:
		if err := s.hooks.OnBookingCancelled(professionalID); err != nil {
			log.Printf("🔥 metrics hook booking.cancelled failed for professional %s: %v", professionalID, err)
		}
	}

	return &booking, nil
}

type BookingListFilters struct {
	ClientID  *uuid.UUID
	ServiceID *uuid.UUID
}

func (s *BookingService) ListForProfessional(ctx context.Context, professionalID uuid.UUID, filters BookingListFilters) ([]models.Booking, error) {
	query := s.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("professional_id = ?", professionalID)

	if filters.ClientID != nil {
		query = query.Where("client_id = ?", *filters.ClientID)
	}
	if filters.ServiceID != nil {
		query = query.Where("service_id = ?", *filters.ServiceID)
	}

	var bookings []models.Booking
	if err := query.Order("event_date desc").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (s *BookingService) GetForProfessional(ctx context.Context, bookingID, professionalID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("id = ? AND professional_id = ?", bookingID, professionalID).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (s *BookingService) ListForClient(ctx context.Context, clientID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Preload("Service").
		Where("client_id = ?", clientID).
		Order("event_date desc").
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

type BookingStats struct {
	StatusCounts  map[string]int64 `json:"status_counts"`
	TotalEarnings float64          `json:"total_earnings"`
}

// Stats aggregates per-status booking counts and the sum of totals for
// completed, fully paid bookings.
func (s *BookingService) Stats(ctx context.Context, professionalID uuid.UUID) (*BookingStats, error) {
	type statusCount struct {
		Status string
		Count  int64
	}

	var counts []statusCount
	err := s.db.WithContext(ctx).Model(&models.Booking{}).
		Select("status, count(*) as count").
		Where("professional_id = ?", professionalID).
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	stats := &BookingStats{StatusCounts: make(map[string]int64)}
	for _, c := range counts {
		stats.StatusCounts[c.Status] = c.Count
	}

	err = s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("professional_id = ? AND status = ? AND payment_status = ?",
			professionalID, models.BookingStatusCompleted, "paid").
		Select("COALESCE(SUM(total_amount), 0)").
		Row().Scan(&stats.TotalEarnings)
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func (s *BookingService) Upcoming(ctx context.Context, professionalID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Where("professional_id = ? AND event_date >= ? AND status IN ?",
			professionalID, time.Now(), []string{models.BookingStatusConfirmed, models.BookingStatusInProgress}).
		Order("event_date asc").
		Limit(upcomingBookingsLimit).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
