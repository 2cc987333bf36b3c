package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/wanjiru84/pro_marketplace/models"
	"gorm.io/gorm"
)

// PlatformFeeRate is the marketplace's cut. The fee is 10% of the
// booking total; each installment carries its own share
// (fee = rate × installment amount), so the shares sum to 10% of the
// total across both legs.
const PlatformFeeRate = 0.10

const upfrontShare = 0.30

// paymentStatusRank orders the processor's intent statuses. Events may
// only move a record forward; cancelled and failed are reachable from
// any non-terminal status.
var paymentStatusRank = map[string]int{
	models.PaymentStatusPending:               0,
	models.PaymentStatusRequiresPaymentMethod: 1,
	models.PaymentStatusRequiresConfirmation:  2,
	models.PaymentStatusRequiresAction:        3,
	models.PaymentStatusProcessing:            4,
	models.PaymentStatusRequiresCapture:       5,
	models.PaymentStatusSucceeded:             6,
}

func isTerminalPaymentStatus(status string) bool {
	switch status {
	case models.PaymentStatusSucceeded, models.PaymentStatusCancelled, models.PaymentStatusFailed:
		return true
	}
	return false
}

func knownPaymentStatus(status string) bool {
	if _, ok := paymentStatusRank[status]; ok {
		return true
	}
	return status == models.PaymentStatusCancelled || status == models.PaymentStatusFailed
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type PaymentService struct {
	db *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{db: db}
}

func newInstallment(booking *models.Booking, paymentType string, amount float64, intentID string) models.BookingPayment {
	fee := round2(amount * PlatformFeeRate)
	return models.BookingPayment{
		BookingID:             booking.ID,
		ClientID:              booking.ClientID,
		ProfessionalID:        booking.ProfessionalID,
		PaymentType:           paymentType,
		StripePaymentIntentID: intentID,
		Amount:                amount,
		PlatformFee:           fee,
		ProfessionalAmount:    round2(amount - fee),
		Currency:              booking.Currency,
		Status:                models.PaymentStatusPending,
	}
}

// CreateInstallments opens the two payment records for a booking: 30%
// upfront and the remainder. The remaining leg is total minus upfront
// rather than 70% of total, so the two always sum to the booking total.
func (s *PaymentService) CreateInstallments(ctx context.Context, booking *models.Booking, upfrontIntentID, remainingIntentID string) ([]models.BookingPayment, error) {
	upfront := round2(booking.TotalAmount * upfrontShare)
	remaining := round2(booking.TotalAmount - upfront)

	payments := []models.BookingPayment{
		newInstallment(booking, models.PaymentTypeUpfront, upfront, upfrontIntentID),
		newInstallment(booking, models.PaymentTypeRemaining, remaining, remainingIntentID),
	}
	if err := s.db.WithContext(ctx).Create(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

type PaymentEventMeta struct {
	FailureReason string
}

// RecordPaymentEvent applies one processor event to the payment record
// behind intentID. Replaying the record's current status is a no-op, so
// at-least-once webhook delivery cannot double-apply side effects.
func (s *PaymentService) RecordPaymentEvent(ctx context.Context, intentID, newStatus string, meta PaymentEventMeta) (*models.BookingPayment, error) {
	if !knownPaymentStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	var payment models.BookingPayment
	err := s.db.WithContext(ctx).
		Where("stripe_payment_intent_id = ?", intentID).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if newStatus == payment.Status {
		return &payment, nil
	}
	if isTerminalPaymentStatus(payment.Status) {
		return nil, ErrTerminalState
	}

	switch newStatus {
	case models.PaymentStatusCancelled:
	case models.PaymentStatusFailed:
		if meta.FailureReason == "" {
			return nil, ErrFailureReasonRequired
		}
	default:
		if paymentStatusRank[newStatus] <= paymentStatusRank[payment.Status] {
			return nil, ErrInvalidTransition
		}
	}

	now := time.Now()
	updates := map[string]interface{}{"status": newStatus}
	if newStatus == models.PaymentStatusSucceeded && payment.CapturedAt == nil {
		updates["captured_at"] = now
	}
	if newStatus == models.PaymentStatusFailed {
		updates["failure_reason"] = meta.FailureReason
	}

	// Guarded on the status we read, so a concurrent delivery of the
	// same event applies exactly once.
	result := s.db.WithContext(ctx).Model(&models.BookingPayment{}).
		Where("stripe_payment_intent_id = ? AND status = ?", intentID, payment.Status).
		Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrInvalidTransition
	}

	payment.Status = newStatus
	if newStatus == models.PaymentStatusSucceeded && payment.CapturedAt == nil {
		payment.CapturedAt = &now
	}
	if newStatus == models.PaymentStatusFailed {
		payment.FailureReason = &meta.FailureReason
	}

	if newStatus == models.PaymentStatusSucceeded {
		if err := s.refreshBookingPaymentStatus(ctx, &payment); err != nil {
			return nil, err
		}
	}

	return &payment, nil
}

// refreshBookingPaymentStatus rolls the owning booking's payment_status
// forward after a successful capture: paid once the succeeded
// installments cover the total, partially_paid before that.
func (s *PaymentService) refreshBookingPaymentStatus(ctx context.Context, payment *models.BookingPayment) error {
	var booking models.Booking
	if err := s.db.WithContext(ctx).First(&booking, "id = ?", payment.BookingID).Error; err != nil {
		return err
	}

	var paidAmount float64
	err := s.db.WithContext(ctx).Model(&models.BookingPayment{}).
		Where("booking_id = ? AND status = ?", payment.BookingID, models.PaymentStatusSucceeded).
		Select("COALESCE(SUM(amount), 0)").
		Row().Scan(&paidAmount)
	if err != nil {
		return err
	}

	paymentStatus := "partially_paid"
	if paidAmount >= booking.TotalAmount {
		paymentStatus = "paid"
	}

	return s.db.WithContext(ctx).Model(&models.Booking{}).
		Where("id = ?", payment.BookingID).
		Update("payment_status", paymentStatus).Error
}

// RecordTransfer stamps the payout of a captured installment to the
// professional. Transfer strictly follows capture; recording one for a
// payment that has not succeeded and been captured is rejected.
func (s *PaymentService) RecordTransfer(ctx context.Context, intentID, transferID string) (*models.BookingPayment, error) {
	var payment models.BookingPayment
	err := s.db.WithContext(ctx).
		Where("stripe_payment_intent_id = ?", intentID).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if payment.TransferredAt != nil {
		return &payment, nil
	}
	if payment.Status != models.PaymentStatusSucceeded || payment.CapturedAt == nil {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	result := s.db.WithContext(ctx).Model(&models.BookingPayment{}).
		Where("stripe_payment_intent_id = ? AND transferred_at IS NULL", intentID).
		Updates(map[string]interface{}{
			"transferred_at":     now,
			"stripe_transfer_id": transferID,
		})
	if result.Error != nil {
		return nil, result.Error
	}

	payment.TransferredAt = &now
	payment.StripeTransferID = &transferID
	return &payment, nil
}

// GetByIntentID is a read used by the webhook handler's replay path and
// by admin tooling.
func (s *PaymentService) GetByIntentID(ctx context.Context, intentID string) (*models.BookingPayment, error) {
	var payment models.BookingPayment
	err := s.db.WithContext(ctx).
		Where("stripe_payment_intent_id = ?", intentID).
		First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}
