package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// BookingStatus enumerates booking progression.
type BookingStatus string

const (
	BookingPending    BookingStatus = "pending"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingInProgress BookingStatus = "in_progress"
	BookingCompleted  BookingStatus = "completed"
	BookingCancelled  BookingStatus = "cancelled"
)

var (
	ErrEmptyCar            = errors.New("car id is required")
	ErrEmptyCustomer       = errors.New("customer id is required")
	ErrInvalidDateRange    = errors.New("end date must be after start date")
	ErrInvalidBookingState = errors.New("booking status is invalid")
	ErrIllegalTransition   = errors.New("booking status transition is not allowed")
)

// ParseBookingStatus validates a raw status value against the enum.
func ParseBookingStatus(raw string) (BookingStatus, error) {
	status := BookingStatus(strings.TrimSpace(raw))
	switch status {
	case BookingPending, BookingConfirmed, BookingInProgress, BookingCompleted, BookingCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidBookingState, raw)
	}
}

// allowedTransitions is the booking lifecycle as a directed graph,
// forward moves plus cancellation from any non-terminal state.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:    {BookingConfirmed, BookingInProgress, BookingCompleted, BookingCancelled},
	BookingConfirmed:  {BookingInProgress, BookingCompleted, BookingCancelled},
	BookingInProgress: {BookingCompleted, BookingCancelled},
	BookingCompleted:  {},
	BookingCancelled:  {},
}

// CanTransitionBooking reports whether from -> to is an allowed move.
func CanTransitionBooking(from, to BookingStatus) bool {
	if from == to {
		return true
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsActive reports whether the booking still holds the car: it has not
// been cancelled or completed.
func (s BookingStatus) IsActive() bool {
	return s == BookingPending || s == BookingConfirmed || s == BookingInProgress
}

// RentalBooking reserves a fleet car for a half-open [start, end) range.
// TotalAmount is captured once at creation and never recomputed when the
// car's rate changes later.
type RentalBooking struct {
	ID          string
	CarID       string
	CustomerID  string
	StartDate   time.Time
	EndDate     time.Time
	TotalAmount float64
	Status      BookingStatus
	CreatedAt   time.Time
}

// RentalDays returns the whole-day duration of a booking, rounding
// partial days up.
func RentalDays(start, end time.Time) (int, error) {
	if !end.After(start) {
		return 0, ErrInvalidDateRange
	}
	return int(math.Ceil(end.Sub(start).Hours() / 24)), nil
}

// NewRentalBooking validates, prices, and constructs a pending booking.
func NewRentalBooking(id, carID, customerID string, start, end time.Time, dailyRate float64) (*RentalBooking, error) {
	booking := &RentalBooking{
		ID:         id,
		CarID:      strings.TrimSpace(carID),
		CustomerID: strings.TrimSpace(customerID),
		StartDate:  start,
		EndDate:    end,
		Status:     BookingPending,
	}
	if booking.CarID == "" {
		return nil, ErrEmptyCar
	}
	if booking.CustomerID == "" {
		return nil, ErrEmptyCustomer
	}
	days, err := RentalDays(start, end)
	if err != nil {
		return nil, err
	}
	booking.TotalAmount = float64(days) * dailyRate
	return booking, nil
}

// Overlaps reports whether the booking's [start, end) range intersects
// the given one.
func (b *RentalBooking) Overlaps(start, end time.Time) bool {
	return b.StartDate.Before(end) && start.Before(b.EndDate)
}

// Transition applies a status change, rejecting moves the lifecycle
// graph does not allow.
func (b *RentalBooking) Transition(to BookingStatus) error {
	if _, err := ParseBookingStatus(string(to)); err != nil {
		return err
	}
	if !CanTransitionBooking(b.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, b.Status, to)
	}
	b.Status = to
	return nil
}
