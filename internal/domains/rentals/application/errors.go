package application

import (
	"errors"
	"fmt"

	"github.com/femisayo-autos/autoshop-api/internal/domains/rentals/domain"
	"github.com/femisayo-autos/autoshop-api/internal/domains/rentals/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid rentals input")
	// ErrCarUnavailable signals the car has been withdrawn from booking.
	ErrCarUnavailable = errors.New("car is not available for booking")
	// ErrBookingConflict signals an active booking already holds the car
	// over part of the requested range.
	ErrBookingConflict = errors.New("car is already booked for the requested dates")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyMake) ||
		errors.Is(err, domain.ErrEmptyModel) ||
		errors.Is(err, domain.ErrEmptyCarType) ||
		errors.Is(err, domain.ErrEmptyLicensePlate) ||
		errors.Is(err, domain.ErrInvalidYear) ||
		errors.Is(err, domain.ErrNegativeDailyRate) ||
		errors.Is(err, domain.ErrEmptyCar) ||
		errors.Is(err, domain.ErrEmptyCustomer) ||
		errors.Is(err, domain.ErrInvalidDateRange) ||
		errors.Is(err, domain.ErrInvalidBookingState) ||
		errors.Is(err, domain.ErrIllegalTransition) ||
		errors.Is(err, ErrCarUnavailable) ||
		errors.Is(err, ErrBookingConflict) ||
		errors.Is(err, ports.ErrCarNotFound) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
