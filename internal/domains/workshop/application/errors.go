package application

import (
	"errors"
	"fmt"

	"github.com/femisayo-autos/autoshop-api/internal/domains/workshop/domain"
	"github.com/femisayo-autos/autoshop-api/internal/domains/workshop/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid workshop input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyMake) ||
		errors.Is(err, domain.ErrEmptyModel) ||
		errors.Is(err, domain.ErrEmptyLicensePlate) ||
		errors.Is(err, domain.ErrInvalidYear) ||
		errors.Is(err, domain.ErrEmptyCustomer) ||
		errors.Is(err, domain.ErrEmptyVehicle) ||
		errors.Is(err, domain.ErrEmptyDescription) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrIllegalTransition) ||
		errors.Is(err, ports.ErrVehicleNotFound) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
