package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyMake         = errors.New("vehicle make is required")
	ErrEmptyModel        = errors.New("vehicle model is required")
	ErrEmptyLicensePlate = errors.New("license plate is required")
	ErrInvalidYear       = errors.New("vehicle year is out of range")
	ErrEmptyCustomer     = errors.New("customer id is required")
)

// Vehicle is a customer-owned car serviced by the workshop.
type Vehicle struct {
	ID           string
	CustomerID   string
	Make         string
	Model        string
	Year         int
	LicensePlate string
	CreatedAt    time.Time
}

// NewVehicle validates and constructs a vehicle aggregate.
func NewVehicle(id, customerID, make, model string, year int, licensePlate string) (*Vehicle, error) {
	v := &Vehicle{ID: id, CustomerID: strings.TrimSpace(customerID), Year: year}
	if v.CustomerID == "" {
		return nil, ErrEmptyCustomer
	}
	if err := v.SetMakeModel(make, model); err != nil {
		return nil, err
	}
	if err := v.SetLicensePlate(licensePlate); err != nil {
		return nil, err
	}
	if year < 1950 || year > time.Now().Year()+1 {
		return nil, ErrInvalidYear
	}
	return v, nil
}

// SetMakeModel trims and validates the manufacturer and model names.
func (v *Vehicle) SetMakeModel(make, model string) error {
	make = strings.TrimSpace(make)
	model = strings.TrimSpace(model)
	if make == "" {
		return ErrEmptyMake
	}
	if model == "" {
		return ErrEmptyModel
	}
	v.Make = make
	v.Model = model
	return nil
}

// SetLicensePlate trims and validates the registration plate.
func (v *Vehicle) SetLicensePlate(plate string) error {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if plate == "" {
		return ErrEmptyLicensePlate
	}
	v.LicensePlate = plate
	return nil
}
