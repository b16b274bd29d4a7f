package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyMake         = errors.New("car make is required")
	ErrEmptyModel        = errors.New("car model is required")
	ErrEmptyCarType      = errors.New("car type is required")
	ErrEmptyLicensePlate = errors.New("license plate is required")
	ErrInvalidYear       = errors.New("car year is out of range")
	ErrNegativeDailyRate = errors.New("daily rate must not be negative")
)

// RentalCar is a fleet-owned resource offered for rental.
type RentalCar struct {
	ID           string
	Make         string
	Model        string
	Year         int
	CarType      string
	DailyRate    float64
	LicensePlate string
	Available    bool
	Features     []string
	CreatedAt    time.Time
}

// NewRentalCar validates and constructs a fleet car. New cars join the
// fleet available for booking.
func NewRentalCar(id, make, model string, year int, carType string, dailyRate float64, licensePlate string, features []string) (*RentalCar, error) {
	car := &RentalCar{ID: id, Year: year, Available: true}
	if err := car.SetMakeModel(make, model); err != nil {
		return nil, err
	}
	if err := car.SetCarType(carType); err != nil {
		return nil, err
	}
	if err := car.SetDailyRate(dailyRate); err != nil {
		return nil, err
	}
	if err := car.SetLicensePlate(licensePlate); err != nil {
		return nil, err
	}
	if year < 1950 || year > time.Now().Year()+1 {
		return nil, ErrInvalidYear
	}
	car.SetFeatures(features)
	return car, nil
}

// SetMakeModel trims and validates the manufacturer and model names.
func (c *RentalCar) SetMakeModel(make, model string) error {
	make = strings.TrimSpace(make)
	model = strings.TrimSpace(model)
	if make == "" {
		return ErrEmptyMake
	}
	if model == "" {
		return ErrEmptyModel
	}
	c.Make = make
	c.Model = model
	return nil
}

// SetCarType trims and validates the fleet category (sedan, SUV, ...).
func (c *RentalCar) SetCarType(carType string) error {
	carType = strings.TrimSpace(carType)
	if carType == "" {
		return ErrEmptyCarType
	}
	c.CarType = carType
	return nil
}

// SetDailyRate validates the rental rate.
func (c *RentalCar) SetDailyRate(rate float64) error {
	if rate < 0 {
		return ErrNegativeDailyRate
	}
	c.DailyRate = rate
	return nil
}

// SetLicensePlate trims and validates the registration plate.
func (c *RentalCar) SetLicensePlate(plate string) error {
	plate = strings.ToUpper(strings.TrimSpace(plate))
	if plate == "" {
		return ErrEmptyLicensePlate
	}
	c.LicensePlate = plate
	return nil
}

// SetFeatures normalizes the optional feature list.
func (c *RentalCar) SetFeatures(features []string) {
	cleaned := make([]string, 0, len(features))
	for _, f := range features {
		if f = strings.TrimSpace(f); f != "" {
			cleaned = append(cleaned, f)
		}
	}
	c.Features = cleaned
}

// ToggleAvailability flips the availability flag.
func (c *RentalCar) ToggleAvailability() {
	c.Available = !c.Available
}
