package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRentalCar(t *testing.T) {
	car, err := NewRentalCar("car-1", "Toyota", "Corolla", 2022, "sedan", 5000, "kja-123", []string{" AC ", "", "Bluetooth"})
	require.NoError(t, err)
	require.True(t, car.Available)
	require.Equal(t, "KJA-123", car.LicensePlate)
	require.Equal(t, []string{"AC", "Bluetooth"}, car.Features)

	_, err = NewRentalCar("car-2", "Toyota", "Corolla", 2022, "sedan", -1, "KJA-124", nil)
	require.ErrorIs(t, err, ErrNegativeDailyRate)

	_, err = NewRentalCar("car-3", "Toyota", "Corolla", 1890, "sedan", 5000, "KJA-125", nil)
	require.ErrorIs(t, err, ErrInvalidYear)

	_, err = NewRentalCar("car-4", "", "Corolla", 2022, "sedan", 5000, "KJA-126", nil)
	require.ErrorIs(t, err, ErrEmptyMake)
}

func TestToggleAvailability(t *testing.T) {
	car, err := NewRentalCar("car-1", "Toyota", "Corolla", 2022, "sedan", 5000, "KJA-123", nil)
	require.NoError(t, err)

	car.ToggleAvailability()
	require.False(t, car.Available)
	car.ToggleAvailability()
	require.True(t, car.Available)
}
