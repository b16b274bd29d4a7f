package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/femisayo-autos/autoshop-api/internal/domains/rentals/domain"
	"github.com/femisayo-autos/autoshop-api/internal/domains/rentals/ports"
)

var (
	_ ports.CarRepository     = (*CarRepository)(nil)
	_ ports.BookingRepository = (*BookingRepository)(nil)
)

// CarRepository is an in-memory fleet persistence adapter.
type CarRepository struct {
	mu   sync.RWMutex
	cars map[string]*domain.RentalCar
}

func NewCarRepository() *CarRepository {
	return &CarRepository{cars: map[string]*domain.RentalCar{}}
}

func (r *CarRepository) Save(_ context.Context, car *domain.RentalCar) (*domain.RentalCar, error) {
	if car == nil {
		return nil, errors.New("rental car is nil")
	}
	clone := cloneCar(car)
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cars[clone.ID] = clone
	result := cloneCar(clone)
	return result, nil
}

func (r *CarRepository) GetByID(_ context.Context, id string) (*domain.RentalCar, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	car, ok := r.cars[id]
	if !ok {
		return nil, ports.ErrCarNotFound
	}
	return cloneCar(car), nil
}

func (r *CarRepository) ListAvailable(_ context.Context) ([]*domain.RentalCar, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.RentalCar
	for _, car := range r.cars {
		if car.Available {
			list = append(list, cloneCar(car))
		}
	}
	sortCars(list)
	return list, nil
}

func (r *CarRepository) List(_ context.Context) ([]*domain.RentalCar, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.RentalCar, 0, len(r.cars))
	for _, car := range r.cars {
		list = append(list, cloneCar(car))
	}
	sortCars(list)
	return list, nil
}

func cloneCar(car *domain.RentalCar) *domain.RentalCar {
	clone := *car
	clone.Features = append([]string(nil), car.Features...)
	return &clone
}

func sortCars(list []*domain.RentalCar) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}

// BookingRepository is an in-memory booking persistence adapter.
type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.RentalBooking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{bookings: map[string]*domain.RentalBooking{}}
}

func (r *BookingRepository) Save(_ context.Context, booking *domain.RentalBooking) (*domain.RentalBooking, error) {
	if booking == nil {
		return nil, errors.New("rental booking is nil")
	}
	clone := *booking
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[clone.ID] = &clone
	result := clone
	return &result, nil
}

func (r *BookingRepository) GetByID(_ context.Context, id string) (*domain.RentalBooking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	booking, ok := r.bookings[id]
	if !ok {
		return nil, ports.ErrBookingNotFound
	}
	clone := *booking
	return &clone, nil
}

func (r *BookingRepository) List(_ context.Context) ([]*domain.RentalBooking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.RentalBooking, 0, len(r.bookings))
	for _, booking := range r.bookings {
		clone := *booking
		list = append(list, &clone)
	}
	sortBookings(list)
	return list, nil
}

func (r *BookingRepository) ListByCustomer(_ context.Context, customerID string) ([]*domain.RentalBooking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.RentalBooking
	for _, booking := range r.bookings {
		if booking.CustomerID == customerID {
			clone := *booking
			list = append(list, &clone)
		}
	}
	sortBookings(list)
	return list, nil
}

func (r *BookingRepository) FindActiveOverlapping(_ context.Context, carID string, start, end time.Time) ([]*domain.RentalBooking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*domain.RentalBooking
	for _, booking := range r.bookings {
		if booking.CarID != carID || !booking.Status.IsActive() {
			continue
		}
		if booking.Overlaps(start, end) {
			clone := *booking
			list = append(list, &clone)
		}
	}
	sortBookings(list)
	return list, nil
}

func (r *BookingRepository) CountAll(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.bookings)), nil
}

func (r *BookingRepository) CountByCustomer(_ context.Context, customerID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var count int64
	for _, booking := range r.bookings {
		if booking.CustomerID == customerID {
			count++
		}
	}
	return count, nil
}

func sortBookings(list []*domain.RentalBooking) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
