package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status enumerates repair job progression.
type Status string

const (
	StatusReceived   Status = "received"
	StatusDiagnosis  Status = "diagnosis"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var (
	ErrEmptyDescription  = errors.New("issue description is required")
	ErrEmptyVehicle      = errors.New("vehicle id is required")
	ErrInvalidStatus     = errors.New("job status is invalid")
	ErrIllegalTransition = errors.New("job status transition is not allowed")
)

// ParseStatus validates a raw status value against the enum.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.TrimSpace(raw))
	switch status {
	case StatusReceived, StatusDiagnosis, StatusInProgress, StatusCompleted, StatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
}

// allowedTransitions is the job lifecycle as a directed graph. Jumping
// ahead (e.g. received straight to completed) stays legal; moving
// backwards or out of a terminal state does not.
var allowedTransitions = map[Status][]Status{
	StatusReceived:   {StatusDiagnosis, StatusInProgress, StatusCompleted, StatusCancelled},
	StatusDiagnosis:  {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// CanTransition reports whether from -> to is an allowed move.
func CanTransition(from, to Status) bool {
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

// JobOrder is a customer's repair request tracked through its lifecycle.
type JobOrder struct {
	ID          string
	VehicleID   string
	CustomerID  string
	Description string
	Status      Status
	CreatedAt   time.Time
}

// NewJobOrder validates and constructs a job order in the received state.
func NewJobOrder(id, vehicleID, customerID, description string) (*JobOrder, error) {
	job := &JobOrder{
		ID:         id,
		VehicleID:  strings.TrimSpace(vehicleID),
		CustomerID: strings.TrimSpace(customerID),
		Status:     StatusReceived,
	}
	if job.VehicleID == "" {
		return nil, ErrEmptyVehicle
	}
	if job.CustomerID == "" {
		return nil, ErrEmptyCustomer
	}
	if err := job.SetDescription(description); err != nil {
		return nil, err
	}
	return job, nil
}

// SetDescription trims and validates the free-text issue description.
func (j *JobOrder) SetDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return ErrEmptyDescription
	}
	j.Description = description
	return nil
}

// Transition applies a staff-initiated status change, rejecting moves
// the lifecycle graph does not allow.
func (j *JobOrder) Transition(to Status) error {
	if _, err := ParseStatus(string(to)); err != nil {
		return err
	}
	if !CanTransition(j.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, j.Status, to)
	}
	j.Status = to
	return nil
}
