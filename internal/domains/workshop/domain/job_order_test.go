package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewJobOrder(t *testing.T) {
	job, err := NewJobOrder("job-1", "veh-1", "cust-1", "brake noise")
	require.NoError(t, err)
	require.Equal(t, StatusReceived, job.Status)

	_, err = NewJobOrder("job-2", "veh-1", "cust-1", "  ")
	require.ErrorIs(t, err, ErrEmptyDescription)

	_, err = NewJobOrder("job-3", "", "cust-1", "brake noise")
	require.ErrorIs(t, err, ErrEmptyVehicle)
}

func TestParseStatus(t *testing.T) {
	status, err := ParseStatus(" in_progress ")
	require.NoError(t, err)
	require.Equal(t, StatusInProgress, status)

	_, err = ParseStatus("finished")
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		allowed  bool
	}{
		{StatusReceived, StatusDiagnosis, true},
		{StatusReceived, StatusInProgress, true},
		{StatusReceived, StatusCompleted, true},
		{StatusReceived, StatusCancelled, true},
		{StatusDiagnosis, StatusInProgress, true},
		{StatusDiagnosis, StatusReceived, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusDiagnosis, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusReceived, false},
		{StatusCancelled, StatusReceived, false},
		{StatusCancelled, StatusCompleted, false},
		{StatusInProgress, StatusInProgress, true},
	}
	for _, tc := range cases {
		require.Equal(t, tc.allowed, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTransition_TerminalStateRejected(t *testing.T) {
	job, err := NewJobOrder("job-1", "veh-1", "cust-1", "brake noise")
	require.NoError(t, err)

	require.NoError(t, job.Transition(StatusCompleted))
	require.Equal(t, StatusCompleted, job.Status)

	err = job.Transition(StatusCancelled)
	require.ErrorIs(t, err, ErrIllegalTransition)
	require.Equal(t, StatusCompleted, job.Status)
}

func TestTransition_UnknownStatusRejected(t *testing.T) {
	job, err := NewJobOrder("job-1", "veh-1", "cust-1", "brake noise")
	require.NoError(t, err)
	require.ErrorIs(t, job.Transition(Status("finished")), ErrInvalidStatus)
}
