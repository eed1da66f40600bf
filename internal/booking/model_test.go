package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{
		StatusConfirmed, StatusArrived, StatusDessert, StatusBill,
		StatusClean, StatusGone, StatusNoShow, StatusCanceled,
	} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Status("seated").Valid())
	assert.False(t, Status("").Valid())
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusClean.Terminal())
	assert.True(t, StatusGone.Terminal())
	assert.True(t, StatusNoShow.Terminal())
	assert.True(t, StatusCanceled.Terminal())

	assert.False(t, StatusConfirmed.Terminal())
	assert.False(t, StatusArrived.Terminal())
	assert.False(t, StatusDessert.Terminal())
	assert.False(t, StatusBill.Terminal())
}

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusConfirmed, StatusArrived},
		{StatusConfirmed, StatusNoShow},
		{StatusConfirmed, StatusCanceled},
		{StatusArrived, StatusDessert},
		{StatusArrived, StatusBill},
		{StatusArrived, StatusGone},
		{StatusArrived, StatusCanceled},
		{StatusDessert, StatusBill},
		{StatusDessert, StatusCanceled},
		{StatusBill, StatusClean},
		{StatusBill, StatusCanceled},
	}
	for _, tc := range allowed {
		assert.True(t, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}

	forbidden := []struct{ from, to Status }{
		{StatusConfirmed, StatusDessert},
		{StatusConfirmed, StatusBill},
		{StatusConfirmed, StatusClean},
		{StatusConfirmed, StatusGone},
		{StatusArrived, StatusConfirmed},
		{StatusArrived, StatusClean},
		{StatusDessert, StatusArrived},
		{StatusDessert, StatusGone},
		{StatusBill, StatusGone},
		{StatusCanceled, StatusConfirmed},
		{StatusCanceled, StatusArrived},
		{StatusClean, StatusCanceled},
		{StatusGone, StatusCanceled},
		{StatusNoShow, StatusCanceled},
	}
	for _, tc := range forbidden {
		assert.False(t, tc.from.CanTransition(tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestCanTransitionSameStateIsNoOp(t *testing.T) {
	for _, s := range []Status{
		StatusConfirmed, StatusArrived, StatusDessert, StatusBill,
		StatusClean, StatusGone, StatusNoShow, StatusCanceled,
	} {
		assert.True(t, s.CanTransition(s), string(s))
	}
}

func TestStatusCounted(t *testing.T) {
	assert.False(t, StatusCanceled.Counted())

	// Every other state, terminal or not, still occupied the slot.
	for _, s := range []Status{
		StatusConfirmed, StatusArrived, StatusDessert, StatusBill,
		StatusClean, StatusGone, StatusNoShow,
	} {
		assert.True(t, s.Counted(), string(s))
	}
}
