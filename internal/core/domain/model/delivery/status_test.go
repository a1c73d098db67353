package delivery_test

import (
	"testing"

	"grameego/internal/core/domain/model/delivery"
	"grameego/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []delivery.Status{delivery.Pending, delivery.Assigned, delivery.Picked, delivery.Delivered} {
		parsed, err := delivery.ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	for _, bad := range []string{"", "Unknown", "picked", "Cancelled"} {
		_, err := delivery.ParseStatus(bad)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid, bad)
	}
}

func TestStatus_Validate(t *testing.T) {
	assert.NoError(t, delivery.Pending.Validate())
	assert.NoError(t, delivery.Delivered.Validate())
	assert.Error(t, delivery.Unknown.Validate())
	assert.Error(t, delivery.Status(42).Validate())
	assert.Equal(t, "Unknown", delivery.Status(42).String())
}

func TestStatus_TransitionTable(t *testing.T) {
	all := []delivery.Status{delivery.Pending, delivery.Assigned, delivery.Picked, delivery.Delivered}
	allowed := map[delivery.Status]map[delivery.Status]bool{
		delivery.Pending:   {delivery.Assigned: true},
		delivery.Assigned:  {delivery.Pending: true, delivery.Picked: true, delivery.Delivered: true},
		delivery.Picked:    {delivery.Picked: true, delivery.Delivered: true},
		delivery.Delivered: {delivery.Delivered: true},
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[from][to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
	assert.False(t, delivery.Unknown.CanTransitionTo(delivery.Pending))
}

func TestStatus_Assign(t *testing.T) {
	next, err := delivery.Pending.Assign()
	require.NoError(t, err)
	assert.Equal(t, delivery.Assigned, next)

	for _, s := range []delivery.Status{delivery.Assigned, delivery.Picked, delivery.Delivered} {
		_, err = s.Assign()
		assert.ErrorIs(t, err, errs.ErrConflict, s.String())
	}
}

func TestStatus_Advance(t *testing.T) {
	testCases := []struct {
		from, to delivery.Status
		ok       bool
	}{
		{delivery.Assigned, delivery.Picked, true},
		{delivery.Assigned, delivery.Delivered, true},
		{delivery.Picked, delivery.Picked, true},
		{delivery.Picked, delivery.Delivered, true},
		{delivery.Delivered, delivery.Delivered, true},
		{delivery.Delivered, delivery.Picked, false},
		{delivery.Assigned, delivery.Assigned, false},
		{delivery.Picked, delivery.Assigned, false},
		{delivery.Assigned, delivery.Pending, false},
		{delivery.Pending, delivery.Picked, false},
	}

	for _, tc := range testCases {
		t.Run(tc.from.String()+"->"+tc.to.String(), func(t *testing.T) {
			next, err := tc.from.Advance(tc.to)
			if !tc.ok {
				require.Error(t, err)
				assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.to, next)
		})
	}
}

func TestStatus_Release(t *testing.T) {
	next, err := delivery.Assigned.Release()
	require.NoError(t, err)
	assert.Equal(t, delivery.Pending, next)

	for _, s := range []delivery.Status{delivery.Pending, delivery.Picked, delivery.Delivered} {
		_, err = s.Release()
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "only while Assigned")
	}
}

func TestStatus_ValidateCanHaveDriver(t *testing.T) {
	assert.NoError(t, delivery.Pending.ValidateCanHaveDriver(false))
	assert.Error(t, delivery.Pending.ValidateCanHaveDriver(true))

	for _, s := range []delivery.Status{delivery.Assigned, delivery.Picked, delivery.Delivered} {
		assert.NoError(t, s.ValidateCanHaveDriver(true))
		assert.Error(t, s.ValidateCanHaveDriver(false))
	}
}

func TestStatus_ValidateCancel(t *testing.T) {
	assert.NoError(t, delivery.Pending.ValidateCancel())
	assert.ErrorIs(t, delivery.Assigned.ValidateCancel(), errs.ErrValueIsInvalid)
	assert.ErrorIs(t, delivery.Delivered.ValidateCancel(), errs.ErrValueIsInvalid)
}
