package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewOrder_ComputesTotals(t *testing.T) {
	now := time.Now().UTC()
	order, err := NewOrder(1, []OrderLine{
		{ProductID: 1, Quantity: 2, UnitPrice: 9.99},
		{ProductID: 2, Quantity: 1, UnitPrice: 4.50},
	}, now)
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, order.Status)
	require.Equal(t, now, order.CreatedAt)
	require.InDelta(t, 19.98, order.Lines[0].Subtotal, 1e-9)
	require.InDelta(t, 4.50, order.Lines[1].Subtotal, 1e-9)
	require.InDelta(t, 24.48, order.Total, 1e-9)
}

func TestNewOrder_RejectsEmptyLines(t *testing.T) {
	_, err := NewOrder(1, nil, time.Now())
	require.ErrorIs(t, err, ErrNoLines)
}

func TestNewOrder_RejectsInvalidUser(t *testing.T) {
	_, err := NewOrder(0, []OrderLine{{ProductID: 1, Quantity: 1}}, time.Now())
	require.ErrorIs(t, err, ErrInvalidUserID)
}

func TestNewOrder_RejectsInvalidLine(t *testing.T) {
	_, err := NewOrder(1, []OrderLine{{ProductID: 1, Quantity: 0}}, time.Now())
	require.ErrorIs(t, err, ErrInvalidLine)
}
