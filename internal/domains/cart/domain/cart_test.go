package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAdd_MergesDuplicateProducts(t *testing.T) {
	cart := NewCart(1)
	require.NoError(t, cart.Add(5, 2))
	require.NoError(t, cart.Add(5, 3))
	require.Len(t, cart.Lines, 1)
	require.Equal(t, int64(5), cart.Lines[0].Quantity)
}

func TestAdd_PreservesInsertionOrder(t *testing.T) {
	cart := NewCart(1)
	require.NoError(t, cart.Add(9, 1))
	require.NoError(t, cart.Add(3, 1))
	require.NoError(t, cart.Add(6, 1))
	require.Equal(t, []int64{9, 3, 6}, []int64{cart.Lines[0].ProductID, cart.Lines[1].ProductID, cart.Lines[2].ProductID})
}

func TestAdd_RejectsInvalidInput(t *testing.T) {
	cart := NewCart(1)
	require.ErrorIs(t, cart.Add(0, 1), ErrInvalidProductID)
	require.ErrorIs(t, cart.Add(1, 0), ErrInvalidQuantity)
	require.True(t, cart.IsEmpty())
}

func TestRemove_AbsentProductIsNoop(t *testing.T) {
	cart := NewCart(1)
	require.NoError(t, cart.Add(1, 1))
	cart.Remove(42)
	require.Len(t, cart.Lines, 1)
	cart.Remove(1)
	require.True(t, cart.IsEmpty())
}

func TestValidate_RejectsDuplicateLines(t *testing.T) {
	cart := &Cart{UserID: 1, Lines: []CartLine{
		{ProductID: 1, Quantity: 1},
		{ProductID: 1, Quantity: 2},
	}}
	require.Error(t, cart.Validate())
}
