package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartTotalAmount(t *testing.T) {
	cart := &Cart{
		Items: []CartItem{
			{ProductID: "p1", Price: 1000, Quantity: 2},
			{ProductID: "p2", Price: 2500, Quantity: 1},
		},
	}
	assert.Equal(t, int64(4500), cart.TotalAmount())
}

func TestCartTotalAmountEmpty(t *testing.T) {
	cart := &Cart{}
	assert.Equal(t, int64(0), cart.TotalAmount())
}

func TestCartItemCount(t *testing.T) {
	cart := &Cart{
		Items: []CartItem{
			{ProductID: "p1", Quantity: 2},
			{ProductID: "p2", Quantity: 3},
		},
	}
	assert.Equal(t, 5, cart.ItemCount())
}

func TestCartFindItemIndex(t *testing.T) {
	cart := &Cart{
		Items: []CartItem{
			{ProductID: "p1"},
			{ProductID: "p2"},
		},
	}

	assert.Equal(t, 0, cart.FindItemIndex("p1"))
	assert.Equal(t, 1, cart.FindItemIndex("p2"))
	assert.Equal(t, -1, cart.FindItemIndex("p3"))
}
