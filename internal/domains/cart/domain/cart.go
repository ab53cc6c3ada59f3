package domain

import "errors"

var (
	ErrInvalidProductID = errors.New("product id must be greater than zero")
	ErrInvalidQuantity  = errors.New("quantity must be greater than zero")
)

// CartLine is one product entry in a cart.
type CartLine struct {
	ProductID int64
	Quantity  int64
}

// Cart is the ordered set of lines a user intends to buy. Product identifiers
// are unique within a cart: adding a product that is already present increments
// the existing line instead of appending a duplicate.
type Cart struct {
	UserID int64
	Lines  []CartLine
}

// NewCart returns an empty cart owned by the given user.
func NewCart(userID int64) *Cart {
	return &Cart{UserID: userID}
}

// Add merges the given line into the cart, preserving insertion order for new
// products.
func (c *Cart) Add(productID, quantity int64) error {
	if productID <= 0 {
		return ErrInvalidProductID
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity += quantity
			return nil
		}
	}
	c.Lines = append(c.Lines, CartLine{ProductID: productID, Quantity: quantity})
	return nil
}

// Remove drops the line for the given product. Removing an absent product is a
// no-op.
func (c *Cart) Remove(productID int64) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Validate enforces invariants across all lines.
func (c *Cart) Validate() error {
	seen := make(map[int64]struct{}, len(c.Lines))
	for _, line := range c.Lines {
		if line.ProductID <= 0 {
			return ErrInvalidProductID
		}
		if line.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if _, dup := seen[line.ProductID]; dup {
			return errors.New("duplicate product in cart")
		}
		seen[line.ProductID] = struct{}{}
	}
	return nil
}
