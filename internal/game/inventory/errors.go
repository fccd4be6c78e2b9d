package inventory

import (
	"errors"
	"fmt"
)

var (
	// ErrItemNotFound matches every *ItemNotFoundError via errors.Is.
	ErrItemNotFound = errors.New("item not found")
	// ErrInsufficientQuantity matches every *InsufficientQuantityError via errors.Is.
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	// ErrInvalidQuantity is returned when a non-positive quantity is requested.
	ErrInvalidQuantity = errors.New("quantity must be positive")
	// ErrInsufficientFunds is returned when a wallet cannot cover a spend.
	ErrInsufficientFunds = errors.New("not enough gold")
)

// ItemNotFoundError reports a missing item.
type ItemNotFoundError struct {
	Name string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item %q not found in inventory", e.Name)
}

// Is makes errors.Is(err, ErrItemNotFound) true.
func (e *ItemNotFoundError) Is(target error) bool {
	return target == ErrItemNotFound
}

// InsufficientQuantityError reports a removal larger than the held stack.
type InsufficientQuantityError struct {
	Name      string
	Requested int
	Available int
}

func (e *InsufficientQuantityError) Error() string {
	return fmt.Sprintf("cannot remove %d of %s, only %d available", e.Requested, e.Name, e.Available)
}

// Is makes errors.Is(err, ErrInsufficientQuantity) true.
func (e *InsufficientQuantityError) Is(target error) bool {
	return target == ErrInsufficientQuantity
}
