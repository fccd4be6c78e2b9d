package inventory

import (
	"fmt"
	"sort"
)

// Inventory is a name-keyed collection of item stacks.
//
// Invariant: every held stack has Quantity >= 1.
type Inventory struct {
	items map[string]*Item
}

// New creates an empty Inventory.
func New() *Inventory {
	return &Inventory{items: make(map[string]*Item)}
}

// Add stores item, merging its quantity into an existing stack of the same name.
// The inventory takes ownership of item when no stack exists yet.
//
// Precondition: item is non-nil with Quantity >= 1.
// Postcondition: Quantity(item.Name) increases by item.Quantity.
func (inv *Inventory) Add(item *Item) error {
	if item == nil {
		return fmt.Errorf("adding item: nil item")
	}
	if item.Quantity <= 0 {
		return fmt.Errorf("adding %q: %w", item.Name, ErrInvalidQuantity)
	}
	key := item.Key()
	if held, ok := inv.items[key]; ok {
		held.Quantity += item.Quantity
		return nil
	}
	inv.items[key] = item
	return nil
}

// Remove takes quantity units of name out of the inventory and returns them as a new stack.
//
// Postcondition: On success the held stack shrinks by quantity and is dropped at zero.
// On error the inventory is unchanged.
func (inv *Inventory) Remove(name string, quantity int) (*Item, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("removing %q: %w", name, ErrInvalidQuantity)
	}
	key := NormalizeName(name)
	held, ok := inv.items[key]
	if !ok {
		return nil, &ItemNotFoundError{Name: name}
	}
	if quantity > held.Quantity {
		return nil, &InsufficientQuantityError{Name: held.Name, Requested: quantity, Available: held.Quantity}
	}
	if quantity == held.Quantity {
		delete(inv.items, key)
		return held, nil
	}
	held.Quantity -= quantity
	return held.Split(quantity), nil
}

// Get returns the held stack for name.
func (inv *Inventory) Get(name string) (*Item, bool) {
	it, ok := inv.items[NormalizeName(name)]
	return it, ok
}

// Has reports whether any units of name are held.
func (inv *Inventory) Has(name string) bool {
	_, ok := inv.items[NormalizeName(name)]
	return ok
}

// Quantity returns the held unit count of name, 0 when absent.
func (inv *Inventory) Quantity(name string) int {
	if it, ok := inv.items[NormalizeName(name)]; ok {
		return it.Quantity
	}
	return 0
}

// FindByTag returns the first held stack, in name order, carrying tag.
func (inv *Inventory) FindByTag(tag string) (*Item, bool) {
	for _, it := range inv.Items() {
		if it.HasTag(tag) {
			return it, true
		}
	}
	return nil, false
}

// Items returns the held stacks sorted by name.
func (inv *Inventory) Items() []*Item {
	out := make([]*Item, 0, len(inv.items))
	for _, it := range inv.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// Len returns the number of distinct stacks held.
func (inv *Inventory) Len() int {
	return len(inv.items)
}

// Transfer moves quantity units of name from inv into dst.
//
// Postcondition: On error neither inventory is modified.
func (inv *Inventory) Transfer(dst *Inventory, name string, quantity int) (*Item, error) {
	moved, err := inv.Remove(name, quantity)
	if err != nil {
		return nil, err
	}
	// Add mutates an existing destination stack, so hand it a copy to keep
	// the returned stack describing what moved.
	if err := dst.Add(moved.Split(moved.Quantity)); err != nil {
		_ = inv.Add(moved)
		return nil, err
	}
	return moved, nil
}
