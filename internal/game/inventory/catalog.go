package inventory

import (
	"fmt"
	"sort"
)

// Catalog holds item templates declared by a world file, indexed by normalized name.
// Rooms, shops, and the starting hero reference templates by name and receive fresh stacks.
type Catalog struct {
	templates map[string]*Item
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{templates: make(map[string]*Item)}
}

// Register adds tmpl to the catalog.
//
// Precondition: tmpl must not be nil.
// Postcondition: Lookup(tmpl.Name) returns tmpl; returns error if the name is
// already registered or tmpl is invalid.
func (c *Catalog) Register(tmpl *Item) error {
	if err := tmpl.Validate(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	key := tmpl.Key()
	if _, exists := c.templates[key]; exists {
		return fmt.Errorf("catalog: item %q already registered", tmpl.Name)
	}
	c.templates[key] = tmpl
	return nil
}

// Lookup returns the template for name.
func (c *Catalog) Lookup(name string) (*Item, bool) {
	t, ok := c.templates[NormalizeName(name)]
	return t, ok
}

// NewStack returns a fresh stack of quantity units of the named template.
//
// Postcondition: the returned stack shares no state with the template.
func (c *Catalog) NewStack(name string, quantity int) (*Item, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("catalog: stack of %q: %w", name, ErrInvalidQuantity)
	}
	t, ok := c.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("catalog: %w", &ItemNotFoundError{Name: name})
	}
	return t.Split(quantity), nil
}

// Names returns all registered template names in sorted order.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.templates))
	for _, t := range c.templates {
		out = append(out, t.Name)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of registered templates.
func (c *Catalog) Len() int {
	return len(c.templates)
}
