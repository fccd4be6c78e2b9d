package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kingly77/VentureTextAdventure/internal/game/inventory"
)

func TestCatalog_RegisterAndNewStack(t *testing.T) {
	cat := inventory.NewCatalog()
	require.NoError(t, cat.Register(&inventory.Item{Name: "Torch", Cost: 2, Tags: []string{"fire"}, Quantity: 1}))

	stack, err := cat.NewStack("torch", 3)
	require.NoError(t, err)
	assert.Equal(t, 3, stack.Quantity)
	assert.True(t, stack.HasTag("fire"))

	tmpl, ok := cat.Lookup("TORCH")
	require.True(t, ok)
	assert.Equal(t, 1, tmpl.Quantity, "template must not change")
	assert.Equal(t, []string{"Torch"}, cat.Names())
}

func TestCatalog_Errors(t *testing.T) {
	cat := inventory.NewCatalog()
	require.NoError(t, cat.Register(&inventory.Item{Name: "key", Quantity: 1}))

	assert.Error(t, cat.Register(&inventory.Item{Name: "Key", Quantity: 1}))
	assert.Error(t, cat.Register(&inventory.Item{Name: "", Quantity: 1}))

	_, err := cat.NewStack("lamp", 1)
	assert.ErrorIs(t, err, inventory.ErrItemNotFound)
	_, err = cat.NewStack("key", 0)
	assert.ErrorIs(t, err, inventory.ErrInvalidQuantity)
	assert.Equal(t, 1, cat.Len())
}

func TestWallet(t *testing.T) {
	w := inventory.NewWallet(-5)
	assert.Equal(t, 0, w.Balance())

	require.NoError(t, w.Add(30))
	assert.True(t, w.CanAfford(30))
	assert.False(t, w.CanAfford(31))

	assert.ErrorIs(t, w.Spend(40), inventory.ErrInsufficientFunds)
	assert.Equal(t, 30, w.Balance())
	require.NoError(t, w.Spend(12))
	assert.Equal(t, 18, w.Balance())

	assert.ErrorIs(t, w.Add(-1), inventory.ErrInvalidQuantity)
	assert.Equal(t, "1 gold piece", inventory.FormatGold(1))
	assert.Equal(t, "18 gold pieces", inventory.FormatGold(18))
}
