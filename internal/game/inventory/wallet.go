package inventory

import "fmt"

// Wallet holds a non-negative gold balance.
type Wallet struct {
	balance int
}

// NewWallet creates a Wallet holding initial gold; negative values clamp to zero.
func NewWallet(initial int) *Wallet {
	if initial < 0 {
		initial = 0
	}
	return &Wallet{balance: initial}
}

// Balance returns the current gold.
func (w *Wallet) Balance() int { return w.balance }

// CanAfford reports whether amount can be spent.
func (w *Wallet) CanAfford(amount int) bool {
	return amount >= 0 && amount <= w.balance
}

// Add deposits amount.
//
// Precondition: amount >= 0.
func (w *Wallet) Add(amount int) error {
	if amount < 0 {
		return fmt.Errorf("depositing %d gold: %w", amount, ErrInvalidQuantity)
	}
	w.balance += amount
	return nil
}

// Spend withdraws amount.
//
// Postcondition: On error the balance is unchanged.
func (w *Wallet) Spend(amount int) error {
	if amount < 0 {
		return fmt.Errorf("spending %d gold: %w", amount, ErrInvalidQuantity)
	}
	if amount > w.balance {
		return fmt.Errorf("spending %d gold with %d held: %w", amount, w.balance, ErrInsufficientFunds)
	}
	w.balance -= amount
	return nil
}

// FormatGold renders an amount with singular/plural form.
func FormatGold(amount int) string {
	if amount == 1 {
		return "1 gold piece"
	}
	return fmt.Sprintf("%d gold pieces", amount)
}
