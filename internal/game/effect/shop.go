package effect

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Kingly77/VentureTextAdventure/internal/game/character"
	"github.com/Kingly77/VentureTextAdventure/internal/game/inventory"
	"github.com/Kingly77/VentureTextAdventure/internal/game/world"
)

// DefaultShopPurse is the gold a shopkeeper starts with.
const DefaultShopPurse = 1000

// ShopOptions configures a Shop.
type ShopOptions struct {
	Keeper string `yaml:"shopkeeper_name"`
	// Prices overrides item costs by item name.
	Prices map[string]int `yaml:"prices"`
	Purse  *int           `yaml:"purse"`
}

// Shop turns its room's floor into wares. Taking an item buys one unit;
// dropping an item sells one unit back at half price.
type Shop struct {
	world.BaseEffect
	keeper string
	prices map[string]int
	purse  *inventory.Wallet
	room   *world.Room
	logger *zap.Logger
}

// NewShop returns a Shop selling the contents of room.
func NewShop(room *world.Room, opts ShopOptions, logger *zap.Logger) *Shop {
	if opts.Keeper == "" {
		opts.Keeper = "The Merchant"
	}
	purse := DefaultShopPurse
	if opts.Purse != nil {
		purse = *opts.Purse
	}
	prices := make(map[string]int, len(opts.Prices))
	for name, p := range opts.Prices {
		prices[inventory.NormalizeName(name)] = p
	}
	return &Shop{
		keeper: opts.Keeper,
		prices: prices,
		purse:  inventory.NewWallet(purse),
		room:   room,
		logger: logger,
	}
}

func newShopFromSpec(room *world.Room, params yaml.Node, deps Deps) (world.Effect, error) {
	var opts ShopOptions
	if err := decodeParams(params, &opts); err != nil {
		return nil, err
	}
	for name, p := range opts.Prices {
		if p < 0 {
			return nil, fmt.Errorf("shop price for %q must be >= 0, got %d", name, p)
		}
	}
	return NewShop(room, opts, deps.Logger), nil
}

// Price returns the unit price of it.
func (s *Shop) Price(it *inventory.Item) int {
	if p, ok := s.prices[it.Key()]; ok {
		return p
	}
	return it.Cost
}

// SellPrice returns what the shop pays for one unit of it.
func (s *Shop) SellPrice(it *inventory.Item) int {
	return s.Price(it) / 2
}

// Purse returns the shopkeeper's gold.
func (s *Shop) Purse() *inventory.Wallet { return s.purse }

func (s *Shop) ModifyDescription(current string) (string, bool) {
	var b strings.Builder
	b.WriteString(current)
	fmt.Fprintf(&b, "\n\n%s's shop:", s.keeper)
	for _, it := range s.room.Items().Items() {
		fmt.Fprintf(&b, "\n - %s (%dg)", it.Name, s.Price(it))
	}
	return b.String(), true
}

func (s *Shop) HandleTake(h *character.Hero, itemName string) (string, bool) {
	it, ok := s.room.Items().Get(itemName)
	if !ok {
		return "", false
	}
	price := s.Price(it)
	if !h.Wallet().CanAfford(price) {
		return fmt.Sprintf("%s says: 'You can't afford that.'", s.keeper), true
	}
	if err := h.Wallet().Spend(price); err != nil {
		return fmt.Sprintf("%s says: 'You can't afford that.'", s.keeper), true
	}
	bought, err := s.room.RemoveItem(h, itemName, 1)
	if err != nil {
		s.refund(h, price, err)
		return fmt.Sprintf("%s says: 'That one's not for sale.'", s.keeper), true
	}
	msgs, err := h.Collect(bought)
	if err != nil {
		s.refund(h, price, err)
		_ = s.room.AddItem(bought)
		return fmt.Sprintf("%s says: 'You can't carry that.'", s.keeper), true
	}
	_ = s.purse.Add(price)
	out := append([]string{fmt.Sprintf("%s sells you the %s for %d gold.", s.keeper, bought.Name, price)}, msgs...)
	return strings.Join(out, "\n"), true
}

func (s *Shop) refund(h *character.Hero, price int, cause error) {
	s.logger.Warn("shop sale failed", zap.String("keeper", s.keeper), zap.Error(cause))
	_ = h.Wallet().Add(price)
}

func (s *Shop) HandleDrop(h *character.Hero, itemName string) (string, bool) {
	it, ok := h.Inventory().Get(itemName)
	if !ok {
		return "", false
	}
	if s.Price(it) <= 0 {
		return fmt.Sprintf("%s says: 'I'm not buying that.'", s.keeper), true
	}
	gold := s.SellPrice(it)
	if err := s.purse.Spend(gold); err != nil {
		return fmt.Sprintf("%s says: 'I can't afford that right now.'", s.keeper), true
	}
	sold, err := h.Inventory().Transfer(s.room.Items(), itemName, 1)
	if err != nil {
		_ = s.purse.Add(gold)
		return fmt.Sprintf("%s says: 'I'm not buying that.'", s.keeper), true
	}
	_ = h.Wallet().Add(gold)
	return fmt.Sprintf("%s gives you %d gold for the %s.", s.keeper, gold, sold.Name), true
}

func (s *Shop) Help() string {
	return "take <item>: buy it; drop <item>: sell it for half price"
}
