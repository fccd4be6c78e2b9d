package inventory_test

import (
	"strings"
	"testing"

	"pgregory.net/rapid"

	"github.com/Kingly77/VentureTextAdventure/internal/game/inventory"
)

func TestItem_Validate_RejectsEmptyName(t *testing.T) {
	it := &inventory.Item{Name: "  ", Quantity: 1}
	if err := it.Validate(); err == nil {
		t.Fatal("expected error for empty name, got nil")
	}
}

func TestItem_Validate_RejectsNegativeCost(t *testing.T) {
	it := &inventory.Item{Name: "junk", Cost: -1, Quantity: 1}
	if err := it.Validate(); err == nil {
		t.Fatal("expected error for negative cost, got nil")
	}
}

func TestItem_Validate_RejectsZeroQuantity(t *testing.T) {
	it := &inventory.Item{Name: "junk"}
	if err := it.Validate(); err == nil {
		t.Fatal("expected error for zero quantity, got nil")
	}
}

func TestItem_Validate_RejectsUnknownEffect(t *testing.T) {
	it := &inventory.Item{Name: "potion", Quantity: 1, Effect: "explode"}
	if err := it.Validate(); err == nil {
		t.Fatal("expected error for unknown effect, got nil")
	}
}

func TestItem_Validate_RejectsNegativeEffectValue(t *testing.T) {
	it := &inventory.Item{Name: "potion", Quantity: 1, Effect: inventory.EffectHeal, EffectValue: -5}
	if err := it.Validate(); err == nil {
		t.Fatal("expected error for negative effect value, got nil")
	}
}

func TestItem_Validate_ReportsEveryProblem(t *testing.T) {
	it := &inventory.Item{Name: "", Cost: -1}
	err := it.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, want := range []string{"name", "cost", "quantity"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestItem_Validate_AcceptsMinimal(t *testing.T) {
	it := &inventory.Item{Name: "rock", Quantity: 1}
	if err := it.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestItem_KeyAndString(t *testing.T) {
	it := &inventory.Item{Name: " Iron Key ", Quantity: 2}
	if got := it.Key(); got != "iron key" {
		t.Errorf("Key() = %q, want %q", got, "iron key")
	}
	if got := (&inventory.Item{Name: "torch", Quantity: 3}).String(); got != "torch x3" {
		t.Errorf("String() = %q, want %q", got, "torch x3")
	}
}

func TestItem_HasTagIgnoresCase(t *testing.T) {
	it := &inventory.Item{Name: "torch", Quantity: 1, Tags: []string{"Fire", "lightable"}}
	if !it.HasTag(inventory.TagFire) {
		t.Error("expected torch to carry the fire tag")
	}
	if it.HasTag(inventory.TagKey) {
		t.Error("torch should not carry the key tag")
	}
}

func TestProperty_NormalizeName_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		name := rapid.StringMatching(`[ ]{0,2}[A-Za-z][A-Za-z ]{0,12}[ ]{0,2}`).Draw(t, "name")
		once := inventory.NormalizeName(name)
		if inventory.NormalizeName(once) != once {
			t.Fatalf("NormalizeName not idempotent for %q", name)
		}
		if once != strings.ToLower(once) || once != strings.TrimSpace(once) {
			t.Fatalf("NormalizeName(%q) = %q is not lowercase and trimmed", name, once)
		}
	})
}

func TestProperty_Split_LeavesOriginal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		qty := rapid.IntRange(1, 50).Draw(t, "qty")
		take := rapid.IntRange(1, qty).Draw(t, "take")
		it := &inventory.Item{Name: "arrow", Quantity: qty, Tags: []string{"weapon"}}
		part := it.Split(take)
		if part.Quantity != take || it.Quantity != qty {
			t.Fatalf("split %d of %d gave part=%d original=%d", take, qty, part.Quantity, it.Quantity)
		}
		part.Tags[0] = "changed"
		if it.Tags[0] != "weapon" {
			t.Fatal("split shares tag storage with the original")
		}
	})
}
