package model

// ConsumableKind selects the effect a consumable applies on use.
type ConsumableKind uint8

const (
	ConsumableHealth ConsumableKind = iota
	ConsumableMana
)

// Consumable is a stackable item with an instant restore effect.
type Consumable struct {
	Item

	Kind        ConsumableKind
	EffectValue int32
}

// NewConsumable creates a stackable restore item.
func NewConsumable(name, description string, kind ConsumableKind, value int32, goldValue int64) *Consumable {
	return &Consumable{
		Item:        *NewItem(name, description, RarityCommon, goldValue),
		Kind:        kind,
		EffectValue: value,
	}
}

// Use applies the consumable's effect to the player. Returns false when
// the effect would be wasted (already at the relevant maximum).
func (c *Consumable) Use(p *Player) bool {
	switch c.Kind {
	case ConsumableHealth:
		return p.Heal(c.EffectValue)
	case ConsumableMana:
		return p.RestoreMana(c.EffectValue)
	default:
		return false
	}
}
