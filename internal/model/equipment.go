package model

// EquipSlot identifies where a piece of equipment is worn.
type EquipSlot uint8

const (
	SlotWeapon EquipSlot = iota
	SlotHelmet
	SlotChest
	SlotLegs
	SlotBoots
	SlotGloves
	SlotNecklace
	SlotRing1
	SlotRing2

	equipSlotCount
)

// String returns the human-readable slot name.
func (s EquipSlot) String() string {
	switch s {
	case SlotWeapon:
		return "Weapon"
	case SlotHelmet:
		return "Helmet"
	case SlotChest:
		return "Chest"
	case SlotLegs:
		return "Legs"
	case SlotBoots:
		return "Boots"
	case SlotGloves:
		return "Gloves"
	case SlotNecklace:
		return "Necklace"
	case SlotRing1:
		return "Ring1"
	case SlotRing2:
		return "Ring2"
	default:
		return "Unknown"
	}
}

// statWeights holds the contribution weight of each stat to an item's
// power rating. Offensive stats count more than utility stats.
var statWeights = map[Stat]float64{
	StatStrength:     2.0,
	StatDefense:      1.8,
	StatTechnique:    1.5,
	StatDexterity:    1.5,
	StatSpeed:        1.2,
	StatAgility:      1.2,
	StatEndurance:    1.0,
	StatIntelligence: 1.0,
}

func statWeight(s Stat) float64 {
	if w, ok := statWeights[s]; ok {
		return w
	}
	return 1.0
}

// Equipment is a wearable item contributing a flat stat-bonus map while
// equipped. Power rating = Σ(bonus × statWeight) × rarityMultiplier.
type Equipment struct {
	Item

	Slot          EquipSlot
	StatBonuses   BonusMap
	PowerRating   float64
	Durability    float64
	MaxDurability float64
}

// NewEquipment creates an unequipped, fully repaired piece of equipment.
func NewEquipment(name, description string, slot EquipSlot, rarity Rarity, goldValue int64) *Equipment {
	eq := &Equipment{
		Item:          *NewItem(name, description, rarity, goldValue),
		Slot:          slot,
		StatBonuses:   make(BonusMap),
		Durability:    100,
		MaxDurability: 100,
	}
	eq.MaxStackSize = 1 // equipment never stacks
	return eq
}

// AddStatBonus adds to the item's bonus for a stat and refreshes the power
// rating. Unknown stats are ignored.
func (eq *Equipment) AddStatBonus(s Stat, bonus int32) {
	if !s.Valid() {
		return
	}
	eq.StatBonuses[s] += bonus
	eq.recalculatePowerRating()
}

func (eq *Equipment) recalculatePowerRating() {
	total := 0.0
	for s, v := range eq.StatBonuses {
		total += float64(v) * statWeight(s)
	}
	eq.PowerRating = total * eq.Rarity.Multiplier()
}

// TakeDamage wears the item down; durability never drops below zero.
func (eq *Equipment) TakeDamage(amount float64) {
	eq.Durability -= amount
	if eq.Durability < 0 {
		eq.Durability = 0
	}
}

// Repair restores durability up to the maximum.
func (eq *Equipment) Repair(amount float64) {
	eq.Durability += amount
	if eq.Durability > eq.MaxDurability {
		eq.Durability = eq.MaxDurability
	}
}

// RepairCost returns the gold-sink price of a full repair: 10% of the
// item's value scaled by missing durability.
func (eq *Equipment) RepairCost() int64 {
	if eq.MaxDurability <= 0 {
		return 0
	}
	missing := 1 - eq.Durability/eq.MaxDurability
	return int64(float64(eq.GoldValue) * 0.1 * missing)
}

// DurabilityPercent returns durability in [0,1].
func (eq *Equipment) DurabilityPercent() float64 {
	if eq.MaxDurability <= 0 {
		return 0
	}
	return eq.Durability / eq.MaxDurability
}

// Broken reports whether the item can no longer be worn.
func (eq *Equipment) Broken() bool {
	return eq.Durability <= 0
}
