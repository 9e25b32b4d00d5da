package model

import "math/rand/v2"

// LegendaryType categorizes a legendary item's ability set.
type LegendaryType uint8

const (
	LegendaryWeapon LegendaryType = iota
	LegendaryArmor
	LegendaryAccessory
	LegendaryArtifact
)

// Ability is an active or passive power carried by a legendary item.
type Ability struct {
	Name        string
	Description string
	Power       float64
	Cooldown    float64 // seconds
	Passive     bool
}

// LegendaryItem is a named, usually one-of-a-kind piece of equipment with
// abilities, a theft model and a one-shot purification upgrade.
type LegendaryItem struct {
	Equipment

	Type         LegendaryType
	Lore         string
	Unique       bool   // one per server; unique items can never be stolen
	CurrentOwner string // player name, empty while unowned

	Abilities []Ability

	// Theft model.
	Stealable            bool
	StealDifficulty      float64 // [0,1], higher = harder
	StealProtectionLevel int32   // raised by paid upgrades, never lowered

	// Purification: a single permanent transition.
	Purifiable      bool
	Purified        bool
	PurifiedBonuses BonusMap
}

// NewLegendaryItem creates a legendary item bound to an equip slot.
// Legendary items never stack and start unowned.
func NewLegendaryItem(name, lore string, slot EquipSlot, typ LegendaryType, faction string) *LegendaryItem {
	li := &LegendaryItem{
		Equipment:       *NewEquipment(name, lore, slot, RarityLegendary, 50000),
		Type:            typ,
		Lore:            lore,
		Unique:          true,
		Stealable:       true,
		StealDifficulty: 0.8,
		Purifiable:      true,
		PurifiedBonuses: make(BonusMap),
	}
	if faction != "" {
		li.FactionRequirements = []string{faction}
	}
	return li
}

// StealAttempt describes the parties of a theft attempt. Victim fields are
// protections; thief fields are advantages.
type StealAttempt struct {
	ThiefName          string
	ThiefLevel         int32
	ThiefDexterity     int32
	VictimLevel        int32
	VictimIntelligence int32
}

// StealChance computes the success probability of the attempt:
//
//	clamp((0.10 + 0.01×thiefLvl + 0.005×thiefDex
//	       − 0.01×victimLvl − 0.005×victimInt
//	       − 0.1×protection) × (1 − difficulty), 0.01, 0.50)
//
// The result is advisory only; TrySteal applies the unique-item override.
func (li *LegendaryItem) StealChance(a StealAttempt) float64 {
	chance := 0.10 +
		float64(a.ThiefLevel)*0.01 +
		float64(a.ThiefDexterity)*0.005 -
		float64(a.VictimLevel)*0.01 -
		float64(a.VictimIntelligence)*0.005 -
		float64(li.StealProtectionLevel)*0.1

	chance *= 1 - li.StealDifficulty

	if chance < 0.01 {
		return 0.01
	}
	if chance > 0.50 {
		return 0.50
	}
	return chance
}

// TrySteal resolves a theft attempt with a single uniform draw from rng.
// Unique or theft-proof items always fail regardless of the computed
// chance. On success the item changes owner.
func (li *LegendaryItem) TrySteal(a StealAttempt, rng *rand.Rand) bool {
	if !li.Stealable || li.Unique {
		return false
	}
	if rng.Float64() >= li.StealChance(a) {
		return false
	}
	li.CurrentOwner = a.ThiefName
	return true
}

// ProtectionUpgradeCost is the gold price of one theft-protection level.
const ProtectionUpgradeCost = 1000

// PurchaseProtectionUpgrade spends the owner's gold on one protection
// level. False when the wallet cannot cover it.
func (li *LegendaryItem) PurchaseProtectionUpgrade(p *Player) bool {
	if !p.SpendGold(ProtectionUpgradeCost) {
		return false
	}
	li.UpgradeProtection()
	return true
}

// UpgradeProtection raises the theft protection level by one and hardens
// the steal difficulty (capped at 0.95).
func (li *LegendaryItem) UpgradeProtection() {
	li.StealProtectionLevel++
	li.StealDifficulty += 0.05
	if li.StealDifficulty > 0.95 {
		li.StealDifficulty = 0.95
	}
}

// TryPurify applies the one-shot purification: ability power ×1.5,
// cooldown ÷1.25, and the purified bonus map merged permanently into the
// item's stat bonuses. A second call is a no-op returning false.
func (li *LegendaryItem) TryPurify() bool {
	if !li.Purifiable || li.Purified {
		return false
	}
	li.Purified = true

	for s, v := range li.PurifiedBonuses {
		li.AddStatBonus(s, v)
	}
	for i := range li.Abilities {
		li.Abilities[i].Power *= 1.5
		li.Abilities[i].Cooldown /= 1.25
	}
	return true
}
