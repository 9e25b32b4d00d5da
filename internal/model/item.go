package model

import "fmt"

// Rarity grades an item and scales its power rating.
type Rarity uint8

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
	RarityUnique
)

// String returns the human-readable rarity name.
func (r Rarity) String() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityUncommon:
		return "Uncommon"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	case RarityUnique:
		return "Unique"
	default:
		return "Unknown"
	}
}

// Multiplier returns the power-rating multiplier for the rarity.
func (r Rarity) Multiplier() float64 {
	switch r {
	case RarityUncommon:
		return 1.2
	case RarityRare:
		return 1.5
	case RarityEpic:
		return 2.0
	case RarityLegendary:
		return 3.0
	case RarityUnique:
		return 5.0
	default:
		return 1.0
	}
}

// Item is the base of everything that can sit in an inventory slot.
type Item struct {
	Name         string
	Description  string
	Rarity       Rarity
	GoldValue    int64
	MaxStackSize int32

	// Usage gates checked by Inventory and the host layer.
	LevelRequirement    int32
	FactionRequirements []string
}

// NewItem creates a stackable base item.
func NewItem(name, description string, rarity Rarity, goldValue int64) *Item {
	return &Item{
		Name:         name,
		Description:  description,
		Rarity:       rarity,
		GoldValue:    goldValue,
		MaxStackSize: 99,
	}
}

// UsableBy reports whether a player meets the item's level and faction
// gates. An empty faction requirement list admits every faction.
func (it *Item) UsableBy(level int32, faction string) bool {
	if level < it.LevelRequirement {
		return false
	}
	if len(it.FactionRequirements) == 0 {
		return true
	}
	for _, f := range it.FactionRequirements {
		if f == faction {
			return true
		}
	}
	return false
}

func (it *Item) String() string {
	return fmt.Sprintf("%s [%s]", it.Name, it.Rarity)
}
