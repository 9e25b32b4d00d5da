package model

import "sync"

// Slottable is anything that can occupy an inventory slot.
// *Item, *Equipment, *Consumable and *LegendaryItem all qualify through
// the embedded Item.
type Slottable interface {
	ItemInfo() *Item
}

// ItemInfo returns the item's base data; it makes every item type
// Slottable through embedding.
func (it *Item) ItemInfo() *Item { return it }

// slotEntry pairs a slotted item with its stack count.
type slotEntry struct {
	item     Slottable
	quantity int32
}

// DefaultInventorySize is the slot count of a fresh inventory.
const DefaultInventorySize = 30

// Inventory holds a player's carried items and worn equipment. An item is
// owned by exactly one bag slot or one equip slot, never both. Every
// equip/unequip transition recomputes the flat equipment bonus map and
// pushes it into the attribute ledger wholesale.
type Inventory struct {
	mu sync.RWMutex

	stats    *PlayerStats
	slots    []slotEntry
	equipped [equipSlotCount]*Equipment
	// wornItem keeps the original bag entry (e.g. a legendary wrapper)
	// so unequipping returns the same value that was equipped.
	wornItem [equipSlotCount]Slottable
}

// NewInventory creates an empty inventory feeding equipment bonuses into
// the given ledger.
func NewInventory(stats *PlayerStats, size int) *Inventory {
	if size <= 0 {
		size = DefaultInventorySize
	}
	return &Inventory{
		stats: stats,
		slots: make([]slotEntry, size),
	}
}

// AddItem places an item into the bag, stacking onto an existing stack of
// the same name when allowed. Returns false when the bag is full.
func (inv *Inventory) AddItem(item Slottable, quantity int32) bool {
	if item == nil || quantity <= 0 {
		return false
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()

	info := item.ItemInfo()

	// Stack onto an existing pile first.
	if info.MaxStackSize > 1 {
		for i := range inv.slots {
			e := &inv.slots[i]
			if e.item == nil || e.item.ItemInfo().Name != info.Name {
				continue
			}
			if e.quantity+quantity <= info.MaxStackSize {
				e.quantity += quantity
				return true
			}
		}
	}

	for i := range inv.slots {
		if inv.slots[i].item == nil {
			inv.slots[i] = slotEntry{item: item, quantity: quantity}
			return true
		}
	}
	return false
}

// RemoveItem takes quantity of the named item out of the bag.
// Returns false if the bag holds fewer than requested.
func (inv *Inventory) RemoveItem(name string, quantity int32) bool {
	if quantity <= 0 {
		return false
	}
	inv.mu.Lock()
	defer inv.mu.Unlock()

	for i := range inv.slots {
		e := &inv.slots[i]
		if e.item == nil || e.item.ItemInfo().Name != name {
			continue
		}
		if e.quantity < quantity {
			return false
		}
		e.quantity -= quantity
		if e.quantity == 0 {
			*e = slotEntry{}
		}
		return true
	}
	return false
}

// Count returns how many of the named item the bag holds.
func (inv *Inventory) Count(name string) int32 {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	var total int32
	for i := range inv.slots {
		if inv.slots[i].item != nil && inv.slots[i].item.ItemInfo().Name == name {
			total += inv.slots[i].quantity
		}
	}
	return total
}

// FreeSlots returns the number of empty bag slots.
func (inv *Inventory) FreeSlots() int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	free := 0
	for i := range inv.slots {
		if inv.slots[i].item == nil {
			free++
		}
	}
	return free
}

// Equipped returns the item worn in the given slot, nil when empty.
func (inv *Inventory) Equipped(slot EquipSlot) *Equipment {
	if slot >= equipSlotCount {
		return nil
	}
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.equipped[slot]
}

// Equip moves a bagged piece of equipment onto its equip slot, swapping
// any currently worn item back into the bag. Broken equipment cannot be
// worn. Returns false and mutates nothing on failure.
func (inv *Inventory) Equip(eq *Equipment) bool {
	if eq == nil || eq.Broken() || eq.Slot >= equipSlotCount {
		return false
	}
	inv.mu.Lock()

	// Match on the embedded Item identity: a *LegendaryItem in the bag and
	// its embedded *Equipment share the same base Item.
	idx := -1
	for i := range inv.slots {
		if inv.slots[i].item != nil && inv.slots[i].item.ItemInfo() == eq.ItemInfo() {
			idx = i
			break
		}
	}
	if idx == -1 {
		inv.mu.Unlock()
		return false
	}

	prevItem := inv.wornItem[eq.Slot]
	worn := inv.slots[idx].item
	inv.slots[idx] = slotEntry{}
	inv.equipped[eq.Slot] = eq
	inv.wornItem[eq.Slot] = worn
	if prevItem != nil {
		inv.slots[idx] = slotEntry{item: prevItem, quantity: 1}
	}

	inv.pushEquipmentBonusesLocked()
	inv.mu.Unlock()
	return true
}

// Unequip takes the worn item out of the slot and back into the bag.
// Fails when the slot is empty or the bag is full.
func (inv *Inventory) Unequip(slot EquipSlot) bool {
	if slot >= equipSlotCount {
		return false
	}
	inv.mu.Lock()

	eq := inv.equipped[slot]
	if eq == nil {
		inv.mu.Unlock()
		return false
	}

	idx := -1
	for i := range inv.slots {
		if inv.slots[i].item == nil {
			idx = i
			break
		}
	}
	if idx == -1 {
		inv.mu.Unlock()
		return false
	}

	worn := inv.wornItem[slot]
	inv.equipped[slot] = nil
	inv.wornItem[slot] = nil
	inv.slots[idx] = slotEntry{item: worn, quantity: 1}

	inv.pushEquipmentBonusesLocked()
	inv.mu.Unlock()
	return true
}

// EquipmentBonuses sums the stat bonuses of everything currently worn
// into one flat map. Empty slots contribute nothing.
func (inv *Inventory) EquipmentBonuses() BonusMap {
	inv.mu.RLock()
	defer inv.mu.RUnlock()
	return inv.equipmentBonusesLocked()
}

func (inv *Inventory) equipmentBonusesLocked() BonusMap {
	total := make(BonusMap)
	for _, eq := range inv.equipped {
		if eq == nil {
			continue
		}
		for s, v := range eq.StatBonuses {
			total[s] += v
		}
	}
	return total
}

// EquippedPowerRating sums the power ratings of everything worn; feeds
// the auto-combat player power.
func (inv *Inventory) EquippedPowerRating() float64 {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	total := 0.0
	for _, eq := range inv.equipped {
		if eq != nil {
			total += eq.PowerRating
		}
	}
	return total
}

// pushEquipmentBonusesLocked recomputes the aggregate and replaces the
// ledger's equipment layer. Eager, not lazy: the ledger must be current
// the moment the transition completes.
func (inv *Inventory) pushEquipmentBonusesLocked() {
	if inv.stats != nil {
		inv.stats.SetEquipmentBonuses(inv.equipmentBonusesLocked())
	}
}
