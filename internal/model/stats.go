package model

import "sync"

// Stat identifies one of the fixed character attributes.
// Array-backed instead of string-keyed: a typo in a stat name is a compile
// error, while serialized snapshots still go through ParseStat and keep the
// "unknown key → no-op" behavior.
type Stat uint8

const (
	StatLevel Stat = iota
	StatStrength
	StatTechnique
	StatDexterity
	StatDefense
	StatEndurance
	StatSpeed
	StatAgility
	StatIntelligence

	statCount
)

var statNames = [statCount]string{
	StatLevel:        "level",
	StatStrength:     "strength",
	StatTechnique:    "technique",
	StatDexterity:    "dexterity",
	StatDefense:      "defense",
	StatEndurance:    "endurance",
	StatSpeed:        "speed",
	StatAgility:      "agility",
	StatIntelligence: "intelligence",
}

// String returns the snapshot key for the stat.
func (s Stat) String() string {
	if s >= statCount {
		return "unknown"
	}
	return statNames[s]
}

// Valid reports whether s is one of the defined stats.
func (s Stat) Valid() bool {
	return s < statCount
}

// ParseStat resolves a snapshot key back to a Stat.
// Returns false for unknown keys; callers treat that as a no-op.
func ParseStat(name string) (Stat, bool) {
	for i, n := range statNames {
		if n == name {
			return Stat(i), true
		}
	}
	return statCount, false
}

// AllStats returns the defined stats in declaration order.
func AllStats() []Stat {
	out := make([]Stat, 0, statCount)
	for s := Stat(0); s < statCount; s++ {
		out = append(out, s)
	}
	return out
}

// BonusMap is an additive stat contribution from one source layer
// (equipment or mount). Layers are replaced wholesale, never merged.
type BonusMap map[Stat]int32

// Clone returns an independent copy of the map (nil-safe).
func (b BonusMap) Clone() BonusMap {
	if b == nil {
		return nil
	}
	out := make(BonusMap, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// StatsListener receives change notifications from a PlayerStats ledger.
// Derived-value callbacks fire only when the value actually changed.
// Nil fields are skipped.
type StatsListener struct {
	OnStatChanged   func(stat Stat, newBase int32)
	OnHealthChanged func(newMaxHealth int32)
	OnManaChanged   func(newMaxMana int32)
}

// PlayerStats is the attribute ledger: base attributes plus two additive
// bonus layers (equipment, mount) and the derived health/mana values.
//
// Total(s) = base(s) + equipmentBonus(s) + mountBonus(s).
// MaxHealth = 100 + 5×Total(endurance) + 2×Total(strength).
// MaxMana   = 50 + 10×Total(intelligence).
type PlayerStats struct {
	mu sync.RWMutex

	base           [statCount]int32
	equipmentBonus BonusMap
	mountBonus     BonusMap
	maxHealth      int32
	maxMana        int32
	listeners      map[int]StatsListener
	nextListenerID int
}

// DefaultBaseStats returns the starting attribute block for a fresh
// character: level 1, everything else 10.
func DefaultBaseStats() BonusMap {
	out := make(BonusMap, statCount)
	for s := Stat(0); s < statCount; s++ {
		out[s] = 10
	}
	out[StatLevel] = 1
	return out
}

// NewPlayerStats creates a ledger from the given base attributes and bonus
// layers. Nil maps fall back to defaults (base) or empty layers (bonuses).
func NewPlayerStats(base, equipmentBonus, mountBonus BonusMap) *PlayerStats {
	if base == nil {
		base = DefaultBaseStats()
	}
	ps := &PlayerStats{
		equipmentBonus: equipmentBonus.Clone(),
		mountBonus:     mountBonus.Clone(),
		listeners:      make(map[int]StatsListener),
	}
	for s, v := range base {
		if s.Valid() {
			ps.base[s] = v
		}
	}
	ps.recalculateLocked()
	return ps
}

// AddListener registers a listener and returns a handle for RemoveListener.
func (ps *PlayerStats) AddListener(l StatsListener) int {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	id := ps.nextListenerID
	ps.nextListenerID++
	ps.listeners[id] = l
	return id
}

// RemoveListener unregisters the listener with the given handle.
func (ps *PlayerStats) RemoveListener(id int) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	delete(ps.listeners, id)
}

// Base returns the base value of a stat, 0 if unknown.
func (ps *PlayerStats) Base(s Stat) int32 {
	if !s.Valid() {
		return 0
	}
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.base[s]
}

// Total returns base + equipment bonus + mount bonus, 0 if unknown.
func (ps *PlayerStats) Total(s Stat) int32 {
	if !s.Valid() {
		return 0
	}
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.totalLocked(s)
}

func (ps *PlayerStats) totalLocked(s Stat) int32 {
	return ps.base[s] + ps.equipmentBonus[s] + ps.mountBonus[s]
}

// BonusValue returns only the layered contribution (equipment + mount).
func (ps *PlayerStats) BonusValue(s Stat) int32 {
	if !s.Valid() {
		return 0
	}
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.equipmentBonus[s] + ps.mountBonus[s]
}

// MaxHealth returns the derived maximum health.
func (ps *PlayerStats) MaxHealth() int32 {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.maxHealth
}

// MaxMana returns the derived maximum mana.
func (ps *PlayerStats) MaxMana() int32 {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.maxMana
}

// ImproveStat raises a base stat by amount.
// Unknown stats are a no-op and return false.
func (ps *PlayerStats) ImproveStat(s Stat, amount int32) bool {
	if !s.Valid() {
		return false
	}

	ps.mu.Lock()
	ps.base[s] += amount
	newBase := ps.base[s]
	notify := ps.recalculateLocked()
	listeners := ps.listenersLocked()
	ps.mu.Unlock()

	for _, l := range listeners {
		if l.OnStatChanged != nil {
			l.OnStatChanged(s, newBase)
		}
	}
	notify(listeners)
	return true
}

// SetEquipmentBonuses replaces the equipment bonus layer wholesale.
func (ps *PlayerStats) SetEquipmentBonuses(bonuses BonusMap) {
	ps.mu.Lock()
	ps.equipmentBonus = bonuses.Clone()
	notify := ps.recalculateLocked()
	listeners := ps.listenersLocked()
	ps.mu.Unlock()

	notify(listeners)
}

// SetMountBonuses replaces the mount bonus layer wholesale.
func (ps *PlayerStats) SetMountBonuses(bonuses BonusMap) {
	ps.mu.Lock()
	ps.mountBonus = bonuses.Clone()
	notify := ps.recalculateLocked()
	listeners := ps.listenersLocked()
	ps.mu.Unlock()

	notify(listeners)
}

// UpgradeCost returns the gold cost to improve a base stat:
// (currentBase+1)². Quadratic growth slows stat-maxing.
// Unknown stats cost the int32 maximum (never affordable).
func (ps *PlayerStats) UpgradeCost(s Stat) int32 {
	if !s.Valid() {
		return 1<<31 - 1
	}
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	cur := ps.base[s]
	return (cur + 1) * (cur + 1)
}

// PowerRating is the war-power formula used for faction war strength.
// Note the dexterity weight of 1.5; the auto-combat formula weighs it 1.2.
func (ps *PlayerStats) PowerRating() float64 {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return float64(ps.totalLocked(StatLevel))*10 +
		float64(ps.totalLocked(StatStrength))*2 +
		float64(ps.totalLocked(StatTechnique))*1.5 +
		float64(ps.totalLocked(StatDexterity))*1.5 +
		float64(ps.totalLocked(StatDefense))*1.5
}

// recalculateLocked recomputes derived health/mana and returns a closure
// that fires the change callbacks for values that actually changed.
// Callers invoke the closure after releasing the mutex.
func (ps *PlayerStats) recalculateLocked() func([]StatsListener) {
	oldHealth := ps.maxHealth
	oldMana := ps.maxMana

	ps.maxHealth = 100 + ps.totalLocked(StatEndurance)*5 + ps.totalLocked(StatStrength)*2
	ps.maxMana = 50 + ps.totalLocked(StatIntelligence)*10

	healthChanged := ps.maxHealth != oldHealth
	manaChanged := ps.maxMana != oldMana
	newHealth := ps.maxHealth
	newMana := ps.maxMana

	return func(listeners []StatsListener) {
		for _, l := range listeners {
			if healthChanged && l.OnHealthChanged != nil {
				l.OnHealthChanged(newHealth)
			}
			if manaChanged && l.OnManaChanged != nil {
				l.OnManaChanged(newMana)
			}
		}
	}
}

func (ps *PlayerStats) listenersLocked() []StatsListener {
	out := make([]StatsListener, 0, len(ps.listeners))
	for _, l := range ps.listeners {
		out = append(out, l)
	}
	return out
}

// StatsSnapshot is the serializable form of the ledger. Unknown keys in a
// restored snapshot are ignored; missing keys keep their defaults.
type StatsSnapshot struct {
	Base           map[string]int32 `json:"base"`
	EquipmentBonus map[string]int32 `json:"equipmentBonus,omitempty"`
	MountBonus     map[string]int32 `json:"mountBonus,omitempty"`
}

// Snapshot returns a serializable copy of all three layers.
func (ps *PlayerStats) Snapshot() StatsSnapshot {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	snap := StatsSnapshot{Base: make(map[string]int32, statCount)}
	for s := Stat(0); s < statCount; s++ {
		snap.Base[s.String()] = ps.base[s]
	}
	if len(ps.equipmentBonus) > 0 {
		snap.EquipmentBonus = make(map[string]int32, len(ps.equipmentBonus))
		for s, v := range ps.equipmentBonus {
			snap.EquipmentBonus[s.String()] = v
		}
	}
	if len(ps.mountBonus) > 0 {
		snap.MountBonus = make(map[string]int32, len(ps.mountBonus))
		for s, v := range ps.mountBonus {
			snap.MountBonus[s.String()] = v
		}
	}
	return snap
}

// RestoreStats builds a ledger from a snapshot, silently dropping unknown
// stat keys. A zero-value snapshot yields the default starting block.
func RestoreStats(snap StatsSnapshot) *PlayerStats {
	base := DefaultBaseStats()
	for name, v := range snap.Base {
		if s, ok := ParseStat(name); ok {
			base[s] = v
		}
	}
	return NewPlayerStats(base, parseBonusMap(snap.EquipmentBonus), parseBonusMap(snap.MountBonus))
}

func parseBonusMap(m map[string]int32) BonusMap {
	if len(m) == 0 {
		return nil
	}
	out := make(BonusMap, len(m))
	for name, v := range m {
		if s, ok := ParseStat(name); ok {
			out[s] = v
		}
	}
	return out
}
