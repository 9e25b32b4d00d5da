package model

import "sync"

// MountType determines a mount's base profile before rarity scaling.
type MountType uint8

const (
	MountWarHorse MountType = iota
	MountFastHorse
	MountHeavyHorse
	MountExoticCamel
)

// String returns the human-readable mount type name.
func (t MountType) String() string {
	switch t {
	case MountWarHorse:
		return "WarHorse"
	case MountFastHorse:
		return "FastHorse"
	case MountHeavyHorse:
		return "HeavyHorse"
	case MountExoticCamel:
		return "ExoticCamel"
	default:
		return "Unknown"
	}
}

// MountRarity scales a mount's bonuses and stamina.
type MountRarity uint8

const (
	MountCommon MountRarity = iota
	MountUncommon
	MountRare
	MountEpic
	MountLegendary
)

// Multiplier returns the scaling factor for the rarity.
func (r MountRarity) Multiplier() float64 {
	switch r {
	case MountUncommon:
		return 1.2
	case MountRare:
		return 1.5
	case MountEpic:
		return 2.0
	case MountLegendary:
		return 3.0
	default:
		return 1.0
	}
}

// Gallop stamina tuning. Stamina drains while galloping and regenerates
// through Advance whenever the mount is not galloping.
const (
	GallopStaminaCost = 20.0 // per second
	StaminaRegenRate  = 10.0 // per second
)

// Mount is a rideable animal contributing a stat-bonus layer while the
// player is mounted.
type Mount struct {
	mu sync.RWMutex

	name        string
	mountType   MountType
	rarity      MountRarity
	speedBonus  float64
	trample     float64
	attackBonus float64
	fightable   bool
	statBonuses BonusMap

	stamina    float64
	maxStamina float64

	levelRequirement int32
	goldCost         int64
}

// NewMount creates a mount of the given type with rarity scaling applied
// to its speed, trample damage, attack bonus, stamina and stat bonuses.
func NewMount(name string, typ MountType, rarity MountRarity) *Mount {
	m := &Mount{
		name:             name,
		mountType:        typ,
		rarity:           rarity,
		maxStamina:       100,
		statBonuses:      make(BonusMap),
		levelRequirement: 1,
		goldCost:         1000,
	}

	switch typ {
	case MountWarHorse:
		m.speedBonus, m.trample, m.attackBonus, m.fightable = 8, 25, 1.5, true
		m.statBonuses[StatStrength] = 3
		m.statBonuses[StatDefense] = 2
	case MountFastHorse:
		m.speedBonus, m.trample, m.attackBonus, m.fightable = 12, 15, 1.2, true
		m.statBonuses[StatSpeed] = 5
		m.statBonuses[StatAgility] = 3
	case MountHeavyHorse:
		m.speedBonus, m.trample, m.attackBonus, m.fightable = 6, 35, 1.8, true
		m.statBonuses[StatStrength] = 5
		m.statBonuses[StatEndurance] = 4
	case MountExoticCamel:
		m.speedBonus, m.trample, m.attackBonus, m.fightable = 10, 20, 1.3, true
		m.statBonuses[StatEndurance] = 5
		m.statBonuses[StatSpeed] = 2
	}

	mult := rarity.Multiplier()
	m.speedBonus *= mult
	m.trample *= mult
	m.attackBonus *= mult
	m.maxStamina *= mult
	for s, v := range m.statBonuses {
		m.statBonuses[s] = int32(float64(v)*mult + 0.5)
	}
	m.stamina = m.maxStamina

	return m
}

// Name returns the mount's display name.
func (m *Mount) Name() string { return m.name }

// Type returns the mount type.
func (m *Mount) Type() MountType { return m.mountType }

// Rarity returns the mount rarity.
func (m *Mount) Rarity() MountRarity { return m.rarity }

// SpeedBonus returns the movement speed bonus while mounted.
func (m *Mount) SpeedBonus() float64 { return m.speedBonus }

// TrampleDamage returns the damage dealt by a mounted charge.
func (m *Mount) TrampleDamage() float64 { return m.trample }

// MountedAttackBonus returns the attack multiplier while mounted.
func (m *Mount) MountedAttackBonus() float64 { return m.attackBonus }

// CanFightMounted reports whether the rider may attack from the saddle.
func (m *Mount) CanFightMounted() bool { return m.fightable }

// GoldCost returns the purchase price.
func (m *Mount) GoldCost() int64 { return m.goldCost }

// LevelRequirement returns the minimum rider level.
func (m *Mount) LevelRequirement() int32 { return m.levelRequirement }

// StatBonuses returns a copy of the bonus layer the mount contributes
// while the player is mounted.
func (m *Mount) StatBonuses() BonusMap {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.statBonuses.Clone()
}

// Stamina returns the current stamina.
func (m *Mount) Stamina() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stamina
}

// MaxStamina returns the stamina ceiling after rarity scaling.
func (m *Mount) MaxStamina() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.maxStamina
}

// StaminaPercent returns stamina in [0,1].
func (m *Mount) StaminaPercent() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.maxStamina <= 0 {
		return 0
	}
	return m.stamina / m.maxStamina
}

// Exhausted reports whether the mount is out of stamina.
func (m *Mount) Exhausted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stamina <= 0
}

// Gallop drains stamina for deltaSeconds of galloping. Returns false
// without draining if the mount is already exhausted.
func (m *Mount) Gallop(deltaSeconds float64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.stamina <= 0 {
		return false
	}
	m.stamina -= GallopStaminaCost * deltaSeconds
	if m.stamina < 0 {
		m.stamina = 0
	}
	return true
}

// Advance regenerates stamina for deltaSeconds of rest. Driven by the
// host's tick; idempotent for zero or negative deltas.
func (m *Mount) Advance(deltaSeconds float64) {
	if deltaSeconds <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stamina += StaminaRegenRate * deltaSeconds
	if m.stamina > m.maxStamina {
		m.stamina = m.maxStamina
	}
}

// MaintenanceCost returns the daily upkeep gold sink: 2% of the mount's
// purchase price.
func (m *Mount) MaintenanceCost() int64 {
	return int64(float64(m.goldCost) * 0.02)
}
