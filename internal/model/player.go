package model

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/JorgeBC420/caminosdelafe/internal/data"
)

// StartingGold is the wallet of a fresh character.
const StartingGold = 100

// Player is the character aggregate: attribute ledger, wallet, inventory,
// mounts and faction-war standing. Daily-limit gating and monetization
// multipliers live in the economy package; the player only holds state.
type Player struct {
	mu sync.RWMutex

	name    string
	faction string

	gold       int64
	experience int64

	currentHealth int32
	currentMana   int32

	stats     *PlayerStats
	inventory *Inventory

	mounts       []*Mount
	currentMount *Mount
	mounted      bool

	warContribution  int32
	lastContribution time.Time
}

// NewPlayer creates a character with the default stat block, a starting
// wallet and an empty inventory.
func NewPlayer(name, faction string) (*Player, error) {
	if name == "" {
		return nil, fmt.Errorf("player name cannot be empty")
	}
	if data.GetFaction(faction) == nil {
		return nil, fmt.Errorf("unknown faction %q", faction)
	}

	p := &Player{
		name:    name,
		faction: faction,
		gold:    StartingGold,
		stats:   NewPlayerStats(nil, nil, nil),
	}
	p.inventory = NewInventory(p.stats, DefaultInventorySize)
	p.currentHealth = p.stats.MaxHealth()
	p.currentMana = p.stats.MaxMana()
	p.watchDerivedStats()
	return p, nil
}

// watchDerivedStats keeps current health/mana proportional to the derived
// maxima: when max health changes, current health scales by the same
// ratio instead of snapping.
func (p *Player) watchDerivedStats() {
	oldMaxHealth := p.stats.MaxHealth()
	oldMaxMana := p.stats.MaxMana()

	p.stats.AddListener(StatsListener{
		OnHealthChanged: func(newMax int32) {
			p.mu.Lock()
			ratio := 1.0
			if oldMaxHealth > 0 {
				ratio = float64(p.currentHealth) / float64(oldMaxHealth)
			}
			p.currentHealth = int32(math.Round(float64(newMax) * ratio))
			oldMaxHealth = newMax
			p.mu.Unlock()
		},
		OnManaChanged: func(newMax int32) {
			p.mu.Lock()
			ratio := 1.0
			if oldMaxMana > 0 {
				ratio = float64(p.currentMana) / float64(oldMaxMana)
			}
			p.currentMana = int32(math.Round(float64(newMax) * ratio))
			oldMaxMana = newMax
			p.mu.Unlock()
		},
	})
}

// Name returns the character name.
func (p *Player) Name() string { return p.name }

// Faction returns the current faction name.
func (p *Player) Faction() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.faction
}

// SetFaction reassigns the player's allegiance. Unknown factions are a
// no-op returning false.
func (p *Player) SetFaction(name string) bool {
	if data.GetFaction(name) == nil {
		return false
	}
	p.mu.Lock()
	p.faction = name
	p.mu.Unlock()
	return true
}

// Stats returns the attribute ledger.
func (p *Player) Stats() *PlayerStats { return p.stats }

// Inventory returns the item storage.
func (p *Player) Inventory() *Inventory { return p.inventory }

// Level reads the character level from the attribute ledger, which is the
// single source of truth for it.
func (p *Player) Level() int32 {
	return p.stats.Base(StatLevel)
}

// Experience returns total accumulated experience.
func (p *Player) Experience() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.experience
}

// Gold returns the wallet balance.
func (p *Player) Gold() int64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.gold
}

// CurrentHealth returns current health.
func (p *Player) CurrentHealth() int32 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.currentHealth
}

// CurrentMana returns current mana.
func (p *Player) CurrentMana() int32 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.currentMana
}

// AddExperience credits experience and applies any level-ups. The level
// delta is written into the attribute ledger before anything reads the
// new level, so the ledger and derived stats stay consistent.
// Returns the new level.
func (p *Player) AddExperience(amount int64) int32 {
	if amount < 0 {
		amount = 0
	}
	p.mu.Lock()
	p.experience += amount
	exp := p.experience
	p.mu.Unlock()

	oldLevel := p.Level()
	newLevel := data.LevelForExp(exp)
	if newLevel > oldLevel {
		p.stats.ImproveStat(StatLevel, newLevel-oldLevel)
	}
	return p.Level()
}

// AddGold credits the wallet. Daily-limit gating happens in the economy
// layer before this is called.
func (p *Player) AddGold(amount int64) {
	if amount <= 0 {
		return
	}
	p.mu.Lock()
	p.gold += amount
	p.mu.Unlock()
}

// SpendGold debits the wallet, refusing to overdraw.
func (p *Player) SpendGold(amount int64) bool {
	if amount < 0 {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.gold < amount {
		return false
	}
	p.gold -= amount
	return true
}

// ImproveStatWithGold buys one point of a base stat at the quadratic
// upgrade cost. Fails without mutation when the stat is unknown or the
// wallet is short.
func (p *Player) ImproveStatWithGold(s Stat) bool {
	if !s.Valid() {
		return false
	}
	cost := int64(p.stats.UpgradeCost(s))
	if !p.SpendGold(cost) {
		return false
	}
	return p.stats.ImproveStat(s, 1)
}

// AttackDamage is the direct-hit damage of a basic attack:
// base 15 plus half of total strength.
func (p *Player) AttackDamage() float64 {
	return 15 + 0.5*float64(p.stats.Total(StatStrength))
}

// TakeDamage applies incoming damage after the defense reduction
// def/(def+100). Health never drops below zero. Returns the damage
// actually dealt.
func (p *Player) TakeDamage(damage float64) int32 {
	def := float64(p.stats.Total(StatDefense))
	reduction := def / (def + 100)
	actual := int32(math.Round(damage * (1 - reduction)))
	if actual < 0 {
		actual = 0
	}

	p.mu.Lock()
	p.currentHealth -= actual
	if p.currentHealth < 0 {
		p.currentHealth = 0
	}
	p.mu.Unlock()
	return actual
}

// TakeRawDamage subtracts pre-mitigated damage, for hits whose reduction
// was already applied upstream (battle resolution). Health never drops
// below zero. Returns the damage dealt.
func (p *Player) TakeRawDamage(damage float64) int32 {
	actual := int32(math.Round(damage))
	if actual < 0 {
		actual = 0
	}
	p.mu.Lock()
	p.currentHealth -= actual
	if p.currentHealth < 0 {
		p.currentHealth = 0
	}
	p.mu.Unlock()
	return actual
}

// Dead reports whether health has reached zero.
func (p *Player) Dead() bool {
	return p.CurrentHealth() <= 0
}

// Heal restores health up to the derived maximum. Returns false when
// already full.
func (p *Player) Heal(amount int32) bool {
	if amount <= 0 {
		return false
	}
	max := p.stats.MaxHealth()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.currentHealth >= max {
		return false
	}
	p.currentHealth += amount
	if p.currentHealth > max {
		p.currentHealth = max
	}
	return true
}

// RestoreMana restores mana up to the derived maximum. Returns false when
// already full.
func (p *Player) RestoreMana(amount int32) bool {
	if amount <= 0 {
		return false
	}
	max := p.stats.MaxMana()
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.currentMana >= max {
		return false
	}
	p.currentMana += amount
	if p.currentMana > max {
		p.currentMana = max
	}
	return true
}

// AddMount adds a mount to the stable.
func (p *Player) AddMount(m *Mount) {
	if m == nil {
		return
	}
	p.mu.Lock()
	p.mounts = append(p.mounts, m)
	if p.currentMount == nil {
		p.currentMount = m
	}
	p.mu.Unlock()
}

// Mounts returns the stable.
func (p *Player) Mounts() []*Mount {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*Mount, len(p.mounts))
	copy(out, p.mounts)
	return out
}

// CurrentMount returns the selected mount, mounted or not.
func (p *Player) CurrentMount() *Mount {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.currentMount
}

// Mounted reports whether the player is in the saddle.
func (p *Player) Mounted() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.mounted
}

// Mount puts the player on the selected mount and contributes its bonus
// layer to the ledger. Fails if already mounted, no mount is selected, or
// the rider doesn't meet the mount's level requirement.
func (p *Player) Mount() bool {
	p.mu.Lock()
	m := p.currentMount
	if p.mounted || m == nil {
		p.mu.Unlock()
		return false
	}
	p.mu.Unlock()

	if p.Level() < m.LevelRequirement() {
		return false
	}

	p.mu.Lock()
	p.mounted = true
	p.mu.Unlock()
	p.stats.SetMountBonuses(m.StatBonuses())
	return true
}

// Dismount takes the player off the mount and withdraws its bonus layer.
func (p *Player) Dismount() bool {
	p.mu.Lock()
	if !p.mounted {
		p.mu.Unlock()
		return false
	}
	p.mounted = false
	p.mu.Unlock()
	p.stats.SetMountBonuses(nil)
	return true
}

// WarPower is the faction-war strength: the ledger's power rating scaled
// by a 1% loyalty bonus per past contribution.
func (p *Player) WarPower() float64 {
	p.mu.RLock()
	contribution := p.warContribution
	p.mu.RUnlock()
	return p.stats.PowerRating() * (1 + float64(contribution)*0.01)
}

// CanContributeToWar reports whether the player may contribute today.
// A zero lastContribution time means "never contributed" and is eligible.
func (p *Player) CanContributeToWar(now time.Time) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.lastContribution.IsZero() {
		return true
	}
	ly, lm, ld := p.lastContribution.Date()
	ny, nm, nd := now.Date()
	return ly != ny || lm != nm || ld != nd
}

// ContributeToWar records one faction-war contribution, at most one per
// calendar day.
func (p *Player) ContributeToWar(now time.Time) bool {
	if !p.CanContributeToWar(now) {
		return false
	}
	p.mu.Lock()
	p.warContribution++
	p.lastContribution = now
	p.mu.Unlock()
	return true
}

// WarContribution returns the lifetime contribution count.
func (p *Player) WarContribution() int32 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.warContribution
}

// PlayerSnapshot is the serializable character state. Missing fields
// default to a fresh character on restore.
type PlayerSnapshot struct {
	Name             string        `json:"name"`
	Faction          string        `json:"faction"`
	Gold             int64         `json:"gold"`
	Experience       int64         `json:"experience"`
	CurrentHealth    int32         `json:"currentHealth"`
	CurrentMana      int32         `json:"currentMana"`
	WarContribution  int32         `json:"warContribution"`
	LastContribution time.Time     `json:"lastContribution,omitzero"`
	Stats            StatsSnapshot `json:"stats"`
}

// Snapshot returns the serializable character state.
func (p *Player) Snapshot() PlayerSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return PlayerSnapshot{
		Name:             p.name,
		Faction:          p.faction,
		Gold:             p.gold,
		Experience:       p.experience,
		CurrentHealth:    p.currentHealth,
		CurrentMana:      p.currentMana,
		WarContribution:  p.warContribution,
		LastContribution: p.lastContribution,
		Stats:            p.stats.Snapshot(),
	}
}

// RestorePlayer rebuilds a character from a snapshot, tolerating missing
// fields: an empty name or unknown faction falls back to defaults.
func RestorePlayer(snap PlayerSnapshot) (*Player, error) {
	name := snap.Name
	if name == "" {
		name = "Peregrino"
	}
	faction := snap.Faction
	if data.GetFaction(faction) == nil {
		faction = "Cruzados"
	}

	p, err := NewPlayer(name, faction)
	if err != nil {
		return nil, err
	}

	p.stats = RestoreStats(snap.Stats)
	p.inventory = NewInventory(p.stats, DefaultInventorySize)
	p.watchDerivedStats()

	p.mu.Lock()
	p.gold = snap.Gold
	p.experience = snap.Experience
	p.currentHealth = clampInt32(snap.CurrentHealth, 0, p.stats.MaxHealth())
	p.currentMana = clampInt32(snap.CurrentMana, 0, p.stats.MaxMana())
	p.warContribution = snap.WarContribution
	p.lastContribution = snap.LastContribution
	p.mu.Unlock()
	return p, nil
}

func clampInt32(v, lo, hi int32) int32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
