// Package combat resolves auto-battles from current attribute totals.
// The resolver is stateless apart from its RNG: every outcome is a pure
// function of the inputs and the draws made during one resolution.
package combat

import (
	"math"
	"math/rand/v2"

	"github.com/JorgeBC420/caminosdelafe/internal/data"
	"github.com/JorgeBC420/caminosdelafe/internal/model"
)

// Luck factor tuning. The uniform bounds shift up with level, giving
// higher-level characters both a higher floor and a higher ceiling.
const (
	LuckFactorMin = 0.8
	LuckFactorMax = 1.3

	enemyPowerVariance = 0.2
	minDamageReduction = 0.1
	maxDamageReduction = 0.8
)

// EnemyPower describes the opponent for one resolution.
type EnemyPower struct {
	Faction    string
	Level      int32
	TotalPower float64
}

// EnemyPowerFromStats estimates a power descriptor from raw enemy stats:
// power = maxHealth + 5×attackDamage + 2×moveSpeed, level = power/20.
func EnemyPowerFromStats(faction string, maxHealth, attackDamage, moveSpeed float64) EnemyPower {
	power := maxHealth + attackDamage*5 + moveSpeed*2
	return EnemyPower{
		Faction:    faction,
		Level:      int32(math.Round(power / 20)),
		TotalPower: power,
	}
}

// BattleResult is the outcome of one resolved battle. DamageTaken is
// computed win or lose; rewards only on victory.
type BattleResult struct {
	Victory          bool
	PlayerPower      float64 // effective, after modifier and luck
	EnemyPower       float64 // effective, after variance
	DamageTaken      float64
	ExperienceGained int64
	GoldGained       int64
}

// Resolver resolves battles with a seedable generator. One Resolver per
// resolution context; it is not safe for concurrent use.
type Resolver struct {
	rng *rand.Rand
}

// NewResolver creates a resolver seeded for reproducible outcomes.
func NewResolver(seed uint64) *Resolver {
	return &Resolver{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewResolverFrom creates a resolver around an existing generator.
func NewResolverFrom(rng *rand.Rand) *Resolver {
	return &Resolver{rng: rng}
}

// Resolve computes the outcome of an auto-battle between the player's
// current totals and the enemy descriptor.
func (r *Resolver) Resolve(p *model.Player, enemy EnemyPower) BattleResult {
	stats := p.Stats()

	playerPower := PlayerPower(p)
	factionMod := FactionModifier(p.Faction(), enemy.Faction)

	level := p.Level()
	minLuck := LuckFactorMin + float64(level)*0.005
	maxLuck := LuckFactorMax + float64(level)*0.005
	luck := r.uniform(minLuck, maxLuck) * (1 + float64(stats.Total(model.StatIntelligence))*0.01)

	enemyVariance := r.uniform(1-enemyPowerVariance, 1+enemyPowerVariance)
	goldRoll := r.uniform(0.5, 1.5)

	return resolve(battleInputs{
		playerPower:   playerPower,
		enemyPower:    enemy.TotalPower,
		factionMod:    factionMod,
		luck:          luck,
		enemyVariance: enemyVariance,
		goldRoll:      goldRoll,
		playerLevel:   level,
		enemyLevel:    enemy.Level,
		defense:       stats.Total(model.StatDefense),
		endurance:     stats.Total(model.StatEndurance),
	})
}

// battleInputs carries every value resolve needs, with all random draws
// already made. Tests force luck and variance to exact values through it.
type battleInputs struct {
	playerPower   float64
	enemyPower    float64
	factionMod    float64
	luck          float64
	enemyVariance float64
	goldRoll      float64
	playerLevel   int32
	enemyLevel    int32
	defense       int32
	endurance     int32
}

// resolve is the deterministic core. Victory requires strictly greater
// effective power: a tie is a loss.
func resolve(in battleInputs) BattleResult {
	effectivePlayer := in.playerPower * in.factionMod * in.luck
	effectiveEnemy := in.enemyPower * in.enemyVariance

	res := BattleResult{
		Victory:     effectivePlayer > effectiveEnemy,
		PlayerPower: effectivePlayer,
		EnemyPower:  effectiveEnemy,
		DamageTaken: damageTaken(effectiveEnemy, in.defense, in.endurance),
	}

	if res.Victory {
		res.ExperienceGained = experienceGain(in.enemyPower, in.enemyLevel, in.playerLevel)
		res.GoldGained = goldGain(in.enemyLevel, in.goldRoll)
	}
	return res
}

// PlayerPower is the auto-combat power rating:
// level×10 + 2×str + 1.5×def + 1.5×tech + 1.2×dex, plus the power rating
// of everything equipped.
func PlayerPower(p *model.Player) float64 {
	stats := p.Stats()
	power := float64(p.Level())*10 +
		float64(stats.Total(model.StatStrength))*2 +
		float64(stats.Total(model.StatDefense))*1.5 +
		float64(stats.Total(model.StatTechnique))*1.5 +
		float64(stats.Total(model.StatDexterity))*1.2

	if inv := p.Inventory(); inv != nil {
		power += inv.EquippedPowerRating()
	}
	return power
}

// FactionModifier returns the power multiplier against the enemy faction:
// 1.2 against enemies, 0.8 against allies, 1.0 otherwise. Enemies are
// checked first; if a faction somehow appears on both lists, the enemy
// bonus wins.
func FactionModifier(playerFaction, enemyFaction string) float64 {
	if playerFaction == "" || enemyFaction == "" {
		return 1.0
	}
	f := data.GetFaction(playerFaction)
	if f == nil {
		return 1.0
	}
	if f.IsEnemy(enemyFaction) {
		return 1.2
	}
	if f.IsAlly(enemyFaction) {
		return 0.8
	}
	return 1.0
}

// damageTaken computes the hit the player absorbs regardless of outcome.
// Reduction has diminishing returns and is clamped to [0.1, 0.8]; the
// floor guarantees at least 1 damage even for hopeless enemies.
func damageTaken(effectiveEnemyPower float64, defense, endurance int32) float64 {
	totalDefense := float64(defense) + 0.5*float64(endurance)
	reduction := totalDefense / (totalDefense + 100)
	if reduction < minDamageReduction {
		reduction = minDamageReduction
	}
	if reduction > maxDamageReduction {
		reduction = maxDamageReduction
	}

	damage := 0.1 * effectiveEnemyPower * (1 - reduction)
	if damage < 1 {
		damage = 1
	}
	return damage
}

// experienceGain scales 10% of enemy power by the level difference,
// clamped to [0.5, 2.0].
func experienceGain(enemyPower float64, enemyLevel, playerLevel int32) int64 {
	modifier := 1 + 0.1*float64(enemyLevel-playerLevel)
	if modifier < 0.5 {
		modifier = 0.5
	}
	if modifier > 2.0 {
		modifier = 2.0
	}
	return int64(math.Round(enemyPower * 0.1 * modifier))
}

// goldGain rolls (5 + 2×enemyLevel) × uniform(0.5, 1.5).
func goldGain(enemyLevel int32, roll float64) int64 {
	return int64(math.Round((5 + 2*float64(enemyLevel)) * roll))
}

func (r *Resolver) uniform(lo, hi float64) float64 {
	return lo + r.rng.Float64()*(hi-lo)
}
