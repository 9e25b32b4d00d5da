package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JorgeBC420/caminosdelafe/internal/model"
)

func neutralInputs() battleInputs {
	return battleInputs{
		playerPower:   100,
		enemyPower:    100,
		factionMod:    1.0,
		luck:          1.0,
		enemyVariance: 1.0,
		goldRoll:      1.0,
		playerLevel:   5,
		enemyLevel:    5,
		defense:       10,
		endurance:     10,
	}
}

func TestTieIsLoss(t *testing.T) {
	res := resolve(neutralInputs())
	assert.False(t, res.Victory, "equal effective power must lose")
	assert.Zero(t, res.ExperienceGained)
	assert.Zero(t, res.GoldGained)
	assert.Positive(t, res.DamageTaken, "damage is taken win or lose")
}

func TestStrictlyGreaterWins(t *testing.T) {
	in := neutralInputs()
	in.playerPower = 100.001
	res := resolve(in)
	assert.True(t, res.Victory)
	assert.Positive(t, res.ExperienceGained)
	assert.Positive(t, res.GoldGained)
}

func TestDamageFloor(t *testing.T) {
	in := neutralInputs()
	in.enemyPower = 0.1
	in.playerPower = 10000
	in.defense = 500
	in.endurance = 500
	res := resolve(in)
	assert.Equal(t, 1.0, res.DamageTaken, "damage never drops below 1")
}

func TestDamageReductionClamp(t *testing.T) {
	// def+0.5×end = 900 → raw reduction 0.9, clamped to 0.8.
	in := neutralInputs()
	in.enemyPower = 1000
	in.defense = 800
	in.endurance = 200
	res := resolve(in)
	assert.InDelta(t, 0.1*1000*(1-0.8), res.DamageTaken, 1e-9)
}

func TestExperienceGain(t *testing.T) {
	tests := []struct {
		name        string
		enemyLevel  int32
		playerLevel int32
		want        int64
	}{
		{"equal levels", 5, 5, 10},
		{"enemy far above caps at x2", 30, 5, 20},
		{"enemy far below floors at x0.5", 1, 30, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := experienceGain(100, tt.enemyLevel, tt.playerLevel)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGoldGain(t *testing.T) {
	// (5 + 2×10) × 1.0 = 25
	assert.Equal(t, int64(25), goldGain(10, 1.0))
	// (5 + 2×10) × 1.5 = 37.5 → 38
	assert.Equal(t, int64(38), goldGain(10, 1.5))
}

func TestFactionModifier(t *testing.T) {
	tests := []struct {
		name   string
		player string
		enemy  string
		want   float64
	}{
		{"against enemy", "Cruzados", "Sarracenos", 1.2},
		{"reverse enemy", "Sarracenos", "Cruzados", 1.2},
		{"against neutral", "Cruzados", "Antiguos", 1.0},
		{"unknown faction", "Cruzados", "Templarios", 1.0},
		{"empty enemy", "Cruzados", "", 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FactionModifier(tt.player, tt.enemy))
		})
	}
}

func TestPlayerPowerFormula(t *testing.T) {
	p, err := model.NewPlayer("Rodrigo", "Cruzados")
	require.NoError(t, err)

	// Level 1, all stats 10: 10 + 20 + 15 + 15 + 12 = 72, no equipment.
	assert.InDelta(t, 72.0, PlayerPower(p), 1e-9)

	sword := model.NewEquipment("Espada", "", model.SlotWeapon, model.RarityCommon, 100)
	sword.AddStatBonus(model.StatStrength, 5)
	p.Inventory().AddItem(sword, 1)
	require.True(t, p.Inventory().Equip(sword))

	// +5 strength (weight 2 in power formula) and +10 equipped rating.
	assert.InDelta(t, 72.0+10+10, PlayerPower(p), 1e-9)
}

func TestEnemyPowerFromStats(t *testing.T) {
	ep := EnemyPowerFromStats("Sarracenos", 100, 10, 5)
	assert.Equal(t, 160.0, ep.TotalPower)
	assert.Equal(t, int32(8), ep.Level)
	assert.Equal(t, "Sarracenos", ep.Faction)
}

func TestResolveDeterministicWithSeed(t *testing.T) {
	enemy := EnemyPower{Faction: "Sarracenos", Level: 3, TotalPower: 60}

	p1, err := model.NewPlayer("Rodrigo", "Cruzados")
	require.NoError(t, err)
	p2, err := model.NewPlayer("Rodrigo", "Cruzados")
	require.NoError(t, err)

	a := NewResolver(7).Resolve(p1, enemy)
	b := NewResolver(7).Resolve(p2, enemy)
	assert.Equal(t, a, b, "same seed and inputs must give identical outcomes")
}

func TestLuckRisesWithLevelAndIntelligence(t *testing.T) {
	p, err := model.NewPlayer("Rodrigo", "Cruzados")
	require.NoError(t, err)
	p.AddExperience(2000) // level 21

	level := p.Level()
	minLuck := (LuckFactorMin + float64(level)*0.005) * (1 + 10*0.01)
	maxLuck := (LuckFactorMax + float64(level)*0.005) * (1 + 10*0.01)

	r := NewResolver(99)
	enemy := EnemyPower{Faction: "Antiguos", Level: 1, TotalPower: 1}
	for range 200 {
		res := r.Resolve(p, enemy)
		luck := res.PlayerPower / PlayerPower(p)
		assert.GreaterOrEqual(t, luck, minLuck-1e-9)
		assert.LessOrEqual(t, luck, maxLuck+1e-9)
	}
}
