package model

import (
	"sync"
	"testing"
)

func TestDefaultBaseStats(t *testing.T) {
	base := DefaultBaseStats()
	if got := base[StatLevel]; got != 1 {
		t.Errorf("default level = %d, want 1", got)
	}
	for _, s := range AllStats() {
		if s == StatLevel {
			continue
		}
		if got := base[s]; got != 10 {
			t.Errorf("default %s = %d, want 10", s, got)
		}
	}
}

func TestTotalSumsAllLayers(t *testing.T) {
	ps := NewPlayerStats(DefaultBaseStats(), nil, nil)
	ps.SetEquipmentBonuses(BonusMap{StatStrength: 5})
	ps.SetMountBonuses(BonusMap{StatStrength: 3})

	if got := ps.Base(StatStrength); got != 10 {
		t.Errorf("Base(strength) = %d, want 10", got)
	}
	if got := ps.Total(StatStrength); got != 18 {
		t.Errorf("Total(strength) = %d, want 18", got)
	}
	if got := ps.BonusValue(StatStrength); got != 8 {
		t.Errorf("BonusValue(strength) = %d, want 8", got)
	}
}

func TestMaxHealthAndMana(t *testing.T) {
	tests := []struct {
		name       string
		endurance  int32
		strength   int32
		intel      int32
		wantHealth int32
		wantMana   int32
	}{
		{"defaults", 10, 10, 10, 170, 150},
		{"zeroes", 0, 0, 0, 100, 50},
		{"heavy", 30, 20, 15, 290, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := DefaultBaseStats()
			base[StatEndurance] = tt.endurance
			base[StatStrength] = tt.strength
			base[StatIntelligence] = tt.intel
			ps := NewPlayerStats(base, nil, nil)

			if got := ps.MaxHealth(); got != tt.wantHealth {
				t.Errorf("MaxHealth() = %d, want %d", got, tt.wantHealth)
			}
			if got := ps.MaxMana(); got != tt.wantMana {
				t.Errorf("MaxMana() = %d, want %d", got, tt.wantMana)
			}
		})
	}
}

func TestBonusesDoNotAffectDerivedPools(t *testing.T) {
	ps := NewPlayerStats(DefaultBaseStats(), nil, nil)
	before := ps.MaxHealth()

	ps.SetEquipmentBonuses(BonusMap{StatEndurance: 50, StatStrength: 50})
	if got := ps.MaxHealth(); got != before {
		t.Errorf("MaxHealth() = %d after equipment bonus, want unchanged %d", got, before)
	}
}

func TestImproveStat(t *testing.T) {
	ps := NewPlayerStats(DefaultBaseStats(), nil, nil)

	if !ps.ImproveStat(StatStrength, 5) {
		t.Fatal("ImproveStat(strength, 5) = false, want true")
	}
	if got := ps.Base(StatStrength); got != 15 {
		t.Errorf("Base(strength) = %d, want 15", got)
	}
	if ps.ImproveStat(Stat(200), 1) {
		t.Error("ImproveStat(invalid) = true, want false")
	}
}

func TestUpgradeCost(t *testing.T) {
	base := DefaultBaseStats()
	base[StatStrength] = 10
	ps := NewPlayerStats(base, nil, nil)

	if got := ps.UpgradeCost(StatStrength); got != 121 {
		t.Errorf("UpgradeCost(strength at 10) = %d, want 121", got)
	}
}

func TestListenerFiresOnBaseChange(t *testing.T) {
	ps := NewPlayerStats(DefaultBaseStats(), nil, nil)

	var fired []Stat
	id := ps.AddListener(StatsListener{
		OnStatChanged: func(s Stat, total int32) {
			fired = append(fired, s)
		},
	})
	defer ps.RemoveListener(id)

	ps.ImproveStat(StatDexterity, 2)
	if len(fired) != 1 || fired[0] != StatDexterity {
		t.Errorf("listener fired for %v, want [dexterity]", fired)
	}

	// Same value: no delta, no callback.
	fired = nil
	ps.SetEquipmentBonuses(nil)
	if len(fired) != 0 {
		t.Errorf("listener fired %d times on no-op change, want 0", len(fired))
	}
}

func TestHealthListenerFiresOnEnduranceChange(t *testing.T) {
	ps := NewPlayerStats(DefaultBaseStats(), nil, nil)

	var maxSeen int32
	id := ps.AddListener(StatsListener{
		OnHealthChanged: func(max int32) { maxSeen = max },
	})
	defer ps.RemoveListener(id)

	ps.ImproveStat(StatEndurance, 10)
	if want := ps.MaxHealth(); maxSeen != want {
		t.Errorf("health listener saw %d, want %d", maxSeen, want)
	}
}

func TestParseStat(t *testing.T) {
	if s, ok := ParseStat("strength"); !ok || s != StatStrength {
		t.Errorf("ParseStat(strength) = %v, %v", s, ok)
	}
	if _, ok := ParseStat("charisma"); ok {
		t.Error("ParseStat(charisma) = true, want false")
	}
}

func TestStatsSnapshotRoundTrip(t *testing.T) {
	base := DefaultBaseStats()
	base[StatStrength] = 25
	ps := NewPlayerStats(base, BonusMap{StatDefense: 4}, BonusMap{StatSpeed: 2})

	restored := RestoreStats(ps.Snapshot())
	for _, s := range AllStats() {
		if got, want := restored.Total(s), ps.Total(s); got != want {
			t.Errorf("restored Total(%s) = %d, want %d", s, got, want)
		}
	}
}

func TestSnapshotDropsUnknownStats(t *testing.T) {
	snap := StatsSnapshot{
		Base: map[string]int32{"strength": 12, "charisma": 99},
	}
	ps := RestoreStats(snap)
	if got := ps.Base(StatStrength); got != 12 {
		t.Errorf("Base(strength) = %d, want 12", got)
	}
}

func TestConcurrentImprove(t *testing.T) {
	ps := NewPlayerStats(DefaultBaseStats(), nil, nil)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ps.ImproveStat(StatStrength, 1)
		}()
	}
	wg.Wait()

	if got := ps.Base(StatStrength); got != 60 {
		t.Errorf("Base(strength) = %d after 50 concurrent improves, want 60", got)
	}
}
