// Package economy implements the monetization core: daily earn limits,
// event currency, the faith pass, the USD↔gold ledger and the ad ledger.
// All mutating operations are value-returning (amount, ok) — no panics,
// no exceptions.
package economy

import (
	"math"
	"sync"
	"time"
)

// LimitsTuning holds the daily-cap knobs. Defaults match the live values.
type LimitsTuning struct {
	BaseDailyGoldLimit     int64   `yaml:"base_daily_gold_limit"`
	DailyGoldLimitPerLevel int64   `yaml:"daily_gold_limit_per_level"`
	DailyMissionsBase      int32   `yaml:"daily_missions_base"`
	DailyMissionsFaithPass int32   `yaml:"daily_missions_faith_pass"`
	DailyBossKillsLimit    int32   `yaml:"daily_boss_kills_limit"`
	FaithPassLimitBonus    float64 `yaml:"faith_pass_limit_bonus"`

	EventCurrencyDailyEarn    int64   `yaml:"event_currency_daily_earn"`
	EventCurrencyMissionComp  int64   `yaml:"event_currency_mission_comp"`
	EventCurrencyBossComp     int64   `yaml:"event_currency_boss_comp"`
	EventCurrencyPremiumRatio float64 `yaml:"event_currency_premium_ratio"`
	GoldCompensationRate      float64 `yaml:"gold_compensation_rate"`
}

// DefaultLimitsTuning returns the production daily-cap values.
func DefaultLimitsTuning() LimitsTuning {
	return LimitsTuning{
		BaseDailyGoldLimit:        500,
		DailyGoldLimitPerLevel:    50,
		DailyMissionsBase:         5,
		DailyMissionsFaithPass:    8,
		DailyBossKillsLimit:       10,
		FaithPassLimitBonus:       1.5,
		EventCurrencyDailyEarn:    25,
		EventCurrencyMissionComp:  15,
		EventCurrencyBossComp:     25,
		EventCurrencyPremiumRatio: 0.1,
		GoldCompensationRate:      0.1,
	}
}

// LimitKind names one of the capped per-day counters.
type LimitKind uint8

const (
	LimitGold LimitKind = iota
	LimitMissions
	LimitBossKills
)

// String returns the notification tag for the limit.
func (k LimitKind) String() string {
	switch k {
	case LimitGold:
		return "daily_gold"
	case LimitMissions:
		return "daily_missions"
	case LimitBossKills:
		return "daily_boss_kills"
	default:
		return "unknown"
	}
}

// DailyLimits tracks the per-day earn counters against level- and
// subscription-scaled caps. Counters never exceed their limit; denied
// earnings compensate non-subscribers in event currency.
type DailyLimits struct {
	mu sync.Mutex

	tuning LimitsTuning
	events *EventCurrency

	// Recalculated on every level or subscription change, not just reset.
	level      int32
	subscribed bool

	goldEarned int64
	goldLimit  int64

	missionsCompleted int32
	missionLimit      int32

	bossKills     int32
	bossKillLimit int32

	lastReset time.Time

	// OnLimitReached, when set, fires once per earn attempt that hits a
	// cap. Invoked synchronously without the ledger lock held.
	OnLimitReached func(kind LimitKind)
}

// NewDailyLimits creates the ledger with limits computed for the given
// level and subscription state, anchored to now's calendar day.
func NewDailyLimits(tuning LimitsTuning, events *EventCurrency, level int32, subscribed bool, now time.Time) *DailyLimits {
	d := &DailyLimits{
		tuning:    tuning,
		events:    events,
		lastReset: dateOf(now),
	}
	d.Recalculate(level, subscribed)
	return d
}

// Recalculate recomputes all limits from the current level and
// subscription state. Must be called whenever either changes; counters
// are preserved.
func (d *DailyLimits) Recalculate(level int32, subscribed bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.level = level
	d.subscribed = subscribed
	d.recalculateLocked()
}

func (d *DailyLimits) recalculateLocked() {
	goldLimit := d.tuning.BaseDailyGoldLimit + int64(d.level)*d.tuning.DailyGoldLimitPerLevel
	missionLimit := d.tuning.DailyMissionsBase
	bossLimit := d.tuning.DailyBossKillsLimit

	if d.subscribed {
		goldLimit = int64(math.Round(float64(goldLimit) * d.tuning.FaithPassLimitBonus))
		missionLimit = d.tuning.DailyMissionsFaithPass
		bossLimit = int32(math.Round(float64(bossLimit) * d.tuning.FaithPassLimitBonus))
	}

	d.goldLimit = goldLimit
	d.missionLimit = missionLimit
	d.bossKillLimit = bossLimit
}

// TryEarnGold attempts to earn amount gold against the daily cap.
// Returns the amount actually credited: min(amount, limit-earned), never
// negative, never more than requested. Non-subscribers receive 10% of any
// denied remainder as event currency.
func (d *DailyLimits) TryEarnGold(amount int64) (int64, bool) {
	if amount <= 0 {
		return 0, false
	}

	d.mu.Lock()
	remaining := d.goldLimit - d.goldEarned
	if remaining < 0 {
		remaining = 0
	}
	actual := amount
	if actual > remaining {
		actual = remaining
	}
	d.goldEarned += actual
	denied := amount - actual
	compensate := denied > 0 && !d.subscribed
	capped := actual < amount
	d.mu.Unlock()

	if compensate && d.events != nil {
		tokens := int64(math.Round(float64(denied) * d.tuning.GoldCompensationRate))
		d.events.Award(tokens)
	}
	if capped && d.OnLimitReached != nil {
		d.OnLimitReached(LimitGold)
	}
	return actual, actual > 0
}

// TryCompleteMission counts a mission against the daily cap. A denied
// completion compensates non-subscribers with a fixed token reward.
func (d *DailyLimits) TryCompleteMission() bool {
	d.mu.Lock()
	if d.missionsCompleted >= d.missionLimit {
		subscribed := d.subscribed
		d.mu.Unlock()
		if !subscribed && d.events != nil {
			d.events.Award(d.tuning.EventCurrencyMissionComp)
		}
		if d.OnLimitReached != nil {
			d.OnLimitReached(LimitMissions)
		}
		return false
	}
	d.missionsCompleted++
	d.mu.Unlock()
	return true
}

// TryKillBoss counts a boss kill against the daily cap, compensating
// non-subscribers on denial.
func (d *DailyLimits) TryKillBoss() bool {
	d.mu.Lock()
	if d.bossKills >= d.bossKillLimit {
		subscribed := d.subscribed
		d.mu.Unlock()
		if !subscribed && d.events != nil {
			d.events.Award(d.tuning.EventCurrencyBossComp)
		}
		if d.OnLimitReached != nil {
			d.OnLimitReached(LimitBossKills)
		}
		return false
	}
	d.bossKills++
	d.mu.Unlock()
	return true
}

// Reached reports whether the counter for the kind is at its cap.
func (d *DailyLimits) Reached(kind LimitKind) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch kind {
	case LimitGold:
		return d.goldEarned >= d.goldLimit
	case LimitMissions:
		return d.missionsCompleted >= d.missionLimit
	case LimitBossKills:
		return d.bossKills >= d.bossKillLimit
	default:
		return false
	}
}

// Progress returns counter/limit for the kind in [0,1].
func (d *DailyLimits) Progress(kind LimitKind) float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	switch kind {
	case LimitGold:
		if d.goldLimit == 0 {
			return 0
		}
		return float64(d.goldEarned) / float64(d.goldLimit)
	case LimitMissions:
		if d.missionLimit == 0 {
			return 0
		}
		return float64(d.missionsCompleted) / float64(d.missionLimit)
	case LimitBossKills:
		if d.bossKillLimit == 0 {
			return 0
		}
		return float64(d.bossKills) / float64(d.bossKillLimit)
	default:
		return 0
	}
}

// GoldEarned returns today's credited gold and its limit.
func (d *DailyLimits) GoldEarned() (earned, limit int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.goldEarned, d.goldLimit
}

// Missions returns today's mission count and its limit.
func (d *DailyLimits) Missions() (done, limit int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.missionsCompleted, d.missionLimit
}

// BossKills returns today's boss-kill count and its limit.
func (d *DailyLimits) BossKills() (done, limit int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bossKills, d.bossKillLimit
}

// CheckReset performs the calendar-day reset if now is on a later day
// than the last reset. Safe to call at any frequency and idempotent for
// late fires: a reset hours after midnight still resets exactly once and
// re-anchors to now's day. Returns true when a reset happened.
func (d *DailyLimits) CheckReset(now time.Time) bool {
	d.mu.Lock()
	today := dateOf(now)
	if !d.lastReset.Before(today) {
		d.mu.Unlock()
		return false
	}
	d.goldEarned = 0
	d.missionsCompleted = 0
	d.bossKills = 0
	d.lastReset = today
	d.recalculateLocked()
	d.mu.Unlock()

	if d.events != nil {
		d.events.ResetDaily()
	}
	return true
}

// NextReset returns the next local-midnight boundary after now.
func (d *DailyLimits) NextReset(now time.Time) time.Time {
	return dateOf(now).AddDate(0, 0, 1)
}

// PurchaseLimitIncrease buys a one-day cap raise through the payment
// service. The raise survives until the next reset recomputes limits.
func (d *DailyLimits) PurchaseLimitIncrease(kind LimitKind, usdCost float64, pay PaymentService) bool {
	if pay == nil || !pay.Charge(usdCost) {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	switch kind {
	case LimitGold:
		d.goldLimit += 1000
	case LimitMissions:
		d.missionLimit += 2
	case LimitBossKills:
		d.bossKillLimit += 5
	default:
		return false
	}
	return true
}

// PurchaseReset buys an immediate counter reset without waiting for
// midnight. Limits are recomputed from the current level/subscription.
func (d *DailyLimits) PurchaseReset(usdCost float64, pay PaymentService) bool {
	if pay == nil || !pay.Charge(usdCost) {
		return false
	}
	d.mu.Lock()
	d.goldEarned = 0
	d.missionsCompleted = 0
	d.bossKills = 0
	d.recalculateLocked()
	d.mu.Unlock()
	return true
}

// DailyLimitsSnapshot is the serializable ledger state (the "DailyLimits"
// persistence key). Missing fields restore to a fresh day.
type DailyLimitsSnapshot struct {
	GoldEarned        int64     `json:"goldEarned"`
	MissionsCompleted int32     `json:"missionsCompleted"`
	BossKills         int32     `json:"bossKills"`
	LastReset         time.Time `json:"lastResetDate,omitzero"`
}

// Snapshot returns the serializable counters.
func (d *DailyLimits) Snapshot() DailyLimitsSnapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return DailyLimitsSnapshot{
		GoldEarned:        d.goldEarned,
		MissionsCompleted: d.missionsCompleted,
		BossKills:         d.bossKills,
		LastReset:         d.lastReset,
	}
}

// Restore loads counters from a snapshot, then lets CheckReset decide
// whether the persisted day has already rolled over.
func (d *DailyLimits) Restore(snap DailyLimitsSnapshot) {
	d.mu.Lock()
	d.goldEarned = snap.GoldEarned
	d.missionsCompleted = snap.MissionsCompleted
	d.bossKills = snap.BossKills
	if !snap.LastReset.IsZero() {
		d.lastReset = dateOf(snap.LastReset)
	}
	d.mu.Unlock()
}

// dateOf truncates a time to its local calendar day.
func dateOf(t time.Time) time.Time {
	y, m, day := t.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, t.Location())
}
