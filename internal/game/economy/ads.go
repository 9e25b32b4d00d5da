package economy

import (
	"math"
	"sync"
	"time"

	"github.com/JorgeBC420/caminosdelafe/internal/model"
)

// AdTuning holds the advertising cadence and reward knobs.
type AdTuning struct {
	ForcedInterval    time.Duration `yaml:"forced_interval"`
	BaseRewardedGold  float64       `yaml:"base_rewarded_gold"`
	RewardedGoldBonus float64       `yaml:"rewarded_gold_bonus"`
}

// DefaultAdTuning returns the production ad values.
func DefaultAdTuning() AdTuning {
	return AdTuning{
		ForcedInterval:    15 * time.Minute,
		BaseRewardedGold:  100,
		RewardedGoldBonus: 1.5,
	}
}

// AdProvider plays an ad and reports whether it completed. Tests stub
// it; production wraps the mediation SDK callback.
type AdProvider interface {
	ShowRewarded() bool
}

// AdLedger schedules forced interstitials and pays out rewarded ads.
// Forced ads run on a fixed interval deadline; the ad-free window of an
// active pass suppresses them entirely.
type AdLedger struct {
	mu sync.Mutex

	tuning AdTuning
	pass   *FaithPass

	nextForced time.Time

	forcedShown   int64
	rewardedShown int64
}

// NewAdLedger creates the ledger with the first forced ad one interval
// from now.
func NewAdLedger(tuning AdTuning, pass *FaithPass, now time.Time) *AdLedger {
	return &AdLedger{
		tuning:     tuning,
		pass:       pass,
		nextForced: now.Add(tuning.ForcedInterval),
	}
}

// ForcedAdDue reports whether a forced interstitial should play now.
// Always false inside an ad-free window.
func (a *AdLedger) ForcedAdDue(now time.Time) bool {
	if a.pass != nil && a.pass.IsAdFree(now) {
		return false
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return !now.Before(a.nextForced)
}

// MarkForcedShown records a played interstitial and schedules the next
// one a full interval from now, not from the missed deadline.
func (a *AdLedger) MarkForcedShown(now time.Time) {
	a.mu.Lock()
	a.forcedShown++
	a.nextForced = now.Add(a.tuning.ForcedInterval)
	a.mu.Unlock()
}

// TimeUntilForced returns how long until the next forced ad, zero when
// one is already due.
func (a *AdLedger) TimeUntilForced(now time.Time) time.Duration {
	a.mu.Lock()
	defer a.mu.Unlock()
	if d := a.nextForced.Sub(now); d > 0 {
		return d
	}
	return 0
}

// RewardedGold is the payout for a completed rewarded ad:
// base × (1 + 0.1×level) × pass gold multiplier × rewarded bonus.
func (a *AdLedger) RewardedGold(level int32, now time.Time) int64 {
	mult := 1.0
	if a.pass != nil {
		mult = a.pass.GoldMultiplier(now)
	}
	gold := a.tuning.BaseRewardedGold * (1 + 0.1*float64(level)) * mult * a.tuning.RewardedGoldBonus
	return int64(math.Round(gold))
}

// WatchRewarded plays a rewarded ad and credits the payout through the
// daily gold limit. Returns the gold actually credited; zero with false
// when the ad did not complete or the limit absorbed everything.
func (a *AdLedger) WatchRewarded(p *model.Player, limits *DailyLimits, provider AdProvider, now time.Time) (int64, bool) {
	if provider == nil || !provider.ShowRewarded() {
		return 0, false
	}
	a.mu.Lock()
	a.rewardedShown++
	a.mu.Unlock()

	gold := a.RewardedGold(p.Level(), now)
	if limits != nil {
		credited, ok := limits.TryEarnGold(gold)
		if !ok {
			return 0, false
		}
		gold = credited
	}
	p.AddGold(gold)
	return gold, true
}

// Counts returns lifetime forced and rewarded impressions.
func (a *AdLedger) Counts() (forced, rewarded int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.forcedShown, a.rewardedShown
}
