package economy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JorgeBC420/caminosdelafe/internal/model"
	"github.com/JorgeBC420/caminosdelafe/internal/testutil"
)

func TestForcedAdInterval(t *testing.T) {
	ads := NewAdLedger(DefaultAdTuning(), newTestPass(t, false), testDay)

	assert.False(t, ads.ForcedAdDue(testDay))
	assert.False(t, ads.ForcedAdDue(testDay.Add(14*time.Minute)))
	assert.True(t, ads.ForcedAdDue(testDay.Add(15*time.Minute)))

	// Rescheduling runs from the fire time, not the missed deadline.
	late := testDay.Add(40 * time.Minute)
	ads.MarkForcedShown(late)
	assert.False(t, ads.ForcedAdDue(late.Add(14*time.Minute)))
	assert.True(t, ads.ForcedAdDue(late.Add(15*time.Minute)))
}

func TestAdFreeSuppressesForcedAds(t *testing.T) {
	ads := NewAdLedger(DefaultAdTuning(), newTestPass(t, true), testDay)
	assert.False(t, ads.ForcedAdDue(testDay.Add(time.Hour)))

	// Past the ad-free window they return.
	afterWindow := testDay.AddDate(0, 0, 181)
	assert.True(t, ads.ForcedAdDue(afterWindow))
}

func TestRewardedGoldFormula(t *testing.T) {
	free := NewAdLedger(DefaultAdTuning(), newTestPass(t, false), testDay)
	// 100 × (1 + 0.1×5) × 1.0 × 1.5 = 225
	assert.Equal(t, int64(225), free.RewardedGold(5, testDay))

	paid := NewAdLedger(DefaultAdTuning(), newTestPass(t, true), testDay)
	// 100 × 1.5 × 1.3 × 1.5 = 292.5 → 293
	assert.Equal(t, int64(293), paid.RewardedGold(5, testDay))
}

func TestWatchRewardedCreditsThroughLimits(t *testing.T) {
	p, err := model.NewPlayer("Rodrigo", "Cruzados")
	require.NoError(t, err)
	limits, _ := newTestLimits(p.Level(), false)
	ads := NewAdLedger(DefaultAdTuning(), newTestPass(t, false), testDay)
	start := p.Gold()

	provider := &testutil.StubAdProvider{Complete: true}
	gold, ok := ads.WatchRewarded(p, limits, provider, testDay)
	require.True(t, ok)
	// Level 1: 100 × 1.1 × 1.5 = 165.
	assert.Equal(t, int64(165), gold)
	assert.Equal(t, start+165, p.Gold())
	assert.Equal(t, 1, provider.Shown)

	earned, _ := limits.GoldEarned()
	assert.Equal(t, int64(165), earned, "rewarded gold counts against the daily cap")
}

func TestWatchRewardedIncomplete(t *testing.T) {
	p, err := model.NewPlayer("Rodrigo", "Cruzados")
	require.NoError(t, err)
	limits, _ := newTestLimits(p.Level(), false)
	ads := NewAdLedger(DefaultAdTuning(), newTestPass(t, false), testDay)
	start := p.Gold()

	_, ok := ads.WatchRewarded(p, limits, &testutil.StubAdProvider{Complete: false}, testDay)
	assert.False(t, ok)
	assert.Equal(t, start, p.Gold())
}

func TestWatchRewardedCappedByLimit(t *testing.T) {
	p, err := model.NewPlayer("Rodrigo", "Cruzados")
	require.NoError(t, err)
	limits, _ := newTestLimits(p.Level(), false)
	limits.TryEarnGold(10_000) // exhaust the cap
	ads := NewAdLedger(DefaultAdTuning(), newTestPass(t, false), testDay)

	_, ok := ads.WatchRewarded(p, limits, &testutil.StubAdProvider{Complete: true}, testDay)
	assert.False(t, ok, "fully capped day pays nothing")
}

func TestEventCurrencyConvertAndClaim(t *testing.T) {
	events := NewEventCurrency(DefaultLimitsTuning())
	events.Award(95)

	premium, ok := events.ConvertToPremium(90)
	require.True(t, ok)
	assert.Equal(t, int64(9), premium)
	assert.Equal(t, int64(5), events.Tokens())

	_, ok = events.ConvertToPremium(5)
	assert.False(t, ok, "5 tokens convert to less than one premium unit")

	got, ok := events.ClaimDaily(testDay)
	require.True(t, ok)
	assert.Equal(t, int64(25), got)
	_, ok = events.ClaimDaily(testDay.Add(3 * time.Hour))
	assert.False(t, ok, "one claim per calendar day")
	_, ok = events.ClaimDaily(testDay.AddDate(0, 0, 1))
	assert.True(t, ok)
}

func TestEventCurrencySpend(t *testing.T) {
	events := NewEventCurrency(DefaultLimitsTuning())
	events.Award(10)
	assert.False(t, events.Spend(11))
	assert.True(t, events.Spend(10))
	assert.Zero(t, events.Tokens())
}
