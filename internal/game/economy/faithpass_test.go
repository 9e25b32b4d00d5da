package economy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JorgeBC420/caminosdelafe/internal/testutil"
)

func newTestPass(t *testing.T, active bool) *FaithPass {
	t.Helper()
	pass := NewFaithPass(DefaultPassTuning())
	if active {
		require.True(t, pass.Activate(testDay, &testutil.StubPayment{Accept: true}))
	}
	return pass
}

func TestActivateChargesPrice(t *testing.T) {
	pass := NewFaithPass(DefaultPassTuning())
	pay := &testutil.StubPayment{Accept: true}

	require.True(t, pass.Activate(testDay, pay))
	assert.Equal(t, []float64{10}, pay.Charges)
	assert.True(t, pass.IsActive(testDay))
	assert.True(t, pass.IsActive(testDay.AddDate(0, 0, 29)))
	assert.False(t, pass.IsActive(testDay.AddDate(0, 0, 31)))
}

func TestActivateDeclined(t *testing.T) {
	pass := NewFaithPass(DefaultPassTuning())
	assert.False(t, pass.Activate(testDay, &testutil.StubPayment{Accept: false}))
	assert.False(t, pass.IsActive(testDay))
}

func TestActivateStacksOnActivePass(t *testing.T) {
	pass := newTestPass(t, true)
	require.True(t, pass.Activate(testDay.AddDate(0, 0, 10), &testutil.StubPayment{Accept: true}))
	assert.True(t, pass.IsActive(testDay.AddDate(0, 0, 59)), "extension stacks to 60 days")
}

func TestMultipliers(t *testing.T) {
	active := newTestPass(t, true)
	assert.Equal(t, 1.5, active.XPMultiplier(testDay))
	assert.Equal(t, 1.3, active.GoldMultiplier(testDay))

	expired := testDay.AddDate(0, 0, 31)
	assert.Equal(t, 1.0, active.XPMultiplier(expired))
	assert.Equal(t, 1.0, active.GoldMultiplier(expired))

	inactive := newTestPass(t, false)
	assert.Equal(t, 1.0, inactive.XPMultiplier(testDay))
}

func TestAdFreeOutlivesSubscription(t *testing.T) {
	pass := newTestPass(t, true)

	expired := testDay.AddDate(0, 0, 40)
	assert.False(t, pass.IsActive(expired))
	assert.True(t, pass.IsAdFree(expired), "180-day ad-free window outlives the 30-day pass")
	assert.False(t, pass.IsAdFree(testDay.AddDate(0, 0, 181)))
}

func TestAddXPAdvancesTiers(t *testing.T) {
	pass := newTestPass(t, false)

	tier, advanced := pass.AddXP(999)
	assert.Zero(t, tier)
	assert.False(t, advanced)

	tier, advanced = pass.AddXP(1)
	assert.Equal(t, int32(1), tier)
	assert.True(t, advanced)

	tier, _ = pass.AddXP(2500)
	assert.Equal(t, int32(3), tier)

	// Track caps at the last reward tier.
	tier, _ = pass.AddXP(1_000_000)
	assert.Equal(t, int32(len(PassRewards)), tier)
}

func TestClaimReward(t *testing.T) {
	pass := newTestPass(t, false)
	pass.AddXP(2000) // tier 2

	reward, ok := pass.ClaimReward(1, testDay)
	require.True(t, ok)
	assert.Equal(t, int64(200), reward.Gold)

	_, ok = pass.ClaimReward(1, testDay)
	assert.False(t, ok, "double claim")

	_, ok = pass.ClaimReward(5, testDay)
	assert.False(t, ok, "unreached tier")

	_, ok = pass.ClaimReward(0, testDay)
	assert.False(t, ok, "tier 0 is invalid")
}

func TestPremiumRewardNeedsActivePass(t *testing.T) {
	free := newTestPass(t, false)
	free.AddXP(3000) // tier 3 is premium-only

	_, ok := free.ClaimReward(3, testDay)
	assert.False(t, ok)

	paid := newTestPass(t, true)
	paid.AddXP(3000)
	reward, ok := paid.ClaimReward(3, testDay)
	require.True(t, ok)
	assert.True(t, reward.PremiumOnly)
}

func TestPassSnapshotRoundTrip(t *testing.T) {
	pass := newTestPass(t, true)
	pass.AddXP(2000)
	_, ok := pass.ClaimReward(1, testDay)
	require.True(t, ok)

	fresh := NewFaithPass(DefaultPassTuning())
	fresh.Restore(pass.Snapshot())

	assert.Equal(t, pass.Expiration(), fresh.Expiration())
	assert.Equal(t, pass.Tier(), fresh.Tier())
	_, ok = fresh.ClaimReward(1, testDay)
	assert.False(t, ok, "claimed tier stays claimed after restore")
	_, ok = fresh.ClaimReward(2, testDay)
	assert.True(t, ok)
}

func TestRestoreZeroSnapshotIsInactive(t *testing.T) {
	pass := NewFaithPass(DefaultPassTuning())
	pass.Restore(FaithPassSnapshot{})
	assert.False(t, pass.IsActive(time.Now()))
	assert.False(t, pass.IsAdFree(time.Now()))
}
