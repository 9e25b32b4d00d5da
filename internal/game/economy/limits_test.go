package economy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/JorgeBC420/caminosdelafe/internal/testutil"
)

var testDay = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestLimits(level int32, subscribed bool) (*DailyLimits, *EventCurrency) {
	tuning := DefaultLimitsTuning()
	events := NewEventCurrency(tuning)
	return NewDailyLimits(tuning, events, level, subscribed, testDay), events
}

func TestGoldLimitScalesWithLevel(t *testing.T) {
	tests := []struct {
		name       string
		level      int32
		subscribed bool
		want       int64
	}{
		{"level 1", 1, false, 550},
		{"level 10", 10, false, 1000},
		{"level 10 with pass", 10, true, 1500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _ := newTestLimits(tt.level, tt.subscribed)
			_, limit := d.GoldEarned()
			assert.Equal(t, tt.want, limit)
		})
	}
}

func TestTryEarnGoldPartialCredit(t *testing.T) {
	d, events := newTestLimits(0, false) // limit 500

	credited, ok := d.TryEarnGold(480)
	assert.True(t, ok)
	assert.Equal(t, int64(480), credited)

	// 20 left under the cap: 100 requested → 20 credited, 80 denied,
	// 10% of the denial compensated in tokens.
	credited, ok = d.TryEarnGold(100)
	assert.True(t, ok)
	assert.Equal(t, int64(20), credited)
	assert.Equal(t, int64(8), events.Tokens())

	// At the cap: nothing credited.
	credited, ok = d.TryEarnGold(50)
	assert.False(t, ok)
	assert.Zero(t, credited)
	assert.Equal(t, int64(13), events.Tokens()) // +round(50×0.1)
}

func TestTryEarnGoldSubscriberNoCompensation(t *testing.T) {
	d, events := newTestLimits(0, true) // limit 750
	d.TryEarnGold(750)
	_, ok := d.TryEarnGold(100)
	assert.False(t, ok)
	assert.Zero(t, events.Tokens(), "subscribers get no token compensation")
}

func TestMissionLimit(t *testing.T) {
	d, events := newTestLimits(5, false)

	for i := range 5 {
		assert.True(t, d.TryCompleteMission(), "mission %d", i)
	}
	assert.False(t, d.TryCompleteMission())
	assert.Equal(t, int64(15), events.Tokens(), "denied mission compensates 15 tokens")

	done, limit := d.Missions()
	assert.Equal(t, int32(5), done)
	assert.Equal(t, int32(5), limit)
}

func TestMissionLimitWithPass(t *testing.T) {
	d, _ := newTestLimits(5, true)
	for range 8 {
		assert.True(t, d.TryCompleteMission())
	}
	assert.False(t, d.TryCompleteMission())
}

func TestBossLimit(t *testing.T) {
	d, events := newTestLimits(5, false)
	for range 10 {
		assert.True(t, d.TryKillBoss())
	}
	assert.False(t, d.TryKillBoss())
	assert.Equal(t, int64(25), events.Tokens(), "denied boss kill compensates 25 tokens")
}

func TestOnLimitReachedFires(t *testing.T) {
	d, _ := newTestLimits(0, false)
	var kinds []LimitKind
	d.OnLimitReached = func(k LimitKind) { kinds = append(kinds, k) }

	d.TryEarnGold(500)
	assert.Empty(t, kinds, "exactly reaching the cap without denial does not notify")
	d.TryEarnGold(1)
	assert.Equal(t, []LimitKind{LimitGold}, kinds)
}

func TestCheckResetIdempotent(t *testing.T) {
	d, _ := newTestLimits(5, false)
	d.TryEarnGold(300)
	d.TryCompleteMission()

	assert.False(t, d.CheckReset(testDay.Add(2*time.Hour)), "same day: no reset")

	// Hours past midnight still resets exactly once.
	late := testDay.AddDate(0, 0, 1).Add(5 * time.Hour)
	assert.True(t, d.CheckReset(late))
	assert.False(t, d.CheckReset(late.Add(time.Minute)))

	earned, _ := d.GoldEarned()
	done, _ := d.Missions()
	assert.Zero(t, earned)
	assert.Zero(t, done)
}

func TestRecalculatePreservesCounters(t *testing.T) {
	d, _ := newTestLimits(1, false)
	d.TryEarnGold(200)

	d.Recalculate(20, true)
	earned, limit := d.GoldEarned()
	assert.Equal(t, int64(200), earned)
	assert.Equal(t, int64(2250), limit) // (500+50×20)×1.5
}

func TestPurchaseLimitIncrease(t *testing.T) {
	d, _ := newTestLimits(0, false)

	pay := &testutil.StubPayment{Accept: true}
	assert.True(t, d.PurchaseLimitIncrease(LimitGold, 2, pay))
	_, limit := d.GoldEarned()
	assert.Equal(t, int64(1500), limit)
	assert.Equal(t, []float64{2}, pay.Charges)

	declined := &testutil.StubPayment{Accept: false}
	assert.False(t, d.PurchaseLimitIncrease(LimitGold, 2, declined))
}

func TestPurchaseReset(t *testing.T) {
	d, _ := newTestLimits(0, false)
	d.TryEarnGold(400)

	assert.True(t, d.PurchaseReset(1, &testutil.StubPayment{Accept: true}))
	earned, _ := d.GoldEarned()
	assert.Zero(t, earned)
}

func TestLimitsSnapshotRoundTrip(t *testing.T) {
	d, _ := newTestLimits(5, false)
	d.TryEarnGold(123)
	d.TryCompleteMission()
	d.TryKillBoss()

	fresh, _ := newTestLimits(5, false)
	fresh.Restore(d.Snapshot())

	earned, _ := fresh.GoldEarned()
	done, _ := fresh.Missions()
	kills, _ := fresh.BossKills()
	assert.Equal(t, int64(123), earned)
	assert.Equal(t, int32(1), done)
	assert.Equal(t, int32(1), kills)

	// Persisted day already rolled over: reset applies on the next check.
	assert.True(t, fresh.CheckReset(testDay.AddDate(0, 0, 2)))
}
