package economy

import (
	"sync"
	"time"
)

// PassTuning holds the subscription knobs.
type PassTuning struct {
	PriceUSD     float64 `yaml:"price_usd"`
	DurationDays int32   `yaml:"duration_days"`
	AdFreeDays   int32   `yaml:"ad_free_days"`
	XPBonus      float64 `yaml:"xp_bonus"`
	GoldBonus    float64 `yaml:"gold_bonus"`
	XPPerTier    int64   `yaml:"xp_per_tier"`
}

// DefaultPassTuning returns the production subscription values.
func DefaultPassTuning() PassTuning {
	return PassTuning{
		PriceUSD:     10,
		DurationDays: 30,
		AdFreeDays:   180,
		XPBonus:      1.5,
		GoldBonus:    1.3,
		XPPerTier:    1000,
	}
}

// PassReward is one tier of the seasonal reward track. PremiumOnly
// rewards require an active subscription to claim.
type PassReward struct {
	Tier        int32
	Name        string
	Gold        int64
	Tokens      int64
	PremiumOnly bool
}

// PassRewards is the seasonal reward track, one entry per tier.
var PassRewards = []PassReward{
	{Tier: 1, Name: "Bendición del Peregrino", Gold: 200},
	{Tier: 2, Name: "Ofrenda del Monasterio", Tokens: 50},
	{Tier: 3, Name: "Diezmo Real", Gold: 500, PremiumOnly: true},
	{Tier: 4, Name: "Reliquia Menor", Tokens: 100},
	{Tier: 5, Name: "Tributo del Templo", Gold: 1000, PremiumOnly: true},
	{Tier: 6, Name: "Limosna Sagrada", Gold: 400},
	{Tier: 7, Name: "Cáliz de Plata", Gold: 1500, PremiumOnly: true},
	{Tier: 8, Name: "Sello del Obispo", Tokens: 150},
	{Tier: 9, Name: "Corona de Espinas", Gold: 2500, PremiumOnly: true},
	{Tier: 10, Name: "Gracia Plenaria", Gold: 5000, Tokens: 250, PremiumOnly: true},
}

// FaithPass is the monthly subscription: XP/gold multipliers, raised
// daily limits, a long ad-free window and a tiered reward track driven
// by earned XP.
type FaithPass struct {
	mu sync.Mutex

	tuning PassTuning

	expiration       time.Time
	adFreeExpiration time.Time

	seasonXP int64
	tier     int32
	claimed  map[int32]bool
}

// NewFaithPass creates an inactive pass.
func NewFaithPass(tuning PassTuning) *FaithPass {
	return &FaithPass{
		tuning:  tuning,
		claimed: make(map[int32]bool),
	}
}

// Activate purchases or extends the subscription. Extending an active
// pass stacks on the current expiration; the ad-free window always
// restarts from now.
func (f *FaithPass) Activate(now time.Time, pay PaymentService) bool {
	if pay == nil || !pay.Charge(f.tuning.PriceUSD) {
		return false
	}
	f.mu.Lock()
	from := now
	if f.expiration.After(now) {
		from = f.expiration
	}
	f.expiration = from.AddDate(0, 0, int(f.tuning.DurationDays))
	f.adFreeExpiration = now.AddDate(0, 0, int(f.tuning.AdFreeDays))
	f.mu.Unlock()
	return true
}

// IsActive reports whether the subscription covers now.
func (f *FaithPass) IsActive(now time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.expiration.After(now)
}

// IsAdFree reports whether the ad-free window covers now. The window
// outlives the subscription itself.
func (f *FaithPass) IsAdFree(now time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.adFreeExpiration.After(now)
}

// Expiration returns the subscription end, zero when never activated.
func (f *FaithPass) Expiration() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.expiration
}

// XPMultiplier returns the experience multiplier for now: the bonus
// while subscribed, 1.0 otherwise.
func (f *FaithPass) XPMultiplier(now time.Time) float64 {
	if f.IsActive(now) {
		return f.tuning.XPBonus
	}
	return 1.0
}

// GoldMultiplier returns the gold multiplier for now.
func (f *FaithPass) GoldMultiplier(now time.Time) float64 {
	if f.IsActive(now) {
		return f.tuning.GoldBonus
	}
	return 1.0
}

// AddXP feeds earned experience into the reward track and returns the
// new tier plus whether any tier boundary was crossed. Track XP accrues
// whether or not the pass is active; only premium claims are gated.
func (f *FaithPass) AddXP(xp int64) (tier int32, advanced bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if xp <= 0 {
		return f.tier, false
	}
	f.seasonXP += xp
	newTier := int32(f.seasonXP / f.tuning.XPPerTier)
	if last := int32(len(PassRewards)); newTier > last {
		newTier = last
	}
	advanced = newTier > f.tier
	f.tier = newTier
	return f.tier, advanced
}

// Tier returns the current reward-track tier.
func (f *FaithPass) Tier() int32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tier
}

// ClaimReward claims one reward tier. Fails for unreached or already
// claimed tiers, and for premium tiers without an active subscription.
func (f *FaithPass) ClaimReward(tier int32, now time.Time) (PassReward, bool) {
	if tier < 1 || tier > int32(len(PassRewards)) {
		return PassReward{}, false
	}
	reward := PassRewards[tier-1]

	f.mu.Lock()
	defer f.mu.Unlock()
	if tier > f.tier || f.claimed[tier] {
		return PassReward{}, false
	}
	if reward.PremiumOnly && !f.expiration.After(now) {
		return PassReward{}, false
	}
	f.claimed[tier] = true
	return reward, true
}

// FaithPassSnapshot is the serializable pass state (the "FaithPassData"
// persistence key).
type FaithPassSnapshot struct {
	Expiration       time.Time `json:"expiration,omitzero"`
	AdFreeExpiration time.Time `json:"adFreeExpiration,omitzero"`
	SeasonXP         int64     `json:"seasonXP"`
	Tier             int32     `json:"tier"`
	ClaimedTiers     []int32   `json:"claimedTiers,omitempty"`
}

// Snapshot returns the serializable pass state.
func (f *FaithPass) Snapshot() FaithPassSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := FaithPassSnapshot{
		Expiration:       f.expiration,
		AdFreeExpiration: f.adFreeExpiration,
		SeasonXP:         f.seasonXP,
		Tier:             f.tier,
	}
	for tier := range f.claimed {
		if f.claimed[tier] {
			snap.ClaimedTiers = append(snap.ClaimedTiers, tier)
		}
	}
	return snap
}

// Restore loads the pass from a snapshot.
func (f *FaithPass) Restore(snap FaithPassSnapshot) {
	f.mu.Lock()
	f.expiration = snap.Expiration
	f.adFreeExpiration = snap.AdFreeExpiration
	f.seasonXP = snap.SeasonXP
	f.tier = snap.Tier
	f.claimed = make(map[int32]bool, len(snap.ClaimedTiers))
	for _, tier := range snap.ClaimedTiers {
		f.claimed[tier] = true
	}
	f.mu.Unlock()
}
