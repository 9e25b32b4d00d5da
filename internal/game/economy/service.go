package economy

import (
	"log/slog"
	"time"

	"github.com/JorgeBC420/caminosdelafe/internal/game/combat"
	"github.com/JorgeBC420/caminosdelafe/internal/model"
)

// Service is the economy facade for one character: every gold or XP
// grant flows through it so pass multipliers, daily limits and ledger
// records are applied consistently.
type Service struct {
	log    *slog.Logger
	player *model.Player
	pass   *FaithPass
	limits *DailyLimits
	events *EventCurrency
	ledger *Ledger
	ads    *AdLedger
}

// NewService wires the economy components around a character.
func NewService(log *slog.Logger, p *model.Player, pass *FaithPass, limits *DailyLimits, events *EventCurrency, ledger *Ledger, ads *AdLedger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		log:    log,
		player: p,
		pass:   pass,
		limits: limits,
		events: events,
		ledger: ledger,
		ads:    ads,
	}
}

// Player returns the wrapped character.
func (s *Service) Player() *model.Player { return s.player }

// Pass returns the faith pass.
func (s *Service) Pass() *FaithPass { return s.pass }

// Limits returns the daily limits ledger.
func (s *Service) Limits() *DailyLimits { return s.limits }

// Events returns the event currency wallet.
func (s *Service) Events() *EventCurrency { return s.events }

// Ledger returns the gold/USD ledger.
func (s *Service) Ledger() *Ledger { return s.ledger }

// Ads returns the ad ledger.
func (s *Service) Ads() *AdLedger { return s.ads }

// AwardGold credits earned gold: the pass multiplier applies first, then
// the daily limit caps the result. Returns the gold actually credited.
func (s *Service) AwardGold(amount int64, now time.Time) int64 {
	if amount <= 0 {
		return 0
	}
	gold := int64(float64(amount)*s.pass.GoldMultiplier(now) + 0.5)
	credited, ok := s.limits.TryEarnGold(gold)
	if !ok {
		return 0
	}
	s.player.AddGold(credited)
	s.ledger.RecordReward(credited, s.player.Level(), now)
	return credited
}

// AwardExperience credits earned XP with the pass multiplier, feeds the
// pass reward track and recomputes the daily limits when the character
// levels up. Returns the XP actually credited.
func (s *Service) AwardExperience(amount int64, now time.Time) int64 {
	if amount <= 0 {
		return 0
	}
	xp := int64(float64(amount)*s.pass.XPMultiplier(now) + 0.5)

	before := s.player.Level()
	after := s.player.AddExperience(xp)
	if tier, advanced := s.pass.AddXP(xp); advanced {
		s.log.Info("pass tier reached", "character", s.player.Name(), "tier", tier)
	}
	if after != before {
		s.limits.Recalculate(after, s.pass.IsActive(now))
		s.log.Info("level up", "character", s.player.Name(), "level", after)
	}
	return xp
}

// ApplyBattle credits a battle's rewards and applies its damage. The
// resolver already mitigated the damage, so it lands raw here; victory
// rewards flow through the multiplied, limited paths.
func (s *Service) ApplyBattle(res combat.BattleResult, now time.Time) {
	s.player.TakeRawDamage(res.DamageTaken)
	if !res.Victory {
		return
	}
	s.AwardExperience(res.ExperienceGained, now)
	s.AwardGold(res.GoldGained, now)
}

// CompleteMission counts the mission against the daily cap and pays its
// rewards when allowed.
func (s *Service) CompleteMission(goldReward, xpReward int64, now time.Time) bool {
	if !s.limits.TryCompleteMission() {
		return false
	}
	s.AwardGold(goldReward, now)
	s.AwardExperience(xpReward, now)
	return true
}

// DefeatBoss counts the kill against the daily cap and pays its rewards
// when allowed.
func (s *Service) DefeatBoss(goldReward, xpReward int64, now time.Time) bool {
	if !s.limits.TryKillBoss() {
		return false
	}
	s.AwardGold(goldReward, now)
	s.AwardExperience(xpReward, now)
	return true
}

// ActivatePass purchases the subscription and immediately raises the
// daily limits.
func (s *Service) ActivatePass(now time.Time, pay PaymentService) bool {
	if !s.pass.Activate(now, pay) {
		return false
	}
	s.limits.Recalculate(s.player.Level(), true)
	s.log.Info("faith pass activated", "character", s.player.Name(), "until", s.pass.Expiration())
	return true
}

// ClaimPassReward claims a reward-track tier and credits its contents.
// Reward gold is a premium grant and bypasses the daily earn limit.
func (s *Service) ClaimPassReward(tier int32, now time.Time) (PassReward, bool) {
	reward, ok := s.pass.ClaimReward(tier, now)
	if !ok {
		return PassReward{}, false
	}
	if reward.Gold > 0 {
		s.player.AddGold(reward.Gold)
		s.ledger.RecordReward(reward.Gold, s.player.Level(), now)
	}
	if reward.Tokens > 0 {
		s.events.Award(reward.Tokens)
	}
	return reward, true
}

// Tick drives the time-based bookkeeping: calendar-day resets and the
// subscription-state limit refresh. Safe to call at any frequency.
func (s *Service) Tick(now time.Time) {
	if s.limits.CheckReset(now) {
		s.log.Info("daily limits reset", "character", s.player.Name())
	}
	if s.ledger.CheckRevenueReset(now) {
		s.log.Info("daily revenue reset")
	}
	// An expired pass lowers the limits on the next tick after expiry.
	s.limits.Recalculate(s.player.Level(), s.pass.IsActive(now))
}
