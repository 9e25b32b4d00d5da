package economy

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/JorgeBC420/caminosdelafe/internal/model"
)

// PaymentService charges real money. Implementations wrap a store
// backend; tests use stubs.
type PaymentService interface {
	Charge(usdAmount float64) bool
}

// ExchangeTuning holds the USD↔gold conversion knobs.
type ExchangeTuning struct {
	LowLevelGoldPerUSD float64 `yaml:"low_level_gold_per_usd"`
	LowLevelThreshold  int32   `yaml:"low_level_threshold"`
	GoldPerUSDPerLevel float64 `yaml:"gold_per_usd_per_level"`
	ReverseFeeRate     float64 `yaml:"reverse_fee_rate"`
	BurnThreshold      int64   `yaml:"burn_threshold"`
	BurnRate           float64 `yaml:"burn_rate"`
}

// DefaultExchangeTuning returns the production exchange values.
func DefaultExchangeTuning() ExchangeTuning {
	return ExchangeTuning{
		LowLevelGoldPerUSD: 1000,
		LowLevelThreshold:  10,
		GoldPerUSDPerLevel: 100,
		ReverseFeeRate:     0.15,
		BurnThreshold:      10000,
		BurnRate:           0.05,
	}
}

// TransactionType classifies a ledger entry.
type TransactionType uint8

const (
	TxPurchase TransactionType = iota
	TxWithdrawal
	TxReward
	TxBurn
)

// String returns the ledger tag for the transaction type.
func (t TransactionType) String() string {
	switch t {
	case TxPurchase:
		return "purchase"
	case TxWithdrawal:
		return "withdrawal"
	case TxReward:
		return "reward"
	case TxBurn:
		return "burn"
	default:
		return "unknown"
	}
}

// GoldTransaction is one immutable ledger entry.
type GoldTransaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Timestamp   time.Time       `json:"timestamp"`
	USDAmount   float64         `json:"usdAmount"`
	GoldAmount  int64           `json:"goldAmount"`
	PlayerLevel int32           `json:"playerLevel"`
}

// GoldPackage is a fixed store offer. Bonus is the extra fraction on top
// of the raw exchange rate.
type GoldPackage struct {
	Name     string
	USDPrice float64
	Bonus    float64
}

// GoldPackages is the store catalog, cheapest first.
var GoldPackages = []GoldPackage{
	{Name: "Bolsa del Peregrino", USDPrice: 1, Bonus: 0},
	{Name: "Cofre del Mercader", USDPrice: 5, Bonus: 0.10},
	{Name: "Arca del Cruzado", USDPrice: 10, Bonus: 0.20},
	{Name: "Tesoro del Sultán", USDPrice: 20, Bonus: 0.35},
	{Name: "Botín de Tierra Santa", USDPrice: 50, Bonus: 0.50},
}

// maxLedgerEntries bounds the in-memory transaction log.
const maxLedgerEntries = 1000

// Ledger converts real money to gold and back, keeps the current day's
// transaction log and burns a slice of large purchases to curb
// inflation.
type Ledger struct {
	mu sync.Mutex

	tuning ExchangeTuning

	revenueToday   float64
	revenueAllTime float64
	goldSold       int64
	goldBurned     int64

	lastRevenueReset time.Time
	transactions     []GoldTransaction
	txSeq            uint64
}

// NewLedger creates an empty ledger anchored to now's calendar day.
func NewLedger(tuning ExchangeTuning, now time.Time) *Ledger {
	return &Ledger{
		tuning:           tuning,
		lastRevenueReset: dateOf(now),
	}
}

// GoldForUSD converts a USD amount at the level-scaled rate: low-level
// characters get a flat generous rate, everyone else pays level-scaled.
func (l *Ledger) GoldForUSD(usd float64, level int32) int64 {
	if usd <= 0 {
		return 0
	}
	return int64(math.Round(usd * l.goldPerUSD(level)))
}

// USDForGold converts gold back to USD at the same rate minus the
// reverse-conversion fee.
func (l *Ledger) USDForGold(gold int64, level int32) float64 {
	if gold <= 0 {
		return 0
	}
	usd := float64(gold) / l.goldPerUSD(level)
	return usd * (1 - l.tuning.ReverseFeeRate)
}

func (l *Ledger) goldPerUSD(level int32) float64 {
	if level <= l.tuning.LowLevelThreshold {
		return l.tuning.LowLevelGoldPerUSD
	}
	return l.tuning.GoldPerUSDPerLevel * float64(level)
}

// PurchaseGold sells gold for real money: charges the payment service,
// credits the wallet directly (store gold bypasses daily earn limits)
// and burns a slice of large purchases. Returns the gold kept by the
// player after any burn.
func (l *Ledger) PurchaseGold(p *model.Player, usd float64, pay PaymentService, now time.Time) (int64, bool) {
	gold := l.GoldForUSD(usd, p.Level())
	if gold <= 0 || pay == nil || !pay.Charge(usd) {
		return 0, false
	}

	p.AddGold(gold)
	l.record(TxPurchase, usd, gold, p.Level(), now)

	l.mu.Lock()
	l.revenueToday += usd
	l.revenueAllTime += usd
	l.goldSold += gold
	l.mu.Unlock()

	return gold - l.burnFromPurchase(p, gold, now), true
}

// PurchasePackage sells a catalog offer: the raw rate for its price plus
// the package bonus.
func (l *Ledger) PurchasePackage(p *model.Player, pkg GoldPackage, pay PaymentService, now time.Time) (int64, bool) {
	base := l.GoldForUSD(pkg.USDPrice, p.Level())
	gold := int64(math.Round(float64(base) * (1 + pkg.Bonus)))
	if gold <= 0 || pay == nil || !pay.Charge(pkg.USDPrice) {
		return 0, false
	}

	p.AddGold(gold)
	l.record(TxPurchase, pkg.USDPrice, gold, p.Level(), now)

	l.mu.Lock()
	l.revenueToday += pkg.USDPrice
	l.revenueAllTime += pkg.USDPrice
	l.goldSold += gold
	l.mu.Unlock()

	return gold - l.burnFromPurchase(p, gold, now), true
}

// burnFromPurchase removes the burn slice of a large purchase from the
// wallet and records it as a distinct burn entry. Burns never cascade:
// the burn amount itself is not re-checked against the threshold.
func (l *Ledger) burnFromPurchase(p *model.Player, gold int64, now time.Time) int64 {
	if gold < l.tuning.BurnThreshold {
		return 0
	}
	burn := int64(math.Round(float64(gold) * l.tuning.BurnRate))
	if burn <= 0 {
		return 0
	}
	p.SpendGold(burn)
	l.record(TxBurn, 0, burn, p.Level(), now)

	l.mu.Lock()
	l.goldBurned += burn
	l.mu.Unlock()
	return burn
}

// SellGold converts wallet gold back to USD minus the fee. The gold
// leaves the economy entirely.
func (l *Ledger) SellGold(p *model.Player, gold int64, now time.Time) (float64, bool) {
	usd := l.USDForGold(gold, p.Level())
	if usd <= 0 || !p.SpendGold(gold) {
		return 0, false
	}
	l.record(TxWithdrawal, usd, gold, p.Level(), now)
	return usd, true
}

// RecordReward logs a non-monetary gold grant (ads, events) so supply
// reports stay complete.
func (l *Ledger) RecordReward(gold int64, level int32, now time.Time) {
	if gold <= 0 {
		return
	}
	l.record(TxReward, 0, gold, level, now)
}

func (l *Ledger) record(typ TransactionType, usd float64, gold int64, level int32, now time.Time) {
	l.mu.Lock()
	l.txSeq++
	tx := GoldTransaction{
		ID:          fmt.Sprintf("TX_%d_%04d", now.UnixNano(), l.txSeq%10000),
		Type:        typ,
		Timestamp:   now,
		USDAmount:   usd,
		GoldAmount:  gold,
		PlayerLevel: level,
	}
	l.transactions = append(l.transactions, tx)
	if len(l.transactions) > maxLedgerEntries {
		l.transactions = l.transactions[len(l.transactions)-maxLedgerEntries:]
	}
	l.mu.Unlock()
}

// Transactions returns a copy of the current day's ledger entries,
// oldest first.
func (l *Ledger) Transactions() []GoldTransaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]GoldTransaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// EconomyReport is a point-in-time supply and revenue summary.
type EconomyReport struct {
	RevenueToday   float64 `json:"revenueToday"`
	RevenueAllTime float64 `json:"revenueAllTime"`
	GoldSold       int64   `json:"goldSold"`
	GoldBurned     int64   `json:"goldBurned"`
	BurnRatio      float64 `json:"burnRatio"`
}

// Report summarizes revenue and gold supply. BurnRatio is burned/sold,
// zero when nothing was sold yet.
func (l *Ledger) Report() EconomyReport {
	l.mu.Lock()
	defer l.mu.Unlock()
	r := EconomyReport{
		RevenueToday:   l.revenueToday,
		RevenueAllTime: l.revenueAllTime,
		GoldSold:       l.goldSold,
		GoldBurned:     l.goldBurned,
	}
	if l.goldSold > 0 {
		r.BurnRatio = float64(l.goldBurned) / float64(l.goldSold)
	}
	return r
}

// CheckRevenueReset zeroes the daily revenue counter and clears the
// day's transaction log once per calendar day. Idempotent within a day;
// returns true when a reset happened.
func (l *Ledger) CheckRevenueReset(now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	today := dateOf(now)
	if !l.lastRevenueReset.Before(today) {
		return false
	}
	l.revenueToday = 0
	l.transactions = nil
	l.lastRevenueReset = today
	return true
}

// LedgerSnapshot is the serializable ledger state. The persistence layer
// stores RevenueToday, GoldSold and GoldBurned under their own keys.
type LedgerSnapshot struct {
	RevenueToday     float64   `json:"revenueToday"`
	RevenueAllTime   float64   `json:"revenueAllTime"`
	GoldSold         int64     `json:"goldSold"`
	GoldBurned       int64     `json:"goldBurned"`
	LastRevenueReset time.Time `json:"lastRevenueReset,omitzero"`
}

// Snapshot returns the serializable totals.
func (l *Ledger) Snapshot() LedgerSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return LedgerSnapshot{
		RevenueToday:     l.revenueToday,
		RevenueAllTime:   l.revenueAllTime,
		GoldSold:         l.goldSold,
		GoldBurned:       l.goldBurned,
		LastRevenueReset: l.lastRevenueReset,
	}
}

// Restore loads totals from a snapshot.
func (l *Ledger) Restore(snap LedgerSnapshot) {
	l.mu.Lock()
	l.revenueToday = snap.RevenueToday
	l.revenueAllTime = snap.RevenueAllTime
	l.goldSold = snap.GoldSold
	l.goldBurned = snap.GoldBurned
	if !snap.LastRevenueReset.IsZero() {
		l.lastRevenueReset = dateOf(snap.LastRevenueReset)
	}
	l.mu.Unlock()
}
