// Package session assembles one character's full game state: model,
// economy services, combat resolver and persistence. The server drives
// each open session from a coarse tick.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/JorgeBC420/caminosdelafe/internal/config"
	"github.com/JorgeBC420/caminosdelafe/internal/db"
	"github.com/JorgeBC420/caminosdelafe/internal/game/combat"
	"github.com/JorgeBC420/caminosdelafe/internal/game/economy"
	"github.com/JorgeBC420/caminosdelafe/internal/game/scheduler"
	"github.com/JorgeBC420/caminosdelafe/internal/model"
)

// Session is one loaded character plus its economy state and the
// deadline tasks that keep it current.
type Session struct {
	mu sync.Mutex

	log         *slog.Logger
	characterID int64

	player   *model.Player
	svc      *economy.Service
	resolver *combat.Resolver
	sched    *scheduler.Scheduler

	chars *db.CharacterRepository
	blobs *db.BlobRepository

	lastTick time.Time
}

// Open loads the named character, creating it when absent, and restores
// the economy blobs around it.
func Open(ctx context.Context, log *slog.Logger, cfg config.GameServer, database *db.DB, name, faction string, seed uint64, now time.Time) (*Session, error) {
	chars := db.NewCharacterRepository(database.Pool())
	blobs := db.NewBlobRepository(database.Pool())

	snap, found, err := chars.LoadByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("loading character %q: %w", name, err)
	}

	var player *model.Player
	var characterID int64
	if found {
		player, err = model.RestorePlayer(snap)
		if err != nil {
			return nil, fmt.Errorf("restoring character %q: %w", name, err)
		}
		characterID, err = characterIDFor(ctx, database, name)
		if err != nil {
			return nil, err
		}
	} else {
		player, err = model.NewPlayer(name, faction)
		if err != nil {
			return nil, fmt.Errorf("creating character %q: %w", name, err)
		}
		characterID, err = chars.Create(ctx, player.Snapshot())
		if err != nil {
			return nil, err
		}
		log.Info("character created", "name", name, "faction", faction)
	}

	pass := economy.NewFaithPass(cfg.Economy.Pass)
	if err := blobs.LoadPass(ctx, characterID, pass); err != nil {
		return nil, err
	}

	events := economy.NewEventCurrency(cfg.Economy.Limits)
	limits := economy.NewDailyLimits(cfg.Economy.Limits, events, player.Level(), pass.IsActive(now), now)
	if err := blobs.LoadLimits(ctx, characterID, limits, events); err != nil {
		return nil, err
	}
	limits.CheckReset(now)

	ledger := economy.NewLedger(cfg.Economy.Exchange, now)
	if err := blobs.LoadLedger(ctx, characterID, ledger); err != nil {
		return nil, err
	}
	ledger.CheckRevenueReset(now)

	ads := economy.NewAdLedger(cfg.Economy.Ads, pass, now)
	svc := economy.NewService(log, player, pass, limits, events, ledger, ads)

	s := &Session{
		log:         log.With("character", name),
		characterID: characterID,
		player:      player,
		svc:         svc,
		resolver:    combat.NewResolver(seed),
		sched:       scheduler.New(log),
		chars:       chars,
		blobs:       blobs,
		lastTick:    now,
	}

	s.sched.Schedule("autosave", now.Add(cfg.SaveInterval), func(fired time.Time) time.Time {
		if err := s.Save(ctx); err != nil {
			s.log.Error("autosave failed", "err", err)
		}
		return fired.Add(cfg.SaveInterval)
	})

	return s, nil
}

// Player returns the session's character.
func (s *Session) Player() *model.Player { return s.player }

// Economy returns the session's economy facade.
func (s *Session) Economy() *economy.Service { return s.svc }

// Tick advances time-driven state: scheduler deadlines, economy resets
// and mount stamina regeneration. The economy facade owns its own daily
// reset checks, so resets ride the regular tick instead of a scheduled
// midnight task.
func (s *Session) Tick(now time.Time) {
	s.mu.Lock()
	delta := now.Sub(s.lastTick).Seconds()
	s.lastTick = now
	s.mu.Unlock()
	if delta < 0 {
		delta = 0
	}

	s.sched.Tick(now)
	s.svc.Tick(now)
	for _, m := range s.player.Mounts() {
		m.Advance(delta)
	}
}

// Fight resolves one auto-battle and applies its outcome through the
// economy facade.
func (s *Session) Fight(enemy combat.EnemyPower, now time.Time) combat.BattleResult {
	res := s.resolver.Resolve(s.player, enemy)
	s.svc.ApplyBattle(res, now)
	s.log.Info("battle resolved",
		"enemy_faction", enemy.Faction,
		"victory", res.Victory,
		"xp", res.ExperienceGained,
		"gold", res.GoldGained)
	return res
}

// Save persists the character row and every economy blob.
func (s *Session) Save(ctx context.Context) error {
	if err := s.chars.Save(ctx, s.characterID, s.player.Snapshot()); err != nil {
		return err
	}
	if err := s.blobs.SaveLimits(ctx, s.characterID, s.svc.Limits(), s.svc.Events()); err != nil {
		return err
	}
	if err := s.blobs.SavePass(ctx, s.characterID, s.svc.Pass()); err != nil {
		return err
	}
	return s.blobs.SaveLedger(ctx, s.characterID, s.svc.Ledger())
}

// Run drives the session until the context ends, then saves once more.
func (s *Session) Run(ctx context.Context, tick time.Duration) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.Save(saveCtx); err != nil {
				return fmt.Errorf("final save: %w", err)
			}
			s.log.Info("session closed")
			return nil
		case now := <-ticker.C:
			s.Tick(now)
		}
	}
}

// characterIDFor resolves a character's row ID by name.
func characterIDFor(ctx context.Context, database *db.DB, name string) (int64, error) {
	var id int64
	err := database.Pool().QueryRow(ctx,
		`SELECT character_id FROM characters WHERE name = $1`, name,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("resolving character id for %q: %w", name, err)
	}
	return id, nil
}
