// Package sim implements the Simulation Task: the single goroutine that
// owns the World, ticks physics at a fixed rate, and publishes deltas to
// the Broadcast Bus. No other goroutine is permitted to mutate the
// World.
package sim

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"platformer-server/internal/broadcast"
	"platformer-server/internal/colorkey"
	"platformer-server/internal/intake"
	"platformer-server/internal/physics"
	"platformer-server/internal/world"
)

// SpawnX and SpawnY are the default spawn coordinates assigned to a
// newly joined player (SPEC_FULL.md §12 open-question decision).
const (
	SpawnX = 0.0
	SpawnY = 0.0
)

// Config bundles everything the Simulation Task needs beyond the World,
// intake queue, and broadcast buses.
type Config struct {
	// DeltaTime is the fixed per-tick duration in seconds, matching
	// TickRate (DeltaTime = 1/TickRate in Hz).
	DeltaTime float64
	// TickRate is the wall-clock duration between ticks.
	TickRate time.Duration
	// Physics is the tuning passed to physics.Step each tick.
	Physics physics.Config
	// IdleEvictionTicks, if non-zero, removes a player who has sent no
	// Move/Chat/Init for more than this many consecutive ticks. Zero (the
	// default) disables eviction entirely, matching spec.md §9's
	// "no removal path specified" baseline. See SPEC_FULL.md §11.
	IdleEvictionTicks uint64
}

// Task is the running Simulation Task. Construct with New, start with
// Run.
type Task struct {
	world    *world.World
	intake   *intake.Queue
	stateBus *broadcast.Bus[StateFrame]
	chatBus  *broadcast.Bus[ChatFrame]
	cfg      Config
	log      zerolog.Logger

	// lastSeenTick tracks the tick at which each player last produced an
	// intake event (join, move, or chat). Only consulted when
	// cfg.IdleEvictionTicks is non-zero.
	lastSeenTick map[uuid.UUID]uint64
}

// New constructs a Task wired to the given World, intake queue, and
// broadcast buses.
func New(w *world.World, q *intake.Queue, stateBus *broadcast.Bus[StateFrame], chatBus *broadcast.Bus[ChatFrame], cfg Config, log zerolog.Logger) *Task {
	return &Task{
		world:        w,
		intake:       q,
		stateBus:     stateBus,
		chatBus:      chatBus,
		cfg:          cfg,
		log:          log,
		lastSeenTick: make(map[uuid.UUID]uint64),
	}
}

// Run executes the fixed-rate tick loop until ctx is cancelled. It
// schedules ticks against a monotonic deadline that advances by exactly
// DeltaTime each tick, so the cadence does not drift with per-tick work
// latency; on an overrun of more than one full tick, at most one tick is
// skipped (never a catch-up burst), and the skip is logged.
func (t *Task) Run(ctx context.Context) {
	deadline := time.Now()

	for {
		deadline = deadline.Add(t.cfg.TickRate)
		wait := time.Until(deadline)

		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		} else if -wait > t.cfg.TickRate {
			t.log.Warn().
				Dur("behind_by", -wait).
				Msg("simulation tick overran; skipping ahead one tick")
			deadline = time.Now()
		}

		select {
		case <-ctx.Done():
			return
		default:
		}

		t.tick()
	}
}

// tick executes exactly one simulation step: drain intake, apply
// joins/chats, run physics, commit, and publish.
func (t *Task) tick() {
	events := t.intake.Drain()

	snapshot := t.world.Snapshot()

	intents := make(map[uuid.UUID]world.Intent, len(events))
	var joins, chats []intake.Event
	for _, ev := range events {
		switch ev.Kind {
		case intake.EventJoin:
			joins = append(joins, ev)
		case intake.EventMove:
			intents[ev.PlayerID] = ev.Intent
		case intake.EventChat:
			chats = append(chats, ev)
		}
	}

	for _, ev := range joins {
		snapshot.Join(ev.PlayerID, ev.Name, ev.Color, SpawnX, SpawnY)
	}

	stepped := physics.Step(snapshot, intents, t.cfg.DeltaTime, t.cfg.Physics)

	if t.cfg.IdleEvictionTicks > 0 {
		for _, ev := range events {
			t.lastSeenTick[ev.PlayerID] = stepped.Tick
		}
	}

	var accepted []world.ChatMessage
	for _, ev := range chats {
		if msg, ok := stepped.AppendChat(ev.PlayerID, ev.Text); ok {
			accepted = append(accepted, msg)
		}
	}

	if t.cfg.IdleEvictionTicks > 0 {
		t.evictIdlePlayers(stepped)
	}

	t.world.Commit(stepped)

	t.stateBus.Publish(StateFrame{Tick: stepped.Tick, Players: playerValues(stepped.SortedPlayers())})
	for _, msg := range accepted {
		t.chatBus.Publish(ChatFrame{Message: msg})
	}
}

// evictIdlePlayers removes any player who has produced no intake event
// for more than cfg.IdleEvictionTicks consecutive ticks. Disabled by
// default (see Config.IdleEvictionTicks); spec.md §9 leaves removal
// policy as an open question, so the default tick count of zero keeps
// this a no-op.
func (t *Task) evictIdlePlayers(s *world.State) {
	for id := range s.Players {
		last, seen := t.lastSeenTick[id]
		if !seen {
			t.lastSeenTick[id] = s.Tick
			continue
		}
		if s.Tick-last > t.cfg.IdleEvictionTicks {
			delete(s.Players, id)
			delete(t.lastSeenTick, id)
			t.log.Info().Str("player_id", id.String()).Msg("evicted idle player")
		}
	}
}

func playerValues(players []*world.Player) []world.Player {
	out := make([]world.Player, len(players))
	for i, p := range players {
		out[i] = *p
	}
	return out
}

// DefaultColorFor derives a player's display color from their id,
// exposed so the HTTP edge can compute it once on Init and pass it
// through the intake Join event.
func DefaultColorFor(id uuid.UUID) string {
	return colorkey.FromID(id)
}
