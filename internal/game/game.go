// Package game is the orchestrator: it owns the authoritative mutable
// state (clock, slots, inventory, currency, buffs, payouts, shop) and
// drives the tick, accrual and Empress-window loops.
package game

import (
	"log/slog"
	"sync"
	"time"

	"github.com/Otavioqwert/tarot-game/internal/card"
	"github.com/Otavioqwert/tarot-game/internal/circle"
	"github.com/Otavioqwert/tarot-game/internal/config"
	"github.com/Otavioqwert/tarot-game/internal/engine"
	"github.com/Otavioqwert/tarot-game/internal/rng"
	"github.com/Otavioqwert/tarot-game/internal/shop"
	"github.com/Otavioqwert/tarot-game/internal/synergy"
	"github.com/Otavioqwert/tarot-game/internal/telemetry"
)

// empressWindowDuration is one Empress activation-window cycle of
// real time, independent of the game clock.
const empressWindowDuration = 30 * time.Second

// Choice is a suspended multi-step player flow. While one is open,
// further activations are rejected; the tick loops keep running.
type Choice struct {
	Kind       engine.ChoiceKind `json:"kind"`
	SourceSlot int               `json:"sourceSlot"`
	// Offered lists the catalog ids a Lovers choice may pick from.
	Offered []int `json:"offered,omitempty"`
	// BlankConsumes is how many blank cards resolution will consume.
	BlankConsumes int `json:"blankConsumes,omitempty"`
}

// EmpressWindow is the per-instance 30s activation-window state: one
// active window followed by three inactive ones.
type EmpressWindow struct {
	Active     bool      `json:"active"`
	CyclesLeft int       `json:"cyclesLeft"`
	LastTick   time.Time `json:"lastTick"`
}

type Game struct {
	mu sync.Mutex

	cfg    *config.Config
	rand   rng.RNG
	clock  Clock
	log    *slog.Logger
	events telemetry.Repository

	currency           float64
	globalHours        int
	tickRateMS         int
	permanentSyncBonus float64
	slots              []circle.Slot
	inventory          []*card.Instance
	buffs              []engine.GlobalBuff
	payouts            []engine.PendingPayout

	shopItems  []shop.Item
	restocking bool

	// fixedRate is the HIEROPHANT_HERMIT per-real-second income,
	// refreshed by every cycle.
	fixedRate float64

	choice  *Choice
	empress map[string]*EmpressWindow

	// tickChanged wakes the hour loop so a tick-rate mutation takes
	// effect immediately instead of after the in-flight timer.
	tickChanged chan struct{}
}

// New builds a game in its starting state: configured currency, an
// empty three-slot ring, empty inventory, and the hour-zero shop.
func New(cfg *config.Config, r rng.RNG, clock Clock, log *slog.Logger, events telemetry.Repository) *Game {
	if log == nil {
		log = slog.Default()
	}
	if events == nil {
		events = telemetry.NewMemoryRepository()
	}
	g := &Game{
		cfg:         cfg,
		rand:        r,
		clock:       clock,
		log:         log,
		events:      events,
		currency:    cfg.Economy.StartingCurrency,
		tickRateMS:  cfg.Clock.TickRateMS,
		slots:       circle.NewRing(),
		empress:     map[string]*EmpressWindow{},
		tickChanged: make(chan struct{}, 1),
	}
	g.shopItems = shop.ApplyRestockHooks(shop.Generate(r, 0, cfg.Shop.Slots), g.slots, r)
	return g
}

// synergies recomputes the active set. Callers hold the lock.
func (g *Game) synergies() synergy.Set {
	return synergy.ComputeActive(g.slots)
}

// syncScore computes the current global sync. Callers hold the lock.
func (g *Game) syncScore(syns synergy.Set) int {
	return engine.ComputeGlobalSync(g.slots, g.globalHours, g.permanentSyncBonus, syns)
}

// ensureSlotCount grows the ring to four slots while EMPRESS_EMPEROR
// is active and shrinks it back when it lapses, evicting any card in
// the extra slot to the inventory first.
func (g *Game) ensureSlotCount(syns synergy.Set) {
	active := syns.Has(synergy.EmpressEmperor)
	switch {
	case active && len(g.slots) == circle.BaseSlots:
		g.slots = append(g.slots, circle.Slot{Position: circle.BaseSlots})
	case !active && len(g.slots) == circle.ExtendedSlots:
		if evicted := g.slots[circle.BaseSlots].Card; evicted != nil {
			g.inventory = append(g.inventory, evicted)
		}
		g.slots = g.slots[:circle.BaseSlots]
	}
}

func (g *Game) record(t telemetry.EventType, md telemetry.EventMetadata) {
	if err := g.events.RecordEvent(t, md); err != nil {
		g.log.Warn("telemetry record failed", "event", string(t), "err", err)
	}
}

// world returns the narrow mutation surface handed to activation
// handlers. All methods assume the game lock is held by the command
// that triggered the activation.
func (g *Game) world() engine.World { return (*worldAdapter)(g) }

type worldAdapter Game

func (w *worldAdapter) AddCurrency(amount float64) { w.currency += amount }

func (w *worldAdapter) PushBuff(b engine.GlobalBuff) { w.buffs = append(w.buffs, b) }

func (w *worldAdapter) SchedulePayout(p engine.PendingPayout) {
	w.payouts = append(w.payouts, p)
}

func (w *worldAdapter) RewindClock(hours int) {
	w.globalHours = max(0, w.globalHours-hours)
}

func (w *worldAdapter) AdvanceClock(hours int) { w.globalHours += hours }

func (w *worldAdapter) SlowTicks(deltaMS, hours int) {
	w.tickRateMS += deltaMS
	w.buffs = append(w.buffs, engine.GlobalBuff{
		ID:       "tick-slow",
		Modifier: float64(deltaMS),
		Duration: hours,
		Type:     engine.BuffTickSpeed,
	})
	(*Game)(w).notifyTickRateChange()
}

func (w *worldAdapter) OpenChoice(kind engine.ChoiceKind, slotIndex int) {
	g := (*Game)(w)
	c := &Choice{Kind: kind, SourceSlot: slotIndex}
	if kind == engine.ChoiceLovers {
		c.Offered, c.BlankConsumes = g.rollLoversChoices()
	}
	g.choice = c
}

// rollLoversChoices draws the offered catalog cards: two distinct
// picks, plus one per blank in the circle under LOVERS_BLANK, plus
// one more when empowered with at least two blanks.
func (g *Game) rollLoversChoices() (offered []int, blankConsumes int) {
	blanks := 0
	for i := range g.slots {
		if c := g.slots[i].Card; c != nil && c.IsBlank {
			blanks++
		}
	}
	syns := g.synergies()
	extra := 0
	if lb, ok := syns.Find(synergy.LoversBlank); ok {
		extra = blanks
		blankConsumes = blanks
		if lb.Empowered && blanks >= 2 {
			extra++
		}
	}

	total := 2 + extra
	if total > len(card.Library) {
		total = len(card.Library)
	}
	seen := map[int]bool{}
	for len(offered) < total {
		id := card.Library[g.rand.Intn(len(card.Library))].ID
		if seen[id] {
			continue
		}
		seen[id] = true
		offered = append(offered, id)
	}
	return offered, blankConsumes
}
