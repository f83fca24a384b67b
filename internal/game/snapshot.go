package game

import (
	"github.com/Otavioqwert/tarot-game/internal/astral"
	"github.com/Otavioqwert/tarot-game/internal/card"
	"github.com/Otavioqwert/tarot-game/internal/circle"
	"github.com/Otavioqwert/tarot-game/internal/engine"
	"github.com/Otavioqwert/tarot-game/internal/shop"
	"github.com/Otavioqwert/tarot-game/internal/synergy"
)

// Snapshot is a read-only view of the game for rendering. Everything
// in it is copied or immutable; holding one never blocks the loops.
type Snapshot struct {
	Currency           float64                  `json:"currency"`
	GlobalHours        int                      `json:"globalHours"`
	TickRateMS         int                      `json:"tickRateMs"`
	Sync               int                      `json:"sync"`
	PermanentSyncBonus float64                  `json:"permanentSyncBonus"`
	Cycle              astral.CycleState        `json:"cycle"`
	DaylightIntensity  float64                  `json:"daylightIntensity"`
	Slots              []circle.Slot            `json:"slots"`
	Inventory          []card.Instance          `json:"inventory"`
	Synergies          synergy.Set              `json:"synergies"`
	Buffs              []engine.GlobalBuff      `json:"buffs"`
	PendingPayouts     []engine.PendingPayout   `json:"pendingPayouts"`
	Shop               []shop.Item              `json:"shop"`
	Restocking         bool                     `json:"restocking"`
	Choice             *Choice                  `json:"choice,omitempty"`
	EmpressWindows     map[string]EmpressWindow `json:"empressWindows,omitempty"`
}

// Snapshot captures the current state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	syns := g.synergies()
	snap := Snapshot{
		Currency:           g.currency,
		GlobalHours:        g.globalHours,
		TickRateMS:         g.tickRateMS,
		Sync:               g.syncScore(syns),
		PermanentSyncBonus: g.permanentSyncBonus,
		Cycle:              astral.Breakdown(g.globalHours, g.tickRateMS),
		DaylightIntensity:  astral.DaylightIntensity(g.globalHours),
		Synergies:          syns,
		Restocking:         g.restocking,
	}

	snap.Slots = make([]circle.Slot, len(g.slots))
	for i, s := range g.slots {
		snap.Slots[i] = circle.Slot{
			Position:       s.Position,
			Card:           s.Card.Clone(),
			SyncPercentage: s.SyncPercentage,
		}
	}
	snap.Inventory = make([]card.Instance, 0, len(g.inventory))
	for _, c := range g.inventory {
		snap.Inventory = append(snap.Inventory, *c.Clone())
	}
	snap.Buffs = append([]engine.GlobalBuff(nil), g.buffs...)
	snap.PendingPayouts = append([]engine.PendingPayout(nil), g.payouts...)
	snap.Shop = append([]shop.Item(nil), g.shopItems...)

	if g.choice != nil {
		c := *g.choice
		snap.Choice = &c
	}
	if len(g.empress) > 0 {
		snap.EmpressWindows = make(map[string]EmpressWindow, len(g.empress))
		for id, w := range g.empress {
			snap.EmpressWindows[id] = *w
		}
	}
	return snap
}

// Stats accessors used by tests and tools.

func (g *Game) Currency() float64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currency
}

func (g *Game) GlobalHours() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.globalHours
}
