package game

import (
	"github.com/Otavioqwert/tarot-game/internal/circle"
	"github.com/Otavioqwert/tarot-game/internal/save"
	"github.com/Otavioqwert/tarot-game/internal/synergy"
	"github.com/Otavioqwert/tarot-game/internal/telemetry"
)

// ExportSave encodes the current state into a portable save code.
func (g *Game) ExportSave() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	state := save.State{
		Version:            save.Version,
		Currency:           g.currency,
		GlobalHours:        g.globalHours,
		TickRate:           g.tickRateMS,
		PermanentSyncBonus: g.permanentSyncBonus,
		Inventory:          make([]save.SavedCard, 0, len(g.inventory)),
		Slots:              make([]*save.SavedCard, len(g.slots)),
		PendingPayouts:     g.payouts,
		GlobalBuffs:        g.buffs,
	}
	for _, c := range g.inventory {
		state.Inventory = append(state.Inventory, save.FromInstance(c))
	}
	for i := range g.slots {
		if c := g.slots[i].Card; c != nil {
			saved := save.FromInstance(c)
			state.Slots[i] = &saved
		}
	}

	code, err := save.Encode(state)
	if err != nil {
		return "", err
	}
	g.record(telemetry.EventSaveExported, telemetry.EventMetadata{"hours": g.globalHours})
	return code, nil
}

// ImportSave replaces the whole game state with a decoded save code.
// Any decode failure leaves the current state untouched.
func (g *Game) ImportSave(code string) error {
	decoded, err := save.Decode(code)
	if err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.currency = decoded.Currency
	g.globalHours = decoded.GlobalHours
	g.tickRateMS = decoded.TickRate
	g.permanentSyncBonus = decoded.PermanentSyncBonus
	g.notifyTickRateChange()

	g.inventory = g.inventory[:0]
	for _, saved := range decoded.Inventory {
		g.inventory = append(g.inventory, saved.ToInstance())
	}

	// The ring holds at most ExtendedSlots; extra entries in a crafted
	// code are dropped.
	slots := make([]circle.Slot, 0, circle.ExtendedSlots)
	for i, saved := range decoded.Slots {
		if i >= circle.ExtendedSlots {
			break
		}
		s := circle.Slot{Position: i}
		if saved != nil {
			s.Card = saved.ToInstance()
		}
		slots = append(slots, s)
	}
	for len(slots) < circle.BaseSlots {
		slots = append(slots, circle.Slot{Position: len(slots)})
	}
	g.slots = slots

	g.payouts = decoded.PendingPayouts
	g.buffs = decoded.GlobalBuffs
	g.choice = nil
	g.empress = map[string]*EmpressWindow{}
	g.fixedRate = 0

	syns := g.synergies()
	g.ensureSlotCount(syns)
	circle.RecomputeSync(g.slots, g.globalHours, syns.Has(synergy.SunMoon))
	g.record(telemetry.EventSaveImported, telemetry.EventMetadata{"hours": g.globalHours})
	return nil
}
