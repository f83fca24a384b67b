package game

import (
	"context"
	"time"

	"github.com/Otavioqwert/tarot-game/internal/circle"
	"github.com/Otavioqwert/tarot-game/internal/engine"
	"github.com/Otavioqwert/tarot-game/internal/shop"
	"github.com/Otavioqwert/tarot-game/internal/synergy"
	"github.com/Otavioqwert/tarot-game/internal/telemetry"
)

// Run drives the three loops until the context is canceled: the
// hourly game tick, the per-second resource accrual, and the Empress
// activation windows. The tick and accrual loops are deliberately
// separate channels of income; fusing them would break once-per-hour
// effects.
func (g *Game) Run(ctx context.Context) {
	go g.accrualLoop(ctx)
	go g.empressLoop(ctx)
	g.hourLoop(ctx)
}

// hourLoop re-arms its timer every iteration; a tickChanged signal
// abandons the in-flight timer so rate mutations (Fool, tick-speed
// buffs, imports) take effect immediately.
func (g *Game) hourLoop(ctx context.Context) {
	for {
		g.mu.Lock()
		period := time.Duration(g.tickRateMS) * time.Millisecond
		g.mu.Unlock()

		timer := time.NewTimer(period)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-g.tickChanged:
			timer.Stop()
		case <-timer.C:
			g.AdvanceHour()
		}
	}
}

// notifyTickRateChange nudges the hour loop without blocking; a
// pending signal already covers any number of coalesced changes.
func (g *Game) notifyTickRateChange() {
	select {
	case g.tickChanged <- struct{}{}:
	default:
	}
}

func (g *Game) accrualLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.accrue()
		}
	}
}

// accrue adds the continuous trickle income: the base rate scaled by
// sync, plus the fixed synergy rate which sync never touches.
func (g *Game) accrue() {
	g.mu.Lock()
	defer g.mu.Unlock()
	sync := g.syncScore(g.synergies())
	g.currency += g.cfg.Economy.BaseResourceRate*(1+float64(sync)/100) + g.fixedRate
}

func (g *Game) empressLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.advanceEmpressWindows()
		}
	}
}

// advanceEmpressWindows steps every tracked Empress instance through
// its window cycle: three inactive 30s windows, then one active.
func (g *Game) advanceEmpressWindows() {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := g.clock.Now()
	for _, w := range g.empress {
		if now.Sub(w.LastTick) < empressWindowDuration {
			continue
		}
		if w.CyclesLeft > 0 {
			w.CyclesLeft--
			w.Active = false
		} else {
			w.Active = true
			w.CyclesLeft = 3
		}
		w.LastTick = now
	}
}

// AdvanceHour moves the game clock forward one hour and processes the
// cycle. Exposed so tests and tools can step the simulation without
// real timers.
func (g *Game) AdvanceHour() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.globalHours++
	g.processHour()
}

// processHour runs one cycle against the current hour and applies its
// result. Callers hold the lock.
func (g *Game) processHour() {
	syns := g.synergies()
	g.ensureSlotCount(syns)
	syns = g.synergies()
	sync := g.syncScore(syns)

	res := engine.ProcessCycle(engine.CycleInput{
		Slots:     g.slots,
		Hours:     g.globalHours,
		Sync:      sync,
		Buffs:     g.buffs,
		Synergies: syns,
		Rand:      g.rand,
	})

	for i, patch := range res.SlotPatches {
		if i >= 0 && i < len(g.slots) {
			patch.Apply(g.slots[i].Card)
		}
	}
	g.currency += res.TotalResources
	g.fixedRate = res.FixedRatePerSecond
	g.globalHours += res.TimeAdjustment

	g.deliverPayouts()
	g.expireBuffs()

	// Cycle handlers may have moved cards.
	syns = g.synergies()
	g.ensureSlotCount(syns)
	circle.RecomputeSync(g.slots, g.globalHours, syns.Has(synergy.SunMoon))

	g.record(telemetry.EventCycleTick, telemetry.EventMetadata{
		"hours":     g.globalHours,
		"resources": res.TotalResources,
		"sync":      sync,
	})

	if g.globalHours > 0 && g.globalHours%24 == 0 {
		g.startRestock()
	}
}

func (g *Game) deliverPayouts() {
	kept := g.payouts[:0]
	for _, p := range g.payouts {
		if p.DeliveryTime <= g.globalHours {
			g.currency += p.Amount
			g.clearMaturedSacrifices()
			g.record(telemetry.EventPayoutDelivered, telemetry.EventMetadata{
				"amount": p.Amount,
				"hours":  g.globalHours,
			})
			continue
		}
		kept = append(kept, p)
	}
	g.payouts = kept
}

// clearMaturedSacrifices resets Hanged Man bookkeeping once its
// payout lands.
func (g *Game) clearMaturedSacrifices() {
	for i := range g.slots {
		c := g.slots[i].Card
		if c != nil && c.HangedManActive && c.HangedManActivatedAt+168 <= g.globalHours {
			c.HangedManActive = false
			c.HangedManConsumes = 0
			c.HangedManActivatedAt = 0
		}
	}
}

// expireBuffs decrements buff durations, restoring the tick rate when
// a tick-speed buff lapses.
func (g *Game) expireBuffs() {
	kept := g.buffs[:0]
	for _, b := range g.buffs {
		b.Duration--
		if b.Duration > 0 {
			kept = append(kept, b)
			continue
		}
		if b.Type == engine.BuffTickSpeed {
			g.tickRateMS -= int(b.Modifier)
			if g.tickRateMS < g.cfg.Clock.TickRateMS {
				g.tickRateMS = g.cfg.Clock.TickRateMS
			}
			g.notifyTickRateChange()
		}
	}
	g.buffs = kept
}

// startRestock flips the restocking flag and regenerates the market
// after the configured delay, so clients can animate the refresh.
func (g *Game) startRestock() {
	if g.restocking {
		return
	}
	g.restocking = true
	delay := time.Duration(g.cfg.Shop.RestockDelayMS) * time.Millisecond
	time.AfterFunc(delay, g.finishRestock)
}

func (g *Game) finishRestock() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.shopItems = shop.ApplyRestockHooks(
		shop.Generate(g.rand, g.globalHours, g.cfg.Shop.Slots), g.slots, g.rand)
	g.restocking = false
	g.record(telemetry.EventShopRestocked, telemetry.EventMetadata{
		"hours": g.globalHours,
		"items": len(g.shopItems),
	})
}
