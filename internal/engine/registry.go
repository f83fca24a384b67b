package engine

import (
	"fmt"

	"github.com/Otavioqwert/tarot-game/internal/card"
	"github.com/Otavioqwert/tarot-game/internal/circle"
	"github.com/Otavioqwert/tarot-game/internal/rng"
	"github.com/Otavioqwert/tarot-game/internal/synergy"
)

// ChoiceKind names a multi-step player flow opened by an activation.
type ChoiceKind string

const (
	ChoiceLovers    ChoiceKind = "LOVERS"
	ChoiceSacrifice ChoiceKind = "SACRIFICE"
	ChoiceDevil     ChoiceKind = "DEVIL"
)

// World is the narrow mutation surface handlers get on activation.
// The orchestrator implements it; handlers never see whole-state
// setters.
type World interface {
	AddCurrency(amount float64)
	PushBuff(b GlobalBuff)
	SchedulePayout(p PendingPayout)
	// RewindClock moves the clock back, floored at hour zero.
	RewindClock(hours int)
	AdvanceClock(hours int)
	// SlowTicks lengthens the tick period by deltaMS for the given
	// number of game hours.
	SlowTicks(deltaMS, hours int)
	// OpenChoice suspends further activations until the player
	// resolves or cancels the flow.
	OpenChoice(kind ChoiceKind, slotIndex int)
}

// Activation is the context for a single explicit player activation.
// The caller gates on cooldown; handlers do not re-check it.
type Activation struct {
	World     World
	Slots     []circle.Slot
	SlotIndex int
	Hours     int
	Sync      int
	Synergies synergy.Set
	Rand      rng.RNG
}

// Card returns the activating slot's instance.
func (a *Activation) Card() *card.Instance { return a.Slots[a.SlotIndex].Card }

// CycleContext is the per-slot context for one hourly cycle pass.
// Card and Cards are the effective view (Empress delegation applied);
// Slots is the live ring, mutated only by handlers with sanctioned
// side effects (Death, Tower, Chariot).
type CycleContext struct {
	Card      *card.Instance
	Cards     []*card.Instance
	Slots     []circle.Slot
	SlotIndex int
	Hours     int
	Sync      int
	Synergies synergy.Set
	Rand      rng.RNG
}

// Result is a cycle handler's unapplied contribution.
type Result struct {
	Output Output
	Self   *Patch
}

// RestockContext is passed to onRestock handlers during a shop
// restock.
type RestockContext struct {
	ItemCount int
	// ZeroCost marks the shop item at the index free.
	ZeroCost func(i int)
	Rand     rng.RNG
}

// Handler bundles a card effect's callbacks. Any of the three may be
// nil.
type Handler struct {
	OnActivate func(a *Activation)
	OnCycle    func(ctx *CycleContext) Result
	OnRestock  func(ctx *RestockContext)
}

// PurePassive reports whether the handler only contributes passive
// cycle output. MAGICIAN_PRIESTESS re-fires exactly these.
func (h *Handler) PurePassive() bool {
	return h != nil && h.OnCycle != nil && h.OnActivate == nil
}

// lookupHandler resolves an effect id, degrading unknown ids to nil
// (no-op).
func lookupHandler(id card.EffectID) *Handler {
	return registry[id]
}

func init() {
	// The catalog is closed; a definition without a handler entry is a
	// programming error caught at load time.
	for _, def := range card.Library {
		if _, ok := registry[def.EffectID]; !ok {
			panic(fmt.Sprintf("engine: no handler registered for effect %q", def.EffectID))
		}
	}
	if _, ok := registry[card.Blank.EffectID]; !ok {
		panic("engine: no handler registered for blank card")
	}
}
