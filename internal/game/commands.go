package game

import (
	"github.com/google/uuid"

	"github.com/Otavioqwert/tarot-game/internal/astral"
	"github.com/Otavioqwert/tarot-game/internal/card"
	"github.com/Otavioqwert/tarot-game/internal/circle"
	"github.com/Otavioqwert/tarot-game/internal/engine"
	"github.com/Otavioqwert/tarot-game/internal/shop"
	"github.com/Otavioqwert/tarot-game/internal/synergy"
	"github.com/Otavioqwert/tarot-game/internal/telemetry"
)

// PlaceCard moves an inventory card into a slot. The target must be
// empty or hold a blank; a blank is destroyed by the placement.
func (g *Game) PlaceCard(slotIndex, inventoryIndex int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if slotIndex < 0 || slotIndex >= len(g.slots) {
		return ErrInvalidIndex
	}
	if inventoryIndex < 0 || inventoryIndex >= len(g.inventory) {
		return ErrInvalidIndex
	}
	target := &g.slots[slotIndex]
	if target.Card != nil && !target.Card.IsBlank {
		return ErrSlotOccupied
	}

	placed := g.inventory[inventoryIndex]
	target.Card = placed
	g.inventory = append(g.inventory[:inventoryIndex], g.inventory[inventoryIndex+1:]...)

	syns := g.synergies()
	g.ensureSlotCount(syns)
	circle.RecomputeSync(g.slots, g.globalHours, syns.Has(synergy.SunMoon))
	g.record(telemetry.EventCardPlaced, telemetry.EventMetadata{
		"slot": slotIndex, "cardId": placed.CardID,
	})
	return nil
}

// RemoveCard returns a slotted card to the inventory. Blanks stay
// where they are.
func (g *Game) RemoveCard(slotIndex int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if slotIndex < 0 || slotIndex >= len(g.slots) {
		return ErrInvalidIndex
	}
	removed := g.slots[slotIndex].Card
	if removed == nil {
		return ErrEmptySlot
	}
	if removed.IsBlank {
		return ErrBlankImmovable
	}

	g.slots[slotIndex].Card = nil
	g.slots[slotIndex].SyncPercentage = 0
	g.inventory = append(g.inventory, removed)

	g.ensureSlotCount(g.synergies())
	g.record(telemetry.EventCardRemoved, telemetry.EventMetadata{
		"slot": slotIndex, "cardId": removed.CardID,
	})
	return nil
}

// BuyItem purchases a shop item into the inventory.
func (g *Game) BuyItem(itemID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	idx := -1
	for i := range g.shopItems {
		if g.shopItems[i].ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrUnknownItem
	}
	item := g.shopItems[idx]
	if g.currency < item.Cost {
		return ErrInsufficientFunds
	}

	g.currency -= item.Cost
	g.inventory = append(g.inventory, shop.Instantiate(item))
	g.shopItems = append(g.shopItems[:idx], g.shopItems[idx+1:]...)
	g.record(telemetry.EventCardPurchased, telemetry.EventMetadata{
		"cardId": item.CardID, "cost": item.Cost,
	})
	return nil
}

// ActivateEffect fires a slotted card's activation. Rejected while a
// choice is open or the card is cooling down. Activating an Empress
// restarts her activation-window cycle instead.
func (g *Game) ActivateEffect(slotIndex int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.choice != nil {
		return ErrChoiceOpen
	}
	if slotIndex < 0 || slotIndex >= len(g.slots) {
		return ErrInvalidIndex
	}
	c := g.slots[slotIndex].Card
	if c == nil {
		return ErrEmptySlot
	}
	if c.OnCooldown(g.globalHours) {
		return ErrOnCooldown
	}

	def, ok := c.Definition()
	if !ok {
		return ErrNotActivatable
	}

	if def.EffectID == card.EffectTheEmpress {
		g.empress[c.InstanceID] = &EmpressWindow{
			Active:     true,
			CyclesLeft: 3,
			LastTick:   g.clock.Now(),
		}
		g.record(telemetry.EventCardActivated, telemetry.EventMetadata{"card": def.Name})
		return nil
	}

	if !engine.HasActivation(def.EffectID) {
		return ErrNotActivatable
	}
	engine.Activate(&engine.Activation{
		World:     g.world(),
		Slots:     g.slots,
		SlotIndex: slotIndex,
		Hours:     g.globalHours,
		Sync:      g.syncScore(g.synergies()),
		Synergies: g.synergies(),
		Rand:      g.rand,
	})
	circle.RecomputeSync(g.slots, g.globalHours, g.synergies().Has(synergy.SunMoon))
	g.record(telemetry.EventCardActivated, telemetry.EventMetadata{"card": def.Name})
	return nil
}

// CollectReady returns every activatable, off-cooldown, non-blank
// slot card to the inventory in one action.
func (g *Game) CollectReady() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	collected := 0
	for i := range g.slots {
		c := g.slots[i].Card
		if c == nil || c.IsBlank {
			continue
		}
		eid := c.EffectID()
		activatable := engine.HasActivation(eid) || eid == card.EffectTheEmpress
		if !activatable {
			continue
		}
		if c.OnCooldown(g.globalHours) {
			continue
		}
		g.inventory = append(g.inventory, c)
		g.slots[i].Card = nil
		g.slots[i].SyncPercentage = 0
		collected++
	}
	if collected > 0 {
		g.ensureSlotCount(g.synergies())
	}
	return collected
}

// ResolveChoice picks one of the offered cards of an open Lovers
// choice: the pick joins the inventory, the consumed blanks leave the
// circle, and the originating slot becomes a blank inheriting the
// Lovers' marks.
func (g *Game) ResolveChoice(cardID int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.choice == nil {
		return ErrNoChoice
	}
	if g.choice.Kind != engine.ChoiceLovers {
		return ErrWrongChoice
	}
	offered := false
	for _, id := range g.choice.Offered {
		if id == cardID {
			offered = true
			break
		}
	}
	if !offered {
		return ErrInvalidSelection
	}
	def, ok := card.Lookup(cardID)
	if !ok {
		return ErrInvalidSelection
	}

	g.inventory = append(g.inventory, card.NewInstance(def))

	consumed := 0
	for i := range g.slots {
		if consumed >= g.choice.BlankConsumes {
			break
		}
		if c := g.slots[i].Card; c != nil && c.IsBlank {
			g.slots[i].Card = nil
			consumed++
		}
	}

	if origin := g.slots[g.choice.SourceSlot].Card; origin != nil {
		g.slots[g.choice.SourceSlot].Card = card.NewBlank(origin.Marks)
	}

	g.choice = nil
	syns := g.synergies()
	g.ensureSlotCount(syns)
	circle.RecomputeSync(g.slots, g.globalHours, syns.Has(synergy.SunMoon))
	g.record(telemetry.EventChoiceResolved, telemetry.EventMetadata{
		"kind": string(engine.ChoiceLovers), "cardId": cardID,
	})
	return nil
}

// ConfirmSacrifice resolves an open Hanged Man altar: the selected
// inventory cards are destroyed and a triangular payout matures one
// lunar cycle later.
func (g *Game) ConfirmSacrifice(instanceIDs []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.choice == nil {
		return ErrNoChoice
	}
	if g.choice.Kind != engine.ChoiceSacrifice {
		return ErrWrongChoice
	}
	if len(instanceIDs) == 0 {
		return ErrEmptySelection
	}

	selected := map[string]bool{}
	for _, id := range instanceIDs {
		selected[id] = true
	}
	matched := 0
	for _, c := range g.inventory {
		if selected[c.InstanceID] {
			matched++
		}
	}
	if matched != len(selected) {
		return ErrInvalidSelection
	}

	n := matched
	payout := float64((n+1)*n/2) * 50
	g.payouts = append(g.payouts, engine.PendingPayout{
		Amount:       payout,
		DeliveryTime: g.globalHours + astral.LunarMax,
	})

	kept := g.inventory[:0]
	for _, c := range g.inventory {
		if !selected[c.InstanceID] {
			kept = append(kept, c)
		}
	}
	g.inventory = kept

	if c := g.slots[g.choice.SourceSlot].Card; c != nil {
		c.CooldownUntil = g.globalHours + astral.LunarMax
		c.HangedManActive = true
		c.HangedManConsumes = n
		c.HangedManActivatedAt = g.globalHours
	}

	g.choice = nil
	g.record(telemetry.EventChoiceResolved, telemetry.EventMetadata{
		"kind": string(engine.ChoiceSacrifice), "count": n, "payout": payout,
	})
	return nil
}

// MarkSacrifice selects one mark on one slotted card for the Devil.
type MarkSacrifice struct {
	InstanceID string `json:"instanceId"`
	MarkIndex  int    `json:"markIndex"`
}

// ConfirmDevil resolves an open Devil bargain: up to two marks are
// consumed from distinct slotted cards, each cursing its card and
// rolling one or two reward draws.
func (g *Game) ConfirmDevil(picks []MarkSacrifice) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.choice == nil {
		return ErrNoChoice
	}
	if g.choice.Kind != engine.ChoiceDevil {
		return ErrWrongChoice
	}
	if len(picks) == 0 {
		return ErrEmptySelection
	}
	if len(picks) > 2 {
		return ErrInvalidSelection
	}

	// Validate before mutating anything.
	seen := map[string]bool{}
	targets := make([]*card.Instance, 0, len(picks))
	for _, pick := range picks {
		if seen[pick.InstanceID] {
			return ErrInvalidSelection
		}
		seen[pick.InstanceID] = true
		target := g.slotCardByInstance(pick.InstanceID)
		if target == nil || pick.MarkIndex < 0 || pick.MarkIndex >= len(target.Marks) {
			return ErrInvalidSelection
		}
		targets = append(targets, target)
	}

	devil := g.slots[g.choice.SourceSlot].Card
	for i, pick := range picks {
		target := targets[i]
		target.Marks = append(target.Marks[:pick.MarkIndex], target.Marks[pick.MarkIndex+1:]...)
		target.Curse = &card.Curse{ID: uuid.NewString(), Type: g.rollCurse()}

		draws := 1
		if g.rand.Float64() < 0.5 {
			draws = 2
		}
		for d := 0; d < draws; d++ {
			switch roll := g.rand.Float64(); {
			case roll < 0.33:
				g.currency += 250
			case roll < 0.66:
				g.permanentSyncBonus += 5
			default:
				if devil != nil {
					devil.EffectMultiplier = devil.Multiplier() + 1
				}
			}
		}
	}

	g.choice = nil
	circle.RecomputeSync(g.slots, g.globalHours, g.synergies().Has(synergy.SunMoon))
	g.record(telemetry.EventChoiceResolved, telemetry.EventMetadata{
		"kind": string(engine.ChoiceDevil), "marks": len(picks),
	})
	return nil
}

// CancelChoice closes an open choice with no state change.
func (g *Game) CancelChoice() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.choice == nil {
		return ErrNoChoice
	}
	g.choice = nil
	return nil
}

func (g *Game) slotCardByInstance(instanceID string) *card.Instance {
	for i := range g.slots {
		if c := g.slots[i].Card; c != nil && c.InstanceID == instanceID {
			return c
		}
	}
	return nil
}

func (g *Game) rollCurse() card.CurseType {
	switch g.rand.Intn(3) {
	case 0:
		return card.CurseIsolated
	case 1:
		return card.CurseVolatile
	default:
		return card.CurseTemporal
	}
}
