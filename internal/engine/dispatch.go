package engine

import (
	"github.com/Otavioqwert/tarot-game/internal/card"
	"github.com/Otavioqwert/tarot-game/internal/circle"
)

// Activate dispatches the activating slot's onActivate handler.
// Returns false when the slot is empty or the effect has no
// activation. Cooldown gating is the caller's job.
func Activate(a *Activation) bool {
	c := a.Card()
	if c == nil {
		return false
	}
	h := lookupHandler(c.EffectID())
	if h == nil || h.OnActivate == nil {
		return false
	}
	h.OnActivate(a)
	return true
}

// HasActivation reports whether the effect responds to activation.
func HasActivation(id card.EffectID) bool {
	h := lookupHandler(id)
	return h != nil && h.OnActivate != nil
}

// Restock runs every slotted card's onRestock hook against the fresh
// shop inventory.
func Restock(slots []circle.Slot, ctx *RestockContext) {
	for i := range slots {
		c := slots[i].Card
		if c == nil {
			continue
		}
		h := lookupHandler(c.EffectID())
		if h != nil && h.OnRestock != nil {
			h.OnRestock(ctx)
		}
	}
}
