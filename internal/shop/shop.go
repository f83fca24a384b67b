// Package shop generates the daily card market and runs the restock
// hook against the circle.
package shop

import (
	"github.com/google/uuid"

	"github.com/Otavioqwert/tarot-game/internal/astral"
	"github.com/Otavioqwert/tarot-game/internal/card"
	"github.com/Otavioqwert/tarot-game/internal/circle"
	"github.com/Otavioqwert/tarot-game/internal/engine"
	"github.com/Otavioqwert/tarot-game/internal/rng"
)

type Rarity string

const (
	Common Rarity = "common"
	Rare   Rarity = "rare"
)

// Item is one purchasable shop entry. Marks may be localized to the
// current sign or phase, so the purchased instance is built from the
// item, not the catalog.
type Item struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Cost        float64     `json:"cost"`
	Rarity      Rarity      `json:"rarity"`
	CardID      int         `json:"cardId"`
	Marks       []card.Mark `json:"marks"`
}

// Generate rolls a fresh market of count random catalog cards. Each
// card's primary mark has a 50% chance of being localized to the
// current zodiac sign (or lunar phase, for lunar marks).
func Generate(r rng.RNG, globalHours, count int) []Item {
	sign := astral.ZodiacSigns[astral.SignIndex(globalHours)]
	phase := astral.LunarPhases[astral.PhaseIndex(globalHours)]

	items := make([]Item, 0, count)
	for i := 0; i < count; i++ {
		def := card.Library[r.Intn(len(card.Library))]
		marks := make([]card.Mark, len(def.Marks))
		copy(marks, def.Marks)
		if len(marks) > 0 {
			switch {
			case marks[0].Kind == card.MarkSign && r.Float64() < 0.5:
				marks[0].Name, marks[0].Icon = sign.Name, sign.Icon
			case marks[0].Kind == card.MarkLunar && r.Float64() < 0.5:
				marks[0].Name, marks[0].Icon = phase.Name, phase.Icon
			}
		}

		rarity := Common
		if r.Float64() > 0.85 {
			rarity = Rare
		}
		items = append(items, Item{
			ID:          uuid.NewString(),
			Name:        def.Name,
			Description: def.Effect,
			Cost:        float64(100 + def.ID*100),
			Rarity:      rarity,
			CardID:      def.ID,
			Marks:       marks,
		})
	}
	return items
}

// Instantiate builds the owned card instance for a purchased item,
// carrying the item's possibly-localized marks.
func Instantiate(item Item) *card.Instance {
	def, ok := card.Lookup(item.CardID)
	if !ok {
		def = card.Blank
	}
	in := card.NewInstance(def)
	in.Marks = make([]card.Mark, len(item.Marks))
	copy(in.Marks, item.Marks)
	return in
}

// ApplyRestockHooks lets slotted cards react to the fresh market.
// Wheel of Fortune may zero a random item's cost.
func ApplyRestockHooks(items []Item, slots []circle.Slot, r rng.RNG) []Item {
	engine.Restock(slots, &engine.RestockContext{
		ItemCount: len(items),
		ZeroCost:  func(i int) { items[i].Cost = 0 },
		Rand:      r,
	})
	return items
}
