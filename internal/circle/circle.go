package circle

import (
	"github.com/Otavioqwert/tarot-game/internal/astral"
	"github.com/Otavioqwert/tarot-game/internal/card"
)

// BaseSlots is the normal ring size. EMPRESS_EMPEROR grows it to four.
const (
	BaseSlots     = 3
	ExtendedSlots = 4
)

// Slot is one position in the ring. Card is nil when empty.
type Slot struct {
	Position       int            `json:"position"`
	Card           *card.Instance `json:"card,omitempty"`
	SyncPercentage float64        `json:"syncPercentage"`
}

// NewRing returns an empty ring of the base size.
func NewRing() []Slot {
	slots := make([]Slot, BaseSlots)
	for i := range slots {
		slots[i].Position = i
	}
	return slots
}

// Clockwise returns the index of the next slot clockwise (to the right).
func Clockwise(i, n int) int { return (i + 1) % n }

// CounterClockwise returns the index of the previous slot (to the left).
func CounterClockwise(i, n int) int { return (i - 1 + n) % n }

// Occupied counts non-empty slots.
func Occupied(slots []Slot) int {
	n := 0
	for i := range slots {
		if slots[i].Card != nil {
			n++
		}
	}
	return n
}

// RecomputeSync refreshes each slot's sync percentage: the share of
// the card's marks matching the current phase or sign. Lunar marks
// only count at night unless sunMoon lifts the gate. Blanks score 0.
func RecomputeSync(slots []Slot, globalHours int, sunMoon bool) {
	phase := astral.LunarPhases[astral.PhaseIndex(globalHours)]
	sign := astral.ZodiacSigns[astral.SignIndex(globalHours)]
	lunarActive := !astral.IsDayTime(globalHours) || sunMoon

	for i := range slots {
		c := slots[i].Card
		if c == nil || c.IsBlank || len(c.Marks) == 0 {
			slots[i].SyncPercentage = 0
			continue
		}
		matched := 0
		for _, m := range c.Marks {
			switch m.Kind {
			case card.MarkLunar:
				if lunarActive && m.Name == phase.Name {
					matched++
				}
			case card.MarkSign:
				if m.Name == sign.Name {
					matched++
				}
			}
		}
		slots[i].SyncPercentage = float64(matched) / float64(len(c.Marks)) * 100
	}
}
