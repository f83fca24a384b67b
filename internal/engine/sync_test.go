package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Otavioqwert/tarot-game/internal/card"
	"github.com/Otavioqwert/tarot-game/internal/circle"
	"github.com/Otavioqwert/tarot-game/internal/synergy"
)

func slotsWith(ids ...int) []circle.Slot {
	slots := circle.NewRing()
	for len(slots) < len(ids) {
		slots = append(slots, circle.Slot{Position: len(slots)})
	}
	for i, id := range ids {
		if id >= 0 {
			slots[i].Card = card.NewInstance(card.Library[id])
		}
	}
	return slots
}

func TestComputeGlobalSync_EmptyCircle(t *testing.T) {
	slots := circle.NewRing()
	got := ComputeGlobalSync(slots, 0, 0, synergy.ComputeActive(slots))
	assert.Equal(t, 0, got)
}

func TestComputeGlobalSync_SignMatch(t *testing.T) {
	// The Fool carries an Aquarius mark; hour 6720 is Aquarius's reign
	// at midnight.
	slots := slotsWith(0)
	got := ComputeGlobalSync(slots, 6720, 0, synergy.ComputeActive(slots))
	assert.Equal(t, 50, got)
}

func TestComputeGlobalSync_MoonHalvesLunarWeight(t *testing.T) {
	// Hour 90: full moon, nighttime. The Moon matches its own phase
	// but pays the lunar weight penalty.
	slots := slotsWith(18)
	got := ComputeGlobalSync(slots, 90, 0, synergy.ComputeActive(slots))
	assert.Equal(t, 50, got)
}

func TestComputeGlobalSync_SunMoonLiftsPenalty(t *testing.T) {
	// Sun + Moon: lunar weight back to 1.0, then the eclipse tax.
	slots := slotsWith(18, 19)
	got := ComputeGlobalSync(slots, 90, 0, synergy.ComputeActive(slots))
	assert.Equal(t, 75, got)
}

func TestComputeGlobalSync_StarBonus(t *testing.T) {
	// The Star alone under Aquarius: 50 base + 20 flat + 30 for its
	// matching mark on a sync-related card.
	slots := slotsWith(17)
	got := ComputeGlobalSync(slots, 6720, 0, synergy.ComputeActive(slots))
	assert.Equal(t, 100, got)
}

func TestComputeGlobalSync_EmperorAppliesAfterExternalBonus(t *testing.T) {
	// Emperor's Aries mark matches hour 0. (50 + 40) * 1.25, not
	// 50*1.25 + 40.
	slots := slotsWith(4)
	got := ComputeGlobalSync(slots, 0, 40, synergy.ComputeActive(slots))
	assert.Equal(t, 112, got)
}

func TestComputeGlobalSync_JusticeBonusCountsAsExternal(t *testing.T) {
	slots := slotsWith(11)
	slots[0].Card.JusticeBonus = 10
	got := ComputeGlobalSync(slots, 1, 0, synergy.ComputeActive(slots))
	assert.Equal(t, 10, got)
}

func TestComputeGlobalSync_WheelJudgementClamps(t *testing.T) {
	slots := slotsWith(10, 20)
	syns := synergy.ComputeActive(slots)

	assert.Equal(t, 25, ComputeGlobalSync(slots, 0, 0, syns))
	assert.Equal(t, 75, ComputeGlobalSync(slots, 0, 1000, syns))
}

func TestComputeGlobalSync_IsolatedContributesNothing(t *testing.T) {
	slots := slotsWith(0)
	slots[0].Card.Curse = &card.Curse{ID: "c1", Type: card.CurseIsolated}
	got := ComputeGlobalSync(slots, 6720, 0, synergy.ComputeActive(slots))
	assert.Equal(t, 0, got)
}

func TestComputeGlobalSync_BlankScoresNothing(t *testing.T) {
	slots := circle.NewRing()
	slots[0].Card = card.NewBlank([]card.Mark{{Kind: card.MarkSign, Name: "Aquarius", Icon: "♒"}})
	got := ComputeGlobalSync(slots, 6720, 0, synergy.ComputeActive(slots))
	assert.Equal(t, 0, got)
}
