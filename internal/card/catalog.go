package card

import (
	"fmt"

	"github.com/Otavioqwert/tarot-game/internal/astral"
)

// Blank is the placeholder card left behind by The Lovers. It inherits
// marks from its origin and can be overwritten by any placement.
var Blank = Definition{
	ID:        -1,
	Name:      "Blank Card",
	Effect:    "Inherits marks from its origin. Can be replaced by any other card.",
	SyncValue: 0, SyncType: SyncElement, SyncBonus: 0,
	Element:  Spirit,
	EffectID: EffectBlank,
}

// Library is the full major-arcana catalog, indexed by card id.
var Library = []Definition{
	{ID: 0, Name: "The Fool", Effect: "Rewinds 24 cycles, single use. The next 12 cycles last +30s. (Stacks)",
		SyncValue: 10, SyncType: SyncElement, SyncBonus: 5, Element: Spirit,
		Marks: []Mark{signMark(10)}, EffectID: EffectTheFool},
	{ID: 1, Name: "The Magician", Effect: "Doubles every numeric effect of the card to the right.",
		SyncValue: 15, SyncType: SyncElement, SyncBonus: 10, Element: Fire,
		Marks: []Mark{signMark(2)}, EffectID: EffectTheMagician},
	{ID: 2, Name: "The High Priestess", Effect: "Advances 168 cycles. Cooldown of 168 cycles.",
		SyncValue: 20, SyncType: SyncLunar, SyncBonus: 15, Element: Water,
		Marks: []Mark{lunarMark(0)}, EffectID: EffectHighPriestess},
	{ID: 3, Name: "The Empress", Effect: "Copies effect and state of the card to the right, keeping its own marks.",
		SyncValue: 12, SyncType: SyncSign, SyncBonus: 8, Element: Earth,
		Marks: []Mark{signMark(1)}, EffectID: EffectTheEmpress},
	{ID: 4, Name: "The Emperor", Effect: "Increases synergy effects by 25%.",
		SyncValue: 18, SyncType: SyncElement, SyncBonus: 12, Element: Fire,
		Marks: []Mark{signMark(0)}, EffectID: EffectTheEmperor},
	{ID: 5, Name: "The Hierophant", Effect: "Gains up to 0.3 resources * Sync². Value depends on Sync.",
		SyncValue: 14, SyncType: SyncSign, SyncBonus: 9, Element: Earth,
		Marks: []Mark{signMark(8)}, EffectID: EffectTheHierophant},
	{ID: 6, Name: "The Lovers", Effect: "Choose between 2 cards. Leaves a blank card behind inheriting marks.",
		SyncValue: 25, SyncType: SyncElement, SyncBonus: 20, Element: Air,
		Marks: []Mark{signMark(2)}, EffectID: EffectTheLovers},
	{ID: 7, Name: "The Chariot", Effect: "Shortens each day by 1 cycle. 10% chance to cut 2 cooldown cycles across the circle.",
		SyncValue: 17, SyncType: SyncElement, SyncBonus: 11, Element: Fire,
		Marks: []Mark{signMark(3)}, EffectID: EffectTheChariot},
	{ID: 8, Name: "Strength", Effect: "+1 numeric bonus to the main effect of adjacent cards.",
		SyncValue: 19, SyncType: SyncElement, SyncBonus: 13, Element: Fire,
		Marks: []Mark{signMark(4)}, EffectID: EffectStrength},
	{ID: 9, Name: "The Hermit", Effect: "Gains 2.5 resources per cycle for each empty slot in the Circle.",
		SyncValue: 16, SyncType: SyncSign, SyncBonus: 10, Element: Earth,
		Marks: []Mark{signMark(5)}, EffectID: EffectTheHermit},
	{ID: 10, Name: "Wheel of Fortune", Effect: "Boosts card effects by 50% * Sync while marks are active.",
		SyncValue: 30, SyncType: SyncSign, SyncBonus: 25, Element: Fire,
		Marks: []Mark{signMark(8)}, EffectID: EffectWheelOfFortune},
	{ID: 11, Name: "Justice", Effect: "+1% Sync and 25 resources every 7 cycles. Resets every 168 cycles.",
		SyncValue: 21, SyncType: SyncElement, SyncBonus: 14, Element: Air,
		Marks: []Mark{signMark(6)}, EffectID: EffectJustice},
	{ID: 12, Name: "The Hanged Man", Effect: "Opens the sacrifice altar. Receive ((n+1)n/2)*50 Aether after 1 Moon. Cooldown of 1 Moon.",
		SyncValue: 13, SyncType: SyncLunar, SyncBonus: 16, Element: Water,
		Marks: []Mark{signMark(11)}, EffectID: EffectTheHangedMan},
	{ID: 13, Name: "Death", Effect: "On the new Moon, consumes the card to the left and turns another into Death (inherits marks).",
		SyncValue: 5, SyncType: SyncLunar, SyncBonus: 40, Element: Water,
		Marks: []Mark{signMark(7)}, EffectID: EffectDeath},
	{ID: 14, Name: "Temperance", Effect: "Equalizes the Circle's positive outputs toward their average.",
		SyncValue: 23, SyncType: SyncSign, SyncBonus: 17, Element: Air,
		Marks: []Mark{lunarMark(1)}, EffectID: EffectTemperance},
	{ID: 15, Name: "The Devil", Effect: "Consumes marks for rewards and curses (Isolated, Volatile, Temporal).",
		SyncValue: 24, SyncType: SyncElement, SyncBonus: 18, Element: Earth,
		Marks: []Mark{signMark(9)}, EffectID: EffectTheDevil},
	{ID: 16, Name: "The Tower", Effect: "Rearranges every 8 cycles. 15% chance to execute ALL effects.",
		SyncValue: 8, SyncType: SyncElement, SyncBonus: 30, Element: Fire,
		Marks: []Mark{lunarMark(3)}, EffectID: EffectTheTower},
	{ID: 17, Name: "The Star", Effect: "+20% base Sync. +30% per mark for cards with sync effects. Penalizes deviation.",
		SyncValue: 22, SyncType: SyncSign, SyncBonus: 18, Element: Air,
		Marks: []Mark{signMark(10)}, EffectID: EffectTheStar},
	{ID: 18, Name: "The Moon", Effect: "Moon contributes 100%, Sign 30%. Reduces direct Sync effects by 40%.",
		SyncValue: 28, SyncType: SyncLunar, SyncBonus: 22, Element: Water,
		Marks: []Mark{lunarMark(2)}, EffectID: EffectTheMoon},
	{ID: 19, Name: "The Sun", Effect: "Daytime (6-17) activates Moon marks. Cycle 12 multiplies effects by 4.",
		SyncValue: 28, SyncType: SyncElement, SyncBonus: 22, Element: Fire,
		Marks: []Mark{signMark(4)}, EffectID: EffectTheSun},
	{ID: 20, Name: "Judgement", Effect: "Replicates 50% of adjacent effects, but reduces the targets by 25%.",
		SyncValue: 26, SyncType: SyncLunar, SyncBonus: 20, Element: Spirit,
		Marks: []Mark{lunarMark(1)}, EffectID: EffectJudgement},
	{ID: 21, Name: "The World", Effect: "Cooldown 2 Moons. 999 Aether. +100% effects (24h), +300% sync-cards (12h).",
		SyncValue: 35, SyncType: SyncSign, SyncBonus: 30, Element: Spirit,
		Marks: []Mark{signMark(9)}, EffectID: EffectTheWorld},
}

func signMark(i int) Mark {
	s := astral.ZodiacSigns[i]
	return Mark{Kind: MarkSign, Name: s.Name, Icon: s.Icon}
}

func lunarMark(i int) Mark {
	p := astral.LunarPhases[i]
	return Mark{Kind: MarkLunar, Name: p.Name, Icon: p.Icon}
}

// Lookup resolves a card id to its definition. Unknown ids report
// ok=false so callers can degrade to a no-effect card.
func Lookup(id int) (Definition, bool) {
	if id == Blank.ID {
		return Blank, true
	}
	if id < 0 || id >= len(Library) {
		return Definition{}, false
	}
	return Library[id], true
}

func init() {
	for i, def := range Library {
		if def.ID != i {
			panic(fmt.Sprintf("card: catalog entry %d has id %d", i, def.ID))
		}
		if def.EffectID == "" {
			panic(fmt.Sprintf("card: catalog entry %d has no effect id", i))
		}
	}
}
