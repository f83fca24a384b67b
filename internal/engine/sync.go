package engine

import (
	"math"
	"sort"
	"strings"

	"github.com/Otavioqwert/tarot-game/internal/astral"
	"github.com/Otavioqwert/tarot-game/internal/card"
	"github.com/Otavioqwert/tarot-game/internal/circle"
	"github.com/Otavioqwert/tarot-game/internal/synergy"
)

// ComputeGlobalSync scores how well the circle's marks line up with
// the current lunar phase and zodiac sign. The result is a whole
// number, normally 0..100 but external bonuses can push it higher
// unless WHEEL_JUDGEMENT clamps it.
//
// The step order matters: the Emperor multiplier lands after the
// external bonus and before the clamp.
func ComputeGlobalSync(slots []circle.Slot, globalHours int, permanentSyncBonus float64, syns synergy.Set) int {
	var cards []scoredCard
	for i := range slots {
		c := slots[i].Card
		if c == nil || c.IsBlank {
			continue
		}
		def, ok := c.Definition()
		if !ok {
			continue
		}
		cards = append(cards, scoredCard{inst: c, def: def})
	}

	hasEmperor, hasStar, hasMoon := false, false, false
	justiceBonus := 0
	for _, c := range cards {
		switch c.def.EffectID {
		case card.EffectTheEmperor:
			hasEmperor = true
		case card.EffectTheStar:
			hasStar = true
		case card.EffectTheMoon:
			hasMoon = true
		case card.EffectJustice:
			justiceBonus += c.inst.JusticeBonus
		}
	}

	sunMoon, sunMoonActive := syns.Find(synergy.SunMoon)
	phaseName := astral.LunarPhases[astral.PhaseIndex(globalHours)].Name
	signName := astral.ZodiacSigns[astral.SignIndex(globalHours)].Name
	isDay := astral.IsDayTime(globalHours)
	lunarGateOpen := !isDay || sunMoonActive

	lunarWeight := 1.0
	if hasMoon {
		lunarWeight = 0.5
	}
	if sunMoonActive {
		lunarWeight = 1.0
	}
	signWeight := 0.5
	if hasMoon {
		signWeight = 0.3
	}

	// Isolated cards keep their slot but contribute no marks.
	var valid []scoredCard
	for _, c := range cards {
		if !c.inst.IsIsolated() {
			valid = append(valid, c)
		}
	}

	lunarNames := map[string]bool{}
	signNames := map[string]bool{}
	for _, c := range valid {
		for _, m := range c.inst.Marks {
			switch m.Kind {
			case card.MarkLunar:
				lunarNames[m.Name] = true
			case card.MarkSign:
				signNames[m.Name] = true
			}
		}
	}

	lunarSynced := 0.0
	if lunarGateOpen && lunarNames[phaseName] {
		lunarSynced = 1
	}
	signSynced := 0.0
	if signNames[signName] {
		signSynced = 1
	}

	var lunarSync, signSync float64
	if len(lunarNames) > 0 {
		lunarSync = lunarWeight / float64(len(lunarNames)) * lunarSynced
	}
	if len(signNames) > 0 {
		signSync = signWeight / float64(len(signNames)) * signSynced
	}

	total := (lunarSync + signSync) * 100

	if sunMoonActive {
		if sunMoon.Empowered {
			total *= 0.80
		} else {
			total *= 0.75
		}
	}

	if hasStar {
		total += 20
		total += starBonus(valid, phaseName, signName, lunarGateOpen)
	}

	externalBonus := permanentSyncBonus + float64(justiceBonus)
	wj, wjActive := syns.Find(synergy.WheelJudgement)
	if wjActive && wj.Empowered {
		externalBonus /= 4
	}
	total += externalBonus

	if hasEmperor {
		total *= 1.25
	}

	if wjActive {
		total = math.Max(25, math.Min(total, 75))
	}

	return int(math.Floor(total))
}

type scoredCard struct {
	inst *card.Instance
	def  card.Definition
}

// starBonus grants 30 per currently-matching mark to every card whose
// effect text is sync-related, halved for cards whose mark pattern is
// not the dominant one in the circle.
func starBonus(valid []scoredCard, phaseName, signName string, lunarGateOpen bool) float64 {
	patterns := map[string]int{}
	for _, c := range valid {
		patterns[markPattern(c.inst.Marks)]++
	}
	maxCount := 0
	for _, count := range patterns {
		if count > maxCount {
			maxCount = count
		}
	}

	bonus := 0.0
	for _, c := range valid {
		if !c.def.SyncRelated() {
			continue
		}
		active := 0
		for _, m := range c.inst.Marks {
			switch {
			case m.Kind == card.MarkLunar && lunarGateOpen && m.Name == phaseName:
				active++
			case m.Kind == card.MarkSign && m.Name == signName:
				active++
			}
		}
		cardBonus := 30 * float64(active)
		if patterns[markPattern(c.inst.Marks)] != maxCount {
			cardBonus /= 2
		}
		bonus += cardBonus
	}
	return bonus
}

func markPattern(marks []card.Mark) string {
	names := make([]string, len(marks))
	for i, m := range marks {
		names[i] = m.Name
	}
	sort.Strings(names)
	return strings.Join(names, "+")
}
