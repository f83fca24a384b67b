package engine

import (
	"github.com/Otavioqwert/tarot-game/internal/astral"
	"github.com/Otavioqwert/tarot-game/internal/card"
	"github.com/Otavioqwert/tarot-game/internal/circle"
	"github.com/Otavioqwert/tarot-game/internal/rng"
	"github.com/Otavioqwert/tarot-game/internal/synergy"
)

// CycleInput is everything one hourly cycle needs. Slots is the live
// ring; the pipeline mutates it only through the sanctioned handler
// side effects and reports everything else as deltas.
type CycleInput struct {
	Slots     []circle.Slot
	Hours     int
	Sync      int
	Buffs     []GlobalBuff
	Synergies synergy.Set
	Rand      rng.RNG
}

// CycleResult is the aggregated, unapplied outcome of one cycle.
type CycleResult struct {
	TotalResources float64
	TotalSync      float64
	TimeAdjustment int
	// SlotPatches are merged selfUpdate patches keyed by slot index,
	// applied by the caller to the live instances.
	SlotPatches map[int]Patch
	// FixedRatePerSecond is the HIEROPHANT_HERMIT replacement income,
	// consumed by the real-time accrual loop, not the hourly cycle.
	FixedRatePerSecond float64
}

// ProcessCycle runs the fixed modifier pipeline for one game hour:
// raw handler pass, synergy re-fire, adjacency, global multipliers,
// equalization, aggregation, then circle-wide scalars. Later passes
// depend on earlier passes' settled values; the order is not
// negotiable.
func ProcessCycle(in CycleInput) CycleResult {
	res := CycleResult{SlotPatches: map[int]Patch{}}
	n := len(in.Slots)
	if n == 0 {
		return res
	}

	hieroHermit, hhActive := in.Synergies.Find(synergy.HierophantHermit)
	if hhActive {
		res.FixedRatePerSecond = 0.5
		if hieroHermit.Empowered {
			res.FixedRatePerSecond = 0.625
		}
	}

	effective := effectiveCards(in.Slots)

	mergePatch := func(c *card.Instance, i int, p *Patch) {
		if p == nil || p.IsZero() {
			return
		}
		// Handlers may move cards mid-pass (the Tower shuffle), so the
		// patch is keyed by where the instance sits now. Delegated
		// views are not in the ring; those keep the evaluation index.
		idx := i
		for s := range in.Slots {
			if in.Slots[s].Card == c {
				idx = s
				break
			}
		}
		res.SlotPatches[idx] = res.SlotPatches[idx].Merge(*p)
	}
	nullified := func(c *card.Instance) bool {
		if !hhActive {
			return false
		}
		eid := c.EffectID()
		return eid == card.EffectTheHierophant || eid == card.EffectTheHermit
	}
	makeCtx := func(i int) *CycleContext {
		return &CycleContext{
			Card: effective[i], Cards: effective, Slots: in.Slots,
			SlotIndex: i, Hours: in.Hours, Sync: in.Sync,
			Synergies: in.Synergies, Rand: in.Rand,
		}
	}

	// Raw pass.
	raw := make([]Output, n)
	for i, c := range effective {
		if c == nil || nullified(c) {
			continue
		}
		h := lookupHandler(c.EffectID())
		if h == nil || h.OnCycle == nil {
			continue
		}
		r := h.OnCycle(makeCtx(i))
		raw[i] = r.Output
		mergePatch(c, i, r.Self)
	}

	// MAGICIAN_PRIESTESS re-fires pure passives.
	if mp, ok := in.Synergies.Find(synergy.MagicianPriestess); ok {
		factor := 1.0
		if mp.Empowered {
			factor = 1.3
		}
		for i, c := range effective {
			if c == nil || nullified(c) {
				continue
			}
			h := lookupHandler(c.EffectID())
			if !h.PurePassive() {
				continue
			}
			r := h.OnCycle(makeCtx(i))
			raw[i].AddScaled(r.Output, factor)
			mergePatch(c, i, r.Self)
		}
	}

	// Adjacency pass on a copy, so neighbor reads see raw values and
	// neighbor writes land on modified ones.
	modified := make([]Output, n)
	copy(modified, raw)
	wheelJudgement := in.Synergies.Has(synergy.WheelJudgement)
	for i, c := range effective {
		if c == nil {
			continue
		}
		right := circle.Clockwise(i, n)
		left := circle.CounterClockwise(i, n)
		switch c.EffectID() {
		case card.EffectTheMagician:
			modified[right].Resources *= 2
			modified[right].Sync *= 2
		case card.EffectStrength:
			if effective[right] != nil {
				modified[right].Resources++
			}
			if effective[left] != nil {
				modified[left].Resources++
			}
		case card.EffectJudgement:
			modified[i].Resources += 0.5 * (raw[right].Resources + raw[left].Resources)
			modified[i].Sync += 0.5 * (raw[right].Sync + raw[left].Sync)
			if !wheelJudgement {
				modified[right].Resources *= 0.75
				modified[right].Sync *= 0.75
				modified[left].Resources *= 0.75
				modified[left].Sync *= 0.75
			}
		}
	}

	// Global multipliers.
	sunPresent := hasEffect(effective, card.EffectTheSun)
	emperorPresent := hasEffect(effective, card.EffectTheEmperor)
	for i, c := range effective {
		if c == nil {
			continue
		}
		if sunPresent && astral.IsMidDay(in.Hours) {
			modified[i].Resources *= 4
			modified[i].Sync *= 4
		}
		mult := c.Multiplier()
		modified[i].Resources *= mult
		modified[i].Sync *= mult
		for _, b := range in.Buffs {
			switch b.Type {
			case BuffEffectMultiplier:
				modified[i].Resources *= b.Modifier
			case BuffSyncModifier:
				modified[i].Sync *= b.Modifier
			}
		}
		if c.IsIsolated() {
			modified[i].Resources *= 1.5
			modified[i].Sync *= 1.5
		}
		if emperorPresent {
			modified[i].Resources *= 1.25
			modified[i].Sync *= 1.25
		}
	}

	// Temperance equalization, resources and sync independently,
	// strictly positive entries only.
	if hasEffect(effective, card.EffectTemperance) {
		equalize(modified, func(o *Output) *float64 { return &o.Resources })
		equalize(modified, func(o *Output) *float64 { return &o.Sync })
	}

	// Aggregate. TimeAdjustment comes from the raw pass untouched.
	for i := range modified {
		res.TotalResources += modified[i].Resources
		res.TotalSync += modified[i].Sync
		res.TimeAdjustment += raw[i].TimeAdjustment
	}

	// Circle-wide scalars.
	if fw, ok := in.Synergies.Find(synergy.FoolWorld); ok && astral.IsDayTime(in.Hours) {
		if fw.Empowered {
			res.TotalResources *= 1.0375
		} else {
			res.TotalResources *= 1.03
		}
	}
	if hasEffect(effective, card.EffectWheelOfFortune) && anyMarks(in.Slots) {
		res.TotalResources *= 1 + 0.5*float64(in.Sync)
	}

	return res
}

// effectiveCards builds the per-slot view the pipeline evaluates: the
// Empress presents her clockwise neighbor's card state under her own
// marks.
func effectiveCards(slots []circle.Slot) []*card.Instance {
	n := len(slots)
	out := make([]*card.Instance, n)
	for i := range slots {
		out[i] = slots[i].Card
	}
	for i := range slots {
		c := slots[i].Card
		if c == nil || c.EffectID() != card.EffectTheEmpress {
			continue
		}
		neighbor := slots[circle.Clockwise(i, n)].Card
		if neighbor == nil {
			continue
		}
		delegate := neighbor.Clone()
		delegate.Marks = make([]card.Mark, len(c.Marks))
		copy(delegate.Marks, c.Marks)
		out[i] = delegate
	}
	return out
}

func hasEffect(cards []*card.Instance, id card.EffectID) bool {
	for _, c := range cards {
		if c != nil && c.EffectID() == id {
			return true
		}
	}
	return false
}

func anyMarks(slots []circle.Slot) bool {
	for i := range slots {
		if c := slots[i].Card; c != nil && len(c.Marks) > 0 {
			return true
		}
	}
	return false
}

func equalize(outputs []Output, field func(*Output) *float64) {
	var sum float64
	var members []*float64
	for i := range outputs {
		v := field(&outputs[i])
		if *v > 0 {
			sum += *v
			members = append(members, v)
		}
	}
	if len(members) < 2 {
		return
	}
	avg := sum / float64(len(members))
	for _, v := range members {
		*v = avg
	}
}
