package engine

import (
	"github.com/google/uuid"

	"github.com/Otavioqwert/tarot-game/internal/astral"
	"github.com/Otavioqwert/tarot-game/internal/card"
	"github.com/Otavioqwert/tarot-game/internal/circle"
	"github.com/Otavioqwert/tarot-game/internal/synergy"
)

const deathCardID = 13

// registry maps effect ids to their handlers. Cards whose behavior
// lives entirely in the pipeline passes (Magician, Strength, ...) keep
// an empty OnCycle so presence checks and the MAGICIAN_PRIESTESS
// re-fire can see them.
var registry = map[card.EffectID]*Handler{
	card.EffectTheFool: {
		OnActivate: func(a *Activation) {
			a.World.RewindClock(astral.DailyMax)
			a.World.SlowTicks(30000, 12)
			a.Slots[a.SlotIndex].Card = nil
		},
	},

	card.EffectTheMagician: {
		OnCycle: func(*CycleContext) Result { return Result{} },
	},

	card.EffectHighPriestess: {
		OnActivate: func(a *Activation) {
			a.World.AdvanceClock(astral.LunarMax)
			if c := a.Card(); c != nil {
				c.CooldownUntil = a.Hours + 2*astral.LunarMax
			}
		},
	},

	card.EffectTheEmpress: {
		OnCycle: func(*CycleContext) Result { return Result{} },
	},

	card.EffectTheEmperor: {
		OnCycle: func(*CycleContext) Result { return Result{} },
	},

	card.EffectTheHierophant: {
		OnCycle: func(ctx *CycleContext) Result {
			s := float64(ctx.Sync)
			return Result{Output: Output{Resources: 0.3 * s * s}}
		},
	},

	card.EffectTheLovers: {
		OnActivate: func(a *Activation) {
			a.World.OpenChoice(ChoiceLovers, a.SlotIndex)
		},
	},

	card.EffectTheChariot: {
		OnCycle: func(ctx *CycleContext) Result {
			var out Output
			if ctx.Hours > 0 && ctx.Hours%astral.DailyMax == astral.DailyMax-1 {
				out.TimeAdjustment = 1
			}
			if ctx.Rand.Float64() < 0.10 {
				for i := range ctx.Slots {
					c := ctx.Slots[i].Card
					if c != nil && c.CooldownUntil > 0 {
						c.CooldownUntil = max(ctx.Hours, c.CooldownUntil-2)
					}
				}
			}
			return Result{Output: out}
		},
	},

	card.EffectStrength: {
		OnCycle: func(*CycleContext) Result { return Result{} },
	},

	card.EffectTheHermit: {
		OnCycle: func(ctx *CycleContext) Result {
			empty := len(ctx.Slots) - circle.Occupied(ctx.Slots)
			return Result{Output: Output{Resources: 2.5 * float64(empty)}}
		},
	},

	card.EffectWheelOfFortune: {
		OnRestock: func(ctx *RestockContext) {
			if ctx.ItemCount > 0 && ctx.Rand.Float64() < 0.15 {
				ctx.ZeroCost(ctx.Rand.Intn(ctx.ItemCount))
			}
		},
	},

	card.EffectJustice: {
		OnCycle: func(ctx *CycleContext) Result {
			switch {
			case ctx.Hours > 0 && ctx.Hours%astral.LunarMax == 0:
				return Result{Self: &Patch{JusticeBonus: intPtr(0)}}
			case ctx.Hours > 0 && ctx.Hours%7 == 0:
				return Result{
					Output: Output{Resources: 25, Sync: 1},
					Self:   &Patch{JusticeBonus: intPtr(ctx.Card.JusticeBonus + 1)},
				}
			}
			return Result{}
		},
	},

	card.EffectTheHangedMan: {
		OnActivate: func(a *Activation) {
			a.World.OpenChoice(ChoiceSacrifice, a.SlotIndex)
		},
	},

	card.EffectDeath: {
		OnCycle: func(ctx *CycleContext) Result {
			if !astral.IsNewMoon(ctx.Hours) {
				return Result{}
			}
			n := len(ctx.Slots)
			leftIdx := circle.CounterClockwise(ctx.SlotIndex, n)
			left := ctx.Slots[leftIdx].Card
			if left == nil {
				return Result{}
			}
			if ctx.Synergies.Has(synergy.DeathTower) && left.EffectID() == card.EffectTheTower {
				return Result{}
			}

			inherited := make([]card.Mark, len(left.Marks))
			copy(inherited, left.Marks)
			ctx.Slots[leftIdx].Card = nil

			var others []int
			for i := range ctx.Slots {
				if i != ctx.SlotIndex && i != leftIdx && ctx.Slots[i].Card != nil {
					others = append(others, i)
				}
			}
			if len(others) > 0 {
				target := others[ctx.Rand.Intn(len(others))]
				reaped := card.NewInstance(card.Library[deathCardID])
				reaped.Marks = inherited
				ctx.Slots[target].Card = reaped
			}
			return Result{}
		},
	},

	card.EffectTemperance: {
		OnCycle: func(*CycleContext) Result { return Result{} },
	},

	card.EffectTheDevil: {
		OnActivate: func(a *Activation) {
			a.World.OpenChoice(ChoiceDevil, a.SlotIndex)
		},
	},

	card.EffectTheTower: {},

	card.EffectTheStar: {},
	card.EffectTheMoon: {},

	card.EffectTheSun: {
		OnCycle: func(*CycleContext) Result { return Result{} },
	},

	card.EffectJudgement: {
		OnCycle: func(*CycleContext) Result { return Result{} },
	},

	card.EffectTheWorld: {
		OnActivate: func(a *Activation) {
			a.World.AddCurrency(999)
			a.World.PushBuff(GlobalBuff{
				ID: uuid.NewString(), SourceCardID: 21,
				Modifier: 2, Duration: 24, Type: BuffEffectMultiplier,
			})
			a.World.PushBuff(GlobalBuff{
				ID: uuid.NewString(), SourceCardID: 21,
				Modifier: 4, Duration: 12, Type: BuffSyncModifier,
			})
			if c := a.Card(); c != nil {
				c.CooldownUntil = a.Hours + 2*astral.LunarMax
			}
		},
	},

	card.EffectBlank: {
		OnCycle: func(*CycleContext) Result { return Result{} },
	},
}

// towerCycle is attached in init: naming it in the registry literal
// would form an initialization cycle through lookupHandler.
func init() {
	registry[card.EffectTheTower].OnCycle = towerCycle
}

// towerCycle reshuffles the ring every 8 hours, rolls for the major
// arcana surge, and re-invokes the rest of the circle while the surge
// is live.
func towerCycle(ctx *CycleContext) Result {
	if ctx.Hours > 0 && ctx.Hours%8 == 0 {
		// Fisher-Yates over the live slot contents.
		for i := len(ctx.Slots) - 1; i > 0; i-- {
			j := ctx.Rand.Intn(i + 1)
			ctx.Slots[i].Card, ctx.Slots[j].Card = ctx.Slots[j].Card, ctx.Slots[i].Card
		}

		chance := 0.15
		if syn, ok := ctx.Synergies.Find(synergy.DeathTower); ok {
			chance = 0.50
			if syn.Empowered {
				chance = 0.625
			}
		}
		if ctx.Rand.Float64() < chance {
			for i := range ctx.Slots {
				c := ctx.Slots[i].Card
				if c != nil && c.EffectID() == card.EffectTheTower {
					c.TowerActive = true
					c.TowerCycles = 8
					break
				}
			}
		}
	}

	var out Output
	var patch *Patch
	if ctx.Card.TowerActive && ctx.Card.TowerCycles > 0 {
		for i, c := range ctx.Cards {
			if c == nil || c.EffectID() == card.EffectTheTower {
				continue
			}
			h := lookupHandler(c.EffectID())
			if h == nil || h.OnCycle == nil {
				continue
			}
			sub := *ctx
			sub.Card = c
			sub.SlotIndex = i
			out.Add(h.OnCycle(&sub).Output)
		}

		remaining := ctx.Card.TowerCycles - 1
		patch = &Patch{TowerCycles: intPtr(remaining)}
		if remaining <= 0 {
			patch.TowerActive = boolPtr(false)
		}
	}
	return Result{Output: out, Self: patch}
}
