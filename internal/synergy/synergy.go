package synergy

import (
	"github.com/Otavioqwert/tarot-game/internal/card"
	"github.com/Otavioqwert/tarot-game/internal/circle"
)

// ID names a synergy pair.
type ID string

const (
	FoolWorld         ID = "FOOL_WORLD"
	MagicianPriestess ID = "MAGICIAN_PRIESTESS"
	EmpressEmperor    ID = "EMPRESS_EMPEROR"
	HierophantHermit  ID = "HIEROPHANT_HERMIT"
	WheelJudgement    ID = "WHEEL_JUDGEMENT"
	DeathTower        ID = "DEATH_TOWER"
	SunMoon           ID = "SUN_MOON"
	LoversBlank       ID = "LOVERS_BLANK"
)

// Synergy is a static catalog entry: a pair of effect ids that, when
// both are slotted, changes engine behavior.
type Synergy struct {
	ID                   ID                `json:"id"`
	Name                 string            `json:"name"`
	Cards                [2]card.EffectID  `json:"cards"`
	Description          string            `json:"description"`
	DescriptionEmpowered string            `json:"descriptionEmpowered"`
	Icon                 string            `json:"icon"`
}

// Catalog lists every synergy in detection order.
var Catalog = []Synergy{
	{ID: FoolWorld, Name: "Hero's Journey",
		Cards:       [2]card.EffectID{card.EffectTheFool, card.EffectTheWorld},
		Description: "+3% resources/cycle between 6h-18h.", DescriptionEmpowered: "+3.75% resources/cycle between 6h-18h.", Icon: "🌀"},
	{ID: MagicianPriestess, Name: "Arcane Ritual",
		Cards:       [2]card.EffectID{card.EffectTheMagician, card.EffectHighPriestess},
		Description: "Pure passive effects fire a second time each cycle.", DescriptionEmpowered: "Second firing lands at 130% strength.", Icon: "🔮"},
	{ID: EmpressEmperor, Name: "Empire",
		Cards:       [2]card.EffectID{card.EffectTheEmpress, card.EffectTheEmperor},
		Description: "Adds +1 slot to the Circle.", DescriptionEmpowered: "Adds +1 slot to the Circle.", Icon: "👑"},
	{ID: HierophantHermit, Name: "Secluded Wisdom",
		Cards:       [2]card.EffectID{card.EffectTheHierophant, card.EffectTheHermit},
		Description: "Nullifies both effects. Generates 0.5 resources/s.", DescriptionEmpowered: "Nullifies both effects. Generates 0.625 resources/s.", Icon: "📜"},
	{ID: WheelJudgement, Name: "Inevitable Karma",
		Cards:       [2]card.EffectID{card.EffectWheelOfFortune, card.EffectJudgement},
		Description: "Sync locked between 25-75%. Nullifies both penalties.", DescriptionEmpowered: "Sync locked between 25-75%. External Sync bonuses applied at 1/4.", Icon: "⚖️"},
	{ID: DeathTower, Name: "Inevitable Ruin",
		Cards:       [2]card.EffectID{card.EffectDeath, card.EffectTheTower},
		Description: "The Tower cannot be consumed. Tower activation chance rises to 50%.", DescriptionEmpowered: "Tower activation chance rises to 62.5%.", Icon: "💥"},
	{ID: SunMoon, Name: "Eternal Eclipse",
		Cards:       [2]card.EffectID{card.EffectTheSun, card.EffectTheMoon},
		Description: "Day and night behave the same. Lifts the Moon's penalty but reduces its influence by 25%.", DescriptionEmpowered: "Moon's influence reduced by only 20%.", Icon: "🌗"},
	{ID: LoversBlank, Name: "Echo of the Void",
		Cards:       [2]card.EffectID{card.EffectTheLovers, card.EffectBlank},
		Description: "Consume 1 Blank Card when activating The Lovers for +1 choice.", DescriptionEmpowered: "Consume 2 Blank Cards for +3 choices in total.", Icon: "💔"},
}

// Active is a detected synergy plus its empowerment state.
type Active struct {
	Synergy
	Empowered bool `json:"isEmpowered"`
}

// Set is the detection result, ordered as in the catalog.
type Set []Active

// Has reports whether the synergy is active.
func (s Set) Has(id ID) bool {
	_, ok := s.Find(id)
	return ok
}

// Find returns the active entry for the id, if any.
func (s Set) Find(id ID) (Active, bool) {
	for _, a := range s {
		if a.ID == id {
			return a, true
		}
	}
	return Active{}, false
}

// ComputeActive detects active synergies from the slotted cards. A
// synergy is active when both of its effect ids appear anywhere in
// the ring; every active synergy is empowered while The Emperor is
// slotted. Pure function of the slots.
func ComputeActive(slots []circle.Slot) Set {
	present := make(map[card.EffectID]bool, len(slots))
	for i := range slots {
		if c := slots[i].Card; c != nil {
			if eid := c.EffectID(); eid != "" {
				present[eid] = true
			}
		}
	}
	empowered := present[card.EffectTheEmperor]

	var out Set
	for _, syn := range Catalog {
		if present[syn.Cards[0]] && present[syn.Cards[1]] {
			out = append(out, Active{Synergy: syn, Empowered: empowered})
		}
	}
	return out
}
