package card

import "strings"

// EffectID is a stable key into the effect registry. Empty means the
// card is decorative only.
type EffectID string

const (
	EffectTheFool        EffectID = "THE_FOOL"
	EffectTheMagician    EffectID = "THE_MAGICIAN"
	EffectHighPriestess  EffectID = "THE_HIGH_PRIESTESS"
	EffectTheEmpress     EffectID = "THE_EMPRESS"
	EffectTheEmperor     EffectID = "THE_EMPEROR"
	EffectTheHierophant  EffectID = "THE_HIEROPHANT"
	EffectTheLovers      EffectID = "THE_LOVERS"
	EffectTheChariot     EffectID = "THE_CHARIOT"
	EffectStrength       EffectID = "STRENGTH"
	EffectTheHermit      EffectID = "THE_HERMIT"
	EffectWheelOfFortune EffectID = "WHEEL_OF_FORTUNE"
	EffectJustice        EffectID = "JUSTICE"
	EffectTheHangedMan   EffectID = "THE_HANGED_MAN"
	EffectDeath          EffectID = "DEATH"
	EffectTemperance     EffectID = "TEMPERANCE"
	EffectTheDevil       EffectID = "THE_DEVIL"
	EffectTheTower       EffectID = "THE_TOWER"
	EffectTheStar        EffectID = "THE_STAR"
	EffectTheMoon        EffectID = "THE_MOON"
	EffectTheSun         EffectID = "THE_SUN"
	EffectJudgement      EffectID = "JUDGEMENT"
	EffectTheWorld       EffectID = "THE_WORLD"
	EffectBlank          EffectID = "BLANK"
)

// Element is one of the five card elements.
type Element string

const (
	Fire   Element = "fire"
	Water  Element = "water"
	Air    Element = "air"
	Earth  Element = "earth"
	Spirit Element = "spirit"
)

// SyncType classifies a card's base sync stat.
type SyncType string

const (
	SyncElement SyncType = "element"
	SyncLunar   SyncType = "lunar"
	SyncSign    SyncType = "sign"
)

// MarkKind distinguishes lunar-phase marks from zodiac-sign marks.
type MarkKind string

const (
	MarkLunar MarkKind = "lunar"
	MarkSign  MarkKind = "sign"
)

// Mark is a lunar or sign tag attached to a card instance, matched
// against the current phase/sign when scoring sync.
type Mark struct {
	Kind MarkKind `json:"type"`
	Name string   `json:"name"`
	Icon string   `json:"icon"`
}

// CurseType is a persistent altered-behavior tag applied by The Devil.
type CurseType string

const (
	CurseIsolated CurseType = "ISOLATED"
	CurseVolatile CurseType = "VOLATILE"
	CurseTemporal CurseType = "TEMPORAL"
)

// Curse marks a card instance as cursed.
type Curse struct {
	ID   string    `json:"id"`
	Type CurseType `json:"type"`
}

// Definition is the immutable catalog entry for a card archetype.
type Definition struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	Effect    string   `json:"effect"`
	SyncValue int      `json:"syncValue"`
	SyncType  SyncType `json:"syncType"`
	SyncBonus int      `json:"syncBonus"`
	Element   Element  `json:"element"`
	Marks     []Mark   `json:"marks,omitempty"`
	EffectID  EffectID `json:"effectId,omitempty"`
}

// SyncRelated reports whether the card's effect text denotes a
// sync-related effect. The Star's bonus keys off this.
func (d Definition) SyncRelated() bool {
	return strings.Contains(strings.ToLower(d.Effect), "sync")
}
