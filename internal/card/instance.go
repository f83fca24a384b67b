package card

import "github.com/google/uuid"

// Instance is a single owned copy of a catalog card. Marks are copied
// from the definition at creation and evolve independently.
type Instance struct {
	InstanceID string `json:"instanceId"`
	CardID     int    `json:"cardId"`
	Marks      []Mark `json:"marks"`

	// CooldownUntil is the global hour before which the card cannot be
	// activated again. Zero means ready.
	CooldownUntil int `json:"cooldownUntil,omitempty"`

	Curse            *Curse  `json:"curse,omitempty"`
	EffectMultiplier float64 `json:"effectMultiplier,omitempty"`
	IsBlank          bool    `json:"isBlank,omitempty"`

	JusticeBonus int `json:"justiceBonus,omitempty"`

	TowerActive bool `json:"towerActive,omitempty"`
	TowerCycles int  `json:"towerCycles,omitempty"`

	HangedManActive      bool `json:"hangedManActive,omitempty"`
	HangedManConsumes    int  `json:"hangedManConsumes,omitempty"`
	HangedManActivatedAt int  `json:"hangedManActivatedAt,omitempty"`
}

// NewInstance mints a fresh instance of the given definition.
func NewInstance(def Definition) *Instance {
	marks := make([]Mark, len(def.Marks))
	copy(marks, def.Marks)
	return &Instance{
		InstanceID: uuid.NewString(),
		CardID:     def.ID,
		Marks:      marks,
		IsBlank:    def.ID == Blank.ID,
	}
}

// NewBlank mints a blank card carrying the given inherited marks.
func NewBlank(marks []Mark) *Instance {
	inherited := make([]Mark, len(marks))
	copy(inherited, marks)
	return &Instance{
		InstanceID: uuid.NewString(),
		CardID:     Blank.ID,
		Marks:      inherited,
		IsBlank:    true,
	}
}

// Definition resolves the instance's catalog entry.
func (in *Instance) Definition() (Definition, bool) { return Lookup(in.CardID) }

// EffectID returns the instance's effect key, or empty when the card
// id is unknown.
func (in *Instance) EffectID() EffectID {
	def, ok := Lookup(in.CardID)
	if !ok {
		return ""
	}
	return def.EffectID
}

// OnCooldown reports whether the card is still cooling down at the
// given global hour.
func (in *Instance) OnCooldown(globalHours int) bool {
	return in.CooldownUntil > globalHours
}

// IsIsolated reports whether the card carries the Isolated curse,
// which removes it from sync scoring.
func (in *Instance) IsIsolated() bool {
	return in.Curse != nil && in.Curse.Type == CurseIsolated
}

// Multiplier returns the card's own effect multiplier, defaulting to 1.
func (in *Instance) Multiplier() float64 {
	if in.EffectMultiplier == 0 {
		return 1
	}
	return in.EffectMultiplier
}

// Clone deep-copies the instance, marks and curse included.
func (in *Instance) Clone() *Instance {
	if in == nil {
		return nil
	}
	out := *in
	out.Marks = make([]Mark, len(in.Marks))
	copy(out.Marks, in.Marks)
	if in.Curse != nil {
		c := *in.Curse
		out.Curse = &c
	}
	return &out
}
