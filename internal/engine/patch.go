package engine

import "github.com/Otavioqwert/tarot-game/internal/card"

// Patch is a partial update to a card instance produced by a cycle
// handler. Nil fields are left untouched.
type Patch struct {
	CooldownUntil *int
	JusticeBonus  *int
	TowerActive   *bool
	TowerCycles   *int
}

// IsZero reports whether the patch changes nothing.
func (p Patch) IsZero() bool {
	return p.CooldownUntil == nil && p.JusticeBonus == nil &&
		p.TowerActive == nil && p.TowerCycles == nil
}

// Merge overlays other on top of p; other's fields win.
func (p Patch) Merge(other Patch) Patch {
	if other.CooldownUntil != nil {
		p.CooldownUntil = other.CooldownUntil
	}
	if other.JusticeBonus != nil {
		p.JusticeBonus = other.JusticeBonus
	}
	if other.TowerActive != nil {
		p.TowerActive = other.TowerActive
	}
	if other.TowerCycles != nil {
		p.TowerCycles = other.TowerCycles
	}
	return p
}

// Apply writes the patch into the instance.
func (p Patch) Apply(in *card.Instance) {
	if in == nil {
		return
	}
	if p.CooldownUntil != nil {
		in.CooldownUntil = *p.CooldownUntil
	}
	if p.JusticeBonus != nil {
		in.JusticeBonus = *p.JusticeBonus
	}
	if p.TowerActive != nil {
		in.TowerActive = *p.TowerActive
	}
	if p.TowerCycles != nil {
		in.TowerCycles = *p.TowerCycles
	}
}

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }
