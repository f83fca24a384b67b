package engine

// BuffType selects which quantity a GlobalBuff multiplies.
type BuffType string

const (
	// BuffEffectMultiplier scales per-slot resource deltas.
	BuffEffectMultiplier BuffType = "EFFECT_MULTIPLIER"
	// BuffSyncModifier scales per-slot sync deltas.
	BuffSyncModifier BuffType = "SYNC_MODIFIER"
	// BuffTickSpeed adds its modifier (ms) to the tick rate while live.
	BuffTickSpeed BuffType = "TICK_SPEED"
)

// GlobalBuff is a time-boxed multiplier created by a card activation.
// Duration is in remaining game hours; the orchestrator decrements it
// once per tick and prunes at <= 0.
type GlobalBuff struct {
	ID           string   `json:"id"`
	SourceCardID int      `json:"sourceCardId"`
	Modifier     float64  `json:"modifier"`
	Duration     int      `json:"duration"`
	Type         BuffType `json:"type"`
}

// PendingPayout is currency scheduled for a future hour.
type PendingPayout struct {
	DeliveryTime int     `json:"deliveryTime"`
	Amount       float64 `json:"amount"`
}
